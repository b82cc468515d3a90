package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"horizon-server/src/middleware"
	"horizon-server/src/models"
	"horizon-server/src/plaid"
	"horizon-server/src/util"
)

// BankStore is the slice of the identity/storage collaborator the
// link and transfer handlers need.
type BankStore interface {
	CreateBank(ctx context.Context, bank models.BankLink) (string, error)
	GetBank(ctx context.Context, bankID string) (*models.BankLink, error)
	GetBankByAccountID(ctx context.Context, accountID string) (*models.BankLink, error)
	CreateTransfer(ctx context.Context, transfer models.TransferRecord) (string, error)
}

func CreateLinkToken(banking plaid.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		linkToken, err := banking.CreateLinkToken(r.Context(), strconv.FormatInt(userID, 10))
		if err != nil {
			log.Printf("ERROR: Link token creation failed for user %d: %v", userID, err)
			http.Error(w, "Failed to create link token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"linkToken": linkToken,
		})
	}
}

// ExchangePublicToken completes the account-linking flow: swaps the
// public token for credentials, snapshots the first vendor account,
// and persists the BankLink with its shareable id.
func ExchangePublicToken(banking plaid.Client, store BankStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req struct {
			PublicToken string `json:"publicToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PublicToken == "" {
			log.Printf("ERROR: Failed to decode exchange public token request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		credentials, err := banking.ExchangePublicToken(r.Context(), req.PublicToken)
		if err != nil {
			log.Printf("ERROR: Public token exchange failed for user %d: %v", userID, err)
			http.Error(w, "Failed to exchange public token", http.StatusInternalServerError)
			return
		}

		snapshots, _, err := banking.GetAccounts(r.Context(), credentials.AccessToken)
		if err != nil || len(snapshots) == 0 {
			log.Printf("ERROR: Failed to fetch accounts after exchange for user %d: %v", userID, err)
			http.Error(w, "Failed to fetch linked account", http.StatusInternalServerError)
			return
		}
		account := snapshots[0]

		bankID, err := store.CreateBank(r.Context(), models.BankLink{
			UserID:      userID,
			AccessToken: credentials.AccessToken,
			AccountID:   account.ID,
			ShareableID: util.EncodeShareableID(account.ID),
		})
		if err != nil {
			log.Printf("ERROR: Failed to save bank link for user %d: %v", userID, err)
			http.Error(w, "Failed to save bank link", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Linked bank %s for user %d, item %s", bankID, userID, credentials.ItemID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"bankId": bankID,
			"itemId": credentials.ItemID,
		})
	}
}
