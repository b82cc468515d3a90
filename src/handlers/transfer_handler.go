package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"horizon-server/src/middleware"
	"horizon-server/src/models"
	"horizon-server/src/plaid"
	"horizon-server/src/util"
)

type transferRequest struct {
	SenderBankID        string `json:"senderBankId"`
	ReceiverShareableID string `json:"receiverShareableId"`
	Amount              string `json:"amount"`
	Name                string `json:"name"`
	Email               string `json:"email"`
}

// CreateTransfer runs the two-step authorize-then-create transfer
// protocol against the funding vendor, then records the internal
// transfer document that feeds the merged transaction feed.
func CreateTransfer(banking plaid.Client, store BankStore, users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req transferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode transfer request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.SenderBankID == "" || req.ReceiverShareableID == "" || req.Amount == "" {
			http.Error(w, "senderBankId, receiverShareableId, and amount are required", http.StatusBadRequest)
			return
		}

		sender, err := store.GetBank(r.Context(), req.SenderBankID)
		if err != nil {
			log.Printf("ERROR: Sender bank %s not found: %v", req.SenderBankID, err)
			http.Error(w, "sender bank not found", http.StatusNotFound)
			return
		}
		if sender.UserID != userID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		receiverAccountID, err := util.DecodeShareableID(req.ReceiverShareableID)
		if err != nil {
			http.Error(w, "invalid receiver shareable id", http.StatusBadRequest)
			return
		}
		receiver, err := store.GetBankByAccountID(r.Context(), receiverAccountID)
		if err != nil {
			log.Printf("ERROR: Receiver bank for account not found: %v", err)
			http.Error(w, "receiver bank not found", http.StatusNotFound)
			return
		}

		// the ACH authorization carries the sender's legal name, not
		// the transfer's display label
		user, err := users.GetUserByID(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to load user %d for transfer: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		legalName := strings.TrimSpace(user.FirstName + " " + user.LastName)

		description := req.Name
		if description == "" {
			description = "payment"
		}
		transfer := plaid.TransferRequest{
			AccessToken:      sender.AccessToken,
			AccountID:        sender.AccountID,
			FundingAccountID: sender.FundingSourceID,
			Amount:           req.Amount,
			LegalName:        legalName,
			Description:      description,
		}

		authorizationID, err := banking.AuthorizeTransfer(r.Context(), transfer)
		if err != nil {
			log.Printf("ERROR: Transfer authorization failed for bank %s: %v", sender.ID, err)
			http.Error(w, "Failed to authorize transfer", http.StatusInternalServerError)
			return
		}

		receipt, err := banking.CreateTransfer(r.Context(), transfer, authorizationID)
		if err != nil {
			log.Printf("ERROR: Transfer creation failed for bank %s: %v", sender.ID, err)
			http.Error(w, "Failed to create transfer", http.StatusInternalServerError)
			return
		}

		recordID, err := store.CreateTransfer(r.Context(), models.TransferRecord{
			Name:           req.Name,
			Amount:         req.Amount,
			Channel:        "online",
			Category:       "Transfer",
			SenderBankID:   sender.ID,
			ReceiverBankID: receiver.ID,
			Email:          req.Email,
		})
		if err != nil {
			log.Printf("ERROR: Failed to record transfer for bank %s: %v", sender.ID, err)
			http.Error(w, "Failed to record transfer", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Transfer %s created from bank %s to bank %s", receipt.ID, sender.ID, receiver.ID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"transferId":      receipt.ID,
			"authorizationId": receipt.AuthorizationID,
			"status":          receipt.Status,
			"recordId":        recordID,
		})
	}
}
