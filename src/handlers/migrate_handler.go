package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// BankMigrator reassigns bank-link ownership between user ids.
type BankMigrator interface {
	ReassignBank(ctx context.Context, bankID string, newUserID int64) error
	ReassignBanksByUser(ctx context.Context, oldUserID, newUserID int64) (int, error)
}

type reassignRequest struct {
	OldUserID int64  `json:"oldUserId"`
	NewUserID int64  `json:"newUserId"`
	BankID    string `json:"bankId"`
}

// ReassignBanks is the restricted migration endpoint. The shared
// secret is checked before anything is read or mutated; a single
// bankId reassigns one document, otherwise oldUserId selects the bulk
// set.
func ReassignBanks(store BankMigrator, migrationKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("x-migration-key")
		if key == "" || key != migrationKey {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req reassignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if req.NewUserID == 0 {
			http.Error(w, "newUserId is required", http.StatusBadRequest)
			return
		}

		if req.BankID != "" {
			if err := store.ReassignBank(r.Context(), req.BankID, req.NewUserID); err != nil {
				log.Printf("ERROR: Failed to reassign bank %s to user %d: %v", req.BankID, req.NewUserID, err)
				http.Error(w, "migration failed", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]int{"updated": 1})
			return
		}

		if req.OldUserID == 0 {
			http.Error(w, "oldUserId is required when bankId is not provided", http.StatusBadRequest)
			return
		}

		updated, err := store.ReassignBanksByUser(r.Context(), req.OldUserID, req.NewUserID)
		if err != nil {
			log.Printf("ERROR: Failed to reassign banks from user %d to user %d: %v", req.OldUserID, req.NewUserID, err)
			http.Error(w, "migration failed", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Reassigned %d banks from user %d to user %d", updated, req.OldUserID, req.NewUserID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"updated": updated})
	}
}
