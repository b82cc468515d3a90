package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"horizon-server/src/finance"
	"horizon-server/src/middleware"
	"horizon-server/src/models"

	"github.com/go-chi/chi/v5"
)

// GetAccounts is the main aggregation endpoint: global account summary
// plus one page of the merged transaction feed. The optional id query
// parameter scopes the feed to a single bank.
func GetAccounts(aggregator *finance.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		opts := finance.FeedOptions{
			BankID: r.URL.Query().Get("id"),
			Page:   queryInt(r, "page", 1),
			Limit:  queryInt(r, "limit", finance.MaxPageLimit),
		}

		summary, err := aggregator.GetAccounts(r.Context(), userID, opts)
		if err != nil {
			log.Printf("ERROR: Account aggregation failed for user %d: %v", userID, err)
			http.Error(w, "Failed to aggregate accounts", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

// GetAccountTransactions returns the fully merged, unpaginated feed
// for one bank. Errors degrade to an empty list with a 500 so the
// consumer can always read transactions.
func GetAccountTransactions(aggregator *finance.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bankID := chi.URLParam(r, "id")

		detail, err := aggregator.GetAccount(r.Context(), bankID)

		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			log.Printf("ERROR: Single account lookup failed for bank %s: %v", bankID, err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string][]models.Transaction{
				"transactions": {},
			})
			return
		}

		json.NewEncoder(w).Encode(map[string][]models.Transaction{
			"transactions": detail.Transactions,
		})
	}
}

// queryInt reads a positive integer query parameter, falling back to
// the default when absent or unparsable.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
