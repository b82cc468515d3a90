package api

import (
	"net/http"

	"horizon-server/src/config"
	"horizon-server/src/db"
	"horizon-server/src/finance"
	"horizon-server/src/handlers"
	"horizon-server/src/middleware"
	"horizon-server/src/plaid"

	"github.com/go-chi/chi/v5"
)

func NewRouter(store *db.Store, banking plaid.Client, aggregator *finance.Aggregator, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/sign-up", handlers.SignUp(store, cfg.JWTSecret))
		r.Post("/sign-in", handlers.SignIn(store, cfg.JWTSecret))

		// Shared-secret header auth, deliberately outside the JWT group
		r.Post("/migrate/reassign", handlers.ReassignBanks(store, cfg.MigrationKey))

		// Protected routes
		r.With(middleware.JWTAuth(cfg.JWTSecret)).Group(func(r chi.Router) {
			r.Get("/user/me", handlers.GetMe(store))

			r.Get("/accounts", handlers.GetAccounts(aggregator))
			r.Get("/accounts/{id}/transactions", handlers.GetAccountTransactions(aggregator))

			r.Post("/plaid/create-link-token", handlers.CreateLinkToken(banking))
			r.Post("/plaid/exchange-public-token", handlers.ExchangePublicToken(banking, store))

			r.Post("/transfers", handlers.CreateTransfer(banking, store, store))
		})
	})

	return r
}
