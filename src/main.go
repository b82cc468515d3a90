package main

import (
	"context"
	"log"
	"net/http"

	"horizon-server/src/api"
	"horizon-server/src/config"
	"horizon-server/src/db"
	"horizon-server/src/finance"
	"horizon-server/src/plaid"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	store := db.NewStore(pool)
	banking := plaid.NewClient(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidEnv, plaid.NewInstitutionCache())
	aggregator := finance.NewAggregator(store, banking)

	// Router
	router := api.NewRouter(store, banking, aggregator, cfg)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
