package models

import "time"

// Transaction is the canonical shape both vendor-synced transactions
// and internally recorded transfers normalize into.
type Transaction struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PaymentChannel string    `json:"paymentChannel"`
	Type           string    `json:"type"`
	AccountID      string    `json:"accountId"`
	Amount         float64   `json:"amount"`
	Pending        bool      `json:"pending"`
	Category       string    `json:"category"`
	Date           time.Time `json:"date"`
	Image          string    `json:"image"`
}
