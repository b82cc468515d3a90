package models

import "time"

// TransferRecord is an internally stored record of an ACH transfer
// between two linked banks, distinct from vendor-synced transactions.
// Amount is stored as text; the source system recorded free-form
// strings, so normalization owns the coercion.
type TransferRecord struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Amount         string    `json:"amount"`
	Channel        string    `json:"channel"`
	Category       string    `json:"category"`
	SenderBankID   string    `json:"senderBankId"`
	ReceiverBankID string    `json:"receiverBankId"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"createdAt"`
}
