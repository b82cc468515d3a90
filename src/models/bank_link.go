package models

import "time"

// BankLink connects a user to one external bank item. Immutable after
// creation except for ownership reassignment through the migration
// endpoint.
type BankLink struct {
	ID              string    `json:"id"`
	UserID          int64     `json:"userId"`
	AccessToken     string    `json:"-"`
	AccountID       string    `json:"accountId"`
	FundingSourceID string    `json:"fundingSourceId"`
	ShareableID     string    `json:"shareableId"`
	CreatedAt       time.Time `json:"createdAt"`
}
