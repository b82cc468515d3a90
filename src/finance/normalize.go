package finance

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"horizon-server/src/models"
	"horizon-server/src/plaid"

	"github.com/shopspring/decimal"
)

// NormalizeVendorTransaction projects a vendor-synced transaction into
// the canonical shape. Vendor calendar dates become start-of-day UTC
// instants so they compare consistently with the full timestamps on
// transfer records.
func NormalizeVendorTransaction(txn plaid.VendorTransaction) models.Transaction {
	category := txn.CategoryPrimary
	if category == "" {
		category = txn.CategoryDetailed
	}
	if category == "" {
		category = "Uncategorized"
	}

	return models.Transaction{
		ID:             txn.ID,
		Name:           txn.Name,
		PaymentChannel: txn.PaymentChannel,
		// type mirrors the payment channel for vendor records; only
		// transfer records carry a real debit/credit indicator
		Type:      txn.PaymentChannel,
		AccountID: txn.AccountID,
		Amount:    txn.Amount,
		Pending:   txn.Pending,
		Category:  category,
		Date:      normalizeVendorDate(txn.Date),
		Image:     txn.LogoURL,
	}
}

// NormalizeTransfer projects an internally recorded transfer into the
// canonical shape for the given bank. The transfer reads as a debit
// when this bank sent it, a credit otherwise.
func NormalizeTransfer(transfer models.TransferRecord, bank models.BankLink, accountID string) models.Transaction {
	name := transfer.Name
	if name == "" {
		name = "Transfer"
	}
	channel := transfer.Channel
	if channel == "" {
		channel = "online"
	}
	category := transfer.Category
	if category == "" {
		category = "Transfer"
	}
	direction := "credit"
	if transfer.SenderBankID == bank.ID {
		direction = "debit"
	}

	return models.Transaction{
		ID:             transfer.ID,
		Name:           name,
		PaymentChannel: channel,
		Type:           direction,
		AccountID:      accountID,
		Amount:         coerceAmount(transfer.Amount),
		Pending:        false,
		Category:       category,
		Date:           transfer.CreatedAt,
	}
}

func normalizeVendorDate(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)

// coerceAmount turns a stored transfer amount into a number. Strict
// numeric parsing first; a value that is not a clean number (for
// example "12.50 USD") still yields its leading decimal prefix; on
// both failures the amount is 0.
func coerceAmount(raw string) float64 {
	trimmed := strings.TrimSpace(raw)

	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}

	if prefix := leadingNumber.FindString(trimmed); prefix != "" {
		if d, err := decimal.NewFromString(prefix); err == nil {
			return d.InexactFloat64()
		}
	}

	return 0
}
