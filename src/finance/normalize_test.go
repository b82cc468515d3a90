package finance

import (
	"testing"
	"time"

	"horizon-server/src/models"
	"horizon-server/src/plaid"
)

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain decimal", "12.34", 12.34},
		{"integer", "7", 7},
		{"negative", "-3.5", -3.5},
		{"leading dot", ".5", 0.5},
		{"scientific", "1e3", 1000},
		{"whitespace padded", "  42.10  ", 42.1},
		{"trailing currency", "12.50 USD", 12.5},
		{"nan literal falls through to zero", "NaN", 0},
		{"infinity falls through to zero", "+Inf", 0},
		{"non numeric", "abc", 0},
		{"empty", "", 0},
		{"symbol prefix", "$10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceAmount(tt.input); got != tt.want {
				t.Errorf("coerceAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeVendorTransaction(t *testing.T) {
	txn := plaid.VendorTransaction{
		ID:              "txn-1",
		Name:            "Coffee",
		PaymentChannel:  "in store",
		AccountID:       "acc-1",
		Amount:          4.50,
		Pending:         true,
		CategoryPrimary: "FOOD_AND_DRINK",
		Date:            "2024-01-05",
		LogoURL:         "https://example.com/logo.png",
	}

	got := NormalizeVendorTransaction(txn)

	if got.ID != "txn-1" || got.Name != "Coffee" || got.AccountID != "acc-1" {
		t.Fatalf("unexpected identity fields: %+v", got)
	}
	if got.Type != "in store" {
		t.Errorf("type should mirror payment channel, got %q", got.Type)
	}
	if got.Category != "FOOD_AND_DRINK" {
		t.Errorf("category = %q, want FOOD_AND_DRINK", got.Category)
	}
	if !got.Pending {
		t.Error("pending flag should pass through")
	}
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Errorf("date = %v, want start-of-day UTC %v", got.Date, want)
	}
}

func TestNormalizeVendorTransactionCategoryFallback(t *testing.T) {
	tests := []struct {
		name     string
		primary  string
		detailed string
		want     string
	}{
		{"primary wins", "TRAVEL", "TRAVEL_FLIGHTS", "TRAVEL"},
		{"detailed when no primary", "", "TRAVEL_FLIGHTS", "TRAVEL_FLIGHTS"},
		{"uncategorized when neither", "", "", "Uncategorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVendorTransaction(plaid.VendorTransaction{
				CategoryPrimary:  tt.primary,
				CategoryDetailed: tt.detailed,
				Date:             "2024-01-01",
			})
			if got.Category != tt.want {
				t.Errorf("category = %q, want %q", got.Category, tt.want)
			}
		})
	}
}

func TestNormalizeVendorTransactionBadDate(t *testing.T) {
	got := NormalizeVendorTransaction(plaid.VendorTransaction{Date: "not-a-date"})
	if !got.Date.IsZero() {
		t.Errorf("malformed date should degrade to zero time, got %v", got.Date)
	}
}

func TestNormalizeTransferDirection(t *testing.T) {
	bank := models.BankLink{ID: "bank-a", AccountID: "acc-a"}

	debit := NormalizeTransfer(models.TransferRecord{SenderBankID: "bank-a"}, bank, "acc-a")
	if debit.Type != "debit" {
		t.Errorf("transfer sent by this bank should be debit, got %q", debit.Type)
	}

	credit := NormalizeTransfer(models.TransferRecord{SenderBankID: "bank-b"}, bank, "acc-a")
	if credit.Type != "credit" {
		t.Errorf("transfer received by this bank should be credit, got %q", credit.Type)
	}
}

func TestNormalizeTransferDefaults(t *testing.T) {
	created := time.Date(2024, 1, 3, 15, 4, 5, 0, time.UTC)
	transfer := models.TransferRecord{
		ID:           "tr-1",
		Amount:       "not a number",
		SenderBankID: "bank-b",
		CreatedAt:    created,
	}
	bank := models.BankLink{ID: "bank-a", AccountID: "acc-a"}

	got := NormalizeTransfer(transfer, bank, "acc-a")

	if got.Name != "Transfer" {
		t.Errorf("name = %q, want default Transfer", got.Name)
	}
	if got.PaymentChannel != "online" {
		t.Errorf("paymentChannel = %q, want default online", got.PaymentChannel)
	}
	if got.Category != "Transfer" {
		t.Errorf("category = %q, want default Transfer", got.Category)
	}
	if got.Amount != 0 {
		t.Errorf("unparsable amount should be 0, got %v", got.Amount)
	}
	if got.Pending {
		t.Error("transfers are never pending")
	}
	if got.AccountID != "acc-a" {
		t.Errorf("accountId = %q, want acc-a", got.AccountID)
	}
	if !got.Date.Equal(created) {
		t.Errorf("date = %v, want creation timestamp %v", got.Date, created)
	}
	if got.Image != "" {
		t.Errorf("transfers carry no image, got %q", got.Image)
	}
}
