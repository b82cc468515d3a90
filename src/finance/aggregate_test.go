package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"horizon-server/src/models"
	"horizon-server/src/plaid"
)

// MockStore implements Store for testing
type MockStore struct {
	GetBanksByUserFunc     func(ctx context.Context, userID int64) ([]models.BankLink, error)
	GetBankFunc            func(ctx context.Context, bankID string) (*models.BankLink, error)
	GetTransfersByBankFunc func(ctx context.Context, bankID string) ([]models.TransferRecord, error)
}

func (m *MockStore) GetBanksByUser(ctx context.Context, userID int64) ([]models.BankLink, error) {
	if m.GetBanksByUserFunc != nil {
		return m.GetBanksByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockStore) GetBank(ctx context.Context, bankID string) (*models.BankLink, error) {
	if m.GetBankFunc != nil {
		return m.GetBankFunc(ctx, bankID)
	}
	return nil, errors.New("not found")
}

func (m *MockStore) GetTransfersByBank(ctx context.Context, bankID string) ([]models.TransferRecord, error) {
	if m.GetTransfersByBankFunc != nil {
		return m.GetTransfersByBankFunc(ctx, bankID)
	}
	return nil, nil
}

// MockBanking implements plaid.Client for testing
type MockBanking struct {
	CreateLinkTokenFunc     func(ctx context.Context, clientUserID string) (string, error)
	ExchangePublicTokenFunc func(ctx context.Context, publicToken string) (plaid.ItemCredentials, error)
	GetAccountsFunc         func(ctx context.Context, accessToken string) ([]plaid.AccountSnapshot, string, error)
	GetInstitutionFunc      func(ctx context.Context, institutionID string) (plaid.Institution, error)
	SyncTransactionsFunc    func(ctx context.Context, accessToken string) ([]plaid.VendorTransaction, error)
	AuthorizeTransferFunc   func(ctx context.Context, req plaid.TransferRequest) (string, error)
	CreateTransferFunc      func(ctx context.Context, req plaid.TransferRequest, authorizationID string) (plaid.TransferReceipt, error)
}

func (m *MockBanking) CreateLinkToken(ctx context.Context, clientUserID string) (string, error) {
	if m.CreateLinkTokenFunc != nil {
		return m.CreateLinkTokenFunc(ctx, clientUserID)
	}
	return "link-token", nil
}

func (m *MockBanking) ExchangePublicToken(ctx context.Context, publicToken string) (plaid.ItemCredentials, error) {
	if m.ExchangePublicTokenFunc != nil {
		return m.ExchangePublicTokenFunc(ctx, publicToken)
	}
	return plaid.ItemCredentials{}, nil
}

func (m *MockBanking) GetAccounts(ctx context.Context, accessToken string) ([]plaid.AccountSnapshot, string, error) {
	if m.GetAccountsFunc != nil {
		return m.GetAccountsFunc(ctx, accessToken)
	}
	return nil, "", nil
}

func (m *MockBanking) GetInstitution(ctx context.Context, institutionID string) (plaid.Institution, error) {
	if m.GetInstitutionFunc != nil {
		return m.GetInstitutionFunc(ctx, institutionID)
	}
	return plaid.Institution{ID: institutionID, Name: "Test Bank"}, nil
}

func (m *MockBanking) SyncTransactions(ctx context.Context, accessToken string) ([]plaid.VendorTransaction, error) {
	if m.SyncTransactionsFunc != nil {
		return m.SyncTransactionsFunc(ctx, accessToken)
	}
	return nil, nil
}

func (m *MockBanking) AuthorizeTransfer(ctx context.Context, req plaid.TransferRequest) (string, error) {
	if m.AuthorizeTransferFunc != nil {
		return m.AuthorizeTransferFunc(ctx, req)
	}
	return "auth-1", nil
}

func (m *MockBanking) CreateTransfer(ctx context.Context, req plaid.TransferRequest, authorizationID string) (plaid.TransferReceipt, error) {
	if m.CreateTransferFunc != nil {
		return m.CreateTransferFunc(ctx, req, authorizationID)
	}
	return plaid.TransferReceipt{}, nil
}

var testBanks = []models.BankLink{
	{ID: "bank-a", UserID: 1, AccessToken: "token-a", AccountID: "acc-a", ShareableID: "share-a"},
	{ID: "bank-b", UserID: 1, AccessToken: "token-b", AccountID: "acc-b", ShareableID: "share-b"},
}

func snapshotFor(accessToken string) ([]plaid.AccountSnapshot, string, error) {
	switch accessToken {
	case "token-a":
		return []plaid.AccountSnapshot{{ID: "acc-a", Name: "Checking", CurrentBalance: 100.25, AvailableBalance: 90}}, "ins-1", nil
	case "token-b":
		return []plaid.AccountSnapshot{{ID: "acc-b", Name: "Savings", CurrentBalance: 50.75, AvailableBalance: 50}}, "ins-2", nil
	}
	return nil, "", errors.New("unknown token")
}

func TestGetAccountsEmptyUser(t *testing.T) {
	aggregator := NewAggregator(&MockStore{}, &MockBanking{})

	summary, err := aggregator.GetAccounts(context.Background(), 1, FeedOptions{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalBanks != 0 {
		t.Errorf("totalBanks = %d, want 0", summary.TotalBanks)
	}
	if summary.TotalCurrentBalance != 0 {
		t.Errorf("totalCurrentBalance = %v, want 0", summary.TotalCurrentBalance)
	}
	if summary.TotalTransactions != 0 || len(summary.Transactions) != 0 {
		t.Errorf("expected empty feed, got %d/%d", len(summary.Transactions), summary.TotalTransactions)
	}
}

func TestGetAccountsMergeScenario(t *testing.T) {
	// two banks with one vendor transaction each (2024-01-05 and
	// 2024-01-01); bank A additionally has a transfer it sent on
	// 2024-01-03
	store := &MockStore{
		GetBanksByUserFunc: func(ctx context.Context, userID int64) ([]models.BankLink, error) {
			return testBanks, nil
		},
		GetTransfersByBankFunc: func(ctx context.Context, bankID string) ([]models.TransferRecord, error) {
			if bankID == "bank-a" {
				return []models.TransferRecord{{
					ID:           "tr-1",
					Amount:       "25.00",
					SenderBankID: "bank-a",
					CreatedAt:    time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
				}}, nil
			}
			return nil, nil
		},
	}
	banking := &MockBanking{
		GetAccountsFunc: func(ctx context.Context, accessToken string) ([]plaid.AccountSnapshot, string, error) {
			return snapshotFor(accessToken)
		},
		SyncTransactionsFunc: func(ctx context.Context, accessToken string) ([]plaid.VendorTransaction, error) {
			if accessToken == "token-a" {
				return []plaid.VendorTransaction{{ID: "v-1", AccountID: "acc-a", Date: "2024-01-05"}}, nil
			}
			return []plaid.VendorTransaction{{ID: "v-2", AccountID: "acc-b", Date: "2024-01-01"}}, nil
		},
	}

	summary, err := NewAggregator(store, banking).GetAccounts(context.Background(), 1, FeedOptions{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalBanks != 2 {
		t.Errorf("totalBanks = %d, want 2", summary.TotalBanks)
	}
	if summary.TotalCurrentBalance != 151.0 {
		t.Errorf("totalCurrentBalance = %v, want 151.0", summary.TotalCurrentBalance)
	}
	if summary.TotalTransactions != 3 {
		t.Fatalf("totalTransactions = %d, want 3", summary.TotalTransactions)
	}
	if len(summary.Transactions) != 3 {
		t.Fatalf("page should hold all 3 transactions, got %d", len(summary.Transactions))
	}

	got := []string{summary.Transactions[0].ID, summary.Transactions[1].ID, summary.Transactions[2].ID}
	want := []string{"v-1", "tr-1", "v-2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("merge order = %v, want %v", got, want)
		}
	}
	if summary.Transactions[1].Type != "debit" {
		t.Errorf("transfer sent by bank-a should normalize as debit, got %q", summary.Transactions[1].Type)
	}
}

func TestGetAccountsLimitClamped(t *testing.T) {
	store := &MockStore{
		GetBanksByUserFunc: func(ctx context.Context, userID int64) ([]models.BankLink, error) {
			return testBanks[:1], nil
		},
	}
	banking := &MockBanking{
		GetAccountsFunc: func(ctx context.Context, accessToken string) ([]plaid.AccountSnapshot, string, error) {
			return snapshotFor(accessToken)
		},
		SyncTransactionsFunc: func(ctx context.Context, accessToken string) ([]plaid.VendorTransaction, error) {
			transactions := make([]plaid.VendorTransaction, 15)
			for i := range transactions {
				transactions[i] = plaid.VendorTransaction{
					ID:   string(rune('a' + i)),
					Date: time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i).Format("2006-01-02"),
				}
			}
			return transactions, nil
		},
	}

	summary, err := NewAggregator(store, banking).GetAccounts(context.Background(), 1, FeedOptions{Page: 1, Limit: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Limit != 10 {
		t.Errorf("limit = %d, want 10", summary.Limit)
	}
	if len(summary.Transactions) != 10 {
		t.Errorf("page size = %d, want 10", len(summary.Transactions))
	}
	if summary.TotalTransactions != 15 {
		t.Errorf("totalTransactions = %d, want 15", summary.TotalTransactions)
	}
	if summary.CurrentPage != 1 {
		t.Errorf("currentPage = %d, want 1", summary.CurrentPage)
	}
}

func TestGetAccountsVendorFailureIsolated(t *testing.T) {
	store := &MockStore{
		GetBanksByUserFunc: func(ctx context.Context, userID int64) ([]models.BankLink, error) {
			return testBanks, nil
		},
		GetTransfersByBankFunc: func(ctx context.Context, bankID string) ([]models.TransferRecord, error) {
			if bankID == "bank-a" {
				return []models.TransferRecord{{
					ID:           "tr-1",
					Amount:       "5",
					SenderBankID: "bank-a",
					CreatedAt:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				}}, nil
			}
			return nil, nil
		},
	}
	banking := &MockBanking{
		GetAccountsFunc: func(ctx context.Context, accessToken string) ([]plaid.AccountSnapshot, string, error) {
			return snapshotFor(accessToken)
		},
		SyncTransactionsFunc: func(ctx context.Context, accessToken string) ([]plaid.VendorTransaction, error) {
			if accessToken == "token-a" {
				return nil, errors.New("vendor outage")
			}
			return []plaid.VendorTransaction{{ID: "v-2", AccountID: "acc-b", Date: "2024-01-01"}}, nil
		},
	}

	summary, err := NewAggregator(store, banking).GetAccounts(context.Background(), 1, FeedOptions{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("per-bank vendor failure must not abort aggregation: %v", err)
	}

	if summary.TotalTransactions != 2 {
		t.Fatalf("totalTransactions = %d, want 2 (transfer survives, other bank unaffected)", summary.TotalTransactions)
	}
	seen := map[string]bool{}
	for _, txn := range summary.Transactions {
		seen[txn.ID] = true
	}
	if !seen["tr-1"] {
		t.Error("bank A transfer record should still appear when its vendor sync fails")
	}
	if !seen["v-2"] {
		t.Error("bank B vendor transaction should be unaffected")
	}
}

func TestGetAccountsAccountFetchAborts(t *testing.T) {
	store := &MockStore{
		GetBanksByUserFunc: func(ctx context.Context, userID int64) ([]models.BankLink, error) {
			return testBanks, nil
		},
	}
	banking := &MockBanking{
		GetAccountsFunc: func(ctx context.Context, accessToken string) ([]plaid.AccountSnapshot, string, error) {
			if accessToken == "token-b" {
				return nil, "", errors.New("vendor outage")
			}
			return snapshotFor(accessToken)
		},
	}

	_, err := NewAggregator(store, banking).GetAccounts(context.Background(), 1, FeedOptions{Page: 1, Limit: 10})
	if err == nil {
		t.Fatal("account fetch failure must abort the whole aggregation")
	}
}

func TestGetAccountsBankFilterScopesFeedOnly(t *testing.T) {
	store := &MockStore{
		GetBanksByUserFunc: func(ctx context.Context, userID int64) ([]models.BankLink, error) {
			return testBanks, nil
		},
	}
	banking := &MockBanking{
		GetAccountsFunc: func(ctx context.Context, accessToken string) ([]plaid.AccountSnapshot, string, error) {
			return snapshotFor(accessToken)
		},
		SyncTransactionsFunc: func(ctx context.Context, accessToken string) ([]plaid.VendorTransaction, error) {
			if accessToken == "token-a" {
				return []plaid.VendorTransaction{{ID: "v-1", Date: "2024-01-05"}}, nil
			}
			return []plaid.VendorTransaction{{ID: "v-2", Date: "2024-01-01"}}, nil
		},
	}

	summary, err := NewAggregator(store, banking).GetAccounts(context.Background(), 1, FeedOptions{BankID: "bank-b", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// summary stays global, feed is scoped
	if summary.TotalBanks != 2 {
		t.Errorf("totalBanks = %d, want 2 (summary is never scoped)", summary.TotalBanks)
	}
	if summary.TotalTransactions != 1 || summary.Transactions[0].ID != "v-2" {
		t.Errorf("feed should only hold bank-b transactions, got %+v", summary.Transactions)
	}
}

func TestGetAccountSingleLookup(t *testing.T) {
	store := &MockStore{
		GetBankFunc: func(ctx context.Context, bankID string) (*models.BankLink, error) {
			bank := testBanks[0]
			return &bank, nil
		},
		GetTransfersByBankFunc: func(ctx context.Context, bankID string) ([]models.TransferRecord, error) {
			return []models.TransferRecord{{
				ID:             "tr-1",
				Amount:         "10",
				ReceiverBankID: "bank-a",
				SenderBankID:   "bank-x",
				CreatedAt:      time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC),
			}}, nil
		},
	}
	banking := &MockBanking{
		GetAccountsFunc: func(ctx context.Context, accessToken string) ([]plaid.AccountSnapshot, string, error) {
			return snapshotFor(accessToken)
		},
		SyncTransactionsFunc: func(ctx context.Context, accessToken string) ([]plaid.VendorTransaction, error) {
			transactions := make([]plaid.VendorTransaction, 12)
			for i := range transactions {
				transactions[i] = plaid.VendorTransaction{
					ID:   string(rune('a' + i)),
					Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i).Format("2006-01-02"),
				}
			}
			return transactions, nil
		},
	}

	detail, err := NewAggregator(store, banking).GetAccount(context.Background(), "bank-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.Data.ID != "acc-a" || detail.Data.BankLinkID != "bank-a" {
		t.Errorf("unexpected account projection: %+v", detail.Data)
	}
	// no pagination at this layer
	if len(detail.Transactions) != 13 {
		t.Fatalf("expected all 13 merged transactions, got %d", len(detail.Transactions))
	}
	for i := 1; i < len(detail.Transactions); i++ {
		if detail.Transactions[i].Date.After(detail.Transactions[i-1].Date) {
			t.Fatal("single-account feed not sorted newest first")
		}
	}
	for _, txn := range detail.Transactions {
		if txn.ID == "tr-1" {
			if txn.AccountID != "acc-a" {
				t.Errorf("transfer should take the live account id, got %q", txn.AccountID)
			}
			if txn.Type != "credit" {
				t.Errorf("transfer received by bank-a should be credit, got %q", txn.Type)
			}
		}
	}
}
