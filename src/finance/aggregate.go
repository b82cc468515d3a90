package finance

import (
	"context"
	"fmt"
	"log"
	"sync"

	"horizon-server/src/models"
	"horizon-server/src/plaid"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Store is the identity/storage collaborator as seen by aggregation:
// equality-filtered document lookups, nothing transactional.
type Store interface {
	GetBanksByUser(ctx context.Context, userID int64) ([]models.BankLink, error)
	GetBank(ctx context.Context, bankID string) (*models.BankLink, error)
	GetTransfersByBank(ctx context.Context, bankID string) ([]models.TransferRecord, error)
}

// Aggregator builds per-request account projections and the merged
// transaction feed. Nothing here is cached or persisted; every call
// recomputes from the store and the banking vendor.
type Aggregator struct {
	store   Store
	banking plaid.Client
}

func NewAggregator(store Store, banking plaid.Client) *Aggregator {
	return &Aggregator{store: store, banking: banking}
}

// FeedOptions scope and page the transaction feed. BankID, when set,
// restricts the feed to one bank; the account summary stays global.
type FeedOptions struct {
	BankID string
	Page   int
	Limit  int
}

// GetAccounts resolves every BankLink of the user to a live account
// snapshot, computes totals, and returns one page of the merged feed.
// Any account or institution fetch failure aborts the whole
// aggregation; callers treat that as "no data available".
func (a *Aggregator) GetAccounts(ctx context.Context, userID int64, opts FeedOptions) (*models.AccountsSummary, error) {
	banks, err := a.store.GetBanksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list banks for user %d: %w", userID, err)
	}

	accounts := make([]models.Account, len(banks))
	g, gctx := errgroup.WithContext(ctx)
	for i, bank := range banks {
		g.Go(func() error {
			account, err := a.buildAccount(gctx, bank)
			if err != nil {
				return err
			}
			accounts[i] = account
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sum over the empty set is 0, not an error.
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(decimal.NewFromFloat(account.CurrentBalance))
	}

	feedBanks := banks
	if opts.BankID != "" {
		feedBanks = nil
		for _, bank := range banks {
			if bank.ID == opts.BankID {
				feedBanks = append(feedBanks, bank)
				break
			}
		}
	}

	merged := a.collectTransactions(ctx, feedBanks)
	SortByDateDesc(merged)

	totalTransactions := len(merged)
	pageTransactions, page, limit := Paginate(merged, opts.Page, opts.Limit)

	return &models.AccountsSummary{
		Data:                accounts,
		TotalBanks:          len(accounts),
		TotalCurrentBalance: total.InexactFloat64(),
		Transactions:        pageTransactions,
		TotalTransactions:   totalTransactions,
		CurrentPage:         page,
		Limit:               limit,
	}, nil
}

// GetAccount resolves one BankLink to its account projection plus the
// fully merged, unpaginated transaction list, newest first.
func (a *Aggregator) GetAccount(ctx context.Context, bankID string) (*models.AccountDetail, error) {
	bank, err := a.store.GetBank(ctx, bankID)
	if err != nil {
		return nil, err
	}

	account, err := a.buildAccount(ctx, *bank)
	if err != nil {
		return nil, err
	}

	vendor, err := a.banking.SyncTransactions(ctx, bank.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("sync transactions for bank %s: %w", bank.ID, err)
	}

	transfers, err := a.store.GetTransfersByBank(ctx, bank.ID)
	if err != nil {
		return nil, fmt.Errorf("transfers for bank %s: %w", bank.ID, err)
	}

	transactions := make([]models.Transaction, 0, len(vendor)+len(transfers))
	for _, txn := range vendor {
		transactions = append(transactions, NormalizeVendorTransaction(txn))
	}
	for _, transfer := range transfers {
		// transfers take the live account id so client-side filtering
		// by account includes them
		transactions = append(transactions, NormalizeTransfer(transfer, *bank, account.ID))
	}
	SortByDateDesc(transactions)

	return &models.AccountDetail{
		Data:         account,
		Transactions: transactions,
	}, nil
}

// buildAccount assumes exactly one vendor account per linked item and
// projects the first one. The institution lookup is served from the
// metadata cache when warm.
func (a *Aggregator) buildAccount(ctx context.Context, bank models.BankLink) (models.Account, error) {
	snapshots, institutionID, err := a.banking.GetAccounts(ctx, bank.AccessToken)
	if err != nil {
		return models.Account{}, fmt.Errorf("accounts for bank %s: %w", bank.ID, err)
	}
	if len(snapshots) == 0 {
		return models.Account{}, fmt.Errorf("no vendor accounts for bank %s", bank.ID)
	}
	snapshot := snapshots[0]

	institution, err := a.banking.GetInstitution(ctx, institutionID)
	if err != nil {
		return models.Account{}, fmt.Errorf("institution %s for bank %s: %w", institutionID, bank.ID, err)
	}

	return models.Account{
		ID:               snapshot.ID,
		AvailableBalance: snapshot.AvailableBalance,
		CurrentBalance:   snapshot.CurrentBalance,
		InstitutionID:    institution.ID,
		Name:             snapshot.Name,
		OfficialName:     snapshot.OfficialName,
		Mask:             snapshot.Mask,
		Type:             snapshot.Type,
		Subtype:          snapshot.Subtype,
		BankLinkID:       bank.ID,
		ShareableID:      bank.ShareableID,
	}, nil
}

// collectTransactions fans out one goroutine per bank and merges the
// results. Failures are isolated per source: a failing vendor sync
// costs that bank its vendor transactions only, its transfer records
// still appear, and the other banks are unaffected.
func (a *Aggregator) collectTransactions(ctx context.Context, banks []models.BankLink) []models.Transaction {
	perBank := make([][]models.Transaction, len(banks))

	var wg sync.WaitGroup
	for i, bank := range banks {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var combined []models.Transaction

			vendor, err := a.banking.SyncTransactions(ctx, bank.AccessToken)
			if err != nil {
				log.Printf("ERROR: Failed to sync vendor transactions for bank %s: %v", bank.ID, err)
			}
			for _, txn := range vendor {
				combined = append(combined, NormalizeVendorTransaction(txn))
			}

			transfers, err := a.store.GetTransfersByBank(ctx, bank.ID)
			if err != nil {
				log.Printf("ERROR: Failed to load transfers for bank %s: %v", bank.ID, err)
			}
			for _, transfer := range transfers {
				combined = append(combined, NormalizeTransfer(transfer, bank, bank.AccountID))
			}

			perBank[i] = combined
		}()
	}
	wg.Wait()

	var merged []models.Transaction
	for _, transactions := range perBank {
		merged = append(merged, transactions...)
	}
	return merged
}
