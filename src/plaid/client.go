package plaid

import (
	"context"
	"fmt"
	"log"

	"github.com/plaid/plaid-go/v41/plaid"
)

// Client is the banking-data and funding-transfer gateway. Aggregation
// code depends on this interface, never on the vendor SDK directly.
type Client interface {
	CreateLinkToken(ctx context.Context, clientUserID string) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (ItemCredentials, error)
	// GetAccounts returns the live account snapshots for one linked
	// item plus the item's institution id.
	GetAccounts(ctx context.Context, accessToken string) ([]AccountSnapshot, string, error)
	GetInstitution(ctx context.Context, institutionID string) (Institution, error)
	// SyncTransactions loops the vendor's cursor/has-more contract
	// until exhausted and returns the accumulated added records.
	SyncTransactions(ctx context.Context, accessToken string) ([]VendorTransaction, error)
	AuthorizeTransfer(ctx context.Context, req TransferRequest) (string, error)
	CreateTransfer(ctx context.Context, req TransferRequest, authorizationID string) (TransferReceipt, error)
}

type apiClient struct {
	api          *plaid.APIClient
	institutions *InstitutionCache
}

func NewClient(clientID, secret, env string, institutions *InstitutionCache) Client {
	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	configuration.AddDefaultHeader("PLAID-SECRET", secret)

	switch env {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	default:
		log.Fatalf("Invalid Plaid environment: %s", env)
	}

	return &apiClient{
		api:          plaid.NewAPIClient(configuration),
		institutions: institutions,
	}
}

func (c *apiClient) CreateLinkToken(ctx context.Context, clientUserID string) (string, error) {
	user := plaid.LinkTokenCreateRequestUser{
		ClientUserId: clientUserID,
	}
	request := plaid.NewLinkTokenCreateRequest(
		"Horizon",
		"en",
		[]plaid.CountryCode{plaid.COUNTRYCODE_US},
	)
	request.SetUser(user)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_AUTH, plaid.PRODUCTS_TRANSACTIONS})

	resp, _, err := c.api.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", fmt.Errorf("link token create: %w", err)
	}
	return resp.GetLinkToken(), nil
}

func (c *apiClient) ExchangePublicToken(ctx context.Context, publicToken string) (ItemCredentials, error) {
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := c.api.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return ItemCredentials{}, fmt.Errorf("public token exchange: %w", err)
	}
	return ItemCredentials{
		AccessToken: resp.GetAccessToken(),
		ItemID:      resp.GetItemId(),
	}, nil
}

func (c *apiClient) GetAccounts(ctx context.Context, accessToken string) ([]AccountSnapshot, string, error) {
	request := plaid.NewAccountsGetRequest(accessToken)
	resp, _, err := c.api.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
	if err != nil {
		return nil, "", fmt.Errorf("accounts get: %w", err)
	}

	accounts := make([]AccountSnapshot, 0, len(resp.GetAccounts()))
	for _, acc := range resp.GetAccounts() {
		snapshot := AccountSnapshot{
			ID:           acc.GetAccountId(),
			Name:         acc.GetName(),
			OfficialName: acc.GetOfficialName(),
			Mask:         acc.GetMask(),
			Type:         string(acc.GetType()),
		}
		if subtype, ok := acc.GetSubtypeOk(); ok && subtype != nil {
			snapshot.Subtype = string(*subtype)
		}
		balances := acc.GetBalances()
		if available, ok := balances.GetAvailableOk(); ok && available != nil {
			snapshot.AvailableBalance = *available
		}
		if current, ok := balances.GetCurrentOk(); ok && current != nil {
			snapshot.CurrentBalance = *current
		}
		accounts = append(accounts, snapshot)
	}

	item := resp.GetItem()
	return accounts, item.GetInstitutionId(), nil
}

func (c *apiClient) GetInstitution(ctx context.Context, institutionID string) (Institution, error) {
	if inst, ok := c.institutions.Get(institutionID); ok {
		return inst, nil
	}

	request := plaid.NewInstitutionsGetByIdRequest(institutionID, []plaid.CountryCode{plaid.COUNTRYCODE_US})
	resp, _, err := c.api.PlaidApi.InstitutionsGetById(ctx).InstitutionsGetByIdRequest(*request).Execute()
	if err != nil {
		return Institution{}, fmt.Errorf("institutions get by id: %w", err)
	}

	vendorInstitution := resp.GetInstitution()
	inst := Institution{
		ID:   vendorInstitution.GetInstitutionId(),
		Name: vendorInstitution.GetName(),
	}
	c.institutions.Set(inst)
	return inst, nil
}

func (c *apiClient) SyncTransactions(ctx context.Context, accessToken string) ([]VendorTransaction, error) {
	var transactions []VendorTransaction
	cursor := ""
	hasMore := true

	// Iterate through each page of new transaction updates for the
	// item, advancing the cursor each call.
	for hasMore {
		request := plaid.NewTransactionsSyncRequest(accessToken)
		if cursor != "" {
			request.SetCursor(cursor)
		}

		resp, _, err := c.api.PlaidApi.TransactionsSync(ctx).TransactionsSyncRequest(*request).Execute()
		if err != nil {
			return nil, fmt.Errorf("transactions sync: %w", err)
		}

		for _, txn := range resp.GetAdded() {
			vendor := VendorTransaction{
				ID:             txn.GetTransactionId(),
				Name:           txn.GetName(),
				PaymentChannel: txn.GetPaymentChannel(),
				AccountID:      txn.GetAccountId(),
				Amount:         txn.GetAmount(),
				Pending:        txn.GetPending(),
				Date:           txn.GetDate(),
				LogoURL:        txn.GetLogoUrl(),
			}
			if category, ok := txn.GetPersonalFinanceCategoryOk(); ok && category != nil {
				vendor.CategoryPrimary = category.GetPrimary()
				vendor.CategoryDetailed = category.GetDetailed()
			}
			transactions = append(transactions, vendor)
		}

		hasMore = resp.GetHasMore()
		cursor = resp.GetNextCursor()
	}

	return transactions, nil
}

func (c *apiClient) AuthorizeTransfer(ctx context.Context, req TransferRequest) (string, error) {
	user := plaid.TransferAuthorizationUserInRequest{
		LegalName: req.LegalName,
	}
	request := plaid.NewTransferAuthorizationCreateRequest(
		req.AccessToken,
		req.AccountID,
		plaid.TRANSFERTYPE_CREDIT,
		plaid.TRANSFERNETWORK_ACH,
		req.Amount,
		user,
	)
	request.SetAchClass(plaid.ACHCLASS_PPD)
	if req.FundingAccountID != "" {
		request.SetFundingAccountId(req.FundingAccountID)
	}

	resp, _, err := c.api.PlaidApi.TransferAuthorizationCreate(ctx).TransferAuthorizationCreateRequest(*request).Execute()
	if err != nil {
		return "", fmt.Errorf("transfer authorization create: %w", err)
	}
	authorization := resp.GetAuthorization()
	return authorization.GetId(), nil
}

func (c *apiClient) CreateTransfer(ctx context.Context, req TransferRequest, authorizationID string) (TransferReceipt, error) {
	request := plaid.NewTransferCreateRequest(
		req.AccessToken,
		req.AccountID,
		authorizationID,
		req.Description,
	)

	resp, _, err := c.api.PlaidApi.TransferCreate(ctx).TransferCreateRequest(*request).Execute()
	if err != nil {
		return TransferReceipt{}, fmt.Errorf("transfer create: %w", err)
	}

	transfer := resp.GetTransfer()
	return TransferReceipt{
		ID:              transfer.GetId(),
		AuthorizationID: authorizationID,
		Status:          string(transfer.GetStatus()),
	}, nil
}
