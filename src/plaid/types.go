package plaid

// AccountSnapshot is the vendor account projection used to build an
// Account. Nullable vendor fields are already collapsed to zero values
// here so callers never duck-type into the SDK response.
type AccountSnapshot struct {
	ID               string
	Name             string
	OfficialName     string
	Mask             string
	Type             string
	Subtype          string
	AvailableBalance float64
	CurrentBalance   float64
}

type Institution struct {
	ID   string
	Name string
}

// VendorTransaction is one synced transaction as returned by the
// banking-data vendor, before normalization into the canonical shape.
// Date is the vendor's calendar date (YYYY-MM-DD).
type VendorTransaction struct {
	ID               string
	Name             string
	PaymentChannel   string
	AccountID        string
	Amount           float64
	Pending          bool
	CategoryPrimary  string
	CategoryDetailed string
	Date             string
	LogoURL          string
}

// ItemCredentials is the result of exchanging a public token at the
// end of the link flow.
type ItemCredentials struct {
	AccessToken string
	ItemID      string
}

// TransferRequest carries everything the two-step
// authorize-then-create transfer protocol needs.
type TransferRequest struct {
	AccessToken      string
	AccountID        string
	FundingAccountID string
	Amount           string
	LegalName        string
	Description      string
}

type TransferReceipt struct {
	ID              string
	AuthorizationID string
	Status          string
}
