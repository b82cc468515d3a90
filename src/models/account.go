package models

// Account is a read-through projection built per request from a
// BankLink. It is never persisted or cached; balances carry no
// staleness guarantee.
type Account struct {
	ID               string  `json:"id"`
	AvailableBalance float64 `json:"availableBalance"`
	CurrentBalance   float64 `json:"currentBalance"`
	InstitutionID    string  `json:"institutionId"`
	Name             string  `json:"name"`
	OfficialName     string  `json:"officialName"`
	Mask             string  `json:"mask"`
	Type             string  `json:"type"`
	Subtype          string  `json:"subtype"`
	BankLinkID       string  `json:"bankLinkId"`
	ShareableID      string  `json:"shareableId"`
}
