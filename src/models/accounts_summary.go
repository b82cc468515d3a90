package models

// AccountsSummary is the paginated aggregation response: global
// account totals plus one page of the merged transaction feed.
type AccountsSummary struct {
	Data                []Account     `json:"data"`
	TotalBanks          int           `json:"totalBanks"`
	TotalCurrentBalance float64       `json:"totalCurrentBalance"`
	Transactions        []Transaction `json:"transactions"`
	TotalTransactions   int           `json:"totalTransactions"`
	CurrentPage         int           `json:"currentPage"`
	Limit               int           `json:"limit"`
}

// AccountDetail is the single-account lookup response: one projection
// plus its fully merged, unpaginated transaction list.
type AccountDetail struct {
	Data         Account       `json:"data"`
	Transactions []Transaction `json:"transactions"`
}
