package finance

import (
	"sort"

	"horizon-server/src/models"
)

// MaxPageLimit caps the feed page size regardless of what the caller
// requests.
const MaxPageLimit = 10

// SortByDateDesc orders transactions newest first. The sort is stable:
// same-timestamp items keep their insertion order, which carries no
// business meaning but must not flap between requests.
func SortByDateDesc(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
}

// Paginate slices one page out of the sorted feed and returns the
// slice plus the effective page and limit after clamping. A start
// index past the end yields an empty page, never an error.
func Paginate(transactions []models.Transaction, page, limit int) ([]models.Transaction, int, int) {
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * limit
	if start >= len(transactions) {
		return []models.Transaction{}, page, limit
	}

	end := start + limit
	if end > len(transactions) {
		end = len(transactions)
	}
	return transactions[start:end], page, limit
}
