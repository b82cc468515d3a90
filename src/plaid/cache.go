package plaid

import (
	"log"

	"github.com/dgraph-io/ristretto"
)

// InstitutionCache holds vendor institution metadata keyed by
// institution id. Institution names are effectively static, unlike
// account balances, which are never cached.
type InstitutionCache struct {
	cache *ristretto.Cache
}

func NewInstitutionCache() *InstitutionCache {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize institution cache: %v", err)
	}
	return &InstitutionCache{cache: cache}
}

func (c *InstitutionCache) Get(institutionID string) (Institution, bool) {
	value, found := c.cache.Get(institutionID)
	if !found {
		return Institution{}, false
	}
	inst, ok := value.(Institution)
	return inst, ok
}

func (c *InstitutionCache) Set(inst Institution) {
	c.cache.Set(inst.ID, inst, 1)
}
