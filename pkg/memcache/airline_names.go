// pkg/memcache/airline_names.go
package mem

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// NameCache maps airline carrier codes to display names.
type NameCache interface {
	Set(code string, name string)

	// Get returns the cached name for code. Returns "" and false if
	// missing or expired.
	Get(code string) (string, bool)
}

type AirlineNames struct {
	store *cache.Cache
}

func NewAirlineNameCache(ttl time.Duration) *AirlineNames {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AirlineNames{
		store: cache.New(ttl, 2*ttl),
	}
}

func (c *AirlineNames) Set(code string, name string) {
	c.store.SetDefault(strings.ToUpper(code), name)
}

func (c *AirlineNames) Get(code string) (string, bool) {
	v, ok := c.store.Get(strings.ToUpper(code))
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
