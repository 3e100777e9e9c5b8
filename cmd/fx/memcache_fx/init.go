package memcache_fx

import (
	"go.uber.org/fx"

	"smarttravel/internal/config"
	mem "smarttravel/pkg/memcache"
)

var Module = fx.Provide(provideAirlineNameCache)

func provideAirlineNameCache(cfg config.AppConfig) mem.NameCache {
	return mem.NewAirlineNameCache(cfg.AirlineCacheTTL)
}
