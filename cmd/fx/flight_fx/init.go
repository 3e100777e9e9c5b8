package flight_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"smarttravel/internal/config"
	"smarttravel/internal/services"
	mem "smarttravel/pkg/memcache"
	"smarttravel/pkg/utils"
)

var Module = fx.Provide(
	provideAmadeusClient,
	func(c *utils.AmadeusClient) services.FlightProvider { return c },
	func(c *utils.AmadeusClient) services.LocationSearcher { return c },
	provideIATAResolver,
	provideFlightService)

func provideAmadeusClient(cfg config.AppConfig, log *zap.Logger) *utils.AmadeusClient {
	client := utils.NewAmadeusClient(cfg.Amadeus())
	if !client.Configured() {
		log.Warn("AMADEUS_CLIENT_ID / AMADEUS_CLIENT_SECRET not set, flight search disabled")
	}
	return client
}

func provideIATAResolver(locations services.LocationSearcher, log *zap.Logger) services.IATAResolverInterface {
	return services.NewIATAResolver(locations, log.Named("iata"))
}

func provideFlightService(
	cfg config.AppConfig,
	provider services.FlightProvider,
	resolver services.IATAResolverInterface,
	names mem.NameCache,
	log *zap.Logger,
) services.FlightServiceInterface {
	loc := services.LoadFlightLocation(cfg.FlightTimezone)
	return services.NewFlightService(provider, resolver, names, loc, log.Named("flights"))
}
