package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"smarttravel/internal/services"
	"smarttravel/pkg/utils"
)

var Module = fx.Provide(
	provideTransportEnforcer,
	provideItineraryService)

func provideTransportEnforcer() *services.TransportEnforcer {
	return services.NewTransportEnforcer(nil)
}

func provideItineraryService(
	generator utils.GenerationClientInterface,
	enforcer *services.TransportEnforcer,
	log *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(generator, enforcer, log.Named("itinerary"))
}
