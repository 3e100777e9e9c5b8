package controllers_fx

import (
	"go.uber.org/fx"

	"smarttravel/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewRecommendationController),
	fx.Provide(controllers.NewFlightController),
	fx.Provide(controllers.NewHealthController))
