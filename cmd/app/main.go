package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"smarttravel/cmd/fx/config_fx"
	"smarttravel/cmd/fx/controllers_fx"
	"smarttravel/cmd/fx/db_fx"
	"smarttravel/cmd/fx/flight_fx"
	"smarttravel/cmd/fx/generation_fx"
	"smarttravel/cmd/fx/itinerary_fx"
	"smarttravel/cmd/fx/memcache_fx"
	"smarttravel/internal/api/controllers"
	"smarttravel/internal/config"
	"smarttravel/pkg/metrics"
	"smarttravel/pkg/middleware"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		generation_fx.Module,
		itinerary_fx.Module,
		flight_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.AppConfig, engine *gin.Engine, log *zap.Logger) {
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg config.AppConfig,
	log *zap.Logger,
	recommendationController *controllers.RecommendationController,
	flightController *controllers.FlightController,
	healthController *controllers.HealthController) *gin.Engine {

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Register()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	RegisterRoutes(r, cfg, recommendationController, flightController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg config.AppConfig,
	recommendationController *controllers.RecommendationController,
	flightController *controllers.FlightController,
	healthController *controllers.HealthController) {

	r.GET("/", healthController.Root)
	r.GET("/health", healthController.Health)
	r.GET("/metrics", metrics.Handler())

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	apiGroup := r.Group("/api")
	apiGroup.Use(limiter.Middleware())
	apiGroup.Use(middleware.APIAuthMiddleware(middleware.AuthConfig{
		APIKey:     cfg.APIKey,
		APIKeyHash: cfg.APIKeyHash,
		JWTSecret:  cfg.JWTSecret,
	}))
	apiGroup.POST("/recommendations", recommendationController.CreateRecommendation)
	apiGroup.GET("/flights", flightController.SearchFlights)

}
