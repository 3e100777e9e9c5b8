package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"smarttravel/internal/config"
	"smarttravel/pkg/logger"
)

var Module = fx.Provide(
	config.Load,
	provideLogger)

func provideLogger(lc fx.Lifecycle, cfg config.AppConfig) (*zap.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))
	return log, nil
}
