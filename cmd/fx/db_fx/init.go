package db_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"smarttravel/internal/config"
	"smarttravel/internal/infra"
)

var Module = fx.Provide(
	provideDB)

// provideDB yields a nil pool when POSTGRES_URL is unset.
func provideDB(lc fx.Lifecycle, cfg config.AppConfig, log *zap.Logger) *gorm.DB {
	db := infra.InitPostgresql(cfg.PostgresURL, log)
	lc.Append(fx.StopHook(func() {
		infra.ClosePostgresql(db, log)
	}))
	return db
}
