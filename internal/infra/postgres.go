package infra

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitPostgresql opens a pool for dsn. An empty dsn means no database is
// configured and returns nil; tours are never persisted, the pool only backs
// the health probe.
func InitPostgresql(dsn string, log *zap.Logger) *gorm.DB {
	if dsn == "" {
		log.Info("POSTGRES_URL not set, database probe disabled")
		return nil
	}

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})

	if err != nil {
		log.Error("Error connecting to database", zap.Error(err))
		return nil
	}

	if sqlDB, err := connectionPool.DB(); err == nil {
		sqlDB.SetMaxOpenConns(2)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("Error closing database connection", zap.Error(err))
	} else {
		log.Info("PostgreSQL database connection closed successfully")
	}
}

var ErrNoDatabase = errors.New("database not configured")

func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return ErrNoDatabase
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
