// internal/store/open.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"locatecar/internal/car"
	"locatecar/internal/config"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Open returns the car.Store selected by cfg.Driver and a func releasing its resources.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (car.Store, func() error, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory car store; data is lost on restart")
		return NewMemory(logger), func() error { return nil }, nil

	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		db.SetMaxOpenConns(cfg.MaxOpenConn)
		db.SetConnMaxIdleTime(5 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}

		return NewPostgres(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
