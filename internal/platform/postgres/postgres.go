// Package postgres opens the GORM connection used by the postgres snapshot store.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultPingTimeout   = 5 * time.Second
	defaultSlowThreshold = 200 * time.Millisecond
)

type options struct {
	logger       *slog.Logger
	pingTimeout  time.Duration
	maxOpenConns int
}

// Option customises Connect.
type Option func(*options)

// WithLogger routes GORM warnings and slow queries to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithPingTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pingTimeout = d
		}
	}
}

// WithMaxOpenConns caps the pool; zero leaves the database/sql default.
func WithMaxOpenConns(n int) Option {
	return func(o *options) { o.maxOpenConns = n }
}

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
// The returned cleanup closes the pool.
func Connect(ctx context.Context, dsn string, opts ...Option) (*gorm.DB, func() error, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil, fmt.Errorf("postgres DSN is empty")
	}
	cfg := options{pingTimeout: defaultPingTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	gormCfg := &gorm.Config{}
	if cfg.logger != nil {
		gormCfg.Logger = gormlogger.New(
			slog.NewLogLogger(cfg.logger.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             defaultSlowThreshold,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		)
	}
	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("unwrap postgres pool: %w", err)
	}
	if cfg.maxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.maxOpenConns)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, sqlDB.Close, nil
}
