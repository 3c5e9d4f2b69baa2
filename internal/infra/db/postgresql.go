// Package db opens and manages the goals and report queue database.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-dashboard/backend/config"
)

const (
	connectTimeout = 5 * time.Second
	probeTimeout   = 2 * time.Second
)

// Database is a pooled GORM handle.
type Database struct {
	gorm *gorm.DB
	pool *sql.DB
}

// NewPostgresConnection connects to the PostgreSQL instance at cfg.URL.
func NewPostgresConnection(cfg *config.DatabaseConfig) (*Database, error) {
	return Open(postgres.Open(cfg.URL), cfg)
}

// Open connects through any GORM dialector, sizes the pool and verifies the
// connection. Tests pass the sqlite dialector.
func Open(dialector gorm.Dialector, cfg *config.DatabaseConfig) (*Database, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	pool, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	d := &Database{gorm: gdb, pool: pool}
	if err := d.ping(connectTimeout); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)
	return d, nil
}

func (d *Database) ping(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return d.pool.PingContext(ctx)
}

// DB returns the GORM handle repositories are built on.
func (d *Database) DB() *gorm.DB {
	return d.gorm
}

// HealthCheck reports whether the database answers a ping.
func (d *Database) HealthCheck() bool {
	if err := d.ping(probeTimeout); err != nil {
		slog.Error("Database health check failed", "error", err)
		return false
	}
	return true
}

// AutoMigrate creates or alters the tables for models.
func (d *Database) AutoMigrate(models ...any) error {
	if err := d.gorm.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	if err := d.pool.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	slog.Info("Database connection closed")
	return nil
}
