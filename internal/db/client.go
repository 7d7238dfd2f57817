// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/autocrm/internal/logging"
	"github.com/canonical/autocrm/internal/monitoring"
	"github.com/canonical/autocrm/internal/tracing"
)

const (
	defaultLimit     uint64 = 100
	maxLimit         uint64 = 500
	defaultTxTimeout        = time.Minute
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TxTimeout       time.Duration
	TracingEnabled  bool
}

// Limit clamps a requested row limit, zero selects the default.
func Limit(requested uint64) uint64 {
	switch {
	case requested == 0:
		return defaultLimit
	case requested > maxLimit:
		return maxLimit
	}
	return requested
}

type DBClient struct {
	pool *pgxpool.Pool
	db   *sql.DB

	begin     beginFunc
	txTimeout time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (d *DBClient) builder(r sq.BaseRunner) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(r)
}

// Statement returns a builder bound to the transaction WithTx attached to ctx,
// opening it on first use, or to the pool outside of one.
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	p := pendingTxFrom(ctx)
	if p == nil {
		return d.builder(d.db)
	}

	tx, err := p.runner()
	if err != nil {
		d.logger.Errorf("failed to open transaction, running outside of it: %v", err)
		return d.builder(d.db)
	}

	return d.builder(tx)
}

// WithTx runs fn with a fresh transaction attached to its context. It
// commits when fn succeeds and rolls back when it fails or panics. A
// transaction already on ctx is not joined: the two commit independently.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) (err error) {
	p := &pendingTx{begin: d.begin, timeout: d.txTimeout}

	defer func() {
		if r := recover(); r != nil {
			if rbErr := p.finish(false); rbErr != nil {
				d.logger.Errorf("%v", rbErr)
			}
			panic(r)
		}
	}()

	if err := fn(withPendingTx(ctx, p)); err != nil {
		if rbErr := p.finish(false); rbErr != nil {
			d.logger.Errorf("%v", rbErr)
		}
		return err
	}

	return p.finish(true)
}

// Ping checks the database is reachable, used by the status endpoint.
func (d *DBClient) Ping(ctx context.Context) error {
	ctx, span := d.tracer.Start(ctx, "db.DBClient.Ping")
	defer span.End()

	labels := map[string]string{"component": "database"}

	if err := d.pool.Ping(ctx); err != nil {
		_ = d.monitor.SetDependencyAvailability(labels, 0)
		return err
	}

	_ = d.monitor.SetDependencyAvailability(labels, 1)
	return nil
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

// NewDBClient opens a pgx pool for cfg and exposes it through database/sql
// for squirrel.
func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	if cfg.TracingEnabled {
		// uses the global TracerProvider set up by the tracing package
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	config.MaxConns = cfg.MaxConns
	config.MinConns = cfg.MinConns
	config.MaxConnLifetime = cfg.MaxConnLifetime
	config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	config.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to record database stats: %w", err)
		}
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	timeout := cfg.TxTimeout
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}

	return &DBClient{
		pool:      pool,
		db:        db,
		begin:     db.BeginTx,
		txTimeout: timeout,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}, nil
}
