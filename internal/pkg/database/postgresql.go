package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

var ErrClosed = errors.New("database is closed")

// DB owns the process-wide connection pool. The pool is opened on first use;
// concurrent first callers share a single attempt and a failed attempt is
// retried by the next caller.
type DB struct {
	dsn     string
	connect func(ctx context.Context, dsn string) (*pgxpool.Pool, error)

	pool   atomic.Pointer[pgxpool.Pool]
	mu     sync.Mutex
	closed bool
}

// New returns an unopened DB. No connection is made until Pool is called.
func New(dsn string) *DB {
	return &DB{dsn: dsn, connect: openPool}
}

// NewPostgreSQLDB opens the pool eagerly and verifies connectivity.
func NewPostgreSQLDB(dsn string) (*DB, error) {
	db := New(dsn)
	if _, err := db.Pool(context.Background()); err != nil {
		return nil, err
	}
	return db, nil
}

func openPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// Pool returns the shared pool, opening it if needed.
func (db *DB) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	if p := db.pool.Load(); p != nil {
		return p, nil
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil, ErrClosed
	}
	if p := db.pool.Load(); p != nil {
		return p, nil
	}

	p, err := db.connect(ctx, db.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database pool: %w", err)
	}
	db.pool.Store(p)
	return p, nil
}

// Opened reports whether the pool has been established.
func (db *DB) Opened() bool {
	return db.pool.Load() != nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	pool, err := db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Begin(ctx)
}

func (db *DB) Ping(ctx context.Context) error {
	pool, err := db.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	pool, err := db.Pool(ctx)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (db *DB) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.closed = true
	if p := db.pool.Swap(nil); p != nil {
		p.Close()
	}
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
