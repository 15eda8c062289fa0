// Package database provides the db service: a *sql.DB opened from the db.driver
// and db.dsn settings. SQLite (modernc.org/sqlite, pure Go) and PostgreSQL
// (pgx) are compiled in.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverPgx    = "pgx"
)

// Options holds database connection settings.
type Options struct {
	Driver      string
	DSN         string
	MaxConns    int
	MaxIdleTime time.Duration
}

// Open creates and checks a connection pool.
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	if opts.DSN == "" {
		return nil, errors.New("database dsn is required")
	}
	switch opts.Driver {
	case DriverSQLite:
		if err := ensureSQLiteDir(opts.DSN); err != nil {
			return nil, err
		}
	case DriverPgx:
	default:
		return nil, errors.WithHintf(errors.Newf("unsupported database driver %q", opts.Driver),
			"use %q or %q", DriverSQLite, DriverPgx)
	}

	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}
	if opts.MaxConns > 0 {
		db.SetMaxOpenConns(opts.MaxConns)
		db.SetMaxIdleConns(opts.MaxConns / 2)
	}
	if opts.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.MaxIdleTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return db, nil
}

func ensureSQLiteDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create database directory for %s", path)
	}
	return nil
}

// Placeholder returns the bind parameter marker for the n-th (1-based)
// argument in driver's dialect.
func Placeholder(driver string, n int) string {
	if driver == DriverPgx {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
