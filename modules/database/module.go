package database

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/specialistvlad/consolekit/internal/ctxlog"
	"github.com/specialistvlad/consolekit/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the db service provider.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterService(registry.ServiceDB, Provide)
}

// Provide opens the database described by the db.* settings and closes it
// with the container.
func Provide(ctx context.Context, c *registry.Container) error {
	opts := OptionsFromContainer(c)
	ctxlog.FromContext(ctx).Debug("Opening database.", "driver", opts.Driver)

	db, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	c.DB = db
	c.OnClose(db.Close)
	return nil
}

// OptionsFromContainer reads the db.* settings. A relative SQLite path is
// taken from the base directory.
func OptionsFromContainer(c *registry.Container) Options {
	cfgs := c.Configs
	opts := Options{
		Driver:      cfgs.GetString("db.driver", DriverSQLite),
		DSN:         cfgs.GetString("db.dsn", filepath.Join(c.Paths.Storage, "app.db")),
		MaxConns:    cfgs.GetInt("db.max_conns", 0),
		MaxIdleTime: time.Duration(cfgs.GetInt("db.max_idle_seconds", 0)) * time.Second,
	}
	if opts.Driver == DriverSQLite {
		opts.DSN = sqliteDSN(c.Paths.Base, opts.DSN)
	}
	return opts
}

// sqliteDSN joins a relative database path with base, keeping a "file:"
// scheme and any query parameters.
func sqliteDSN(base, dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	scheme := dsn[:len(dsn)-len(path)]
	query := ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, query = path[:i], path[i:]
	}
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return dsn
	}
	return scheme + filepath.Join(base, path) + query
}
