package registry

import (
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/config"
	"github.com/specialistvlad/consolekit/internal/logger"
)

// Capitalizer is the example service.
type Capitalizer interface {
	Capitalize(s string) string
}

// Paths are the directories the application works with.
type Paths struct {
	Base    string
	Configs string
	Storage string
	Logs    string
}

// Container holds the resolved services handed to commands. Fields for
// services that were not configured stay nil.
type Container struct {
	Name    string
	Version string
	Env     string
	Paths   Paths

	Configs *config.Configs
	Logger  *logger.Logger
	Example Capitalizer
	DB      *sql.DB

	closers []func() error
}

// OnClose registers fn to run when the container is closed. Closers run in
// reverse registration order.
func (c *Container) OnClose(fn func() error) {
	c.closers = append(c.closers, fn)
}

// Close runs every registered closer and combines their errors.
func (c *Container) Close() error {
	var errs error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = errors.CombineErrors(errs, c.closers[i]())
	}
	c.closers = nil
	return errs
}

// Has reports whether the service for id has been resolved.
func (c *Container) Has(id ServiceID) bool {
	switch id {
	case ServiceConfigs:
		return c.Configs != nil
	case ServiceLogger:
		return c.Logger != nil
	case ServiceExample:
		return c.Example != nil
	case ServiceDB:
		return c.DB != nil
	}
	return false
}
