package cli

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/app"
	"github.com/spf13/pflag"
)

// Exit codes returned by the binary.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse reads the global flags out of args. Command names, their arguments and
// flags it does not know are left for the command tree, so parsing never
// fails on them.
func Parse(args []string) (*app.Config, error) {
	slog.Debug("CLI pre-parser started.")
	cfg := app.DefaultConfig()

	fs := pflag.NewFlagSet("consolekit", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.ParseErrorsWhitelist.UnknownFlags = true
	cfg.BindFlags(fs)
	// Swallowed so that flags after --help are still read.
	fs.BoolP("help", "h", false, "")

	if err := fs.Parse(args); err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI pre-parser finished.", "config", cfg)
	return &cfg, nil
}

// Code maps an error returned by the application to an exit code.
func Code(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, app.ErrUsage) {
		return ExitUsage
	}
	return ExitFailure
}
