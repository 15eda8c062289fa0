package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/app"
	"github.com/specialistvlad/consolekit/internal/cli"
)

// main is the entrypoint for the consolekit application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		report(os.Stderr, err)
		os.Exit(cli.Code(err))
	}
}

// report prints err unless the error handler already did.
func report(errW io.Writer, err error) {
	if errors.Is(err, app.ErrRendered) {
		return
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(errW, exitErr.Message)
		return
	}
	fmt.Fprintf(errW, "Error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(errW, "Hint: %s\n", hint)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) (err error) {
	appConfig, err := cli.Parse(args)
	if err != nil {
		return err
	}

	// Duplicate registrations panic; report them as a startup failure.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("application startup panicked: %v", r)
		}
	}()

	consoleApp, err := app.New(ctx, outW, errW, *appConfig)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := consoleApp.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to shut down")
		}
	}()

	return consoleApp.Run(ctx, args)
}
