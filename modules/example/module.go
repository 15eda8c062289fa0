// Package example provides the example service and the example command, a
// walk through arguments, flags, paths, services and configuration.
package example

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gookit/color"
	"github.com/specialistvlad/consolekit/internal/ctxlog"
	"github.com/specialistvlad/consolekit/internal/registry"
	"github.com/spf13/cobra"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the example service and command.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterService(registry.ServiceExample, Provide)
	r.RegisterCommand("example", NewCommand)
}

// Provide sets the example service on the container.
func Provide(_ context.Context, c *registry.Container) error {
	c.Example = NewService()
	return nil
}

type options struct {
	opt1  bool
	opt2  bool
	dev   bool
	sleep int
}

// NewCommand builds the example command.
func NewCommand(c *registry.Container) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "example [arg1] [arg2]",
		Short: "Example command",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), c, opts, args)
		},
	}
	cmd.Flags().BoolVarP(&opts.opt1, "opt1", "o", false, "Test option (opt1).")
	cmd.Flags().BoolVarP(&opts.opt2, "opt2", "p", false, "Test option (opt2).")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "For development purposes only.")
	cmd.Flags().IntVar(&opts.sleep, "sleep", 0, "Seconds to sleep before finishing.")
	return cmd
}

func run(ctx context.Context, w io.Writer, c *registry.Container, opts options, args []string) error {
	fmt.Fprintln(w)
	if opts.dev {
		color.Fprintln(w, "<fg=yellow>DEV mode detected</>")
	} else {
		color.Fprintln(w, "<fg=blue>Try using --dev</>")
	}
	fmt.Fprintln(w)

	if opts.sleep > 0 {
		color.Fprintf(w, "<fg=yellow>Sleeping %ds...</>\n", opts.sleep)
		if err := sleep(ctx, time.Duration(opts.sleep)*time.Second); err != nil {
			return errors.Wrap(err, "sleep interrupted")
		}
		color.Fprintln(w, "<fg=green>Job Finished.</>")
	} else {
		color.Fprintln(w, "<fg=blue>Try using --sleep=[seconds]</>")
	}
	fmt.Fprintln(w)

	hints := []struct {
		given bool
		text  string
		hint  string
	}{
		{len(args) > 0, "Given Arg1: " + argAt(args, 0), "Try adding argument"},
		{len(args) > 1, "Given Arg2: " + argAt(args, 1), "Try adding another argument"},
		{opts.opt1, "Option1 Selected", "Try using --opt1 or -o"},
		{opts.opt2, "Option2 Selected", "Try using --opt2 or -p"},
	}
	for i, h := range hints {
		if h.given {
			fmt.Fprintln(w, h.text)
		} else {
			color.Fprintf(w, "<fg=blue>%s</>\n", h.hint)
		}
		if i == 1 {
			fmt.Fprintln(w)
		}
	}

	color.Fprintln(w, "\n\n <fg=yellow>--== Paths ==--</>\n")
	fmt.Fprintf(w, " * Base Path: %s\n", c.Paths.Base)
	fmt.Fprintf(w, " * Configs Path: %s\n", c.Paths.Configs)
	fmt.Fprintf(w, " * Storage Path: %s\n", c.Paths.Storage)
	fmt.Fprintf(w, " * Logs Path: %s\n", c.Paths.Logs)

	color.Fprintln(w, "\n <fg=yellow>--== Services ==--</>\n")
	fmt.Fprintf(w, " * Container Example: %s\n", c.Name)
	if c.Example != nil {
		fmt.Fprintf(w, " * Service Provider Example: %s\n", c.Example.Capitalize("name"))
	} else {
		color.Fprintln(w, ` * Service Provider Example: <fg=red>example service not configured</>`)
	}
	fmt.Fprintf(w, " * Configs Example: %v\n", c.Configs.Get("app.timezone", ""))
	fmt.Fprintf(w, " * App Env Example: %s\n", c.Env)
	fmt.Fprintf(w, " * Env Variable Example: %s\n", os.Getenv("CONSOLEKIT_APP_ENV"))
	fmt.Fprintln(w)

	ctxlog.FromContext(ctx).Info("Example command finished.", "args", len(args), "dev", opts.dev)
	return nil
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
