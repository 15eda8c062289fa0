package app

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/ctxlog"
	"github.com/spf13/cobra"
)

// kernelCommands are added whenever a module provides them, without being
// listed in the configuration.
var kernelCommands = []string{"deps"}

func (a *App) newRootCommand(configured []string) *cobra.Command {
	root := &cobra.Command{
		Use:           a.container.Name,
		Short:         a.container.Name + " console application",
		Version:       a.container.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	a.cfg.BindFlags(root.PersistentFlags())
	root.SetOut(a.outW)
	root.SetErr(a.errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Mark(err, ErrUsage)
	})

	added := make(map[string]bool)
	for _, name := range append(append([]string(nil), kernelCommands...), configured...) {
		factory, ok := a.registry.Command(name)
		if !ok || added[name] {
			continue
		}
		added[name] = true
		cmd := factory(a.container)
		a.guard(cmd)
		root.AddCommand(cmd)
	}
	return root
}

// guard routes panics raised by cmd and its subcommands through the error
// handler.
func (a *App) guard(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			return a.errors.Recover(func() error { return run(c, args) })
		}
	} else if run := cmd.Run; run != nil {
		cmd.Run = nil
		cmd.RunE = func(c *cobra.Command, args []string) error {
			return a.errors.Recover(func() error { run(c, args); return nil })
		}
	}
	for _, sub := range cmd.Commands() {
		a.guard(sub)
	}
}

// Run dispatches args to one command. Failures from the command itself are
// rendered and logged by the error handler and returned marked ErrRendered;
// failures before the command starts are returned marked ErrUsage.
func (a *App) Run(ctx context.Context, args []string) error {
	level, _ := parseLevel(a.cfg.LogLevel)
	ctx = ctxlog.WithLogger(ctx, a.container.Logger.Slog(level))

	started := false
	a.root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		started = true
		cmd.SetContext(ctxlog.With(cmd.Context(), "command", cmd.CommandPath()))
		a.logger.Debug("Running command.", "command", cmd.CommandPath())
	}
	a.root.SetArgs(args)

	err := a.root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if !started {
		return errors.Mark(err, ErrUsage)
	}
	a.errors.Handle(err)
	return errors.Mark(err, ErrRendered)
}

// Root returns the command tree.
func (a *App) Root() *cobra.Command {
	return a.root
}
