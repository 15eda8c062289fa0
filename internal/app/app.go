package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/ctxlog"
	"github.com/specialistvlad/consolekit/internal/handlers"
	"github.com/specialistvlad/consolekit/internal/registry"
	"github.com/spf13/cobra"
)

// App encapsulates the application's services, its command tree and its
// lifecycle. It is built once in main and passed down explicitly.
type App struct {
	cfg       Config
	outW      io.Writer
	errW      io.Writer
	logger    *slog.Logger
	registry  *registry.Registry
	container *registry.Container
	errors    *handlers.ErrorHandler
	root      *cobra.Command
}

// New bootstraps the application: kernel services first, then the services
// and commands named in the configuration. With no modules given the
// compiled-in coreModules are used. Any failure is a startup error and the
// partially built services are closed again.
func New(ctx context.Context, outW, errW io.Writer, cfg Config, modules ...registry.Module) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Mark(err, ErrUsage)
	}

	log := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx = ctxlog.WithLogger(ctx, log)
	log.Debug("Logger configured successfully.")

	reg := registry.New()
	(&kernelModule{cfg: &cfg, errW: errW}).Register(reg)
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	log.Debug("All Go modules registered.", "count", len(modules), "commands", reg.CommandNames())

	paths, err := resolvePaths(&cfg)
	if err != nil {
		return nil, err
	}
	a := &App{
		cfg:       cfg,
		outW:      outW,
		errW:      errW,
		logger:    log,
		registry:  reg,
		container: &registry.Container{Paths: paths},
	}
	if err := a.bootstrap(ctx); err != nil {
		if cerr := a.container.Close(); cerr != nil {
			log.Warn("Failed to release services after startup error.", "error", cerr)
		}
		return nil, err
	}
	log.Debug("Application bootstrapped.", "name", a.container.Name, "env", a.container.Env)
	return a, nil
}

func (a *App) bootstrap(ctx context.Context) error {
	for _, id := range []registry.ServiceID{registry.ServiceConfigs, registry.ServiceLogger} {
		if err := a.startService(ctx, id); err != nil {
			return err
		}
	}

	cfgs := a.container.Configs
	eh, err := handlers.NewErrorHandler(cfgs.GetString("handlers.renderer", handlers.RendererCLI), a.errW, a.container.Logger)
	if err != nil {
		return errors.Wrap(err, "invalid handlers.renderer")
	}
	a.errors = eh

	ids, err := a.registry.ResolveServices(ctx, cfgs.GetStringSlice("services", nil))
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := a.startService(ctx, id); err != nil {
			return err
		}
	}

	names, err := a.registry.ResolveCommands(ctx, cfgs.GetStringSlice("commands", nil))
	if err != nil {
		return err
	}
	a.root = a.newRootCommand(names)
	return nil
}

func (a *App) startService(ctx context.Context, id registry.ServiceID) error {
	provider, ok := a.registry.Service(id)
	if !ok {
		return errors.Newf("service %q has no provider", id)
	}
	if err := provider(ctx, a.container); err != nil {
		return errors.Wrapf(err, "failed to start service %s", id)
	}
	if !a.container.Has(id) {
		return errors.Newf("service %q provider did not set the service", id)
	}
	ctxlog.FromContext(ctx).Debug("Service started.", "service", id)
	return nil
}

// Container returns the resolved services.
func (a *App) Container() *registry.Container {
	return a.container
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Close releases every started service.
func (a *App) Close() error {
	return a.container.Close()
}
