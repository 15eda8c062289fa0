package app

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/config"
	"github.com/specialistvlad/consolekit/internal/handlers"
	"github.com/specialistvlad/consolekit/internal/logger"
	"github.com/specialistvlad/consolekit/internal/registry"
	"github.com/specialistvlad/consolekit/internal/sinks"
)

const (
	DefaultName     = "consolekit"
	DefaultVersion  = "0.1.0"
	DefaultTimezone = "UTC"
	DefaultMaxFiles = 7
)

// kernelModule provides the services every application starts with.
type kernelModule struct {
	cfg  *Config
	errW io.Writer
}

func (m *kernelModule) Register(r *registry.Registry) {
	r.RegisterService(registry.ServiceConfigs, m.provideConfigs)
	r.RegisterService(registry.ServiceLogger, m.provideLogger)
}

func resolvePaths(cfg *Config) (registry.Paths, error) {
	base, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return registry.Paths{}, errors.Wrapf(err, "failed to resolve base path %s", cfg.BasePath)
	}
	storage := filepath.Join(base, "storage")
	return registry.Paths{
		Base:    base,
		Configs: cfg.configDir(base),
		Storage: storage,
		Logs:    filepath.Join(storage, "logs"),
	}, nil
}

func defaultSettings(p registry.Paths) map[string]any {
	return map[string]any{
		"app.name":                DefaultName,
		"app.version":             DefaultVersion,
		"app.env":                 config.DefaultEnv,
		"app.timezone":            DefaultTimezone,
		"services":                []string{},
		"commands":                []string{},
		"handlers.renderer":       handlers.RendererCLI,
		"logger.path":             filepath.Join(p.Logs, "app.log"),
		"logger.max_files":        DefaultMaxFiles,
		"logger.date_format":      sinks.DefaultDateFormat,
		"logger.sinks":            []string{sinkRotating},
		"logger.remote.url":       "",
		"logger.remote.namespace": sinks.DefaultNamespace,
		"logger.remote.event":     sinks.DefaultEvent,
	}
}

func (m *kernelModule) provideConfigs(ctx context.Context, c *registry.Container) error {
	cfgs, err := config.Load(ctx, config.LoadOptions{
		Dir:       c.Paths.Configs,
		Env:       m.cfg.Env,
		EnvPrefix: EnvPrefix,
		Defaults:  defaultSettings(c.Paths),
		Environ:   m.cfg.Environ,
	})
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	c.Configs = cfgs
	c.Name = cfgs.GetString("app.name", DefaultName)
	c.Version = cfgs.GetString("app.version", DefaultVersion)
	c.Env = cfgs.GetString("app.env", config.DefaultEnv)
	return nil
}

func (m *kernelModule) provideLogger(_ context.Context, c *registry.Container) error {
	cfgs := c.Configs
	tz := cfgs.GetString("app.timezone", DefaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return errors.Wrapf(err, "invalid app.timezone %q", tz)
	}
	now := func() time.Time { return time.Now().In(loc) }

	channel := cfgs.GetString("logger.channel", c.Name)
	l := logger.New(channel, logger.WithClock(now))
	for _, name := range cfgs.GetStringSlice("logger.sinks", []string{sinkRotating}) {
		factory, ok := sinkFactories[name]
		if !ok {
			_ = l.Close()
			return errors.WithHintf(errors.Newf("unknown log sink %q", name),
				"valid sinks: %s", strings.Join(sinkNames(), ", "))
		}
		s, err := factory(sinkEnv{container: c, errW: m.errW, now: now})
		if err != nil {
			_ = l.Close()
			return errors.Wrapf(err, "failed to create %s log sink", name)
		}
		l.PushSink(s)
	}
	c.Logger = l
	c.OnClose(l.Close)
	return nil
}

const (
	sinkRotating = "rotating"
	sinkStream   = "stream"
	sinkSocketIO = "socketio"
)

type sinkEnv struct {
	container *registry.Container
	errW      io.Writer
	now       func() time.Time
}

var sinkFactories = map[string]func(env sinkEnv) (logger.Sink, error){
	sinkRotating: func(env sinkEnv) (logger.Sink, error) {
		cfgs := env.container.Configs
		path := cfgs.GetString("logger.path", filepath.Join(env.container.Paths.Logs, "app.log"))
		if !filepath.IsAbs(path) {
			path = filepath.Join(env.container.Paths.Base, path)
		}
		return sinks.NewRotatingFile(path,
			cfgs.GetInt("logger.max_files", DefaultMaxFiles),
			sinks.WithDateFormat(cfgs.GetString("logger.date_format", sinks.DefaultDateFormat)),
			sinks.WithClock(env.now),
		)
	},
	sinkStream: func(env sinkEnv) (logger.Sink, error) {
		return sinks.NewStream(env.errW), nil
	},
	sinkSocketIO: func(env sinkEnv) (logger.Sink, error) {
		cfgs := env.container.Configs
		return sinks.NewSocketIO(
			cfgs.GetString("logger.remote.url", ""),
			cfgs.GetString("logger.remote.namespace", sinks.DefaultNamespace),
			cfgs.GetString("logger.remote.event", sinks.DefaultEvent),
		)
	},
}

func sinkNames() []string {
	names := make([]string, 0, len(sinkFactories))
	for name := range sinkFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
