package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/consolekit/internal/ctxlog"
	"github.com/specialistvlad/consolekit/internal/fsutil"
)

// DefaultEnv is the environment used when neither the flags, the files nor the
// process environment name one.
const DefaultEnv = "prod"

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// Dir holds the base *.hcl files and one subdirectory per environment.
	Dir string
	// Env overrides app.env when non-empty.
	Env string
	// EnvPrefix selects the environment variables mapped onto keys, e.g.
	// CONSOLEKIT_ maps CONSOLEKIT_LOGGER_MAX_FILES to logger.max_files.
	EnvPrefix string
	// Defaults maps dotted keys to their lowest-precedence values.
	Defaults map[string]any
	// Environ replaces os.Environ, for tests.
	Environ []string
}

// Load builds a Configs from defaults, the base files, the overlay for the
// active environment and the process environment, in that order of precedence.
// The resolved environment name is stored back under app.env.
func Load(ctx context.Context, opts LoadOptions) (*Configs, error) {
	logger := ctxlog.FromContext(ctx)
	c := New()
	for key, val := range opts.Defaults {
		c.SetDefault(key, val)
	}

	parser := hclparse.NewParser()

	baseFiles, err := fsutil.FindTopLevelFiles(opts.Dir, ".hcl")
	if err != nil {
		return nil, errors.Wrap(err, "failed to find config files")
	}
	if len(baseFiles) == 0 {
		logger.Warn("No .hcl config files found, using defaults.", "path", opts.Dir)
	}
	if err := c.mergeFiles(parser, baseFiles); err != nil {
		return nil, err
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	c.applyEnvironment(opts.EnvPrefix, environ)

	env := opts.Env
	if env == "" {
		env = c.GetString("app.env", DefaultEnv)
	}

	overlayFiles, err := fsutil.FindFilesByExtension(filepath.Join(opts.Dir, env), ".hcl")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find config files for env %q", env)
	}
	if err := c.mergeFiles(parser, overlayFiles); err != nil {
		return nil, err
	}
	// Overlay files may introduce keys the first pass could not map.
	c.applyEnvironment(opts.EnvPrefix, environ)
	c.Set("app.env", env)

	logger.Debug("Configuration loaded.", "env", env, "base_files", len(baseFiles), "overlay_files", len(overlayFiles))
	return c, nil
}

func (c *Configs) mergeFiles(parser *hclparse.Parser, paths []string) error {
	for _, path := range paths {
		values, err := decodeFile(parser, path)
		if err != nil {
			return err
		}
		if err := c.Merge(values); err != nil {
			return errors.Wrapf(err, "failed to merge %s", path)
		}
	}
	return nil
}

// applyEnvironment overrides keys from PREFIX_SECTION_KEY variables. A
// variable matching a known key (underscores standing for dots) sets that key;
// otherwise every underscore becomes a dot.
func (c *Configs) applyEnvironment(prefix string, environ []string) {
	if prefix == "" {
		return
	}
	prefix = strings.ToUpper(strings.TrimSuffix(prefix, "_")) + "_"

	known := make(map[string]string)
	for _, key := range c.v.AllKeys() {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}

	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		raw := strings.ToLower(strings.TrimPrefix(name, prefix))
		if raw == "" {
			continue
		}
		key, ok := known[raw]
		if !ok {
			key = strings.ReplaceAll(raw, "_", ".")
		}
		c.Set(key, value)
	}
}
