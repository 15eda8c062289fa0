package app

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
)

// EnvPrefix selects the environment variables that override configuration
// keys, e.g. CONSOLEKIT_APP_ENV.
const EnvPrefix = "CONSOLEKIT"

// Config holds the process-level settings taken from the command line.
type Config struct {
	BasePath   string
	ConfigPath string // defaults to <BasePath>/configs
	Env        string // overrides app.env when set

	LogLevel  string
	LogFormat string

	// Environ replaces os.Environ when loading configuration, for tests.
	Environ []string
}

// DefaultConfig returns the settings used when no flag is given.
func DefaultConfig() Config {
	return Config{
		BasePath:  ".",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// BindFlags registers the global flags on fs, writing into c.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.BasePath, "base-path", c.BasePath, "Application base directory.")
	fs.StringVar(&c.ConfigPath, "config-path", c.ConfigPath, "Directory holding the .hcl configuration (default <base-path>/configs).")
	fs.StringVar(&c.Env, "env", c.Env, "Environment overlay to load, overrides app.env.")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Kernel log level: 'debug', 'info', 'warn' or 'error'.")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Kernel log format: 'text' or 'json'.")
}

// Validate normalises and checks the settings.
func (c *Config) Validate() error {
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.Newf("invalid log-format %q: must be 'text' or 'json'", c.LogFormat)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.Newf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	if c.BasePath == "" {
		return errors.New("base-path cannot be empty")
	}
	return nil
}

func (c *Config) configDir(base string) string {
	if c.ConfigPath == "" {
		return filepath.Join(base, "configs")
	}
	if filepath.IsAbs(c.ConfigPath) {
		return c.ConfigPath
	}
	return filepath.Join(base, c.ConfigPath)
}
