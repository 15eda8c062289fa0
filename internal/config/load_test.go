package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestLoad_BlocksBecomeDottedKeys(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.hcl": `
app {
  name    = "consolekit"
  version = "1.2.3"
}

logger {
  max_files = 3
  ratio     = 0.5
  sinks     = ["rotating", "stream"]

  remote {
    url = "http://localhost:3000"
  }
}

commands = ["hello"]
`,
	})

	c, err := Load(context.Background(), LoadOptions{Dir: dir, Environ: []string{}})
	require.NoError(t, err)

	assert.Equal(t, "consolekit", c.GetString("app.name", ""))
	assert.Equal(t, "1.2.3", c.GetString("app.version", ""))
	assert.Equal(t, 3, c.GetInt("logger.max_files", 0))
	assert.Equal(t, 0.5, c.Get("logger.ratio", nil))
	assert.Equal(t, []string{"rotating", "stream"}, c.GetStringSlice("logger.sinks", nil))
	assert.Equal(t, "http://localhost:3000", c.GetString("logger.remote.url", ""))
	assert.Equal(t, []string{"hello"}, c.GetStringSlice("commands", nil))
	assert.Equal(t, DefaultEnv, c.GetString("app.env", ""))
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.hcl": `
app {
  name = "base"
  env  = "local"
}
logger {
  max_files = 7
  channel   = "base"
}
`,
		"local/logger.hcl": `
logger {
  max_files = 2
}
`,
		"staging/logger.hcl": `
logger {
  max_files = 30
}
`,
	})

	testCases := []struct {
		name         string
		opts         LoadOptions
		wantEnv      string
		wantMaxFiles int
		wantChannel  string
		wantName     string
	}{
		{
			name:         "env from base file selects overlay",
			opts:         LoadOptions{Dir: dir, Environ: []string{}},
			wantEnv:      "local",
			wantMaxFiles: 2,
			wantChannel:  "base",
			wantName:     "base",
		},
		{
			name:         "explicit env wins over file",
			opts:         LoadOptions{Dir: dir, Env: "staging", Environ: []string{}},
			wantEnv:      "staging",
			wantMaxFiles: 30,
			wantChannel:  "base",
			wantName:     "base",
		},
		{
			name: "environment variables win over every file",
			opts: LoadOptions{
				Dir:       dir,
				EnvPrefix: "CK_",
				Environ: []string{
					"CK_APP_ENV=staging",
					"CK_LOGGER_MAX_FILES=4",
					"CK_LOGGER_CHANNEL=from-env",
					"UNRELATED=1",
				},
			},
			wantEnv:      "staging",
			wantMaxFiles: 4,
			wantChannel:  "from-env",
			wantName:     "base",
		},
		{
			name:         "defaults fill missing keys only",
			opts:         LoadOptions{Dir: dir, Environ: []string{}, Defaults: map[string]any{"app.name": "default", "logger.channel": "x"}},
			wantEnv:      "local",
			wantMaxFiles: 2,
			wantChannel:  "base",
			wantName:     "base",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := Load(context.Background(), tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.wantEnv, c.GetString("app.env", ""))
			assert.Equal(t, tc.wantMaxFiles, c.GetInt("logger.max_files", 0))
			assert.Equal(t, tc.wantChannel, c.GetString("logger.channel", ""))
			assert.Equal(t, tc.wantName, c.GetString("app.name", ""))
		})
	}
}

func TestLoad_MissingDirUsesDefaults(t *testing.T) {
	t.Parallel()

	c, err := Load(context.Background(), LoadOptions{
		Dir:      filepath.Join(t.TempDir(), "absent"),
		Defaults: map[string]any{"app.name": "consolekit", "logger.max_files": 7},
		Environ:  []string{},
	})
	require.NoError(t, err)
	assert.Equal(t, "consolekit", c.GetString("app.name", ""))
	assert.Equal(t, 7, c.GetInt("logger.max_files", 0))
}

func TestLoad_EnvFunction(t *testing.T) {
	t.Setenv("CONSOLEKIT_TEST_TZ", "Europe/Lisbon")

	dir := writeFiles(t, map[string]string{
		"app.hcl": `
app {
  timezone = env("CONSOLEKIT_TEST_TZ", "UTC")
  locale   = env("CONSOLEKIT_TEST_UNSET_LOCALE", "en")
  empty    = env("CONSOLEKIT_TEST_UNSET_LOCALE")
}
`,
	})

	c, err := Load(context.Background(), LoadOptions{Dir: dir, Environ: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "Europe/Lisbon", c.GetString("app.timezone", ""))
	assert.Equal(t, "en", c.GetString("app.locale", ""))
	assert.Equal(t, "", c.GetString("app.empty", "unset"))
}

func TestLoad_InvalidHCL(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.hcl": `app {
  name = "broken"
`,
	})

	_, err := Load(context.Background(), LoadOptions{Dir: dir, Environ: []string{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestDecodeBody_LabelledBlocksNest(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"db.hcl": `
connection "primary" {
  driver = "sqlite"
}
connection "replica" {
  driver = "pgx"
}
connection "primary" {
  dsn = "file.db"
}
`,
	})

	c, err := Load(context.Background(), LoadOptions{Dir: dir, Environ: []string{}})
	require.NoError(t, err)

	want := map[string]any{
		"primary": map[string]any{"driver": "sqlite", "dsn": "file.db"},
		"replica": map[string]any{"driver": "pgx"},
	}
	if diff := cmp.Diff(want, c.Get("connection", nil)); diff != "" {
		t.Errorf("connection mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigs_Accessors(t *testing.T) {
	t.Parallel()

	c := New()
	c.Set("services", "example, db")
	c.Set("flags.dev", true)
	c.Set("limits.count", "12")
	c.Set("limits.bad", "twelve")

	assert.Equal(t, []string{"example", "db"}, c.GetStringSlice("services", nil))
	assert.Equal(t, []string{"x"}, c.GetStringSlice("missing", []string{"x"}))
	assert.True(t, c.GetBool("flags.dev", false))
	assert.Equal(t, 12, c.GetInt("limits.count", 0))
	assert.Equal(t, 5, c.GetInt("limits.bad", 5))
	assert.Equal(t, "fallback", c.Get("nope", "fallback"))
	assert.True(t, c.IsSet("flags.dev"))
	assert.Contains(t, c.All(), "limits")
}

func TestLoad_EnvironmentPrefixNeedsSeparator(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"app.hcl": "app {\n  name = \"base\"\n}\n",
	})
	c, err := Load(context.Background(), LoadOptions{
		Dir:       dir,
		EnvPrefix: "CONSOLEKIT",
		Environ: []string{
			"CONSOLEKITX_APP_NAME=lookalike",
			"CONSOLEKIT=bare",
			"CONSOLEKIT_LOGGER_CHANNEL=kept",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "base", c.GetString("app.name", ""))
	assert.Equal(t, "kept", c.GetString("logger.channel", ""))
	assert.False(t, c.IsSet("x.app.name"))
	assert.False(t, c.IsSet("consolekitx.app.name"))
}
