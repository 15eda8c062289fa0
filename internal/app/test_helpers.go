package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/consolekit/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteConfigFiles writes files, keyed by path relative to <base>/configs.
func WriteConfigFiles(t *testing.T, base string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(base, "configs", name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config file: %v", err)
		}
	}
}

// SetupAppTest builds an app in a temporary base directory holding the given
// configuration files. The process environment is ignored. It returns the app
// and the buffers standing in for stdout and stderr.
func SetupAppTest(t *testing.T, files map[string]string, modules ...registry.Module) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	base := t.TempDir()
	WriteConfigFiles(t, base, files)

	outBuf, errBuf := &SafeBuffer{}, &SafeBuffer{}
	cfg := DefaultConfig()
	cfg.BasePath = base
	cfg.LogLevel = "debug"
	cfg.Environ = []string{}

	testApp, err := New(context.Background(), outBuf, errBuf, cfg, modules...)
	if err != nil {
		t.Fatalf("app startup failed: %+v\nstderr:\n%s", err, errBuf.String())
	}
	t.Cleanup(func() {
		_ = testApp.Close()
		if os.Getenv("CONSOLEKIT_TEST_LOGS") == "true" {
			t.Logf("--- Full stderr for %s ---\n%s", t.Name(), errBuf.String())
		}
	})
	return testApp, outBuf, errBuf
}
