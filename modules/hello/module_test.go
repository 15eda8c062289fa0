package hello

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/consolekit/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHello(t *testing.T) {
	t.Parallel()

	cmd := NewCommand(&registry.Container{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Hello World!\n", out.String())
}

func TestHello_RejectsArguments(t *testing.T) {
	t.Parallel()

	cmd := NewCommand(&registry.Container{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"world"})

	assert.Error(t, cmd.Execute())
}

func TestRegister(t *testing.T) {
	t.Parallel()

	r := registry.New()
	(&Module{}).Register(r)
	assert.Equal(t, []string{"hello"}, r.CommandNames())
}
