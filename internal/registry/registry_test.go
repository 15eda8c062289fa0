package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopProvider(context.Context, *Container) error { return nil }

func namedCommand(name string) CommandFactory {
	return func(*Container) *cobra.Command { return &cobra.Command{Use: name} }
}

type upper struct{}

func (upper) Capitalize(s string) string { return s }

func TestRegisterService_PanicsOnDuplicate(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterService(ServiceExample, noopProvider)

	assert.PanicsWithValue(t, "service provider with id 'example' already registered", func() {
		r.RegisterService(ServiceExample, noopProvider)
	})
	assert.PanicsWithValue(t, "service id 'cache' is not a known service", func() {
		r.RegisterService(ServiceID("cache"), noopProvider)
	})
}

func TestRegisterCommand_PanicsOnDuplicate(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterCommand("hello", namedCommand("hello"))

	assert.PanicsWithValue(t, "command with name 'hello' already registered", func() {
		r.RegisterCommand("hello", namedCommand("hello"))
	})
}

func TestLookups(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterService(ServiceDB, noopProvider)
	r.RegisterService(ServiceLogger, noopProvider)
	r.RegisterCommand("zeta", namedCommand("zeta"))
	r.RegisterCommand("alpha", namedCommand("alpha"))

	_, ok := r.Service(ServiceDB)
	assert.True(t, ok)
	_, ok = r.Service(ServiceExample)
	assert.False(t, ok)

	f, ok := r.Command("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", f(&Container{}).Use)

	assert.Equal(t, []string{"alpha", "zeta"}, r.CommandNames())
	assert.Equal(t, []ServiceID{ServiceLogger, ServiceDB}, r.ServiceIDs())
}

func TestParseServiceID(t *testing.T) {
	t.Parallel()

	for _, id := range AllServices() {
		got, err := ParseServiceID(string(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	_, err := ParseServiceID("mailer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown service "mailer"`)

	assert.True(t, ServiceLogger.Kernel())
	assert.False(t, ServiceDB.Kernel())
}

func TestResolveServices(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterService(ServiceExample, noopProvider)
	r.RegisterService(ServiceDB, noopProvider)

	ids, err := r.ResolveServices(context.Background(), []string{"db", "example", "db"})
	require.NoError(t, err)
	assert.Equal(t, []ServiceID{ServiceExample, ServiceDB}, ids)

	ids, err = r.ResolveServices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestResolveServices_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterService(ServiceExample, noopProvider)

	_, err := r.ResolveServices(context.Background(), []string{"mailer", "logger", "db", "example"})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "registry validation failed")
	assert.Contains(t, msg, `unknown service "mailer"`)
	assert.Contains(t, msg, "service 'logger' is a kernel service")
	assert.Contains(t, msg, "service 'db' is configured but no module provides it")
	assert.NotContains(t, msg, "'example'")
}

func TestResolveCommands(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterCommand("hello", namedCommand("hello"))
	r.RegisterCommand("example", namedCommand("example"))

	names, err := r.ResolveCommands(context.Background(), []string{"example", "hello", "example"})
	require.NoError(t, err)
	assert.Equal(t, []string{"example", "hello"}, names)

	_, err = r.ResolveCommands(context.Background(), []string{"hello", "migrate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command 'migrate' is configured but no module provides it")
}

func TestContainer_CloseOrder(t *testing.T) {
	t.Parallel()

	var order []string
	c := &Container{}
	c.OnClose(func() error { order = append(order, "first"); return nil })
	c.OnClose(func() error { order = append(order, "second"); return errors.New("second failed") })
	c.OnClose(func() error { order = append(order, "third"); return nil })

	err := c.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second failed")
	assert.Equal(t, []string{"third", "second", "first"}, order)

	assert.NoError(t, c.Close())
}

func TestContainer_Has(t *testing.T) {
	t.Parallel()

	c := &Container{Example: upper{}}
	assert.True(t, c.Has(ServiceExample))
	assert.False(t, c.Has(ServiceDB))
	assert.False(t, c.Has(ServiceConfigs))
	assert.False(t, c.Has(ServiceID("nope")))
}
