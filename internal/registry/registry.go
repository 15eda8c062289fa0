package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"
)

// Module is the interface that all compiled-in modules implement.
type Module interface {
	Register(r *Registry)
}

// ServiceProvider builds one service and stores it on the container.
type ServiceProvider func(ctx context.Context, c *Container) error

// CommandFactory builds a command bound to the resolved services.
type CommandFactory func(c *Container) *cobra.Command

// Registry holds the service providers and command factories of a single
// application instance.
type Registry struct {
	services map[ServiceID]ServiceProvider
	commands map[string]CommandFactory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		services: make(map[ServiceID]ServiceProvider),
		commands: make(map[string]CommandFactory),
	}
}

// RegisterService registers the provider for id. Registering an id outside
// the known set, or registering one twice, panics.
func (r *Registry) RegisterService(id ServiceID, provider ServiceProvider) {
	if !id.Valid() {
		panic(fmt.Sprintf("service id '%s' is not a known service", id))
	}
	if _, exists := r.services[id]; exists {
		panic(fmt.Sprintf("service provider with id '%s' already registered", id))
	}
	slog.Debug("Registering service provider.", "service", id)
	r.services[id] = provider
}

// RegisterCommand registers the factory for the named command. Registering a
// name twice panics.
func (r *Registry) RegisterCommand(name string, factory CommandFactory) {
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("command with name '%s' already registered", name))
	}
	slog.Debug("Registering command.", "command", name)
	r.commands[name] = factory
}

// Service returns the provider registered for id.
func (r *Registry) Service(id ServiceID) (ServiceProvider, bool) {
	p, ok := r.services[id]
	return p, ok
}

// Command returns the factory registered under name.
func (r *Registry) Command(name string) (CommandFactory, bool) {
	f, ok := r.commands[name]
	return f, ok
}

// CommandNames lists registered commands alphabetically.
func (r *Registry) CommandNames() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ServiceIDs lists registered services in bootstrap order.
func (r *Registry) ServiceIDs() []ServiceID {
	var ids []ServiceID
	for _, id := range AllServices() {
		if _, ok := r.services[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
