package registry

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/ctxlog"
)

// ResolveServices checks the configured service names against the registry
// and returns their ids in bootstrap order. Kernel services are rejected:
// they are always started and cannot be selected. Every problem is reported
// in a single error.
func (r *Registry) ResolveServices(ctx context.Context, names []string) ([]ServiceID, error) {
	var problems []string
	wanted := make(map[ServiceID]bool)
	for _, name := range names {
		id, err := ParseServiceID(name)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if id.Kernel() {
			problems = append(problems, "service '"+name+"' is a kernel service and cannot be listed in services")
			continue
		}
		if _, ok := r.services[id]; !ok {
			problems = append(problems, "service '"+name+"' is configured but no module provides it")
			continue
		}
		wanted[id] = true
	}
	if len(problems) > 0 {
		return nil, validationError(problems)
	}

	var ids []ServiceID
	for _, id := range AllServices() {
		if wanted[id] {
			ids = append(ids, id)
		}
	}
	ctxlog.FromContext(ctx).Debug("Configured services resolved.", "services", ids)
	return ids, nil
}

// ResolveCommands checks the configured command names against the registry
// and returns them de-duplicated, in configuration order.
func (r *Registry) ResolveCommands(ctx context.Context, names []string) ([]string, error) {
	var problems []string
	seen := make(map[string]bool)
	var resolved []string
	for _, name := range names {
		if _, ok := r.commands[name]; !ok {
			problems = append(problems, "command '"+name+"' is configured but no module provides it")
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		resolved = append(resolved, name)
	}
	if len(problems) > 0 {
		return nil, validationError(problems)
	}
	ctxlog.FromContext(ctx).Debug("Configured commands resolved.", "commands", resolved)
	return resolved, nil
}

func validationError(problems []string) error {
	return errors.WithHint(
		errors.Newf("registry validation failed:\n- %s", strings.Join(problems, "\n- ")),
		"check the services and commands lists in the configuration")
}
