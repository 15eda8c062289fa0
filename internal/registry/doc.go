// Package registry is the compile-time table that ties names used in the
// configuration ("services", "commands") to the Go code implementing them.
//
// Modules register service providers, keyed by the closed ServiceID set, and
// cobra command factories, keyed by command name. At startup the application
// resolves the configured names against the registry, runs the providers
// once to fill a typed Container and builds the commands from it. Names in
// the configuration that nothing registered are startup errors.
package registry
