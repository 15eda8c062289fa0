// Package app contains the application kernel. New loads the configuration,
// starts the kernel services (configuration and logger), resolves the
// services and commands named in the configuration against the registry and
// builds the cobra command tree. Run dispatches exactly one command and routes
// its failure through the error handler.
package app
