// Package cli handles process-level concerns: it pre-parses the global flags
// needed before the application can load its configuration and carries exit
// codes back to main.
package cli
