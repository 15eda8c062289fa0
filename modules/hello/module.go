// Package hello provides the hello command.
package hello

import (
	"fmt"

	"github.com/specialistvlad/consolekit/internal/registry"
	"github.com/spf13/cobra"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func NewCommand(_ *registry.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Prints a greeting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Hello World!")
			return err
		},
	}
}

// Register registers the hello command.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("hello", NewCommand)
}
