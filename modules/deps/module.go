// Package deps provides the deps command, which checks the host for the
// tools and drivers the application relies on.
package deps

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gookit/color"
	"github.com/specialistvlad/consolekit/internal/registry"
	"github.com/specialistvlad/consolekit/modules/database"
	"github.com/spf13/cobra"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the deps command.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("deps", func(*registry.Container) *cobra.Command {
		return NewCommand(HostProbe())
	})
}

// NewCommand builds the deps command on top of probe.
func NewCommand(probe Probe) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "App dependencies checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blocks := Collect(cmd.Context(), probe, []string{database.DriverSQLite, database.DriverPgx})
			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			if err := Render(out, blocks); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// Render writes blocks as a table. The check column is last so colour codes
// do not disturb the alignment.
func Render(w io.Writer, blocks []Block) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Component\tSystem Version\tCheck")
	for _, b := range blocks {
		fmt.Fprintln(tw, "\t\t")
		fmt.Fprintf(tw, "%s\t\t\n", strings.ToUpper(b.Name))
		for _, c := range b.Checks {
			version := c.Version
			if version == "" {
				version = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Component, version, status(c.OK))
		}
	}
	return tw.Flush()
}

func status(ok bool) string {
	if ok {
		return color.Sprint("<fg=green>OK</>")
	}
	return color.Sprint("<fg=red>FAIL</>")
}
