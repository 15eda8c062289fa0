// Package addresses provides the addresses demo command, which lists the
// newest rows of the address table.
package addresses

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/gookit/color"
	"github.com/specialistvlad/consolekit/internal/ctxlog"
	"github.com/specialistvlad/consolekit/internal/registry"
	"github.com/specialistvlad/consolekit/modules/database"
	"github.com/spf13/cobra"
)

const DefaultLimit = 10

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the addresses command.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("addresses", NewCommand)
}

// NewCommand builds the addresses command. It needs the db service.
func NewCommand(c *registry.Container) *cobra.Command {
	var (
		native bool
		limit  int
		initDB bool
	)
	cmd := &cobra.Command{
		Use:   "addresses",
		Short: "Lists the newest addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.DB == nil {
				return errors.WithHint(errors.New("addresses needs the db service"),
					`add "db" to the services list`)
			}
			if limit <= 0 {
				return errors.Newf("limit must be positive, got %d", limit)
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			model := Model{DB: c.DB, Driver: c.Configs.GetString("db.driver", database.DriverSQLite)}

			if initDB {
				if err := model.EnsureSchema(ctx); err != nil {
					return err
				}
			}

			fmt.Fprintln(out)
			var (
				rows []Address
				err  error
			)
			if native {
				color.Fprintln(out, "<fg=yellow>With the single-table query...</>")
				rows, err = model.LastNative(ctx, limit)
			} else {
				rows, err = model.Last(ctx, limit)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out)

			ctxlog.FromContext(ctx).Debug("Addresses listed.", "rows", len(rows), "native", native)
			if err := render(out, rows); err != nil {
				return errors.Wrap(err, "failed to render addresses")
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&native, "native", "n", false, "Query the address table alone, without the city join.")
	cmd.Flags().IntVar(&limit, "limit", DefaultLimit, "Number of addresses to list.")
	cmd.Flags().BoolVar(&initDB, "init", false, "Create the address and city tables when missing.")
	return cmd
}

func render(w io.Writer, rows []Address) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "#ID\tAddress\tDistrict\tCity\tPostal Code\tPhone")
	for _, a := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.Address, a.District, a.City, a.PostalCode, a.Phone)
	}
	return tw.Flush()
}
