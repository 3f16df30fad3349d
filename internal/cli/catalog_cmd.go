package cli

import (
	"fmt"

	"github.com/projextpal/projextpal-cli/internal/catalog"
	"github.com/projextpal/projextpal-cli/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "catalog [program|project|time]",
		Short:       "List the categories the assistant can recommend",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipBootstrap: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				c, ok := catalog.ByName(args[0])
				if !ok {
					return fmt.Errorf("unknown catalog %q: use program, project or time", args[0])
				}
				fmt.Fprintln(out, formatter.Header(c.Name()))
				fmt.Fprint(out, formatter.RenderCatalog(c))
				return nil
			}
			for i, c := range []*catalog.Catalog{catalog.Programs, catalog.Projects, catalog.Activities} {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, formatter.Header(c.Name()))
				fmt.Fprint(out, formatter.RenderCatalog(c))
			}
			return nil
		},
	}
}
