package cli

import (
	"fmt"

	"github.com/projextpal/projextpal-cli/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRecentCmd(app *App) *cobra.Command {
	var (
		limit    int
		entity   string
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List what was created from this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return fmt.Errorf("local history is not available")
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if clearAll {
				n, err := app.History.Clear(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Cleared %d history entries.\n", n)
				return nil
			}

			if entity != "" {
				if entity == "time" {
					entity = "time entry"
				}
				switch entity {
				case "program", "project", "time entry":
				default:
					return fmt.Errorf("unknown type %q: use program, project or time", entity)
				}
			}

			records, err := app.History.Recent(ctx, entity, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.RenderHistory(records, app.config().WebLink, app.now()))
			if len(records) == 0 {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum entries to show")
	cmd.Flags().StringVar(&entity, "type", "", "Only show program, project or time")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete the local history")
	return cmd
}
