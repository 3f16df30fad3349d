package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHintsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hints",
		Short: "Manage wizard tips",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Show every dismissed tip again",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Hints == nil {
				return fmt.Errorf("local state is not available")
			}
			n, err := app.Hints.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d tips.\n", n)
			return nil
		},
	})
	return cmd
}
