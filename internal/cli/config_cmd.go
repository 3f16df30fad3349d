package cli

import (
	"fmt"
	"os"

	"github.com/projextpal/projextpal-cli/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration files",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(app))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var project, force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with the defaults",
		Annotations: map[string]string{skipBootstrap: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := config.GlobalPath()
			write := config.WriteGlobal
			if project {
				target = config.ProjectPath()
				write = config.WriteProject
			}
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}

			cfg := config.Default()
			flags := cmd.Flags()
			if v, _ := flags.GetString("api-url"); v != "" {
				cfg.API.BaseURL = v
			}
			if v, _ := flags.GetString("ai-backend"); v != "" {
				cfg.AI.Backend = v
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			path, err := write(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "Write ./projextpal.yml instead of the global file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(app.config().Redacted())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
