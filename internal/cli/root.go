// Package cli implements the projextpal command tree and the interactive
// creation wizard.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/projextpal/projextpal-cli/internal/config"
	"github.com/projextpal/projextpal-cli/internal/llm"
	"github.com/projextpal/projextpal-cli/internal/service"
	"github.com/projextpal/projextpal-cli/internal/wizard"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// skipBootstrap marks commands that run without configuration or clients.
const skipBootstrap = "skip-bootstrap"

// App holds everything the commands use. Bootstrap, when set, fills the
// other fields from the resolved configuration before a command runs;
// tests leave it nil and set the fields directly.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Generator llm.TextGenerator
	Creator   wizard.Creator
	History   service.HistoryService
	Hints     service.HintService

	IsInteractive func() bool
	Bootstrap     func(ctx context.Context, flags *pflag.FlagSet) error
	Shutdown      func()

	// RunProgram runs a bubbletea model to completion.
	RunProgram func(ctx context.Context, m tea.Model, in io.Reader, out io.Writer) (tea.Model, error)
	Now        func() time.Time
}

func (a *App) config() *config.Config {
	if a.Config == nil {
		a.Config = config.Default()
	}
	return a.Config
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) runProgram(ctx context.Context, m tea.Model, in io.Reader, out io.Writer) (tea.Model, error) {
	if a.RunProgram != nil {
		return a.RunProgram(ctx, m, in, out)
	}
	return tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out)).Run()
}

// NewRootCmd creates the top-level "projextpal" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "projextpal",
		Short:         "Create programs, projects and time entries with an AI assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
				return nil
			}
			return app.Bootstrap(cmd.Context(), cmd.Flags())
		},
	}

	flags := root.PersistentFlags()
	flags.String("api-url", "", "ProjeXtPal API base URL")
	flags.String("token", "", "API bearer token")
	flags.String("ai-backend", "", "AI backend: projextpal, ollama or gemini")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Write logs to this file instead of stderr")
	flags.String("db", "", "Local state database path")

	root.AddCommand(
		newEntityCmd(app, entityProgram),
		newEntityCmd(app, entityProject),
		newEntityCmd(app, entityTime),
		newCatalogCmd(app),
		newRecentCmd(app),
		newHintsCmd(app),
		newConfigCmd(app),
	)

	return root
}

// Execute runs the root command with os.Args against app, then calls
// app.Shutdown.
func Execute(ctx context.Context, app *App) error {
	if app.Shutdown != nil {
		defer app.Shutdown()
	}
	root := NewRootCmd(app)
	root.SetIn(os.Stdin)
	return root.ExecuteContext(ctx)
}
