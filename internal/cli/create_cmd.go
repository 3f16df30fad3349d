package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/projextpal/projextpal-cli/internal/cli/formatter"
	"github.com/projextpal/projextpal-cli/internal/flows"
	"github.com/projextpal/projextpal-cli/internal/wizard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type entitySpec struct {
	use     string
	aliases []string
	short   string
	flow    string
	example string
}

var (
	entityProgram = entitySpec{
		use: "program", aliases: []string{"programs"}, short: "Create programs", flow: "program",
		example: `  projextpal program create "Digital transformation across three business units"`,
	}
	entityProject = entitySpec{
		use: "project", aliases: []string{"projects"}, short: "Create projects", flow: "project",
		example: `  projextpal project create "Customer portal over 6 months with a cross-functional team"`,
	}
	entityTime = entitySpec{
		use: "time", aliases: []string{"time-entry", "te"}, short: "Log time entries", flow: "time",
		example: `  projextpal time create "Two hours of sprint planning with the portal team"`,
	}
)

type createOptions struct {
	noTUI    bool
	category string
	set      []string
	yes      bool
	skipAI   bool
}

func newEntityCmd(app *App, spec entitySpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.use,
		Aliases: spec.aliases,
		Short:   spec.short,
	}
	cmd.AddCommand(newCreateCmd(app, spec))
	return cmd
}

func newCreateCmd(app *App, spec entitySpec) *cobra.Command {
	var opts createOptions

	tmpl, _ := flows.ByName(spec.flow)
	cmd := &cobra.Command{
		Use:     "create [idea]",
		Short:   fmt.Sprintf("Create a %s from a free-text idea", tmpl.Entity),
		Example: spec.example,
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, _ := flows.ByName(spec.flow)
			idea := strings.TrimSpace(strings.Join(args, " "))
			if !opts.noTUI && app.interactive() {
				return runWizardTUI(cmd.Context(), app, tmpl, idea, opts, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return runHeadless(cmd.Context(), app, tmpl, idea, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "Run without the interactive wizard")
	cmd.Flags().StringVar(&opts.category, "category", "", "Category key, overriding the AI recommendation")
	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "Set a field, e.g. --set name=Portal --set projects=4,5 (repeatable)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Create without a dry run")
	cmd.Flags().BoolVar(&opts.skipAI, "skip-ai", false, "Choose the category yourself instead of asking the AI")
	return cmd
}

func newController(app *App, tmpl *wizard.Template, notifier wizard.Notifier) *wizard.Controller {
	cfg := app.config()
	return wizard.NewController(tmpl, app.Generator, app.Creator,
		wizard.WithNotifier(notifier),
		wizard.WithLogger(app.logger()),
		wizard.WithAITimeout(time.Duration(cfg.AI.TimeoutMs)*time.Millisecond),
		wizard.WithClock(app.now),
	)
}

func printNotifier(w io.Writer) wizard.Notifier {
	return wizard.NotifierFunc(func(n wizard.Notification) {
		fmt.Fprintln(w, formatter.Notification(n))
	})
}

// runHeadless drives the controller from flags: analyze (or skip), pick
// the category, apply --set values, review, then create when --yes is set.
func runHeadless(ctx context.Context, app *App, tmpl *wizard.Template, idea string, opts createOptions, out, errOut io.Writer) error {
	c := newController(app, tmpl, printNotifier(errOut))
	defer c.Close()

	if opts.skipAI {
		if err := c.ChooseManually(idea); err != nil {
			return err
		}
	} else {
		var stop func()
		if app.interactive() {
			stop = formatter.StartSpinner(errOut, "Analyzing your idea...")
		}
		err := c.AnalyzeIdea(ctx, idea)
		if stop != nil {
			stop()
		}
		var aiErr *wizard.AIUnavailableError
		switch {
		case errors.As(err, &aiErr) && opts.category != "":
			if err := c.ChooseManually(idea); err != nil {
				return err
			}
		case aiErr != nil:
			return &ReportedError{Err: err}
		case err != nil:
			return err
		}
	}

	s, ok := c.Snapshot()
	if !ok {
		return wizard.ErrSessionClosed
	}
	if s.Recommendation != nil {
		cat, _ := tmpl.Catalog.Get(s.Recommendation.Category)
		fmt.Fprintln(out, formatter.RenderRecommendation(cat, *s.Recommendation, s.Source))
	}

	category := s.Form[wizard.CategoryField]
	if opts.category != "" {
		category = opts.category
	}
	if err := c.SelectCategory(category); err != nil {
		return err
	}

	fields, err := parseSetFlags(opts.set)
	if err != nil {
		return err
	}
	for _, kv := range fields {
		if err := c.SetField(kv[0], kv[1]); err != nil {
			return err
		}
	}

	if err := c.GoToReview(); err != nil {
		return err
	}
	s, _ = c.Snapshot()
	fmt.Fprintln(out, formatter.RenderReview(tmpl, s.Form))

	if !opts.yes {
		fmt.Fprintln(out, formatter.Dim("Dry run. Pass --yes to create this "+tmpl.Entity+"."))
		return nil
	}

	created, err := c.Submit(ctx)
	var cerr *wizard.CreationFailedError
	if errors.As(err, &cerr) {
		return &ReportedError{Err: err}
	}
	if err != nil {
		return err
	}
	recordCreation(ctx, app, created, s.Recommendation, s.Source)
	printCreated(out, app, created)
	return nil
}

// parseSetFlags splits each "field=value" at the first "=". A later value
// for the same field wins.
func parseSetFlags(values []string) ([][2]string, error) {
	out := make([][2]string, 0, len(values))
	for _, raw := range values {
		name, value, ok := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, &wizard.ValidationError{Field: "set", Message: fmt.Sprintf("%q must be formatted as field=value", raw)}
		}
		out = append(out, [2]string{name, value})
	}
	return out, nil
}

func printCreated(w io.Writer, app *App, created *wizard.Created) {
	fmt.Fprintf(w, "%s %s %s (id %s)\n",
		formatter.StyleGreen.Render("✔"),
		"Created "+created.Entity,
		formatter.Bold(created.Name),
		created.ID)
	fmt.Fprintf(w, "  %s\n", formatter.StyleBlue.Render(app.config().WebLink(created.Path)))
}

// recordCreation keeps local history. Failures are logged and not
// returned.
func recordCreation(ctx context.Context, app *App, created *wizard.Created, rec *wizard.Recommendation, source wizard.Source) {
	if app.History == nil {
		return
	}
	if _, err := app.History.Record(context.WithoutCancel(ctx), created, rec, source); err != nil {
		app.logger().Warn("history_record_failed", zap.String("id", created.ID), zap.Error(err))
	}
}
