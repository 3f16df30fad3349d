package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/projextpal/projextpal-cli/internal/backend"
	"github.com/projextpal/projextpal-cli/internal/cli"
	"github.com/projextpal/projextpal-cli/internal/config"
	"github.com/projextpal/projextpal-cli/internal/db"
	"github.com/projextpal/projextpal-cli/internal/llm"
	"github.com/projextpal/projextpal-cli/internal/logging"
	"github.com/projextpal/projextpal-cli/internal/repository"
	"github.com/projextpal/projextpal-cli/internal/service"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{}
	app.IsInteractive = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	var database *sql.DB
	app.Bootstrap = func(ctx context.Context, flags *pflag.FlagSet) error {
		cfg, err := config.Load(flags)
		if err != nil {
			return err
		}
		app.Config = cfg

		logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return err
		}
		app.Logger = logger

		// Wire the AI generator
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.AI.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		creds := cfg.Credentials()
		gen, err := llm.New(ctx, cfg.LLM(), creds, observer)
		if err != nil {
			return fmt.Errorf("configuring ai backend: %w", err)
		}
		app.Generator = gen
		app.Creator = backend.NewClient(backend.Config{
			BaseURL:   cfg.API.BaseURL,
			TimeoutMs: cfg.API.TimeoutMs,
		}, creds, logger)

		// Local state is optional: the wizard works without it.
		database, err = db.OpenDB(cfg.State.DBPath)
		if err != nil {
			logger.Warn("local_state_unavailable", zap.String("path", cfg.State.DBPath), zap.Error(err))
			return nil
		}
		uow := db.NewSQLiteUnitOfWork(database)
		useCases := service.NewLogUseCaseObserver(logger)
		app.History = service.NewHistoryService(repository.NewSQLiteHistoryRepo(database), uow, useCases)
		app.Hints = service.NewHintService(repository.NewSQLiteHintRepo(database), useCases)
		return nil
	}
	app.Shutdown = func() {
		if database != nil {
			database.Close()
		}
		if app.Logger != nil {
			_ = app.Logger.Sync()
		}
	}
	app.Now = time.Now

	return cli.Execute(ctx, app)
}
