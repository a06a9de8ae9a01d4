package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mstolbov/crewboard/internal/action"
	"github.com/mstolbov/crewboard/internal/cli"
	"github.com/mstolbov/crewboard/internal/config"
	"github.com/mstolbov/crewboard/internal/db"
	"github.com/mstolbov/crewboard/internal/prefs"
	"github.com/mstolbov/crewboard/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	taskRepo := repository.NewSQLiteTaskRepo(database)

	var observer action.Observer = action.NoopObserver{}
	if os.Getenv("CREWBOARD_LOG_OPS") != "" {
		observer = action.NewLogObserver(os.Stderr)
	}

	app := &cli.App{
		Tasks:      taskRepo,
		Colleagues: repository.NewSQLiteColleagueRepo(database),
		Projects:   repository.NewSQLiteProjectRepo(database),
		Store:      action.NewGuardedStore(taskRepo),
		Observer:   observer,
		Prefs:      prefs.Open(cfg.PrefsPath),
		Logger:     slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		UserID:     cfg.UserID,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
