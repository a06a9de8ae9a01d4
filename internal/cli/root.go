// Package cli wires the crewboard commands: the interactive board, the
// plain task listing, and the sample-data seeder.
package cli

import (
	"log/slog"

	"github.com/mstolbov/crewboard/internal/action"
	"github.com/mstolbov/crewboard/internal/repository"
	"github.com/spf13/cobra"
)

// PrefStore is the persisted preference surface the CLI needs. It is
// satisfied by the on-disk store and by in-memory fakes in tests.
type PrefStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// App holds the wired dependencies used by CLI commands.
type App struct {
	Tasks      repository.TaskRepo
	Colleagues repository.ColleagueRepo
	Projects   repository.ProjectRepo

	// Store is the (circuit-breaker guarded) task store the mutation
	// layer confirms against.
	Store    action.Store
	Observer action.Observer

	Prefs  PrefStore
	Logger *slog.Logger
	UserID string

	// IsInteractive reports whether stdin is attached to a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "crewboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "crewboard",
		Short: "Team scheduling board",
	}

	root.AddCommand(
		newBoardCmd(app),
		newTasksCmd(app),
		newSeedCmd(app),
	)

	return root
}
