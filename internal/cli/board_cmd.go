package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive scheduling board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("the board needs an interactive terminal; try `crewboard tasks`")
			}

			ctx := cmd.Context()
			tasks, err := app.Tasks.List(ctx)
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}
			colleagues, err := app.Colleagues.List(ctx)
			if err != nil {
				return fmt.Errorf("loading colleagues: %w", err)
			}
			projects, err := app.Projects.List(ctx)
			if err != nil {
				return fmt.Errorf("loading projects: %w", err)
			}

			m := newBoardModel(app, tasks, colleagues, projects, time.Now)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running board: %w", err)
			}
			m.actions.Flush()
			return nil
		},
	}
}
