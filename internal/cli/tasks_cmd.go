package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/mstolbov/crewboard/internal/cli/formatter"
	"github.com/mstolbov/crewboard/internal/domain"
	"github.com/mstolbov/crewboard/internal/filter"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	var (
		status   string
		search   string
		mine     bool
		workload bool
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks without opening the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tasks, err := app.Tasks.List(ctx)
			if err != nil {
				return fmt.Errorf("loading tasks: %w", err)
			}
			projects, err := app.Projects.List(ctx)
			if err != nil {
				return fmt.Errorf("loading projects: %w", err)
			}

			if workload {
				colleagues, err := app.Colleagues.List(ctx)
				if err != nil {
					return fmt.Errorf("loading colleagues: %w", err)
				}
				fmt.Fprintln(color.Output, formatter.WorkloadTable(colleagues, tasks))
				return nil
			}

			cfg := filter.Config{Search: search}
			if status != "" {
				if !domain.ValidTaskStatuses[status] {
					return fmt.Errorf("unknown status %q (todo, doing, done)", status)
				}
				cfg.Task = append(cfg.Task, filter.Filter{Type: filter.ByStatus, Value: status})
			}

			now := time.Now()
			visible := filter.Tasks(tasks, projects, cfg, now)
			if mine {
				kept := visible[:0]
				for _, t := range visible {
					if t.AssignedTo(app.UserID) {
						kept = append(kept, t)
					}
				}
				visible = kept
			}
			domain.DisplayOrder(visible)

			fmt.Fprintln(color.Output, formatter.TaskTable(visible, projects, now))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (todo, doing, done)")
	cmd.Flags().StringVar(&search, "search", "", "filter by title or status text")
	cmd.Flags().BoolVar(&mine, "mine", false, "only tasks assigned to you")
	cmd.Flags().BoolVar(&workload, "workload", false, "show open task counts per colleague")
	return cmd
}
