package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mstolbov/crewboard/internal/domain"
	"github.com/spf13/cobra"
)

// newSeedCmd fills an empty database with a small demo team so the board
// has something to show on first run.
func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo colleagues, projects, and tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := time.Now().UTC()

			self := domain.Colleague{
				ID:       app.UserID,
				Name:     app.UserID,
				Position: "lead",
				Team:     "core",
			}
			self.Initials = self.AvatarInitials()

			colleagues := []domain.Colleague{
				self,
				{ID: uuid.NewString(), Name: "Ana Petrova", Position: "designer", Department: "product", Team: "core"},
				{ID: uuid.NewString(), Name: "Jonas Weber", Position: "engineer", Department: "engineering", Team: "core"},
				{ID: uuid.NewString(), Name: "Priya Nair", Position: "engineer", Department: "engineering", Team: "platform"},
			}
			for i := range colleagues {
				if colleagues[i].Initials == "" {
					colleagues[i].Initials = colleagues[i].AvatarInitials()
				}
				if err := app.Colleagues.Create(ctx, &colleagues[i]); err != nil {
					return fmt.Errorf("seeding colleague %q: %w", colleagues[i].Name, err)
				}
			}

			projects := []domain.Project{
				{ID: uuid.NewString(), Title: "Website relaunch", Client: "Acme", Status: domain.ProjectActive, CreatedAt: now},
				{ID: uuid.NewString(), Title: "Mobile app", Client: "Globex", Status: domain.ProjectPaused, CreatedAt: now},
			}
			for i := range projects {
				if err := app.Projects.Create(ctx, &projects[i]); err != nil {
					return fmt.Errorf("seeding project %q: %w", projects[i].Title, err)
				}
			}

			due := func(days int) *time.Time {
				d := now.AddDate(0, 0, days)
				return &d
			}
			tasks := []domain.Task{
				{Title: "Design review", Priority: "1", DueAt: due(0), AssigneeIDs: []string{colleagues[1].ID}, ProjectID: projects[0].ID},
				{Title: "Landing page copy", Priority: "2", DueAt: due(1), AssigneeIDs: []string{colleagues[1].ID, self.ID}, ProjectID: projects[0].ID},
				{Title: "API pagination", Priority: "3", DueAt: due(2), AssigneeIDs: []string{colleagues[2].ID}, ProjectID: projects[0].ID},
				{Title: "CI pipeline", Priority: "2", DueAt: due(3), AssigneeIDs: []string{colleagues[3].ID}},
				{Title: "Push notifications", Priority: "low", DueAt: due(7), AssigneeIDs: []string{colleagues[2].ID}, ProjectID: projects[1].ID},
				{Title: "Quarterly planning", Priority: "3", DueAt: due(5)},
				{Title: "Retro notes", Priority: "low", DueAt: due(-1), Status: domain.TaskDone},
			}
			for i := range tasks {
				t := &tasks[i]
				t.ID = uuid.NewString()
				if t.Status == "" {
					t.Status = domain.TaskTodo
				}
				if t.Status == domain.TaskDone {
					completed := now
					t.CompletedAt = &completed
				}
				t.CreatorID = self.ID
				t.CreatedAt = now
				t.UpdatedAt = now
				if err := app.Tasks.Create(ctx, t); err != nil {
					return fmt.Errorf("seeding task %q: %w", t.Title, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d colleagues, %d projects, %d tasks\n",
				len(colleagues), len(projects), len(tasks))
			return nil
		},
	}
}
