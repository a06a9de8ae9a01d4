package formatter

import (
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mstolbov/crewboard/internal/domain"
)

// TaskTable renders tasks as an aligned table for non-interactive output.
// Done tasks are faint; overdue due dates are highlighted.
func TaskTable(tasks []domain.Task, projects []domain.Project, now time.Time) string {
	byID := make(map[string]domain.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	head := color.New(color.Bold, color.Underline).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	late := color.New(color.FgHiRed).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow("", head("TITLE"), head("STATUS"), head("PRIORITY"), head("DUE"), head("PROJECT"))

	for _, t := range tasks {
		title := t.Title
		status := string(t.Status)
		if t.Status == domain.TaskDone {
			title = faint(title)
			status = faint(status)
		}

		due := ""
		if t.DueAt != nil {
			due = t.DueAt.Format("2006-01-02")
			if t.Status != domain.TaskDone && t.DueAt.Before(now) {
				due = late(due)
			}
		}

		project := ""
		if p, ok := byID[t.ProjectID]; ok {
			project = p.Title
		}

		tbl.AddRow(StatusGlyph(t.Status), title, status, PriorityLabel(t.Priority), due, project)
	}
	return tbl.String()
}

// WorkloadTable renders colleagues with their open task counts.
func WorkloadTable(cols []domain.Colleague, tasks []domain.Task) string {
	head := color.New(color.Bold, color.Underline).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(head("NAME"), head("POSITION"), head("TEAM"), head("OPEN"))

	for _, c := range cols {
		open := 0
		for _, t := range tasks {
			if t.Status != domain.TaskDone && t.AssignedTo(c.ID) {
				open++
			}
		}
		tbl.AddRow(c.Name, c.Position, c.Team, open)
	}
	return tbl.String()
}
