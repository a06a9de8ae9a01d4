package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mstolbov/crewboard/internal/cli/formatter"
	"github.com/mstolbov/crewboard/internal/domain"
)

// crewboardHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func crewboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// Sentinel form values for fields that do not change the patch.
const (
	keepValue  = "keep"
	clearValue = "clear"
)

// bulkEdit is the modal form that edits status, priority, and assignee
// for the current selection in one patch.
type bulkEdit struct {
	form     *huh.Form
	ids      []string
	status   string
	priority string
	assignee string
}

func newBulkEdit(ids []string, colleagues []domain.Colleague) *bulkEdit {
	e := &bulkEdit{ids: ids, status: keepValue, priority: keepValue, assignee: keepValue}

	assigneeOpts := []huh.Option[string]{
		huh.NewOption("Keep current", keepValue),
		huh.NewOption("Clear assignees", clearValue),
	}
	for _, c := range colleagues {
		assigneeOpts = append(assigneeOpts, huh.NewOption(c.Name, c.ID))
	}

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Keep current", keepValue),
					huh.NewOption("To do", string(domain.TaskTodo)),
					huh.NewOption("In progress", string(domain.TaskDoing)),
					huh.NewOption("Done", string(domain.TaskDone)),
				).
				Value(&e.status),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Keep current", keepValue),
					huh.NewOption("Urgent", "1"),
					huh.NewOption("High", "2"),
					huh.NewOption("Medium", "3"),
					huh.NewOption("Low", "low"),
				).
				Value(&e.priority),
			huh.NewSelect[string]().
				Title("Assignee").
				Options(assigneeOpts...).
				Value(&e.assignee),
		),
	).WithTheme(crewboardHuhTheme()).WithShowHelp(false)
	return e
}

// patch converts the form result into a partial update. Both fields on
// "keep" yields the zero patch, which callers skip.
func (e *bulkEdit) patch() domain.TaskPatch {
	var p domain.TaskPatch
	if e.status != keepValue {
		s := domain.TaskStatus(e.status)
		p.Status = &s
	}
	if e.priority != keepValue {
		pr := e.priority
		p.Priority = &pr
	}
	switch e.assignee {
	case keepValue:
	case clearValue:
		none := []string{}
		p.AssigneeIDs = &none
	default:
		ids := []string{e.assignee}
		p.AssigneeIDs = &ids
	}
	return p
}

func (e *bulkEdit) empty() bool {
	return e.status == keepValue && e.priority == keepValue && e.assignee == keepValue
}
