package domain

import "time"

// Task is a schedulable unit of work shown as a card on the board.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus

	// Priority carries two overlapping vocabularies that are treated as
	// equivalent: an urgency rank ("1", "2", "3") and the legacy labels
	// ("high", "medium", "low"). See NormalizePriority.
	Priority string

	DueAt *time.Time

	// CompletedAt is set exactly when Status transitions into done and
	// cleared when it transitions out of done.
	CompletedAt *time.Time

	CreatorID   string
	AssigneeIDs []string
	ProjectID   string

	Steps        []Step
	Deliverables []Deliverable
	Files        []Attachment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Step is a single checklist entry on a task.
type Step struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Deliverable is a named outcome attached to a task.
type Deliverable struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Attachment is a file reference attached to a task.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssignedTo reports whether the task belongs to the given colleague.
// A task with zero assignees is treated as implicitly assigned to its
// creator only.
func (t Task) AssignedTo(colleagueID string) bool {
	if len(t.AssigneeIDs) == 0 {
		return t.CreatorID == colleagueID
	}
	for _, id := range t.AssigneeIDs {
		if id == colleagueID {
			return true
		}
	}
	return false
}

// TaskPatch is a partial field update. Nil fields are left untouched.
// DueAt uses an explicit set flag so a patch can null out a due date.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *string
	DueAt       *time.Time
	DueAtSet    bool
	AssigneeIDs *[]string
	ProjectID   *string
}

// Apply returns a copy of t with the patch applied. Applying the same
// patch twice yields the same result as applying it once.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueAtSet {
		t.DueAt = copyTime(p.DueAt)
	}
	if p.AssigneeIDs != nil {
		t.AssigneeIDs = append([]string(nil), (*p.AssigneeIDs)...)
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	return t
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
