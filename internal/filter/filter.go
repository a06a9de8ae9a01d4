// Package filter is the pure, synchronous filter/sort layer. It computes
// the visible task set and the visible colleague row order from the raw
// collections plus a Config; it never mutates its inputs.
package filter

// Type identifies a filter facet. Filters of the same kind are ANDed.
type Type string

const (
	// Task facets.
	ByStatus          Type = "status"
	ByPriority        Type = "priority"
	ByDue             Type = "due"
	ByCreated         Type = "created"
	ByHasSteps        Type = "has_steps"
	ByHasDeliverables Type = "has_deliverables"
	ByHasFiles        Type = "has_files"

	// Project facets, joined through the task's project id.
	ByProjectClient Type = "client"
	ByProjectStatus Type = "project_status"
	ByProjectTitle  Type = "project_title"

	// Colleague facets.
	ByDepartment Type = "department"
	ByPosition   Type = "position"
	ByTeam       Type = "team"
)

// Due bucket values for the ByDue facet. Any other value is parsed as a
// specific calendar date (YYYY-MM-DD).
const (
	DueToday    = "today"
	DueTomorrow = "tomorrow"
	DueOverdue  = "overdue"
)

// Created bucket values for the ByCreated facet.
const (
	CreatedToday     = "today"
	CreatedYesterday = "yesterday"
)

// Filter is one (type, value) pair.
type Filter struct {
	Type  Type   `json:"type"`
	Value string `json:"value"`
}

// SortField selects the colleague row ordering.
type SortField string

const (
	SortByName     SortField = "name"
	SortByPosition SortField = "position"
	SortByWorkload SortField = "workload"
)

// SortConfig is the colleague sort field plus direction. Workload is always
// descending regardless of Desc.
type SortConfig struct {
	Field SortField `json:"field"`
	Desc  bool      `json:"desc"`
}

// Config is the full filter state for the board. The three filter lists are
// independent facets; Search applies to both pipelines.
type Config struct {
	Task      []Filter   `json:"task,omitempty"`
	Project   []Filter   `json:"project,omitempty"`
	Colleague []Filter   `json:"colleague,omitempty"`
	Search    string     `json:"search,omitempty"`
	HideEmpty bool       `json:"hide_empty,omitempty"`
	Sort      SortConfig `json:"sort,omitempty"`
}

// Active reports whether any narrowing is configured.
func (c Config) Active() bool {
	return len(c.Task) > 0 || len(c.Project) > 0 || len(c.Colleague) > 0 ||
		c.Search != "" || c.HideEmpty
}
