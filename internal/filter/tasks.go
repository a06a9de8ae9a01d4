package filter

import (
	"strings"
	"time"

	"github.com/mstolbov/crewboard/internal/domain"
)

// Tasks runs the task pipeline: project-facet join, task facets, then
// free-text search. now anchors the relative due/created buckets.
func Tasks(tasks []domain.Task, projects []domain.Project, cfg Config, now time.Time) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))

	byID := make(map[string]domain.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	search := strings.ToLower(strings.TrimSpace(cfg.Search))

	for _, t := range tasks {
		if len(cfg.Project) > 0 && !projectMatch(t, byID, cfg.Project) {
			continue
		}
		if !taskMatch(t, cfg.Task, now) {
			continue
		}
		if search != "" && !searchMatch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// projectMatch joins the task through its project id and requires every
// project facet to match. Tasks with no project are excluded outright once
// any project filter is active.
func projectMatch(t domain.Task, byID map[string]domain.Project, filters []Filter) bool {
	if t.ProjectID == "" {
		return false
	}
	p, ok := byID[t.ProjectID]
	if !ok {
		return false
	}
	for _, f := range filters {
		switch f.Type {
		case ByProjectClient:
			if p.Client != f.Value {
				return false
			}
		case ByProjectStatus:
			if string(p.Status) != f.Value {
				return false
			}
		case ByProjectTitle:
			if p.Title != f.Value {
				return false
			}
		}
	}
	return true
}

func taskMatch(t domain.Task, filters []Filter, now time.Time) bool {
	for _, f := range filters {
		switch f.Type {
		case ByStatus:
			if !strings.EqualFold(string(t.Status), f.Value) {
				return false
			}
		case ByPriority:
			if !domain.SamePriority(t.Priority, f.Value) {
				return false
			}
		case ByDue:
			if !dueMatch(t, f.Value, now) {
				return false
			}
		case ByCreated:
			if !createdMatch(t, f.Value, now) {
				return false
			}
		case ByHasSteps:
			if len(t.Steps) == 0 {
				return false
			}
		case ByHasDeliverables:
			if len(t.Deliverables) == 0 {
				return false
			}
		case ByHasFiles:
			if len(t.Files) == 0 {
				return false
			}
		}
	}
	return true
}

func dueMatch(t domain.Task, value string, now time.Time) bool {
	if t.DueAt == nil {
		return false
	}
	today := midnight(now)
	due := midnight(*t.DueAt)

	switch value {
	case DueToday:
		return due.Equal(today)
	case DueTomorrow:
		return due.Equal(today.AddDate(0, 0, 1))
	case DueOverdue:
		return due.Before(today) && t.Status != domain.TaskDone
	default:
		day, err := time.ParseInLocation("2006-01-02", value, now.Location())
		if err != nil {
			return false
		}
		return due.Equal(day)
	}
}

func createdMatch(t domain.Task, value string, now time.Time) bool {
	created := midnight(t.CreatedAt)
	today := midnight(now)
	switch value {
	case CreatedToday:
		return created.Equal(today)
	case CreatedYesterday:
		return created.Equal(today.AddDate(0, 0, -1))
	default:
		return false
	}
}

// searchMatch keeps tasks whose title or status contains the search text.
func searchMatch(t domain.Task, lowered string) bool {
	return strings.Contains(strings.ToLower(t.Title), lowered) ||
		strings.Contains(strings.ToLower(string(t.Status)), lowered)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
