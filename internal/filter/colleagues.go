package filter

import (
	"sort"
	"strings"

	"github.com/mstolbov/crewboard/internal/domain"
)

// Colleagues runs the row pipeline: colleague facets, name search, optional
// hide-empty, sort, then the acting user pinned unconditionally at index 0.
// filteredTasks must be the output of Tasks for the same Config.
func Colleagues(cols []domain.Colleague, filteredTasks []domain.Task, cfg Config, selfID string) []domain.Colleague {
	search := strings.ToLower(strings.TrimSpace(cfg.Search))

	workload := make(map[string]int, len(cols))
	for _, c := range cols {
		workload[c.ID] = countAssigned(filteredTasks, c.ID)
	}

	var self *domain.Colleague
	out := make([]domain.Colleague, 0, len(cols))
	for _, c := range cols {
		if c.ID == selfID {
			cc := c
			self = &cc
			continue // pinned later, never filterable
		}
		if !colleagueMatch(c, cfg.Colleague) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		if cfg.HideEmpty && workload[c.ID] == 0 {
			continue
		}
		out = append(out, c)
	}

	sortColleagues(out, cfg.Sort, workload)

	if self == nil {
		// The acting user's record is momentarily unavailable; pin a
		// minimal placeholder so self-visibility still holds.
		self = &domain.Colleague{ID: selfID}
	}
	return append([]domain.Colleague{*self}, out...)
}

func colleagueMatch(c domain.Colleague, filters []Filter) bool {
	for _, f := range filters {
		switch f.Type {
		case ByDepartment:
			if c.Department != f.Value {
				return false
			}
		case ByPosition:
			if c.Position != f.Value {
				return false
			}
		case ByTeam:
			if c.Team != f.Value {
				return false
			}
		}
	}
	return true
}

func sortColleagues(cols []domain.Colleague, cfg SortConfig, workload map[string]int) {
	less := func(a, b domain.Colleague) bool {
		switch cfg.Field {
		case SortByPosition:
			if a.Position != b.Position {
				return a.Position < b.Position
			}
		case SortByWorkload:
			// Workload is the count of currently-filtered tasks assigned
			// to the row, always descending.
			if workload[a.ID] != workload[b.ID] {
				return workload[a.ID] > workload[b.ID]
			}
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	}
	sort.SliceStable(cols, func(i, j int) bool {
		if cfg.Desc && cfg.Field != SortByWorkload {
			return less(cols[j], cols[i])
		}
		return less(cols[i], cols[j])
	})
}

func countAssigned(tasks []domain.Task, colleagueID string) int {
	n := 0
	for _, t := range tasks {
		if t.AssignedTo(colleagueID) {
			n++
		}
	}
	return n
}
