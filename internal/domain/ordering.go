package domain

import "sort"

// DisplayOrder sorts tasks in place using the deterministic listing rules:
// 1. Done tasks first, by completion time ascending (nil last among done)
// 2. Open tasks by urgency score ascending
// 3. Creation time ascending as the final tie-break
func DisplayOrder(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		doneA, doneB := a.Status == TaskDone, b.Status == TaskDone
		if doneA != doneB {
			return doneA
		}

		if doneA && doneB {
			ca, cb := a.CompletedAt, b.CompletedAt
			if (ca == nil) != (cb == nil) {
				return ca != nil
			}
			if ca != nil && cb != nil && !ca.Equal(*cb) {
				return ca.Before(*cb)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}

		sa, sb := UrgencyScore(a.Priority), UrgencyScore(b.Priority)
		if sa != sb {
			return sa < sb
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
