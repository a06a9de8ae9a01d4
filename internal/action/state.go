package action

import (
	"sync"

	"github.com/mstolbov/crewboard/internal/domain"
)

// State is the in-memory task collection the board renders from. It is
// single-writer: only this package's operations rewrite it.
type State struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

func NewState(tasks []domain.Task) *State {
	return &State{tasks: append([]domain.Task(nil), tasks...)}
}

// Snapshot returns a copy of the current collection.
func (s *State) Snapshot() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Task(nil), s.tasks...)
}

// Get returns the task with the given id, if present.
func (s *State) Get(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// Replace swaps in a freshly fetched collection.
func (s *State) Replace(tasks []domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]domain.Task(nil), tasks...)
}

// Rewrite applies fn to every task whose id is in ids.
func (s *State) Rewrite(ids map[string]bool, fn func(domain.Task) domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if ids[t.ID] {
			s.tasks[i] = fn(t)
		}
	}
}

// Remove drops every task whose id is in ids.
func (s *State) Remove(ids map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !ids[t.ID] {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
