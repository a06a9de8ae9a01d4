// Package testutil provides shared fixtures and database helpers for tests.
package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mstolbov/crewboard/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
		if s == domain.TaskDone && t.CompletedAt == nil {
			done := t.CreatedAt.Add(time.Hour)
			t.CompletedAt = &done
		}
	}
}

func WithPriority(p string) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func WithDue(d time.Time) TaskOption {
	return func(t *domain.Task) { t.DueAt = &d }
}

func WithNoDue() TaskOption {
	return func(t *domain.Task) { t.DueAt = nil }
}

func WithCreator(id string) TaskOption {
	return func(t *domain.Task) { t.CreatorID = id }
}

func WithAssignees(ids ...string) TaskOption {
	return func(t *domain.Task) { t.AssigneeIDs = ids }
}

func WithProject(id string) TaskOption {
	return func(t *domain.Task) { t.ProjectID = id }
}

func WithCreatedAt(at time.Time) TaskOption {
	return func(t *domain.Task) { t.CreatedAt = at }
}

func WithSteps(titles ...string) TaskOption {
	return func(t *domain.Task) {
		for _, title := range titles {
			t.Steps = append(t.Steps, domain.Step{ID: uuid.New().String(), Title: title})
		}
	}
}

func WithFiles(names ...string) TaskOption {
	return func(t *domain.Task) {
		for _, name := range names {
			t.Files = append(t.Files, domain.Attachment{ID: uuid.New().String(), Name: name})
		}
	}
}

func NewTask(title string, opts ...TaskOption) domain.Task {
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	t := domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.TaskTodo,
		Priority:  "3",
		CreatorID: "creator",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Colleague options
type ColleagueOption func(*domain.Colleague)

func WithDepartment(d string) ColleagueOption {
	return func(c *domain.Colleague) { c.Department = d }
}

func WithPosition(p string) ColleagueOption {
	return func(c *domain.Colleague) { c.Position = p }
}

func WithTeam(t string) ColleagueOption {
	return func(c *domain.Colleague) { c.Team = t }
}

func NewColleague(id, name string, opts ...ColleagueOption) domain.Colleague {
	c := domain.Colleague{ID: id, Name: name}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func NewProject(id, title, client string, status domain.ProjectStatus) domain.Project {
	return domain.Project{
		ID:        id,
		Title:     title,
		Client:    client,
		Status:    status,
		CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}
