package repository

import (
	"context"

	"github.com/mstolbov/crewboard/internal/domain"
)

// TaskRepo is the task store: the board's only write surface. Patch applies
// a partial update and computes derived fields (the completion timestamp on
// status transitions) server-side.
type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	Patch(ctx context.Context, id string, p domain.TaskPatch) error
	Delete(ctx context.Context, id string) error
}

// ColleagueRepo is read-mostly from the board's perspective; Create exists
// for seeding.
type ColleagueRepo interface {
	Create(ctx context.Context, c *domain.Colleague) error
	List(ctx context.Context) ([]domain.Colleague, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	List(ctx context.Context) ([]domain.Project, error)
}
