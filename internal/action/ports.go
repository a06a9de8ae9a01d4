// Package action converts user intents into optimistic local state changes
// plus background confirmation against the task store, reconciling by
// refetch on completion.
package action

import (
	"context"

	"github.com/mstolbov/crewboard/internal/domain"
)

// Store is the narrow task-store contract this layer consumes. Every call
// is independently failable.
type Store interface {
	List(ctx context.Context) ([]domain.Task, error)
	Patch(ctx context.Context, id string, p domain.TaskPatch) error
	Delete(ctx context.Context, id string) error
}

// Notifier is the fire-and-forget notification sink.
type Notifier interface {
	Notify(message string, kind domain.NotifyKind)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string, kind domain.NotifyKind)

func (f NotifierFunc) Notify(message string, kind domain.NotifyKind) { f(message, kind) }
