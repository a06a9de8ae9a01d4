package action

import (
	"context"

	"github.com/mstolbov/crewboard/internal/domain"
	"github.com/sony/gobreaker"
)

// GuardedStore wraps a Store with a circuit breaker so repeated store
// failures fail fast instead of piling up concurrent confirmations against
// a dead backend. The caller's refetch-and-notify recovery is unchanged.
type GuardedStore struct {
	inner Store
	cb    *gobreaker.CircuitBreaker
}

func NewGuardedStore(inner Store) *GuardedStore {
	return &GuardedStore{
		inner: inner,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "task-store",
		}),
	}
}

func (s *GuardedStore) List(ctx context.Context) ([]domain.Task, error) {
	out, err := s.cb.Execute(func() (interface{}, error) {
		return s.inner.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out.([]domain.Task), nil
}

func (s *GuardedStore) Patch(ctx context.Context, id string, p domain.TaskPatch) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.inner.Patch(ctx, id, p)
	})
	return err
}

func (s *GuardedStore) Delete(ctx context.Context, id string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.inner.Delete(ctx, id)
	})
	return err
}
