package action

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mstolbov/crewboard/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Direction is the sign selector for due-date shifts.
type Direction int

const (
	Later   Direction = 1
	Earlier Direction = -1
)

// Actions is the mutation layer. Every operation follows the same contract:
// optimistic apply, concurrent confirm, reconcile by refetch. The optimistic
// rewrite is always visible before the confirmation calls are dispatched.
type Actions struct {
	state    *State
	store    Store
	notifier Notifier
	observer Observer

	now         func() time.Time
	onRefreshed func()

	wg sync.WaitGroup
}

// Option configures an Actions layer.
type Option func(*Actions)

// WithObserver installs an operation observer.
func WithObserver(o Observer) Option {
	return func(a *Actions) { a.observer = o }
}

// WithClock overrides the completion-timestamp clock.
func WithClock(now func() time.Time) Option {
	return func(a *Actions) { a.now = now }
}

// WithOnRefreshed installs a callback invoked after every reconciliation
// refetch, so the host can repaint.
func WithOnRefreshed(fn func()) Option {
	return func(a *Actions) { a.onRefreshed = fn }
}

func New(state *State, store Store, notifier Notifier, opts ...Option) *Actions {
	a := &Actions{
		state:    state,
		store:    store,
		notifier: notifier,
		observer: NoopObserver{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Flush blocks until all in-flight confirmations have reconciled. Intended
// for tests and shutdown; the UI never calls it.
func (a *Actions) Flush() {
	a.wg.Wait()
}

// Refresh refetches the collection from the store, replacing local state.
func (a *Actions) Refresh(ctx context.Context) error {
	tasks, err := a.store.List(ctx)
	if err != nil {
		return fmt.Errorf("refetching tasks: %w", err)
	}
	a.state.Replace(tasks)
	if a.onRefreshed != nil {
		a.onRefreshed()
	}
	return nil
}

// Update applies a partial field update to one task. The store computes
// derived fields, so reconciliation refetches in both outcomes.
func (a *Actions) Update(ctx context.Context, id string, patch domain.TaskPatch) {
	a.state.Rewrite(idSet([]string{id}), patch.Apply)

	a.dispatch(ctx, "update", 1, func(ctx context.Context) error {
		if err := a.store.Patch(ctx, id, patch); err != nil {
			a.notifier.Notify("Updating the task failed", domain.NotifyError)
			return err
		}
		return nil
	})
}

// BulkUpdate applies the same partial update to every task in ids. Setting
// status to done stamps the completion timestamp; any non-done status clears
// it. Confirmation is one patch per id, issued concurrently; a single
// failure is reported as a generic partial failure and rolled back by the
// same full refetch as a total failure.
func (a *Actions) BulkUpdate(ctx context.Context, ids []string, patch domain.TaskPatch) {
	now := a.now()
	a.state.Rewrite(idSet(ids), func(t domain.Task) domain.Task {
		t = patch.Apply(t)
		if patch.Status != nil {
			t.CompletedAt = completionStamp(*patch.Status, now)
		}
		return t
	})

	a.dispatch(ctx, "bulk_update", len(ids), func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		for _, id := range ids {
			g.Go(func() error {
				return a.store.Patch(ctx, id, patch)
			})
		}
		if err := g.Wait(); err != nil {
			a.notifier.Notify("Some tasks could not be updated", domain.NotifyError)
			return err
		}
		a.notifier.Notify(pluralize(len(ids), "task")+" updated", domain.NotifySuccess)
		return nil
	})
}

// DeleteMany removes the tasks locally, then confirms with one delete per
// id. On any failure a refetch restores whatever the store still holds.
func (a *Actions) DeleteMany(ctx context.Context, ids []string) {
	a.state.Remove(idSet(ids))

	a.dispatch(ctx, "delete", len(ids), func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		for _, id := range ids {
			g.Go(func() error {
				return a.store.Delete(ctx, id)
			})
		}
		if err := g.Wait(); err != nil {
			a.notifier.Notify("Deleting tasks failed", domain.NotifyError)
			return err
		}
		a.notifier.Notify("Deleted "+pluralize(len(ids), "task"), domain.NotifySuccess)
		return nil
	})
}

// ShiftDueDates moves the due date of every task in ids by days in the
// given direction. Tasks with no due date are untouched. The confirmation
// patches are computed from the last-known (pre-optimistic) state, not from
// the optimistic snapshot.
func (a *Actions) ShiftDueDates(ctx context.Context, ids []string, days int, dir Direction) {
	delta := days * int(dir)

	shifted := make(map[string]time.Time, len(ids))
	for _, id := range ids {
		if t, ok := a.state.Get(id); ok && t.DueAt != nil {
			shifted[id] = t.DueAt.AddDate(0, 0, delta)
		}
	}

	a.state.Rewrite(idSet(ids), func(t domain.Task) domain.Task {
		if due, ok := shifted[t.ID]; ok {
			t.DueAt = &due
		}
		return t
	})

	a.dispatch(ctx, "shift_due", len(shifted), func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		for id, due := range shifted {
			g.Go(func() error {
				return a.store.Patch(ctx, id, domain.TaskPatch{DueAt: &due, DueAtSet: true})
			})
		}
		if err := g.Wait(); err != nil {
			a.notifier.Notify("Moving due dates failed", domain.NotifyError)
			return err
		}
		return nil
	})
}

// dispatch runs the confirm step in the background and reconciles by
// refetch regardless of outcome.
func (a *Actions) dispatch(ctx context.Context, name string, taskCount int, confirm func(context.Context) error) {
	started := time.Now()
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		err := confirm(ctx)
		if refreshErr := a.Refresh(ctx); refreshErr != nil && err == nil {
			err = refreshErr
		}
		a.observer.ObserveOp(OpEvent{
			Name:     name,
			TaskIDs:  taskCount,
			Duration: time.Since(started),
			Success:  err == nil,
			Err:      err,
		})
	}()
}

// completionStamp implements the status-transition rule: entering done
// stamps the current time, leaving done clears the stamp.
func completionStamp(status domain.TaskStatus, now time.Time) *time.Time {
	if status == domain.TaskDone {
		return &now
	}
	return nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
