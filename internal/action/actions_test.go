package action

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/mstolbov/crewboard/internal/domain"
	"github.com/mstolbov/crewboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory server-side truth. Patch applies the update and
// stamps the completion timestamp the way the real store does, so refetches
// return server-computed fields.
type fakeStore struct {
	mu     sync.Mutex
	order  []string
	server map[string]domain.Task

	failPatch  map[string]error
	failDelete map[string]error

	// block, when non-nil, makes Patch and Delete wait until it is closed.
	block chan struct{}

	patchCalls  int
	deleteCalls int
}

func newFakeStore(tasks ...domain.Task) *fakeStore {
	s := &fakeStore{
		server:     make(map[string]domain.Task, len(tasks)),
		failPatch:  make(map[string]error),
		failDelete: make(map[string]error),
	}
	for _, t := range tasks {
		s.order = append(s.order, t.ID)
		s.server[t.ID] = t
	}
	return s
}

func (s *fakeStore) List(context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, 0, len(s.order))
	for _, id := range s.order {
		if t, ok := s.server[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) Patch(_ context.Context, id string, p domain.TaskPatch) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patchCalls++
	if err, ok := s.failPatch[id]; ok {
		return err
	}
	t, ok := s.server[id]
	if !ok {
		return errors.New("task not found")
	}
	updated := p.Apply(t)
	if p.Status != nil && *p.Status != t.Status {
		updated.CompletedAt = completionStamp(*p.Status, time.Now().UTC())
	}
	s.server[id] = updated
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	if err, ok := s.failDelete[id]; ok {
		return err
	}
	delete(s.server, id)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	kinds    []domain.NotifyKind
}

func (n *recordingNotifier) Notify(message string, kind domain.NotifyKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	n.kinds = append(n.kinds, kind)
}

func (n *recordingNotifier) errors() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, k := range n.kinds {
		if k == domain.NotifyError {
			count++
		}
	}
	return count
}

func titles(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	sort.Strings(out)
	return out
}

func setup(store *fakeStore, opts ...Option) (*Actions, *State, *recordingNotifier) {
	tasks, _ := store.List(context.Background())
	state := NewState(tasks)
	notifier := &recordingNotifier{}
	return New(state, store, notifier, opts...), state, notifier
}

func TestUpdate_OptimisticApplyVisibleBeforeConfirm(t *testing.T) {
	task := testutil.NewTask("old title")
	store := newFakeStore(task)
	store.block = make(chan struct{})
	a, state, _ := setup(store)

	title := "new title"
	a.Update(context.Background(), task.ID, domain.TaskPatch{Title: &title})

	got, ok := state.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "new title", got.Title, "the local rewrite precedes the store call")

	close(store.block)
	a.Flush()
	got, _ = state.Get(task.ID)
	assert.Equal(t, "new title", got.Title)
}

func TestUpdate_FailureRefetchesTruth(t *testing.T) {
	task := testutil.NewTask("truth")
	store := newFakeStore(task)
	store.failPatch[task.ID] = errors.New("network down")
	a, state, notifier := setup(store)

	title := "optimistic"
	a.Update(context.Background(), task.ID, domain.TaskPatch{Title: &title})
	a.Flush()

	got, ok := state.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "truth", got.Title, "the failed optimistic edit is discarded")
	assert.Equal(t, 1, notifier.errors())
}

func TestUpdate_SuccessRefreshesComputedFields(t *testing.T) {
	task := testutil.NewTask("t")
	store := newFakeStore(task)
	a, state, _ := setup(store)

	done := domain.TaskDone
	a.Update(context.Background(), task.ID, domain.TaskPatch{Status: &done})
	a.Flush()

	got, _ := state.Get(task.ID)
	assert.Equal(t, domain.TaskDone, got.Status)
	assert.NotNil(t, got.CompletedAt, "the store-computed completion stamp arrives via refetch")
}

func TestBulkUpdate_DoneStampsCompletionOptimistically(t *testing.T) {
	t1 := testutil.NewTask("a")
	t2 := testutil.NewTask("b")
	store := newFakeStore(t1, t2)
	store.block = make(chan struct{})
	fixed := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	a, state, _ := setup(store, WithClock(func() time.Time { return fixed }))

	done := domain.TaskDone
	a.BulkUpdate(context.Background(), []string{t1.ID, t2.ID}, domain.TaskPatch{Status: &done})

	for _, id := range []string{t1.ID, t2.ID} {
		got, ok := state.Get(id)
		require.True(t, ok)
		require.NotNil(t, got.CompletedAt, "completion stamped before confirmation resolves")
		assert.Equal(t, fixed, *got.CompletedAt)
	}

	close(store.block)
	a.Flush()
}

func TestBulkUpdate_LeavingDoneClearsCompletion(t *testing.T) {
	task := testutil.NewTask("a", testutil.WithStatus(domain.TaskDone))
	store := newFakeStore(task)
	store.block = make(chan struct{})
	a, state, _ := setup(store)

	todo := domain.TaskTodo
	a.BulkUpdate(context.Background(), []string{task.ID}, domain.TaskPatch{Status: &todo})

	got, _ := state.Get(task.ID)
	assert.Nil(t, got.CompletedAt)

	close(store.block)
	a.Flush()
}

func TestBulkUpdate_PartialFailureRollsBackByRefetch(t *testing.T) {
	t1 := testutil.NewTask("ok")
	t2 := testutil.NewTask("doomed")
	store := newFakeStore(t1, t2)
	store.failPatch[t2.ID] = errors.New("conflict")
	a, state, notifier := setup(store)

	prio := "1"
	a.BulkUpdate(context.Background(), []string{t1.ID, t2.ID}, domain.TaskPatch{Priority: &prio})
	a.Flush()

	// One generic failure, no per-item attribution.
	assert.Equal(t, 1, notifier.errors())

	// State equals server truth, whatever subset actually landed.
	server, _ := store.List(context.Background())
	assert.Equal(t, server, state.Snapshot())
	doomed, _ := state.Get(t2.ID)
	assert.Equal(t, "3", doomed.Priority, "the failed task's optimistic edit is rolled back")
}

func TestDeleteMany_RemovesImmediatelyAndReportsCount(t *testing.T) {
	t1 := testutil.NewTask("a")
	t2 := testutil.NewTask("b")
	t3 := testutil.NewTask("keep")
	store := newFakeStore(t1, t2, t3)
	store.block = make(chan struct{})
	a, state, notifier := setup(store)

	a.DeleteMany(context.Background(), []string{t1.ID, t2.ID})
	assert.Equal(t, []string{"keep"}, titles(state.Snapshot()), "removal is immediate")

	close(store.block)
	a.Flush()
	assert.Contains(t, notifier.messages, "Deleted 2 tasks")
}

func TestDeleteMany_SingularCount(t *testing.T) {
	task := testutil.NewTask("only")
	store := newFakeStore(task)
	a, _, notifier := setup(store)

	a.DeleteMany(context.Background(), []string{task.ID})
	a.Flush()
	assert.Contains(t, notifier.messages, "Deleted 1 task")
}

func TestDeleteMany_FailureRestoresSurvivors(t *testing.T) {
	t1 := testutil.NewTask("gone")
	t2 := testutil.NewTask("stuck")
	store := newFakeStore(t1, t2)
	store.failDelete[t2.ID] = errors.New("forbidden")
	a, state, notifier := setup(store)

	a.DeleteMany(context.Background(), []string{t1.ID, t2.ID})
	a.Flush()

	assert.Equal(t, []string{"stuck"}, titles(state.Snapshot()),
		"the task the server kept comes back on refetch")
	assert.Equal(t, 1, notifier.errors())
}

func TestShiftDueDates_MovesDatesForwardAndBack(t *testing.T) {
	due1 := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	due2 := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	t1 := testutil.NewTask("a", testutil.WithDue(due1))
	t2 := testutil.NewTask("b", testutil.WithDue(due2))
	t3 := testutil.NewTask("undated", testutil.WithNoDue())
	store := newFakeStore(t1, t2, t3)
	a, state, _ := setup(store)

	a.ShiftDueDates(context.Background(), []string{t1.ID, t2.ID, t3.ID}, 3, Later)
	a.Flush()

	got1, _ := state.Get(t1.ID)
	got2, _ := state.Get(t2.ID)
	got3, _ := state.Get(t3.ID)
	assert.Equal(t, due1.AddDate(0, 0, 3), *got1.DueAt)
	assert.Equal(t, due2.AddDate(0, 0, 3), *got2.DueAt)
	assert.Nil(t, got3.DueAt, "tasks with no due date are untouched")
	assert.Equal(t, 2, store.patchCalls, "no patch is issued for undated tasks")

	a.ShiftDueDates(context.Background(), []string{t1.ID}, 5, Earlier)
	a.Flush()
	got1, _ = state.Get(t1.ID)
	assert.Equal(t, due1.AddDate(0, 0, -2), *got1.DueAt)
}

func TestShiftDueDates_FailureRefetches(t *testing.T) {
	due := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTask("a", testutil.WithDue(due))
	store := newFakeStore(task)
	store.failPatch[task.ID] = errors.New("gone")
	a, state, notifier := setup(store)

	a.ShiftDueDates(context.Background(), []string{task.ID}, 2, Later)
	a.Flush()

	got, _ := state.Get(task.ID)
	assert.Equal(t, due, *got.DueAt, "refetch restores the original date")
	assert.Equal(t, 1, notifier.errors())
}

func TestRefresh_ReplacesStateAndSignalsHost(t *testing.T) {
	store := newFakeStore(testutil.NewTask("a"))
	refreshed := 0
	a, state, _ := setup(store, WithOnRefreshed(func() { refreshed++ }))

	store.mu.Lock()
	extra := testutil.NewTask("b")
	store.order = append(store.order, extra.ID)
	store.server[extra.ID] = extra
	store.mu.Unlock()

	require.NoError(t, a.Refresh(context.Background()))
	assert.Len(t, state.Snapshot(), 2)
	assert.Equal(t, 1, refreshed)
}
