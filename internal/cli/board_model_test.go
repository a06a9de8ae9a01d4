package cli

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mstolbov/crewboard/internal/action"
	"github.com/mstolbov/crewboard/internal/domain"
	"github.com/mstolbov/crewboard/internal/geom"
	"github.com/mstolbov/crewboard/internal/teatest"
	"github.com/mstolbov/crewboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

// memStore is an in-memory task store with the same completion-stamping
// rule as the sqlite repository.
type memStore struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
}

func newMemStore(tasks ...domain.Task) *memStore {
	s := &memStore{tasks: make(map[string]domain.Task)}
	for _, t := range tasks {
		s.tasks[t.ID] = t
	}
	return s
}

func (s *memStore) List(context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (s *memStore) Patch(_ context.Context, id string, p domain.TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tasks[id]
	updated := p.Apply(t)
	if p.Status != nil && *p.Status != t.Status {
		if *p.Status == domain.TaskDone {
			now := testNow
			updated.CompletedAt = &now
		} else {
			updated.CompletedAt = nil
		}
	}
	s.tasks[id] = updated
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

func (s *memStore) get(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	return t, ok
}

type testPrefs map[string]string

func (p testPrefs) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

func (p testPrefs) Set(key, value string) error {
	p[key] = value
	return nil
}

func newTestApp(store *memStore, prefs testPrefs) *App {
	return &App{
		Store:    store,
		Observer: action.NoopObserver{},
		Prefs:    prefs,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		UserID:   "self",
	}
}

func testCrew() []domain.Colleague {
	return []domain.Colleague{
		testutil.NewColleague("self", "Mira Holt", testutil.WithPosition("lead")),
		testutil.NewColleague("ana", "Ana Petrova", testutil.WithPosition("designer")),
	}
}

func newTestBoard(t *testing.T, store *memStore, prefs testPrefs) (*teatest.Driver, *boardModel) {
	t.Helper()
	tasks, err := store.List(context.Background())
	require.NoError(t, err)
	m := newBoardModel(newTestApp(store, prefs), tasks, testCrew(), nil,
		func() time.Time { return testNow })
	d := teatest.New(t, m, teatest.WithSize(100, 30))
	d.DrainInit()
	return d, m
}

// cardPage returns the page-space extent of a task's registered card.
func cardPage(t *testing.T, m *boardModel, id string) geom.Rect {
	t.Helper()
	h, ok := m.registry.All()[id]
	require.True(t, ok, "task %s has no registered card", id)
	r, err := h.Bounds()
	require.NoError(t, err)
	return r
}

func TestBoard_SelfRowPinnedFirst(t *testing.T) {
	store := newMemStore(testutil.NewTask("t", testutil.WithAssignees("ana"), testutil.WithDue(testNow)))
	_, m := newTestBoard(t, store, testPrefs{})

	require.NotEmpty(t, m.rows)
	assert.Equal(t, "self", m.rows[0].ID)
}

func TestBoard_MarqueeSelectsOverlappingCards(t *testing.T) {
	t1 := testutil.NewTask("one", testutil.WithAssignees("ana"), testutil.WithDue(testNow))
	t2 := testutil.NewTask("two", testutil.WithAssignees("ana"), testutil.WithDue(testNow.AddDate(0, 0, 1)))
	far := testutil.NewTask("far", testutil.WithAssignees("self"), testutil.WithDue(testNow.AddDate(0, 0, 30)))
	d, m := newTestBoard(t, newMemStore(t1, t2, far), testPrefs{})

	r1 := cardPage(t, m, t1.ID)
	r2 := cardPage(t, m, t2.ID)
	d.MarqueeDrag(int(r1.X)-1, int(r1.Y)-1, int(r2.Right())+1, int(r2.Y)+1)

	assert.ElementsMatch(t, []string{t1.ID, t2.ID}, m.drag.SelectionIDs())
	assert.False(t, m.drag.Selected(far.ID))
}

func TestBoard_DragPansTimeline(t *testing.T) {
	d, m := newTestBoard(t, newMemStore(), testPrefs{})

	before := m.port.x
	d.Drag(60, 10, 45, 10)

	assert.Equal(t, before+15, m.port.x, "dragging left scrolls the content right")
}

func TestBoard_EmptyClickClearsSelection(t *testing.T) {
	task := testutil.NewTask("one", testutil.WithAssignees("ana"), testutil.WithDue(testNow))
	d, m := newTestBoard(t, newMemStore(task), testPrefs{})

	r := cardPage(t, m, task.ID)
	d.MarqueeDrag(int(r.X)-1, int(r.Y)-1, int(r.Right())+1, int(r.Y)+1)
	require.Equal(t, 1, m.drag.SelectionCount())

	d.MousePress(70, 20)
	d.MouseRelease(70, 20)
	assert.Zero(t, m.drag.SelectionCount())
}

func TestBoard_MarkDoneConfirmsAgainstStore(t *testing.T) {
	task := testutil.NewTask("one", testutil.WithAssignees("ana"), testutil.WithDue(testNow))
	store := newMemStore(task)
	d, m := newTestBoard(t, store, testPrefs{})

	r := cardPage(t, m, task.ID)
	d.MarqueeDrag(int(r.X)-1, int(r.Y)-1, int(r.Right())+1, int(r.Y)+1)
	d.PressKey('d')
	m.actions.Flush()

	got, ok := store.get(task.ID)
	require.True(t, ok)
	assert.Equal(t, domain.TaskDone, got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestBoard_DeleteSelectionRemovesFromStore(t *testing.T) {
	task := testutil.NewTask("one", testutil.WithAssignees("ana"), testutil.WithDue(testNow))
	keep := testutil.NewTask("keep", testutil.WithAssignees("ana"), testutil.WithDue(testNow.AddDate(0, 0, 3)))
	store := newMemStore(task, keep)
	d, m := newTestBoard(t, store, testPrefs{})

	r := cardPage(t, m, task.ID)
	d.MarqueeDrag(int(r.X)-1, int(r.Y)-1, int(r.Right())+1, int(r.Y)+1)
	d.PressKey('x')
	m.actions.Flush()

	_, ok := store.get(task.ID)
	assert.False(t, ok)
	_, ok = store.get(keep.ID)
	assert.True(t, ok)
	assert.Zero(t, m.drag.SelectionCount())
}

func TestBoard_ShiftDueDateLater(t *testing.T) {
	due := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTask("one", testutil.WithAssignees("ana"), testutil.WithDue(due))
	store := newMemStore(task)
	d, m := newTestBoard(t, store, testPrefs{})

	r := cardPage(t, m, task.ID)
	d.MarqueeDrag(int(r.X)-1, int(r.Y)-1, int(r.Right())+1, int(r.Y)+1)
	d.PressKey(']')
	m.actions.Flush()

	got, _ := store.get(task.ID)
	require.NotNil(t, got.DueAt)
	assert.True(t, got.DueAt.Equal(due.AddDate(0, 0, 1)))
}

func TestBoard_ZoomClampsAndPersists(t *testing.T) {
	prefs := testPrefs{}
	d, m := newTestBoard(t, newMemStore(), prefs)

	d.PressKey('+')
	assert.Equal(t, 150, m.scale.Value())
	assert.Equal(t, "150", prefs["scale/self"])

	for i := 0; i < 20; i++ {
		d.PressKey('-')
	}
	assert.Equal(t, 32, m.scale.Value(), "zoom out clamps at the minimum")
}

func TestBoard_HideEmptyRowsKeepsSelf(t *testing.T) {
	task := testutil.NewTask("one", testutil.WithAssignees("ana"), testutil.WithDue(testNow))
	d, m := newTestBoard(t, newMemStore(task), testPrefs{})
	require.Len(t, m.rows, 2)

	d.PressKey('h')
	assert.True(t, m.filters.HideEmpty)
	assert.Len(t, m.rows, 2, "self and ana both have content or are pinned")

	// Remove ana's task from view via search; her row disappears, self stays.
	d.PressKey('/')
	d.Type("nomatch")
	d.PressEnter()
	require.Equal(t, "nomatch", m.filters.Search)
	require.Len(t, m.rows, 1)
	assert.Equal(t, "self", m.rows[0].ID)
}

func TestBoard_SearchCommitsOnEnterAndPersists(t *testing.T) {
	prefs := testPrefs{}
	d, m := newTestBoard(t, newMemStore(), prefs)

	d.PressKey('/')
	d.Type("design")
	d.PressEnter()

	assert.Equal(t, "design", m.filters.Search)
	assert.Contains(t, prefs["filters/self"], "design")

	d.PressKey('/')
	d.Type("x")
	d.PressEsc()
	assert.Equal(t, "design", m.filters.Search, "esc leaves the committed search untouched")
}

func TestBoard_ViewShowsCardsAndStatusBar(t *testing.T) {
	task := testutil.NewTask("Review", testutil.WithAssignees("ana"), testutil.WithDue(testNow))
	d, m := newTestBoard(t, newMemStore(task), testPrefs{})

	view := d.View()
	assert.Contains(t, view, "Review")
	assert.Contains(t, view, "Mira Holt")
	assert.Contains(t, view, "Ana Petrova")
	assert.Contains(t, view, "alt+drag select")
	_ = m
}

func TestBoard_QuitKey(t *testing.T) {
	d, _ := newTestBoard(t, newMemStore(), testPrefs{})
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestBoard_InteractiveZoneIgnoresPointer(t *testing.T) {
	d, m := newTestBoard(t, newMemStore(), testPrefs{})

	before := m.port.x
	// Status bar rows are interactive: presses there never start a pan.
	d.MousePress(50, 29)
	d.MouseMove(30, 29)
	d.MouseRelease(30, 29)
	assert.Equal(t, before, m.port.x)
}

func TestBoard_StackedCardsShareOneCell(t *testing.T) {
	t1 := testutil.NewTask("a", testutil.WithAssignees("ana"), testutil.WithDue(testNow))
	t2 := testutil.NewTask("b", testutil.WithAssignees("ana"), testutil.WithDue(testNow))
	_, m := newTestBoard(t, newMemStore(t1, t2), testPrefs{})

	row := -1
	for r, c := range m.rows {
		if c.ID == "ana" {
			row = r
		}
	}
	require.GreaterOrEqual(t, row, 0)

	total := 0
	for _, cell := range m.grid[row] {
		total += 1 + cell.extra
	}
	assert.Equal(t, 2, total)
	assert.Len(t, m.grid[row], 1, "same-day tasks stack into one cell")
}
