package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mstolbov/crewboard/internal/action"
	"github.com/mstolbov/crewboard/internal/board"
	"github.com/mstolbov/crewboard/internal/domain"
	"github.com/mstolbov/crewboard/internal/filter"
	"github.com/mstolbov/crewboard/internal/geom"
)

// Board layout constants, in terminal cells.
const (
	nameColWidth    = 18
	headerHeight    = 2
	rowHeight       = 2
	statusBarHeight = 2

	// pxPerCell maps the persisted pixel scale onto terminal columns.
	pxPerCell   = 8
	minDayCells = 4
)

// boardSyncMsg signals that background confirmations have settled and the
// local task state should be re-read.
type boardSyncMsg struct{}

// notice is one pending notification from the mutation layer.
type notice struct {
	message string
	kind    domain.NotifyKind
}

// noticeInbox collects notifications produced on background goroutines
// until the UI drains them on its next sync.
type noticeInbox struct {
	mu      sync.Mutex
	pending []notice
}

func (n *noticeInbox) Notify(message string, kind domain.NotifyKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, notice{message, kind})
}

func (n *noticeInbox) drain() []notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}

// viewport is the scrollable board surface. It supplies the geometry the
// drag engine samples during pointer handling and receives the scroll
// offsets pans produce.
type viewport struct {
	origin geom.Point
	x, y   float64
}

func (v *viewport) Geometry() board.Geometry {
	return board.Geometry{Origin: v.origin, ScrollX: v.x, ScrollY: v.y}
}

func (v *viewport) SetScroll(x, y float64) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	v.x, v.y = x, y
}

// marqueeOverlay holds the marquee rectangle between renders.
type marqueeOverlay struct {
	active bool
	rect   geom.Rect
}

// cardCell is one rendered card slot: the task shown in a row/column cell
// plus the count of further tasks stacked behind it.
type cardCell struct {
	task  domain.Task
	extra int
}

// boardModel is the interactive scheduling board. One row per visible
// colleague, one column per day; cards sit at their due-date column.
type boardModel struct {
	app *App

	state    *action.State
	actions  *action.Actions
	registry *board.Registry
	drag     *board.DragEngine
	scale    *board.ScaleEngine

	port    *viewport
	overlay *marqueeOverlay
	inbox   *noticeInbox

	filters    filter.Config
	colleagues []domain.Colleague
	projects   []domain.Project
	days       []time.Time

	// Derived per refit.
	visible []domain.Task
	rows    []domain.Colleague
	colX    []int
	colW    []int
	grid    map[int]map[int]cardCell

	width, height int
	searching     bool
	search        textinput.Model
	editing       *bulkEdit
	lastNotice    notice
	now           func() time.Time
}

func newBoardModel(app *App, tasks []domain.Task, colleagues []domain.Colleague, projects []domain.Project, now func() time.Time) *boardModel {
	port := &viewport{origin: geom.Point{X: nameColWidth, Y: headerHeight}}
	inbox := &noticeInbox{}

	m := &boardModel{
		app:        app,
		port:       port,
		overlay:    &marqueeOverlay{},
		inbox:      inbox,
		colleagues: colleagues,
		projects:   projects,
		registry:   board.NewRegistry(),
		now:        now,
		width:      80,
		height:     24,
	}

	m.state = action.NewState(tasks)
	m.actions = action.New(m.state, app.Store, inbox,
		action.WithObserver(app.Observer),
		action.WithClock(func() time.Time { return now().UTC() }),
	)
	m.drag = board.NewDragEngine(m.registry, port, port,
		board.WithMarqueeCallbacks(
			func(r geom.Rect) { m.overlay.active = true; m.overlay.rect = r },
			func() { m.overlay.active = false },
		),
		board.WithDragLogger(app.Logger),
	)
	m.scale = board.NewScaleEngine(app.Prefs, app.UserID, app.Logger)
	m.filters = filter.Load(app.Prefs, app.UserID, app.Logger)
	m.days = board.DateRange(board.Midnight(now()), board.DefaultDaysBack, board.DefaultDaysAhead)

	m.search = textinput.New()
	m.search.Placeholder = "search"
	m.search.CharLimit = 64
	m.search.SetValue(m.filters.Search)

	m.refit()
	m.scrollToToday()
	return m
}

func (m *boardModel) Init() tea.Cmd {
	return nil
}

// refit recomputes everything derived from tasks, filters, and scale: the
// visible task set, the row order, the column geometry, the card grid, and
// the collision handles.
func (m *boardModel) refit() {
	now := m.now()
	m.visible = filter.Tasks(m.state.Snapshot(), m.projects, m.filters, now)
	m.rows = filter.Colleagues(m.colleagues, m.visible, m.filters, m.app.UserID)

	day := m.scale.Value() / pxPerCell
	if day < minDayCells {
		day = minDayCells
	}
	weekend := m.scale.WeekendWidth() / pxPerCell
	if weekend < minDayCells/2 {
		weekend = minDayCells / 2
	}

	m.colX = m.colX[:0]
	m.colW = m.colW[:0]
	x := 0
	for _, d := range m.days {
		w := day
		if board.IsWeekend(d) {
			w = weekend
		}
		m.colX = append(m.colX, x)
		m.colW = append(m.colW, w)
		x += w
	}

	dayIndex := make(map[string]int, len(m.days))
	for i, d := range m.days {
		dayIndex[d.Format("2006-01-02")] = i
	}

	ordered := append([]domain.Task(nil), m.visible...)
	domain.DisplayOrder(ordered)

	for _, row := range m.grid {
		for _, cell := range row {
			m.registry.Unregister(cell.task.ID)
		}
	}
	m.grid = make(map[int]map[int]cardCell)

	registered := make(map[string]bool)
	for r, c := range m.rows {
		cells := make(map[int]cardCell)
		for _, t := range ordered {
			if t.DueAt == nil || !t.AssignedTo(c.ID) {
				continue
			}
			i, ok := dayIndex[board.Midnight(*t.DueAt).Format("2006-01-02")]
			if !ok {
				continue
			}
			if cell, taken := cells[i]; taken {
				cell.extra++
				cells[i] = cell
				continue
			}
			cells[i] = cardCell{task: t}

			if registered[t.ID] {
				continue
			}
			registered[t.ID] = true
			rect := geom.Rect{
				X: float64(m.colX[i]),
				Y: float64(r*rowHeight + 1),
				W: float64(m.colW[i] - 1),
				H: 0,
			}
			port := m.port
			m.registry.Register(t.ID, board.HandleFunc(func() (geom.Rect, error) {
				return rect.Translate(port.origin.X-port.x, port.origin.Y-port.y), nil
			}))
		}
		if len(cells) > 0 {
			m.grid[r] = cells
		}
	}

	// Drop selected ids that are no longer visible.
	stale := false
	for _, id := range m.drag.SelectionIDs() {
		if !registered[id] {
			stale = true
			break
		}
	}
	if stale {
		m.drag.ClearSelection()
	}
}

func (m *boardModel) scrollToToday() {
	i := board.DefaultDaysBack
	if i >= len(m.colX) {
		return
	}
	x := m.colX[i] - m.colW[i]
	m.port.SetScroll(float64(x), m.port.y)
}

// awaitSync blocks (off the UI loop) until in-flight confirmations have
// reconciled, then triggers a repaint from fresh state.
func (m *boardModel) awaitSync() tea.Cmd {
	return func() tea.Msg {
		m.actions.Flush()
		return boardSyncMsg{}
	}
}

func (m *boardModel) saveFilters() {
	if err := filter.Save(m.app.Prefs, m.app.UserID, m.filters); err != nil && m.app.Logger != nil {
		m.app.Logger.Warn("persisting filters failed", "error", err)
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardSyncMsg:
		if notices := m.inbox.drain(); len(notices) > 0 {
			m.lastNotice = notices[len(notices)-1]
		}
		m.refit()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.editing != nil {
			return m.updateForm(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKey(msg)
	}

	if m.editing != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m *boardModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.editing != nil || m.searching {
		return m, nil
	}
	ev := board.PointerEvent{
		ID:          0,
		X:           float64(msg.X),
		Y:           float64(msg.Y),
		Primary:     msg.Button == tea.MouseButtonLeft,
		Modifier:    msg.Alt,
		Interactive: msg.Y >= m.height-statusBarHeight,
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.drag.PointerDown(ev)
	case tea.MouseActionMotion:
		m.drag.PointerMove(ev)
	case tea.MouseActionRelease:
		m.drag.PointerUp(ev)
	}
	return m, nil
}

func (m *boardModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.drag.ClearSelection()
		return m, nil

	case "+", "=":
		m.scale.SetFunc(func(prev int) float64 { return float64(prev) * 1.25 })
		m.refit()
		return m, nil

	case "-":
		m.scale.SetFunc(func(prev int) float64 { return float64(prev) / 1.25 })
		m.refit()
		return m, nil

	case "left":
		m.port.SetScroll(m.port.x-float64(m.dayStep()), m.port.y)
		return m, nil
	case "right":
		m.port.SetScroll(m.port.x+float64(m.dayStep()), m.port.y)
		return m, nil
	case "up":
		m.port.SetScroll(m.port.x, m.port.y-rowHeight)
		return m, nil
	case "down":
		m.port.SetScroll(m.port.x, m.port.y+rowHeight)
		return m, nil

	case "g":
		m.scrollToToday()
		return m, nil

	case "d":
		return m.bulkStatus(domain.TaskDone)
	case "u":
		return m.bulkStatus(domain.TaskTodo)

	case "x":
		ids := m.drag.SelectionIDs()
		if len(ids) == 0 {
			return m, nil
		}
		m.actions.DeleteMany(context.Background(), ids)
		m.drag.ClearSelection()
		m.refit()
		return m, m.awaitSync()

	case "]":
		return m.shiftDue(1, action.Later)
	case "[":
		return m.shiftDue(1, action.Earlier)
	case "}":
		return m.shiftDue(7, action.Later)
	case "{":
		return m.shiftDue(7, action.Earlier)

	case "e":
		ids := m.drag.SelectionIDs()
		if len(ids) == 0 {
			return m, nil
		}
		m.editing = newBulkEdit(ids, m.colleagues)
		return m, m.editing.form.Init()

	case "/":
		m.searching = true
		m.search.SetValue(m.filters.Search)
		m.search.Focus()
		return m, textinput.Blink

	case "h":
		m.filters.HideEmpty = !m.filters.HideEmpty
		m.saveFilters()
		m.refit()
		return m, nil

	case "o":
		m.filters.Sort = nextSort(m.filters.Sort)
		m.saveFilters()
		m.refit()
		return m, nil

	case "c":
		m.filters = filter.Config{}
		m.search.SetValue("")
		m.saveFilters()
		m.drag.ClearSelection()
		m.refit()
		return m, nil

	case "r":
		return m, func() tea.Msg {
			if err := m.actions.Refresh(context.Background()); err != nil {
				m.inbox.Notify("Refreshing the board failed", domain.NotifyError)
			}
			return boardSyncMsg{}
		}
	}
	return m, nil
}

func (m *boardModel) bulkStatus(status domain.TaskStatus) (tea.Model, tea.Cmd) {
	ids := m.drag.SelectionIDs()
	if len(ids) == 0 {
		return m, nil
	}
	s := status
	m.actions.BulkUpdate(context.Background(), ids, domain.TaskPatch{Status: &s})
	m.refit()
	return m, m.awaitSync()
}

func (m *boardModel) shiftDue(days int, dir action.Direction) (tea.Model, tea.Cmd) {
	ids := m.drag.SelectionIDs()
	if len(ids) == 0 {
		return m, nil
	}
	m.actions.ShiftDueDates(context.Background(), ids, days, dir)
	m.refit()
	return m, m.awaitSync()
}

func (m *boardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.filters.Search = m.search.Value()
		m.saveFilters()
		m.refit()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.filters.Search)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *boardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.editing.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.editing.form = f
	}

	switch m.editing.form.State {
	case huh.StateCompleted:
		edit := m.editing
		m.editing = nil
		if edit.empty() {
			return m, nil
		}
		m.actions.BulkUpdate(context.Background(), edit.ids, edit.patch())
		m.refit()
		return m, tea.Batch(cmd, m.awaitSync())
	case huh.StateAborted:
		m.editing = nil
		return m, nil
	}
	return m, cmd
}

// dayStep is the horizontal pan distance: one weekday column.
func (m *boardModel) dayStep() int {
	d := m.scale.Value() / pxPerCell
	if d < minDayCells {
		d = minDayCells
	}
	return d
}

func nextSort(s filter.SortConfig) filter.SortConfig {
	switch s.Field {
	case filter.SortByName:
		return filter.SortConfig{Field: filter.SortByPosition}
	case filter.SortByPosition:
		return filter.SortConfig{Field: filter.SortByWorkload}
	default:
		return filter.SortConfig{Field: filter.SortByName}
	}
}
