package board

import (
	"log/slog"
	"sort"

	"github.com/mstolbov/crewboard/internal/geom"
)

// DragState is the gesture state of the engine.
type DragState int

const (
	Idle DragState = iota
	Panning
	Marqueeing
)

// PointerEvent is a normalized pointer event from the host. Coordinates are
// page coordinates (relative to the host surface, not the scrolled content).
type PointerEvent struct {
	ID       int
	X, Y     float64
	Primary  bool
	Modifier bool

	// Interactive marks events whose target owns the gesture (a task card
	// or other no-pan zone); the engine ignores them entirely.
	Interactive bool
}

// Geometry is the scroll container's current bounding geometry, queried
// synchronously during pointer handling.
type Geometry struct {
	Origin           geom.Point
	ScrollX, ScrollY float64
}

// GeometryProvider supplies the container geometry on demand.
type GeometryProvider interface {
	Geometry() Geometry
}

// Scroller applies scroll offsets directly to the container for immediate
// feedback during a pan.
type Scroller interface {
	SetScroll(x, y float64)
}

// DragEngine is the pointer state machine that disambiguates panning from
// marquee multi-select. It owns the selection set.
type DragEngine struct {
	registry *Registry
	geo      GeometryProvider
	scroller Scroller
	logger   *slog.Logger

	// Direct visual callbacks for the marquee rectangle. They bypass the
	// host's general render path so per-move redraws stay cheap.
	drawMarquee  func(geom.Rect)
	clearMarquee func()

	state     DragState
	pointerID int

	// Gesture start, captured at pointer-down.
	startPage    geom.Point // page space, for net-movement checks
	startContent geom.Point // content space, one marquee corner
	startScroll  geom.Point
	moved        bool
	marquee      geom.Rect

	selection map[string]struct{}
}

// DragOption configures a DragEngine.
type DragOption func(*DragEngine)

// WithMarqueeCallbacks installs the direct draw/clear callbacks for the
// marquee rectangle.
func WithMarqueeCallbacks(draw func(geom.Rect), clear func()) DragOption {
	return func(e *DragEngine) {
		e.drawMarquee = draw
		e.clearMarquee = clear
	}
}

// WithDragLogger sets the logger used for degraded collision reads.
func WithDragLogger(l *slog.Logger) DragOption {
	return func(e *DragEngine) { e.logger = l }
}

func NewDragEngine(registry *Registry, geo GeometryProvider, scroller Scroller, opts ...DragOption) *DragEngine {
	e := &DragEngine{
		registry:  registry,
		geo:       geo,
		scroller:  scroller,
		selection: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current gesture state.
func (e *DragEngine) State() DragState { return e.state }

// Selected reports whether the task id is in the selection set.
func (e *DragEngine) Selected(id string) bool {
	_, ok := e.selection[id]
	return ok
}

// SelectionIDs returns the selected ids in deterministic order.
func (e *DragEngine) SelectionIDs() []string {
	ids := make([]string, 0, len(e.selection))
	for id := range e.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectionCount returns the number of selected tasks.
func (e *DragEngine) SelectionCount() int { return len(e.selection) }

// ClearSelection empties the selection set. Called by the host when the
// visible item set changes structurally (filters changed, rows removed).
func (e *DragEngine) ClearSelection() {
	e.selection = make(map[string]struct{})
}

// PointerDown starts a gesture. Events on interactive targets, non-primary
// buttons, or while another pointer's gesture is active are ignored.
func (e *DragEngine) PointerDown(ev PointerEvent) {
	if e.state != Idle || ev.Interactive || !ev.Primary {
		return
	}

	g := e.geo.Geometry()
	e.pointerID = ev.ID
	e.startPage = geom.Point{X: ev.X, Y: ev.Y}
	e.startContent = e.toContent(ev, g)
	e.moved = false

	if ev.Modifier {
		// New marquee gesture replaces any prior selection immediately.
		e.selection = make(map[string]struct{})
		e.state = Marqueeing
		e.marquee = geom.Rect{X: e.startContent.X, Y: e.startContent.Y}
		e.redrawMarquee()
		return
	}

	e.state = Panning
	e.startScroll = geom.Point{X: g.ScrollX, Y: g.ScrollY}
}

// PointerMove advances the active gesture. Events from any pointer other
// than the one that started the gesture are ignored.
func (e *DragEngine) PointerMove(ev PointerEvent) {
	if e.state == Idle || ev.ID != e.pointerID {
		return
	}

	switch e.state {
	case Panning:
		dx := ev.X - e.startPage.X
		dy := ev.Y - e.startPage.Y
		if dx != 0 || dy != 0 {
			e.moved = true
		}
		e.scroller.SetScroll(e.startScroll.X-dx, e.startScroll.Y-dy)

	case Marqueeing:
		cur := e.toContent(ev, e.geo.Geometry())
		e.marquee = geom.FromCorners(e.startContent.X, e.startContent.Y, cur.X, cur.Y)
		e.redrawMarquee()
	}
}

// PointerUp commits the active gesture and returns the engine to Idle.
func (e *DragEngine) PointerUp(ev PointerEvent) {
	if e.state == Idle || ev.ID != e.pointerID {
		return
	}

	switch e.state {
	case Panning:
		if ev.X-e.startPage.X != 0 || ev.Y-e.startPage.Y != 0 {
			e.moved = true
		}
		if !e.moved {
			// A click on empty space with no movement deselects.
			e.selection = make(map[string]struct{})
		}

	case Marqueeing:
		cur := e.toContent(ev, e.geo.Geometry())
		e.marquee = geom.FromCorners(e.startContent.X, e.startContent.Y, cur.X, cur.Y)
		e.selection = e.collide(e.marquee)
	}

	e.reset()
}

// PointerCancel aborts the gesture for the tracked pointer unconditionally,
// regardless of progress. Selection is left as it was before the gesture's
// commit would have run.
func (e *DragEngine) PointerCancel(pointerID int) {
	if e.state == Idle || pointerID != e.pointerID {
		return
	}
	e.reset()
}

// collide tests every registered handle against the marquee rectangle in
// content space and returns the overlapping ids.
func (e *DragEngine) collide(marquee geom.Rect) map[string]struct{} {
	g := e.geo.Geometry()
	hit := make(map[string]struct{})
	for id, h := range e.registry.All() {
		extent, err := h.Bounds()
		if err != nil {
			// A detached element must not crash the gesture; it simply
			// cannot match.
			if e.logger != nil {
				e.logger.Warn("collision bounds read failed", "task_id", id, "error", err)
			}
			continue
		}
		content := extent.Translate(g.ScrollX-g.Origin.X, g.ScrollY-g.Origin.Y)
		if marquee.Overlaps(content) {
			hit[id] = struct{}{}
		}
	}
	return hit
}

func (e *DragEngine) toContent(ev PointerEvent, g Geometry) geom.Point {
	return geom.Point{
		X: ev.X - g.Origin.X + g.ScrollX,
		Y: ev.Y - g.Origin.Y + g.ScrollY,
	}
}

func (e *DragEngine) redrawMarquee() {
	if e.drawMarquee != nil {
		e.drawMarquee(e.marquee)
	}
}

func (e *DragEngine) reset() {
	e.state = Idle
	e.pointerID = 0
	e.moved = false
	e.marquee = geom.Rect{}
	if e.clearMarquee != nil {
		e.clearMarquee()
	}
}
