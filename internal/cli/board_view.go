package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mstolbov/crewboard/internal/board"
	"github.com/mstolbov/crewboard/internal/cli/formatter"
	"github.com/mstolbov/crewboard/internal/geom"
)

// block is one column's worth of timeline content, styled after clipping
// so partially visible columns render cleanly.
type block struct {
	text  string
	style lipgloss.Style
}

func (m *boardModel) View() string {
	if m.editing != nil {
		return formatter.Header(fmt.Sprintf("Edit %d selected", len(m.editing.ids))) +
			"\n\n" + m.editing.form.View()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderRows())
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// timelineWidth is the visible width of the scrolling date area.
func (m *boardModel) timelineWidth() int {
	w := m.width - nameColWidth
	if w < 1 {
		w = 1
	}
	return w
}

// renderTimeline assembles one scrolled line of the date area from
// per-column blocks, clipping the first and last partially visible columns.
func (m *boardModel) renderTimeline(blockFor func(i int) block) string {
	scrollX := int(m.port.x)
	viewW := m.timelineWidth()
	right := scrollX + viewW

	var b strings.Builder
	written := 0
	for i := range m.days {
		colL := m.colX[i]
		colR := colL + m.colW[i]
		if colR <= scrollX {
			continue
		}
		if colL >= right {
			break
		}

		bl := blockFor(i)
		text := padTo(bl.text, m.colW[i])
		if colL < scrollX {
			text = dropRunes(text, scrollX-colL)
		}
		if colR > right {
			text = takeRunes(text, len([]rune(text))-(colR-right))
		}
		b.WriteString(bl.style.Render(text))
		written += len([]rune(text))
	}
	if written < viewW {
		b.WriteString(strings.Repeat(" ", viewW-written))
	}
	return b.String()
}

func (m *boardModel) renderHeader() string {
	today := board.Midnight(m.now())

	months := m.renderTimeline(func(i int) block {
		d := m.days[i]
		if d.Day() == 1 || i == m.firstVisibleCol() {
			return block{text: d.Format("Jan 2006"), style: formatter.StyleHeader}
		}
		return block{}
	})

	numbers := m.renderTimeline(func(i int) block {
		d := m.days[i]
		bl := block{text: fmt.Sprintf("%d", d.Day()), style: formatter.StyleFg}
		switch {
		case d.Equal(today):
			bl.style = formatter.StyleHeader
		case board.IsWeekend(d):
			bl.style = formatter.StyleDim
		}
		return bl
	})

	pad := strings.Repeat(" ", nameColWidth)
	return pad + months + "\n" + pad + numbers + "\n"
}

func (m *boardModel) firstVisibleCol() int {
	scrollX := int(m.port.x)
	for i := range m.days {
		if m.colX[i]+m.colW[i] > scrollX {
			return i
		}
	}
	return 0
}

func (m *boardModel) renderRows() string {
	viewRows := (m.height - headerHeight - statusBarHeight) / rowHeight
	if viewRows < 1 {
		viewRows = 1
	}
	startRow := int(m.port.y) / rowHeight

	var b strings.Builder
	for r := startRow; r < startRow+viewRows; r++ {
		if r >= len(m.rows) {
			b.WriteString("\n\n")
			continue
		}
		c := m.rows[r]

		name := c.Name
		if name == "" {
			name = c.ID
		}
		if c.ID == m.app.UserID {
			name = "▸ " + name
		}
		b.WriteString(formatter.StyleBold.Render(padTo(truncate(name, nameColWidth-1), nameColWidth)))
		b.WriteString(m.renderTimeline(func(int) block { return block{} }))
		b.WriteString("\n")

		b.WriteString(formatter.StyleDim.Render(padTo(truncate("  "+c.Position, nameColWidth-1), nameColWidth)))
		b.WriteString(m.renderCardLine(r))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *boardModel) renderCardLine(r int) string {
	cells := m.grid[r]
	return m.renderTimeline(func(i int) block {
		cell, ok := cells[i]
		if !ok {
			return block{}
		}
		t := cell.task

		label := formatter.StatusGlyph(t.Status) + " " + t.Title
		if cell.extra > 0 {
			label = fmt.Sprintf("%s +%d", label, cell.extra)
		}
		label = truncate(label, m.colW[i]-1)

		style := formatter.StatusStyle(t.Status)
		if m.drag.Selected(t.ID) || m.underMarquee(r, i) {
			style = style.Reverse(true)
		}
		return block{text: label, style: style}
	})
}

// underMarquee reports whether a card cell is inside the live marquee
// rectangle, for visual feedback before the selection commits.
func (m *boardModel) underMarquee(r, i int) bool {
	if !m.overlay.active {
		return false
	}
	card := geom.Rect{
		X: float64(m.colX[i]),
		Y: float64(r*rowHeight + 1),
		W: float64(m.colW[i] - 1),
		H: 0,
	}
	return m.overlay.rect.Overlaps(card)
}

func (m *boardModel) renderStatusBar() string {
	width := m.width
	if width < 1 {
		width = 80
	}

	var line1 string
	switch {
	case m.searching:
		line1 = m.search.View()
	case m.overlay.active:
		line1 = formatter.Dim(fmt.Sprintf("select: %.0f×%.0f", m.overlay.rect.W, m.overlay.rect.H))
	case m.lastNotice.message != "":
		line1 = formatter.NotifyStyle(m.lastNotice.kind).Render(m.lastNotice.message)
	default:
		line1 = formatter.Dim(m.filterSummary())
	}

	hints := "alt+drag select · drag pan · +/- zoom · d done · u reopen · x delete · [ ] move · e edit · / search · h hide · o sort · r refresh · q quit"
	line2 := formatter.Dim(truncate(hints, width))

	return line1 + "\n" + line2
}

func (m *boardModel) filterSummary() string {
	parts := []string{
		fmt.Sprintf("%s · %d tasks · %d rows", m.app.UserID, len(m.visible), len(m.rows)),
		fmt.Sprintf("scale %dpx", m.scale.Value()),
	}
	if n := m.drag.SelectionCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if m.filters.Search != "" {
		parts = append(parts, "search: "+m.filters.Search)
	}
	if m.filters.HideEmpty {
		parts = append(parts, "hiding empty rows")
	}
	if m.filters.Sort.Field != "" {
		parts = append(parts, "sort: "+string(m.filters.Sort.Field))
	}
	return strings.Join(parts, " · ")
}

func padTo(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}

func truncate(s string, w int) string {
	if w < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}

func dropRunes(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return ""
	}
	return string(r[n:])
}

func takeRunes(s string, n int) string {
	if n < 1 {
		return ""
	}
	r := []rune(s)
	if n >= len(r) {
		return s
	}
	return string(r[:n])
}
