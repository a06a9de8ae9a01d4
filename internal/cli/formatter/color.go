package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mstolbov/crewboard/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the lipgloss style for a task status.
func StatusStyle(s domain.TaskStatus) lipgloss.Style {
	switch s {
	case domain.TaskDone:
		return StyleGreen
	case domain.TaskDoing:
		return StyleYellow
	default:
		return StyleFg
	}
}

// StatusGlyph returns a one-rune marker for a task status.
func StatusGlyph(s domain.TaskStatus) string {
	switch s {
	case domain.TaskDone:
		return "✓"
	case domain.TaskDoing:
		return "◐"
	default:
		return "○"
	}
}

// PriorityLabel returns a colored priority label for either vocabulary.
func PriorityLabel(p string) string {
	switch domain.NormalizePriority(p) {
	case "1":
		return StyleRed.Render("urgent")
	case "2":
		return StyleYellow.Render("high")
	case "3":
		return StyleFg.Render("medium")
	default:
		return StyleDim.Render("low")
	}
}

// NotifyStyle returns the lipgloss style for a notification kind.
func NotifyStyle(k domain.NotifyKind) lipgloss.Style {
	switch k {
	case domain.NotifySuccess:
		return StyleGreen
	case domain.NotifyError:
		return StyleRed
	default:
		return StyleBlue
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
