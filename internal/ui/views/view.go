package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"launchpad/internal/domain"
	"launchpad/internal/ui/services/query"
)

// Placeholder copy for an empty result list
const (
	TypeSomethingText = "Type something to search…"
	SearchingText     = "Searching…"
	NoMatchesText     = "No matches"
)

// DefaultWidth is the content width in cells used when none is configured
const DefaultWidth = 60

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Input      string
	Items      []string // visible slice of the result set
	Offset     int      // index of Items[0] in the full result set
	Selected   int      // index in the full result set, -1 for none
	Total      int
	EmptyState query.EmptyState
	Scanning   bool
	Status     string
	Prompt     string // replaces the result list while the settings prompt is open
	Help       help.Model
	Keys       help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the overlay box. Its size is the content size reported
// to the host window.
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = DefaultWidth
	}
	inner := width - r.styles.Frame.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	var lines []string
	lines = append(lines, r.styles.Input.Render(state.Input))
	lines = append(lines, r.styles.Separator.Render(strings.Repeat("─", inner)))

	if state.Prompt != "" {
		lines = append(lines, state.Prompt)
	} else {
		lines = append(lines, r.renderResults(state, inner)...)
	}

	if state.Status != "" {
		lines = append(lines, r.styles.Status.Render(truncate(state.Status, inner)))
	}
	if state.Keys != nil {
		h := state.Help
		h.Width = inner
		lines = append(lines, h.View(state.Keys))
	}

	body := lipgloss.NewStyle().Width(inner).Render(strings.Join(lines, "\n"))
	return r.styles.Frame.Render(body)
}

func (r *Renderer) renderResults(state ViewState, inner int) []string {
	if len(state.Items) == 0 {
		line := r.styles.Empty.Render(EmptyStateText(state.EmptyState))
		if state.Scanning && state.EmptyState != query.EmptyStateNone {
			line += r.styles.Dim.Render("  (indexing)")
		}
		return []string{line}
	}

	var lines []string
	if state.Offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", state.Offset)))
	}
	for i, item := range state.Items {
		idx := state.Offset + i
		if idx == state.Selected {
			lines = append(lines, r.styles.Selected.Width(inner).Render("› "+truncate(item, inner-3)))
			continue
		}
		lines = append(lines, r.styles.Item.Render(truncate(item, inner-2)))
	}
	if below := state.Total - state.Offset - len(state.Items); below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", below)))
	}
	return lines
}

// EmptyStateText returns the placeholder copy for s
func EmptyStateText(s query.EmptyState) string {
	switch s {
	case query.EmptyStateTypeSomething:
		return TypeSomethingText
	case query.EmptyStateSearching:
		return SearchingText
	case query.EmptyStateNoMatches:
		return NoMatchesText
	default:
		return ""
	}
}

// Measure returns the cell size of rendered content
func Measure(content string) domain.WindowGeometry {
	return domain.WindowGeometry{
		Cols: lipgloss.Width(content),
		Rows: lipgloss.Height(content),
	}
}

func truncate(s string, max int) string {
	if max <= 1 || lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
