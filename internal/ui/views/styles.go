package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Frame     lipgloss.Style
	Input     lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Kind      lipgloss.Style
	Dim       lipgloss.Style
	Empty     lipgloss.Style
	Scroll    lipgloss.Style
	Help      lipgloss.Style
	Status    lipgloss.Style
	Confirm   lipgloss.Style
	Error     lipgloss.Style
	Separator lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Input: lipgloss.NewStyle().Bold(true),
		Item:  lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(lipgloss.Color("226")).
			Background(lipgloss.Color("238")).
			Bold(true),
		Kind:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Dim:       lipgloss.NewStyle().Faint(true),
		Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).PaddingLeft(2),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).PaddingLeft(2),
		Help:      lipgloss.NewStyle().Faint(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Confirm:   lipgloss.NewStyle().Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
