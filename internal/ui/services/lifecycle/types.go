package lifecycle

import tea "github.com/charmbracelet/bubbletea"

// Signal is a host originated lifecycle request
type Signal int

const (
	SignalFocusRequested Signal = iota + 1
	SignalHideRequested
)

func (s Signal) String() string {
	switch s {
	case SignalFocusRequested:
		return "focus-requested"
	case SignalHideRequested:
		return "hide-requested"
	default:
		return "unknown"
	}
}

// SignalMsg delivers a Signal on the update loop
type SignalMsg struct {
	Signal Signal
}

// Field is the query input the listener focuses and resets
type Field interface {
	Focus() tea.Cmd
	Reset()
}

// QueryResetter drops the live query, its pending search and the results
type QueryResetter interface {
	Reset()
}
