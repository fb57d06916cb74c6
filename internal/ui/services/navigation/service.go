package navigation

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"launchpad/internal/logging"
	"launchpad/internal/ui/services/events"
	"launchpad/internal/ui/services/results"
)

const defaultViewportHeight = 8

// Options configure a Machine
type Options struct {
	Enabled        bool
	ViewportHeight int
}

// Machine translates navigation keys into selection moves and launches, and
// keeps the selected row inside the viewport
type Machine struct {
	ctx      context.Context
	log      *zerolog.Logger
	list     *results.List
	launcher Launcher
	enabled  bool
	viewport Viewport
	dispose  []func()
}

// NewMachine creates a navigation machine over list. Close releases its
// bus subscriptions.
func NewMachine(ctx context.Context, list *results.List, launcher Launcher, bus events.EventBus, opts Options) *Machine {
	if bus == nil {
		bus = &events.NullBus{}
	}
	if opts.ViewportHeight <= 0 {
		opts.ViewportHeight = defaultViewportHeight
	}
	ctx = logging.WithComponent(ctx, "navigation")
	m := &Machine{
		ctx:      ctx,
		log:      logging.FromContext(ctx),
		list:     list,
		launcher: launcher,
		enabled:  opts.Enabled,
		viewport: Viewport{Height: opts.ViewportHeight},
	}

	m.dispose = append(m.dispose,
		bus.Subscribe(results.SelectionChangedEvent{}, func(interface{}) { m.ensureVisible() }),
		bus.Subscribe(results.ResultsChangedEvent{}, func(interface{}) { m.ensureVisible() }),
	)
	return m
}

// Close releases the machine's subscriptions
func (m *Machine) Close() {
	for _, d := range m.dispose {
		d()
	}
	m.dispose = nil
}

// Enabled reports whether keyboard navigation is on
func (m *Machine) Enabled() bool {
	return m.enabled
}

// State returns Navigating when a selection exists
func (m *Machine) State() MachineState {
	if m.list.SelectedIndex() == results.NoSelection {
		return StateIdle
	}
	return StateNavigating
}

// Navigate moves the selection. It reports whether the key was consumed.
func (m *Machine) Navigate(direction Direction) bool {
	if !m.enabled || m.State() == StateIdle {
		return false
	}

	pageSize := m.viewport.Height - 1
	if pageSize < 1 {
		pageSize = 1
	}

	switch direction {
	case DirectionUp:
		m.list.MoveSelection(-1)
	case DirectionDown:
		m.list.MoveSelection(1)
	case DirectionPageUp:
		m.list.MoveSelection(-pageSize)
	case DirectionPageDown:
		m.list.MoveSelection(pageSize)
	default:
		return false
	}
	return true
}

// Launch returns a command that launches the selected candidate. The result
// list is left as is.
func (m *Machine) Launch() (tea.Cmd, bool) {
	if !m.enabled || m.State() == StateIdle {
		return nil, false
	}
	id, ok := m.list.CurrentSelection()
	if !ok {
		return nil, false
	}

	m.log.Debug().Str("identifier", id).Msg("launch selected")
	ctx := m.ctx
	launcher := m.launcher
	return func() tea.Msg {
		return LaunchResultMsg{Identifier: id, Err: launcher.Launch(ctx, id)}
	}, true
}

// SetViewportHeight updates how many rows are visible, e.g. after a config
// reload
func (m *Machine) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	m.viewport.Height = height
	m.ensureVisible()
}

// VisibleRange returns the [start, end) slice of results to render
func (m *Machine) VisibleRange() (int, int) {
	start := m.viewport.Offset
	end := start + m.viewport.Height
	if n := m.list.Len(); end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

func (m *Machine) ensureVisible() {
	cursor := m.list.SelectedIndex()

	if cursor == results.NoSelection {
		m.viewport.Offset = 0
	} else if cursor < m.viewport.Offset {
		m.viewport.Offset = cursor
	} else if cursor >= m.viewport.Offset+m.viewport.Height {
		m.viewport.Offset = cursor - m.viewport.Height + 1
	}

	// never leave blank rows below the last result
	if maxOffset := m.list.Len() - m.viewport.Height; m.viewport.Offset > maxOffset {
		m.viewport.Offset = maxOffset
	}
	if m.viewport.Offset < 0 {
		m.viewport.Offset = 0
	}
}
