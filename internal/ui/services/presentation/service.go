package presentation

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"launchpad/internal/domain"
	"launchpad/internal/logging"
)

// Synchronizer forwards content size and hover state to the host window.
// Host calls are queued in the order they were decided and run off the update
// loop one at a time; each reports back as HostCallResultMsg.
type Synchronizer struct {
	ctx    context.Context
	log    *zerolog.Logger
	window Window
	queue  callQueue

	sent        domain.WindowGeometry
	passthrough bool
	// the host refused the current passthrough state; resend on next motion
	passthroughStale bool
	box              Box
}

// NewSynchronizer creates a synchronizer for window
func NewSynchronizer(ctx context.Context, window Window) *Synchronizer {
	ctx = logging.WithComponent(ctx, "presentation")
	return &Synchronizer{
		ctx:         ctx,
		log:         logging.FromContext(ctx),
		window:      window,
		passthrough: true,
	}
}

// Start makes the host match the initial state: pointer outside, clicks
// pass through
func (s *Synchronizer) Start() tea.Cmd {
	s.passthrough = true
	s.passthroughStale = false
	return s.enqueue(hostCall{op: OpPassthrough, enabled: true})
}

// ObserveSize forwards g to the host when it differs from the last size sent.
// A size the host refused is sent again on the next observation.
func (s *Synchronizer) ObserveSize(g domain.WindowGeometry) tea.Cmd {
	if g.IsZero() || g == s.sent {
		return nil
	}
	s.sent = g
	return s.enqueue(hostCall{op: OpResize, geometry: g})
}

// SetContentBox records where the content is drawn for pointer hit tests
func (s *Synchronizer) SetContentBox(b Box) {
	s.box = b
}

// ContentBox returns the last recorded content box
func (s *Synchronizer) ContentBox() Box {
	return s.box
}

// ObservePointer turns a pointer position into enter or leave. The host
// window is sized to the content, so the terminal never reports motion
// outside it; motion on the outermost ring of cells counts as leaving.
func (s *Synchronizer) ObservePointer(x, y int) tea.Cmd {
	if s.box.Inner().Contains(x, y) {
		return s.PointerEnter()
	}
	return s.PointerLeave()
}

// PointerEnter makes the overlay clickable
func (s *Synchronizer) PointerEnter() tea.Cmd {
	return s.setPassthrough(false)
}

// PointerLeave lets clicks fall through again
func (s *Synchronizer) PointerLeave() tea.Cmd {
	return s.setPassthrough(true)
}

// Passthrough reports the current passthrough state
func (s *Synchronizer) Passthrough() bool {
	return s.passthrough
}

// Geometry returns the last size forwarded to the host
func (s *Synchronizer) Geometry() domain.WindowGeometry {
	return s.sent
}

// Pending returns the number of host calls not yet run
func (s *Synchronizer) Pending() int {
	return s.queue.len()
}

// HandleResult logs failed host calls. Nothing is retried here; a failed state
// is marked so the next observation sends it again.
func (s *Synchronizer) HandleResult(msg HostCallResultMsg) {
	if msg.Err == nil {
		return
	}
	s.log.Warn().Err(msg.Err).Str("op", msg.Op).Msg("host call failed")

	switch msg.Op {
	case OpResize:
		if msg.Geometry == s.sent {
			s.sent = domain.WindowGeometry{}
		}
	case OpPassthrough:
		if msg.Enabled == s.passthrough {
			s.passthroughStale = true
		}
	}
}

func (s *Synchronizer) setPassthrough(enabled bool) tea.Cmd {
	if s.passthrough == enabled && !s.passthroughStale {
		return nil
	}
	s.passthrough = enabled
	s.passthroughStale = false
	return s.enqueue(hostCall{op: OpPassthrough, enabled: enabled})
}

func (s *Synchronizer) enqueue(c hostCall) tea.Cmd {
	s.queue.push(c)
	ctx, window, q := s.ctx, s.window, &s.queue
	return func() tea.Msg {
		return q.drain(ctx, window)
	}
}
