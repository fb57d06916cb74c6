package host

import (
	"context"
	"fmt"
	"io"
	"sync"

	"launchpad/internal/domain"
	"launchpad/internal/logging"
)

// TerminalHost resizes the hosting terminal emulator with the xterm window
// manipulation sequence. Terminals have no cursor passthrough, so that call
// is only logged.
type TerminalHost struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminalHost creates a terminal host writing to out
func NewTerminalHost(out io.Writer) *TerminalHost {
	return &TerminalHost{out: out}
}

// ResizeWindow writes CSI 8 ; rows ; cols t
func (h *TerminalHost) ResizeWindow(ctx context.Context, g domain.WindowGeometry) error {
	if h.out == nil {
		return &CallError{Op: OpResize, Err: ErrNotReady}
	}
	if g.Cols <= 0 || g.Rows <= 0 {
		return &CallError{Op: OpResize, Err: fmt.Errorf("invalid geometry %dx%d", g.Cols, g.Rows)}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// single write so the sequence is not split by renderer output
	if _, err := io.WriteString(h.out, fmt.Sprintf("\x1b[8;%d;%dt", g.Rows, g.Cols)); err != nil {
		return &CallError{Op: OpResize, Err: err}
	}
	logging.FromContext(ctx).Debug().Int("cols", g.Cols).Int("rows", g.Rows).Msg("terminal resize requested")
	return nil
}

func (h *TerminalHost) SetCursorPassthrough(ctx context.Context, enabled bool) error {
	logging.FromContext(ctx).Debug().Bool("enabled", enabled).Msg("cursor passthrough not supported by terminal host")
	return nil
}

// NopHost logs every call and does nothing
type NopHost struct{}

func (NopHost) ResizeWindow(ctx context.Context, g domain.WindowGeometry) error {
	logging.FromContext(ctx).Debug().Int("cols", g.Cols).Int("rows", g.Rows).Msg("resize (no host)")
	return nil
}

func (NopHost) SetCursorPassthrough(ctx context.Context, enabled bool) error {
	logging.FromContext(ctx).Debug().Bool("enabled", enabled).Msg("passthrough (no host)")
	return nil
}
