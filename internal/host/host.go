// Package host bridges the overlay to the native window hosting it.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"launchpad/internal/config"
	"launchpad/internal/domain"
)

// ErrNotReady is returned when the host has nothing to talk to yet
var ErrNotReady = errors.New("host window not ready")

// Window is the native window the overlay lives in
type Window interface {
	ResizeWindow(ctx context.Context, g domain.WindowGeometry) error
	SetCursorPassthrough(ctx context.Context, enabled bool) error
}

// CallError wraps a failed host call with the operation name
type CallError struct {
	Op  string
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("host %s: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Operation names used in CallError
const (
	OpResize      = "resize"
	OpPassthrough = "passthrough"
)

// New selects a host implementation from the window configuration. out is
// the terminal the overlay renders to.
func New(cfg config.WindowConfig, out io.Writer) (Window, error) {
	switch strings.ToLower(cfg.Host) {
	case config.HostTerminal, "":
		return NewTerminalHost(out), nil
	case config.HostCommand:
		return NewCommandHost(cfg), nil
	case config.HostNone:
		return NopHost{}, nil
	default:
		return nil, fmt.Errorf("unknown window host %q", cfg.Host)
	}
}
