package presentation

import (
	"context"

	"launchpad/internal/domain"
)

// Window is the host side of the overlay
type Window interface {
	ResizeWindow(ctx context.Context, g domain.WindowGeometry) error
	SetCursorPassthrough(ctx context.Context, enabled bool) error
}

// Operation names carried by HostCallResultMsg
const (
	OpResize      = "resize"
	OpPassthrough = "passthrough"
)

// HostCallResultMsg reports a finished host call back to the update loop.
// Geometry is set for resizes and Enabled for passthrough changes.
type HostCallResultMsg struct {
	Op       string
	Geometry domain.WindowGeometry
	Enabled  bool
	Err      error
}

// Box is the content rectangle in terminal cells, origin top left
type Box struct {
	X, Y          int
	Width, Height int
}

// Inner is the box without its outermost ring of cells. Boxes too small to
// have a ring are their own inner area.
func (b Box) Inner() Box {
	if b.Width < 3 || b.Height < 3 {
		return b
	}
	return Box{X: b.X + 1, Y: b.Y + 1, Width: b.Width - 2, Height: b.Height - 2}
}

// Contains reports whether the cell (x, y) lies inside the box
func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}
