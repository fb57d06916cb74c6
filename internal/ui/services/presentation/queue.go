package presentation

import (
	"context"
	"sync"

	"launchpad/internal/domain"
)

// hostCall is one queued request to the host window
type hostCall struct {
	op       string
	geometry domain.WindowGeometry
	enabled  bool
}

// callQueue runs host calls one at a time in the order they were queued.
// Calls are queued on the update loop; each drain runs on a command
// goroutine and takes the oldest call, so goroutine scheduling cannot
// reorder what the host sees.
type callQueue struct {
	mu    sync.Mutex
	calls []hostCall

	run sync.Mutex
}

func (q *callQueue) push(c hostCall) {
	q.mu.Lock()
	q.calls = append(q.calls, c)
	q.mu.Unlock()
}

func (q *callQueue) pop() (hostCall, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.calls) == 0 {
		return hostCall{}, false
	}
	c := q.calls[0]
	q.calls = q.calls[1:]
	return c, true
}

func (q *callQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.calls)
}

// drain runs the oldest queued call against window. run is held from pop to
// completion so the next call cannot start before this one returns.
func (q *callQueue) drain(ctx context.Context, window Window) HostCallResultMsg {
	q.run.Lock()
	defer q.run.Unlock()

	c, ok := q.pop()
	if !ok {
		return HostCallResultMsg{}
	}
	msg := HostCallResultMsg{Op: c.op, Geometry: c.geometry, Enabled: c.enabled}
	switch c.op {
	case OpResize:
		msg.Err = window.ResizeWindow(ctx, c.geometry)
	case OpPassthrough:
		msg.Err = window.SetCursorPassthrough(ctx, c.enabled)
	}
	return msg
}
