package host

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"launchpad/internal/config"
	"launchpad/internal/domain"
	"launchpad/internal/launch"
	"launchpad/internal/logging"
)

// DefaultCommandTimeout bounds every host command
const DefaultCommandTimeout = 2 * time.Second

// RunFunc runs argv to completion
type RunFunc func(ctx context.Context, argv []string) error

// CommandHost drives the window through user supplied commands, e.g. a
// compositor IPC client. Templates may use {cols}, {rows}, {width} and
// {height}; width and height are in pixels.
type CommandHost struct {
	resize         string
	passthroughOn  string
	passthroughOff string
	cellWidth      int
	cellHeight     int
	timeout        time.Duration
	run            RunFunc
}

// NewCommandHost creates a command host from the window configuration
func NewCommandHost(cfg config.WindowConfig) *CommandHost {
	cw, ch := cfg.CellWidth, cfg.CellHeight
	if cw <= 0 {
		cw = 8
	}
	if ch <= 0 {
		ch = 16
	}
	return &CommandHost{
		resize:         cfg.ResizeCommand,
		passthroughOn:  cfg.PassthroughOnCommand,
		passthroughOff: cfg.PassthroughOffCommand,
		cellWidth:      cw,
		cellHeight:     ch,
		timeout:        DefaultCommandTimeout,
		run:            runCommand,
	}
}

func (h *CommandHost) ResizeWindow(ctx context.Context, g domain.WindowGeometry) error {
	if strings.TrimSpace(h.resize) == "" {
		logging.FromContext(ctx).Debug().Msg("no resize command configured")
		return nil
	}
	values := map[string]string{
		"cols":   strconv.Itoa(g.Cols),
		"rows":   strconv.Itoa(g.Rows),
		"width":  strconv.Itoa(g.Cols * h.cellWidth),
		"height": strconv.Itoa(g.Rows * h.cellHeight),
	}
	return h.exec(ctx, OpResize, h.resize, values)
}

func (h *CommandHost) SetCursorPassthrough(ctx context.Context, enabled bool) error {
	template := h.passthroughOff
	if enabled {
		template = h.passthroughOn
	}
	if strings.TrimSpace(template) == "" {
		logging.FromContext(ctx).Debug().Bool("enabled", enabled).Msg("no passthrough command configured")
		return nil
	}
	return h.exec(ctx, OpPassthrough, template, nil)
}

func (h *CommandHost) exec(ctx context.Context, op, template string, values map[string]string) error {
	argv, err := launch.Expand(template, values, "")
	if err != nil {
		return &CallError{Op: op, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.run(ctx, argv); err != nil {
		return &CallError{Op: op, Err: err}
	}
	logging.FromContext(ctx).Debug().Str("op", op).Strs("argv", argv).Msg("host command ran")
	return nil
}

func runCommand(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
