package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"launchpad/internal/config"
)

// overlayChooser implements config.PathChooser by showing the settings
// prompt inside the running overlay and waiting for its answer
type overlayChooser struct {
	post func(tea.Msg)
}

func (c overlayChooser) ChoosePath(ctx context.Context, current string) (string, error) {
	reply := make(chan string, 1)
	c.post(openSettingsMsg{current: current, reply: reply})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case path := <-reply:
		if path == "" {
			return "", config.ErrNoPathChosen
		}
		return path, nil
	}
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
