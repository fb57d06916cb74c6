package ui

import (
	"launchpad/internal/config"
	"launchpad/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// ConfigReloadedMsg carries a configuration reloaded from disk
type ConfigReloadedMsg struct {
	Config *config.Config
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// openSettingsMsg asks the loop to show the path prompt. The choice, or ""
// when dismissed, is sent on reply.
type openSettingsMsg struct {
	current string
	reply   chan<- string
}

// settingsSavedMsg reports the outcome of choosing a launch folder
type settingsSavedMsg struct {
	path string
	err  error
}
