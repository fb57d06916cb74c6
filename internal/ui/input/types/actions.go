package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown"
}

func (a NavigateAction) Type() string { return "navigate" }

// LaunchAction launches the selected result
type LaunchAction struct{}

func (a LaunchAction) Type() string { return "launch" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// OpenSettingsAction asks for a new launch folder
type OpenSettingsAction struct{}

func (a OpenSettingsAction) Type() string { return "open_settings" }

type QuitAction struct {
	Force bool // true for Ctrl+C
}

func (a QuitAction) Type() string { return "quit" }

// HideAction hides the overlay as if the host had asked
type HideAction struct{}

func (a HideAction) Type() string { return "hide" }
