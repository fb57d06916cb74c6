package input

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"launchpad/internal/ui/input/types"
)

// Handler maps key presses to actions. Keys it does not bind go to the
// query field.
type Handler struct {
	keys      KeyMap
	textInput *textinput.Model
}

// New creates a handler with the default keymap
func New() *Handler {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "Search apps"
	ti.CharLimit = 256

	return &Handler{
		keys:      DefaultKeyMap(),
		textInput: &ti,
	}
}

// HandleKey returns the actions for msg and any command from the text field
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	switch {
	case key.Matches(msg, h.keys.Quit):
		return []types.Action{types.QuitAction{Force: true}}, nil
	case key.Matches(msg, h.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, nil
	case key.Matches(msg, h.keys.Settings):
		return []types.Action{types.OpenSettingsAction{}}, nil
	case key.Matches(msg, h.keys.Hide):
		return []types.Action{types.HideAction{}}, nil
	}

	if ctx != nil && ctx.Navigating() {
		switch {
		case key.Matches(msg, h.keys.Up):
			return []types.Action{types.NavigateAction{Direction: "up"}}, nil
		case key.Matches(msg, h.keys.Down):
			return []types.Action{types.NavigateAction{Direction: "down"}}, nil
		case key.Matches(msg, h.keys.PageUp):
			return []types.Action{types.NavigateAction{Direction: "pageup"}}, nil
		case key.Matches(msg, h.keys.PageDown):
			return []types.Action{types.NavigateAction{Direction: "pagedown"}}, nil
		case key.Matches(msg, h.keys.Launch):
			return []types.Action{types.LaunchAction{}}, nil
		}
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if after := h.textInput.Value(); after != before {
		return []types.Action{types.UpdateTextAction{Text: after}}, cmd
	}
	return nil, cmd
}

// Update handles non-keyboard messages for the text field (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Focus focuses the query field
func (h *Handler) Focus() tea.Cmd {
	return h.textInput.Focus()
}

// Blur removes focus from the query field
func (h *Handler) Blur() {
	h.textInput.Blur()
}

// Reset empties the query field
func (h *Handler) Reset() {
	h.textInput.Reset()
}

// Value returns the query text
func (h *Handler) Value() string {
	return h.textInput.Value()
}

// TextInput returns the query field model for rendering
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// KeyMap returns the active keybindings
func (h *Handler) KeyMap() KeyMap {
	return h.keys
}
