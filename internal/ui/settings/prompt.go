package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage is where the prompt currently is
type Stage int

const (
	StageClosed Stage = iota
	StageEditing
	StageConfirming
)

// Outcome is the result of feeding a key to the prompt
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeChosen
	OutcomeCancelled
)

type keyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Yes    key.Binding
	No     key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y", "enter")),
	No:     key.NewBinding(key.WithKeys("n", "N", "esc")),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Prompt asks for a launch folder and has the user confirm it
type Prompt struct {
	input   textinput.Model
	stage   Stage
	current string
	chosen  string
	note    string
}

// New creates a closed prompt
func New() *Prompt {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "~/Applications"
	ti.CharLimit = 4096
	return &Prompt{input: ti}
}

// Open starts editing with current as the initial value
func (p *Prompt) Open(current string) tea.Cmd {
	p.current = current
	p.chosen = ""
	p.note = ""
	p.stage = StageEditing
	p.input.SetValue(current)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Close dismisses the prompt without a choice
func (p *Prompt) Close() {
	p.stage = StageClosed
	p.note = ""
	p.input.Blur()
}

// Active reports whether the prompt is open
func (p *Prompt) Active() bool {
	return p.stage != StageClosed
}

// Stage returns the current stage
func (p *Prompt) Stage() Stage {
	return p.stage
}

// Chosen returns the confirmed path after OutcomeChosen
func (p *Prompt) Chosen() string {
	return p.chosen
}

// HandleKey feeds a key press to the prompt
func (p *Prompt) HandleKey(msg tea.KeyMsg) (Outcome, tea.Cmd) {
	switch p.stage {
	case StageEditing:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.Close()
			return OutcomeCancelled, nil
		case key.Matches(msg, keys.Submit):
			value := strings.TrimSpace(p.input.Value())
			if value == "" {
				p.note = "Enter a folder"
				return OutcomeNone, nil
			}
			p.chosen = value
			p.note = ""
			p.stage = StageConfirming
			return OutcomeNone, nil
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return OutcomeNone, cmd

	case StageConfirming:
		switch {
		case key.Matches(msg, keys.Yes):
			p.Close()
			return OutcomeChosen, nil
		case key.Matches(msg, keys.No):
			p.stage = StageEditing
			return OutcomeNone, nil
		}
	}
	return OutcomeNone, nil
}

// Update forwards non-key messages (cursor blink) to the text field
func (p *Prompt) Update(msg tea.Msg) tea.Cmd {
	if p.stage != StageEditing {
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the prompt body
func (p *Prompt) View() string {
	var b strings.Builder
	switch p.stage {
	case StageEditing:
		b.WriteString(titleStyle.Render("Launch folder"))
		b.WriteString("\n")
		b.WriteString(p.input.View())
		b.WriteString("\n")
		if p.note != "" {
			b.WriteString(noteStyle.Render(p.note))
			b.WriteString("\n")
		}
		b.WriteString(hintStyle.Render("enter confirm • esc cancel"))
	case StageConfirming:
		b.WriteString(titleStyle.Render("Launch folder"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Use %s?", p.chosen))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("y yes • n no"))
	}
	return b.String()
}
