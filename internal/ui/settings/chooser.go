package settings

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"launchpad/internal/config"
)

var quitKey = key.NewBinding(key.WithKeys("ctrl+c"))

// Chooser runs the prompt as its own program. It is used outside the
// overlay, e.g. by the set-path command.
type Chooser struct {
	Options []tea.ProgramOption
}

// ChoosePath implements config.PathChooser
func (c Chooser) ChoosePath(ctx context.Context, current string) (string, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, c.Options...)
	final, err := tea.NewProgram(newChooserModel(current), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("run path prompt: %w", err)
	}
	m, ok := final.(*chooserModel)
	if !ok || m.outcome != OutcomeChosen {
		return "", config.ErrNoPathChosen
	}
	return m.prompt.Chosen(), nil
}

type chooserModel struct {
	prompt  *Prompt
	current string
	outcome Outcome
}

func newChooserModel(current string) *chooserModel {
	return &chooserModel{prompt: New(), current: current}
}

func (m *chooserModel) Init() tea.Cmd {
	return m.prompt.Open(m.current)
}

func (m *chooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, quitKey) {
			m.outcome = OutcomeCancelled
			return m, tea.Quit
		}
		outcome, cmd := m.prompt.HandleKey(msg)
		if outcome != OutcomeNone {
			m.outcome = outcome
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, m.prompt.Update(msg)
}

func (m *chooserModel) View() string {
	if !m.prompt.Active() {
		return ""
	}
	return m.prompt.View() + "\n"
}
