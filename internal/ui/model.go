package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"launchpad/internal/config"
	"launchpad/internal/eventbus"
	"launchpad/internal/logging"
	"launchpad/internal/ui/input"
	inputtypes "launchpad/internal/ui/input/types"
	"launchpad/internal/ui/services/events"
	"launchpad/internal/ui/services/lifecycle"
	"launchpad/internal/ui/services/navigation"
	"launchpad/internal/ui/services/presentation"
	"launchpad/internal/ui/services/query"
	"launchpad/internal/ui/services/results"
	"launchpad/internal/ui/settings"
	"launchpad/internal/ui/views"
)

// Dependencies are the collaborators the overlay talks to
type Dependencies struct {
	Provider  query.Provider
	Launcher  navigation.Launcher
	Window    presentation.Window
	Settings  config.Service
	Scheduler query.Scheduler // nil uses real timers
}

// Model represents the UI state
type Model struct {
	ctx    context.Context
	log    *zerolog.Logger
	config *config.Config

	// UI-specific state
	width    int
	height   int
	help     help.Model
	scanning bool
	status   string
	frame    string

	// Services
	bus          *events.Bus
	results      *results.List
	query        *query.Controller
	navigator    *navigation.Machine
	presentation *presentation.Synchronizer
	lifecycle    *lifecycle.Listener
	inputHandler *input.Handler
	renderer     *views.Renderer

	settingsSvc   config.Service
	prompt        *settings.Prompt
	settingsReply chan<- string

	// Program reference for terminal management
	program *tea.Program
	post    func(tea.Msg)
	helpOps *HelpOps
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, cfg *config.Config, deps Dependencies) *Model {
	ctx = logging.WithComponent(ctx, "ui")
	bus := events.NewBus()
	list := results.NewList(bus)

	debounce := query.DefaultDebounce
	if cfg.Search.DebounceMs >= 0 {
		debounce = msDuration(cfg.Search.DebounceMs)
	}

	m := &Model{
		ctx:          ctx,
		log:          logging.FromContext(ctx),
		config:       cfg,
		help:         help.New(),
		bus:          bus,
		results:      list,
		inputHandler: input.New(),
		renderer:     views.NewRenderer(),
		settingsSvc:  deps.Settings,
		prompt:       settings.New(),
		post:         func(tea.Msg) {},
	}

	m.query = query.NewController(ctx, deps.Provider, list, query.Options{
		Debounce:  debounce,
		Scheduler: deps.Scheduler,
		Bus:       bus,
	})
	m.navigator = navigation.NewMachine(ctx, list, deps.Launcher, bus, navigation.Options{
		Enabled:        cfg.Navigation.Enabled,
		ViewportHeight: cfg.Window.VisibleRows,
	})
	m.presentation = presentation.NewSynchronizer(ctx, deps.Window)
	m.lifecycle = lifecycle.NewListener(ctx, m.query)
	m.lifecycle.Mount(m.inputHandler)

	bus.Subscribe(query.SearchFailedEvent{}, func(e interface{}) {
		if ev, ok := e.(query.SearchFailedEvent); ok {
			m.log.Debug().Str("query", ev.Query).Msg("search failed, showing previous results")
		}
	})

	m.frame = m.render()
	return m
}

// SetProgram sets the program reference for terminal management and message
// delivery from timers and background choosers
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
	m.setPost(p.Send)
}

func (m *Model) setPost(post func(tea.Msg)) {
	m.post = post
	m.query.SetPost(post)
}

// Lifecycle exposes the listener so signal sources can be attached
func (m *Model) Lifecycle() *lifecycle.Listener {
	return m.lifecycle
}

// Close releases service subscriptions
func (m *Model) Close() {
	m.navigator.Close()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.presentation.Start(),
		m.inputHandler.Focus(),
		m.presentation.ObserveSize(views.Measure(m.frame)),
	)
}

// Update handles messages. After every message the rendered content is
// measured and forwarded to the host window. Host call results are not
// observations themselves, so a refusing host is not asked again in a loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.frame = m.render()
	g := views.Measure(m.frame)
	m.presentation.SetContentBox(presentation.Box{Width: g.Cols, Height: g.Rows})
	if _, ok := msg.(presentation.HostCallResultMsg); ok {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.presentation.ObserveSize(g))
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return nil

	case tea.KeyMsg:
		if m.prompt.Active() {
			return m.handlePromptKey(msg)
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return tea.Batch(cmds...)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion {
			return nil
		}
		return m.presentation.ObservePointer(msg.X, msg.Y)

	case tea.FocusMsg:
		return m.lifecycle.Handle(lifecycle.SignalMsg{Signal: lifecycle.SignalFocusRequested})

	case tea.BlurMsg:
		// focus went to another window, so the pointer is not over ours
		leave := m.presentation.PointerLeave()
		if m.config.Lifecycle.HideOnBlur {
			return tea.Batch(leave, m.hide())
		}
		return leave

	case lifecycle.SignalMsg:
		if msg.Signal == lifecycle.SignalHideRequested {
			return m.hide()
		}
		return m.lifecycle.Handle(msg)

	case query.DebounceElapsedMsg:
		return m.query.HandleDebounce(msg)

	case query.SearchResultMsg:
		m.query.Resolve(msg)
		return nil

	case navigation.LaunchResultMsg:
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Str("identifier", msg.Identifier).Msg("launch failed")
			m.status = fmt.Sprintf("Could not launch %s", msg.Identifier)
		} else {
			m.status = fmt.Sprintf("Launched %s", msg.Identifier)
		}
		return nil

	case presentation.HostCallResultMsg:
		m.presentation.HandleResult(msg)
		return nil

	case EventMsg:
		return m.handleEvent(msg.Event)

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.config = msg.Config
			m.navigator.SetViewportHeight(msg.Config.Window.VisibleRows)
		}
		return nil

	case openSettingsMsg:
		m.cancelPrompt()
		m.settingsReply = msg.reply
		return m.prompt.Open(msg.current)

	case settingsSavedMsg:
		switch {
		case msg.err == nil:
			m.status = fmt.Sprintf("Launch folder set to %s", msg.path)
		case errors.Is(msg.err, config.ErrNoPathChosen), errors.Is(msg.err, context.Canceled):
		default:
			m.log.Warn().Err(msg.err).Msg("could not change launch folder")
			m.status = "Could not change launch folder"
		}
		return nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.log.Warn().Err(msg.err).Msg("help pager failed")
		}
		return nil

	default:
		if m.prompt.Active() {
			return m.prompt.Update(msg)
		}
		return m.inputHandler.Update(msg)
	}
}

// processAction applies one input action
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		m.status = ""
		return m.query.OnQueryChanged(a.Text)

	case inputtypes.NavigateAction:
		m.navigator.Navigate(navigation.Direction(a.Direction))

	case inputtypes.LaunchAction:
		cmd, _ := m.navigator.Launch()
		return cmd

	case inputtypes.HideAction:
		return m.hide()

	case inputtypes.ToggleHelpAction:
		if m.helpOps == nil {
			m.help.ShowAll = !m.help.ShowAll
			return nil
		}
		return m.fetchHelpPager(RenderHelpContent(m.inputHandler.KeyMap()))

	case inputtypes.OpenSettingsAction:
		return m.chooseLaunchFolder()

	case inputtypes.QuitAction:
		m.cancelPrompt()
		return tea.Quit
	}
	return nil
}

// Navigating implements the input context
func (m *Model) Navigating() bool {
	return m.navigator.Enabled() && m.navigator.State() == navigation.StateNavigating
}

// hide resets the engine and any open prompt in one step
func (m *Model) hide() tea.Cmd {
	m.cancelPrompt()
	m.status = ""
	return m.lifecycle.Handle(lifecycle.SignalMsg{Signal: lifecycle.SignalHideRequested})
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.scanning = true

	case eventbus.ScanCompletedEvent:
		m.scanning = false
		m.log.Debug().Int("candidates", e.CandidatesFound).Msg("scan completed")
		// Re-run the live query so new candidates show up
		if q := m.query.Query(); q != "" {
			return m.query.OnQueryChanged(q)
		}

	case eventbus.LaunchCompletedEvent:
		if m.config.Lifecycle.HideAfterLaunch {
			return m.hide()
		}

	case eventbus.ConfigChangedEvent:
		m.log.Info().Str("launch_dir", e.LaunchDir).Msg("launch folder changed")

	case eventbus.ErrorEvent:
		m.log.Warn().Err(e.Err).Msg(e.Message)
	}
	return nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	outcome, cmd := m.prompt.HandleKey(msg)
	switch outcome {
	case settings.OutcomeChosen:
		m.reply(m.prompt.Chosen())
		return m.inputHandler.Focus()
	case settings.OutcomeCancelled:
		m.reply("")
		return m.inputHandler.Focus()
	}
	return cmd
}

func (m *Model) cancelPrompt() {
	if m.prompt.Active() {
		m.prompt.Close()
	}
	m.reply("")
}

func (m *Model) reply(path string) {
	if m.settingsReply == nil {
		return
	}
	m.settingsReply <- path
	m.settingsReply = nil
}

// chooseLaunchFolder runs the config service's chooser off the loop. The
// chooser blocks on the prompt shown inside the overlay.
func (m *Model) chooseLaunchFolder() tea.Cmd {
	if m.settingsSvc == nil {
		return nil
	}
	ctx, svc := m.ctx, m.settingsSvc
	chooser := overlayChooser{post: m.post}
	return func() tea.Msg {
		path, err := svc.ChooseAndPersistPath(ctx, chooser)
		return settingsSavedMsg{path: path, err: err}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	ops := m.helpOps
	return func() tea.Msg {
		return helpPagerMsg{err: ops.ShowHelpInPager(helpContent)}
	}
}

// View renders the UI
func (m *Model) View() string {
	return m.frame
}

func (m *Model) render() string {
	first, last := m.navigator.VisibleRange()
	items := m.results.Items()
	var visible []string
	if first < last && last <= len(items) {
		visible = items[first:last]
	}

	state := views.ViewState{
		Input:      m.inputHandler.TextInput().View(),
		Items:      visible,
		Offset:     first,
		Selected:   m.results.SelectedIndex(),
		Total:      len(items),
		EmptyState: m.query.EmptyState(),
		Scanning:   m.scanning,
		Status:     m.status,
		Help:       m.help,
		Keys:       m.inputHandler.KeyMap(),
	}
	if m.prompt.Active() {
		state.Prompt = m.prompt.View()
	}
	return m.renderer.Render(state)
}
