package query

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"launchpad/internal/logging"
	"launchpad/internal/ui/services/events"
	"launchpad/internal/ui/services/results"
)

type liveKey struct {
	epoch uint64
	query string
}

// Controller turns keystrokes into debounced searches and commits only the
// responses that still match the live input. All methods must be called from
// the update loop.
type Controller struct {
	ctx       context.Context
	log       *zerolog.Logger
	provider  Provider
	results   *results.List
	scheduler Scheduler
	post      func(tea.Msg)
	bus       events.EventBus
	debounce  time.Duration

	query    string
	epoch    uint64
	seq      uint64
	timer    Timer
	inFlight map[liveKey]int
}

// Options configure a Controller
type Options struct {
	// Debounce of zero dispatches immediately, negative uses DefaultDebounce
	Debounce  time.Duration
	Scheduler Scheduler
	// Post delivers timer messages onto the update loop, usually Program.Send
	Post func(tea.Msg)
	Bus  events.EventBus
}

// NewController creates a query controller writing into list
func NewController(ctx context.Context, provider Provider, list *results.List, opts Options) *Controller {
	if opts.Debounce < 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler{}
	}
	if opts.Bus == nil {
		opts.Bus = &events.NullBus{}
	}
	if opts.Post == nil {
		opts.Post = func(tea.Msg) {}
	}
	ctx = logging.WithComponent(ctx, "query")
	return &Controller{
		ctx:       ctx,
		log:       logging.FromContext(ctx),
		provider:  provider,
		results:   list,
		scheduler: opts.Scheduler,
		post:      opts.Post,
		bus:       opts.Bus,
		debounce:  opts.Debounce,
		inFlight:  make(map[liveKey]int),
	}
}

// SetPost replaces the message poster. The program does not exist yet when
// the model is built, so the CLI wires this after tea.NewProgram.
func (c *Controller) SetPost(post func(tea.Msg)) {
	if post != nil {
		c.post = post
	}
}

// OnQueryChanged is called with the full input text on every edit
func (c *Controller) OnQueryChanged(text string) tea.Cmd {
	c.query = text
	c.stopTimer()

	if isBlank(text) {
		c.results.Clear()
		return nil
	}

	c.seq++
	if c.debounce == 0 {
		return c.dispatch()
	}

	seq := c.seq
	post := c.post
	c.timer = c.scheduler.AfterFunc(c.debounce, func() {
		post(DebounceElapsedMsg{Seq: seq})
	})
	return nil
}

// HandleDebounce dispatches the search once the quiet period has ended
func (c *Controller) HandleDebounce(msg DebounceElapsedMsg) tea.Cmd {
	// a callback can race its own Stop; only the live schedule counts
	if c.timer == nil || msg.Seq != c.seq {
		c.log.Debug().Uint64("seq", msg.Seq).Msg("ignoring superseded debounce")
		return nil
	}
	c.timer = nil

	if isBlank(c.query) {
		return nil
	}
	return c.dispatch()
}

// Resolve commits a provider response if it is still current
func (c *Controller) Resolve(msg SearchResultMsg) {
	key := liveKey{epoch: msg.Token.Epoch, query: msg.Token.Query}
	if n := c.inFlight[key]; n <= 1 {
		delete(c.inFlight, key)
	} else {
		c.inFlight[key] = n - 1
	}

	if msg.Token.Epoch != c.epoch || msg.Token.Query != c.query {
		c.log.Debug().
			Str("query", msg.Token.Query).
			Uint64("seq", msg.Token.Seq).
			Msg("dropping stale search response")
		return
	}

	if msg.Err != nil {
		c.log.Warn().Err(msg.Err).Str("query", msg.Token.Query).Msg("search failed")
		c.bus.Publish(SearchFailedEvent{Query: msg.Token.Query, Err: msg.Err})
		return
	}

	c.results.Replace(msg.Results)
}

// Reset cancels the pending timer, clears the query and results, and makes
// every in-flight response stale
func (c *Controller) Reset() {
	c.stopTimer()
	c.epoch++
	c.query = ""
	c.results.Clear()
}

// Query returns the live input text
func (c *Controller) Query() string {
	return c.query
}

// Pending reports whether a debounce timer is alive
func (c *Controller) Pending() bool {
	return c.timer != nil
}

// InFlight reports whether a search for the live input is awaiting its response
func (c *Controller) InFlight() bool {
	return c.inFlight[liveKey{epoch: c.epoch, query: c.query}] > 0
}

// EmptyState derives the placeholder for the current state
func (c *Controller) EmptyState() EmptyState {
	switch {
	case c.results.Len() > 0:
		return EmptyStateNone
	case isBlank(c.query):
		return EmptyStateTypeSomething
	case c.Pending() || c.InFlight():
		return EmptyStateSearching
	default:
		return EmptyStateNoMatches
	}
}

func (c *Controller) dispatch() tea.Cmd {
	token := Token{Epoch: c.epoch, Query: c.query, Seq: c.seq}
	c.inFlight[liveKey{epoch: token.Epoch, query: token.Query}]++
	c.log.Debug().Str("query", token.Query).Uint64("seq", token.Seq).Msg("dispatching search")

	ctx := c.ctx
	provider := c.provider
	return func() tea.Msg {
		res, err := provider.Search(ctx, token.Query)
		if err != nil {
			return SearchResultMsg{Token: token, Err: &ProviderError{Query: token.Query, Err: err}}
		}
		return SearchResultMsg{Token: token, Results: res}
	}
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
