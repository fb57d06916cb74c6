package lifecycle

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"launchpad/internal/logging"
)

// Listener dispatches the fixed set of lifecycle signals
type Listener struct {
	log   *zerolog.Logger
	query QueryResetter
	field Field
}

// NewListener creates a listener resetting query on hide
func NewListener(ctx context.Context, query QueryResetter) *Listener {
	return &Listener{
		log:   logging.FromContext(logging.WithComponent(ctx, "lifecycle")),
		query: query,
	}
}

// Mount attaches the query field; nil detaches it
func (l *Listener) Mount(field Field) {
	l.field = field
}

// Listen forwards signals from ch onto the update loop through post until
// ctx ends, ch closes or the returned disposer is called
func (l *Listener) Listen(ctx context.Context, ch <-chan Signal, post func(tea.Msg)) func() {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-ch:
				if !ok {
					return
				}
				post(SignalMsg{Signal: sig})
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
}

// Handle applies a signal. Hide is a single transition: the pending timer,
// query, results, selection and input text all go together.
func (l *Listener) Handle(msg SignalMsg) tea.Cmd {
	switch msg.Signal {
	case SignalFocusRequested:
		if l.field == nil {
			l.log.Debug().Msg("focus requested before the query field was mounted")
			return nil
		}
		return l.field.Focus()
	case SignalHideRequested:
		l.query.Reset()
		if l.field != nil {
			l.field.Reset()
		}
		l.log.Debug().Msg("overlay hidden, state reset")
		return nil
	default:
		l.log.Warn().Int("signal", int(msg.Signal)).Msg("unknown lifecycle signal")
		return nil
	}
}
