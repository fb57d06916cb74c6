package query

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/internal/ui/services/events"
	"launchpad/internal/ui/services/results"
)

// manualScheduler fires timers only when the test says so
type manualScheduler struct {
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// fireAll runs every timer that is still live
func (s *manualScheduler) fireAll() {
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

func (s *manualScheduler) live() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type fakeProvider struct {
	calls   []string
	results map[string][]string
	err     error
}

func (p *fakeProvider) Search(_ context.Context, q string) ([]string, error) {
	p.calls = append(p.calls, q)
	if p.err != nil {
		return nil, p.err
	}
	return p.results[q], nil
}

type harness struct {
	ctrl     *Controller
	list     *results.List
	sched    *manualScheduler
	provider *fakeProvider
	posted   []tea.Msg
	bus      *events.Bus
}

func newHarness(t *testing.T, debounce time.Duration) *harness {
	t.Helper()
	h := &harness{
		sched:    &manualScheduler{},
		provider: &fakeProvider{results: map[string][]string{}},
		bus:      events.NewBus(),
	}
	h.list = results.NewList(h.bus)
	h.ctrl = NewController(context.Background(), h.provider, h.list, Options{
		Debounce:  debounce,
		Scheduler: h.sched,
		Post:      func(m tea.Msg) { h.posted = append(h.posted, m) },
		Bus:       h.bus,
	})
	return h
}

// settle fires live timers, feeds posted messages back into the controller
// and returns the dispatched commands
func (h *harness) settle() []tea.Cmd {
	h.sched.fireAll()
	var cmds []tea.Cmd
	for _, m := range h.posted {
		if cmd := h.ctrl.HandleDebounce(m.(DebounceElapsedMsg)); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	h.posted = nil
	return cmds
}

func run(t *testing.T, cmd tea.Cmd) SearchResultMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(SearchResultMsg)
	require.True(t, ok)
	return msg
}

func TestRapidEditsCollapseToOneSearch(t *testing.T) {
	h := newHarness(t, 300*time.Millisecond)

	for _, text := range []string{"c", "ca", "cal", "calc"} {
		assert.Nil(t, h.ctrl.OnQueryChanged(text))
		assert.Equal(t, 1, h.sched.live(), "only one timer may be alive")
	}
	assert.Equal(t, 300*time.Millisecond, h.sched.timers[0].d)

	cmds := h.settle()
	require.Len(t, cmds, 1)
	run(t, cmds[0])

	assert.Equal(t, []string{"calc"}, h.provider.calls)
}

func TestDispatchUsesTextAtFireTime(t *testing.T) {
	h := newHarness(t, time.Second)
	h.ctrl.OnQueryChanged("cal")
	h.sched.fireAll()

	// edit arrives after the callback posted but before the loop handled it
	h.ctrl.OnQueryChanged("calc")
	for _, m := range h.posted {
		assert.Nil(t, h.ctrl.HandleDebounce(m.(DebounceElapsedMsg)), "superseded schedule must not dispatch")
	}
	h.posted = nil

	cmds := h.settle()
	require.Len(t, cmds, 1)
	msg := run(t, cmds[0])
	assert.Equal(t, "calc", msg.Token.Query)
}

func TestOutOfOrderResponsesKeepLatest(t *testing.T) {
	h := newHarness(t, time.Millisecond)
	h.provider.results["q1"] = []string{"one"}
	h.provider.results["q2"] = []string{"two"}

	h.ctrl.OnQueryChanged("q1")
	q1 := h.settle()
	require.Len(t, q1, 1)

	h.ctrl.OnQueryChanged("q2")
	q2 := h.settle()
	require.Len(t, q2, 1)

	h.ctrl.Resolve(run(t, q2[0]))
	h.ctrl.Resolve(run(t, q1[0]))

	assert.Equal(t, []string{"two"}, h.list.Items())
	assert.False(t, h.ctrl.InFlight())
}

func TestBlankQueryClearsWithoutSearching(t *testing.T) {
	h := newHarness(t, time.Millisecond)
	h.list.Replace([]string{"old"})

	assert.Nil(t, h.ctrl.OnQueryChanged("   "))

	assert.Empty(t, h.sched.timers)
	assert.Empty(t, h.provider.calls)
	assert.Zero(t, h.list.Len())
	assert.Equal(t, results.NoSelection, h.list.SelectedIndex())
	assert.Equal(t, EmptyStateTypeSomething, h.ctrl.EmptyState())
}

func TestBlankQueryCancelsPendingTimer(t *testing.T) {
	h := newHarness(t, time.Millisecond)
	h.ctrl.OnQueryChanged("calc")
	h.ctrl.OnQueryChanged("")

	assert.Zero(t, h.sched.live())
	assert.Empty(t, h.settle())
	assert.Empty(t, h.provider.calls)
}

func TestNoMatchesEmptyState(t *testing.T) {
	h := newHarness(t, time.Millisecond)

	h.ctrl.OnQueryChanged("xyz123notfound")
	assert.Equal(t, EmptyStateSearching, h.ctrl.EmptyState())

	cmds := h.settle()
	require.Len(t, cmds, 1)
	assert.Equal(t, EmptyStateSearching, h.ctrl.EmptyState(), "in flight")

	h.ctrl.Resolve(run(t, cmds[0]))
	assert.Equal(t, EmptyStateNoMatches, h.ctrl.EmptyState())
}

func TestProviderErrorLeavesResultsUnchanged(t *testing.T) {
	h := newHarness(t, time.Millisecond)
	h.provider.results["calc"] = []string{"Calculator"}

	h.ctrl.OnQueryChanged("calc")
	h.ctrl.Resolve(run(t, h.settle()[0]))
	require.Equal(t, []string{"Calculator"}, h.list.Items())

	var failed []SearchFailedEvent
	h.bus.Subscribe(SearchFailedEvent{}, func(e interface{}) {
		failed = append(failed, e.(SearchFailedEvent))
	})

	boom := errors.New("index unavailable")
	h.provider.err = boom
	h.ctrl.OnQueryChanged("calcu")
	msg := run(t, h.settle()[0])

	var perr *ProviderError
	require.ErrorAs(t, msg.Err, &perr)
	assert.Equal(t, "calcu", perr.Query)
	require.ErrorIs(t, msg.Err, boom)

	h.ctrl.Resolve(msg)
	assert.Equal(t, []string{"Calculator"}, h.list.Items())
	require.Len(t, failed, 1)
	assert.Equal(t, "calcu", failed[0].Query)
}

func TestProviderErrorOnEmptyListShowsNoMatches(t *testing.T) {
	h := newHarness(t, time.Millisecond)
	h.provider.err = errors.New("down")

	h.ctrl.OnQueryChanged("calc")
	h.ctrl.Resolve(run(t, h.settle()[0]))

	assert.Equal(t, EmptyStateNoMatches, h.ctrl.EmptyState())
}

func TestResetStopsTimerAndRejectsInFlight(t *testing.T) {
	h := newHarness(t, time.Millisecond)
	h.provider.results["calc"] = []string{"Calculator"}

	h.ctrl.OnQueryChanged("calc")
	inFlight := h.settle()
	require.Len(t, inFlight, 1)
	h.ctrl.OnQueryChanged("calc ")
	require.Equal(t, 1, h.sched.live())

	epoch := h.ctrl.epoch
	h.ctrl.Reset()

	assert.Zero(t, h.sched.live())
	assert.Equal(t, epoch+1, h.ctrl.epoch)
	assert.Equal(t, "", h.ctrl.Query())

	// same text typed again after the hide; the old response must not land
	h.ctrl.OnQueryChanged("calc")
	h.ctrl.Resolve(run(t, inFlight[0]))
	assert.Zero(t, h.list.Len())
}

func TestZeroDebounceDispatchesImmediately(t *testing.T) {
	h := newHarness(t, 0)
	h.provider.results["calc"] = []string{"Calculator", "Calc Notes"}

	cmd := h.ctrl.OnQueryChanged("calc")
	assert.Empty(t, h.sched.timers)

	h.ctrl.Resolve(run(t, cmd))
	assert.Equal(t, []string{"Calculator", "Calc Notes"}, h.list.Items())
	assert.Equal(t, 0, h.list.SelectedIndex())
}

func TestStaleDebounceMessageIgnored(t *testing.T) {
	h := newHarness(t, time.Millisecond)
	h.ctrl.OnQueryChanged("calc")

	assert.Nil(t, h.ctrl.HandleDebounce(DebounceElapsedMsg{Seq: 999}))
	assert.True(t, h.ctrl.Pending())
}
