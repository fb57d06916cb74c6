package results

import (
	"launchpad/internal/ui/services/events"
)

// List is the result list model. The selected index is NoSelection exactly
// when the list is empty and otherwise stays within [0, Len()-1].
type List struct {
	state *State
	bus   events.EventBus
}

// NewList creates an empty result list
func NewList(bus events.EventBus) *List {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &List{
		state: &State{Selected: NoSelection},
		bus:   bus,
	}
}

// Replace swaps in a new result set. A non-empty set selects its first item.
func (l *List) Replace(newResults []string) {
	items := make([]string, len(newResults))
	copy(items, newResults)

	selected := NoSelection
	if len(items) > 0 {
		selected = 0
	}
	l.commit(items, selected)
}

// Clear empties the result set
func (l *List) Clear() {
	l.commit(nil, NoSelection)
}

// MoveSelection moves the selection by delta, stopping at either end
func (l *List) MoveSelection(delta int) {
	if len(l.state.Items) == 0 || delta == 0 {
		return
	}
	old := l.state.Selected
	l.state.Selected = clamp(old+delta, 0, len(l.state.Items)-1)
	if l.state.Selected != old {
		l.bus.Publish(SelectionChangedEvent{Old: old, New: l.state.Selected})
	}
}

// CurrentSelection returns the selected identifier
func (l *List) CurrentSelection() (string, bool) {
	if l.state.Selected == NoSelection {
		return "", false
	}
	return l.state.Items[l.state.Selected], true
}

// SelectedIndex returns the selected index or NoSelection
func (l *List) SelectedIndex() int {
	return l.state.Selected
}

// Items returns a copy of the result set
func (l *List) Items() []string {
	out := make([]string, len(l.state.Items))
	copy(out, l.state.Items)
	return out
}

// Len returns the number of results
func (l *List) Len() int {
	return len(l.state.Items)
}

func (l *List) commit(items []string, selected int) {
	old := l.state.Selected
	l.state.Items = items
	l.state.Selected = selected

	l.bus.Publish(ResultsChangedEvent{Count: len(items)})
	if old != selected {
		l.bus.Publish(SelectionChangedEvent{Old: old, New: selected})
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
