package results

// NoSelection is the selection index of an empty list
const NoSelection = -1

// State holds the result set and the selected index
type State struct {
	Items    []string
	Selected int
}

// SelectionChangedEvent is published whenever the selected index changes
type SelectionChangedEvent struct {
	Old int
	New int
}

// ResultsChangedEvent is published whenever the result set is replaced or cleared
type ResultsChangedEvent struct {
	Count int
}
