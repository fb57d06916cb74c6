package navigation

import "context"

// Launcher starts the candidate with the given identifier
type Launcher interface {
	Launch(ctx context.Context, identifier string) error
}

// MachineState is derived from the result list
type MachineState int

const (
	// StateIdle means there are no results to navigate
	StateIdle MachineState = iota
	// StateNavigating means results exist and one is selected
	StateNavigating
)

func (s MachineState) String() string {
	if s == StateNavigating {
		return "navigating"
	}
	return "idle"
}

// Viewport is the visible window over the result list
type Viewport struct {
	Offset int
	Height int
}

// Direction represents movement directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
)

// LaunchResultMsg reports the outcome of a launch back to the update loop
type LaunchResultMsg struct {
	Identifier string
	Err        error
}
