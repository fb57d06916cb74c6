package types

// Action is something the model should do in response to a key
type Action interface {
	Type() string
}

// Context is what the handler may ask the model while mapping keys
type Context interface {
	// Navigating reports whether keyboard navigation is enabled and a
	// result is selected
	Navigating() bool
}
