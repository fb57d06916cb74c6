package query

import (
	"context"
	"fmt"
	"time"
)

// DefaultDebounce is the quiet period before a search is dispatched
const DefaultDebounce = 300 * time.Millisecond

// Provider produces ranked candidate identifiers for a query
type Provider interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Timer is a cancellable pending callback
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Token ties a search response to the input that produced it. Epoch changes
// on every hide, Query is the text at dispatch time and Seq numbers debounce
// schedules.
type Token struct {
	Epoch uint64
	Query string
	Seq   uint64
}

// DebounceElapsedMsg is posted to the update loop when the quiet period ends
type DebounceElapsedMsg struct {
	Seq uint64
}

// SearchResultMsg carries a provider response back to the update loop
type SearchResultMsg struct {
	Token   Token
	Results []string
	Err     error
}

// SearchFailedEvent is published on the UI bus when the provider fails
type SearchFailedEvent struct {
	Query string
	Err   error
}

// ProviderError wraps a search provider failure
type ProviderError struct {
	Query string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("search %q: %v", e.Query, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// EmptyState says which placeholder an empty result list should show
type EmptyState int

const (
	EmptyStateNone EmptyState = iota
	EmptyStateTypeSomething
	EmptyStateSearching
	EmptyStateNoMatches
)

func (s EmptyState) String() string {
	switch s {
	case EmptyStateTypeSomething:
		return "type-something"
	case EmptyStateSearching:
		return "searching"
	case EmptyStateNoMatches:
		return "no-matches"
	default:
		return "none"
	}
}
