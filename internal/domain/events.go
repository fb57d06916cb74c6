package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCandidatesDiscovered EventType = "CandidatesDiscovered"
	EventScanStarted          EventType = "ScanStarted"
	EventScanCompleted        EventType = "ScanCompleted"
	EventScanRequested        EventType = "ScanRequested"
	EventLaunchCompleted      EventType = "LaunchCompleted"
	EventLaunchFailed         EventType = "LaunchFailed"
	EventConfigChanged        EventType = "ConfigChanged"
	EventError                EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CandidatesDiscoveredEvent carries the full candidate set of one scan root
type CandidatesDiscoveredEvent struct {
	Root       string
	Candidates []Candidate
}

func (e CandidatesDiscoveredEvent) Type() EventType { return EventCandidatesDiscovered }

// ScanStartedEvent is emitted when launch folder scanning begins
type ScanStartedEvent struct {
	Roots []string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when launch folder scanning completes
type ScanCompletedEvent struct {
	CandidatesFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ScanRequestedEvent is emitted to request a new scan
type ScanRequestedEvent struct {
	Roots []string
}

func (e ScanRequestedEvent) Type() EventType { return EventScanRequested }

// LaunchCompletedEvent is emitted after a candidate process was started
type LaunchCompletedEvent struct {
	Name string
	Path string
	PID  int
	At   time.Time
}

func (e LaunchCompletedEvent) Type() EventType { return EventLaunchCompleted }

// LaunchFailedEvent is emitted when a candidate could not be started
type LaunchFailedEvent struct {
	Name string
	Err  error
}

func (e LaunchFailedEvent) Type() EventType { return EventLaunchFailed }

// ConfigChangedEvent is emitted when the configured launch folder changes
type ConfigChangedEvent struct {
	LaunchDir string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// ErrorEvent is emitted when a background collaborator fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
