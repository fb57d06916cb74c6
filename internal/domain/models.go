package domain

// CandidateKind describes how a candidate is launched
type CandidateKind string

const (
	KindDesktopEntry CandidateKind = "desktop"
	KindExecutable   CandidateKind = "executable"
	KindBundle       CandidateKind = "bundle"   // macOS .app directories
	KindShortcut     CandidateKind = "shortcut" // .lnk / .url files
	KindFile         CandidateKind = "file"     // anything opened through the opener
)

// Candidate is a single launchable item found in the launch folder
type Candidate struct {
	Name string // display name, also the identifier handed to the engine
	Path string // absolute path of the entry on disk
	Kind CandidateKind
	Exec string // command line from a desktop entry, empty otherwise
}

// WindowGeometry is the overlay content size in terminal cells
type WindowGeometry struct {
	Cols int
	Rows int
}

// IsZero reports whether nothing has been measured yet
func (g WindowGeometry) IsZero() bool {
	return g.Cols == 0 && g.Rows == 0
}

// ScanProgress represents the current scanning state
type ScanProgress struct {
	IsScanning      bool
	CandidatesFound int
	Root            string
}
