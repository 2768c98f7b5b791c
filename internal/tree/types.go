// Package tree renders a directory as text lines with box-drawing connectors
package tree

import (
	"sort"
)

// Connector and continuation glyphs.
const (
	CornerConnector = "└── "
	TeeConnector    = "├── "
	LastExtension   = "    "
	BranchExtension = "│   "
)

// DefaultExclusions are directory names that are never listed or descended
// into, regardless of ignore rules.
var DefaultExclusions = []string{".git", "node_modules", "venv"}

// LineKind tells entry lines apart from diagnostics.
type LineKind int

const (
	LineEntry LineKind = iota
	LineDiagnostic
)

func (k LineKind) String() string {
	if k == LineDiagnostic {
		return "diagnostic"
	}
	return "entry"
}

// Line is a single rendered line.
type Line struct {
	Kind      LineKind
	Prefix    string
	Connector string // empty for diagnostics
	Name      string
	Path      string // slash-separated, relative to the render root
	IsDir     bool
	Depth     int
	Message   string // diagnostics only
}

// Text returns the line exactly as it is printed.
func (l Line) Text() string {
	if l.Kind == LineDiagnostic {
		return l.Prefix + l.Message
	}
	return l.Prefix + l.Connector + l.Name
}

// LineFunc receives every rendered line in depth-first pre-order.
type LineFunc func(line Line)

// Stats summarizes a render.
type Stats struct {
	Dirs        int
	Files       int
	Diagnostics int
	Skipped     int
}

// SkippedReason clarifies why an entry was not rendered or not descended into.
type SkippedReason string

const (
	ReasonExcludedName  SkippedReason = "Excluded (Hardcoded Name)"
	ReasonIgnoredRule   SkippedReason = "Ignored (Gitignore/Custom Rule)"
	ReasonIgnoredHidden SkippedReason = "Ignored (Hidden Rule)"
	ReasonDepthLimit    SkippedReason = "Not Descended (Depth Limit)"
	ReasonPermError     SkippedReason = "Skipped (Permission Error)"
	ReasonNotFound      SkippedReason = "Skipped (Path Not Found)"
	ReasonReadError     SkippedReason = "Skipped (Read Error)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
	Rule   string        `json:"rule,omitempty"` // deciding ignore rule, when known
}

// SkippedTracker collects skipped items during one render. Rendering is
// single-threaded, so it carries no lock.
type SkippedTracker struct {
	items []SkippedItem
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.Add(SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Add records a fully described skipped item.
func (st *SkippedTracker) Add(item SkippedItem) {
	st.items = append(st.items, item)
}

// Len returns the number of tracked items.
func (st *SkippedTracker) Len() int {
	return len(st.items)
}

// Items returns the tracked items sorted by path.
func (st *SkippedTracker) Items() []SkippedItem {
	items := make([]SkippedItem, len(st.items))
	copy(items, st.items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Path < items[j].Path
	})
	return items
}
