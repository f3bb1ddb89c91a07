// Package views implements the Views Engine (C5): grid-shaped codebase
// maps that associate code regions with documentation overviews, plus the
// one exception to the store's read-only relationship with the working
// tree — writing a view's nominated overview markdown file.
package views

// CurrentVersion is written into every new view record.
const CurrentVersion = "1.0.0"

// DefaultID is the reserved id a view clones into when saved with
// default: true.
const DefaultID = "default"

const (
	GenerationUser    = "user"
	GenerationMachine = "machine"
)

// Cell is one grid slot: the files it covers and its (row, col) position.
type Cell struct {
	Files       []string `json:"files"`
	Coordinates [2]int   `json:"coordinates"`
}

// View is a named grid that maps code regions onto documentation. See
// Validate for the invariants this type must satisfy before it is
// persisted.
type View struct {
	ID           string          `json:"id"`
	Version      string          `json:"version"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Rows         int             `json:"rows"`
	Cols         int             `json:"cols"`
	Cells        map[string]Cell `json:"cells"`
	OverviewPath string          `json:"overviewPath,omitempty"`
	Timestamp    string          `json:"timestamp"`
	Metadata     map[string]any  `json:"metadata"`
}

// IssueSeverity distinguishes a fatal structural problem from a
// non-blocking semantic one.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue is one diagnostic produced by validation, fatal or not.
type Issue struct {
	Severity IssueSeverity `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
}

// ValidationResult is the outcome of the Received -> Structural ->
// Semantic -> Persisted|Rejected state machine in SaveWithValidation.
type ValidationResult struct {
	ValidatedView *View
	Issues        []Issue
	IsValid       bool
}

func (r *ValidationResult) addError(code, message string) {
	r.Issues = append(r.Issues, Issue{Severity: SeverityError, Code: code, Message: message})
	r.IsValid = false
}

func (r *ValidationResult) addWarning(code, message string) {
	r.Issues = append(r.Issues, Issue{Severity: SeverityWarning, Code: code, Message: message})
}
