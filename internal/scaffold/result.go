package scaffold

// Status tags a generation outcome. Created, Skipped, and Removed all map
// to a zero exit status; failures travel as errors instead.
type Status int

const (
	// StatusCreated means new artifacts were written.
	StatusCreated Status = iota
	// StatusSkipped means the destination already existed (or, for reverse
	// operations, was already gone) and nothing was touched.
	StatusSkipped
	// StatusRemoved means a reverse operation deleted existing artifacts.
	StatusRemoved
)

// Result is the structured outcome of one generation flow invocation.
type Result struct {
	Status   Status
	Message  string
	Path     string
	Warnings []string
}

// Markers prefixed to outcome messages. The command layer keys exit status
// off the Result, not the marker, but the marker is part of the contract
// for anyone scraping output.
const (
	markerSuccess = "✅"
	markerWarning = "⚠️"
)

// String renders the outcome line with its status marker.
func (r *Result) String() string {
	switch r.Status {
	case StatusSkipped:
		return markerWarning + "  " + r.Message
	default:
		return markerSuccess + " " + r.Message
	}
}

func created(message, path string, warnings ...string) *Result {
	return &Result{Status: StatusCreated, Message: message, Path: path, Warnings: warnings}
}

func skipped(message, path string, warnings ...string) *Result {
	return &Result{Status: StatusSkipped, Message: message, Path: path, Warnings: warnings}
}

func removed(message, path string) *Result {
	return &Result{Status: StatusRemoved, Message: message, Path: path}
}
