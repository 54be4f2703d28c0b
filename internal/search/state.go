package search

import "strings"

// State is the search session state the UI layer is expected to track.
// Idle and Suggesting are never terminal; Results and Empty persist
// until the next text change or submission.
type State int

const (
	// StateIdle means no query text is present.
	StateIdle State = iota
	// StateSuggesting means non-empty text was typed but not submitted.
	StateSuggesting
	// StateResults means the last submission produced a non-empty list.
	StateResults
	// StateEmpty means the last submission produced zero results or
	// failed. Both render as an empty list; failures add an error banner.
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSuggesting:
		return "suggesting"
	case StateResults:
		return "results"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// NextOnTextChange returns the state after the query text changes.
func (s State) NextOnTextChange(text string) State {
	if strings.TrimSpace(text) == "" {
		return StateIdle
	}
	return StateSuggesting
}

// NextOnSubmit returns the state after an explicit submission.
func (s State) NextOnSubmit(hasResults bool) State {
	if hasResults {
		return StateResults
	}
	return StateEmpty
}

// NextOnCancel returns the state after the user cancels the search.
func (s State) NextOnCancel() State {
	return StateIdle
}
