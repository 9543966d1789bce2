// Package models contains domain types for the raid marker backend.
package models

// PullEntry is a single boss attempt with its wall-clock time of day.
type PullEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PullTime string `json:"pullTime"` // always zero-padded HH:MM:SS
}

// ParseResult is the outcome of scraping pasted log text.
// Either Valid is true and Entries is non-empty, or Valid is false
// and ErrorMessage explains why. Never both.
type ParseResult struct {
	Valid        bool        `json:"valid"`
	Entries      []PullEntry `json:"entries,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
}

// Invalid builds a failed ParseResult with the given reason.
func Invalid(reason string) ParseResult {
	return ParseResult{Valid: false, ErrorMessage: reason}
}
