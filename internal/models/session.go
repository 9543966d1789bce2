package models

import "time"

// MarkerSession is one user's working set of pull entries.
type MarkerSession struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	EntryCount int       `json:"entryCount"`
}

// NewMarkerSession creates an empty session.
func NewMarkerSession(id string) *MarkerSession {
	now := time.Now()
	return &MarkerSession{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
