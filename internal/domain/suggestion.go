package domain

import "time"

// SuggestionKind distinguishes the remediation strategies
type SuggestionKind string

const (
	SuggestAlternateRoom SuggestionKind = "alternate_room"
	SuggestAlternateSlot SuggestionKind = "alternate_slot"
)

// Suggestion is a read-only proposal for moving one session of a conflict.
// Applying it is an ordinary session upsert.
type Suggestion struct {
	CapacitySurplus int // alternate_room only
	ConflictID      string
	Day             time.Weekday
	End             int
	Kind            SuggestionKind
	Rationale       string
	RoomID          string
	SessionID       string
	Start           int
}
