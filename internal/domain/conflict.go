package domain

import (
	"fmt"
	"strings"
	"time"
)

// ConflictStatus is the lifecycle state of a conflict.
// Pending is the only non-terminal state.
type ConflictStatus string

const (
	ConflictDismissed ConflictStatus = "dismissed"
	ConflictPending   ConflictStatus = "pending"
	ConflictResolved  ConflictStatus = "resolved"
)

// ParseConflictStatus converts a status name to ConflictStatus
func ParseConflictStatus(s string) (ConflictStatus, error) {
	switch st := ConflictStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case ConflictDismissed, ConflictPending, ConflictResolved:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown conflict status %q", ErrValidation, s)
}

// PairKey is an unordered session pair stored in canonical order (First < Second)
type PairKey struct {
	First  string
	Second string
}

// NewPairKey builds the canonical key for two session ids
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{First: a, Second: b}
}

// Contains reports whether the pair references the session id
func (p PairKey) Contains(sessionID string) bool {
	return p.First == sessionID || p.Second == sessionID
}

// Conflict represents two overlapping sessions of the same room and weekday.
// Only the detector creates conflicts; ResolvedAt is set when the conflict is closed.
type Conflict struct {
	Day         time.Weekday
	Description string
	DetectedAt  time.Time
	ID          string
	Pair        PairKey
	ResolvedAt  *time.Time
	RoomID      string
	Status      ConflictStatus
}

// Bucket returns the bucket the conflict was detected in
func (c Conflict) Bucket() BucketKey {
	return BucketKey{Day: c.Day, RoomID: c.RoomID}
}

// ConflictFilter narrows ListConflicts. Empty fields match everything.
type ConflictFilter struct {
	RoomID string
	Status ConflictStatus
}

// Match reports whether the conflict passes the filter
func (f ConflictFilter) Match(c Conflict) bool {
	if f.RoomID != "" && f.RoomID != c.RoomID {
		return false
	}
	if f.Status != "" && f.Status != c.Status {
		return false
	}
	return true
}

// DescribeOverlap builds the conflict description from the two sessions
func DescribeOverlap(a, b ClassSession) string {
	return fmt.Sprintf("%s (%s) overlaps with %s (%s)", a.Name, a.Window(), b.Name, b.Window())
}
