package scheduling

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/roomsched/internal/domain"
)

// Reconciliation is the outcome of applying one detection pass
type Reconciliation struct {
	Created []domain.Conflict
	Retired []domain.Conflict
}

// IsEmpty reports whether the pass changed nothing
func (r Reconciliation) IsEmpty() bool {
	return len(r.Created) == 0 && len(r.Retired) == 0
}

// ConflictRegistry holds the conflicts of one bucket keyed by canonical session pair.
// It is not safe for concurrent use; the owning bucket lock guards it.
type ConflictRegistry struct {
	byPair map[domain.PairKey]domain.Conflict
	newID  func() string
}

// NewConflictRegistry creates an empty registry
func NewConflictRegistry() *ConflictRegistry {
	return &ConflictRegistry{
		byPair: make(map[domain.PairKey]domain.Conflict),
		newID:  uuid.NewString,
	}
}

// Clone returns an independent copy used to stage a mutation
func (r *ConflictRegistry) Clone() *ConflictRegistry {
	return &ConflictRegistry{
		byPair: maps.Clone(r.byPair),
		newID:  r.newID,
	}
}

// Len returns the number of records
func (r *ConflictRegistry) Len() int {
	return len(r.byPair)
}

// restore inserts a persisted record as-is. It returns false if the pair is already held.
func (r *ConflictRegistry) restore(c domain.Conflict) bool {
	if _, exists := r.byPair[c.Pair]; exists {
		return false
	}
	r.byPair[c.Pair] = c
	return true
}

// ApplyDetection reconciles the registry with a fresh overlap set of the bucket.
//
// New pairs become pending conflicts. Existing records of pairs still overlapping are left
// untouched whatever their status. Pending and resolved records of pairs no longer
// overlapping are retired. Dismissed records are retired only once one of their sessions
// has left the bucket.
func (r *ConflictRegistry) ApplyDetection(
	key domain.BucketKey,
	pairs []domain.PairKey,
	sessions []domain.ClassSession,
	now time.Time,
) Reconciliation {
	byID := make(map[string]domain.ClassSession, len(sessions))
	for _, s := range sessions {
		byID[s.ID] = s
	}
	present := func(id string) bool {
		_, ok := byID[id]
		return ok
	}

	overlapping := make(map[domain.PairKey]bool, len(pairs))
	for _, p := range pairs {
		overlapping[p] = true
	}

	var rec Reconciliation
	for _, pair := range sortedPairs(r.byPair) {
		if overlapping[pair] {
			continue
		}
		existing := r.byPair[pair]
		if existing.Status == domain.ConflictDismissed && present(pair.First) && present(pair.Second) {
			continue
		}
		delete(r.byPair, pair)
		rec.Retired = append(rec.Retired, existing)
	}

	for _, pair := range pairs {
		if _, exists := r.byPair[pair]; exists {
			continue
		}
		c := domain.Conflict{
			Day:         key.Day,
			Description: domain.DescribeOverlap(byID[pair.First], byID[pair.Second]),
			DetectedAt:  now,
			ID:          r.newID(),
			Pair:        pair,
			RoomID:      key.RoomID,
			Status:      domain.ConflictPending,
		}
		r.byPair[pair] = c
		rec.Created = append(rec.Created, c)
	}

	return rec
}

// Find returns the record with the given conflict id
func (r *ConflictRegistry) Find(id string) (domain.Conflict, bool) {
	for _, c := range r.byPair {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Conflict{}, false
}

// Resolve closes a pending conflict as resolved. The intervals are not re-checked:
// resolving is a user override.
func (r *ConflictRegistry) Resolve(id string, now time.Time) (domain.Conflict, error) {
	return r.close(id, domain.ConflictResolved, now)
}

// Dismiss closes a pending conflict as dismissed
func (r *ConflictRegistry) Dismiss(id string, now time.Time) (domain.Conflict, error) {
	return r.close(id, domain.ConflictDismissed, now)
}

func (r *ConflictRegistry) close(id string, status domain.ConflictStatus, now time.Time) (domain.Conflict, error) {
	c, ok := r.Find(id)
	if !ok {
		return domain.Conflict{}, fmt.Errorf("%w: %w: %s", domain.ErrConflictNotFound, domain.ErrInvalidState, id)
	}
	if c.Status != domain.ConflictPending {
		return domain.Conflict{}, fmt.Errorf("%w: conflict %s is %s, only pending conflicts can be %s",
			domain.ErrInvalidState, id, c.Status, status)
	}
	closedAt := now
	c.Status = status
	c.ResolvedAt = &closedAt
	r.byPair[c.Pair] = c
	return c, nil
}

// List returns the records passing the filter, ordered by pair
func (r *ConflictRegistry) List(filter domain.ConflictFilter) []domain.Conflict {
	var result []domain.Conflict
	for _, pair := range sortedPairs(r.byPair) {
		if c := r.byPair[pair]; filter.Match(c) {
			result = append(result, c)
		}
	}
	return result
}

func sortedPairs(m map[domain.PairKey]domain.Conflict) []domain.PairKey {
	return slices.SortedFunc(maps.Keys(m), comparePairs)
}
