package scheduling

import (
	"cmp"
	"slices"

	"github.com/renato0307/roomsched/internal/domain"
)

// compareSessions orders sessions by start, then end, then id
func compareSessions(a, b domain.ClassSession) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(a.End, b.End); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// DetectOverlaps returns every overlapping session pair of one bucket, in canonical order.
//
// The sweep keeps the sessions still open at the current start. Sessions ending at or
// before it are dropped first, so every remaining open session overlaps the current one.
// The result is always recomputed from scratch; an empty bucket or a bucket without
// overlaps yields nil.
func DetectOverlaps(sessions []domain.ClassSession) []domain.PairKey {
	if !slices.IsSortedFunc(sessions, compareSessions) {
		sessions = slices.SortedFunc(slices.Values(sessions), compareSessions)
	}

	var pairs []domain.PairKey
	open := make([]domain.ClassSession, 0, len(sessions))
	for _, current := range sessions {
		open = slices.DeleteFunc(open, func(o domain.ClassSession) bool {
			return o.End <= current.Start
		})
		for _, o := range open {
			if o.Overlaps(current) {
				pairs = append(pairs, domain.NewPairKey(o.ID, current.ID))
			}
		}
		open = append(open, current)
	}

	slices.SortFunc(pairs, comparePairs)
	return pairs
}

func comparePairs(a, b domain.PairKey) int {
	if c := cmp.Compare(a.First, b.First); c != 0 {
		return c
	}
	return cmp.Compare(a.Second, b.Second)
}
