package scheduling

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/renato0307/roomsched/internal/domain"
)

// AdvisorConfig bounds the suggestion search
type AdvisorConfig struct {
	DayEnd              int // minutes since midnight, exclusive bound for proposed slots
	DayStart            int // minutes since midnight
	DefaultCandidateCap int // used when the caller passes a cap <= 0
}

// DefaultAdvisorConfig returns the facility defaults (07:00-22:00, 10 candidates)
func DefaultAdvisorConfig() AdvisorConfig {
	return AdvisorConfig{
		DayEnd:              22 * 60,
		DayStart:            7 * 60,
		DefaultCandidateCap: 10,
	}
}

// SessionLookup returns the ordered sessions of one bucket
type SessionLookup func(roomID string, day time.Weekday) []domain.ClassSession

// Advisor generates read-only remediation suggestions for pending conflicts
type Advisor struct {
	cfg AdvisorConfig
}

// NewAdvisor creates an Advisor. Invalid bounds fall back to the whole day.
func NewAdvisor(cfg AdvisorConfig) *Advisor {
	if cfg.DayStart < 0 || cfg.DayEnd > domain.MinutesPerDay || cfg.DayStart >= cfg.DayEnd {
		cfg.DayStart, cfg.DayEnd = 0, domain.MinutesPerDay
	}
	if cfg.DefaultCandidateCap <= 0 {
		cfg.DefaultCandidateCap = DefaultAdvisorConfig().DefaultCandidateCap
	}
	return &Advisor{cfg: cfg}
}

// MovingSession picks the session of the pair to relocate: the later-starting one, or the
// canonical second on equal starts.
func MovingSession(pair domain.PairKey, bucket []domain.ClassSession) (domain.ClassSession, bool) {
	first, okFirst := findSession(bucket, pair.First)
	second, okSecond := findSession(bucket, pair.Second)
	if !okFirst || !okSecond {
		return domain.ClassSession{}, false
	}
	if first.Start > second.Start {
		return first, true
	}
	return second, true
}

// Suggest returns alternate rooms ranked by capacity surplus followed by alternate slots
// ranked by distance from the original start. candidateCap bounds both the rooms examined
// and the slots returned.
func (a *Advisor) Suggest(
	conflict domain.Conflict,
	bucket []domain.ClassSession,
	rooms []domain.Room,
	lookup SessionLookup,
	requiredCapacity int,
	candidateCap int,
) []domain.Suggestion {
	moving, ok := MovingSession(conflict.Pair, bucket)
	if !ok {
		return nil
	}
	if candidateCap <= 0 {
		candidateCap = a.cfg.DefaultCandidateCap
	}

	suggestions := a.AlternateRooms(conflict, moving, rooms, lookup, requiredCapacity, candidateCap)
	return append(suggestions, a.AlternateSlots(conflict, moving, bucket, candidateCap)...)
}

// AlternateRooms lists rooms other than the conflicting one that seat requiredCapacity and
// are free for the moving session's window. Rooms are examined in id order and the scan
// stops after candidateCap rooms.
func (a *Advisor) AlternateRooms(
	conflict domain.Conflict,
	moving domain.ClassSession,
	rooms []domain.Room,
	lookup SessionLookup,
	requiredCapacity int,
	candidateCap int,
) []domain.Suggestion {
	required := max(requiredCapacity, 0)
	ordered := slices.SortedFunc(slices.Values(rooms), func(x, y domain.Room) int {
		return cmp.Compare(x.ID, y.ID)
	})

	type candidate struct {
		room    domain.Room
		surplus int
	}
	var candidates []candidate
	examined := 0
	for _, room := range ordered {
		if room.ID == conflict.RoomID {
			continue
		}
		if examined >= candidateCap {
			break
		}
		examined++

		if room.Maintenance || room.Capacity < required {
			continue
		}
		if !isFree(lookup(room.ID, moving.Day), moving) {
			continue
		}
		candidates = append(candidates, candidate{room: room, surplus: room.Capacity - required})
	}

	slices.SortFunc(candidates, func(x, y candidate) int {
		if c := cmp.Compare(x.surplus, y.surplus); c != 0 {
			return c
		}
		if c := cmp.Compare(x.room.Building, y.room.Building); c != 0 {
			return c
		}
		return cmp.Compare(x.room.ID, y.room.ID)
	})

	result := make([]domain.Suggestion, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, domain.Suggestion{
			CapacitySurplus: c.surplus,
			ConflictID:      conflict.ID,
			Day:             moving.Day,
			End:             moving.End,
			Kind:            domain.SuggestAlternateRoom,
			Rationale: fmt.Sprintf("%s (%s, floor %d) seats %d (%d spare) and is free on %s %s",
				c.room.Name, c.room.Building, c.room.Floor, c.room.Capacity, c.surplus, moving.Day, moving.Window()),
			RoomID:    c.room.ID,
			SessionID: moving.ID,
			Start:     moving.Start,
		})
	}
	return result
}

// AlternateSlots lists free windows of the same room and weekday that fit the moving
// session, nearest to its original start first
func (a *Advisor) AlternateSlots(
	conflict domain.Conflict,
	moving domain.ClassSession,
	bucket []domain.ClassSession,
	candidateCap int,
) []domain.Suggestion {
	duration := moving.Duration()
	var result []domain.Suggestion
	for _, gap := range a.freeGaps(withoutSession(bucket, moving.ID)) {
		if gap.end-gap.start < duration {
			continue
		}
		start := min(max(moving.Start, gap.start), gap.end-duration)
		if start == moving.Start {
			continue
		}
		result = append(result, domain.Suggestion{
			ConflictID: conflict.ID,
			Day:        moving.Day,
			End:        start + duration,
			Kind:       domain.SuggestAlternateSlot,
			Rationale: fmt.Sprintf("%s is free %s-%s on %s; moving %s there shifts it by %d min",
				conflict.RoomID, domain.FormatClock(gap.start), domain.FormatClock(gap.end), moving.Day,
				moving.Name, abs(start-moving.Start)),
			RoomID:    conflict.RoomID,
			SessionID: moving.ID,
			Start:     start,
		})
	}

	slices.SortStableFunc(result, func(x, y domain.Suggestion) int {
		if c := cmp.Compare(abs(x.Start-moving.Start), abs(y.Start-moving.Start)); c != 0 {
			return c
		}
		return cmp.Compare(x.Start, y.Start)
	})
	if len(result) > candidateCap {
		result = result[:candidateCap]
	}
	return result
}

type interval struct {
	start int
	end   int
}

// freeGaps returns the gaps between merged busy blocks inside the operating day
func (a *Advisor) freeGaps(sessions []domain.ClassSession) []interval {
	sorted := slices.SortedFunc(slices.Values(sessions), compareSessions)

	var gaps []interval
	cursor := a.cfg.DayStart
	for _, s := range sorted {
		if s.Start > cursor {
			if end := min(s.Start, a.cfg.DayEnd); end > cursor {
				gaps = append(gaps, interval{start: cursor, end: end})
			}
		}
		cursor = max(cursor, s.End)
		if cursor >= a.cfg.DayEnd {
			return gaps
		}
	}
	return append(gaps, interval{start: cursor, end: a.cfg.DayEnd})
}

func isFree(sessions []domain.ClassSession, window domain.ClassSession) bool {
	for _, s := range sessions {
		if s.ID != window.ID && s.Overlaps(window) {
			return false
		}
	}
	return true
}

func findSession(sessions []domain.ClassSession, id string) (domain.ClassSession, bool) {
	for _, s := range sessions {
		if s.ID == id {
			return s, true
		}
	}
	return domain.ClassSession{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
