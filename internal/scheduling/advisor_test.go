package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/roomsched/internal/domain"
)

func advisorFixture() (domain.Conflict, []domain.ClassSession, []domain.Room, SessionLookup) {
	bucket := []domain.ClassSession{
		newSession("A", "RM-402", time.Wednesday, "14:00", "16:00"),
		newSession("B", "RM-402", time.Wednesday, "14:30", "16:30"),
		newSession("C", "RM-402", time.Wednesday, "09:00", "11:00"),
	}
	conflict := domain.Conflict{
		Day:    time.Wednesday,
		ID:     "x",
		Pair:   domain.NewPairKey("A", "B"),
		RoomID: "RM-402",
		Status: domain.ConflictPending,
	}
	busyElsewhere := map[domain.BucketKey][]domain.ClassSession{
		{Day: time.Wednesday, RoomID: "RM-101"}: {newSession("X", "RM-101", time.Wednesday, "15:00", "17:00")},
	}
	rooms := []domain.Room{
		newRoom("RM-402", "Science Wing", 40),
		newRoom("RM-101", "North Wing", 50),
		newRoom("RM-105", "East Wing", 120),
		newRoom("RM-202", "South Wing", 80),
		newRoom("RM-204", "South Wing", 45),
		newRoom("RM-401", "Science Wing", 40),
		newRoom("RM-301", "Main Block", 15),
		{Building: "Annex", Capacity: 40, ID: "RM-999", Maintenance: true},
	}
	lookup := func(roomID string, day time.Weekday) []domain.ClassSession {
		return busyElsewhere[domain.BucketKey{Day: day, RoomID: roomID}]
	}
	return conflict, bucket, rooms, lookup
}

func TestMovingSession_PicksLaterStart(t *testing.T) {
	_, bucket, _, _ := advisorFixture()

	moving, ok := MovingSession(domain.NewPairKey("A", "B"), bucket)
	require.True(t, ok)
	assert.Equal(t, "B", moving.ID)

	tied := []domain.ClassSession{
		newSession("P", "RM-1", time.Monday, "09:00", "10:00"),
		newSession("Q", "RM-1", time.Monday, "09:00", "09:30"),
	}
	moving, ok = MovingSession(domain.NewPairKey("Q", "P"), tied)
	require.True(t, ok)
	assert.Equal(t, "Q", moving.ID)

	_, ok = MovingSession(domain.NewPairKey("A", "missing"), bucket)
	assert.False(t, ok)
}

func TestAlternateRooms_RankedBySurplus(t *testing.T) {
	conflict, bucket, rooms, lookup := advisorFixture()
	advisor := NewAdvisor(DefaultAdvisorConfig())
	moving, _ := MovingSession(conflict.Pair, bucket)

	got := advisor.AlternateRooms(conflict, moving, rooms, lookup, 40, 20)

	var ids []string
	for i, s := range got {
		ids = append(ids, s.RoomID)
		assert.Equal(t, domain.SuggestAlternateRoom, s.Kind)
		assert.Equal(t, "B", s.SessionID)
		assert.Equal(t, moving.Start, s.Start)
		assert.Equal(t, moving.End, s.End)
		assert.NotEmpty(t, s.Rationale)
		if i > 0 {
			assert.LessOrEqual(t, got[i-1].CapacitySurplus, s.CapacitySurplus)
		}
	}
	// RM-101 is busy, RM-301 too small, RM-999 under maintenance, RM-402 is the origin
	assert.Equal(t, []string{"RM-401", "RM-204", "RM-202", "RM-105"}, ids)
	assert.NotContains(t, ids, conflict.RoomID)
}

func TestAlternateRooms_TiesBrokenByBuilding(t *testing.T) {
	conflict, bucket, _, lookup := advisorFixture()
	moving, _ := MovingSession(conflict.Pair, bucket)
	rooms := []domain.Room{
		newRoom("RM-001", "Zeta Hall", 60),
		newRoom("RM-002", "Alpha Hall", 60),
	}

	got := NewAdvisor(DefaultAdvisorConfig()).AlternateRooms(conflict, moving, rooms, lookup, 50, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "RM-002", got[0].RoomID)
	assert.Equal(t, "RM-001", got[1].RoomID)
}

func TestAlternateRooms_CandidateCapBoundsScan(t *testing.T) {
	conflict, bucket, rooms, lookup := advisorFixture()
	moving, _ := MovingSession(conflict.Pair, bucket)

	// Rooms are examined in id order: RM-101 (busy), RM-105
	got := NewAdvisor(DefaultAdvisorConfig()).AlternateRooms(conflict, moving, rooms, lookup, 40, 2)

	require.Len(t, got, 1)
	assert.Equal(t, "RM-105", got[0].RoomID)
}

func TestAlternateRooms_NoCandidates(t *testing.T) {
	conflict, bucket, rooms, lookup := advisorFixture()
	moving, _ := MovingSession(conflict.Pair, bucket)

	got := NewAdvisor(DefaultAdvisorConfig()).AlternateRooms(conflict, moving, rooms, lookup, 500, 20)

	assert.Empty(t, got)
}

func TestAlternateSlots_NearestFirst(t *testing.T) {
	conflict, bucket, _, _ := advisorFixture()
	moving, _ := MovingSession(conflict.Pair, bucket)

	got := NewAdvisor(DefaultAdvisorConfig()).AlternateSlots(conflict, moving, bucket, 10)

	// Busy without B: 09:00-11:00 and 14:00-16:00 inside 07:00-22:00
	require.Len(t, got, 3)
	assert.Equal(t, "16:00", domain.FormatClock(got[0].Start))
	assert.Equal(t, "18:00", domain.FormatClock(got[0].End))
	assert.Equal(t, "12:00", domain.FormatClock(got[1].Start))
	assert.Equal(t, "14:00", domain.FormatClock(got[1].End))
	assert.Equal(t, "07:00", domain.FormatClock(got[2].Start))
	for _, s := range got {
		assert.Equal(t, domain.SuggestAlternateSlot, s.Kind)
		assert.Equal(t, "RM-402", s.RoomID)
		assert.Equal(t, moving.Duration(), s.End-s.Start)
		for _, other := range withoutSession(bucket, moving.ID) {
			assert.False(t, other.Overlaps(domain.ClassSession{Start: s.Start, End: s.End}))
		}
	}
}

func TestAlternateSlots_CapAndNoFit(t *testing.T) {
	conflict, bucket, _, _ := advisorFixture()
	moving, _ := MovingSession(conflict.Pair, bucket)
	advisor := NewAdvisor(DefaultAdvisorConfig())

	assert.Len(t, advisor.AlternateSlots(conflict, moving, bucket, 1), 1)

	full := []domain.ClassSession{
		newSession("A", "RM-402", time.Wednesday, "07:00", "14:31"),
		newSession("B", "RM-402", time.Wednesday, "14:30", "16:30"),
		newSession("C", "RM-402", time.Wednesday, "15:30", "22:00"),
	}
	assert.Empty(t, advisor.AlternateSlots(conflict, full[1], full, 10))
}

func TestSuggest_RoomsThenSlots(t *testing.T) {
	conflict, bucket, rooms, lookup := advisorFixture()

	got := NewAdvisor(DefaultAdvisorConfig()).Suggest(conflict, bucket, rooms, lookup, 40, 0)

	require.NotEmpty(t, got)
	assert.Equal(t, domain.SuggestAlternateRoom, got[0].Kind)
	assert.Equal(t, domain.SuggestAlternateSlot, got[len(got)-1].Kind)
}

func TestNewAdvisor_InvalidBoundsUseWholeDay(t *testing.T) {
	advisor := NewAdvisor(AdvisorConfig{DayStart: 600, DayEnd: 300})

	gaps := advisor.freeGaps(nil)

	assert.Equal(t, []interval{{start: 0, end: domain.MinutesPerDay}}, gaps)
	assert.Equal(t, 10, advisor.cfg.DefaultCandidateCap)
}
