package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPairKey_Canonical(t *testing.T) {
	assert.Equal(t, NewPairKey("a", "b"), NewPairKey("b", "a"))
	assert.Equal(t, PairKey{First: "a", Second: "b"}, NewPairKey("b", "a"))

	p := NewPairKey("s2", "s1")
	assert.True(t, p.Contains("s1"))
	assert.True(t, p.Contains("s2"))
	assert.False(t, p.Contains("s3"))
}

func TestConflictFilter_Match(t *testing.T) {
	c := Conflict{RoomID: "RM-402", Status: ConflictPending}

	assert.True(t, ConflictFilter{}.Match(c))
	assert.True(t, ConflictFilter{RoomID: "RM-402"}.Match(c))
	assert.True(t, ConflictFilter{RoomID: "RM-402", Status: ConflictPending}.Match(c))
	assert.False(t, ConflictFilter{RoomID: "RM-401"}.Match(c))
	assert.False(t, ConflictFilter{Status: ConflictResolved}.Match(c))
}

func TestParseStatuses(t *testing.T) {
	st, err := ParseConflictStatus(" Dismissed")
	assert.NoError(t, err)
	assert.Equal(t, ConflictDismissed, st)
	_, err = ParseConflictStatus("open")
	assert.ErrorIs(t, err, ErrValidation)

	rs, err := ParseRoomStatus("MAINTENANCE")
	assert.NoError(t, err)
	assert.Equal(t, StatusMaintenance, rs)
	_, err = ParseRoomStatus("closed")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDescribeOverlap(t *testing.T) {
	a := ClassSession{Name: "Data Structures", Day: time.Wednesday, Start: 840, End: 960}
	b := ClassSession{Name: "Linear Algebra", Day: time.Wednesday, Start: 870, End: 990}

	assert.Equal(t, "Data Structures (14:00-16:00) overlaps with Linear Algebra (14:30-16:30)", DescribeOverlap(a, b))
}

func TestRoom_ValidateAndMatches(t *testing.T) {
	room := Room{Building: "Science Wing", Capacity: 40, ID: "RM-402", Name: "Physics Lab"}
	assert.NoError(t, room.Validate())

	assert.ErrorIs(t, Room{ID: "RM-1", Capacity: 0}.Validate(), ErrValidation)
	assert.ErrorIs(t, Room{Capacity: 10}.Validate(), ErrValidation)

	assert.True(t, room.Matches(""))
	assert.True(t, room.Matches("rm-4"))
	assert.True(t, room.Matches("physics"))
	assert.True(t, room.Matches("SCIENCE"))
	assert.False(t, room.Matches("north"))
}
