package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/roomsched/internal/domain"
)

func TestProjectStatus(t *testing.T) {
	room := newRoom("RM-402", "Science Wing", 40)
	sessions := []domain.ClassSession{
		newSession("A", "RM-402", time.Wednesday, "14:00", "16:00"),
		newSession("B", "RM-402", time.Wednesday, "14:30", "16:30"),
		newSession("C", "RM-402", time.Wednesday, "09:00", "11:00"),
	}
	pending := []domain.Conflict{{
		Day:    time.Wednesday,
		ID:     "x",
		Pair:   domain.NewPairKey("A", "B"),
		RoomID: "RM-402",
		Status: domain.ConflictPending,
	}}
	at := func(hhmm string) time.Time {
		m := clockOf(hhmm)
		return time.Date(2026, 10, 14, m/60, m%60, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		room      domain.Room
		conflicts []domain.Conflict
		now       time.Time
		expected  domain.RoomStatus
	}{
		{"active pending conflict", room, pending, at("14:45"), domain.StatusConflict},
		{"only one conflicting session running", room, pending, at("16:15"), domain.StatusConflict},
		{"non-conflicting session", room, pending, at("10:00"), domain.StatusOccupied},
		{"no covering session", room, pending, at("12:00"), domain.StatusAvailable},
		{"end instant is excluded", room, pending, at("16:30"), domain.StatusAvailable},
		{"start instant is included", room, pending, at("09:00"), domain.StatusOccupied},
		{"other weekday", room, pending, at("14:45").AddDate(0, 0, 1), domain.StatusAvailable},
		{"maintenance wins", domain.Room{ID: "RM-402", Capacity: 40, Maintenance: true}, pending, at("14:45"), domain.StatusMaintenance},
		{"maintenance without sessions", domain.Room{ID: "RM-402", Capacity: 40, Maintenance: true}, nil, at("12:00"), domain.StatusMaintenance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProjectStatus(tt.room, sessions, tt.conflicts, tt.now))
		})
	}
}

func TestProjectStatus_ClosedConflictsDoNotCount(t *testing.T) {
	room := newRoom("RM-402", "Science Wing", 40)
	sessions := overlappingBucket()

	for _, status := range []domain.ConflictStatus{domain.ConflictResolved, domain.ConflictDismissed} {
		conflicts := []domain.Conflict{{ID: "x", Pair: domain.NewPairKey("A", "B"), RoomID: "RM-402", Status: status}}
		assert.Equal(t, domain.StatusOccupied, ProjectStatus(room, sessions, conflicts, wednesday1430), status)
	}
}
