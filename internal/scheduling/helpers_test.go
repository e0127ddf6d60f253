package scheduling

import (
	"time"

	"github.com/renato0307/roomsched/internal/domain"
)

// wednesday1430 is a Wednesday afternoon used across the tests
var wednesday1430 = time.Date(2026, 10, 14, 14, 30, 0, 0, time.UTC)

func clockOf(value string) int {
	m, err := domain.ParseClock(value)
	if err != nil {
		panic(err)
	}
	return m
}

func newSession(id, roomID string, day time.Weekday, start, end string) domain.ClassSession {
	return domain.ClassSession{
		Day:    day,
		End:    clockOf(end),
		ID:     id,
		Name:   "Class " + id,
		RoomID: roomID,
		Start:  clockOf(start),
	}
}

func newRoom(id, building string, capacity int) domain.Room {
	return domain.Room{
		Building: building,
		Capacity: capacity,
		ID:       id,
		Name:     "Room " + id,
	}
}
