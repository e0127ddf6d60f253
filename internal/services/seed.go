package services

import (
	"context"
	"fmt"
	"time"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/logging"
)

// seedRooms is the demo facility
var seedRooms = []domain.Room{
	{ID: "RM-101", Name: "Lab 101", Building: "North Wing", Floor: 1, Capacity: 50, Type: "Lab", Temperature: 22.4, Humidity: 42},
	{ID: "RM-102", Name: "Studio A", Building: "North Wing", Floor: 1, Capacity: 30, Type: "Studio", Temperature: 24.1, Humidity: 51},
	{ID: "RM-103", Name: "Seminar Hall 1", Building: "North Wing", Floor: 1, Capacity: 100, Type: "Lecture", Temperature: 21.5, Humidity: 45},
	{ID: "RM-201", Name: "Workshop 201", Building: "South Wing", Floor: 2, Capacity: 60, Type: "Workshop", Temperature: 23.2, Humidity: 48},
	{ID: "RM-202", Name: "Workshop 202", Building: "South Wing", Floor: 2, Capacity: 80, Type: "Workshop", Temperature: 21.8, Humidity: 38},
	{ID: "RM-204", Name: "Lab 204", Building: "South Wing", Floor: 2, Capacity: 45, Type: "Lab", Temperature: 22.8, Humidity: 44},
	{ID: "RM-301", Name: "Conf. Room 1", Building: "Main Block", Floor: 3, Capacity: 15, Type: "Meeting", Temperature: 22.1, Humidity: 41},
	{ID: "RM-302", Name: "Conf. Room 4", Building: "Main Block", Floor: 3, Capacity: 20, Type: "Meeting", Temperature: 23.0, Humidity: 45},
	{ID: "RM-401", Name: "Main Lab 4", Building: "Science Wing", Floor: 4, Capacity: 40, Type: "Lab", Temperature: 22.5, Humidity: 43},
	{ID: "RM-402", Name: "Research Hub", Building: "Science Wing", Floor: 4, Capacity: 40, Type: "Lab", Temperature: 22.2, Humidity: 40},
	{ID: "RM-105", Name: "Lecture Hall 1", Building: "East Wing", Floor: 1, Capacity: 120, Type: "Lecture", Temperature: 22.0, Humidity: 40},
	{ID: "RM-106", Name: "Lecture Hall 2", Building: "East Wing", Floor: 1, Capacity: 120, Type: "Lecture", Temperature: 21.8, Humidity: 42},
}

type seedClass struct {
	batch      string
	day        time.Weekday
	end        string
	instructor string
	name       string
	roomID     string
	start      string
}

// seedClasses is the demo timetable. The two RM-402 Wednesday classes overlap.
var seedClasses = []seedClass{
	{roomID: "RM-101", name: "Advanced Algorithms", instructor: "Dr. Sarah Connor", start: "09:00", end: "11:00", day: time.Monday, batch: "Batch 11"},
	{roomID: "RM-102", name: "Advanced UI/UX", instructor: "Prof. Miller", start: "10:00", end: "12:00", day: time.Tuesday, batch: "Batch 11"},
	{roomID: "RM-103", name: "Soft Skills Workshop", instructor: "Jane Doe", start: "08:00", end: "10:00", day: time.Thursday, batch: "Batch 11"},
	{roomID: "RM-201", name: "Human Computer Interaction", instructor: "Prof. Miller", start: "10:00", end: "12:00", day: time.Tuesday, batch: "Batch 11"},
	{roomID: "RM-302", name: "Faculty Meeting", instructor: "Admin", start: "10:00", end: "12:00", day: time.Tuesday, batch: "Staff"},
	{roomID: "RM-401", name: "Networking Lab", instructor: "Dr. Sarah Jenkins", start: "10:30", end: "11:30", day: time.Monday, batch: "Batch 11"},
	{roomID: "RM-402", name: "Machine Learning Lab", instructor: "Dr. Smith", start: "14:00", end: "16:00", day: time.Wednesday, batch: "Batch 11"},
	{roomID: "RM-402", name: "Physics 101", instructor: "Dr. Jones", start: "14:30", end: "16:30", day: time.Wednesday, batch: "Batch 14"},
	{roomID: "RM-204", name: "Cybersecurity Ethics", instructor: "Dr. Smith", start: "13:00", end: "15:00", day: time.Friday, batch: "Batch 11"},
}

// Seed loads the demo facility. Seeded sessions have stable ids, so seeding twice is harmless.
func (s *ScheduleService) Seed(ctx context.Context) (*SeedResult, error) {
	for _, room := range seedRooms {
		if err := s.engine.UpsertRoom(ctx, room); err != nil {
			return nil, fmt.Errorf("failed to seed room %s: %w", room.ID, err)
		}
	}

	for i, c := range seedClasses {
		start, err := domain.ParseClock(c.start)
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseClock(c.end)
		if err != nil {
			return nil, err
		}
		session := domain.ClassSession{
			Batch:      c.batch,
			Day:        c.day,
			End:        end,
			ID:         fmt.Sprintf("seed-%d", i+1),
			Instructor: c.instructor,
			Name:       c.name,
			RoomID:     c.roomID,
			Start:      start,
		}
		if _, err := s.engine.UpsertSession(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to seed session %s: %w", session.Name, err)
		}
	}

	result := &SeedResult{
		Conflicts: len(s.engine.ListConflicts(domain.ConflictFilter{Status: domain.ConflictPending})),
		Rooms:     len(seedRooms),
		Sessions:  len(seedClasses),
	}
	logging.Logger.Info("Seeded demo facility",
		"rooms", result.Rooms,
		"sessions", result.Sessions,
		"pending_conflicts", result.Conflicts)
	return result, nil
}
