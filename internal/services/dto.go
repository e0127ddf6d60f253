package services

import "github.com/renato0307/roomsched/internal/domain"

// RoomWithStatus pairs a room with its projected status
type RoomWithStatus struct {
	Room   domain.Room
	Status domain.RoomStatus
}

// SessionResult contains the result of a session upsert
type SessionResult struct {
	Bucket  domain.BucketKey
	Session domain.ClassSession
}

// SeedResult reports how much demo data was loaded
type SeedResult struct {
	Conflicts int
	Rooms     int
	Sessions  int
}
