package domain

import (
	"fmt"
	"strings"
)

// RoomStatus is the derived, point-in-time state of a room
type RoomStatus string

const (
	StatusAvailable   RoomStatus = "available"
	StatusConflict    RoomStatus = "conflict"
	StatusMaintenance RoomStatus = "maintenance"
	StatusOccupied    RoomStatus = "occupied"
)

// ParseRoomStatus converts a status name to RoomStatus
func ParseRoomStatus(s string) (RoomStatus, error) {
	switch st := RoomStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAvailable, StatusConflict, StatusMaintenance, StatusOccupied:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown room status %q", ErrValidation, s)
}

// Room represents a bookable room of the facility (domain entity).
// Status is never stored on the room; it is projected from sessions and conflicts.
type Room struct {
	Building    string
	Capacity    int
	Floor       int
	Humidity    float64
	ID          string
	Maintenance bool
	Name        string
	Temperature float64
	Type        string
}

// Validate checks the room invariants
func (r Room) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: room id is required", ErrValidation)
	}
	if r.Capacity <= 0 {
		return fmt.Errorf("%w: room %s capacity must be positive, got %d", ErrValidation, r.ID, r.Capacity)
	}
	return nil
}

// Matches reports whether the room id, name or building contains query (case-insensitive)
func (r Room) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.ID), q) ||
		strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Building), q)
}

// Stats summarizes the facility at one instant
type Stats struct {
	PendingConflicts int
	RoomsByStatus    map[RoomStatus]int
	TotalRooms       int
	TotalSessions    int
	Utilization      int // percent of rooms occupied or in conflict
}
