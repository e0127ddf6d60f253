package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/logging"
	"github.com/renato0307/roomsched/internal/ports"
	"github.com/renato0307/roomsched/internal/scheduling"
)

// Readings given to rooms created without environmental data
const (
	defaultHumidity    = 40.0
	defaultTemperature = 22.0
)

// ScheduleService exposes the scheduling engine to the CLI and the HTTP API
type ScheduleService struct {
	clock  ports.Clock
	engine *scheduling.Engine
	loader ports.ScheduleLoader
}

// NewScheduleService creates a new ScheduleService backed by repo
func NewScheduleService(repo ports.ScheduleRepository, clock ports.Clock, cfg scheduling.AdvisorConfig) *ScheduleService {
	return &ScheduleService{
		clock:  clock,
		engine: scheduling.NewEngine(repo, clock, cfg),
		loader: repo,
	}
}

// Load restores the durable schedule into the engine. It must run once before any other call.
func (s *ScheduleService) Load(ctx context.Context) error {
	snapshot, err := s.loader.Load(ctx)
	if err != nil {
		logging.Logger.Error("Failed to load schedule", "error", err)
		return fmt.Errorf("failed to load schedule: %w", err)
	}
	return s.engine.Restore(ctx, *snapshot)
}

// Now returns the current time of the facility clock
func (s *ScheduleService) Now() time.Time {
	return s.clock.Now()
}

func (s *ScheduleService) at(t time.Time) time.Time {
	if t.IsZero() {
		return s.clock.Now()
	}
	return t
}

// UpsertSession creates or replaces a session. A session without id gets a new UUID.
func (s *ScheduleService) UpsertSession(ctx context.Context, session domain.ClassSession) (*SessionResult, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	logging.Logger.Info("Upserting session",
		"session", session.ID,
		"room", session.RoomID,
		"day", session.Day.String(),
		"window", session.Window())

	key, err := s.engine.UpsertSession(ctx, session)
	if err != nil {
		logging.Logger.Warn("Session upsert rejected", "session", session.ID, "error", err)
		return nil, err
	}
	return &SessionResult{Bucket: key, Session: session}, nil
}

// RemoveSession deletes a session
func (s *ScheduleService) RemoveSession(ctx context.Context, id string) (domain.BucketKey, error) {
	logging.Logger.Info("Removing session", "session", id)
	return s.engine.RemoveSession(ctx, id)
}

// ListSessions returns the schedule of one room (all rooms when empty), optionally for one weekday
func (s *ScheduleService) ListSessions(roomID string, day *time.Weekday) []domain.ClassSession {
	return s.engine.Sessions(roomID, day)
}

// GetSession returns one session
func (s *ScheduleService) GetSession(id string) (domain.ClassSession, error) {
	return s.engine.Session(id)
}

// ListConflicts returns conflicts passing the filter, oldest first
func (s *ScheduleService) ListConflicts(filter domain.ConflictFilter) []domain.Conflict {
	return s.engine.ListConflicts(filter)
}

// GetConflict returns one conflict
func (s *ScheduleService) GetConflict(id string) (domain.Conflict, error) {
	return s.engine.Conflict(id)
}

// ResolveConflict marks a pending conflict resolved
func (s *ScheduleService) ResolveConflict(ctx context.Context, id string) (domain.Conflict, error) {
	logging.Logger.Info("Resolving conflict", "conflict", id)
	return s.engine.ResolveConflict(ctx, id)
}

// DismissConflict marks a pending conflict dismissed
func (s *ScheduleService) DismissConflict(ctx context.Context, id string) (domain.Conflict, error) {
	logging.Logger.Info("Dismissing conflict", "conflict", id)
	return s.engine.DismissConflict(ctx, id)
}

// SuggestResolutions proposes alternate rooms and slots for a pending conflict
func (s *ScheduleService) SuggestResolutions(conflictID string, requiredCapacity, candidateCap int) ([]domain.Suggestion, error) {
	suggestions, err := s.engine.SuggestResolutions(conflictID, requiredCapacity, candidateCap)
	if err != nil {
		return nil, err
	}
	logging.Logger.Debug("Generated suggestions", "conflict", conflictID, "count", len(suggestions))
	return suggestions, nil
}

// RoomStatus projects one room's status at t (now when zero)
func (s *ScheduleService) RoomStatus(roomID string, t time.Time) (domain.RoomStatus, error) {
	return s.engine.RoomStatus(roomID, s.at(t))
}

// AllRoomStatuses projects every room's status at t (now when zero), keeping only rooms in
// the given status when filter is set
func (s *ScheduleService) AllRoomStatuses(t time.Time, filter domain.RoomStatus) map[string]domain.RoomStatus {
	statuses := s.engine.AllRoomStatuses(s.at(t))
	if filter == "" {
		return statuses
	}
	for id, status := range statuses {
		if status != filter {
			delete(statuses, id)
		}
	}
	return statuses
}

// ListRooms returns rooms matching query with their status at t (now when zero)
func (s *ScheduleService) ListRooms(query string, t time.Time) []RoomWithStatus {
	now := s.at(t)
	statuses := s.engine.AllRoomStatuses(now)
	var result []RoomWithStatus
	for _, room := range s.engine.Rooms() {
		if !room.Matches(query) {
			continue
		}
		result = append(result, RoomWithStatus{Room: room, Status: statuses[room.ID]})
	}
	return result
}

// GetRoom returns one room with its status at t (now when zero)
func (s *ScheduleService) GetRoom(id string, t time.Time) (*RoomWithStatus, error) {
	room, err := s.engine.Room(id)
	if err != nil {
		return nil, err
	}
	status, err := s.engine.RoomStatus(id, s.at(t))
	if err != nil {
		return nil, err
	}
	return &RoomWithStatus{Room: room, Status: status}, nil
}

// UpsertRoom creates or replaces a room. New rooms without readings get the facility defaults.
func (s *ScheduleService) UpsertRoom(ctx context.Context, room domain.Room) error {
	if _, err := s.engine.Room(room.ID); err != nil && room.Temperature == 0 && room.Humidity == 0 {
		room.Temperature = defaultTemperature
		room.Humidity = defaultHumidity
	}
	logging.Logger.Info("Upserting room", "room", room.ID, "capacity", room.Capacity)
	return s.engine.UpsertRoom(ctx, room)
}

// RemoveRoom deletes a room without sessions
func (s *ScheduleService) RemoveRoom(ctx context.Context, id string) error {
	logging.Logger.Info("Removing room", "room", id)
	return s.engine.RemoveRoom(ctx, id)
}

// SetMaintenance toggles the maintenance flag of a room
func (s *ScheduleService) SetMaintenance(ctx context.Context, id string, maintenance bool) (domain.Room, error) {
	logging.Logger.Info("Setting maintenance", "room", id, "maintenance", maintenance)
	return s.engine.SetMaintenance(ctx, id, maintenance)
}

// Stats summarizes the facility at t (now when zero)
func (s *ScheduleService) Stats(t time.Time) domain.Stats {
	statuses := s.engine.AllRoomStatuses(s.at(t))
	stats := domain.Stats{
		PendingConflicts: len(s.engine.ListConflicts(domain.ConflictFilter{Status: domain.ConflictPending})),
		RoomsByStatus: map[domain.RoomStatus]int{
			domain.StatusAvailable:   0,
			domain.StatusConflict:    0,
			domain.StatusMaintenance: 0,
			domain.StatusOccupied:    0,
		},
		TotalRooms:    len(statuses),
		TotalSessions: s.engine.SessionCount(),
	}
	for _, status := range statuses {
		stats.RoomsByStatus[status]++
	}
	if stats.TotalRooms > 0 {
		busy := stats.RoomsByStatus[domain.StatusOccupied] + stats.RoomsByStatus[domain.StatusConflict]
		stats.Utilization = (200*busy + stats.TotalRooms) / (2 * stats.TotalRooms)
	}
	return stats
}
