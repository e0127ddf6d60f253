package server

import (
	"time"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/services"
)

// roomJSON is the wire form of a room with its projected status
type roomJSON struct {
	Building    string  `json:"building"`
	Capacity    int     `json:"capacity"`
	Floor       int     `json:"floor"`
	Humidity    float64 `json:"humidity"`
	ID          string  `json:"id"`
	Maintenance bool    `json:"maintenance"`
	Name        string  `json:"name"`
	Status      string  `json:"status,omitempty"`
	Temperature float64 `json:"temp"`
	Type        string  `json:"type"`
}

// roomRequest is the body of POST/PUT /api/rooms
type roomRequest struct {
	Building    string   `json:"building"`
	Capacity    int      `json:"capacity" binding:"required"`
	Floor       int      `json:"floor"`
	Humidity    *float64 `json:"humidity"`
	ID          string   `json:"id"`
	Maintenance *bool    `json:"maintenance"`
	Name        string   `json:"name"`
	Temperature *float64 `json:"temp"`
	Type        string   `json:"type"`
}

func (r roomRequest) toDomain() domain.Room {
	room := domain.Room{
		Building:    r.Building,
		Capacity:    r.Capacity,
		Floor:       r.Floor,
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
	}
	if r.Maintenance != nil {
		room.Maintenance = *r.Maintenance
	}
	if r.Humidity != nil {
		room.Humidity = *r.Humidity
	}
	if r.Temperature != nil {
		room.Temperature = *r.Temperature
	}
	return room
}

func toRoomJSON(room domain.Room, status domain.RoomStatus) roomJSON {
	return roomJSON{
		Building:    room.Building,
		Capacity:    room.Capacity,
		Floor:       room.Floor,
		Humidity:    room.Humidity,
		ID:          room.ID,
		Maintenance: room.Maintenance,
		Name:        room.Name,
		Status:      string(status),
		Temperature: room.Temperature,
		Type:        room.Type,
	}
}

func toRoomsJSON(rooms []services.RoomWithStatus) []roomJSON {
	result := make([]roomJSON, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, toRoomJSON(r.Room, r.Status))
	}
	return result
}

// sessionJSON is the wire form of a class session; times are "HH:MM"
type sessionJSON struct {
	Batch      string `json:"batch"`
	Day        string `json:"day_of_week"`
	End        string `json:"end_time"`
	ID         string `json:"id"`
	Instructor string `json:"instructor"`
	Name       string `json:"name"`
	RoomID     string `json:"room_id"`
	Start      string `json:"start_time"`
}

// sessionRequest is the body of POST/PUT /api/sessions
type sessionRequest struct {
	Batch      string `json:"batch"`
	Day        string `json:"day_of_week" binding:"required"`
	End        string `json:"end_time" binding:"required"`
	ID         string `json:"id"`
	Instructor string `json:"instructor"`
	Name       string `json:"name"`
	RoomID     string `json:"room_id" binding:"required"`
	Start      string `json:"start_time" binding:"required"`
}

func (r sessionRequest) toDomain() (domain.ClassSession, error) {
	day, err := domain.ParseWeekday(r.Day)
	if err != nil {
		return domain.ClassSession{}, err
	}
	start, err := domain.ParseClock(r.Start)
	if err != nil {
		return domain.ClassSession{}, err
	}
	end, err := domain.ParseClock(r.End)
	if err != nil {
		return domain.ClassSession{}, err
	}
	return domain.ClassSession{
		Batch:      r.Batch,
		Day:        day,
		End:        end,
		ID:         r.ID,
		Instructor: r.Instructor,
		Name:       r.Name,
		RoomID:     r.RoomID,
		Start:      start,
	}, nil
}

func toSessionJSON(s domain.ClassSession) sessionJSON {
	return sessionJSON{
		Batch:      s.Batch,
		Day:        s.Day.String(),
		End:        domain.FormatClock(s.End),
		ID:         s.ID,
		Instructor: s.Instructor,
		Name:       s.Name,
		RoomID:     s.RoomID,
		Start:      domain.FormatClock(s.Start),
	}
}

// conflictJSON is the wire form of a conflict
type conflictJSON struct {
	ClassA      string     `json:"class_a_id"`
	ClassB      string     `json:"class_b_id"`
	Day         string     `json:"day_of_week"`
	Description string     `json:"description"`
	DetectedAt  time.Time  `json:"detected_at"`
	ID          string     `json:"id"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	RoomID      string     `json:"room_id"`
	Status      string     `json:"status"`
}

func toConflictJSON(c domain.Conflict) conflictJSON {
	return conflictJSON{
		ClassA:      c.Pair.First,
		ClassB:      c.Pair.Second,
		Day:         c.Day.String(),
		Description: c.Description,
		DetectedAt:  c.DetectedAt,
		ID:          c.ID,
		ResolvedAt:  c.ResolvedAt,
		RoomID:      c.RoomID,
		Status:      string(c.Status),
	}
}

// suggestionJSON is the wire form of a resolution suggestion
type suggestionJSON struct {
	CapacitySurplus int    `json:"capacity_surplus,omitempty"`
	ConflictID      string `json:"conflict_id"`
	Day             string `json:"day_of_week"`
	End             string `json:"end_time"`
	Kind            string `json:"kind"`
	Rationale       string `json:"rationale"`
	RoomID          string `json:"room_id"`
	SessionID       string `json:"session_id"`
	Start           string `json:"start_time"`
}

func toSuggestionJSON(s domain.Suggestion) suggestionJSON {
	return suggestionJSON{
		CapacitySurplus: s.CapacitySurplus,
		ConflictID:      s.ConflictID,
		Day:             s.Day.String(),
		End:             domain.FormatClock(s.End),
		Kind:            string(s.Kind),
		Rationale:       s.Rationale,
		RoomID:          s.RoomID,
		SessionID:       s.SessionID,
		Start:           domain.FormatClock(s.Start),
	}
}

// statsJSON is the wire form of the facility summary
type statsJSON struct {
	OccupiedRooms    int            `json:"occupied_rooms"`
	PendingConflicts int            `json:"conflicts"`
	RoomsByStatus    map[string]int `json:"rooms_by_status"`
	TotalRooms       int            `json:"total_rooms"`
	TotalSessions    int            `json:"total_sessions"`
	Utilization      int            `json:"utilization"`
}

func toStatsJSON(s domain.Stats) statsJSON {
	byStatus := make(map[string]int, len(s.RoomsByStatus))
	for status, n := range s.RoomsByStatus {
		byStatus[string(status)] = n
	}
	return statsJSON{
		OccupiedRooms:    s.RoomsByStatus[domain.StatusOccupied],
		PendingConflicts: s.PendingConflicts,
		RoomsByStatus:    byStatus,
		TotalRooms:       s.TotalRooms,
		TotalSessions:    s.TotalSessions,
		Utilization:      s.Utilization,
	}
}

func mapSlice[T any, J any](items []T, convert func(T) J) []J {
	result := make([]J, 0, len(items))
	for _, item := range items {
		result = append(result, convert(item))
	}
	return result
}
