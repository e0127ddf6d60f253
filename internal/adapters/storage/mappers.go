package storage

import (
	"time"

	"github.com/renato0307/roomsched/internal/domain"
)

func roomModelToDomain(m RoomModel) domain.Room {
	return domain.Room{
		Building:    m.Building,
		Capacity:    m.Capacity,
		Floor:       m.Floor,
		Humidity:    m.Humidity,
		ID:          m.ID,
		Maintenance: m.Maintenance,
		Name:        m.Name,
		Temperature: m.Temperature,
		Type:        m.Type,
	}
}

func domainToRoomModel(r domain.Room) RoomModel {
	return RoomModel{
		Building:    r.Building,
		Capacity:    r.Capacity,
		Floor:       r.Floor,
		Humidity:    r.Humidity,
		ID:          r.ID,
		Maintenance: r.Maintenance,
		Name:        r.Name,
		Temperature: r.Temperature,
		Type:        r.Type,
	}
}

func sessionModelToDomain(m ClassSessionModel) domain.ClassSession {
	return domain.ClassSession{
		Batch:      m.Batch,
		Day:        time.Weekday(m.Day),
		End:        m.EndMinute,
		ID:         m.ID,
		Instructor: m.Instructor,
		Name:       m.Name,
		RoomID:     m.RoomID,
		Start:      m.StartMinute,
	}
}

func domainToSessionModel(s domain.ClassSession) ClassSessionModel {
	return ClassSessionModel{
		Batch:       s.Batch,
		Day:         int(s.Day),
		EndMinute:   s.End,
		ID:          s.ID,
		Instructor:  s.Instructor,
		Name:        s.Name,
		RoomID:      s.RoomID,
		StartMinute: s.Start,
	}
}

func conflictModelToDomain(m ConflictModel) domain.Conflict {
	return domain.Conflict{
		Day:         time.Weekday(m.Day),
		Description: m.Description,
		DetectedAt:  m.DetectedAt.UTC(),
		ID:          m.ID,
		Pair:        domain.NewPairKey(m.FirstSessionID, m.SecondSessionID),
		ResolvedAt:  utcPtr(m.ResolvedAt),
		RoomID:      m.RoomID,
		Status:      domain.ConflictStatus(m.Status),
	}
}

func domainToConflictModel(c domain.Conflict) ConflictModel {
	return ConflictModel{
		Day:             int(c.Day),
		Description:     c.Description,
		DetectedAt:      c.DetectedAt.UTC(),
		FirstSessionID:  c.Pair.First,
		ID:              c.ID,
		ResolvedAt:      utcPtr(c.ResolvedAt),
		RoomID:          c.RoomID,
		SecondSessionID: c.Pair.Second,
		Status:          string(c.Status),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func mapAll[M any, D any](models []M, convert func(M) D) []D {
	result := make([]D, 0, len(models))
	for _, m := range models {
		result = append(result, convert(m))
	}
	return result
}
