package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renato0307/roomsched/internal/domain"
)

// parseAt reads the optional RFC3339 "at" query parameter in the facility time zone.
// Zero means now.
func (s *Server) parseAt(c *gin.Context) (time.Time, error) {
	raw := c.Query("at")
	if raw == "" {
		return time.Time{}, nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid at %q, expected RFC3339", domain.ErrValidation, raw)
	}
	return at.In(s.service.Now().Location()), nil
}

func parseIntQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return v, nil
}

func (s *Server) handleListRooms(c *gin.Context) {
	at, err := s.parseAt(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomsJSON(s.service.ListRooms(c.Query("q"), at)))
}

func (s *Server) handleCreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	s.saveRoom(c, req.toDomain(), http.StatusCreated)
}

func (s *Server) handleUpdateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	room := req.toDomain()
	room.ID = c.Param("id")
	if existing, err := s.service.GetRoom(room.ID, time.Time{}); err == nil {
		// Readings and maintenance are kept unless the body sets them
		if req.Humidity == nil {
			room.Humidity = existing.Room.Humidity
		}
		if req.Maintenance == nil {
			room.Maintenance = existing.Room.Maintenance
		}
		if req.Temperature == nil {
			room.Temperature = existing.Room.Temperature
		}
	}
	s.saveRoom(c, room, http.StatusOK)
}

func (s *Server) saveRoom(c *gin.Context, room domain.Room, status int) {
	if err := s.service.UpsertRoom(c.Request.Context(), room); err != nil {
		abortWithError(c, err)
		return
	}
	saved, err := s.service.GetRoom(room.ID, time.Time{})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(status, toRoomJSON(saved.Room, saved.Status))
}

func (s *Server) handleDeleteRoom(c *gin.Context) {
	if err := s.service.RemoveRoom(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleSetMaintenance(c *gin.Context) {
	var req struct {
		Maintenance *bool `json:"maintenance" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	room, err := s.service.SetMaintenance(c.Request.Context(), c.Param("id"), *req.Maintenance)
	if err != nil {
		abortWithError(c, err)
		return
	}
	status, err := s.service.RoomStatus(room.ID, time.Time{})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomJSON(room, status))
}

func (s *Server) handleRoomStatus(c *gin.Context) {
	at, err := s.parseAt(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	status, err := s.service.RoomStatus(c.Param("id"), at)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": c.Param("id"), "status": status})
}

func (s *Server) handleAllStatuses(c *gin.Context) {
	at, err := s.parseAt(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	var filter domain.RoomStatus
	if raw := c.Query("status"); raw != "" {
		if filter, err = domain.ParseRoomStatus(raw); err != nil {
			abortWithError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, s.service.AllRoomStatuses(at, filter))
}

func (s *Server) handleSchedule(c *gin.Context) {
	var day *time.Weekday
	if raw := c.Query("day"); raw != "" {
		d, err := domain.ParseWeekday(raw)
		if err != nil {
			abortWithError(c, err)
			return
		}
		day = &d
	}
	c.JSON(http.StatusOK, mapSlice(s.service.ListSessions(c.Query("room"), day), toSessionJSON))
}

func (s *Server) handleCreateSession(c *gin.Context) {
	s.saveSession(c, "", http.StatusCreated)
}

func (s *Server) handleUpdateSession(c *gin.Context) {
	s.saveSession(c, c.Param("id"), http.StatusOK)
}

func (s *Server) saveSession(c *gin.Context, id string, status int) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	session, err := req.toDomain()
	if err != nil {
		abortWithError(c, err)
		return
	}
	if id != "" {
		session.ID = id
	}

	result, err := s.service.UpsertSession(c.Request.Context(), session)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(status, gin.H{
		"session":   toSessionJSON(result.Session),
		"conflicts": mapSlice(s.pendingIn(result.Bucket), toConflictJSON),
	})
}

// pendingIn returns the pending conflicts of one bucket after a mutation
func (s *Server) pendingIn(key domain.BucketKey) []domain.Conflict {
	var result []domain.Conflict
	for _, c := range s.service.ListConflicts(domain.ConflictFilter{RoomID: key.RoomID, Status: domain.ConflictPending}) {
		if c.Day == key.Day {
			result = append(result, c)
		}
	}
	return result
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if _, err := s.service.RemoveSession(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleListConflicts(c *gin.Context) {
	filter := domain.ConflictFilter{RoomID: c.Query("room")}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseConflictStatus(raw)
		if err != nil {
			abortWithError(c, err)
			return
		}
		filter.Status = status
	}
	c.JSON(http.StatusOK, mapSlice(s.service.ListConflicts(filter), toConflictJSON))
}

func (s *Server) handleResolveConflict(c *gin.Context) {
	conflict, err := s.service.ResolveConflict(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConflictJSON(conflict))
}

func (s *Server) handleDismissConflict(c *gin.Context) {
	conflict, err := s.service.DismissConflict(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toConflictJSON(conflict))
}

// handleLegacyResolve serves the older dashboard route POST /api/resolve
func (s *Server) handleLegacyResolve(c *gin.Context) {
	var req struct {
		ConflictID string `json:"conflictId" binding:"required"`
		Resolution string `json:"resolution"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	if _, err := s.service.ResolveConflict(c.Request.Context(), req.ConflictID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleSuggestions(c *gin.Context) {
	capacity, err := parseIntQuery(c, "capacity")
	if err != nil {
		abortWithError(c, err)
		return
	}
	candidateCap, err := parseIntQuery(c, "cap")
	if err != nil {
		abortWithError(c, err)
		return
	}
	suggestions, err := s.service.SuggestResolutions(c.Param("id"), capacity, candidateCap)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(suggestions, toSuggestionJSON))
}

func (s *Server) handleStats(c *gin.Context) {
	at, err := s.parseAt(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStatsJSON(s.service.Stats(at)))
}

func (s *Server) handleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": s.service.Now(),
	})
}
