package scheduling

import (
	"time"

	"github.com/renato0307/roomsched/internal/domain"
)

// ProjectStatus derives the status of a room at now from a snapshot of its sessions and
// conflicts. Precedence: maintenance, conflict, occupied, available.
// A conflict only counts while it is pending and one of its sessions is running at now.
func ProjectStatus(
	room domain.Room,
	sessions []domain.ClassSession,
	conflicts []domain.Conflict,
	now time.Time,
) domain.RoomStatus {
	if room.Maintenance {
		return domain.StatusMaintenance
	}

	day, minute := now.Weekday(), domain.MinuteOfDay(now)
	running := make(map[string]bool)
	for _, s := range sessions {
		if s.RoomID == room.ID && s.Covers(day, minute) {
			running[s.ID] = true
		}
	}

	for _, c := range conflicts {
		if c.Status != domain.ConflictPending || c.RoomID != room.ID {
			continue
		}
		if running[c.Pair.First] || running[c.Pair.Second] {
			return domain.StatusConflict
		}
	}

	if len(running) > 0 {
		return domain.StatusOccupied
	}
	return domain.StatusAvailable
}
