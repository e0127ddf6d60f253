package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/roomsched/internal/domain"
)

func TestRoomStatusColor(t *testing.T) {
	tests := []struct {
		status   domain.RoomStatus
		expected Color
	}{
		{domain.StatusAvailable, ColorAvailable},
		{domain.StatusConflict, ColorConflict},
		{domain.StatusMaintenance, ColorMaintenance},
		{domain.StatusOccupied, ColorOccupied},
		{domain.RoomStatus("unknown"), ColorNormal},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, RoomStatusColor(tt.status))
		})
	}
}

func TestBadgesContainStatusName(t *testing.T) {
	assert.Contains(t, RoomStatusBadge(domain.StatusConflict), "conflict")
	assert.Contains(t, RoomStatusBadge(domain.StatusConflict), IconConflict)
	assert.Contains(t, ConflictStatusBadge(domain.ConflictPending), "pending")
	assert.Equal(t, ColorResolved, ConflictStatusColor(domain.ConflictResolved))
}
