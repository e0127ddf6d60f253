package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/roomsched/internal/domain"
)

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Room status colors
const (
	ColorAvailable   Color = "2" // Green
	ColorConflict    Color = "1" // Red
	ColorMaintenance Color = "8" // Gray
	ColorOccupied    Color = "3" // Yellow
)

// Conflict lifecycle colors
const (
	ColorDismissed Color = "241" // Gray
	ColorPending   Color = "214" // Orange
	ColorResolved  Color = "46"  // Bright green
)

// UI semantic colors
const (
	ColorBorder    Color = "238" // Table borders
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
)

// RoomStatusColor returns the color of a room status
func RoomStatusColor(status domain.RoomStatus) Color {
	switch status {
	case domain.StatusAvailable:
		return ColorAvailable
	case domain.StatusConflict:
		return ColorConflict
	case domain.StatusMaintenance:
		return ColorMaintenance
	case domain.StatusOccupied:
		return ColorOccupied
	}
	return ColorNormal
}

// ConflictStatusColor returns the color of a conflict status
func ConflictStatusColor(status domain.ConflictStatus) Color {
	switch status {
	case domain.ConflictDismissed:
		return ColorDismissed
	case domain.ConflictPending:
		return ColorPending
	case domain.ConflictResolved:
		return ColorResolved
	}
	return ColorNormal
}
