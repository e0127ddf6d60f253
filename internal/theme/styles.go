package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/roomsched/internal/domain"
)

// Main CLI styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Table styles
var (
	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	CellStyle = lipgloss.NewStyle().
			Foreground(ColorNormal).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight).
			Padding(0, 1)
)

// Status icons
const (
	IconAvailable   = "●"
	IconConflict    = "✖"
	IconMaintenance = "◌"
	IconOccupied    = "◐"
)

// RoomStatusBadge renders a colored icon plus status name
func RoomStatusBadge(status domain.RoomStatus) string {
	icon := IconAvailable
	switch status {
	case domain.StatusConflict:
		icon = IconConflict
	case domain.StatusMaintenance:
		icon = IconMaintenance
	case domain.StatusOccupied:
		icon = IconOccupied
	}
	return lipgloss.NewStyle().Foreground(RoomStatusColor(status)).Render(icon + " " + string(status))
}

// ConflictStatusBadge renders a colored conflict status
func ConflictStatusBadge(status domain.ConflictStatus) string {
	return lipgloss.NewStyle().Foreground(ConflictStatusColor(status)).Render(string(status))
}
