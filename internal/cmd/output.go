package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/services"
	"github.com/renato0307/roomsched/internal/theme"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

// stdout is where commands print; tests swap it for a buffer
var stdout io.Writer = os.Stdout

// confirm asks a yes/no question; tests swap it for a stub
var confirm = func(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// confirmOrForce returns true when force is set or the user accepts the prompt
func confirmOrForce(force bool, title, description string) (bool, error) {
	if force {
		return true, nil
	}
	ok, err := confirm(title, description)
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintln(stdout, "Cancelled")
	}
	return ok, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.BorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.HeaderStyle
			}
			return theme.CellStyle
		})
	fmt.Fprintln(stdout, t.String())
}

// parseAt reads an optional instant in the facility time zone. Zero means now.
// Accepts RFC3339 or "2006-01-02 15:04".
func parseAt(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time %q, expected RFC3339 or \"YYYY-MM-DD HH:MM\"", domain.ErrValidation, raw)
	}
	return t, nil
}

func parseDay(raw string) (*time.Weekday, error) {
	if raw == "" {
		return nil, nil
	}
	day, err := domain.ParseWeekday(raw)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

type roomView struct {
	Building    string            `json:"building"`
	Capacity    int               `json:"capacity"`
	Floor       int               `json:"floor"`
	Humidity    float64           `json:"humidity"`
	ID          string            `json:"id"`
	Maintenance bool              `json:"maintenance"`
	Name        string            `json:"name"`
	Status      domain.RoomStatus `json:"status"`
	Temperature float64           `json:"temperature"`
	Type        string            `json:"type"`
}

func toRoomView(r services.RoomWithStatus) roomView {
	return roomView{
		Building:    r.Room.Building,
		Capacity:    r.Room.Capacity,
		Floor:       r.Room.Floor,
		Humidity:    r.Room.Humidity,
		ID:          r.Room.ID,
		Maintenance: r.Room.Maintenance,
		Name:        r.Room.Name,
		Status:      r.Status,
		Temperature: r.Room.Temperature,
		Type:        r.Room.Type,
	}
}

type sessionView struct {
	Batch      string `json:"batch"`
	Day        string `json:"day"`
	End        string `json:"end"`
	ID         string `json:"id"`
	Instructor string `json:"instructor"`
	Name       string `json:"name"`
	RoomID     string `json:"room_id"`
	Start      string `json:"start"`
}

func toSessionView(s domain.ClassSession) sessionView {
	return sessionView{
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

type conflictView struct {
	Day         string                `json:"day"`
	Description string                `json:"description"`
	DetectedAt  time.Time             `json:"detected_at"`
	FirstID     string                `json:"first_session_id"`
	ID          string                `json:"id"`
	ResolvedAt  *time.Time            `json:"resolved_at,omitempty"`
	RoomID      string                `json:"room_id"`
	SecondID    string                `json:"second_session_id"`
	Status      domain.ConflictStatus `json:"status"`
}

func toConflictView(c domain.Conflict) conflictView {
	return conflictView{
		Day:         c.Day.String(),
		Description: c.Description,
		DetectedAt:  c.DetectedAt,
		FirstID:     c.Pair.First,
		ID:          c.ID,
		ResolvedAt:  c.ResolvedAt,
		RoomID:      c.RoomID,
		SecondID:    c.Pair.Second,
		Status:      c.Status,
	}
}

type suggestionView struct {
	CapacitySurplus int                   `json:"capacity_surplus,omitempty"`
	Day             string                `json:"day"`
	End             string                `json:"end"`
	Kind            domain.SuggestionKind `json:"kind"`
	Rationale       string                `json:"rationale"`
	RoomID          string                `json:"room_id"`
	SessionID       string                `json:"session_id"`
	Start           string                `json:"start"`
}

func toSuggestionView(s domain.Suggestion) suggestionView {
	return suggestionView{
		CapacitySurplus: s.CapacitySurplus,
		Day:             s.Day.String(),
		End:             domain.FormatClock(s.End),
		Kind:            s.Kind,
		Rationale:       s.Rationale,
		RoomID:          s.RoomID,
		SessionID:       s.SessionID,
		Start:           domain.FormatClock(s.Start),
	}
}

func mapViews[T any, V any](items []T, convert func(T) V) []V {
	result := make([]V, 0, len(items))
	for _, item := range items {
		result = append(result, convert(item))
	}
	return result
}
