package cmd

import (
	"fmt"
	"strconv"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/theme"
)

// StatsCmd shows facility statistics
type StatsCmd struct {
	At     string `help:"Compute at this time (RFC3339 or 'YYYY-MM-DD HH:MM', default now)"`
	Format string `help:"Output format" default:"table" enum:"table,json" short:"o"`
}

type statsView struct {
	PendingConflicts int                       `json:"pending_conflicts"`
	RoomsByStatus    map[domain.RoomStatus]int `json:"rooms_by_status"`
	TotalRooms       int                       `json:"total_rooms"`
	TotalSessions    int                       `json:"total_sessions"`
	Utilization      int                       `json:"utilization"`
}

// Run executes the stats command
func (s *StatsCmd) Run(cli *CLI) error {
	service := cli.Container.ScheduleService
	at, err := parseAt(s.At, service.Now().Location())
	if err != nil {
		return err
	}

	stats := service.Stats(at)
	if s.Format == formatJSON {
		return printJSON(statsView(stats))
	}

	fmt.Fprintln(stdout, theme.TitleStyle.Render("Facility Overview"))
	printTable([]string{"METRIC", "VALUE"}, [][]string{
		{"Rooms", strconv.Itoa(stats.TotalRooms)},
		{"Sessions", strconv.Itoa(stats.TotalSessions)},
		{"Pending conflicts", strconv.Itoa(stats.PendingConflicts)},
		{"Utilization", strconv.Itoa(stats.Utilization) + "%"},
	})

	rows := make([][]string, 0, len(stats.RoomsByStatus))
	for _, status := range []domain.RoomStatus{
		domain.StatusAvailable,
		domain.StatusOccupied,
		domain.StatusConflict,
		domain.StatusMaintenance,
	} {
		rows = append(rows, []string{theme.RoomStatusBadge(status), strconv.Itoa(stats.RoomsByStatus[status])})
	}
	printTable([]string{"STATUS", "ROOMS"}, rows)
	return nil
}
