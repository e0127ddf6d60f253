package cmd

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/theme"
)

// StatusCmd shows the projected status of every room
type StatusCmd struct {
	At     string `help:"Project statuses at this time (RFC3339 or 'YYYY-MM-DD HH:MM', default now)"`
	Format string `help:"Output format" default:"table" enum:"table,json" short:"o"`
	Status string `help:"Only rooms in this status (available, occupied, conflict, maintenance)" short:"s"`
}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	service := cli.Container.ScheduleService
	at, err := parseAt(s.At, service.Now().Location())
	if err != nil {
		return err
	}

	var filter domain.RoomStatus
	if s.Status != "" {
		if filter, err = domain.ParseRoomStatus(s.Status); err != nil {
			return err
		}
	}

	statuses := service.AllRoomStatuses(at, filter)
	if s.Format == formatJSON {
		return printJSON(statuses)
	}

	if len(statuses) == 0 {
		fmt.Fprintln(stdout, "No rooms found.")
		return nil
	}
	ids := slices.SortedFunc(maps.Keys(statuses), cmp.Compare[string])
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id, theme.RoomStatusBadge(statuses[id])})
	}
	printTable([]string{"ROOM", "STATUS"}, rows)
	return nil
}
