package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/logging"
	"github.com/renato0307/roomsched/internal/theme"
)

// ConflictsCmd manages conflicts
type ConflictsCmd struct {
	Dismiss ConflictsDismissCmd `cmd:"dismiss" help:"Dismiss a pending conflict"`
	List    ConflictsListCmd    `cmd:"list" help:"List conflicts" default:"1"`
	Resolve ConflictsResolveCmd `cmd:"resolve" help:"Mark a pending conflict as resolved"`
	Suggest ConflictsSuggestCmd `cmd:"suggest" help:"Suggest alternate rooms and slots for a conflict"`
}

// ConflictsListCmd lists conflicts, oldest first
type ConflictsListCmd struct {
	Format string `help:"Output format" default:"table" enum:"table,json" short:"o"`
	Room   string `help:"Only this room id" short:"r"`
	Status string `help:"Only this status (pending, resolved, dismissed)" short:"s"`
}

// Run executes the list command
func (c *ConflictsListCmd) Run(cli *CLI) error {
	filter := domain.ConflictFilter{RoomID: c.Room}
	if c.Status != "" {
		status, err := domain.ParseConflictStatus(c.Status)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	conflicts := cli.Container.ScheduleService.ListConflicts(filter)
	if c.Format == formatJSON {
		return printJSON(mapViews(conflicts, toConflictView))
	}

	if len(conflicts) == 0 {
		fmt.Fprintln(stdout, "No conflicts found.")
		return nil
	}
	rows := make([][]string, 0, len(conflicts))
	for _, conflict := range conflicts {
		rows = append(rows, []string{
			conflict.ID,
			conflict.RoomID,
			conflict.Day.String(),
			theme.ConflictStatusBadge(conflict.Status),
			conflict.Description,
		})
	}
	printTable([]string{"ID", "ROOM", "DAY", "STATUS", "DESCRIPTION"}, rows)
	return nil
}

// ConflictsResolveCmd resolves a conflict
type ConflictsResolveCmd struct {
	ID string `arg:"" help:"Conflict id"`
}

// Run executes the resolve command
func (c *ConflictsResolveCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing conflicts resolve command", "conflict", c.ID)
	conflict, err := cli.Container.ScheduleService.ResolveConflict(context.Background(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve conflict: %w", err)
	}
	fmt.Fprintf(stdout, "Conflict '%s' resolved\n", conflict.ID)
	return nil
}

// ConflictsDismissCmd dismisses a conflict
type ConflictsDismissCmd struct {
	Force bool   `help:"Dismiss without confirmation" short:"f"`
	ID    string `arg:"" help:"Conflict id"`
}

// Run executes the dismiss command
func (c *ConflictsDismissCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing conflicts dismiss command", "conflict", c.ID, "force", c.Force)
	service := cli.Container.ScheduleService

	conflict, err := service.GetConflict(c.ID)
	if err != nil {
		return err
	}

	ok, err := confirmOrForce(c.Force, "Dismiss this conflict?", conflict.Description)
	if err != nil || !ok {
		return err
	}

	if _, err := service.DismissConflict(context.Background(), c.ID); err != nil {
		return fmt.Errorf("failed to dismiss conflict: %w", err)
	}
	fmt.Fprintf(stdout, "Conflict '%s' dismissed\n", c.ID)
	return nil
}

// ConflictsSuggestCmd lists remediation suggestions for a pending conflict
type ConflictsSuggestCmd struct {
	Capacity int    `help:"Seats the moved class needs (0 = no requirement)" short:"c"`
	Format   string `help:"Output format" default:"table" enum:"table,json" short:"o"`
	ID       string `arg:"" help:"Conflict id"`
	Limit    int    `help:"Maximum suggestions of each kind (0 = configured default)" short:"n"`
}

// Run executes the suggest command
func (c *ConflictsSuggestCmd) Run(cli *CLI) error {
	suggestions, err := cli.Container.ScheduleService.SuggestResolutions(c.ID, c.Capacity, c.Limit)
	if err != nil {
		return err
	}
	if c.Format == formatJSON {
		return printJSON(mapViews(suggestions, toSuggestionView))
	}

	if len(suggestions) == 0 {
		fmt.Fprintln(stdout, "No suggestions available.")
		return nil
	}
	rows := make([][]string, 0, len(suggestions))
	for _, s := range suggestions {
		surplus := ""
		if s.Kind == domain.SuggestAlternateRoom {
			surplus = "+" + strconv.Itoa(s.CapacitySurplus)
		}
		rows = append(rows, []string{
			string(s.Kind),
			s.SessionID,
			s.RoomID,
			s.Day.String(),
			domain.FormatClock(s.Start) + "-" + domain.FormatClock(s.End),
			surplus,
			s.Rationale,
		})
	}
	printTable([]string{"KIND", "SESSION", "ROOM", "DAY", "TIME", "SURPLUS", "RATIONALE"}, rows)
	return nil
}
