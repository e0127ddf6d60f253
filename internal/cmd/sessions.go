package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/logging"
	"github.com/renato0307/roomsched/internal/services"
	"github.com/renato0307/roomsched/internal/theme"
)

// SessionsCmd manages class sessions
type SessionsCmd struct {
	Add  SessionsAddCmd  `cmd:"add" help:"Schedule a class session"`
	Del  SessionsDelCmd  `cmd:"del" help:"Delete a class session"`
	Edit SessionsEditCmd `cmd:"edit" help:"Change a class session (room, day or time)"`
	List SessionsListCmd `cmd:"list" help:"List the weekly timetable" default:"1"`
}

// SessionsListCmd lists sessions ordered by room, weekday and start
type SessionsListCmd struct {
	Day    string `help:"Only this weekday (e.g. Monday, mon)"`
	Format string `help:"Output format" default:"table" enum:"table,json" short:"o"`
	Room   string `help:"Only this room id" short:"r"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(cli *CLI) error {
	day, err := parseDay(s.Day)
	if err != nil {
		return err
	}

	sessions := cli.Container.ScheduleService.ListSessions(s.Room, day)
	if s.Format == formatJSON {
		return printJSON(mapViews(sessions, toSessionView))
	}

	if len(sessions) == 0 {
		fmt.Fprintln(stdout, "No sessions found.")
		return nil
	}
	rows := make([][]string, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, []string{
			session.ID,
			session.RoomID,
			session.Day.String(),
			session.Window(),
			session.Name,
			session.Instructor,
			session.Batch,
		})
	}
	printTable([]string{"ID", "ROOM", "DAY", "TIME", "NAME", "INSTRUCTOR", "BATCH"}, rows)
	return nil
}

// SessionsAddCmd schedules a new session
type SessionsAddCmd struct {
	Batch      string `help:"Batch label" short:"b"`
	Day        string `help:"Weekday (e.g. Wednesday, wed)" required:""`
	End        string `help:"End time HH:MM (exclusive)" required:""`
	ID         string `help:"Session id (generated when empty)"`
	Instructor string `help:"Instructor name" short:"i"`
	Name       string `arg:"" help:"Class name"`
	Room       string `help:"Room id" required:"" short:"r"`
	Start      string `help:"Start time HH:MM" required:""`
}

// Run executes the add command
func (s *SessionsAddCmd) Run(cli *CLI) error {
	session, err := buildSession(s.ID, s.Name, s.Room, s.Instructor, s.Batch, s.Day, s.Start, s.End)
	if err != nil {
		return err
	}
	return saveSession(cli.Container.ScheduleService, session, "added")
}

// SessionsEditCmd replaces the fields of a session that are given
type SessionsEditCmd struct {
	Batch      string `help:"Batch label" short:"b"`
	Day        string `help:"Weekday"`
	End        string `help:"End time HH:MM (exclusive)"`
	ID         string `arg:"" help:"Session id"`
	Instructor string `help:"Instructor name" short:"i"`
	Name       string `help:"Class name" short:"n"`
	Room       string `help:"Room id" short:"r"`
	Start      string `help:"Start time HH:MM"`
}

// Run executes the edit command
func (s *SessionsEditCmd) Run(cli *CLI) error {
	service := cli.Container.ScheduleService
	existing, err := service.GetSession(s.ID)
	if err != nil {
		return err
	}

	session, err := buildSession(
		s.ID,
		valueOr(s.Name, existing.Name),
		valueOr(s.Room, existing.RoomID),
		valueOr(s.Instructor, existing.Instructor),
		valueOr(s.Batch, existing.Batch),
		valueOr(s.Day, existing.Day.String()),
		valueOr(s.Start, domain.FormatClock(existing.Start)),
		valueOr(s.End, domain.FormatClock(existing.End)),
	)
	if err != nil {
		return err
	}
	return saveSession(service, session, "updated")
}

// SessionsDelCmd deletes a session
type SessionsDelCmd struct {
	Force bool   `help:"Force deletion without confirmation" short:"f"`
	ID    string `arg:"" help:"Session id"`
}

// Run executes the del command
func (s *SessionsDelCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing sessions del command", "session", s.ID, "force", s.Force)
	service := cli.Container.ScheduleService

	session, err := service.GetSession(s.ID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Delete %s (%s %s in %s)?", session.Name, session.Day, session.Window(), session.RoomID)
	ok, err := confirmOrForce(s.Force, title, "Conflicts involving this session are removed with it.")
	if err != nil || !ok {
		return err
	}

	if _, err := service.RemoveSession(context.Background(), s.ID); err != nil {
		logging.Logger.Error("Failed to delete session", "session", s.ID, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	fmt.Fprintf(stdout, "Session '%s' deleted\n", s.ID)
	return nil
}

func buildSession(id, name, roomID, instructor, batch, day, start, end string) (domain.ClassSession, error) {
	weekday, err := domain.ParseWeekday(day)
	if err != nil {
		return domain.ClassSession{}, err
	}
	startMinute, err := domain.ParseClock(start)
	if err != nil {
		return domain.ClassSession{}, err
	}
	endMinute, err := domain.ParseClock(end)
	if err != nil {
		return domain.ClassSession{}, err
	}
	return domain.ClassSession{
		Batch:      batch,
		Day:        weekday,
		End:        endMinute,
		ID:         id,
		Instructor: instructor,
		Name:       name,
		RoomID:     roomID,
		Start:      startMinute,
	}, nil
}

// saveSession upserts the session and reports the pending conflicts of its bucket
func saveSession(service *services.ScheduleService, session domain.ClassSession, verb string) error {
	result, err := service.UpsertSession(context.Background(), session)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	fmt.Fprintf(stdout, "Session '%s' %s (%s %s in %s)\n",
		result.Session.ID, verb, result.Session.Day, result.Session.Window(), result.Session.RoomID)

	for _, c := range service.ListConflicts(domain.ConflictFilter{RoomID: result.Bucket.RoomID, Status: domain.ConflictPending}) {
		if c.Day == result.Bucket.Day && c.Pair.Contains(result.Session.ID) {
			fmt.Fprintln(stdout, theme.ErrorStyle.Render("Conflict: ")+c.Description)
		}
	}
	return nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
