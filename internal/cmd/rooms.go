package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/logging"
	"github.com/renato0307/roomsched/internal/services"
	"github.com/renato0307/roomsched/internal/theme"
)

// RoomsCmd manages rooms
type RoomsCmd struct {
	Add         RoomsAddCmd         `cmd:"add" help:"Add a room"`
	Del         RoomsDelCmd         `cmd:"del" help:"Delete a room without sessions"`
	Edit        RoomsEditCmd        `cmd:"edit" help:"Update a room"`
	List        RoomsListCmd        `cmd:"list" help:"List rooms with their current status" default:"1"`
	Maintenance RoomsMaintenanceCmd `cmd:"maintenance" help:"Put a room in or out of maintenance"`
	Status      RoomsStatusCmd      `cmd:"status" help:"Show the status of one room"`
}

// RoomsListCmd lists rooms
type RoomsListCmd struct {
	At     string `help:"Project statuses at this time (RFC3339 or 'YYYY-MM-DD HH:MM', default now)"`
	Format string `help:"Output format" default:"table" enum:"table,json" short:"o"`
	Query  string `arg:"" optional:"" help:"Filter by id, name or building"`
}

// Run executes the list command
func (r *RoomsListCmd) Run(cli *CLI) error {
	service := cli.Container.ScheduleService
	at, err := parseAt(r.At, service.Now().Location())
	if err != nil {
		return err
	}

	rooms := service.ListRooms(r.Query, at)
	if r.Format == formatJSON {
		return printJSON(mapViews(rooms, toRoomView))
	}

	if len(rooms) == 0 {
		fmt.Fprintln(stdout, "No rooms found.")
		return nil
	}
	rows := make([][]string, 0, len(rooms))
	for _, room := range rooms {
		rows = append(rows, []string{
			room.Room.ID,
			room.Room.Name,
			room.Room.Building,
			strconv.Itoa(room.Room.Floor),
			strconv.Itoa(room.Room.Capacity),
			room.Room.Type,
			theme.RoomStatusBadge(room.Status),
		})
	}
	printTable([]string{"ID", "NAME", "BUILDING", "FLOOR", "CAPACITY", "TYPE", "STATUS"}, rows)
	return nil
}

// RoomsAddCmd adds a room
type RoomsAddCmd struct {
	Building    string  `help:"Building name" short:"b"`
	Capacity    int     `help:"Seats (must be positive)" required:"" short:"c"`
	Floor       int     `help:"Floor number" short:"f"`
	Humidity    float64 `help:"Humidity reading in % (default 40 for new rooms)"`
	ID          string  `arg:"" help:"Room id (e.g. RM-101)"`
	Maintenance bool    `help:"Start in maintenance"`
	Name        string  `help:"Display name" short:"n"`
	Temperature float64 `help:"Temperature reading in °C (default 22 for new rooms)"`
	Type        string  `help:"Room type tag (e.g. Lab, Lecture)" short:"t"`
}

// Run executes the add command
func (r *RoomsAddCmd) Run(cli *CLI) error {
	service := cli.Container.ScheduleService
	if _, err := service.GetRoom(r.ID, service.Now()); err == nil {
		return fmt.Errorf("%w: room %s already exists, use 'rooms edit'", domain.ErrValidation, r.ID)
	}

	room := domain.Room{
		Building:    r.Building,
		Capacity:    r.Capacity,
		Floor:       r.Floor,
		Humidity:    r.Humidity,
		ID:          r.ID,
		Maintenance: r.Maintenance,
		Name:        r.Name,
		Temperature: r.Temperature,
		Type:        r.Type,
	}
	if err := service.UpsertRoom(context.Background(), room); err != nil {
		return fmt.Errorf("failed to add room: %w", err)
	}

	fmt.Fprintf(stdout, "Room '%s' added\n", r.ID)
	return nil
}

// RoomsEditCmd updates the fields of a room that are given
type RoomsEditCmd struct {
	Building    string   `help:"Building name" short:"b"`
	Capacity    int      `help:"Seats (must be positive)" short:"c"`
	Floor       *int     `help:"Floor number" short:"f"`
	Humidity    *float64 `help:"Humidity reading in %"`
	ID          string   `arg:"" help:"Room id"`
	Name        string   `help:"Display name" short:"n"`
	Temperature *float64 `help:"Temperature reading in °C"`
	Type        string   `help:"Room type tag" short:"t"`
}

// Run executes the edit command
func (r *RoomsEditCmd) Run(cli *CLI) error {
	service := cli.Container.ScheduleService
	existing, err := service.GetRoom(r.ID, service.Now())
	if err != nil {
		return err
	}

	room := existing.Room
	if r.Building != "" {
		room.Building = r.Building
	}
	if r.Capacity != 0 {
		room.Capacity = r.Capacity
	}
	if r.Floor != nil {
		room.Floor = *r.Floor
	}
	if r.Humidity != nil {
		room.Humidity = *r.Humidity
	}
	if r.Name != "" {
		room.Name = r.Name
	}
	if r.Temperature != nil {
		room.Temperature = *r.Temperature
	}
	if r.Type != "" {
		room.Type = r.Type
	}

	if err := service.UpsertRoom(context.Background(), room); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	fmt.Fprintf(stdout, "Room '%s' updated\n", r.ID)
	return nil
}

// RoomsDelCmd deletes a room
type RoomsDelCmd struct {
	Force bool   `help:"Force deletion without confirmation" short:"f"`
	ID    string `arg:"" help:"Room id"`
}

// Run executes the del command
func (r *RoomsDelCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing rooms del command", "room", r.ID, "force", r.Force)
	service := cli.Container.ScheduleService

	room, err := service.GetRoom(r.ID, service.Now())
	if err != nil {
		return err
	}

	ok, err := confirmOrForce(r.Force, fmt.Sprintf("Delete room %s (%s)?", room.Room.ID, room.Room.Name), "Rooms with sessions cannot be deleted.")
	if err != nil || !ok {
		return err
	}

	if err := service.RemoveRoom(context.Background(), r.ID); err != nil {
		logging.Logger.Error("Failed to delete room", "room", r.ID, "error", err)
		return fmt.Errorf("failed to delete room: %w", err)
	}
	fmt.Fprintf(stdout, "Room '%s' deleted\n", r.ID)
	return nil
}

// RoomsMaintenanceCmd toggles the maintenance flag
type RoomsMaintenanceCmd struct {
	ID  string `arg:"" help:"Room id"`
	Off bool   `help:"Take the room out of maintenance"`
}

// Run executes the maintenance command
func (r *RoomsMaintenanceCmd) Run(cli *CLI) error {
	service := cli.Container.ScheduleService
	room, err := service.SetMaintenance(context.Background(), r.ID, !r.Off)
	if err != nil {
		return fmt.Errorf("failed to set maintenance: %w", err)
	}

	if room.Maintenance {
		fmt.Fprintf(stdout, "Room '%s' is in maintenance\n", room.ID)
	} else {
		fmt.Fprintf(stdout, "Room '%s' is back in service\n", room.ID)
	}
	return nil
}

// RoomsStatusCmd shows one room with its status
type RoomsStatusCmd struct {
	At     string `help:"Project the status at this time (RFC3339 or 'YYYY-MM-DD HH:MM', default now)"`
	Format string `help:"Output format" default:"table" enum:"table,json" short:"o"`
	ID     string `arg:"" help:"Room id"`
}

// Run executes the status command
func (r *RoomsStatusCmd) Run(cli *CLI) error {
	service := cli.Container.ScheduleService
	at, err := parseAt(r.At, service.Now().Location())
	if err != nil {
		return err
	}

	room, err := service.GetRoom(r.ID, at)
	if err != nil {
		return err
	}
	if r.Format == formatJSON {
		return printJSON(toRoomView(*room))
	}

	printRoom(room)
	return nil
}

func printRoom(room *services.RoomWithStatus) {
	fmt.Fprintln(stdout, theme.TitleStyle.Render(fmt.Sprintf("%s · %s", room.Room.ID, room.Room.Name)))
	fmt.Fprintf(stdout, "Status:      %s\n", theme.RoomStatusBadge(room.Status))
	fmt.Fprintf(stdout, "Building:    %s (floor %d)\n", room.Room.Building, room.Room.Floor)
	fmt.Fprintf(stdout, "Capacity:    %d\n", room.Room.Capacity)
	fmt.Fprintf(stdout, "Type:        %s\n", room.Room.Type)
	fmt.Fprintf(stdout, "Environment: %.1f°C, %.0f%%\n", room.Room.Temperature, room.Room.Humidity)
}
