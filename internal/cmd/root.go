package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/roomsched/internal/config"
	"github.com/renato0307/roomsched/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Conflicts ConflictsCmd `cmd:"conflicts" help:"Manage conflicts (list, resolve, dismiss, suggest)"`
	Rooms     RoomsCmd     `cmd:"rooms" help:"Manage rooms (list, add, edit, del, maintenance, status)"`
	Seed      SeedCmd      `cmd:"seed" help:"Load the demo facility and timetable"`
	Serve     ServeCmd     `cmd:"serve" help:"Serve the HTTP API"`
	Sessions  SessionsCmd  `cmd:"sessions" help:"Manage class sessions (list, add, edit, del)"`
	Stats     StatsCmd     `cmd:"stats" help:"Show facility statistics"`
	Status    StatusCmd    `cmd:"status" help:"Show the status of every room"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// Settings returns the loaded settings, falling back to the defaults
func (c *CLI) Settings() *config.Settings {
	if c.settings == nil {
		c.settings = config.Defaults()
	}
	return c.settings
}

// AfterApply initializes logging after CLI parsing and opens the schedule
func (c *CLI) AfterApply() error {
	// Precedence: CLI flags > env vars > settings.json > defaults
	settings := c.Settings()
	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv("ROOMSCHED_MAX_LOG_FILES"); !hasEnv && settings.MaxLogFiles != 0 {
			c.MaxLogFiles = settings.MaxLogFiles
		}
	}
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("ROOMSCHED_DEBUG"); !hasEnv && settings.Debug {
			c.Debug = true
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Share the log file with anything started from this process
	if c.Debug || c.DebugFile != "" {
		os.Setenv("ROOMSCHED_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("ROOMSCHED_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv("ROOMSCHED_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// The container needs logging.Logger, so it comes last
	container, err := NewContainer(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
