package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/roomsched/internal/logging"
)

// SeedCmd loads the demo facility
type SeedCmd struct{}

// Run executes the seed command
func (s *SeedCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing seed command")
	result, err := cli.Container.ScheduleService.Seed(context.Background())
	if err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}
	fmt.Fprintf(stdout, "Seeded %d rooms and %d sessions (%d pending conflicts)\n",
		result.Rooms, result.Sessions, result.Conflicts)
	return nil
}
