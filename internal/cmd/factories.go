package cmd

import (
	"context"
	"fmt"

	adapterclock "github.com/renato0307/roomsched/internal/adapters/clock"
	adapterstorage "github.com/renato0307/roomsched/internal/adapters/storage"
	"github.com/renato0307/roomsched/internal/config"
	"github.com/renato0307/roomsched/internal/logging"
	"github.com/renato0307/roomsched/internal/ports"
	"github.com/renato0307/roomsched/internal/scheduling"
	"github.com/renato0307/roomsched/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	ScheduleService *services.ScheduleService
	Settings        *config.Settings

	// Internal - for cleanup only
	repo ports.ScheduleRepository
}

// NewContainer opens the schedule database and loads it into a ScheduleService
func NewContainer(settings *config.Settings) (*Container, error) {
	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}
	advisorConfig, err := advisorConfigFrom(settings)
	if err != nil {
		return nil, err
	}

	repo, err := adapterstorage.NewRepository(settings.Database.Driver, settings.Database.DSN)
	if err != nil {
		return nil, err
	}

	container, err := newContainer(repo, adapterclock.NewSystemClock(loc), advisorConfig, settings)
	if err != nil {
		repo.Close()
		return nil, err
	}
	return container, nil
}

// newContainer wires the service over an already opened repository and loads the schedule
func newContainer(repo ports.ScheduleRepository, clock ports.Clock, cfg scheduling.AdvisorConfig, settings *config.Settings) (*Container, error) {
	service := services.NewScheduleService(repo, clock, cfg)
	if err := service.Load(context.Background()); err != nil {
		return nil, err
	}
	logging.Logger.Debug("Container ready", "driver", settings.Database.Driver, "timezone", clock.Now().Location().String())

	return &Container{
		ScheduleService: service,
		Settings:        settings,
		repo:            repo,
	}, nil
}

func advisorConfigFrom(settings *config.Settings) (scheduling.AdvisorConfig, error) {
	start, end, err := settings.OperatingDay()
	if err != nil {
		return scheduling.AdvisorConfig{}, fmt.Errorf("invalid operating hours: %w", err)
	}
	cfg := scheduling.AdvisorConfig{
		DayEnd:              end,
		DayStart:            start,
		DefaultCandidateCap: settings.DefaultCandidateCap,
	}
	if cfg.DefaultCandidateCap <= 0 {
		cfg.DefaultCandidateCap = config.DefaultCandidateCap
	}
	return cfg, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.repo != nil {
		return c.repo.Close()
	}
	return nil
}
