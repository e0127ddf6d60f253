package ports

import (
	"context"

	"github.com/renato0307/roomsched/internal/domain"
)

// ScheduleLoader loads the durable schedule at startup
type ScheduleLoader interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
}

// ChangeCommitter durably applies one change set, atomically.
// The engine only publishes a staged mutation after Commit returns nil.
type ChangeCommitter interface {
	Commit(ctx context.Context, changes domain.ChangeSet) error
}

// ScheduleRepository is the composite persistence adapter
type ScheduleRepository interface {
	ScheduleLoader
	ChangeCommitter
	Close() error
}
