package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renato0307/roomsched/internal/domain"
	"github.com/renato0307/roomsched/internal/logging"
	"github.com/renato0307/roomsched/internal/ports"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	maxRetries         = 5
	postgresAttempts   = 10
	postgresRetryDelay = 2 * time.Second
)

// Repository implements ports.ScheduleRepository using GORM
type Repository struct {
	db     *gorm.DB
	driver string
}

// Verify interface compliance at compile time
var _ ports.ScheduleRepository = (*Repository)(nil)

// NewRepository opens the schedule database for the given driver
func NewRepository(driver, dsn string) (*Repository, error) {
	switch driver {
	case DriverSQLite, "":
		return NewSQLiteRepository(dsn)
	case DriverPostgres:
		return NewPostgresRepository(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewSQLiteRepository opens (creating if needed) a SQLite database file
func NewSQLiteRepository(dbPath string) (*Repository, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the CLI read while serve holds the database
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	repo := &Repository{db: db, driver: DriverSQLite}
	if err := repo.migrate(); err != nil {
		return nil, err
	}
	logging.Logger.Info("Schedule database opened", "driver", DriverSQLite, "path", dbPath)
	return repo, nil
}

// NewPostgresRepository connects to PostgreSQL, retrying while the server comes up
func NewPostgresRepository(dsn string) (*Repository, error) {
	var (
		db  *gorm.DB
		err error
	)
	for i := range postgresAttempts {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			NowFunc: func() time.Time { return time.Now().UTC() },
			Logger:  newGormLogger(),
		})
		if err == nil {
			break
		}
		logging.Logger.Warn("Postgres connection attempt failed", "attempt", i+1, "error", err)
		time.Sleep(postgresRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", postgresAttempts, err)
	}

	repo := &Repository{db: db, driver: DriverPostgres}
	if err := repo.migrate(); err != nil {
		return nil, err
	}
	logging.Logger.Info("Schedule database opened", "driver", DriverPostgres)
	return repo, nil
}

func (r *Repository) migrate() error {
	if err := r.db.AutoMigrate(&RoomModel{}, &ClassSessionModel{}, &ConflictModel{}); err != nil {
		return fmt.Errorf("failed to migrate schedule schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Driver returns the database driver in use
func (r *Repository) Driver() string {
	return r.driver
}

// Load reads every room, session and conflict in one read transaction
func (r *Repository) Load(ctx context.Context) (*domain.Snapshot, error) {
	var (
		rooms     []RoomModel
		sessions  []ClassSessionModel
		conflicts []ConflictModel
	)

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Order("id").Find(&rooms).Error; err != nil {
				return fmt.Errorf("failed to load rooms: %w", err)
			}
			if err := tx.Order("room_id, day, start_minute, id").Find(&sessions).Error; err != nil {
				return fmt.Errorf("failed to load sessions: %w", err)
			}
			if err := tx.Order("detected_at, id").Find(&conflicts).Error; err != nil {
				return fmt.Errorf("failed to load conflicts: %w", err)
			}
			return nil
		})
	}, maxRetries)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Conflicts: mapAll(conflicts, conflictModelToDomain),
		Rooms:     mapAll(rooms, roomModelToDomain),
		Sessions:  mapAll(sessions, sessionModelToDomain),
	}, nil
}

// Commit applies a change set atomically. Upserts run before deletes.
func (r *Repository) Commit(ctx context.Context, changes domain.ChangeSet) error {
	if changes.IsEmpty() {
		return nil
	}

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if len(changes.Rooms) > 0 {
				models := mapAll(changes.Rooms, domainToRoomModel)
				if err := upsert(tx).Create(&models).Error; err != nil {
					return fmt.Errorf("failed to save rooms: %w", err)
				}
			}
			if len(changes.Sessions) > 0 {
				models := mapAll(changes.Sessions, domainToSessionModel)
				if err := upsert(tx).Create(&models).Error; err != nil {
					return fmt.Errorf("failed to save sessions: %w", err)
				}
			}
			if len(changes.Conflicts) > 0 {
				models := mapAll(changes.Conflicts, domainToConflictModel)
				if err := upsert(tx).Create(&models).Error; err != nil {
					return fmt.Errorf("failed to save conflicts: %w", err)
				}
			}

			if len(changes.DeletedConflicts) > 0 {
				if err := tx.Where("id IN ?", changes.DeletedConflicts).Delete(&ConflictModel{}).Error; err != nil {
					return fmt.Errorf("failed to delete conflicts: %w", err)
				}
			}
			if len(changes.DeletedSessions) > 0 {
				if err := tx.Where("id IN ?", changes.DeletedSessions).Delete(&ClassSessionModel{}).Error; err != nil {
					return fmt.Errorf("failed to delete sessions: %w", err)
				}
			}
			if len(changes.DeletedRooms) > 0 {
				if err := tx.Where("id IN ?", changes.DeletedRooms).Delete(&RoomModel{}).Error; err != nil {
					return fmt.Errorf("failed to delete rooms: %w", err)
				}
			}
			return nil
		})
	}, maxRetries)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

func upsert(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.OnConflict{UpdateAll: true})
}

// withRetry retries fn while SQLite reports the database busy or locked
func withRetry(fn func() error, attempts int) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries: %w", attempts, err)
}
