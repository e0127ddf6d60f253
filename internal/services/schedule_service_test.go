package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/roomsched/internal/domain"
	portsmocks "github.com/renato0307/roomsched/internal/ports/mocks"
	"github.com/renato0307/roomsched/internal/scheduling"
)

// wednesdayAfternoon falls inside the seeded RM-402 overlap
var wednesdayAfternoon = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*ScheduleService, *portsmocks.MockScheduleRepository) {
	t.Helper()
	repo := portsmocks.NewMockScheduleRepository(t)
	clock := portsmocks.NewMockClock(t)
	clock.EXPECT().Now().Return(wednesdayAfternoon).Maybe()
	repo.EXPECT().Load(mock.Anything).Return(&domain.Snapshot{}, nil).Maybe()
	repo.EXPECT().Commit(mock.Anything, mock.Anything).Return(nil).Maybe()

	service := NewScheduleService(repo, clock, scheduling.DefaultAdvisorConfig())
	require.NoError(t, service.Load(context.Background()))
	return service, repo
}

func seededService(t *testing.T) *ScheduleService {
	t.Helper()
	service, _ := newTestService(t)
	result, err := service.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &SeedResult{Conflicts: 1, Rooms: 12, Sessions: 9}, result)
	return service
}

func TestLoad_RestoresSnapshot(t *testing.T) {
	repo := portsmocks.NewMockScheduleRepository(t)
	clock := portsmocks.NewMockClock(t)
	clock.EXPECT().Now().Return(wednesdayAfternoon)
	repo.EXPECT().Load(mock.Anything).Return(&domain.Snapshot{
		Rooms: []domain.Room{{ID: "RM-402", Capacity: 40}},
		Sessions: []domain.ClassSession{
			{ID: "a", RoomID: "RM-402", Day: time.Wednesday, Start: 840, End: 960},
			{ID: "b", RoomID: "RM-402", Day: time.Wednesday, Start: 870, End: 990},
		},
	}, nil)
	repo.EXPECT().Commit(mock.Anything, mock.MatchedBy(func(changes domain.ChangeSet) bool {
		return len(changes.Conflicts) == 1
	})).Return(nil)

	service := NewScheduleService(repo, clock, scheduling.DefaultAdvisorConfig())
	require.NoError(t, service.Load(context.Background()))

	assert.Len(t, service.ListConflicts(domain.ConflictFilter{}), 1)
}

func TestLoad_PropagatesRepositoryError(t *testing.T) {
	repo := portsmocks.NewMockScheduleRepository(t)
	clock := portsmocks.NewMockClock(t)
	repo.EXPECT().Load(mock.Anything).Return(nil, errors.New("connection refused"))

	service := NewScheduleService(repo, clock, scheduling.DefaultAdvisorConfig())
	err := service.Load(context.Background())

	assert.ErrorContains(t, err, "connection refused")
}

func TestSeed_CreatesOverlapConflict(t *testing.T) {
	service := seededService(t)

	conflicts := service.ListConflicts(domain.ConflictFilter{RoomID: "RM-402"})
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictPending, conflicts[0].Status)
	assert.Equal(t, "Machine Learning Lab (14:00-16:00) overlaps with Physics 101 (14:30-16:30)", conflicts[0].Description)

	// Seeding again changes nothing
	_, err := service.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, conflicts, service.ListConflicts(domain.ConflictFilter{RoomID: "RM-402"}))
}

func TestUpsertSession_GeneratesID(t *testing.T) {
	service := seededService(t)

	result, err := service.UpsertSession(context.Background(), domain.ClassSession{
		Day: time.Friday, End: 600, Name: "Robotics", RoomID: "RM-101", Start: 540,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Session.ID)
	assert.Equal(t, domain.BucketKey{Day: time.Friday, RoomID: "RM-101"}, result.Bucket)

	friday := time.Friday
	var ids []string
	for _, s := range service.ListSessions("RM-101", &friday) {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{result.Session.ID}, ids)
}

func TestUpsertSession_RejectsUnknownRoom(t *testing.T) {
	service := seededService(t)

	_, err := service.UpsertSession(context.Background(), domain.ClassSession{
		Day: time.Friday, End: 600, ID: "x", RoomID: "RM-999", Start: 540,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRoomStatuses(t *testing.T) {
	service := seededService(t)
	ctx := context.Background()
	_, err := service.SetMaintenance(ctx, "RM-106", true)
	require.NoError(t, err)

	status, err := service.RoomStatus("RM-402", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConflict, status)

	monday := time.Date(2026, 10, 12, 10, 45, 0, 0, time.UTC)
	status, err = service.RoomStatus("RM-401", monday)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOccupied, status)

	all := service.AllRoomStatuses(time.Time{}, "")
	assert.Len(t, all, 12)
	assert.Equal(t, domain.StatusMaintenance, all["RM-106"])

	conflicted := service.AllRoomStatuses(time.Time{}, domain.StatusConflict)
	assert.Equal(t, map[string]domain.RoomStatus{"RM-402": domain.StatusConflict}, conflicted)
}

func TestListRooms_SearchesAndProjects(t *testing.T) {
	service := seededService(t)

	rooms := service.ListRooms("science", time.Time{})
	require.Len(t, rooms, 2)
	assert.Equal(t, "RM-401", rooms[0].Room.ID)
	assert.Equal(t, domain.StatusAvailable, rooms[0].Status)
	assert.Equal(t, "RM-402", rooms[1].Room.ID)
	assert.Equal(t, domain.StatusConflict, rooms[1].Status)

	assert.Len(t, service.ListRooms("", time.Time{}), 12)
	assert.Empty(t, service.ListRooms("nowhere", time.Time{}))

	room, err := service.GetRoom("RM-105", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "Lecture Hall 1", room.Room.Name)
	_, err = service.GetRoom("RM-999", time.Time{})
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestUpsertRoom_DefaultsReadingsForNewRooms(t *testing.T) {
	service := seededService(t)
	ctx := context.Background()

	require.NoError(t, service.UpsertRoom(ctx, domain.Room{ID: "RM-500", Name: "Annex", Capacity: 25}))
	room, err := service.GetRoom("RM-500", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 22.0, room.Room.Temperature)
	assert.Equal(t, 40.0, room.Room.Humidity)

	// Existing rooms keep what the caller sends
	require.NoError(t, service.UpsertRoom(ctx, domain.Room{ID: "RM-500", Name: "Annex", Capacity: 30}))
	room, err = service.GetRoom("RM-500", time.Time{})
	require.NoError(t, err)
	assert.Zero(t, room.Room.Temperature)
	assert.Equal(t, 30, room.Room.Capacity)

	require.NoError(t, service.RemoveRoom(ctx, "RM-500"))
	assert.ErrorIs(t, service.RemoveRoom(ctx, "RM-402"), domain.ErrValidation)
}

func TestStats(t *testing.T) {
	service := seededService(t)

	stats := service.Stats(time.Time{})

	assert.Equal(t, 12, stats.TotalRooms)
	assert.Equal(t, 9, stats.TotalSessions)
	assert.Equal(t, 1, stats.PendingConflicts)
	assert.Equal(t, 1, stats.RoomsByStatus[domain.StatusConflict])
	assert.Equal(t, 11, stats.RoomsByStatus[domain.StatusAvailable])
	assert.Equal(t, 8, stats.Utilization) // 1 of 12 rooms
}

func TestConflictLifecycle(t *testing.T) {
	service := seededService(t)
	ctx := context.Background()
	conflict := service.ListConflicts(domain.ConflictFilter{Status: domain.ConflictPending})[0]

	suggestions, err := service.SuggestResolutions(conflict.ID, 40, 0)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	for _, s := range suggestions {
		assert.Equal(t, "seed-8", s.SessionID)
		if s.Kind == domain.SuggestAlternateRoom {
			assert.NotEqual(t, "RM-402", s.RoomID)
		}
	}

	resolved, err := service.ResolveConflict(ctx, conflict.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictResolved, resolved.Status)

	_, err = service.DismissConflict(ctx, conflict.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got, err := service.GetConflict(conflict.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConflictResolved, got.Status)

	_, err = service.RemoveSession(ctx, "seed-8")
	require.NoError(t, err)
	assert.Empty(t, service.ListConflicts(domain.ConflictFilter{}))
}

func TestPersistenceFailureSurfaces(t *testing.T) {
	repo := portsmocks.NewMockScheduleRepository(t)
	clock := portsmocks.NewMockClock(t)
	clock.EXPECT().Now().Return(wednesdayAfternoon).Maybe()
	repo.EXPECT().Commit(mock.Anything, mock.Anything).Return(errors.New("database is locked"))

	service := NewScheduleService(repo, clock, scheduling.DefaultAdvisorConfig())
	err := service.UpsertRoom(context.Background(), domain.Room{ID: "RM-1", Capacity: 10})

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, service.ListRooms("", time.Time{}))
}
