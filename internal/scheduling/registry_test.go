package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/roomsched/internal/domain"
)

var rm402Wednesday = domain.BucketKey{Day: time.Wednesday, RoomID: "RM-402"}

func overlappingBucket() []domain.ClassSession {
	return []domain.ClassSession{
		newSession("A", "RM-402", time.Wednesday, "14:00", "16:00"),
		newSession("B", "RM-402", time.Wednesday, "14:30", "16:30"),
	}
}

func TestApplyDetection_CreatesPendingConflict(t *testing.T) {
	registry := NewConflictRegistry()
	sessions := overlappingBucket()

	rec := registry.ApplyDetection(rm402Wednesday, DetectOverlaps(sessions), sessions, wednesday1430)

	require.Len(t, rec.Created, 1)
	assert.Empty(t, rec.Retired)

	c := rec.Created[0]
	assert.Equal(t, domain.PairKey{First: "A", Second: "B"}, c.Pair)
	assert.Equal(t, domain.ConflictPending, c.Status)
	assert.Equal(t, "RM-402", c.RoomID)
	assert.Equal(t, time.Wednesday, c.Day)
	assert.Equal(t, wednesday1430, c.DetectedAt)
	assert.Nil(t, c.ResolvedAt)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Class A (14:00-16:00) overlaps with Class B (14:30-16:30)", c.Description)
}

func TestApplyDetection_Idempotent(t *testing.T) {
	registry := NewConflictRegistry()
	sessions := overlappingBucket()
	pairs := DetectOverlaps(sessions)

	registry.ApplyDetection(rm402Wednesday, pairs, sessions, wednesday1430)
	before := registry.List(domain.ConflictFilter{})

	rec := registry.ApplyDetection(rm402Wednesday, pairs, sessions, wednesday1430.Add(time.Hour))

	assert.True(t, rec.IsEmpty())
	assert.Equal(t, before, registry.List(domain.ConflictFilter{}))
}

func TestApplyDetection_RetiresWhenOverlapDisappears(t *testing.T) {
	for _, status := range []domain.ConflictStatus{domain.ConflictPending, domain.ConflictResolved} {
		t.Run(string(status), func(t *testing.T) {
			registry := NewConflictRegistry()
			sessions := overlappingBucket()
			rec := registry.ApplyDetection(rm402Wednesday, DetectOverlaps(sessions), sessions, wednesday1430)
			if status == domain.ConflictResolved {
				_, err := registry.Resolve(rec.Created[0].ID, wednesday1430)
				require.NoError(t, err)
			}

			sessions[1] = newSession("B", "RM-402", time.Wednesday, "16:00", "18:00")
			rec = registry.ApplyDetection(rm402Wednesday, DetectOverlaps(sessions), sessions, wednesday1430)

			require.Len(t, rec.Retired, 1)
			assert.Equal(t, status, rec.Retired[0].Status)
			assert.Zero(t, registry.Len())
		})
	}
}

func TestApplyDetection_DismissedIsSticky(t *testing.T) {
	registry := NewConflictRegistry()
	sessions := overlappingBucket()
	rec := registry.ApplyDetection(rm402Wednesday, DetectOverlaps(sessions), sessions, wednesday1430)
	_, err := registry.Dismiss(rec.Created[0].ID, wednesday1430)
	require.NoError(t, err)

	// Still overlapping: kept, not re-alerted
	rec = registry.ApplyDetection(rm402Wednesday, DetectOverlaps(sessions), sessions, wednesday1430)
	assert.True(t, rec.IsEmpty())

	// No longer overlapping but both sessions still present: kept
	moved := []domain.ClassSession{sessions[0], newSession("B", "RM-402", time.Wednesday, "16:00", "18:00")}
	rec = registry.ApplyDetection(rm402Wednesday, DetectOverlaps(moved), moved, wednesday1430)
	assert.True(t, rec.IsEmpty())
	assert.Equal(t, 1, registry.Len())

	// Session gone: retired
	remaining := sessions[:1]
	rec = registry.ApplyDetection(rm402Wednesday, DetectOverlaps(remaining), remaining, wednesday1430)
	require.Len(t, rec.Retired, 1)
	assert.Equal(t, domain.ConflictDismissed, rec.Retired[0].Status)
	assert.Zero(t, registry.Len())
}

func TestApplyDetection_NewRecordAfterRetirement(t *testing.T) {
	registry := NewConflictRegistry()
	sessions := overlappingBucket()
	first := registry.ApplyDetection(rm402Wednesday, DetectOverlaps(sessions), sessions, wednesday1430).Created[0]

	apart := []domain.ClassSession{sessions[0], newSession("B", "RM-402", time.Wednesday, "16:00", "18:00")}
	registry.ApplyDetection(rm402Wednesday, DetectOverlaps(apart), apart, wednesday1430)

	again := registry.ApplyDetection(rm402Wednesday, DetectOverlaps(sessions), sessions, wednesday1430)

	require.Len(t, again.Created, 1)
	assert.NotEqual(t, first.ID, again.Created[0].ID)
	assert.Equal(t, domain.ConflictPending, again.Created[0].Status)
}

func TestResolveAndDismiss_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		transition func(*ConflictRegistry, string, time.Time) (domain.Conflict, error)
		expected   domain.ConflictStatus
	}{
		{"resolve", (*ConflictRegistry).Resolve, domain.ConflictResolved},
		{"dismiss", (*ConflictRegistry).Dismiss, domain.ConflictDismissed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewConflictRegistry()
			sessions := overlappingBucket()
			created := registry.ApplyDetection(rm402Wednesday, DetectOverlaps(sessions), sessions, wednesday1430).Created[0]

			closedAt := wednesday1430.Add(time.Minute)
			updated, err := tt.transition(registry, created.ID, closedAt)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, updated.Status)
			require.NotNil(t, updated.ResolvedAt)
			assert.Equal(t, closedAt, *updated.ResolvedAt)

			// Terminal: a second transition fails without changing the record
			_, err = tt.transition(registry, created.ID, closedAt)
			assert.ErrorIs(t, err, domain.ErrInvalidState)
			stored, ok := registry.Find(created.ID)
			require.True(t, ok)
			assert.Equal(t, tt.expected, stored.Status)

			_, err = tt.transition(registry, "missing", closedAt)
			assert.ErrorIs(t, err, domain.ErrInvalidState)
			assert.ErrorIs(t, err, domain.ErrConflictNotFound)
		})
	}
}

func TestConflictRegistry_CloneIsIndependent(t *testing.T) {
	registry := NewConflictRegistry()
	sessions := overlappingBucket()
	created := registry.ApplyDetection(rm402Wednesday, DetectOverlaps(sessions), sessions, wednesday1430).Created[0]

	staged := registry.Clone()
	_, err := staged.Resolve(created.ID, wednesday1430)
	require.NoError(t, err)

	original, _ := registry.Find(created.ID)
	assert.Equal(t, domain.ConflictPending, original.Status)
}
