package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/roomsched/internal/domain"
)

func TestDetectOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		sessions []domain.ClassSession
		expected []domain.PairKey
	}{
		{
			name:     "empty bucket",
			sessions: nil,
			expected: nil,
		},
		{
			name: "partial overlap",
			sessions: []domain.ClassSession{
				newSession("A", "RM-402", time.Wednesday, "14:00", "16:00"),
				newSession("B", "RM-402", time.Wednesday, "14:30", "16:30"),
			},
			expected: []domain.PairKey{{First: "A", Second: "B"}},
		},
		{
			name: "touching endpoints never overlap",
			sessions: []domain.ClassSession{
				newSession("A", "RM-402", time.Wednesday, "14:00", "16:00"),
				newSession("B", "RM-402", time.Wednesday, "16:00", "18:00"),
			},
			expected: nil,
		},
		{
			name: "equal starts always overlap",
			sessions: []domain.ClassSession{
				newSession("B", "RM-402", time.Wednesday, "09:00", "09:30"),
				newSession("A", "RM-402", time.Wednesday, "09:00", "11:00"),
			},
			expected: []domain.PairKey{{First: "A", Second: "B"}},
		},
		{
			name: "containment and chains",
			sessions: []domain.ClassSession{
				newSession("long", "RM-101", time.Monday, "08:00", "12:00"),
				newSession("c1", "RM-101", time.Monday, "08:30", "09:00"),
				newSession("c2", "RM-101", time.Monday, "09:00", "10:00"),
				newSession("late", "RM-101", time.Monday, "12:00", "13:00"),
			},
			expected: []domain.PairKey{
				{First: "c1", Second: "long"},
				{First: "c2", Second: "long"},
			},
		},
		{
			name: "unsorted input is handled",
			sessions: []domain.ClassSession{
				newSession("z", "RM-101", time.Monday, "10:00", "11:00"),
				newSession("y", "RM-101", time.Monday, "08:00", "10:30"),
			},
			expected: []domain.PairKey{{First: "y", Second: "z"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectOverlaps(tt.sessions))
		})
	}
}

func TestDetectOverlaps_MatchesPairwiseCheck(t *testing.T) {
	var sessions []domain.ClassSession
	starts := []int{480, 495, 510, 540, 540, 600, 615, 700, 720, 780}
	for i, start := range starts {
		sessions = append(sessions, domain.ClassSession{
			Day:    time.Friday,
			End:    start + 30 + (i%3)*45,
			ID:     string(rune('a' + i)),
			RoomID: "RM-204",
			Start:  start,
		})
	}

	expected := map[domain.PairKey]bool{}
	for i := range sessions {
		for j := i + 1; j < len(sessions); j++ {
			a, b := sessions[i], sessions[j]
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "overlap must be symmetric")
			if a.Overlaps(b) {
				expected[domain.NewPairKey(a.ID, b.ID)] = true
			}
		}
	}

	got := DetectOverlaps(sessions)
	assert.Len(t, got, len(expected))
	for _, p := range got {
		assert.True(t, expected[p], "unexpected pair %v", p)
		assert.Less(t, p.First, p.Second, "pairs are canonical")
	}
}

func TestDetectOverlaps_TouchingNeverOverlaps(t *testing.T) {
	for start := 0; start < 600; start += 37 {
		for length := 1; length < 200; length += 23 {
			a := domain.ClassSession{ID: "a", Start: start, End: start + length}
			b := domain.ClassSession{ID: "b", Start: a.End, End: a.End + length}
			assert.False(t, a.Overlaps(b))
			assert.False(t, b.Overlaps(a))
			assert.Empty(t, DetectOverlaps([]domain.ClassSession{a, b}))
		}
	}
}

func TestDetectOverlaps_Idempotent(t *testing.T) {
	sessions := []domain.ClassSession{
		newSession("A", "RM-402", time.Wednesday, "14:00", "16:00"),
		newSession("B", "RM-402", time.Wednesday, "14:30", "16:30"),
		newSession("C", "RM-402", time.Wednesday, "15:00", "15:30"),
	}

	first := DetectOverlaps(sessions)
	second := DetectOverlaps(sessions)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}
