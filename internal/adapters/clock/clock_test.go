package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock_SetAndAdvance(t *testing.T) {
	start := time.Date(2026, 10, 14, 14, 0, 0, 0, time.UTC)
	c := NewFixedClock(start)

	assert.Equal(t, start, c.Now())

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	later := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestSystemClock_UsesLocation(t *testing.T) {
	loc := time.FixedZone("facility", 3*60*60)
	c := NewSystemClock(loc)

	assert.Equal(t, loc, c.Now().Location())
	assert.Equal(t, time.Local, NewSystemClock(nil).Now().Location())
}
