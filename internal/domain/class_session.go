package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the exclusive upper bound of a session end time
const MinutesPerDay = 24 * 60

// ClassSession represents a weekly recurring booking of a room (domain entity).
// Start and End are minutes since midnight and form the half-open interval [Start, End).
type ClassSession struct {
	Batch      string
	Day        time.Weekday
	End        int
	ID         string
	Instructor string
	Name       string
	RoomID     string
	Start      int
}

// BucketKey identifies the sessions sharing one room and one weekday
type BucketKey struct {
	Day    time.Weekday
	RoomID string
}

// String returns the key as "ROOM/Weekday"
func (k BucketKey) String() string {
	return fmt.Sprintf("%s/%s", k.RoomID, k.Day)
}

// Less orders keys by room id, then weekday. Buckets are always locked in this order.
func (k BucketKey) Less(other BucketKey) bool {
	if k.RoomID != other.RoomID {
		return k.RoomID < other.RoomID
	}
	return k.Day < other.Day
}

// Bucket returns the bucket the session belongs to
func (s ClassSession) Bucket() BucketKey {
	return BucketKey{Day: s.Day, RoomID: s.RoomID}
}

// Duration returns the session length in minutes
func (s ClassSession) Duration() int {
	return s.End - s.Start
}

// Overlaps reports whether both sessions intersect as half-open intervals.
// Touching endpoints never overlap; the weekday and room are not compared.
func (s ClassSession) Overlaps(other ClassSession) bool {
	return s.Start < other.End && other.Start < s.End
}

// Covers reports whether the session is running at the given weekday and minute of day
func (s ClassSession) Covers(day time.Weekday, minute int) bool {
	return s.Day == day && s.Start <= minute && minute < s.End
}

// Window formats the session time range, e.g. "14:00-16:00"
func (s ClassSession) Window() string {
	return FormatClock(s.Start) + "-" + FormatClock(s.End)
}

// Validate checks the session invariants that do not depend on other state
func (s ClassSession) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: session id is required", ErrValidation)
	}
	if strings.TrimSpace(s.RoomID) == "" {
		return fmt.Errorf("%w: session %s has no room", ErrValidation, s.ID)
	}
	if s.Day < time.Sunday || s.Day > time.Saturday {
		return fmt.Errorf("%w: session %s has invalid weekday %d", ErrValidation, s.ID, int(s.Day))
	}
	if s.Start < 0 || s.End > MinutesPerDay {
		return fmt.Errorf("%w: session %s window %d-%d is outside the day", ErrValidation, s.ID, s.Start, s.End)
	}
	if s.Start >= s.End {
		return fmt.Errorf("%w: session %s start %s must be before end %s",
			ErrValidation, s.ID, FormatClock(s.Start), FormatClock(s.End))
	}
	return nil
}

// ParseClock parses "HH:MM" (24h) into minutes since midnight. "24:00" is accepted.
func ParseClock(value string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || len(m) != 2 {
		return 0, fmt.Errorf("%w: invalid time %q, expected HH:MM", ErrValidation, value)
	}
	hours, errH := strconv.Atoi(h)
	minutes, errM := strconv.Atoi(m)
	if errH != nil || errM != nil {
		return 0, fmt.Errorf("%w: invalid time %q, expected HH:MM", ErrValidation, value)
	}
	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 || (hours == 24 && minutes != 0) {
		return 0, fmt.Errorf("%w: time %q out of range", ErrValidation, value)
	}
	return hours*60 + minutes, nil
}

// FormatClock formats minutes since midnight as "HH:MM"
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinuteOfDay returns the minutes elapsed since midnight in t's location
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseWeekday accepts full English weekday names or their 3-letter abbreviation, any case
func ParseWeekday(value string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if v == name || (len(v) == 3 && strings.HasPrefix(name, v)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrValidation, value)
}
