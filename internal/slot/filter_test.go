package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daySlots(t *testing.T) []Slot {
	t.Helper()
	slots, err := ComputeSlots(monday, []WeeklyEntry{mondayShift("08:00", "12:00")}, nil, 30)
	require.NoError(t, err)
	return slots
}

func TestDropPast_SameDay(t *testing.T) {
	now := time.Date(2026, time.October, 19, 9, 0, 45, 0, time.UTC)

	got := DropPast(daySlots(t), monday, now)

	// 09:00 is not strictly after 09:00.
	assert.Equal(t, []string{"09:30", "10:00", "10:30", "11:00", "11:30"}, starts(got))
}

func TestDropPast_FutureDateUntouched(t *testing.T) {
	now := time.Date(2026, time.October, 16, 23, 59, 0, 0, time.UTC)

	assert.Len(t, DropPast(daySlots(t), monday, now), 8)
}

func TestDropPast_PastDate(t *testing.T) {
	now := time.Date(2026, time.October, 20, 7, 0, 0, 0, time.UTC)

	got := DropPast(daySlots(t), monday, now)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDropPast_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC on Sunday is 01:30 on Monday at UTC+3.
	now := time.Date(2026, time.October, 18, 22, 30, 0, 0, time.UTC).In(loc)

	assert.Len(t, DropPast(daySlots(t), monday, now), 8)
}

func TestDateWeekdayAndCompare(t *testing.T) {
	assert.Equal(t, 1, monday.Weekday())
	assert.Equal(t, 7, monday.AddDays(6).Weekday())
	assert.Equal(t, 5, NewDate(2026, time.October, 16).Weekday())

	assert.True(t, monday.Before(monday.AddDays(1)))
	assert.True(t, monday.After(NewDate(2025, time.December, 31)))
	assert.True(t, monday.Equal(NewDate(2026, time.October, 19)))
	assert.Equal(t, "2026-10-19", monday.String())

	d, err := ParseDate("2026-02-29")
	assert.Error(t, err, "2026 is not a leap year")
	assert.True(t, d.IsZero())
}
