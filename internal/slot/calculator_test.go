package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-19 is a Monday.
var monday = NewDate(2026, time.October, 19)

func hm(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func win(start, end string) Window {
	return Window{Start: hm(start), End: hm(end)}
}

func mondayShift(start, end string) WeeklyEntry {
	return WeeklyEntry{
		DayOfWeek:     1,
		Hours:         win(start, end),
		EffectiveFrom: NewDate(2026, time.October, 16),
	}
}

func starts(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.String())
	}
	return out
}

func TestComputeSlots_FullDayNoBookings(t *testing.T) {
	slots, err := ComputeSlots(monday, []WeeklyEntry{mondayShift("08:00", "16:00")}, nil, 30)
	require.NoError(t, err)
	require.Len(t, slots, 16)

	assert.Equal(t, "08:00", slots[0].Start.String())
	assert.Equal(t, "15:30", slots[15].Start.String())
	assert.Equal(t, "16:00", slots[15].End.String())
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.False(t, s.IsPaid)
		assert.Equal(t, 30, s.Window().Minutes())
	}
}

func TestComputeSlots_PaidWindow(t *testing.T) {
	entry := mondayShift("08:00", "16:00")
	paid := win("12:00", "14:00")
	entry.Paid = &paid

	slots, err := ComputeSlots(monday, []WeeklyEntry{entry}, nil, 30)
	require.NoError(t, err)
	require.Len(t, slots, 16)

	assert.Equal(t, []string{"12:00", "12:30", "13:00", "13:30"}, starts(Paid(slots)))
	assert.Len(t, Free(slots), 12)
}

func TestComputeSlots_PaidRequiresFullContainment(t *testing.T) {
	entry := mondayShift("08:00", "12:00")
	paid := win("09:15", "10:45")
	entry.Paid = &paid

	slots, err := ComputeSlots(monday, []WeeklyEntry{entry}, nil, 30)
	require.NoError(t, err)

	// 09:00-09:30 and 10:30-11:00 straddle the paid bounds.
	assert.Equal(t, []string{"09:30", "10:00"}, starts(Paid(slots)))
}

func TestComputeSlots_BookedSlotExcluded(t *testing.T) {
	booked := []Window{win("09:00", "09:30")}

	slots, err := ComputeSlots(monday, []WeeklyEntry{mondayShift("08:00", "16:00")}, booked, 30)
	require.NoError(t, err)

	got := starts(slots)
	assert.Len(t, got, 15)
	assert.NotContains(t, got, "09:00")
	assert.Contains(t, got, "08:30")
	assert.Contains(t, got, "09:30")
}

func TestComputeSlots_PartialOverlapBlocksSlot(t *testing.T) {
	booked := []Window{win("09:10", "09:40")}

	slots, err := ComputeSlots(monday, []WeeklyEntry{mondayShift("09:00", "10:30")}, booked, 30)
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00"}, starts(slots))
}

func TestComputeSlots_IncludeBooked(t *testing.T) {
	booked := []Window{win("09:00", "09:30")}

	slots, err := ComputeSlots(monday, []WeeklyEntry{mondayShift("08:00", "10:00")}, booked, 30, IncludeBooked())
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.True(t, slots[1].Available)
	assert.False(t, slots[2].Available)
	assert.Equal(t, "09:00", slots[2].Start.String())
}

func TestComputeSlots_NoPartialTail(t *testing.T) {
	slots, err := ComputeSlots(monday, []WeeklyEntry{mondayShift("08:00", "08:50")}, nil, 30)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, win("08:00", "08:30"), slots[0].Window())
}

func TestComputeSlots_NoEntryForWeekday(t *testing.T) {
	var week []WeeklyEntry
	for day := 1; day <= 5; day++ {
		e := mondayShift("08:00", "16:00")
		e.DayOfWeek = day
		week = append(week, e)
	}
	sunday := monday.AddDays(6)

	slots, err := ComputeSlots(sunday, week, nil, 30)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestComputeSlots_SundayMapsToSeven(t *testing.T) {
	e := mondayShift("10:00", "11:00")
	e.DayOfWeek = 7

	slots, err := ComputeSlots(monday.AddDays(6), []WeeklyEntry{e}, nil, 60)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestComputeSlots_ExpiredEntry(t *testing.T) {
	e := mondayShift("08:00", "16:00")
	yesterday := monday.AddDays(-1)
	e.EffectiveTo = &yesterday

	slots, err := ComputeSlots(monday, []WeeklyEntry{e}, nil, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_NotYetEffective(t *testing.T) {
	e := mondayShift("08:00", "16:00")
	e.EffectiveFrom = monday.AddDays(1)

	slots, err := ComputeSlots(monday, []WeeklyEntry{e}, nil, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_EffectiveBoundsInclusive(t *testing.T) {
	e := mondayShift("08:00", "09:00")
	e.EffectiveFrom = monday
	e.EffectiveTo = &monday

	slots, err := ComputeSlots(monday, []WeeklyEntry{e}, nil, 30)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestComputeSlots_OpenEndedAppliesFarAhead(t *testing.T) {
	e := mondayShift("08:00", "09:00")
	farMonday := NewDate(2999, time.December, 30)
	require.Equal(t, 1, farMonday.Weekday())

	slots, err := ComputeSlots(farMonday, []WeeklyEntry{e}, nil, 30)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestComputeSlots_InvalidWindowYieldsEmpty(t *testing.T) {
	e := mondayShift("08:00", "16:00")
	e.Hours = Window{}

	slots, err := ComputeSlots(monday, []WeeklyEntry{e}, nil, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)

	e.Hours = win("16:00", "08:00")
	slots, err = ComputeSlots(monday, []WeeklyEntry{e}, nil, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_InvalidDuration(t *testing.T) {
	for _, d := range []int{0, -15} {
		slots, err := ComputeSlots(monday, []WeeklyEntry{mondayShift("08:00", "16:00")}, nil, d)
		assert.ErrorIs(t, err, ErrInvalidDuration)
		assert.Nil(t, slots)
	}
}

func TestComputeSlots_DurationLongerThanShift(t *testing.T) {
	slots, err := ComputeSlots(monday, []WeeklyEntry{mondayShift("08:00", "08:20")}, nil, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_Idempotent(t *testing.T) {
	entry := mondayShift("08:00", "16:00")
	paid := win("12:00", "14:00")
	entry.Paid = &paid
	schedules := []WeeklyEntry{entry}
	booked := []Window{win("09:00", "09:45"), win("13:00", "13:30")}

	first, err := ComputeSlots(monday, schedules, booked, 20)
	require.NoError(t, err)
	second, err := ComputeSlots(monday, schedules, booked, 20)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeSlots_Properties(t *testing.T) {
	entry := mondayShift("07:45", "18:10")
	paid := win("13:00", "17:00")
	entry.Paid = &paid
	booked := []Window{win("08:05", "08:40"), win("12:00", "13:15"), win("17:55", "18:10")}

	for _, d := range []int{10, 15, 25, 30, 45, 60, 90} {
		generated := Generate(entry.Hours, d)
		for i := 1; i < len(generated); i++ {
			assert.Equal(t, generated[i-1].End, generated[i].Start, "contiguity, duration %d", d)
		}

		slots, err := ComputeSlots(monday, []WeeklyEntry{entry}, booked, d)
		require.NoError(t, err)

		for i, s := range slots {
			assert.Equal(t, d, s.Window().Minutes())
			assert.False(t, IsBooked(s.Window(), booked), "slot %s overlaps a booking", s.Window())
			assert.Equal(t, s.Window().Within(paid), s.IsPaid)
			assert.True(t, s.Window().Within(entry.Hours))
			if i > 0 {
				assert.True(t, slots[i-1].Start < s.Start, "ascending order")
			}
		}
	}
}

func TestResolve_TieBreak(t *testing.T) {
	older := mondayShift("08:00", "12:00")
	older.ID = "older"
	older.EffectiveFrom = NewDate(2026, time.January, 5)

	newer := mondayShift("13:00", "17:00")
	newer.ID = "newer"
	newer.EffectiveFrom = NewDate(2026, time.September, 7)

	got, ok := Resolve(monday, []WeeklyEntry{newer, older})
	require.True(t, ok)
	assert.Equal(t, "newer", got.ID)

	got, ok = Resolve(monday, []WeeklyEntry{older, newer})
	require.True(t, ok)
	assert.Equal(t, "newer", got.ID)
}

func TestResolve_TieBreakOnCreatedAt(t *testing.T) {
	a := mondayShift("08:00", "12:00")
	a.ID = "a"
	a.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a
	b.ID = "b"
	b.CreatedAt = a.CreatedAt.Add(time.Hour)

	got, _ := Resolve(monday, []WeeklyEntry{b, a})
	assert.Equal(t, "b", got.ID)

	c := a
	c.ID = "c"
	got, _ = Resolve(monday, []WeeklyEntry{a, c})
	assert.Equal(t, "a", got.ID, "first in input order wins a full tie")
}
