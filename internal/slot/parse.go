package slot

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS". Only the first five characters
// are significant.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if len(s) < 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	hour, err := strconv.Atoi(s[0:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(s[3:5])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return NewTimeOfDay(hour, minute), nil
}

// ParseClock reads the time of day from an appointment bound, which is either
// a full "YYYY-MM-DDTHH:MM:SS" timestamp or a bare time string.
func ParseClock(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 16 && (s[10] == 'T' || s[10] == ' ') {
		return ParseTimeOfDay(s[11:16])
	}
	return ParseTimeOfDay(s)
}

// RawEntry is a weekly schedule row as schedule sources deliver it.
type RawEntry struct {
	ID            string  `json:"id,omitempty"`
	DayOfWeek     int     `json:"dayOfWeek" validate:"min=1,max=7"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	PaidStartTime *string `json:"paidStartTime,omitempty"`
	PaidEndTime   *string `json:"paidEndTime,omitempty"`
	EffectiveFrom string  `json:"effectiveFrom" validate:"required"`
	EffectiveTo   *string `json:"effectiveTo,omitempty"`
}

// ToEntry converts the row. A missing or malformed working window is kept as
// an invalid window so that the date still resolves to this entry and yields no
// slots. The paid window is kept only when both bounds parse. Effective dates
// must parse.
func (r RawEntry) ToEntry() (WeeklyEntry, error) {
	from, err := ParseDate(r.EffectiveFrom)
	if err != nil {
		return WeeklyEntry{}, fmt.Errorf("effectiveFrom: %w", err)
	}

	e := WeeklyEntry{
		ID:            r.ID,
		DayOfWeek:     r.DayOfWeek,
		EffectiveFrom: from,
	}

	if r.EffectiveTo != nil && *r.EffectiveTo != "" {
		to, err := ParseDate(*r.EffectiveTo)
		if err != nil {
			return WeeklyEntry{}, fmt.Errorf("effectiveTo: %w", err)
		}
		e.EffectiveTo = &to
	}

	start, errStart := ParseTimeOfDay(r.StartTime)
	end, errEnd := ParseTimeOfDay(r.EndTime)
	if errStart == nil && errEnd == nil {
		e.Hours = Window{Start: start, End: end}
	}

	e.Paid = parsePaid(r.PaidStartTime, r.PaidEndTime)

	return e, nil
}

func parsePaid(start, end *string) *Window {
	if start == nil || end == nil {
		return nil
	}
	ps, err := ParseTimeOfDay(*start)
	if err != nil {
		return nil
	}
	pe, err := ParseTimeOfDay(*end)
	if err != nil {
		return nil
	}
	return &Window{Start: ps, End: pe}
}

// RawBooking is an existing appointment as appointment sources deliver it.
type RawBooking struct {
	ID        string `json:"id,omitempty"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status,omitempty"`
}

// ToWindow converts the booking into the range it occupies.
func (b RawBooking) ToWindow() (Window, error) {
	start, err := ParseClock(b.StartTime)
	if err != nil {
		return Window{}, fmt.Errorf("startTime: %w", err)
	}
	end, err := ParseClock(b.EndTime)
	if err != nil {
		return Window{}, fmt.Errorf("endTime: %w", err)
	}
	return Window{Start: start, End: end}, nil
}

// ParseEntries converts rows in order, stopping at the first malformed one.
func ParseEntries(raws []RawEntry) ([]WeeklyEntry, error) {
	entries := make([]WeeklyEntry, 0, len(raws))
	for i, r := range raws {
		e, err := r.ToEntry()
		if err != nil {
			return nil, fmt.Errorf("schedule %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
