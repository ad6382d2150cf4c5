// Package slot turns a weekly work schedule and a day's bookings into the list
// of appointment slots that can still be offered.
//
// Everything in this package is pure: no I/O, no clock reads, no shared state.
package slot

import (
	"errors"
	"fmt"
)

// ErrInvalidDuration is returned when the requested slot length is not positive.
var ErrInvalidDuration = errors.New("service duration must be positive")

// Slot is a candidate appointment interval.
type Slot struct {
	Start     TimeOfDay `json:"start_time"`
	End       TimeOfDay `json:"end_time"`
	Available bool      `json:"available"`
	IsPaid    bool      `json:"is_paid"`
}

// Window returns the interval the slot covers.
func (s Slot) Window() Window {
	return Window{Start: s.Start, End: s.End}
}

type options struct {
	includeBooked bool
}

// Option tweaks ComputeSlots.
type Option func(*options)

// IncludeBooked keeps booked slots in the output with Available set to false
// instead of dropping them.
func IncludeBooked() Option {
	return func(o *options) {
		o.includeBooked = true
	}
}

// ComputeSlots returns the bookable slots for date in ascending order.
//
// A date with no schedule entry in force, or whose entry has no usable working
// window, yields an empty list. Only a non-positive duration is an error.
func ComputeSlots(date Date, schedules []WeeklyEntry, booked []Window, durationMinutes int, opts ...Option) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d minutes", ErrInvalidDuration, durationMinutes)
	}

	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	slots := []Slot{}

	entry, ok := Resolve(date, schedules)
	if !ok || !entry.Hours.Valid() {
		return slots, nil
	}

	for _, w := range Generate(entry.Hours, durationMinutes) {
		taken := IsBooked(w, booked)
		if taken && !cfg.includeBooked {
			continue
		}
		slots = append(slots, Slot{
			Start:     w.Start,
			End:       w.End,
			Available: !taken,
			IsPaid:    entry.Paid != nil && w.Within(*entry.Paid),
		})
	}

	return slots, nil
}

// Generate partitions hours into contiguous windows of durationMinutes. A tail
// shorter than the duration is not offered.
func Generate(hours Window, durationMinutes int) []Window {
	if durationMinutes <= 0 || !hours.Valid() {
		return nil
	}

	windows := make([]Window, 0, hours.Minutes()/durationMinutes)
	for cursor := hours.Start; cursor.Add(durationMinutes) <= hours.End; cursor = cursor.Add(durationMinutes) {
		windows = append(windows, Window{Start: cursor, End: cursor.Add(durationMinutes)})
	}
	return windows
}

// IsBooked reports whether w overlaps any of the booked ranges.
func IsBooked(w Window, booked []Window) bool {
	for _, b := range booked {
		if w.Overlaps(b) {
			return true
		}
	}
	return false
}
