package slot

import "time"

// DropPast removes slots that can no longer be booked at now. On the current
// date only slots starting strictly after now (to the minute) survive; earlier
// dates yield nothing. The date of now is taken in now's location.
func DropPast(slots []Slot, date Date, now time.Time) []Slot {
	today := DateOf(now)

	switch {
	case date.Before(today):
		return []Slot{}
	case date.After(today):
		return slots
	}

	cutoff := TimeOfDayOf(now)
	kept := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Start > cutoff {
			kept = append(kept, s)
		}
	}
	return kept
}

// Paid returns only the slots tagged as paid.
func Paid(slots []Slot) []Slot {
	return filter(slots, func(s Slot) bool { return s.IsPaid })
}

// Free returns only the slots that are not paid.
func Free(slots []Slot) []Slot {
	return filter(slots, func(s Slot) bool { return !s.IsPaid })
}

func filter(slots []Slot, keep func(Slot) bool) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
