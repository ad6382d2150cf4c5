package slot

import "time"

// WeeklyEntry is a recurring work shift of one staff member on one weekday.
type WeeklyEntry struct {
	ID        string `json:"id,omitempty"`
	DayOfWeek int    `json:"day_of_week"`
	// Hours is left invalid when the source row had no usable working window.
	Hours         Window    `json:"hours"`
	Paid          *Window   `json:"paid,omitempty"`
	EffectiveFrom Date      `json:"effective_from"`
	EffectiveTo   *Date     `json:"effective_to,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// Until returns the last date the entry applies to.
func (e WeeklyEntry) Until() Date {
	if e.EffectiveTo == nil {
		return FarFuture
	}
	return *e.EffectiveTo
}

// InEffect reports whether the entry applies on d.
func (e WeeklyEntry) InEffect(d Date) bool {
	return !d.Before(e.EffectiveFrom) && !d.After(e.Until())
}

// Resolve picks the entry that governs d. Overlapping effective ranges for the
// same weekday are a data error upstream; when they happen the entry with the
// latest EffectiveFrom wins, then the latest CreatedAt, then input order.
func Resolve(d Date, entries []WeeklyEntry) (WeeklyEntry, bool) {
	weekday := d.Weekday()

	var (
		best  WeeklyEntry
		found bool
	)
	for _, e := range entries {
		if e.DayOfWeek != weekday || !e.InEffect(d) {
			continue
		}
		if !found || supersedes(e, best) {
			best, found = e, true
		}
	}
	return best, found
}

func supersedes(candidate, current WeeklyEntry) bool {
	if c := candidate.EffectiveFrom.Compare(current.EffectiveFrom); c != 0 {
		return c > 0
	}
	return candidate.CreatedAt.After(current.CreatedAt)
}
