package availability

import "time"

// Clock supplies the current instant. Same-day filtering and "today" depend on
// it, so tests and the CLI pin it.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in Location (the local zone when nil).
type RealClock struct {
	Location *time.Location
}

func (c RealClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
