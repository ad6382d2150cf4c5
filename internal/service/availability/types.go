package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-slots/internal/model"
	"github.com/jwalitptl/clinic-slots/internal/slot"
)

// Flow names the booking flow a computation serves.
type Flow string

const (
	FlowSelfBooking Flow = "self_booking"
	FlowReception   Flow = "reception"
	FlowReschedule  Flow = "reschedule"
	FlowCompute     Flow = "compute"
)

// SlotQuery asks for the slots of one employee on one date.
type SlotQuery struct {
	EmployeeID uuid.UUID
	// ServiceID sizes the slots. Ignored when DurationMinutes is set.
	ServiceID       uuid.UUID
	Date            slot.Date
	DurationMinutes int
	// IncludeBooked returns taken slots marked unavailable. Reception only.
	IncludeBooked bool
	// ExcludeAppointmentID does not count that appointment as booked.
	ExcludeAppointmentID uuid.UUID
	Flow                 Flow
}

// ExceptionInfo describes the schedule exception that blocks a date.
type ExceptionInfo struct {
	ID       uuid.UUID           `json:"id"`
	Type     model.ExceptionType `json:"type"`
	DateFrom slot.Date           `json:"date_from"`
	DateTo   slot.Date           `json:"date_to"`
	Reason   *string             `json:"reason,omitempty"`
}

func exceptionInfo(e *model.ScheduleException) *ExceptionInfo {
	return &ExceptionInfo{
		ID:       e.ID,
		Type:     e.ExceptionType,
		DateFrom: slot.DateOf(e.DateFrom),
		DateTo:   slot.DateOf(e.DateTo),
		Reason:   e.Reason,
	}
}

type SlotResult struct {
	EmployeeID      uuid.UUID   `json:"employee_id"`
	Date            slot.Date   `json:"date"`
	DurationMinutes int         `json:"duration_min"`
	Slots           []slot.Slot `json:"slots"`
	// Exception is set when the employee is off on the date.
	Exception *ExceptionInfo `json:"exception,omitempty"`
}

// AffectedAppointment is an appointment that falls inside a schedule exception
// and needs to be moved.
type AffectedAppointment struct {
	Appointment *model.Appointment `json:"appointment"`
	Exception   *ExceptionInfo     `json:"exception"`
}

// ComputeRequest carries everything needed for a stateless computation, in the
// same shapes the schedule and appointment sources deliver.
type ComputeRequest struct {
	Date          string            `json:"date" validate:"required,isodate"`
	Schedules     []slot.RawEntry   `json:"schedules" validate:"dive"`
	Appointments  []slot.RawBooking `json:"appointments" validate:"dive"`
	DurationMin   int               `json:"durationMin" validate:"gte=0"`
	IncludeBooked bool              `json:"includeBooked"`
	// Now overrides the service clock for same-day filtering.
	Now *time.Time `json:"now,omitempty"`
}
