package model

import (
	"time"

	"github.com/google/uuid"
)

// DoctorSchedule is one weekly shift row. Times come back from postgres TIME
// columns as "HH:MM:SS" text.
type DoctorSchedule struct {
	Base
	EmployeeID    uuid.UUID  `db:"employee_id" json:"employee_id"`
	DayOfWeek     int        `db:"day_of_week" json:"day_of_week"`
	StartTime     string     `db:"start_time" json:"start_time"`
	EndTime       string     `db:"end_time" json:"end_time"`
	PaidStartTime *string    `db:"paid_start_time" json:"paid_start_time,omitempty"`
	PaidEndTime   *string    `db:"paid_end_time" json:"paid_end_time,omitempty"`
	Cabinet       *string    `db:"cabinet" json:"cabinet,omitempty"`
	EffectiveFrom time.Time  `db:"effective_from" json:"effective_from"`
	EffectiveTo   *time.Time `db:"effective_to" json:"effective_to,omitempty"`
}

type ExceptionType string

const (
	ExceptionTypeVacation  ExceptionType = "VACATION"
	ExceptionTypeSickLeave ExceptionType = "SICK_LEAVE"
	ExceptionTypeDayOff    ExceptionType = "DAY_OFF"
	ExceptionTypeDismissal ExceptionType = "DISMISSAL"
	ExceptionTypeOther     ExceptionType = "OTHER"
)

// ScheduleException takes an employee off their weekly schedule for an
// inclusive date range.
type ScheduleException struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	EmployeeID    uuid.UUID     `db:"employee_id" json:"employee_id"`
	ExceptionType ExceptionType `db:"exception_type" json:"exception_type"`
	DateFrom      time.Time     `db:"date_from" json:"date_from"`
	DateTo        time.Time     `db:"date_to" json:"date_to"`
	Reason        *string       `db:"reason" json:"reason,omitempty"`
	CreatedBy     uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
