package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusWaiting     AppointmentStatus = "WAITING"
	AppointmentStatusInProgress  AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusCompleted   AppointmentStatus = "COMPLETED"
	AppointmentStatusNoShow      AppointmentStatus = "NO_SHOW"
	AppointmentStatusCancelled   AppointmentStatus = "CANCELLED"
	AppointmentStatusRescheduled AppointmentStatus = "RESCHEDULED"
)

// OccupiesSlot reports whether an appointment in this status still blocks its time.
func (s AppointmentStatus) OccupiesSlot() bool {
	return s != AppointmentStatusCancelled && s != AppointmentStatusNoShow
}

// IsFinal reports whether the appointment can no longer be moved.
func (s AppointmentStatus) IsFinal() bool {
	switch s {
	case AppointmentStatusCancelled, AppointmentStatusRescheduled,
		AppointmentStatusCompleted, AppointmentStatusNoShow:
		return true
	}
	return false
}

type AppointmentSource string

const (
	AppointmentSourceOnline    AppointmentSource = "ONLINE"
	AppointmentSourceReception AppointmentSource = "RECEPTION"
)

type Appointment struct {
	Base
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	EmployeeID      uuid.UUID         `db:"employee_id" json:"employee_id"`
	ServiceID       uuid.UUID         `db:"service_id" json:"service_id"`
	ScheduleID      *uuid.UUID        `db:"schedule_id" json:"schedule_id,omitempty"`
	AppointmentDate time.Time         `db:"appointment_date" json:"appointment_date"`
	StartTime       time.Time         `db:"start_time" json:"start_time"`
	EndTime         time.Time         `db:"end_time" json:"end_time"`
	IsPaid          bool              `db:"is_paid" json:"is_paid"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Source          AppointmentSource `db:"source" json:"source"`
	CancelReason    *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}
