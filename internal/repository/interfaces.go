package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-slots/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	// ScheduleRepository supplies weekly schedule rows
	ScheduleRepository interface {
		ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*model.DoctorSchedule, error)
	}

	ScheduleExceptionRepository interface {
		// ListByEmployeeInRange returns exceptions overlapping [from, to], both inclusive.
		ListByEmployeeInRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*model.ScheduleException, error)
		ListInRange(ctx context.Context, from, to time.Time) ([]*model.ScheduleException, error)
	}

	AppointmentRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		ListByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) ([]*model.Appointment, error)
	}

	ServiceRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		ListDurations(ctx context.Context, serviceID uuid.UUID) ([]*model.ServiceDuration, error)
	}
)
