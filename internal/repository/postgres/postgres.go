package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-slots/internal/repository"
	"github.com/jwalitptl/clinic-slots/pkg/metrics"
)

type scheduleRepository struct {
	BaseRepository
}

type scheduleExceptionRepository struct {
	BaseRepository
}

type appointmentRepository struct {
	BaseRepository
}

type serviceRepository struct {
	BaseRepository
}

func NewScheduleRepository(db *sqlx.DB, m *metrics.Metrics) repository.ScheduleRepository {
	return &scheduleRepository{NewBaseRepository(db, m)}
}

func NewScheduleExceptionRepository(db *sqlx.DB, m *metrics.Metrics) repository.ScheduleExceptionRepository {
	return &scheduleExceptionRepository{NewBaseRepository(db, m)}
}

func NewAppointmentRepository(db *sqlx.DB, m *metrics.Metrics) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db, m)}
}

func NewServiceRepository(db *sqlx.DB, m *metrics.Metrics) repository.ServiceRepository {
	return &serviceRepository{NewBaseRepository(db, m)}
}
