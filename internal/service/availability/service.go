package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-slots/internal/model"
	"github.com/jwalitptl/clinic-slots/internal/repository"
	"github.com/jwalitptl/clinic-slots/internal/slot"
	apperrors "github.com/jwalitptl/clinic-slots/pkg/errors"
	"github.com/jwalitptl/clinic-slots/pkg/metrics"
)

const DefaultDurationMin = 30

type Config struct {
	// DefaultDurationMin sizes slots when the service has no duration.
	DefaultDurationMin int
	// MaxAdvanceDays bounds self-booking; zero disables the check.
	MaxAdvanceDays int
	// MaxRangeDays bounds the affected-appointments scan; zero disables it.
	MaxRangeDays int
}

// Repositories are the read-side collaborators the service gathers inputs from.
type Repositories struct {
	Schedules    repository.ScheduleRepository
	Exceptions   repository.ScheduleExceptionRepository
	Appointments repository.AppointmentRepository
	Services     repository.ServiceRepository
}

type Service struct {
	repos   Repositories
	clock   Clock
	cfg     Config
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewService(repos Repositories, clock Clock, cfg Config, m *metrics.Metrics, logger zerolog.Logger) *Service {
	if cfg.DefaultDurationMin <= 0 {
		cfg.DefaultDurationMin = DefaultDurationMin
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Service{
		repos:   repos,
		clock:   clock,
		cfg:     cfg,
		metrics: m,
		logger:  logger.With().Str("component", "availability").Logger(),
	}
}

// Slots serves patient self-booking and receptionist-assisted booking.
func (s *Service) Slots(ctx context.Context, q SlotQuery) (*SlotResult, error) {
	if q.EmployeeID == uuid.Nil {
		return nil, apperrors.NewBadRequest("employee_id is required", nil)
	}
	if q.Date.IsZero() {
		return nil, apperrors.NewBadRequest("date is required", nil)
	}
	if q.DurationMinutes < 0 {
		return nil, apperrors.NewBadRequest("duration must be positive", slot.ErrInvalidDuration)
	}
	if q.Flow == "" {
		q.Flow = FlowSelfBooking
	}
	if q.Flow == FlowSelfBooking {
		q.IncludeBooked = false
		if err := s.checkHorizon(q.Date); err != nil {
			return nil, err
		}
	}

	duration, err := s.resolveDuration(ctx, q.ServiceID, q.Date, q.DurationMinutes)
	if err != nil {
		return nil, err
	}

	return s.available(ctx, q, duration)
}

// RescheduleSlots lists where an existing appointment can be moved to. The
// target employee may differ from the current one; uuid.Nil keeps it.
func (s *Service) RescheduleSlots(ctx context.Context, appointmentID, employeeID uuid.UUID, date slot.Date) (*SlotResult, error) {
	if date.IsZero() {
		return nil, apperrors.NewBadRequest("date is required", nil)
	}

	appt, err := s.repos.Appointments.Get(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("appointment", err)
		}
		return nil, apperrors.NewInternal(fmt.Errorf("failed to load appointment: %w", err))
	}
	if appt.Status.IsFinal() {
		return nil, apperrors.NewConflict(fmt.Sprintf("appointment is %s and cannot be rescheduled", appt.Status), nil)
	}

	if employeeID == uuid.Nil {
		employeeID = appt.EmployeeID
	}

	duration, err := s.resolveDuration(ctx, appt.ServiceID, date, 0)
	if err != nil {
		return nil, err
	}

	return s.available(ctx, SlotQuery{
		EmployeeID:           employeeID,
		ServiceID:            appt.ServiceID,
		Date:                 date,
		ExcludeAppointmentID: appt.ID,
		Flow:                 FlowReschedule,
	}, duration)
}

func (s *Service) checkHorizon(date slot.Date) error {
	if s.cfg.MaxAdvanceDays <= 0 {
		return nil
	}
	limit := slot.DateOf(s.clock.Now()).AddDays(s.cfg.MaxAdvanceDays)
	if date.After(limit) {
		return apperrors.NewBadRequest(fmt.Sprintf("date is more than %d days ahead", s.cfg.MaxAdvanceDays), nil)
	}
	return nil
}

// available gathers the inputs for one employee and date and runs the
// calculator.
func (s *Service) available(ctx context.Context, q SlotQuery, duration int) (*SlotResult, error) {
	start := time.Now()
	result := &SlotResult{
		EmployeeID:      q.EmployeeID,
		Date:            q.Date,
		DurationMinutes: duration,
		Slots:           []slot.Slot{},
	}

	day := q.Date.Time(time.UTC)

	exceptions, err := s.repos.Exceptions.ListByEmployeeInRange(ctx, q.EmployeeID, day, day)
	if err != nil {
		s.record(q.Flow, "error", start, 0)
		return nil, apperrors.NewInternal(fmt.Errorf("failed to load schedule exceptions: %w", err))
	}
	if len(exceptions) > 0 {
		result.Exception = exceptionInfo(exceptions[0])
		s.record(q.Flow, "exception", start, 0)
		s.logger.Debug().
			Str("employee_id", q.EmployeeID.String()).
			Str("date", q.Date.String()).
			Str("exception", string(exceptions[0].ExceptionType)).
			Msg("employee is off on date")
		return result, nil
	}

	rows, err := s.repos.Schedules.ListByEmployee(ctx, q.EmployeeID)
	if err != nil {
		s.record(q.Flow, "error", start, 0)
		return nil, apperrors.NewInternal(fmt.Errorf("failed to load schedules: %w", err))
	}
	entries, err := ScheduleEntries(rows)
	if err != nil {
		s.record(q.Flow, "error", start, 0)
		return nil, apperrors.NewInternal(err)
	}

	appointments, err := s.repos.Appointments.ListByEmployeeAndDate(ctx, q.EmployeeID, day)
	if err != nil {
		s.record(q.Flow, "error", start, 0)
		return nil, apperrors.NewInternal(fmt.Errorf("failed to load appointments: %w", err))
	}

	var opts []slot.Option
	if q.IncludeBooked {
		opts = append(opts, slot.IncludeBooked())
	}

	slots, err := slot.ComputeSlots(q.Date, entries, BookedRanges(appointments, q.ExcludeAppointmentID), duration, opts...)
	if err != nil {
		s.record(q.Flow, "error", start, 0)
		return nil, apperrors.NewBadRequest("invalid service duration", err)
	}
	result.Slots = slot.DropPast(slots, q.Date, s.clock.Now())

	s.record(q.Flow, "ok", start, len(result.Slots))
	s.logger.Debug().
		Str("flow", string(q.Flow)).
		Str("employee_id", q.EmployeeID.String()).
		Str("date", q.Date.String()).
		Int("duration_min", duration).
		Int("slots", len(result.Slots)).
		Msg("slots computed")

	return result, nil
}

// ScheduleEntries converts stored weekly rows into calculator entries.
func ScheduleEntries(rows []*model.DoctorSchedule) ([]slot.WeeklyEntry, error) {
	entries := make([]slot.WeeklyEntry, 0, len(rows))
	for _, row := range rows {
		raw := slot.RawEntry{
			ID:            row.ID.String(),
			DayOfWeek:     row.DayOfWeek,
			StartTime:     row.StartTime,
			EndTime:       row.EndTime,
			PaidStartTime: row.PaidStartTime,
			PaidEndTime:   row.PaidEndTime,
			EffectiveFrom: slot.DateOf(row.EffectiveFrom).String(),
		}
		if row.EffectiveTo != nil {
			to := slot.DateOf(*row.EffectiveTo).String()
			raw.EffectiveTo = &to
		}

		entry, err := raw.ToEntry()
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", row.ID, err)
		}
		entry.CreatedAt = row.CreatedAt
		entries = append(entries, entry)
	}
	return entries, nil
}

// BookedRanges returns the time ranges held by appointments that still occupy
// their slot, leaving out exclude.
func BookedRanges(appointments []*model.Appointment, exclude uuid.UUID) []slot.Window {
	booked := make([]slot.Window, 0, len(appointments))
	for _, a := range appointments {
		if !a.Status.OccupiesSlot() {
			continue
		}
		if exclude != uuid.Nil && a.ID == exclude {
			continue
		}
		booked = append(booked, slot.Window{
			Start: slot.TimeOfDayOf(a.StartTime),
			End:   slot.TimeOfDayOf(a.EndTime),
		})
	}
	return booked
}

func (s *Service) record(flow Flow, outcome string, start time.Time, returned int) {
	if s.metrics == nil {
		return
	}
	s.metrics.SlotComputations.WithLabelValues(string(flow), outcome).Inc()
	s.metrics.ComputeLatency.WithLabelValues(string(flow)).Observe(time.Since(start).Seconds())
	if outcome == "ok" {
		s.metrics.SlotsReturned.WithLabelValues(string(flow)).Observe(float64(returned))
	}
}
