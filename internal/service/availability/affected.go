package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-slots/internal/model"
	"github.com/jwalitptl/clinic-slots/internal/slot"
	apperrors "github.com/jwalitptl/clinic-slots/pkg/errors"
)

// AffectedAppointments lists the appointments that fall on days covered by
// schedule exceptions between from and to, both inclusive. Days before today
// are skipped. employeeID == uuid.Nil covers every employee.
func (s *Service) AffectedAppointments(ctx context.Context, employeeID uuid.UUID, from, to slot.Date) ([]AffectedAppointment, error) {
	if from.IsZero() || to.IsZero() {
		return nil, apperrors.NewBadRequest("date_from and date_to are required", nil)
	}
	if from.After(to) {
		return nil, apperrors.NewBadRequest("date_from must not be after date_to", nil)
	}

	today := slot.DateOf(s.clock.Now())
	if from.Before(today) {
		from = today
	}
	affected := []AffectedAppointment{}
	if from.After(to) {
		return affected, nil
	}
	if s.cfg.MaxRangeDays > 0 && to.After(from.AddDays(s.cfg.MaxRangeDays-1)) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("range must not exceed %d days", s.cfg.MaxRangeDays), nil)
	}

	exceptions, err := s.exceptionsInRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	seen := make(map[uuid.UUID]struct{})
	for _, exc := range exceptions {
		info := exceptionInfo(exc)
		start, end := info.DateFrom, info.DateTo
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}

		for d := start; !d.After(end); d = d.AddDays(1) {
			appointments, err := s.repos.Appointments.ListByEmployeeAndDate(ctx, exc.EmployeeID, d.Time(time.UTC))
			if err != nil {
				return nil, apperrors.NewInternal(fmt.Errorf("failed to load appointments: %w", err))
			}
			for _, a := range appointments {
				if a.Status.IsFinal() {
					continue
				}
				if _, dup := seen[a.ID]; dup {
					continue
				}
				seen[a.ID] = struct{}{}
				affected = append(affected, AffectedAppointment{Appointment: a, Exception: info})
			}
		}
	}

	sort.SliceStable(affected, func(i, j int) bool {
		return affected[i].Appointment.StartTime.Before(affected[j].Appointment.StartTime)
	})

	s.logger.Info().
		Str("employee_id", employeeID.String()).
		Str("from", from.String()).
		Str("to", to.String()).
		Int("exceptions", len(exceptions)).
		Int("appointments", len(affected)).
		Msg("affected appointments listed")

	return affected, nil
}

func (s *Service) exceptionsInRange(ctx context.Context, employeeID uuid.UUID, from, to slot.Date) ([]*model.ScheduleException, error) {
	var (
		exceptions []*model.ScheduleException
		err        error
	)
	if employeeID == uuid.Nil {
		exceptions, err = s.repos.Exceptions.ListInRange(ctx, from.Time(time.UTC), to.Time(time.UTC))
	} else {
		exceptions, err = s.repos.Exceptions.ListByEmployeeInRange(ctx, employeeID, from.Time(time.UTC), to.Time(time.UTC))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule exceptions: %w", err)
	}
	return exceptions, nil
}
