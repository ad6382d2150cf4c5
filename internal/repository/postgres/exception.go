package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-slots/internal/model"
)

const exceptionColumns = `
	id, employee_id, exception_type, date_from, date_to,
	reason, created_by, created_at
`

func (r *scheduleExceptionRepository) ListByEmployeeInRange(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]*model.ScheduleException, error) {
	query := `SELECT ` + exceptionColumns + `
		FROM schedule_exceptions
		WHERE employee_id = $1 AND date_from <= $3 AND date_to >= $2
		ORDER BY date_from
	`
	var exceptions []*model.ScheduleException
	if err := r.selectContext(ctx, "exceptions.list_by_employee", &exceptions, query, employeeID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list schedule exceptions: %w", err)
	}
	return exceptions, nil
}

func (r *scheduleExceptionRepository) ListInRange(ctx context.Context, from, to time.Time) ([]*model.ScheduleException, error) {
	query := `SELECT ` + exceptionColumns + `
		FROM schedule_exceptions
		WHERE date_from <= $2 AND date_to >= $1
		ORDER BY date_from, employee_id
	`
	var exceptions []*model.ScheduleException
	if err := r.selectContext(ctx, "exceptions.list_in_range", &exceptions, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to list schedule exceptions: %w", err)
	}
	return exceptions, nil
}
