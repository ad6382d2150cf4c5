package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-slots/internal/model"
)

// ListByEmployee returns every weekly row of the employee, including rows whose
// effective range has ended. Picking the one in force is the caller's job.
func (r *scheduleRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*model.DoctorSchedule, error) {
	query := `
		SELECT id, employee_id, day_of_week,
			   to_char(start_time, 'HH24:MI:SS') AS start_time,
			   to_char(end_time, 'HH24:MI:SS') AS end_time,
			   to_char(paid_start_time, 'HH24:MI:SS') AS paid_start_time,
			   to_char(paid_end_time, 'HH24:MI:SS') AS paid_end_time,
			   cabinet, effective_from, effective_to,
			   created_at, updated_at
		FROM doctor_schedules
		WHERE employee_id = $1
		ORDER BY day_of_week, effective_from
	`
	var schedules []*model.DoctorSchedule
	if err := r.selectContext(ctx, "schedules.list_by_employee", &schedules, query, employeeID); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}
