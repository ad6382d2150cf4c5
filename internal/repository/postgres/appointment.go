package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-slots/internal/model"
)

const appointmentColumns = `
	id, patient_id, employee_id, service_id, schedule_id,
	appointment_date, start_time, end_time, is_paid,
	status, source, cancel_reason, created_at, updated_at
`

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	if err := r.getContext(ctx, "appointments.get", &appointment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// ListByEmployeeAndDate returns the employee's appointments on date in every
// status. Callers decide which statuses still hold their time.
func (r *appointmentRepository) ListByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE employee_id = $1 AND appointment_date = $2::date
		ORDER BY start_time
	`
	var appointments []*model.Appointment
	if err := r.selectContext(ctx, "appointments.list_by_employee_date", &appointments, query, employeeID, date.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
