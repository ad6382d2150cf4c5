package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-slots/internal/model"
	"github.com/jwalitptl/clinic-slots/internal/repository"
	"github.com/jwalitptl/clinic-slots/internal/slot"
)

var errDB = errors.New("connection reset")

type fakeSchedules struct {
	rows map[uuid.UUID][]*model.DoctorSchedule
	err  error
}

func (f *fakeSchedules) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]*model.DoctorSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[employeeID], nil
}

type fakeExceptions struct {
	rows []*model.ScheduleException
	err  error
}

func overlaps(e *model.ScheduleException, from, to time.Time) bool {
	return !e.DateFrom.After(to) && !e.DateTo.Before(from)
}

func (f *fakeExceptions) ListByEmployeeInRange(_ context.Context, employeeID uuid.UUID, from, to time.Time) ([]*model.ScheduleException, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.ScheduleException
	for _, e := range f.rows {
		if e.EmployeeID == employeeID && overlaps(e, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExceptions) ListInRange(_ context.Context, from, to time.Time) ([]*model.ScheduleException, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.ScheduleException
	for _, e := range f.rows {
		if overlaps(e, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAppointments struct {
	rows []*model.Appointment
	err  error
}

func (f *fakeAppointments) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	for _, a := range f.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAppointments) ListByEmployeeAndDate(_ context.Context, employeeID uuid.UUID, date time.Time) ([]*model.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	day := slot.DateOf(date)
	var out []*model.Appointment
	for _, a := range f.rows {
		if a.EmployeeID == employeeID && slot.DateOf(a.AppointmentDate).Equal(day) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeServices struct {
	services  map[uuid.UUID]*model.Service
	durations map[uuid.UUID][]*model.ServiceDuration
}

func (f *fakeServices) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return svc, nil
}

func (f *fakeServices) ListDurations(_ context.Context, id uuid.UUID) ([]*model.ServiceDuration, error) {
	return f.durations[id], nil
}

type fixture struct {
	schedules    *fakeSchedules
	exceptions   *fakeExceptions
	appointments *fakeAppointments
	services     *fakeServices
}

func newFixture() *fixture {
	return &fixture{
		schedules:    &fakeSchedules{rows: map[uuid.UUID][]*model.DoctorSchedule{}},
		exceptions:   &fakeExceptions{},
		appointments: &fakeAppointments{},
		services: &fakeServices{
			services:  map[uuid.UUID]*model.Service{},
			durations: map[uuid.UUID][]*model.ServiceDuration{},
		},
	}
}

func (f *fixture) repos() Repositories {
	return Repositories{
		Schedules:    f.schedules,
		Exceptions:   f.exceptions,
		Appointments: f.appointments,
		Services:     f.services,
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func at(date time.Time, hhmm string) time.Time {
	tod, err := slot.ParseTimeOfDay(hhmm)
	if err != nil {
		panic(err)
	}
	return date.Add(time.Duration(tod) * time.Minute)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
