package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/clinic-slots/internal/model"
	"github.com/jwalitptl/clinic-slots/internal/slot"
	apperrors "github.com/jwalitptl/clinic-slots/pkg/errors"
)

// Compute runs the calculator over caller-supplied schedules and bookings. It
// touches no repository. Bookings whose status no longer holds the slot are
// ignored.
func (s *Service) Compute(_ context.Context, req ComputeRequest) (*SlotResult, error) {
	start := time.Now()

	date, err := slot.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequest("invalid date", err)
	}

	entries, err := slot.ParseEntries(req.Schedules)
	if err != nil {
		return nil, apperrors.NewBadRequest("invalid schedule", err)
	}

	booked := make([]slot.Window, 0, len(req.Appointments))
	for i, b := range req.Appointments {
		if b.Status != "" && !model.AppointmentStatus(strings.ToUpper(b.Status)).OccupiesSlot() {
			continue
		}
		w, err := b.ToWindow()
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid appointment", fmt.Errorf("appointment %d: %w", i, err))
		}
		booked = append(booked, w)
	}

	duration := req.DurationMin
	if duration == 0 {
		duration = s.cfg.DefaultDurationMin
	}

	var opts []slot.Option
	if req.IncludeBooked {
		opts = append(opts, slot.IncludeBooked())
	}

	slots, err := slot.ComputeSlots(date, entries, booked, duration, opts...)
	if err != nil {
		s.record(FlowCompute, "error", start, 0)
		if errors.Is(err, slot.ErrInvalidDuration) {
			return nil, apperrors.NewBadRequest("invalid duration", err)
		}
		return nil, apperrors.NewInternal(err)
	}

	now := s.clock.Now()
	if req.Now != nil {
		now = *req.Now
	}

	result := &SlotResult{
		Date:            date,
		DurationMinutes: duration,
		Slots:           slot.DropPast(slots, date, now),
	}
	s.record(FlowCompute, "ok", start, len(result.Slots))
	return result, nil
}
