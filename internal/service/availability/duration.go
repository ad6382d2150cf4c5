package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-slots/internal/model"
	"github.com/jwalitptl/clinic-slots/internal/repository"
	"github.com/jwalitptl/clinic-slots/internal/slot"
	apperrors "github.com/jwalitptl/clinic-slots/pkg/errors"
)

// resolveDuration picks the slot length: an explicit value, then the service
// duration in force on date, then the service's current duration, then the
// configured default.
func (s *Service) resolveDuration(ctx context.Context, serviceID uuid.UUID, date slot.Date, explicit int) (int, error) {
	if explicit > 0 {
		return explicit, nil
	}
	if serviceID == uuid.Nil {
		return s.cfg.DefaultDurationMin, nil
	}

	svc, err := s.repos.Services.Get(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperrors.NewNotFound("service", err)
		}
		return 0, apperrors.NewInternal(fmt.Errorf("failed to load service: %w", err))
	}

	history, err := s.repos.Services.ListDurations(ctx, serviceID)
	if err != nil {
		return 0, apperrors.NewInternal(fmt.Errorf("failed to load service durations: %w", err))
	}
	if d, ok := DurationOn(date, history); ok {
		return d, nil
	}

	if svc.DurationMin != nil && *svc.DurationMin > 0 {
		return *svc.DurationMin, nil
	}
	return s.cfg.DefaultDurationMin, nil
}

// DurationOn returns the duration in force on date. Overlapping rows resolve
// to the latest effective_from.
func DurationOn(date slot.Date, history []*model.ServiceDuration) (int, bool) {
	var best *model.ServiceDuration
	for _, h := range history {
		if h.DurationMin <= 0 {
			continue
		}
		from := slot.DateOf(h.EffectiveFrom)
		if date.Before(from) {
			continue
		}
		if h.EffectiveTo != nil && date.After(slot.DateOf(*h.EffectiveTo)) {
			continue
		}
		if best == nil || from.After(slot.DateOf(best.EffectiveFrom)) {
			best = h
		}
	}
	if best == nil {
		return 0, false
	}
	return best.DurationMin, true
}
