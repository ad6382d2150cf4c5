package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-slots/internal/model"
)

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT s.id, s.name, s.description, s.is_active, s.created_at,
			   (SELECT sd.duration_min
				  FROM service_durations sd
				 WHERE sd.service_id = s.id AND sd.effective_to IS NULL
				 ORDER BY sd.effective_from DESC
				 LIMIT 1) AS duration_min
		FROM services s
		WHERE s.id = $1
	`
	var service model.Service
	if err := r.getContext(ctx, "services.get", &service, query, id); err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (r *serviceRepository) ListDurations(ctx context.Context, serviceID uuid.UUID) ([]*model.ServiceDuration, error) {
	query := `
		SELECT id, service_id, duration_min, effective_from, effective_to, created_at
		FROM service_durations
		WHERE service_id = $1
		ORDER BY effective_from
	`
	var durations []*model.ServiceDuration
	if err := r.selectContext(ctx, "services.list_durations", &durations, query, serviceID); err != nil {
		return nil, fmt.Errorf("failed to list service durations: %w", err)
	}
	return durations, nil
}
