package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-slots/pkg/messaging"
	"github.com/jwalitptl/clinic-slots/pkg/metrics"
)

// Channels published by the systems that own schedules and services.
const (
	ChannelSchedulesChanged = "schedules.changed"
	ChannelServicesChanged  = "services.changed"
)

type ScheduleChanged struct {
	EmployeeID uuid.UUID `json:"employee_id"`
}

type ServiceChanged struct {
	ServiceID uuid.UUID `json:"service_id"`
}

type ScheduleInvalidator interface {
	Invalidate(ctx context.Context, employeeID uuid.UUID) error
}

type ServiceInvalidator interface {
	Invalidate(serviceID uuid.UUID)
}

// InvalidationWorker evicts cached schedules and services when their owners
// announce a change.
type InvalidationWorker struct {
	broker    messaging.Broker
	schedules ScheduleInvalidator
	services  ServiceInvalidator
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewInvalidationWorker(broker messaging.Broker, schedules ScheduleInvalidator, services ServiceInvalidator, m *metrics.Metrics, logger zerolog.Logger) *InvalidationWorker {
	return &InvalidationWorker{
		broker:    broker,
		schedules: schedules,
		services:  services,
		metrics:   m,
		logger:    logger.With().Str("component", "invalidation-worker").Logger(),
	}
}

// Start subscribes to both channels and blocks until ctx is cancelled or both
// subscriptions end.
func (w *InvalidationWorker) Start(ctx context.Context) error {
	scheduleMsgs, err := w.broker.Subscribe(ctx, ChannelSchedulesChanged)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", ChannelSchedulesChanged, err)
	}
	serviceMsgs, err := w.broker.Subscribe(ctx, ChannelServicesChanged)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", ChannelServicesChanged, err)
	}

	w.logger.Info().Msg("listening for cache invalidations")

	for scheduleMsgs != nil || serviceMsgs != nil {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-scheduleMsgs:
			if !ok {
				scheduleMsgs = nil
				continue
			}
			w.handleSchedule(ctx, payload)
		case payload, ok := <-serviceMsgs:
			if !ok {
				serviceMsgs = nil
				continue
			}
			w.handleService(payload)
		}
	}
	return nil
}

func (w *InvalidationWorker) handleSchedule(ctx context.Context, payload []byte) {
	w.count(ChannelSchedulesChanged)

	var msg ScheduleChanged
	if err := json.Unmarshal(payload, &msg); err != nil || msg.EmployeeID == uuid.Nil {
		w.logger.Warn().Err(err).Str("payload", string(payload)).Msg("ignoring malformed schedule change")
		return
	}
	if err := w.schedules.Invalidate(ctx, msg.EmployeeID); err != nil {
		w.logger.Error().Err(err).Str("employee_id", msg.EmployeeID.String()).Msg("failed to evict schedules")
		return
	}
	w.logger.Debug().Str("employee_id", msg.EmployeeID.String()).Msg("schedules evicted")
}

func (w *InvalidationWorker) handleService(payload []byte) {
	w.count(ChannelServicesChanged)

	var msg ServiceChanged
	if err := json.Unmarshal(payload, &msg); err != nil || msg.ServiceID == uuid.Nil {
		w.logger.Warn().Err(err).Str("payload", string(payload)).Msg("ignoring malformed service change")
		return
	}
	w.services.Invalidate(msg.ServiceID)
	w.logger.Debug().Str("service_id", msg.ServiceID.String()).Msg("service evicted")
}

func (w *InvalidationWorker) count(channel string) {
	if w.metrics != nil {
		w.metrics.Invalidations.WithLabelValues(channel).Inc()
	}
}
