package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-slots/pkg/metrics"
)

type fakeBroker struct {
	channels map[string]chan []byte
	failOn   string
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{channels: map[string]chan []byte{
		ChannelSchedulesChanged: make(chan []byte, 4),
		ChannelServicesChanged:  make(chan []byte, 4),
	}}
}

func (b *fakeBroker) Publish(_ context.Context, _ string, _ interface{}) error { return nil }

func (b *fakeBroker) Subscribe(_ context.Context, channel string) (<-chan []byte, error) {
	if channel == b.failOn {
		return nil, errors.New("subscribe refused")
	}
	return b.channels[channel], nil
}

func (b *fakeBroker) Close() error { return nil }

type recordingInvalidator struct {
	mu        sync.Mutex
	employees []uuid.UUID
	services  []uuid.UUID
}

func (r *recordingInvalidator) Invalidate(_ context.Context, employeeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees = append(r.employees, employeeID)
	return nil
}

func (r *recordingInvalidator) evicted() ([]uuid.UUID, []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uuid.UUID(nil), r.employees...), append([]uuid.UUID(nil), r.services...)
}

type serviceRecorder struct{ r *recordingInvalidator }

func (s serviceRecorder) Invalidate(serviceID uuid.UUID) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	s.r.services = append(s.r.services, serviceID)
}

func TestInvalidationWorker_EvictsOnMessages(t *testing.T) {
	broker := newFakeBroker()
	rec := &recordingInvalidator{}
	m := metrics.NewMetrics("test", "worker", prometheus.NewRegistry())
	w := NewInvalidationWorker(broker, rec, serviceRecorder{rec}, m, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	employeeID, serviceID := uuid.New(), uuid.New()
	broker.channels[ChannelSchedulesChanged] <- []byte(`not json`)
	broker.channels[ChannelSchedulesChanged] <- []byte(`{"employee_id":"` + employeeID.String() + `"}`)
	broker.channels[ChannelServicesChanged] <- []byte(`{"service_id":"` + serviceID.String() + `"}`)

	assert.Eventually(t, func() bool {
		employees, services := rec.evicted()
		return len(employees) == 1 && len(services) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}

	employees, services := rec.evicted()
	assert.Equal(t, []uuid.UUID{employeeID}, employees)
	assert.Equal(t, []uuid.UUID{serviceID}, services)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Invalidations.WithLabelValues(ChannelSchedulesChanged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Invalidations.WithLabelValues(ChannelServicesChanged)))
}

func TestInvalidationWorker_StopsWhenSubscriptionsClose(t *testing.T) {
	broker := newFakeBroker()
	rec := &recordingInvalidator{}
	w := NewInvalidationWorker(broker, rec, serviceRecorder{rec}, nil, zerolog.Nop())

	close(broker.channels[ChannelSchedulesChanged])
	close(broker.channels[ChannelServicesChanged])

	require.NoError(t, w.Start(context.Background()))
}

func TestInvalidationWorker_SubscribeFailure(t *testing.T) {
	broker := newFakeBroker()
	broker.failOn = ChannelServicesChanged
	rec := &recordingInvalidator{}
	w := NewInvalidationWorker(broker, rec, serviceRecorder{rec}, nil, zerolog.Nop())

	err := w.Start(context.Background())
	assert.ErrorContains(t, err, ChannelServicesChanged)
}
