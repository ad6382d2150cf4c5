package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-slots/internal/model"
	"github.com/jwalitptl/clinic-slots/pkg/metrics"
)

type countingScheduleRepo struct {
	rows  []*model.DoctorSchedule
	calls int
}

func (r *countingScheduleRepo) ListByEmployee(_ context.Context, _ uuid.UUID) ([]*model.DoctorSchedule, error) {
	r.calls++
	return r.rows, nil
}

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestScheduleKey(t *testing.T) {
	id := uuid.MustParse("7f1d3c2a-1111-4222-8333-444455556666")
	assert.Equal(t, "slots:schedules:7f1d3c2a-1111-4222-8333-444455556666", ScheduleKey(id))
}

func TestScheduleCache_FallsBackWhenRedisIsDown(t *testing.T) {
	employeeID := uuid.New()
	inner := &countingScheduleRepo{rows: []*model.DoctorSchedule{
		{EmployeeID: employeeID, DayOfWeek: 1, StartTime: "08:00:00", EndTime: "12:00:00"},
	}}
	m := metrics.NewMetrics("test", "cache", prometheus.NewRegistry())
	c := NewScheduleCache(inner, unreachableClient(t), time.Minute, m, zerolog.Nop())

	rows, err := c.ListByEmployee(context.Background(), employeeID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "08:00:00", rows[0].StartTime)

	rows, err = c.ListByEmployee(context.Background(), employeeID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("schedules", "miss")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RedisOperations.WithLabelValues("get", "error")))
}

func TestScheduleCache_InvalidateReportsRedisFailure(t *testing.T) {
	c := NewScheduleCache(&countingScheduleRepo{}, unreachableClient(t), time.Minute, nil, zerolog.Nop())

	assert.Error(t, c.Invalidate(context.Background(), uuid.New()))
}
