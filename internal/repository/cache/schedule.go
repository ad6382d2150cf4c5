package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-slots/internal/model"
	"github.com/jwalitptl/clinic-slots/internal/repository"
	"github.com/jwalitptl/clinic-slots/pkg/circuitbreaker"
	"github.com/jwalitptl/clinic-slots/pkg/metrics"
)

const scheduleCacheName = "schedules"

// ScheduleKey is the Redis key holding an employee's weekly rows.
func ScheduleKey(employeeID uuid.UUID) string {
	return "slots:schedules:" + employeeID.String()
}

// ScheduleCache keeps each employee's schedule rows in Redis. Redis is an
// accelerator only: any Redis failure falls through to the inner repository.
type ScheduleCache struct {
	inner   repository.ScheduleRepository
	client  *redis.Client
	ttl     time.Duration
	cb      *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewScheduleCache(inner repository.ScheduleRepository, client *redis.Client, ttl time.Duration, m *metrics.Metrics, logger zerolog.Logger) *ScheduleCache {
	return &ScheduleCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-schedule-cache",
			MaxFailures: 5,
			Timeout:     10 * time.Second,
		}),
		metrics: m,
		logger:  logger.With().Str("component", "schedule-cache").Logger(),
	}
}

func (c *ScheduleCache) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*model.DoctorSchedule, error) {
	key := ScheduleKey(employeeID)

	if schedules, ok := c.get(ctx, key); ok {
		c.hit()
		return schedules, nil
	}
	c.miss()

	schedules, err := c.inner.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	c.set(ctx, key, schedules)
	return schedules, nil
}

// Invalidate drops the cached rows of one employee.
func (c *ScheduleCache) Invalidate(ctx context.Context, employeeID uuid.UUID) error {
	err := c.cb.Execute(func() error {
		return c.client.Del(ctx, ScheduleKey(employeeID)).Err()
	})
	c.observe("del", err)
	if err != nil {
		return fmt.Errorf("failed to invalidate schedules of %s: %w", employeeID, err)
	}
	return nil
}

func (c *ScheduleCache) get(ctx context.Context, key string) ([]*model.DoctorSchedule, bool) {
	var data []byte
	err := c.cb.Execute(func() error {
		var err error
		data, err = c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// A miss is not a Redis failure.
			data = nil
			return nil
		}
		return err
	})
	c.observe("get", err)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("schedule cache read failed, using database")
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	var schedules []*model.DoctorSchedule
	if err := json.Unmarshal(data, &schedules); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable schedule cache entry")
		return nil, false
	}
	return schedules, true
}

func (c *ScheduleCache) set(ctx context.Context, key string, schedules []*model.DoctorSchedule) {
	data, err := json.Marshal(schedules)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to encode schedules for cache")
		return
	}
	err = c.cb.Execute(func() error {
		return c.client.Set(ctx, key, data, c.ttl).Err()
	})
	c.observe("set", err)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("schedule cache write failed")
	}
}

func (c *ScheduleCache) observe(op string, err error) {
	if c.metrics != nil {
		c.metrics.ObserveRedis(op, err)
	}
}

func (c *ScheduleCache) hit() {
	if c.metrics != nil {
		c.metrics.CacheHit(scheduleCacheName)
	}
}

func (c *ScheduleCache) miss() {
	if c.metrics != nil {
		c.metrics.CacheMiss(scheduleCacheName)
	}
}
