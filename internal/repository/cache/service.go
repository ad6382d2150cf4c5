package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-slots/internal/model"
	"github.com/jwalitptl/clinic-slots/internal/repository"
	"github.com/jwalitptl/clinic-slots/pkg/metrics"
)

const serviceCacheName = "services"

// ServiceCache keeps services and their duration history in process memory.
type ServiceCache struct {
	inner   repository.ServiceRepository
	cache   *gocache.Cache
	metrics *metrics.Metrics
}

func NewServiceCache(inner repository.ServiceRepository, ttl, cleanupInterval time.Duration, m *metrics.Metrics) *ServiceCache {
	return &ServiceCache{
		inner:   inner,
		cache:   gocache.New(ttl, cleanupInterval),
		metrics: m,
	}
}

func serviceKey(id uuid.UUID) string   { return "service:" + id.String() }
func durationsKey(id uuid.UUID) string { return "durations:" + id.String() }

func (c *ServiceCache) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	if v, ok := c.cache.Get(serviceKey(id)); ok {
		c.hit()
		svc := *v.(*model.Service)
		return &svc, nil
	}
	c.miss()

	svc, err := c.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	stored := *svc
	c.cache.SetDefault(serviceKey(id), &stored)
	return svc, nil
}

func (c *ServiceCache) ListDurations(ctx context.Context, serviceID uuid.UUID) ([]*model.ServiceDuration, error) {
	if v, ok := c.cache.Get(durationsKey(serviceID)); ok {
		c.hit()
		cached := v.([]*model.ServiceDuration)
		return append([]*model.ServiceDuration(nil), cached...), nil
	}
	c.miss()

	durations, err := c.inner.ListDurations(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(durationsKey(serviceID), append([]*model.ServiceDuration(nil), durations...))
	return durations, nil
}

// Invalidate drops the service and its duration history.
func (c *ServiceCache) Invalidate(serviceID uuid.UUID) {
	c.cache.Delete(serviceKey(serviceID))
	c.cache.Delete(durationsKey(serviceID))
}

func (c *ServiceCache) hit() {
	if c.metrics != nil {
		c.metrics.CacheHit(serviceCacheName)
	}
}

func (c *ServiceCache) miss() {
	if c.metrics != nil {
		c.metrics.CacheMiss(serviceCacheName)
	}
}
