package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/pkg/circuitbreaker"
	"github.com/podocentro/clinic-api/pkg/metrics"
)

const appointmentListKey = "appointments:list"

type Config struct {
	URL string
	TTL time.Duration
}

// AppointmentCache keeps the fully resolved appointment list in Redis so
// agenda navigation does not re-join names on every grid render. Any write
// to appointments invalidates the whole key; the list is small enough that
// finer-grained invalidation buys nothing.
type AppointmentCache struct {
	client  *redis.Client
	ttl     time.Duration
	cb      *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
}

func NewAppointmentCache(cfg Config, m *metrics.Metrics) (*AppointmentCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	cb := circuitbreaker.New(circuitbreaker.Settings{
		Name:        "appointment-cache",
		MaxFailures: 5,
		Timeout:     30 * time.Second,
	})

	return &AppointmentCache{client: client, ttl: ttl, cb: cb, metrics: m}, nil
}

// Get returns the cached list, or (nil, false) on miss or Redis trouble.
// Cache failures never fail the request.
func (c *AppointmentCache) Get(ctx context.Context) ([]*model.Appointment, bool) {
	var payload []byte
	err := c.cb.Execute(func() error {
		var err error
		payload, err = c.client.Get(ctx, appointmentListKey).Bytes()
		if err == redis.Nil {
			payload = nil
			return nil
		}
		return err
	})
	if err != nil {
		log.Warn().Err(err).Msg("appointment cache read failed")
		c.metrics.CacheMisses.WithLabelValues("appointments").Inc()
		return nil, false
	}
	if payload == nil {
		c.metrics.CacheMisses.WithLabelValues("appointments").Inc()
		return nil, false
	}

	var appointments []*model.Appointment
	if err := json.Unmarshal(payload, &appointments); err != nil {
		log.Warn().Err(err).Msg("appointment cache payload corrupt, dropping")
		c.Invalidate(ctx)
		c.metrics.CacheMisses.WithLabelValues("appointments").Inc()
		return nil, false
	}

	c.metrics.CacheHits.WithLabelValues("appointments").Inc()
	return appointments, true
}

func (c *AppointmentCache) Set(ctx context.Context, appointments []*model.Appointment) {
	payload, err := json.Marshal(appointments)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal appointments for cache")
		return
	}

	err = c.cb.Execute(func() error {
		return c.client.Set(ctx, appointmentListKey, payload, c.ttl).Err()
	})
	if err != nil {
		log.Warn().Err(err).Msg("appointment cache write failed")
	}
}

func (c *AppointmentCache) Invalidate(ctx context.Context) {
	err := c.cb.Execute(func() error {
		return c.client.Del(ctx, appointmentListKey).Err()
	})
	if err != nil {
		log.Warn().Err(err).Msg("appointment cache invalidation failed")
	}
}

func (c *AppointmentCache) Close() error {
	return c.client.Close()
}
