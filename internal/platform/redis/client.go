package redis

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"amigowallet/internal/platform/config"
)

// Client wraps the go-redis client with health checking and pool metrics.
type Client struct {
	*redis.Client
	lastStats *redis.PoolStats

	poolHits       prometheus.Counter
	poolMisses     prometheus.Counter
	poolTimeouts   prometheus.Counter
	poolTotalConns prometheus.Gauge
	poolIdleConns  prometheus.Gauge
}

// New creates a Redis client from the provided configuration and registers
// pool collectors on reg. Returns nil if the URL is empty (Redis not configured).
func New(ctx context.Context, cfg config.RedisConfig, reg prometheus.Registerer) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	c := &Client{
		Client: client,
		poolHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amigowallet_redis_pool_hits_total",
			Help: "Number of times a connection was found in the pool",
		}),
		poolMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amigowallet_redis_pool_misses_total",
			Help: "Number of times a connection was not found in the pool",
		}),
		poolTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amigowallet_redis_pool_timeouts_total",
			Help: "Number of times a connection was not obtained due to timeout",
		}),
		poolTotalConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "amigowallet_redis_pool_total_conns",
			Help: "Number of total connections in the pool",
		}),
		poolIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "amigowallet_redis_pool_idle_conns",
			Help: "Number of idle connections in the pool",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.poolHits, c.poolMisses, c.poolTimeouts, c.poolTotalConns, c.poolIdleConns)
	}
	return c, nil
}

// Check pings Redis. It satisfies health.Checker.
func (c *Client) Check(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// RecordPoolStats updates the pool collectors with the current statistics.
// Call it periodically from a background goroutine.
func (c *Client) RecordPoolStats() {
	stats := c.PoolStats()

	c.poolTotalConns.Set(float64(stats.TotalConns))
	c.poolIdleConns.Set(float64(stats.IdleConns))

	// Counters only move forward, so add the delta since the last sample.
	var last redis.PoolStats
	if c.lastStats != nil {
		last = *c.lastStats
	}
	if stats.Hits > last.Hits {
		c.poolHits.Add(float64(stats.Hits - last.Hits))
	}
	if stats.Misses > last.Misses {
		c.poolMisses.Add(float64(stats.Misses - last.Misses))
	}
	if stats.Timeouts > last.Timeouts {
		c.poolTimeouts.Add(float64(stats.Timeouts - last.Timeouts))
	}

	c.lastStats = stats
}
