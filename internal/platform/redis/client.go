// Package redis opens the go-redis client behind the work queue.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"coursecred/internal/platform/config"
)

// Client wraps the go-redis client with health checking and pool metrics.
type Client struct {
	*redis.Client
}

// New connects to cfg.URL and pings it. Returns nil if the URL is empty
// (Redis not configured).
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
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
	// Blocking pops wait longer than the read timeout; go-redis extends it per command.
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// PoolCollector exports go-redis pool statistics at scrape time.
type PoolCollector struct {
	stats func() *redis.PoolStats

	hits       *prometheus.Desc
	misses     *prometheus.Desc
	timeouts   *prometheus.Desc
	staleConns *prometheus.Desc
	totalConns *prometheus.Desc
	idleConns  *prometheus.Desc
}

func NewPoolCollector(stats func() *redis.PoolStats) *PoolCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("coursecred_redis_pool_"+name, help, nil, nil)
	}
	return &PoolCollector{
		stats:      stats,
		hits:       desc("hits_total", "Number of times a connection was found in the pool"),
		misses:     desc("misses_total", "Number of times a connection was not found in the pool"),
		timeouts:   desc("timeouts_total", "Number of times a connection was not obtained due to timeout"),
		staleConns: desc("stale_conns_total", "Number of stale connections removed from the pool"),
		totalConns: desc("total_conns", "Number of total connections in the pool"),
		idleConns:  desc("idle_conns", "Number of idle connections in the pool"),
	}
}

// Collector returns a pool collector bound to this client.
func (c *Client) Collector() *PoolCollector {
	return NewPoolCollector(c.PoolStats)
}

func (p *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.hits
	ch <- p.misses
	ch <- p.timeouts
	ch <- p.staleConns
	ch <- p.totalConns
	ch <- p.idleConns
}

func (p *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := p.stats()
	ch <- prometheus.MustNewConstMetric(p.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(p.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(p.timeouts, prometheus.CounterValue, float64(s.Timeouts))
	ch <- prometheus.MustNewConstMetric(p.staleConns, prometheus.CounterValue, float64(s.StaleConns))
	ch <- prometheus.MustNewConstMetric(p.totalConns, prometheus.GaugeValue, float64(s.TotalConns))
	ch <- prometheus.MustNewConstMetric(p.idleConns, prometheus.GaugeValue, float64(s.IdleConns))
}
