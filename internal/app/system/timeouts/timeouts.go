// Package timeouts centralizes the deadlines handlers put on I/O: Mongo
// queries, provider API calls, and CSV imports. Values start at the defaults
// and can be overridden at startup, either in code or from TIMEOUT_* env vars.
//
// Rough guide: Ping for health checks, Short for single-document reads and
// single provider calls, Medium for list queries and dashboard fan-out reads,
// Long for multi-step writes, Batch for CSV imports.
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultBatch  = 60 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
	batch  = DefaultBatch
)

// Ping is the deadline for health checks and connectivity probes.
func Ping() time.Duration { mu.RLock(); defer mu.RUnlock(); return ping }

// Short is the deadline for single-document reads and single provider calls.
func Short() time.Duration { mu.RLock(); defer mu.RUnlock(); return short }

// Medium is the deadline for list queries and dashboard fan-out reads.
func Medium() time.Duration { mu.RLock(); defer mu.RUnlock(); return medium }

// Long is the deadline for multi-step writes.
func Long() time.Duration { mu.RLock(); defer mu.RUnlock(); return long }

// Batch is the deadline for bulk work such as report CSV imports.
func Batch() time.Duration { mu.RLock(); defer mu.RUnlock(); return batch }

// Config holds override values; zero fields keep the current setting.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Batch  time.Duration
}

// Configure applies overrides. Call during startup, before handlers run.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
	if cfg.Batch > 0 {
		batch = cfg.Batch
	}
}

// Reset restores the defaults. Test helper.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, short, medium, long, batch = DefaultPing, DefaultShort, DefaultMedium, DefaultLong, DefaultBatch
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_MEDIUM,
// TIMEOUT_LONG, and TIMEOUT_BATCH as Go durations, ignoring unset or invalid
// values, and reports how many it applied.
func ConfigureFromEnv() int {
	applied := 0
	read := func(name string, dst *time.Duration) {
		if v := os.Getenv(name); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				*dst = d
				applied++
			}
		}
	}
	mu.Lock()
	defer mu.Unlock()
	read("TIMEOUT_PING", &ping)
	read("TIMEOUT_SHORT", &short)
	read("TIMEOUT_MEDIUM", &medium)
	read("TIMEOUT_LONG", &long)
	read("TIMEOUT_BATCH", &batch)
	return applied
}

// Current returns the active values, for startup logging.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Short: short, Medium: medium, Long: long, Batch: batch}
}

// WithTimeout wraps context.WithTimeout and logs a warning when the returned
// cancel func observes a deadline hit, so slow operations leave a trace.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout))
		}
		cancel()
	}
}
