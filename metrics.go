package ngramgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordLookup is called after each Exists/Frequency call.
	// found reports whether the word resolved, err is nil on success.
	RecordLookup(duration time.Duration, found bool, err error)

	// RecordBatchLookup is called after each BatchFrequency call.
	// words is the number of distinct words, misses the number that did not
	// resolve.
	RecordBatchLookup(words, misses int, duration time.Duration)

	// RecordShardLoad is called after each shard load from backing storage,
	// including loads that end in a missing shard file.
	RecordShardLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLookup(time.Duration, bool, error)   {}
func (NoopMetricsCollector) RecordBatchLookup(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordShardLoad(time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LookupCount      atomic.Int64
	LookupMisses     atomic.Int64
	LookupErrors     atomic.Int64
	LookupTotalNanos atomic.Int64
	BatchCount       atomic.Int64
	BatchWords       atomic.Int64
	BatchMisses      atomic.Int64
	ShardLoadCount   atomic.Int64
	ShardLoadErrors  atomic.Int64
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(duration time.Duration, found bool, err error) {
	b.LookupCount.Add(1)
	b.LookupTotalNanos.Add(duration.Nanoseconds())
	if !found {
		b.LookupMisses.Add(1)
	}
	if err != nil {
		b.LookupErrors.Add(1)
	}
}

// RecordBatchLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchLookup(words, misses int, duration time.Duration) {
	b.BatchCount.Add(1)
	b.BatchWords.Add(int64(words))
	b.BatchMisses.Add(int64(misses))
}

// RecordShardLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShardLoad(duration time.Duration, err error) {
	b.ShardLoadCount.Add(1)
	if err != nil {
		b.ShardLoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LookupCount:     b.LookupCount.Load(),
		LookupMisses:    b.LookupMisses.Load(),
		LookupErrors:    b.LookupErrors.Load(),
		LookupAvgNanos:  b.avgLookupNanos(),
		BatchCount:      b.BatchCount.Load(),
		BatchWords:      b.BatchWords.Load(),
		BatchMisses:     b.BatchMisses.Load(),
		ShardLoadCount:  b.ShardLoadCount.Load(),
		ShardLoadErrors: b.ShardLoadErrors.Load(),
	}
}

func (b *BasicMetricsCollector) avgLookupNanos() int64 {
	count := b.LookupCount.Load()
	if count == 0 {
		return 0
	}
	return b.LookupTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LookupCount     int64
	LookupMisses    int64
	LookupErrors    int64
	LookupAvgNanos  int64
	BatchCount      int64
	BatchWords      int64
	BatchMisses     int64
	ShardLoadCount  int64
	ShardLoadErrors int64
}
