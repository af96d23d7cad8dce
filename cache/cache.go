// Package cache provides the bounded shard cache: a lazily-populated LRU of
// loaded shard tables with single-flight load coordination.
//
// The cache owns the only point where shard files are read. Concurrent
// callers requesting the same cold prefix are coalesced into exactly one
// load; missing shards are remembered as permanent misses so a prefix is
// read from storage at most once per cache lifetime. Eviction never
// invalidates a table an in-flight lookup still holds: readers keep a
// reference to the immutable table, and memory is reclaimed only after the
// last reference is gone.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/ngramgo/shard"
)

// ErrShardNotFound is returned by Get when the shard file backing a prefix
// does not exist. Callers treat it as "no match in this shard", not as a
// hard failure.
var ErrShardNotFound = errors.New("shard not found")

// DefaultCapacity is the default maximum number of resident shard tables.
const DefaultCapacity = 256

// LoadFunc loads the shard table for a prefix from backing storage. A
// missing shard file must be signaled with an error satisfying
// errors.Is(err, ErrShardNotFound) or errors.Is(err, os.ErrNotExist).
type LoadFunc func(ctx context.Context, prefix string) (*shard.Table, error)

// Options configures a ShardCache.
type Options struct {
	// Capacity is the maximum number of resident shard tables.
	Capacity int
	// Logger receives debug logging for shard loads. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits   int64
	Misses int64
	Loads  int64
}

// ShardCache is a bounded, lazily-populated cache of shard tables keyed by
// prefix. Safe for concurrent use.
type ShardCache struct {
	// entries stores *shard.Table values; a nil value marks a prefix whose
	// shard file is known to be missing.
	entries *lru.Cache[string, *shard.Table]
	group   singleflight.Group
	load    LoadFunc
	logger  *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
	loads  atomic.Int64
}

// New creates a ShardCache over the given loader.
func New(load LoadFunc, optFns ...func(o *Options)) (*ShardCache, error) {
	opts := Options{
		Capacity: DefaultCapacity,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if load == nil {
		return nil, errors.New("cache: load func must not be nil")
	}
	if opts.Capacity <= 0 {
		return nil, fmt.Errorf("cache: capacity must be positive, got %d", opts.Capacity)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	entries, err := lru.New[string, *shard.Table](opts.Capacity)
	if err != nil {
		return nil, err
	}

	return &ShardCache{
		entries: entries,
		load:    load,
		logger:  opts.Logger,
	}, nil
}

// Get returns the shard table for a prefix, loading it on first access.
// It returns ErrShardNotFound when the backing shard file does not exist;
// that outcome is cached, so storage is touched at most once per prefix.
func (c *ShardCache) Get(ctx context.Context, prefix string) (*shard.Table, error) {
	if t, ok := c.entries.Get(prefix); ok {
		c.hits.Add(1)
		return c.unwrap(prefix, t)
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(prefix, func() (any, error) {
		// A concurrent flight may have populated the entry between our miss
		// and acquiring the flight.
		if t, ok := c.entries.Get(prefix); ok {
			return t, nil
		}

		start := time.Now()
		t, err := c.load(ctx, prefix)
		if err != nil {
			if errors.Is(err, ErrShardNotFound) || errors.Is(err, os.ErrNotExist) {
				// Permanent miss: remember it so the file is not probed again.
				c.loads.Add(1)
				c.entries.Add(prefix, nil)
				c.logger.DebugContext(ctx, "shard missing", "prefix", prefix)
				return (*shard.Table)(nil), nil
			}
			return nil, err
		}

		c.loads.Add(1)
		c.entries.Add(prefix, t)
		c.logger.DebugContext(ctx, "shard loaded",
			"prefix", prefix,
			"rows", t.Len(),
			"elapsed", time.Since(start),
		)
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	return c.unwrap(prefix, v.(*shard.Table))
}

func (c *ShardCache) unwrap(prefix string, t *shard.Table) (*shard.Table, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: prefix %q", ErrShardNotFound, prefix)
	}
	return t, nil
}

// Stats returns a snapshot of the hit/miss/load counters.
func (c *ShardCache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Loads:  c.loads.Load(),
	}
}

// Len returns the number of resident entries, including remembered misses.
func (c *ShardCache) Len() int {
	return c.entries.Len()
}

// Purge drops all resident entries. Tables currently held by readers stay
// valid; subsequent Gets reload from storage.
func (c *ShardCache) Purge() {
	c.entries.Purge()
}
