package ngramgo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/ngramgo/blobstore"
	"github.com/hupe1980/ngramgo/cache"
	"github.com/hupe1980/ngramgo/dataset"
	"github.com/hupe1980/ngramgo/fallback"
	"github.com/hupe1980/ngramgo/model"
	"github.com/hupe1980/ngramgo/shard"
	"github.com/hupe1980/ngramgo/shardio"
)

// Normalizer maps a surface word form to its canonical lookup form.
type Normalizer func(word string) string

// DefaultNormalizer lower-cases the word and trims surrounding whitespace.
func DefaultNormalizer(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Corpus is a read-only handle on an installed word-frequency corpus.
// All methods are safe for concurrent use.
type Corpus struct {
	store     blobstore.BlobStore
	codec     shardio.Codec
	cache     *cache.ShardCache
	installed func() bool
	normalize Normalizer
	metrics   MetricsCollector
	logger    *Logger
}

// Open creates a Corpus over the given data directory.
//
// Opening succeeds even when the corpus is not installed yet; every lookup
// entry point re-checks installation and fails with ErrDataNotInstalled
// until the data is present. This mirrors the CLI flow where install and
// lookup race in separate processes.
func Open(dataDir string, optFns ...Option) (*Corpus, error) {
	opts := applyOptions(optFns)

	store := opts.store
	installed := opts.installed

	if store == nil {
		if dataDir == "" {
			return nil, errors.New("ngramgo: data directory required")
		}
		store = blobstore.NewLocalStore(dataDir)
	}
	if installed == nil {
		if dataDir == "" {
			return nil, errors.New("ngramgo: installed check required when no data directory is given")
		}
		installed = dataset.New(dataDir).Installed
	}

	c := &Corpus{
		store:     store,
		codec:     opts.codec,
		installed: installed,
		normalize: opts.normalize,
		metrics:   opts.metrics,
		logger:    opts.logger,
	}

	shardCache, err := cache.New(c.loadShard, func(o *cache.Options) {
		o.Capacity = opts.cacheSize
		o.Logger = opts.logger.Logger
	})
	if err != nil {
		return nil, err
	}
	c.cache = shardCache

	return c, nil
}

// Exists reports whether a word (or a fallback stem, see package docs) is
// present in the corpus.
func (c *Corpus) Exists(ctx context.Context, word string) (bool, error) {
	rec, err := c.Frequency(ctx, word)
	return rec != nil, err
}

// Frequency returns the frequency record for a word, or (nil, nil) when the
// word and all its fallback candidates are absent.
//
// A word resolved through its contraction stem reports the stem's record;
// a hyphenated compound whose parts all resolve reports the first part's
// record.
func (c *Corpus) Frequency(ctx context.Context, word string) (*model.FrequencyRecord, error) {
	if !c.installed() {
		return nil, ErrDataNotInstalled
	}

	start := time.Now()
	rec, err := c.resolve(ctx, c.normalize(word))
	c.metrics.RecordLookup(time.Since(start), rec != nil, err)
	c.logger.LogLookup(ctx, word, rec != nil, err)
	return rec, err
}

// BatchFrequency looks up many words at once. Every input word appears in
// the result exactly once (duplicates collapse); a nil value means absent.
//
// Direct lookups are grouped by shard prefix so each shard is loaded and
// queried once regardless of how many words map to it. Words that miss
// directly go through the per-word fallback chain in a second pass.
func (c *Corpus) BatchFrequency(ctx context.Context, words []string) (map[string]*model.FrequencyRecord, error) {
	if !c.installed() {
		return nil, ErrDataNotInstalled
	}

	start := time.Now()
	results := make(map[string]*model.FrequencyRecord, len(words))

	type entry struct {
		word   string
		norm   string
		suffix string
	}
	byPrefix := make(map[string][]entry)
	for _, w := range words {
		if _, seen := results[w]; seen {
			continue
		}
		results[w] = nil
		norm := c.normalize(w)
		key := shard.KeyOf(norm)
		byPrefix[key.Prefix] = append(byPrefix[key.Prefix], entry{word: w, norm: norm, suffix: key.Suffix})
	}

	// Direct phase: one grouped lookup per shard.
	var unresolved []entry
	for prefix, group := range byPrefix {
		table, err := c.cache.Get(ctx, prefix)
		if err != nil {
			if errors.Is(err, cache.ErrShardNotFound) {
				unresolved = append(unresolved, group...)
				continue
			}
			return nil, err
		}

		suffixes := make([]string, len(group))
		for i, e := range group {
			suffixes[i] = e.suffix
		}
		found := table.LookupMany(suffixes)
		for _, e := range group {
			if rec, ok := found[e.suffix]; ok {
				results[e.word] = &rec
			} else {
				unresolved = append(unresolved, e)
			}
		}
	}

	// Fallback phase: per-word, no grouping.
	for _, e := range unresolved {
		rec, err := c.resolveFallback(ctx, e.norm)
		if err != nil {
			return nil, err
		}
		results[e.word] = rec
	}

	found := 0
	for _, rec := range results {
		if rec != nil {
			found++
		}
	}
	c.metrics.RecordBatchLookup(len(results), len(results)-found, time.Since(start))
	c.logger.LogBatchLookup(ctx, len(results), found)
	return results, nil
}

// CacheStats returns a snapshot of the shard cache counters.
func (c *Corpus) CacheStats() cache.Stats {
	return c.cache.Stats()
}

// Close releases cached shards. The Corpus must not be used afterwards.
func (c *Corpus) Close() error {
	c.cache.Purge()
	return nil
}

// resolve runs the full per-word state machine: direct lookup, then the
// fallback chain. Terminal states are a record or nil.
func (c *Corpus) resolve(ctx context.Context, norm string) (*model.FrequencyRecord, error) {
	rec, ok, err := c.direct(ctx, norm)
	if err != nil {
		return nil, err
	}
	if ok {
		return &rec, nil
	}
	return c.resolveFallback(ctx, norm)
}

// resolveFallback applies the fallback chain to a word that missed its
// direct lookup. Contraction/possessive stripping is tried before hyphen
// decomposition; the first branch that resolves wins.
func (c *Corpus) resolveFallback(ctx context.Context, norm string) (*model.FrequencyRecord, error) {
	if stem, _, ok := fallback.SplitContraction(norm); ok {
		rec, found, err := c.direct(ctx, stem)
		if err != nil {
			return nil, err
		}
		if found {
			// The contraction carries no independent frequency; the stem's
			// statistics stand in for it.
			return &rec, nil
		}
	}

	if parts, ok := fallback.SplitHyphenated(norm); ok {
		// A compound only counts as present when every part resolves. The
		// surfaced record is the first part's, deliberately not a
		// combination of the parts.
		var first model.FrequencyRecord
		for i, part := range parts {
			rec, found, err := c.direct(ctx, part)
			if err != nil {
				return nil, err
			}
			if !found {
				return nil, nil
			}
			if i == 0 {
				first = rec
			}
		}
		return &first, nil
	}

	return nil, nil
}

// direct performs one exact lookup through the hasher and shard cache. A
// missing shard file is an absence, not an error.
func (c *Corpus) direct(ctx context.Context, word string) (model.FrequencyRecord, bool, error) {
	key := shard.KeyOf(word)

	table, err := c.cache.Get(ctx, key.Prefix)
	if err != nil {
		if errors.Is(err, cache.ErrShardNotFound) {
			return model.FrequencyRecord{}, false, nil
		}
		return model.FrequencyRecord{}, false, err
	}

	rec, ok := table.Lookup(key.Suffix)
	return rec, ok, nil
}

// loadShard is the cache's LoadFunc: it reads one shard file from the blob
// store and decodes it.
func (c *Corpus) loadShard(ctx context.Context, prefix string) (*shard.Table, error) {
	start := time.Now()

	blob, err := c.store.Open(ctx, dataset.ShardFileName(prefix))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			err = fmt.Errorf("%w: prefix %q", cache.ErrShardNotFound, prefix)
		}
		c.metrics.RecordShardLoad(time.Since(start), err)
		return nil, err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		c.metrics.RecordShardLoad(time.Since(start), err)
		return nil, err
	}

	table, err := c.codec.Decode(data)
	c.metrics.RecordShardLoad(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("ngramgo: decode shard %q: %w", prefix, err)
	}
	return table, nil
}
