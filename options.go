package ngramgo

import (
	"github.com/hupe1980/ngramgo/blobstore"
	"github.com/hupe1980/ngramgo/cache"
	"github.com/hupe1980/ngramgo/shardio"
)

type options struct {
	cacheSize int
	logger    *Logger
	metrics   MetricsCollector
	normalize Normalizer
	store     blobstore.BlobStore
	codec     shardio.Codec
	installed func() bool
}

// Option configures Corpus construction.
type Option func(*options)

func applyOptions(optFns []Option) options {
	opts := options{
		cacheSize: cache.DefaultCapacity,
		metrics:   NoopMetricsCollector{},
		normalize: DefaultNormalizer,
		codec:     shardio.Default,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = NewLogger(nil)
	}
	return opts
}

// WithCacheSize configures the maximum number of resident shard tables.
// The default is 256, which keeps the entire corpus resident once touched.
// Lower values bound memory at the cost of reloads under skewed access.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithLogger configures the logger. Pass NoopLogger() to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// lookups and shard loads.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithNormalizer overrides word normalization. The normalizer must at
// minimum lower-case its input; it is applied uniformly before hashing and
// before fallback splitting.
func WithNormalizer(n Normalizer) Option {
	return func(o *options) {
		if n != nil {
			o.normalize = n
		}
	}
}

// WithBlobStore overrides the backing storage for shard files. The default
// reads the data directory passed to Open. Combine with WithInstalledCheck
// when the store is not directory-backed.
func WithBlobStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCodec configures the shard file codec. If nil is passed,
// shardio.Default is used.
func WithCodec(c shardio.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = shardio.Default
		}
		o.codec = c
	}
}

// WithInstalledCheck overrides the corpus-installed probe that gates every
// lookup entry point.
func WithInstalledCheck(fn func() bool) Option {
	return func(o *options) {
		o.installed = fn
	}
}
