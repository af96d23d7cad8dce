package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/ngramgo/blobstore"
)

// ErrShardMissing is returned by Install when the source store has no
// object for a shard prefix in any supported encoding.
var ErrShardMissing = errors.New("dataset: source shard missing")

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// sourceSuffixes are the object name suffixes probed per shard, in order.
// Mirrors publish corpora either raw or compressed.
var sourceSuffixes = []string{"", ".zst", ".lz4"}

// InstallOptions configures an Installer.
type InstallOptions struct {
	// Concurrency bounds the number of parallel shard downloads.
	Concurrency int
	// Limiter, when set, throttles download starts.
	Limiter *rate.Limiter
	// Logger receives install progress logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Installer copies the corpus shard files from a source blob store into a
// local data directory, decompressing and checksumming along the way. This
// is the only write path in the module; the lookup engine is strictly
// read-only.
type Installer struct {
	source blobstore.BlobStore
	dest   *Dataset
	opts   InstallOptions
}

// NewInstaller creates an Installer from source into dest.
func NewInstaller(source blobstore.BlobStore, dest *Dataset, optFns ...func(o *InstallOptions)) *Installer {
	opts := InstallOptions{
		Concurrency: 8,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Installer{
		source: source,
		dest:   dest,
		opts:   opts,
	}
}

// Install downloads all shard files, writes them into the data directory
// and records a manifest. It fails without a partial manifest if any shard
// cannot be fetched; already-written shard files are left in place so a
// rerun only fetches what is missing.
func (i *Installer) Install(ctx context.Context) (*Manifest, error) {
	if err := os.MkdirAll(i.dest.Dir(), 0o755); err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		shards []ShardInfo
	)

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(i.opts.Concurrency)

	for _, prefix := range Prefixes() {
		g.Go(func() error {
			info, err := i.installShard(ctx, prefix)
			if err != nil {
				return fmt.Errorf("shard %s: %w", prefix, err)
			}
			mu.Lock()
			shards = append(shards, *info)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(shards, func(a, b int) bool { return shards[a].Name < shards[b].Name })

	manifest := &Manifest{
		Version:   ManifestVersion,
		CreatedAt: time.Now().UTC(),
		Shards:    shards,
	}
	if err := i.dest.WriteManifest(manifest); err != nil {
		return nil, err
	}
	i.dest.markInstalled()

	i.opts.Logger.InfoContext(ctx, "corpus installed",
		"shards", len(shards),
		"dir", i.dest.Dir(),
		"elapsed", time.Since(start),
	)
	return manifest, nil
}

func (i *Installer) installShard(ctx context.Context, prefix string) (*ShardInfo, error) {
	name := ShardFileName(prefix)
	path := i.dest.ShardPath(prefix)

	// Keep shards from a previous partial install.
	if fi, err := os.Stat(path); err == nil && fi.Size() > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return &ShardInfo{Name: name, Size: fi.Size(), Checksum: crc32.ChecksumIEEE(data)}, nil
	}

	if i.opts.Limiter != nil {
		if err := i.opts.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	data, err := i.fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	data, err = decompress(data)
	if err != nil {
		return nil, err
	}

	if err := writeFileAtomic(path, data); err != nil {
		return nil, err
	}

	i.opts.Logger.DebugContext(ctx, "shard installed", "shard", name, "bytes", len(data))

	return &ShardInfo{
		Name:     name,
		Size:     int64(len(data)),
		Checksum: crc32.ChecksumIEEE(data),
	}, nil
}

func (i *Installer) fetch(ctx context.Context, name string) ([]byte, error) {
	for _, suffix := range sourceSuffixes {
		blob, err := i.source.Open(ctx, name+suffix)
		if errors.Is(err, blobstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		data, err := blobstore.ReadAll(ctx, blob)
		if err != nil {
			blob.Close()
			return nil, err
		}
		// Mappable blobs hand out their backing mapping; Close unmaps it, so
		// copy first.
		if _, mapped := blob.(blobstore.Mappable); mapped {
			data = bytes.Clone(data)
		}
		if err := blob.Close(); err != nil {
			return nil, err
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrShardMissing, name)
}

// decompress undoes transport compression, detected by magic bytes. Raw
// parquet passes through untouched.
func decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		r, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case bytes.HasPrefix(data, lz4Magic):
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return data, nil
	}
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".shard*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
