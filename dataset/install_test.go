package dataset

import (
	"bytes"
	"context"
	"hash/crc32"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ngramgo/blobstore"
)

func seedSource(t *testing.T) *blobstore.MemoryStore {
	t.Helper()

	store := blobstore.NewMemoryStore()
	for _, prefix := range Prefixes() {
		store.Put(ShardFileName(prefix), []byte("shard-"+prefix))
	}
	return store
}

func noopLogger() func(o *InstallOptions) {
	return func(o *InstallOptions) {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

func TestInstaller_Install(t *testing.T) {
	source := seedSource(t)
	dest := New(t.TempDir())

	inst := NewInstaller(source, dest, noopLogger())

	manifest, err := inst.Install(context.Background())
	require.NoError(t, err)
	require.Len(t, manifest.Shards, NumShards)

	assert.True(t, dest.Installed())

	// Shards land decoded under their canonical names, checksummed.
	data, err := os.ReadFile(dest.ShardPath("a7"))
	require.NoError(t, err)
	assert.Equal(t, []byte("shard-a7"), data)

	for _, info := range manifest.Shards {
		if info.Name == "a7.parquet" {
			assert.Equal(t, crc32.ChecksumIEEE(data), info.Checksum)
			assert.Equal(t, int64(len(data)), info.Size)
		}
	}

	// The manifest is persisted and loads back.
	loaded, err := dest.LoadManifest()
	require.NoError(t, err)
	assert.Equal(t, manifest.Shards, loaded.Shards)
}

func TestInstaller_DecompressesZstd(t *testing.T) {
	source := blobstore.NewMemoryStore()
	payload := []byte("zstd shard payload")

	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	for _, prefix := range Prefixes() {
		source.Put(ShardFileName(prefix)+".zst", buf.Bytes())
	}

	dest := New(t.TempDir())
	_, err = NewInstaller(source, dest, noopLogger()).Install(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(dest.ShardPath("00"))
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestInstaller_DecompressesLZ4(t *testing.T) {
	source := blobstore.NewMemoryStore()
	payload := []byte("lz4 shard payload")

	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	for _, prefix := range Prefixes() {
		source.Put(ShardFileName(prefix)+".lz4", buf.Bytes())
	}

	dest := New(t.TempDir())
	_, err = NewInstaller(source, dest, noopLogger()).Install(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(dest.ShardPath("ff"))
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestInstaller_MissingShard(t *testing.T) {
	source := seedSource(t)
	source.Delete(ShardFileName("c3"))

	dest := New(t.TempDir())
	_, err := NewInstaller(source, dest, noopLogger()).Install(context.Background())
	require.ErrorIs(t, err, ErrShardMissing)

	// No manifest after a failed install.
	_, err = dest.LoadManifest()
	assert.Error(t, err)
}

func TestInstaller_InstallFromLocalDirectory(t *testing.T) {
	// A directory source serves mmap-backed blobs; the fetched bytes must
	// survive the blob being closed and unmapped.
	srcDir := t.TempDir()
	big := bytes.Repeat([]byte("shard-00 "), 128*1024)
	for _, prefix := range Prefixes() {
		payload := []byte("shard-" + prefix)
		if prefix == "00" {
			payload = big
		}
		require.NoError(t, os.WriteFile(filepath.Join(srcDir, ShardFileName(prefix)), payload, 0o644))
	}

	dest := New(t.TempDir())
	source := blobstore.NewLocalStore(srcDir)

	manifest, err := NewInstaller(source, dest, noopLogger()).Install(context.Background())
	require.NoError(t, err)
	require.Len(t, manifest.Shards, NumShards)
	assert.True(t, dest.Installed())

	data, err := os.ReadFile(dest.ShardPath("00"))
	require.NoError(t, err)
	require.Equal(t, big, data)

	for _, info := range manifest.Shards {
		if info.Name == ShardFileName("00") {
			assert.Equal(t, int64(len(big)), info.Size)
			assert.Equal(t, crc32.ChecksumIEEE(big), info.Checksum)
		}
	}
}

func TestInstaller_ResumeKeepsExistingShards(t *testing.T) {
	source := seedSource(t)
	// Absent from the source, but already on disk from a prior run.
	source.Delete(ShardFileName("c3"))

	dest := New(t.TempDir())
	require.NoError(t, os.WriteFile(dest.ShardPath("c3"), []byte("local copy"), 0o644))

	manifest, err := NewInstaller(source, dest, noopLogger()).Install(context.Background())
	require.NoError(t, err)
	require.Len(t, manifest.Shards, NumShards)

	data, err := os.ReadFile(dest.ShardPath("c3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("local copy"), data)
}
