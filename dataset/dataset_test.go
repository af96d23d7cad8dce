package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixes(t *testing.T) {
	prefixes := Prefixes()

	require.Len(t, prefixes, NumShards)
	assert.Equal(t, "00", prefixes[0])
	assert.Equal(t, "0f", prefixes[15])
	assert.Equal(t, "ff", prefixes[255])
}

func TestShardFileName(t *testing.T) {
	assert.Equal(t, "a3.parquet", ShardFileName("a3"))
}

func TestDataset_InstalledEmptyDir(t *testing.T) {
	d := New(t.TempDir())
	assert.False(t, d.Installed())
}

func TestDataset_InstalledMissingDir(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "nope"))
	assert.False(t, d.Installed())
}

func TestDataset_InstalledViaManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte("{}"), 0o644))

	d := New(dir)
	assert.True(t, d.Installed())
}

func TestDataset_InstalledViaShardFiles(t *testing.T) {
	dir := t.TempDir()
	d := New(dir)

	for _, prefix := range Prefixes() {
		require.NoError(t, os.WriteFile(d.ShardPath(prefix), []byte("x"), 0o644))
	}

	assert.True(t, d.Installed())
}

func TestDataset_InstalledPartial(t *testing.T) {
	dir := t.TempDir()
	d := New(dir)

	// All but one shard present.
	for _, prefix := range Prefixes()[:NumShards-1] {
		require.NoError(t, os.WriteFile(d.ShardPath(prefix), []byte("x"), 0o644))
	}

	assert.False(t, d.Installed())
}

func TestManifest_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	d := New(dir)

	m := &Manifest{
		Version: ManifestVersion,
		Shards: []ShardInfo{
			{Name: "00.parquet", Size: 42, Checksum: 1234},
		},
	}
	require.NoError(t, d.WriteManifest(m))

	got, err := d.LoadManifest()
	require.NoError(t, err)
	assert.Equal(t, m.Shards, got.Shards)
	assert.Equal(t, ManifestVersion, got.Version)
}

func TestManifest_UnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	d := New(dir)

	require.NoError(t, os.WriteFile(d.ManifestPath(), []byte(`{"version": 99}`), 0o644))

	_, err := d.LoadManifest()
	assert.Error(t, err)
}
