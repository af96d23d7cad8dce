package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_OpenAndRead(t *testing.T) {
	tmpDir := t.TempDir()
	data := []byte("columnar shard contents")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "aa.parquet"), data, 0o644))

	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	blob, err := store.Open(ctx, "aa.parquet")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	// Zero-copy path via Mappable.
	_, ok := blob.(Mappable)
	assert.True(t, ok)

	got, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Partial ReadAt.
	buf := make([]byte, 8)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "columnar", string(buf))
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(context.Background(), "missing.parquet")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_List(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "aa.parquet"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ab.parquet"), []byte("2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ff.parquet"), []byte("3"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "aa-dir"), 0o755))

	store := NewLocalStore(tmpDir)

	names, err := store.List(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"aa.parquet", "ab.parquet"}, names)

	// Missing root directory lists empty, not an error.
	empty := NewLocalStore(filepath.Join(tmpDir, "nope"))
	names, err = empty.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "aa.parquet"), nil, 0o644))

	store := NewLocalStore(tmpDir)

	blob, err := store.Open(context.Background(), "aa.parquet")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(0), blob.Size())
}
