package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_OpenAndRead(t *testing.T) {
	store := NewMemoryStore()
	store.Put("aa.parquet", []byte("hello shard"))

	ctx := context.Background()

	blob, err := store.Open(ctx, "aa.parquet")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(11), blob.Size())

	data, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, "hello shard", string(data))
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_OpenIsolatedFromPut(t *testing.T) {
	store := NewMemoryStore()
	store.Put("aa", []byte("before"))

	ctx := context.Background()

	blob, err := store.Open(ctx, "aa")
	require.NoError(t, err)
	defer blob.Close()

	// Overwriting after Open must not affect the open blob.
	store.Put("aa", []byte("after!"))

	data, err := ReadAll(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, "before", string(data))
}

func TestMemoryStore_List(t *testing.T) {
	store := NewMemoryStore()
	store.Put("aa.parquet", []byte("1"))
	store.Put("ab.parquet", []byte("2"))
	store.Put("ff.parquet", []byte("3"))

	names, err := store.List(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"aa.parquet", "ab.parquet"}, names)
}
