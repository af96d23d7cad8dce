// Package blobstore abstracts read access to immutable shard files.
//
// The lookup engine reads shards through the BlobStore interface so the
// corpus can live on a local directory (LocalStore), in memory for tests
// (MemoryStore), or behind an object store (see the minio and s3
// subpackages, used by the installer as download sources).
package blobstore
