// Package shard implements the hash-based addressing of the corpus and the
// read-only in-memory shard table.
//
// A word maps to a Key via an MD5 digest of its normalized form: the first
// two hex digits select one of 256 shard files, the remaining thirty are the
// row key within that shard.
package shard
