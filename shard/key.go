package shard

import (
	"crypto/md5"
	"encoding/hex"
)

// PrefixLen is the number of leading hex digits of the word digest that
// select the shard file. With MD5 this yields 256 shards ("00" .. "ff").
const PrefixLen = 2

// Key addresses a single row in the corpus: Prefix selects the shard file,
// Suffix is the row key inside that shard. Prefix+Suffix is the full hex
// digest of the normalized word.
type Key struct {
	Prefix string
	Suffix string
}

// KeyOf hashes a word into its shard key.
//
// The word must already be normalized by the caller; KeyOf itself performs
// no case folding. MD5 is used for uniform shard distribution only, not for
// any security property. KeyOf is pure and total, including for the empty
// string.
func KeyOf(word string) Key {
	sum := md5.Sum([]byte(word))
	digest := hex.EncodeToString(sum[:])
	return Key{
		Prefix: digest[:PrefixLen],
		Suffix: digest[PrefixLen:],
	}
}

// String returns the full hex digest.
func (k Key) String() string {
	return k.Prefix + k.Suffix
}
