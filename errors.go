package ngramgo

import "errors"

// ErrDataNotInstalled is returned by every lookup entry point when the
// corpus data directory is absent or incomplete. It is checked before any
// hashing or shard access, and is never silently converted into a "word
// absent" result.
var ErrDataNotInstalled = errors.New("corpus data not installed (run ngramgo install)")
