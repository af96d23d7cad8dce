// Package dataset manages the on-disk layout of the corpus: shard file
// naming, the install manifest, and the installed check the lookup engine
// gates on.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
)

const (
	// NumShards is the number of shard files in a complete corpus, one per
	// two-digit hex prefix.
	NumShards = 256

	// ShardFileExt is the extension of an installed shard file.
	ShardFileExt = ".parquet"

	// ManifestFileName is written by the installer after a verified install.
	ManifestFileName = "MANIFEST.json"
)

// ShardFileName returns the file name of the shard for a prefix, e.g.
// "a3.parquet".
func ShardFileName(prefix string) string {
	return prefix + ShardFileExt
}

// Prefixes returns all shard prefixes "00" through "ff" in order.
func Prefixes() []string {
	prefixes := make([]string, 0, NumShards)
	for i := 0; i < NumShards; i++ {
		prefixes = append(prefixes, fmt.Sprintf("%02x", i))
	}
	return prefixes
}

// Dataset is a corpus data directory.
type Dataset struct {
	dir string

	// installed caches a positive check; installation is monotonic for the
	// life of the process.
	installed atomic.Bool
}

// New creates a Dataset rooted at dir. The directory need not exist yet.
func New(dir string) *Dataset {
	return &Dataset{dir: dir}
}

// Dir returns the data directory.
func (d *Dataset) Dir() string {
	return d.dir
}

// ManifestPath returns the path of the install manifest.
func (d *Dataset) ManifestPath() string {
	return filepath.Join(d.dir, ManifestFileName)
}

// ShardPath returns the path of the shard file for a prefix.
func (d *Dataset) ShardPath(prefix string) string {
	return filepath.Join(d.dir, ShardFileName(prefix))
}

// Installed reports whether the corpus is present. The fast path is the
// install manifest; without one, all shard files must exist. A positive
// result is cached.
func (d *Dataset) Installed() bool {
	if d.installed.Load() {
		return true
	}
	if _, err := os.Stat(d.ManifestPath()); err == nil {
		d.installed.Store(true)
		return true
	}
	for _, prefix := range Prefixes() {
		if _, err := os.Stat(d.ShardPath(prefix)); err != nil {
			return false
		}
	}
	d.installed.Store(true)
	return true
}

// markInstalled records a completed install without re-scanning the
// directory.
func (d *Dataset) markInstalled() {
	d.installed.Store(true)
}
