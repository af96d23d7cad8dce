//go:build !unix

package mmap

import (
	"io"
	"os"
)

// Fallback for platforms without mmap: read the file into memory. Shard
// files are loaded in full anyway, so this only costs one extra copy.
func openMapping(f *os.File, size int) (*Mapping, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return &Mapping{data: data, mapped: false}, nil
}

func munmap(data []byte) error {
	return nil
}
