// Package mmap provides read-only memory mapping of files, with a portable
// fallback that reads the file into memory on platforms without mmap
// support.
package mmap

import "os"

// Mapping is a read-only view of a file's contents. The byte slice returned
// by Bytes is valid until Close.
type Mapping struct {
	data   []byte
	mapped bool
}

// Open maps the file at path read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &Mapping{data: nil}, nil
	}

	return openMapping(f, int(size))
}

// Bytes returns the mapped contents. Callers must treat the slice as
// read-only and must not retain it past Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Close releases the mapping.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	if m.mapped {
		return munmap(data)
	}
	return nil
}
