package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ManifestVersion is bumped on incompatible manifest layout changes.
const ManifestVersion = 1

// ShardInfo describes one installed shard file.
type ShardInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Checksum uint32 `json:"crc32"`
}

// Manifest records the outcome of a verified install.
type Manifest struct {
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	Shards    []ShardInfo `json:"shards"`
}

// LoadManifest reads the install manifest.
func (d *Dataset) LoadManifest() (*Manifest, error) {
	data, err := os.ReadFile(d.ManifestPath())
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("dataset: parse manifest: %w", err)
	}
	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("dataset: unsupported manifest version %d", m.Version)
	}
	return &m, nil
}

// WriteManifest atomically writes the install manifest (write to a temp
// file, then rename).
func (d *Dataset) WriteManifest(m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset: encode manifest: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, ManifestFileName+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), d.ManifestPath())
}
