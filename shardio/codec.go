// Package shardio centralizes shard file encoding and decoding.
//
// The corpus format is a boundary: a shard file is a columnar table keyed by
// a hash suffix, and everything beyond that (container format, compression,
// column encodings) is the codec's business. The default codec reads the
// Parquet files the corpus is published as.
package shardio

import (
	"io"

	"github.com/hupe1980/ngramgo/shard"
)

// Row is the columnar schema of one shard file row. Column names match the
// published corpus files.
type Row struct {
	Hash   string `parquet:"hash"`
	PeakTF int64  `parquet:"peak_tf"`
	PeakDF int64  `parquet:"peak_df"`
	SumTF  int64  `parquet:"sum_tf"`
	SumDF  int64  `parquet:"sum_df"`
}

// Codec decodes shard files into tables. Encode exists for fixture
// generation and tooling; the lookup engine itself never writes.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Decode parses a complete shard file into an immutable table.
	Decode(data []byte) (*shard.Table, error)
	// Encode writes rows as a shard file.
	Encode(w io.Writer, rows []Row) error
	// Name returns the stable name of the codec.
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = Parquet{}
