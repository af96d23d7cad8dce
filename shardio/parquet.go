package shardio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/parquet-go"

	"github.com/hupe1980/ngramgo/model"
	"github.com/hupe1980/ngramgo/shard"
)

// Parquet reads and writes shard files in Apache Parquet format, the format
// the corpus is distributed in.
type Parquet struct{}

// Name returns "parquet".
func (Parquet) Name() string { return "parquet" }

// Decode parses a Parquet shard file. Every row is validated; a negative
// statistic means the file is corrupt, not merely missing.
func (Parquet) Decode(data []byte) (*shard.Table, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("shardio: open parquet: %w", err)
	}

	records := make(map[string]model.FrequencyRecord, f.NumRows())
	buf := make([]Row, 1024)

	for _, rg := range f.RowGroups() {
		r := parquet.NewGenericRowGroupReader[Row](rg)
		for {
			n, err := r.Read(buf)
			for _, row := range buf[:n] {
				rec := model.FrequencyRecord{
					PeakTF: row.PeakTF,
					PeakDF: row.PeakDF,
					SumTF:  row.SumTF,
					SumDF:  row.SumDF,
				}
				if verr := rec.Validate(); verr != nil {
					return nil, fmt.Errorf("shardio: row %q: %w", row.Hash, verr)
				}
				records[row.Hash] = rec
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("shardio: read parquet rows: %w", err)
			}
		}
	}

	return shard.NewTable(records), nil
}

// Encode writes rows as a single-row-group Parquet file.
func (Parquet) Encode(w io.Writer, rows []Row) error {
	pw := parquet.NewGenericWriter[Row](w)
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			return fmt.Errorf("shardio: write parquet rows: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("shardio: close parquet writer: %w", err)
	}
	return nil
}
