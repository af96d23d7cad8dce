package shard

import "github.com/hupe1980/ngramgo/model"

// Table is an immutable in-memory shard: a mapping from row suffix to its
// frequency record, loaded in full from one shard file. Tables are never
// mutated after construction, so concurrent readers need no locking.
type Table struct {
	records map[string]model.FrequencyRecord
}

// NewTable creates a Table over the given records. The map is owned by the
// Table after the call; callers must not mutate it.
func NewTable(records map[string]model.FrequencyRecord) *Table {
	if records == nil {
		records = make(map[string]model.FrequencyRecord)
	}
	return &Table{records: records}
}

// Lookup returns the record for a row suffix, if present.
func (t *Table) Lookup(suffix string) (model.FrequencyRecord, bool) {
	rec, ok := t.records[suffix]
	return rec, ok
}

// LookupMany resolves multiple suffixes in one call. Only suffixes present
// in the table appear in the result. It is observably identical to calling
// Lookup in a loop; it exists so batch lookups touch the table once per
// shard.
func (t *Table) LookupMany(suffixes []string) map[string]model.FrequencyRecord {
	result := make(map[string]model.FrequencyRecord, len(suffixes))
	for _, s := range suffixes {
		if rec, ok := t.records[s]; ok {
			result[s] = rec
		}
	}
	return result
}

// Len returns the number of rows in the shard.
func (t *Table) Len() int {
	return len(t.records)
}
