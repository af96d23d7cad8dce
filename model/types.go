package model

import "fmt"

// FrequencyRecord holds the aggregate frequency statistics for a single
// vocabulary entry.
//
// PeakTF and PeakDF are time-bucket indices (the decade with the highest
// term/document frequency), not frequencies themselves. SumTF and SumDF
// are totals across all time buckets.
type FrequencyRecord struct {
	PeakTF int64
	PeakDF int64
	SumTF  int64
	SumDF  int64
}

// Validate checks the record invariants. All fields must be non-negative.
func (r FrequencyRecord) Validate() error {
	if r.PeakTF < 0 || r.PeakDF < 0 {
		return fmt.Errorf("model: negative peak bucket index (peak_tf=%d, peak_df=%d)", r.PeakTF, r.PeakDF)
	}
	if r.SumTF < 0 || r.SumDF < 0 {
		return fmt.Errorf("model: negative frequency sum (sum_tf=%d, sum_df=%d)", r.SumTF, r.SumDF)
	}
	return nil
}

// String returns a compact representation, useful in logs and CLI output.
func (r FrequencyRecord) String() string {
	return fmt.Sprintf("Freq(peak_tf=%d peak_df=%d sum_tf=%d sum_df=%d)", r.PeakTF, r.PeakDF, r.SumTF, r.SumDF)
}
