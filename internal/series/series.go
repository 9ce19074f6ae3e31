// Package series implements the reconciliation engine: it resamples
// irregularly-timestamped device records onto a one-minute grid and merges the
// per-source grids over their common time range.
//
// The engine is pure and single-threaded. Readers in internal/source produce
// RawRecords; Resample turns one source's records into a gap-free Series;
// Merge intersects the ranges of several Series and combines their channels
// column-wise into a Table.
package series

import "time"

// Bucket is the fixed resampling interval. All grid timestamps are aligned to
// multiples of this from the Unix epoch.
const Bucket = time.Minute

// Channel names one scalar signal owned by exactly one source.
type Channel string

// Value is a single cell: a measurement that may be absent. Absence is carried
// explicitly rather than through a numeric sentinel, so a real zero and a
// missing reading can never be confused.
type Value struct {
	V  float64
	OK bool
}

// Some returns a present Value.
func Some(v float64) Value { return Value{V: v, OK: true} }

// None returns an absent Value.
func None() Value { return Value{} }

// RawRecord is one observation as emitted by a source reader, in the source's
// native time resolution. Timestamps need not be unique, sorted, or evenly
// spaced. Channels absent from Values had no reading at this instant.
type RawRecord struct {
	Time   time.Time
	Values map[Channel]float64
}

// Series is the minute-aligned grid for one source. Row i sits at
// Start.Add(i * Bucket); consecutive rows are exactly one Bucket apart with no
// gaps and no duplicates, covering the closed interval from the earliest to
// the latest raw bucket. Every column has exactly Len() cells.
type Series struct {
	Start    time.Time
	Channels []Channel
	Columns  map[Channel][]Value
}

// Len returns the number of rows in the grid.
func (s *Series) Len() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Columns[s.Channels[0]])
}

// End returns the timestamp of the last row. Only valid for non-empty series,
// which is all Resample ever produces.
func (s *Series) End() time.Time {
	return s.Start.Add(time.Duration(s.Len()-1) * Bucket)
}

// TimeAt returns the timestamp of row i.
func (s *Series) TimeAt(i int) time.Time {
	return s.Start.Add(time.Duration(i) * Bucket)
}
