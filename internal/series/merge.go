package series

import "time"

// Table is the merged artifact: rows indexed by minute timestamp over the
// intersection of all source ranges, columns the union of all source
// channels. A Table with zero rows is valid; it means no comparable window
// exists across the sources.
type Table struct {
	Start    time.Time
	Channels []Channel
	Columns  map[Channel][]Value
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.Channels) == 0 {
		return 0
	}
	return len(t.Columns[t.Channels[0]])
}

// TimeAt returns the timestamp of row i.
func (t *Table) TimeAt(i int) time.Time {
	return t.Start.Add(time.Duration(i) * Bucket)
}

// Merge combines resampled series column-wise over the intersection of their
// time ranges: start = max of first timestamps, end = min of last timestamps.
// Each input is truncated to [start, end] and contributes its channels
// unchanged; sources own disjoint channel names so columns never collide.
//
// When the ranges do not overlap the result has zero rows but the full union
// of columns. That is a legitimate terminal state, not an error.
func Merge(inputs ...*Series) *Table {
	t := &Table{Columns: make(map[Channel][]Value)}
	if len(inputs) == 0 {
		return t
	}

	start := inputs[0].Start
	end := inputs[0].End()
	for _, s := range inputs[1:] {
		if s.Start.After(start) {
			start = s.Start
		}
		if e := s.End(); e.Before(end) {
			end = e
		}
	}
	t.Start = start

	for _, s := range inputs {
		t.Channels = append(t.Channels, s.Channels...)
	}

	if end.Before(start) {
		for _, s := range inputs {
			for _, ch := range s.Channels {
				t.Columns[ch] = []Value{}
			}
		}
		return t
	}

	n := int(end.Sub(start)/Bucket) + 1
	for _, s := range inputs {
		off := int(start.Sub(s.Start) / Bucket)
		for _, ch := range s.Channels {
			col := make([]Value, n)
			copy(col, s.Columns[ch][off:off+n])
			t.Columns[ch] = col
		}
	}
	return t
}
