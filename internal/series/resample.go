package series

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a source yields zero records: without at
// least one sample no time range exists to resample over.
var ErrEmptyInput = errors.New("no records to resample")

// Resample converts one source's raw records into a minute-aligned Series.
//
// Every record timestamp is floored to the start of its containing bucket.
// For each bucket and channel the present values aggregate per the channel's
// policy; a bucket with no values for a channel yields a missing cell, not
// zero. The output covers every minute from the earliest to the latest bucket,
// inserting entirely-missing rows where no raw records fell, so the grid has
// no timestamp gaps. Channels with GapFill enabled then have interior gaps
// linearly interpolated.
func Resample(records []RawRecord, policies []ChannelPolicy) (*Series, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}
	if len(policies) == 0 {
		return nil, fmt.Errorf("resample: no channel policies given")
	}

	first := records[0].Time.Truncate(Bucket)
	last := first
	for _, r := range records[1:] {
		b := r.Time.Truncate(Bucket)
		if b.Before(first) {
			first = b
		}
		if b.After(last) {
			last = b
		}
	}
	n := int(last.Sub(first)/Bucket) + 1

	s := &Series{
		Start:    first,
		Channels: make([]Channel, 0, len(policies)),
		Columns:  make(map[Channel][]Value, len(policies)),
	}
	sums := make(map[Channel][]float64, len(policies))
	counts := make(map[Channel][]int, len(policies))
	for _, p := range policies {
		s.Channels = append(s.Channels, p.Channel)
		s.Columns[p.Channel] = make([]Value, n)
		sums[p.Channel] = make([]float64, n)
		counts[p.Channel] = make([]int, n)
	}

	for _, r := range records {
		i := int(r.Time.Truncate(Bucket).Sub(first) / Bucket)
		for ch, v := range r.Values {
			if _, known := sums[ch]; !known {
				continue
			}
			sums[ch][i] += v
			counts[ch][i]++
		}
	}

	for _, p := range policies {
		col := s.Columns[p.Channel]
		for i := range col {
			if c := counts[p.Channel][i]; c > 0 {
				// AggregateMean is the only aggregation today; the policy
				// field exists so callers state the choice explicitly.
				col[i] = Some(sums[p.Channel][i] / float64(c))
			}
		}
		if p.GapFill {
			fillLinear(col)
		}
	}

	return s, nil
}

// fillLinear interpolates interior missing cells between the nearest known
// neighbours. Leading and trailing gaps are left missing: values are never
// fabricated outside the channel's known range.
func fillLinear(col []Value) {
	prev := -1
	for i, v := range col {
		if !v.OK {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			a, b := col[prev].V, v.V
			span := float64(i - prev)
			for j := prev + 1; j < i; j++ {
				f := float64(j-prev) / span
				col[j] = Some(a + f*(b-a))
			}
		}
		prev = i
	}
}
