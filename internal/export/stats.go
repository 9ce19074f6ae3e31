package export

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/oximetry.report/internal/series"
)

// ChannelSummary describes one channel over the merged window. Count is the
// number of present cells; the moments cover present cells only.
type ChannelSummary struct {
	Channel series.Channel
	Count   int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

// Summarize computes per-channel summary statistics for the merged table, in
// column order.
func Summarize(t *series.Table) []ChannelSummary {
	out := make([]ChannelSummary, 0, len(t.Channels))
	for _, ch := range t.Channels {
		var vals []float64
		for _, v := range t.Columns[ch] {
			if v.OK {
				vals = append(vals, v.V)
			}
		}
		s := ChannelSummary{Channel: ch, Count: len(vals)}
		if len(vals) > 0 {
			s.Mean = stat.Mean(vals, nil)
			s.Min = floats.Min(vals)
			s.Max = floats.Max(vals)
		}
		if len(vals) > 1 {
			s.StdDev = stat.StdDev(vals, nil)
		}
		out = append(out, s)
	}
	return out
}

// Comparison relates two channels measuring the same quantity on different
// devices, over the minutes where both are present.
type Comparison struct {
	A, B  series.Channel
	Pairs int

	// MeanBias is mean(A - B) over paired minutes.
	MeanBias float64

	// Correlation is the Pearson correlation over paired minutes; zero when
	// fewer than two pairs exist.
	Correlation float64
}

// Compare pairs channels a and b row-wise and reports bias and correlation.
func Compare(t *series.Table, a, b series.Channel) Comparison {
	c := Comparison{A: a, B: b}
	ca, okA := t.Columns[a]
	cb, okB := t.Columns[b]
	if !okA || !okB {
		return c
	}

	var xs, ys, diffs []float64
	for i := range ca {
		if ca[i].OK && cb[i].OK {
			xs = append(xs, ca[i].V)
			ys = append(ys, cb[i].V)
			diffs = append(diffs, ca[i].V-cb[i].V)
		}
	}
	c.Pairs = len(xs)
	if len(xs) > 0 {
		c.MeanBias = stat.Mean(diffs, nil)
	}
	if len(xs) > 1 {
		c.Correlation = stat.Correlation(xs, ys, nil)
	}
	return c
}
