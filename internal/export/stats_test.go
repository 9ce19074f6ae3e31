package export

import (
	"math"
	"testing"

	"github.com/banshee-data/oximetry.report/internal/series"
	"github.com/banshee-data/oximetry.report/internal/testutil"
)

func TestSummarize(t *testing.T) {
	table := &series.Table{
		Start:    testutil.Minute(t, "2024-03-09 23:00"),
		Channels: []series.Channel{"heart_rate", "garmin_spo2"},
		Columns: map[series.Channel][]series.Value{
			"heart_rate":  {series.Some(60), series.Some(64), series.Some(68)},
			"garmin_spo2": {series.Some(95), series.None(), series.None()},
		},
	}

	sums := Summarize(table)
	if len(sums) != 2 {
		t.Fatalf("got %d summaries, want 2", len(sums))
	}

	hr := sums[0]
	if hr.Channel != "heart_rate" || hr.Count != 3 {
		t.Errorf("heart_rate summary = %+v", hr)
	}
	if math.Abs(hr.Mean-64) > 1e-9 {
		t.Errorf("Mean = %v, want 64", hr.Mean)
	}
	if math.Abs(hr.StdDev-4) > 1e-9 {
		t.Errorf("StdDev = %v, want 4", hr.StdDev)
	}
	if hr.Min != 60 || hr.Max != 68 {
		t.Errorf("Min/Max = %v/%v, want 60/68", hr.Min, hr.Max)
	}

	spo2 := sums[1]
	if spo2.Count != 1 {
		t.Errorf("garmin_spo2 Count = %d, want 1 (missing cells excluded)", spo2.Count)
	}
	if spo2.StdDev != 0 {
		t.Errorf("single-sample StdDev = %v, want 0", spo2.StdDev)
	}
}

func TestCompare(t *testing.T) {
	table := &series.Table{
		Start:    testutil.Minute(t, "2024-03-09 23:00"),
		Channels: []series.Channel{"garmin_spo2", "o2ring_spo2"},
		Columns: map[series.Channel][]series.Value{
			"garmin_spo2": {series.Some(96), series.Some(95), series.None(), series.Some(94)},
			"o2ring_spo2": {series.Some(95), series.Some(94), series.Some(93), series.Some(93)},
		},
	}

	c := Compare(table, "garmin_spo2", "o2ring_spo2")
	if c.Pairs != 3 {
		t.Fatalf("Pairs = %d, want 3 (row with missing cell excluded)", c.Pairs)
	}
	if math.Abs(c.MeanBias-1) > 1e-9 {
		t.Errorf("MeanBias = %v, want 1", c.MeanBias)
	}
	// Both channels fall by one together, so correlation is exactly 1.
	if math.Abs(c.Correlation-1) > 1e-9 {
		t.Errorf("Correlation = %v, want 1", c.Correlation)
	}
}

func TestCompareAbsentChannel(t *testing.T) {
	table := &series.Table{
		Channels: []series.Channel{"garmin_spo2"},
		Columns: map[series.Channel][]series.Value{
			"garmin_spo2": {series.Some(95)},
		},
	}
	c := Compare(table, "garmin_spo2", "o2ring_spo2")
	if c.Pairs != 0 {
		t.Errorf("Pairs = %d, want 0 for absent channel", c.Pairs)
	}
}
