package series

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// mkSeries builds a grid starting at start with one cell per value.
func mkSeries(t *testing.T, start string, ch Channel, vals ...Value) *Series {
	t.Helper()
	return &Series{
		Start:    minute(t, start),
		Channels: []Channel{ch},
		Columns:  map[Channel][]Value{ch: vals},
	}
}

// ramp returns n present values counting up from first.
func ramp(first float64, n int) []Value {
	vals := make([]Value, n)
	for i := range vals {
		vals[i] = Some(first + float64(i))
	}
	return vals
}

func TestMergeIntersectsRanges(t *testing.T) {
	// 09:00-09:10 against 09:05-09:20 overlaps exactly on 09:05-09:10.
	a := mkSeries(t, "2024-03-09 09:00:00", "heart_rate", ramp(60, 11)...)
	b := mkSeries(t, "2024-03-09 09:05:00", "o2ring_pulse", ramp(80, 16)...)

	m := Merge(a, b)
	if got, want := m.Start, minute(t, "2024-03-09 09:05:00"); !got.Equal(want) {
		t.Errorf("Start = %v, want %v", got, want)
	}
	if got, want := m.Len(), 6; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}
	if got, want := m.TimeAt(m.Len()-1), minute(t, "2024-03-09 09:10:00"); !got.Equal(want) {
		t.Errorf("last timestamp = %v, want %v", got, want)
	}

	// Each column is truncated to the window with values intact.
	if diff := cmp.Diff(ramp(65, 6), m.Columns["heart_rate"]); diff != "" {
		t.Errorf("heart_rate mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ramp(80, 6), m.Columns["o2ring_pulse"]); diff != "" {
		t.Errorf("o2ring_pulse mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeNoOverlapYieldsEmptyTable(t *testing.T) {
	a := mkSeries(t, "2024-03-09 09:00:00", "heart_rate", ramp(60, 3)...)
	b := mkSeries(t, "2024-03-09 10:00:00", "o2ring_spo2", ramp(95, 3)...)

	m := Merge(a, b)
	if got := m.Len(); got != 0 {
		t.Fatalf("Len = %d, want 0", got)
	}
	want := []Channel{"heart_rate", "o2ring_spo2"}
	if diff := cmp.Diff(want, m.Channels); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	for _, ch := range want {
		if col, ok := m.Columns[ch]; !ok || len(col) != 0 {
			t.Errorf("column %s = %v, want present and empty", ch, col)
		}
	}
}

func TestMergeThreeSourcesDisjointColumns(t *testing.T) {
	a := mkSeries(t, "2024-03-09 09:00:00", "heart_rate", ramp(60, 5)...)
	b := &Series{
		Start:    minute(t, "2024-03-09 09:01:00"),
		Channels: []Channel{"garmin_spo2", "garmin_confidence"},
		Columns: map[Channel][]Value{
			"garmin_spo2":       ramp(94, 5),
			"garmin_confidence": ramp(1, 5),
		},
	}
	c := mkSeries(t, "2024-03-09 09:00:00", "o2ring_spo2", ramp(90, 4)...)

	m := Merge(a, b, c)
	wantCols := []Channel{"heart_rate", "garmin_spo2", "garmin_confidence", "o2ring_spo2"}
	if diff := cmp.Diff(wantCols, m.Channels); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}

	// Window is [09:01, 09:03]: max of starts, min of ends.
	if got, want := m.Start, minute(t, "2024-03-09 09:01:00"); !got.Equal(want) {
		t.Errorf("Start = %v, want %v", got, want)
	}
	if got, want := m.Len(), 3; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}

	// No cross-contamination: each column carries its own source's values.
	if diff := cmp.Diff(ramp(61, 3), m.Columns["heart_rate"]); diff != "" {
		t.Errorf("heart_rate mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ramp(94, 3), m.Columns["garmin_spo2"]); diff != "" {
		t.Errorf("garmin_spo2 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ramp(91, 3), m.Columns["o2ring_spo2"]); diff != "" {
		t.Errorf("o2ring_spo2 mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeIdenticalRanges(t *testing.T) {
	a := mkSeries(t, "2024-03-09 09:00:00", "heart_rate", ramp(60, 4)...)
	b := mkSeries(t, "2024-03-09 09:00:00", "o2ring_pulse", ramp(61, 4)...)

	m := Merge(a, b)
	if got, want := m.Len(), 4; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}
	for i := 0; i < m.Len(); i++ {
		if got, want := m.TimeAt(i), a.TimeAt(i); !got.Equal(want) {
			t.Errorf("TimeAt(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestMergePreservesMissingCells(t *testing.T) {
	a := mkSeries(t, "2024-03-09 09:00:00", "garmin_spo2",
		Some(95), None(), Some(93), None())
	b := mkSeries(t, "2024-03-09 09:00:00", "o2ring_spo2", ramp(90, 4)...)

	m := Merge(a, b)
	want := []Value{Some(95), None(), Some(93), None()}
	if diff := cmp.Diff(want, m.Columns["garmin_spo2"]); diff != "" {
		t.Errorf("garmin_spo2 mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeNoInputs(t *testing.T) {
	m := Merge()
	if m.Len() != 0 || len(m.Channels) != 0 {
		t.Errorf("empty merge = %+v, want empty table", m)
	}
	var zero time.Time
	if !m.Start.Equal(zero) {
		t.Errorf("Start = %v, want zero", m.Start)
	}
}
