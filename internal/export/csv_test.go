package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/banshee-data/oximetry.report/internal/fsutil"
	"github.com/banshee-data/oximetry.report/internal/series"
	"github.com/banshee-data/oximetry.report/internal/testutil"
)

func testTable(t *testing.T) *series.Table {
	t.Helper()
	return &series.Table{
		Start:    testutil.Minute(t, "2024-03-09 23:41"),
		Channels: []series.Channel{"heart_rate", "garmin_spo2"},
		Columns: map[series.Channel][]series.Value{
			"heart_rate":  {series.Some(62), series.Some(64.5), series.Some(63)},
			"garmin_spo2": {series.Some(95), series.None(), series.Some(93)},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testTable(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `timestamp,heart_rate,garmin_spo2
2024-03-09 23:41:00,62,95
2024-03-09 23:42:00,64.5,
2024-03-09 23:43:00,63,93
`
	if got := buf.String(); got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteCSVEmptyTable(t *testing.T) {
	table := &series.Table{
		Start:    time.Time{},
		Channels: []series.Channel{"heart_rate", "o2ring_spo2"},
		Columns: map[series.Channel][]series.Value{
			"heart_rate":  {},
			"o2ring_spo2": {},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "timestamp,heart_rate,o2ring_spo2\n"; got != want {
		t.Errorf("output = %q, want header only %q", got, want)
	}
}

func TestWriteCSVFile(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	if err := WriteCSVFile(fs, "/out/merged_data.csv", testTable(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := fs.ReadFile("/out/merged_data.csv")
	testutil.AssertNoError(t, err)
	if len(data) == 0 {
		t.Fatal("file is empty")
	}
	if got := string(data[:len("timestamp")]); got != "timestamp" {
		t.Errorf("file starts with %q, want timestamp header", got)
	}
}
