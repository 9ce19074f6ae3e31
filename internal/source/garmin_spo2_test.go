package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/oximetry.report/internal/fsutil"
)

func TestGarminSpO2Read(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	writeFixture(t, fs, "/data/garmin-20240309-spo2.json", `[
		{"epochTimestamp": "2024-03-09T23:41:12.000000", "spo2Reading": 95, "readingConfidence": 2},
		{"epochTimestamp": "2024-03-09T23:42:12.500000", "spo2Reading": 93.5, "readingConfidence": 1}
	]`)

	r := NewGarminSpO2Reader(fs, time.UTC)
	records, err := r.Read("/data/garmin-20240309-spo2.json")
	require.NoError(t, err)
	require.Len(t, records, 2)

	want := time.Date(2024, 3, 9, 23, 41, 12, 0, time.UTC)
	assert.Equal(t, want, records[0].Time)
	assert.Equal(t, 95.0, records[0].Values[GarminSpO2])
	assert.Equal(t, 2.0, records[0].Values[GarminConfidence])

	// Fractional seconds are preserved.
	assert.Equal(t, 500*time.Millisecond, time.Duration(records[1].Time.Nanosecond()))
}

func TestGarminSpO2ReadHonoursLocation(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	writeFixture(t, fs, "/data/garmin-x-spo2.json",
		`[{"epochTimestamp": "2024-03-09T23:41:12.000000", "spo2Reading": 95, "readingConfidence": 2}]`)

	loc := time.FixedZone("PST", -8*3600)
	r := NewGarminSpO2Reader(fs, loc)
	records, err := r.Read("/data/garmin-x-spo2.json")
	require.NoError(t, err)

	want := time.Date(2024, 3, 9, 23, 41, 12, 0, loc)
	assert.True(t, records[0].Time.Equal(want), "timestamp should be wall-clock in the configured zone")
}

func TestGarminSpO2ReadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unparseable timestamp", `[{"epochTimestamp": "09/03/2024 23:41", "spo2Reading": 95, "readingConfidence": 2}]`},
		{"missing timestamp", `[{"spo2Reading": 95, "readingConfidence": 2}]`},
		{"missing reading", `[{"epochTimestamp": "2024-03-09T23:41:12.000000", "readingConfidence": 2}]`},
		{"not an array", `{"epochTimestamp": "2024-03-09T23:41:12.000000"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := fsutil.NewMemoryFileSystem()
			writeFixture(t, fs, "/data/garmin-x-spo2.json", tt.content)

			r := NewGarminSpO2Reader(fs, time.UTC)
			_, err := r.Read("/data/garmin-x-spo2.json")
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestGarminSpO2Policies(t *testing.T) {
	r := NewGarminSpO2Reader(fsutil.NewMemoryFileSystem(), time.UTC)
	policies := r.Policies()
	require.Len(t, policies, 2)
	for _, p := range policies {
		assert.False(t, p.GapFill, "%s must not fabricate values across gaps", p.Channel)
	}
}
