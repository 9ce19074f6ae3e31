package source

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/banshee-data/oximetry.report/internal/fsutil"
	"github.com/banshee-data/oximetry.report/internal/series"
)

// GarminPulseReader decodes Garmin heart-rate exports: a JSON array of
// objects carrying a millisecond epoch start time and a heart-rate value.
type GarminPulseReader struct {
	fs  fsutil.FileSystem
	loc *time.Location
}

// NewGarminPulseReader returns a reader interpreting timestamps in loc.
func NewGarminPulseReader(fs fsutil.FileSystem, loc *time.Location) *GarminPulseReader {
	return &GarminPulseReader{fs: fs, loc: loc}
}

// Name identifies the source.
func (r *GarminPulseReader) Name() string { return "garmin-pulse" }

// Policies declares heart rate as a mean-aggregated, gap-filled channel.
// Heart rate is physiologically continuous, so short gaps interpolate.
func (r *GarminPulseReader) Policies() []series.ChannelPolicy {
	return []series.ChannelPolicy{
		{Channel: HeartRate, Aggregate: series.AggregateMean, GapFill: true},
	}
}

// Fields are pointers so an absent field is distinguishable from a zero.
type garminPulseRecord struct {
	StartGMT *int64   `json:"startGMT"`
	Value    *float64 `json:"value"`
}

// Read decodes the pulse export at path.
func (r *GarminPulseReader) Read(path string) ([]series.RawRecord, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw []garminPulseRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformedInput, err)
	}

	records := make([]series.RawRecord, 0, len(raw))
	for i, rec := range raw {
		if rec.StartGMT == nil || rec.Value == nil {
			return nil, fmt.Errorf("%s: record %d: %w: missing startGMT or value", path, i, ErrMalformedInput)
		}
		records = append(records, series.RawRecord{
			Time:   time.UnixMilli(*rec.StartGMT).In(r.loc),
			Values: map[series.Channel]float64{HeartRate: *rec.Value},
		})
	}
	return records, nil
}
