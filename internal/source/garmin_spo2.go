package source

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/banshee-data/oximetry.report/internal/fsutil"
	"github.com/banshee-data/oximetry.report/internal/series"
)

// garminTimestampLayout matches the export's local wall-clock timestamps with
// up to six fractional-second digits, e.g. "2024-03-09T23:41:12.000000".
const garminTimestampLayout = "2006-01-02T15:04:05.999999"

// GarminSpO2Reader decodes Garmin oxygen-saturation exports: a JSON array of
// objects carrying a wall-clock timestamp string, an SpO2 percentage, and a
// discrete reading-confidence code.
type GarminSpO2Reader struct {
	fs  fsutil.FileSystem
	loc *time.Location
}

// NewGarminSpO2Reader returns a reader interpreting timestamps in loc.
func NewGarminSpO2Reader(fs fsutil.FileSystem, loc *time.Location) *GarminSpO2Reader {
	return &GarminSpO2Reader{fs: fs, loc: loc}
}

// Name identifies the source.
func (r *GarminSpO2Reader) Name() string { return "garmin-spo2" }

// Policies declares both channels as mean-aggregated without gap fill.
// Fabricating saturation or confidence values would misrepresent measurement
// quality, so missing minutes stay missing.
func (r *GarminSpO2Reader) Policies() []series.ChannelPolicy {
	return []series.ChannelPolicy{
		{Channel: GarminSpO2, Aggregate: series.AggregateMean},
		{Channel: GarminConfidence, Aggregate: series.AggregateMean},
	}
}

type garminSpO2Record struct {
	EpochTimestamp    *string  `json:"epochTimestamp"`
	SpO2Reading       *float64 `json:"spo2Reading"`
	ReadingConfidence *float64 `json:"readingConfidence"`
}

// Read decodes the SpO2 export at path.
func (r *GarminSpO2Reader) Read(path string) ([]series.RawRecord, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw []garminSpO2Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformedInput, err)
	}

	records := make([]series.RawRecord, 0, len(raw))
	for i, rec := range raw {
		if rec.EpochTimestamp == nil || rec.SpO2Reading == nil || rec.ReadingConfidence == nil {
			return nil, fmt.Errorf("%s: record %d: %w: missing field", path, i, ErrMalformedInput)
		}
		ts, err := time.ParseInLocation(garminTimestampLayout, *rec.EpochTimestamp, r.loc)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w: bad timestamp %q", path, i, ErrMalformedInput, *rec.EpochTimestamp)
		}
		records = append(records, series.RawRecord{
			Time: ts,
			Values: map[series.Channel]float64{
				GarminSpO2:       *rec.SpO2Reading,
				GarminConfidence: *rec.ReadingConfidence,
			},
		})
	}
	return records, nil
}
