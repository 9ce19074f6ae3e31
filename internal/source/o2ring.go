package source

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/oximetry.report/internal/fsutil"
	"github.com/banshee-data/oximetry.report/internal/series"
)

// o2ringTimeLayout matches the ring's composite time column,
// e.g. "23:41:04 Mar 09 2024".
const o2ringTimeLayout = "15:04:05 Jan 02 2006"

// O2Ring CSV column headers.
const (
	o2ringTimeColumn   = "Time"
	o2ringOxygenColumn = "Oxygen Level"
	o2ringPulseColumn  = "Pulse Rate"
	o2ringMotionColumn = "Motion"
)

// O2RingReader decodes the ring's CSV export. Value cells may hold
// non-numeric sentinel text (the ring writes placeholders such as "--" when
// off-finger); those coerce to missing rather than rejecting the file.
type O2RingReader struct {
	fs  fsutil.FileSystem
	loc *time.Location
}

// NewO2RingReader returns a reader interpreting timestamps in loc.
func NewO2RingReader(fs fsutil.FileSystem, loc *time.Location) *O2RingReader {
	return &O2RingReader{fs: fs, loc: loc}
}

// Name identifies the source.
func (r *O2RingReader) Name() string { return "o2ring" }

// Policies declares all three channels as mean-aggregated without gap fill:
// the ring's signals carry their own quality semantics and are never
// fabricated across gaps.
func (r *O2RingReader) Policies() []series.ChannelPolicy {
	return []series.ChannelPolicy{
		{Channel: O2RingSpO2, Aggregate: series.AggregateMean},
		{Channel: O2RingPulse, Aggregate: series.AggregateMean},
		{Channel: O2RingMotion, Aggregate: series.AggregateMean},
	}
}

// Read decodes the CSV export at path.
func (r *O2RingReader) Read(path string) ([]series.RawRecord, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: no header row", path, ErrMalformedInput)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	valueColumns := map[series.Channel]string{
		O2RingSpO2:   o2ringOxygenColumn,
		O2RingPulse:  o2ringPulseColumn,
		O2RingMotion: o2ringMotionColumn,
	}
	for _, name := range []string{o2ringTimeColumn, o2ringOxygenColumn, o2ringPulseColumn, o2ringMotionColumn} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrMissingColumn, name)
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformedInput, err)
	}

	records := make([]series.RawRecord, 0, len(rows))
	for i, row := range rows {
		ts, err := time.ParseInLocation(o2ringTimeLayout, strings.TrimSpace(row[cols[o2ringTimeColumn]]), r.loc)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w: bad time %q", path, i+1, ErrMalformedInput, row[cols[o2ringTimeColumn]])
		}

		values := make(map[series.Channel]float64, len(valueColumns))
		for ch, col := range valueColumns {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[cols[col]]), 64)
			if err != nil {
				// Sentinel text coerces to missing for this cell only.
				continue
			}
			values[ch] = v
		}
		records = append(records, series.RawRecord{Time: ts, Values: values})
	}
	return records, nil
}
