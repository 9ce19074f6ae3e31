// Package source decodes device-specific export files into normalized raw
// record sequences for the resampling engine.
//
// Each reader is stateless and pure: one file in, one record sequence out.
// Readers also declare the channel policies for the signals they produce, so
// the engine never hard-codes per-device aggregation choices.
package source

import (
	"errors"

	"github.com/banshee-data/oximetry.report/internal/series"
)

// Channel names contributed by the three sources. Each source owns a disjoint
// set, so merged columns never collide.
const (
	HeartRate        series.Channel = "heart_rate"
	GarminSpO2       series.Channel = "garmin_spo2"
	GarminConfidence series.Channel = "garmin_confidence"
	O2RingSpO2       series.Channel = "o2ring_spo2"
	O2RingPulse      series.Channel = "o2ring_pulse"
	O2RingMotion     series.Channel = "o2ring_motion"
)

var (
	// ErrSourceNotFound reports that a required input file is absent.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrMalformedInput reports a file that exists but violates its expected
	// shape. Fatal for the run; a malformed file cannot be safely subset.
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingColumn reports a CSV file lacking a required column header.
	ErrMissingColumn = errors.New("missing column")
)

// Reader produces timestamped scalar observations from one device export.
type Reader interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Policies returns the channel policies for every channel this source
	// emits, in output column order.
	Policies() []series.ChannelPolicy

	// Read decodes the file at path into raw records. Records are returned in
	// file order; timestamps need not be unique, sorted, or evenly spaced.
	Read(path string) ([]series.RawRecord, error)
}
