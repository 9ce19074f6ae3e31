// Package units provides shared constants and labelling for the biometric
// channels the pipeline carries.
package units

// Unit constants for channel values.
const (
	BPM     = "bpm"    // heart and pulse rate
	Percent = "%"      // oxygen saturation
	Level   = "level"  // discrete confidence codes
	Motion  = "motion" // O2Ring motion index (unitless)
)

// channelUnits maps merged-table column names to their display unit.
var channelUnits = map[string]string{
	"heart_rate":        BPM,
	"garmin_spo2":       Percent,
	"garmin_confidence": Level,
	"o2ring_spo2":       Percent,
	"o2ring_pulse":      BPM,
	"o2ring_motion":     Motion,
}

// ForChannel returns the display unit for a channel name, or an empty string
// for channels with no registered unit.
func ForChannel(channel string) string {
	return channelUnits[channel]
}

// Label returns "channel (unit)" for known channels and the bare channel name
// otherwise. Used for chart axes and summary output.
func Label(channel string) string {
	u := ForChannel(channel)
	if u == "" {
		return channel
	}
	return channel + " (" + u + ")"
}
