package series

// Aggregate selects how multiple raw samples falling in the same bucket
// combine into one cell.
type Aggregate int

const (
	// AggregateMean takes the arithmetic mean of the present values.
	AggregateMean Aggregate = iota
)

// ChannelPolicy binds a channel to its aggregation rule and gap-fill
// behaviour. Continuous physiological signals (heart rate) interpolate across
// short gaps; confidence-coded and device-derived signals do not, so a
// consumer can distinguish a measured minute from an absent one.
type ChannelPolicy struct {
	Channel   Channel
	Aggregate Aggregate

	// GapFill enables linear interpolation of interior missing buckets from
	// the nearest known neighbours. Buckets before the first or after the
	// last known value always stay missing.
	GapFill bool
}
