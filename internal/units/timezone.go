package units

import (
	"fmt"
	"time"
)

// Device exports carry local wall-clock timestamps with no zone marker, so
// every run interprets them in one configured location.

// DefaultTimezone is used when no timezone is configured.
const DefaultTimezone = "Local"

// ResolveLocation loads the IANA location for the given name. An empty name
// or "Local" resolves to the system location.
func ResolveLocation(name string) (*time.Location, error) {
	if name == "" || name == DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// IsValidTimezone reports whether the name resolves in the tz database.
func IsValidTimezone(name string) bool {
	_, err := ResolveLocation(name)
	return err == nil
}
