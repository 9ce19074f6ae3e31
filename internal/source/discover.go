package source

import (
	"fmt"
	"path/filepath"

	"github.com/banshee-data/oximetry.report/internal/fsutil"
)

// Name patterns identifying each device export within a run directory.
const (
	PulsePattern  = "garmin*-pulse.json"
	SpO2Pattern   = "garmin*-spo2.json"
	O2RingPattern = "O2Ring *.csv"
)

// Files holds the discovered input paths for one run.
type Files struct {
	Pulse  string
	SpO2   string
	O2Ring string
}

// Discover locates the three device exports in dir, taking the first match
// in sorted order for each pattern. Any missing export is fatal before
// parsing starts.
func Discover(fs fsutil.FileSystem, dir string) (Files, error) {
	var files Files
	var err error
	if files.Pulse, err = findOne(fs, dir, PulsePattern); err != nil {
		return Files{}, err
	}
	if files.SpO2, err = findOne(fs, dir, SpO2Pattern); err != nil {
		return Files{}, err
	}
	if files.O2Ring, err = findOne(fs, dir, O2RingPattern); err != nil {
		return Files{}, err
	}
	return files, nil
}

func findOne(fs fsutil.FileSystem, dir, pattern string) (string, error) {
	matches, err := fs.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no file matching %q in %s", ErrSourceNotFound, pattern, dir)
	}
	return matches[0], nil
}
