// Package export renders the merged table for downstream consumers: a
// delimited text table, summary statistics, HTML comparison charts, and PNG
// plots.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/oximetry.report/internal/fsutil"
	"github.com/banshee-data/oximetry.report/internal/series"
)

// TimestampLayout is the format of the merged table's first column.
const TimestampLayout = "2006-01-02 15:04:05"

// WriteCSV writes the merged table to w: a header row of "timestamp" plus the
// channel names, then one row per minute. Missing cells are empty, never a
// numeric placeholder. A zero-row table writes the header only.
func WriteCSV(w io.Writer, t *series.Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.Channels)+1)
	header = append(header, "timestamp")
	for _, ch := range t.Channels {
		header = append(header, string(ch))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < t.Len(); i++ {
		row := make([]string, 0, len(header))
		row = append(row, t.TimeAt(i).Format(TimestampLayout))
		for _, ch := range t.Channels {
			row = append(row, formatCell(t.Columns[ch][i]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the merged table to the named file.
func WriteCSVFile(fs fsutil.FileSystem, path string, t *series.Table) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatCell(v series.Value) string {
	if !v.OK {
		return ""
	}
	return strconv.FormatFloat(v.V, 'f', -1, 64)
}
