// Command oximetry-report reconciles one night of device exports — Garmin
// pulse JSON, Garmin SpO2 JSON, and an O2Ring CSV — into a single per-minute
// table, then writes it as CSV with optional charts, plots, and run history.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/banshee-data/oximetry.report/internal/export"
	"github.com/banshee-data/oximetry.report/internal/fsutil"
	"github.com/banshee-data/oximetry.report/internal/series"
	"github.com/banshee-data/oximetry.report/internal/source"
	"github.com/banshee-data/oximetry.report/internal/store"
	"github.com/banshee-data/oximetry.report/internal/timeutil"
	"github.com/banshee-data/oximetry.report/internal/units"
	"github.com/banshee-data/oximetry.report/internal/version"
)

var (
	dir         = flag.String("dir", ".", "Directory containing the device export files")
	output      = flag.String("output", "merged_data.csv", "Output CSV file name, written into -dir")
	dbPath      = flag.String("db", "", "Optional SQLite database recording run history")
	chartsPath  = flag.String("charts", "", "Optional HTML file of comparison charts")
	plotsDir    = flag.String("plots", "", "Optional directory for PNG plots")
	tz          = flag.String("tz", units.DefaultTimezone, "IANA timezone the device wall-clock timestamps are in")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// chartGroups pairs like-for-like channels across devices for charts/plots.
var chartGroups = []export.Group{
	{Name: "SpO2 comparison", Channels: []series.Channel{source.GarminSpO2, source.O2RingSpO2}},
	{Name: "Pulse comparison", Channels: []series.Channel{source.HeartRate, source.O2RingPulse}},
	{Name: "Motion", Channels: []series.Channel{source.O2RingMotion}},
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("oximetry-report %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	loc, err := units.ResolveLocation(*tz)
	if err != nil {
		log.Fatalf("bad -tz: %v", err)
	}

	fs := fsutil.OSFileSystem{}

	files, err := source.Discover(fs, *dir)
	if err != nil {
		log.Fatalf("failed to locate input files: %v", err)
	}

	inputs := []struct {
		reader source.Reader
		path   string
	}{
		{source.NewGarminPulseReader(fs, loc), files.Pulse},
		{source.NewGarminSpO2Reader(fs, loc), files.SpO2},
		{source.NewO2RingReader(fs, loc), files.O2Ring},
	}

	resampled := make([]*series.Series, 0, len(inputs))
	for _, in := range inputs {
		records, err := in.reader.Read(in.path)
		if err != nil {
			log.Fatalf("failed to read %s: %v", in.reader.Name(), err)
		}
		s, err := series.Resample(records, in.reader.Policies())
		if err != nil {
			log.Fatalf("failed to resample %s (%s): %v", in.reader.Name(), in.path, err)
		}
		log.Printf("parsed %s: %d records over %d minutes", in.reader.Name(), len(records), s.Len())
		resampled = append(resampled, s)
	}

	merged := series.Merge(resampled...)
	if merged.Len() == 0 {
		log.Printf("sources share no overlapping window; writing empty table")
	} else {
		log.Printf("merged window %s to %s (%d rows)",
			merged.TimeAt(0).Format(export.TimestampLayout),
			merged.TimeAt(merged.Len()-1).Format(export.TimestampLayout),
			merged.Len())
	}

	outPath := filepath.Join(*dir, *output)
	if err := export.WriteCSVFile(fs, outPath, merged); err != nil {
		log.Fatalf("failed to write merged table: %v", err)
	}
	log.Printf("saved merged table to %s", outPath)

	printSummary(merged)

	if *chartsPath != "" {
		if err := export.RenderChartsFile(fs, *chartsPath, merged, chartGroups); err != nil {
			log.Fatalf("failed to render charts: %v", err)
		}
		log.Printf("rendered charts to %s", *chartsPath)
	}

	if *plotsDir != "" {
		plotted, err := export.SavePlots(*plotsDir, merged, chartGroups)
		if err != nil {
			log.Fatalf("failed to save plots: %v", err)
		}
		log.Printf("saved %d plots to %s", len(plotted), *plotsDir)
	}

	if *dbPath != "" {
		recordRun(merged, files)
	}
}

func printSummary(t *series.Table) {
	for _, s := range export.Summarize(t) {
		log.Printf("  %-18s n=%-4d mean=%7.2f sd=%6.2f min=%7.2f max=%7.2f %s",
			s.Channel, s.Count, s.Mean, s.StdDev, s.Min, s.Max, units.ForChannel(string(s.Channel)))
	}
	for _, pair := range [][2]series.Channel{
		{source.GarminSpO2, source.O2RingSpO2},
		{source.HeartRate, source.O2RingPulse},
	} {
		c := export.Compare(t, pair[0], pair[1])
		if c.Pairs == 0 {
			continue
		}
		log.Printf("  %s vs %s: %d pairs, bias=%+.2f, r=%.3f", c.A, c.B, c.Pairs, c.MeanBias, c.Correlation)
	}
}

func recordRun(t *series.Table, files source.Files) {
	st, err := store.Open(*dbPath, timeutil.RealClock{})
	if err != nil {
		log.Fatalf("failed to open run database: %v", err)
	}
	defer st.Close()

	run := &store.Run{
		Directory:  *dir,
		PulseFile:  files.Pulse,
		SpO2File:   files.SpO2,
		O2RingFile: files.O2Ring,
	}
	if err := st.SaveRun(run, t); err != nil {
		log.Fatalf("failed to record run: %v", err)
	}
	log.Printf("recorded run %s in %s", run.RunID, *dbPath)
}
