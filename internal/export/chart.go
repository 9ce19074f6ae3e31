package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/oximetry.report/internal/fsutil"
	"github.com/banshee-data/oximetry.report/internal/series"
	"github.com/banshee-data/oximetry.report/internal/units"
)

// Group names a set of channels rendered together on one chart or plot.
type Group struct {
	Name     string
	Channels []series.Channel
}

// RenderCharts writes an HTML page with one line chart per group over the
// merged minute axis. Missing cells render as gaps so interpolated and
// measured spans are visually continuous but absences stay visible.
func RenderCharts(w io.Writer, t *series.Table, groups []Group) error {
	page := components.NewPage()

	xAxis := make([]string, t.Len())
	for i := range xAxis {
		xAxis[i] = t.TimeAt(i).Format("15:04")
	}

	for _, g := range groups {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
			charts.WithTitleOpts(opts.Title{Title: g.Name}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		)
		line.SetXAxis(xAxis)

		for _, ch := range g.Channels {
			col, ok := t.Columns[ch]
			if !ok {
				continue
			}
			data := make([]opts.LineData, t.Len())
			for i, v := range col {
				if v.OK {
					data[i] = opts.LineData{Value: v.V}
				} else {
					data[i] = opts.LineData{Value: nil}
				}
			}
			line.AddSeries(units.Label(string(ch)), data)
		}
		page.AddCharts(line)
	}

	return page.Render(w)
}

// RenderChartsFile writes the chart page to the named file.
func RenderChartsFile(fs fsutil.FileSystem, path string, t *series.Table, groups []Group) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := RenderCharts(f, t, groups); err != nil {
		f.Close()
		return fmt.Errorf("render charts: %w", err)
	}
	return f.Close()
}
