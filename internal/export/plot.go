package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/oximetry.report/internal/security"
	"github.com/banshee-data/oximetry.report/internal/series"
	"github.com/banshee-data/oximetry.report/internal/units"
)

// linePalette cycles across channels within one plot.
var linePalette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
}

// SavePlots renders one PNG per group into dir and returns the files written.
// Groups whose channels have no present values are skipped. A zero-row table
// produces no files.
func SavePlots(dir string, t *series.Table, groups []Group) ([]string, error) {
	if t.Len() == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var files []string
	for _, g := range groups {
		p := plot.New()
		p.Title.Text = g.Name
		p.X.Label.Text = "time"
		p.X.Tick.Marker = plot.TimeTicks{Format: "15:04"}
		if len(g.Channels) > 0 {
			p.Y.Label.Text = units.ForChannel(string(g.Channels[0]))
		}

		added := false
		for ci, ch := range g.Channels {
			col, ok := t.Columns[ch]
			if !ok {
				continue
			}
			pts := make(plotter.XYs, 0, t.Len())
			for i, v := range col {
				if !v.OK {
					continue
				}
				pts = append(pts, plotter.XY{X: float64(t.TimeAt(i).Unix()), Y: v.V})
			}
			if len(pts) == 0 {
				continue
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return files, fmt.Errorf("%s line for %s: %w", g.Name, ch, err)
			}
			line.Color = linePalette[ci%len(linePalette)]
			line.Width = vg.Points(1)
			p.Add(line)
			p.Legend.Add(units.Label(string(ch)), line)
			added = true
		}
		if !added {
			continue
		}

		p.Legend.Top = true

		file := filepath.Join(dir, security.SanitizeFilename(g.Name)+".png")
		if err := p.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
			return files, fmt.Errorf("save %s plot: %w", g.Name, err)
		}
		files = append(files, file)
	}
	return files, nil
}
