package sim

import (
	"fmt"
	"image/color"

	"github.com/milosgajdos/go-gpsmooth/location"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewTrackPlot creates new plot of a track from the three data sources:
// truth:    true positions, may be nil
// raw:      receiver fixes
// smoothed: smoothed fixes
// Longitude is plotted on the X axis and latitude on the Y axis.
// It returns error if raw or smoothed are empty or the plot fails to be created.
func NewTrackPlot(truth, raw, smoothed []location.Fix) (*plot.Plot, error) {
	if len(raw) == 0 || len(smoothed) == 0 {
		return nil, fmt.Errorf("invalid data supplied")
	}

	p := plot.New()

	p.Title.Text = "Track"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	if len(truth) > 0 {
		truthLine, err := plotter.NewLine(makePoints(truth))
		if err != nil {
			return nil, fmt.Errorf("failed to create line: %v", err)
		}
		truthLine.LineStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
		truthLine.LineStyle.Width = vg.Points(1)

		p.Add(truthLine)
		p.Legend.Add("truth", truthLine)
	}

	rawScatter, err := plotter.NewScatter(makePoints(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	rawScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	rawScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(rawScatter)
	p.Legend.Add("raw", rawScatter)

	smoothScatter, err := plotter.NewScatter(makePoints(smoothed))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	smoothScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	smoothScatter.Shape = draw.CrossGlyph{}
	smoothScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(smoothScatter)
	p.Legend.Add("smoothed", smoothScatter)

	return p, nil
}

func makePoints(fixes []location.Fix) plotter.XYs {
	pts := make(plotter.XYs, len(fixes))
	for i, f := range fixes {
		pts[i].X = f.Longitude
		pts[i].Y = f.Latitude
	}

	return pts
}
