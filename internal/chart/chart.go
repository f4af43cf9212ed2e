// Package chart renders forecast and cluster results to PNG files for the
// report commands. The interactive dashboard renders its own charts from
// the serialized results; these static images exist so a report directory
// is inspectable without any UI.
package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"co2cli/internal/cluster"
	"co2cli/internal/forecast"
)

var (
	observedColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	estimateColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	boundColor    = color.RGBA{R: 160, G: 160, B: 160, A: 255}

	clusterColors = []color.RGBA{
		{R: 31, G: 119, B: 180, A: 255},
		{R: 255, G: 127, B: 14, A: 255},
		{R: 44, G: 160, B: 44, A: 255},
		{R: 214, G: 39, B: 40, A: 255},
		{R: 148, G: 103, B: 189, A: 255},
		{R: 140, G: 86, B: 75, A: 255},
	}
)

// SaveForecast renders a forecast result as a line chart with the observed
// series, the central estimate, and the dashed uncertainty band. An empty
// result produces a chart carrying only its reason as the title.
func SaveForecast(result *forecast.Result, path string) error {
	p := plot.New()
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "CO₂ (million tonnes)"

	if result.IsEmpty() {
		p.Title.Text = result.Empty.Reason
		return save(p, path)
	}
	p.Title.Text = fmt.Sprintf("CO₂ Emissions Forecast for %s", result.Country)

	var observed, estimate, upper, lower plotter.XYs
	for _, pt := range result.Points {
		x := float64(pt.Year)
		if pt.Observed != nil {
			observed = append(observed, plotter.XY{X: x, Y: *pt.Observed})
		}
		estimate = append(estimate, plotter.XY{X: x, Y: pt.Estimate})
		upper = append(upper, plotter.XY{X: x, Y: pt.Upper})
		lower = append(lower, plotter.XY{X: x, Y: pt.Lower})
	}

	obsLine, obsPoints, err := plotter.NewLinePoints(observed)
	if err != nil {
		return fmt.Errorf("observed series: %w", err)
	}
	obsLine.Color = observedColor
	obsPoints.Color = observedColor
	obsPoints.Radius = vg.Points(2)

	estLine, err := plotter.NewLine(estimate)
	if err != nil {
		return fmt.Errorf("estimate series: %w", err)
	}
	estLine.Color = estimateColor

	upperLine, err := dashedLine(upper)
	if err != nil {
		return fmt.Errorf("upper bound series: %w", err)
	}
	lowerLine, err := dashedLine(lower)
	if err != nil {
		return fmt.Errorf("lower bound series: %w", err)
	}

	p.Add(obsLine, obsPoints, estLine, upperLine, lowerLine, plotter.NewGrid())
	p.Legend.Add("Actual", obsLine)
	p.Legend.Add("Forecast", estLine)
	p.Legend.Add("95% bounds", upperLine)
	p.Legend.Top = true

	return save(p, path)
}

// SaveCluster renders a cluster result as a scatter of CO₂ per capita
// against renewables share, one glyph style per semantic label.
func SaveCluster(result *cluster.Result, path string) error {
	p := plot.New()
	p.X.Label.Text = "CO₂ per Capita"
	p.Y.Label.Text = "Renewables Share (%)"

	if result.IsEmpty() {
		p.Title.Text = result.Empty.Reason
		return save(p, path)
	}
	p.Title.Text = fmt.Sprintf("Country Clusters by CO₂ & Energy Profile (%d)", result.Year)

	byLabel := make(map[string]plotter.XYs)
	var order []string
	for _, a := range result.Assignments {
		if _, seen := byLabel[a.Label]; !seen {
			order = append(order, a.Label)
		}
		byLabel[a.Label] = append(byLabel[a.Label], plotter.XY{X: a.Features[0], Y: a.Features[1]})
	}

	for i, label := range order {
		scatter, err := plotter.NewScatter(byLabel[label])
		if err != nil {
			return fmt.Errorf("scatter for %s: %w", label, err)
		}
		scatter.GlyphStyle.Color = clusterColors[i%len(clusterColors)]
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(label, scatter)
	}

	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	return save(p, path)
}

func dashedLine(xys plotter.XYs) (*plotter.Line, error) {
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = boundColor
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	return line, nil
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
