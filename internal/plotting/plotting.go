package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/danielpatrickdp/posterior-lab/internal/density"
)

// #region overlay

// WriteOverlay renders the retained draws as a normalized histogram with
// the closed-form posterior curve on top, and saves the figure to path.
// The output format follows the file extension (.png, .svg, .pdf).
func WriteOverlay(path string, samples []float64, curve density.Curve, bins int) error {
	if len(samples) == 0 {
		return fmt.Errorf("write overlay: no samples")
	}
	if bins <= 0 {
		bins = 40
	}

	p := plot.New()
	p.Title.Text = "Posterior: sampled vs closed-form"
	p.X.Label.Text = "theta"
	p.Y.Label.Text = "density"
	p.X.Min, p.X.Max = 0, 1

	hist, err := plotter.NewHist(plotter.Values(samples), bins)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	hist.Normalize(1) // density scale, comparable to the curve
	p.Add(hist)

	xys := make(plotter.XYs, len(curve.Thetas))
	for i := range curve.Thetas {
		xys[i].X = curve.Thetas[i]
		xys[i].Y = curve.Values[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("density line: %w", err)
	}
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("closed-form", line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

// #endregion overlay
