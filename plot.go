package completeness

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotConfig is the explicit figure styling and output configuration. It
// replaces any notion of global plot state: everything a figure needs is in
// this struct, passed in once at construction.
//
// Each figure is saved once per requested format, under a per-format
// subdirectory:
//
//	<Dir>/Figures_<fmt>/<name>.<fmt>
type PlotConfig struct {
	// Dir is the root output directory for figures.
	Dir string

	// Formats lists the file formats to write, by extension ("svg",
	// "png", "pdf", ...). Empty means svg and png.
	Formats []string

	// Width and Height set the canvas size. Zero means 6x4 inches.
	Width  vg.Length
	Height vg.Length
}

// DefaultPlotConfig returns the standard figure setup rooted at dir:
// vector and raster output (svg + png) on a 6x4 inch canvas.
func DefaultPlotConfig(dir string) *PlotConfig {
	return &PlotConfig{
		Dir:     dir,
		Formats: []string{"svg", "png"},
	}
}

func (c *PlotConfig) formats() []string {
	if len(c.Formats) == 0 {
		return []string{"svg", "png"}
	}
	return c.Formats
}

func (c *PlotConfig) size() (vg.Length, vg.Length) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = 6 * vg.Inch
	}
	if h <= 0 {
		h = 4 * vg.Inch
	}
	return w, h
}

// save writes the figure in every configured format, creating the
// per-format directories as needed.
func (c *PlotConfig) save(p *plot.Plot, name string) error {
	w, h := c.size()
	for _, format := range c.formats() {
		dir := filepath.Join(c.Dir, "Figures_"+format)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("figure dir %s: %w", dir, err)
		}
		path := filepath.Join(dir, name+"."+format)
		if err := p.Save(w, h, path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	return nil
}

// PlotMagnitudeDistribution writes the two frequency-magnitude overview
// figures: the non-cumulative distribution ("MagnitudeDistribution") and
// the complementary cumulative survival counts
// ("CumulativeMagnitudeDistribution"), both with a logarithmic count axis.
//
// A no-op without a PlotConfig.
func (e *Estimator) PlotMagnitudeDistribution() error {
	if e.cfg.Plots == nil {
		return nil
	}

	p := newFigure("Magnitude distribution", "Magnitude", "Count")
	logCountAxis(p)
	// Empty bins cannot be drawn on a log axis; skip them.
	counts, err := plotter.NewScatter(positiveXYs(e.hist.Grid, e.hist.Counts))
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), counts)
	if err := e.cfg.Plots.save(p, "MagnitudeDistribution"); err != nil {
		return err
	}

	p = newFigure("Cumulative magnitude distribution", "Magnitude", "Count above")
	logCountAxis(p)
	survival, err := plotter.NewLine(positiveXYs(e.hist.Grid, e.hist.Survival))
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), survival)
	return e.cfg.Plots.save(p, "CumulativeMagnitudeDistribution")
}

// plotInflection draws the cumulative-count derivative over the grid with a
// vertical marker at the inflection magnitude.
func (e *Estimator) plotInflection(deriv []float64, inflection float64) error {
	if len(deriv) == 0 {
		return nil
	}

	p := newFigure("Maximum curvature", "Magnitude", "Magnitude distribution derivative")
	line, err := plotter.NewLine(pairXYs(e.hist.Grid[1:], deriv))
	if err != nil {
		return err
	}
	lo, hi := valueRange(deriv)
	marker, err := verticalRule(inflection, lo, hi)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), line, marker)
	return e.cfg.Plots.save(p, "MaximumCurvatureInflectionPoint")
}

// plotResiduals draws the goodness-of-fit residual sweep: residual vs.
// cutoff, the 5% confidence band, and the selected completeness magnitude.
// Degraded candidates (+Inf residual) are left out.
func (e *Estimator) plotResiduals(cutoffs, residuals []float64, selected float64) error {
	pts := make(plotter.XYs, 0, len(cutoffs))
	top := residual95
	for i := range cutoffs {
		if math.IsInf(residuals[i], 0) || math.IsNaN(residuals[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: cutoffs[i], Y: residuals[i]})
		top = math.Max(top, residuals[i])
	}

	if len(pts) == 0 {
		return nil // every candidate degraded, nothing to draw
	}

	p := newFigure("Goodness of fit", "Cutoff magnitude", "Residual in %")
	p.Y.Min = 0
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	band, err := horizontalRule(residual95, cutoffs[0], cutoffs[len(cutoffs)-1])
	if err != nil {
		return err
	}
	marker, err := verticalRule(selected, 0, top)
	if err != nil {
		return err
	}
	p.Add(plotter.NewGrid(), scatter, band, marker)
	return e.cfg.Plots.save(p, "GoodnessOfFitResidual")
}

func newFigure(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

func logCountAxis(p *plot.Plot) {
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
}

func pairXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}

func positiveXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if ys[i] > 0 {
			pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		}
	}
	return pts
}

func verticalRule(x, ymin, ymax float64) (*plotter.Line, error) {
	return dashedRule(plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}})
}

func horizontalRule(y, xmin, xmax float64) (*plotter.Line, error) {
	return dashedRule(plotter.XYs{{X: xmin, Y: y}, {X: xmax, Y: y}})
}

func dashedRule(pts plotter.XYs) (*plotter.Line, error) {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = color.Gray{Y: 80}
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	return line, nil
}

// valueRange returns the min and max of a non-empty slice.
func valueRange(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
