package charts

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Renderer draws chart images into a single output directory. Each method
// writes exactly one PNG named by the caller and returns any encode or
// file-write error unwrapped, so callers can classify it.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer that writes into dir. The directory must
// already exist.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Dir returns the output directory.
func (r *Renderer) Dir() string {
	return r.dir
}

func (r *Renderer) save(p *plot.Plot, name string) error {
	if err := p.Save(figWidth, figHeight, filepath.Join(r.dir, name)); err != nil {
		return fmt.Errorf("save chart %s: %w", name, err)
	}
	return nil
}

// Histogram renders a frequency histogram of values.
func (r *Renderer) Histogram(title, xLabel string, values []float64, name string) error {
	p := plot.New()
	applyStyle(p)
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(values), 16)
	if err != nil {
		return fmt.Errorf("build histogram %s: %w", name, err)
	}
	h.FillColor = PrimaryBlue
	h.LineStyle.Color = BackgroundColor
	p.Add(h, plotter.NewGrid())

	return r.save(p, name)
}

// BoxPlot renders a single box plot of values.
func (r *Renderer) BoxPlot(title, xLabel string, values []float64, name string) error {
	p := plot.New()
	applyStyle(p)
	p.Title.Text = title
	p.X.Label.Text = xLabel

	b, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(values))
	if err != nil {
		return fmt.Errorf("build boxplot %s: %w", name, err)
	}
	b.FillColor = PrimaryBlue
	p.Add(b)
	p.NominalX(xLabel)

	return r.save(p, name)
}

// BarChart renders horizontal bars, one per label, in the given order.
func (r *Renderer) BarChart(title string, labels []string, counts []float64, name string) error {
	p := plot.New()
	applyStyle(p)
	p.Title.Text = title
	p.X.Label.Text = "Count"

	bc, err := plotter.NewBarChart(plotter.Values(counts), vg.Points(20))
	if err != nil {
		return fmt.Errorf("build barchart %s: %w", name, err)
	}
	bc.Horizontal = true
	bc.Color = PrimaryBlue
	bc.LineStyle.Width = 0
	p.Add(bc)
	p.NominalY(labels...)

	return r.save(p, name)
}

// Scatter renders an x/y point cloud.
func (r *Renderer) Scatter(title, xLabel, yLabel string, pts plotter.XYs, name string) error {
	p := plot.New()
	applyStyle(p)
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build scatter %s: %w", name, err)
	}
	s.GlyphStyle.Color = color.NRGBA{R: 0x1a, G: 0x53, B: 0x5c, A: 0x99}
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s, plotter.NewGrid())

	return r.save(p, name)
}

// BoxGroup is one labeled value group for a grouped box plot.
type BoxGroup struct {
	Label  string
	Values []float64
}

// GroupedBox renders one box per group along the x axis. Groups without
// values are dropped rather than drawn as empty boxes.
func (r *Renderer) GroupedBox(title, yLabel string, groups []BoxGroup, name string) error {
	p := plot.New()
	applyStyle(p)
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	labels := make([]string, 0, len(groups))
	for _, g := range groups {
		if len(g.Values) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(30), float64(len(labels)), plotter.Values(g.Values))
		if err != nil {
			return fmt.Errorf("build grouped boxplot %s: %w", name, err)
		}
		b.FillColor = PrimaryBlue
		p.Add(b)
		labels = append(labels, g.Label)
	}
	p.NominalX(labels...)

	return r.save(p, name)
}

// corrGrid adapts a square correlation matrix to the heatmap grid interface.
type corrGrid struct {
	labels []string
	m      [][]float64
}

func (g corrGrid) Dims() (c, r int) { return len(g.m), len(g.m) }
func (g corrGrid) Z(c, r int) float64 {
	// Row 0 of the matrix is drawn at the top of the heatmap.
	return g.m[len(g.m)-1-r][c]
}
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// Heatmap renders a square correlation matrix with a diverging palette
// pinned to [-1, 1]. NaN cells (undefined correlations) are drawn in a
// neutral gray so they stand apart from real values.
func (r *Renderer) Heatmap(title string, labels []string, matrix [][]float64, name string) error {
	p := plot.New()
	applyStyle(p)
	p.Title.Text = title

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	h := plotter.NewHeatMap(corrGrid{labels: labels, m: matrix}, cm.Palette(255))
	h.Min = -1
	h.Max = 1
	h.NaN = UndefinedGray
	p.Add(h)

	p.NominalX(labels...)
	reversed := make([]string, len(labels))
	for i, l := range labels {
		reversed[len(labels)-1-i] = l
	}
	p.NominalY(reversed...)

	return r.save(p, name)
}
