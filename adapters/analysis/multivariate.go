package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"goeda/adapters/charts"
	"goeda/domain/core"
	"goeda/domain/dataset"
	"goeda/domain/pipeline"
	"goeda/domain/report"
	"goeda/internal"
)

// MultivariateRenderer renders one pairwise correlation heatmap.
type MultivariateRenderer struct {
	charts *charts.Renderer
	log    *internal.Logger
}

// NewMultivariateRenderer creates a new multivariate renderer.
func NewMultivariateRenderer(r *charts.Renderer, log *internal.Logger) *MultivariateRenderer {
	return &MultivariateRenderer{charts: r, log: log}
}

// Render selects columns (explicit correlation_cols, else all numerical),
// computes the Pearson correlation matrix and renders it as a heatmap.
// Fewer than two usable columns is a logged no-op, not an error. Undefined
// correlations (zero-variance columns) stay NaN and render as gray cells.
func (m *MultivariateRenderer) Render(ds *dataset.Dataset, params pipeline.MultivariateParams) ([]report.ChartArtifact, error) {
	cols, err := m.selectColumns(ds, params)
	if err != nil {
		return nil, core.NewRenderError(string(pipeline.StepMultivariate), err)
	}

	if len(cols) < 2 {
		m.log.Warn("not enough numeric columns for a correlation matrix, skipping")
		return nil, nil
	}

	labels := make([]string, len(cols))
	matrix := make([][]float64, len(cols))
	for i := range cols {
		labels[i] = cols[i].Name
		matrix[i] = make([]float64, len(cols))
		matrix[i][i] = 1.0
	}
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			r := pearson(cols[i].Floats(), cols[j].Floats())
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	const name = "multivariate_correlation_matrix.png"
	if err := m.charts.Heatmap("Correlation Matrix of Numerical Features", labels, matrix, name); err != nil {
		return nil, core.NewRenderError(string(pipeline.StepMultivariate), err)
	}

	m.log.Info("generated correlation matrix")
	return []report.ChartArtifact{report.ChartArtifact(name)}, nil
}

func (m *MultivariateRenderer) selectColumns(ds *dataset.Dataset, params pipeline.MultivariateParams) ([]dataset.Column, error) {
	if len(params.CorrelationCols) == 0 {
		return ds.NumericalColumns(), nil
	}

	var cols []dataset.Column
	for _, name := range params.CorrelationCols {
		col, ok := ds.Column(name)
		if !ok {
			return nil, fmt.Errorf("correlation column %q not in dataset", name)
		}
		if col.Kind != dataset.KindNumerical {
			m.log.Warn("correlation column %s is not numerical, skipping", name)
			continue
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// pearson computes the Pearson correlation over pairwise-complete rows.
// Returns NaN when fewer than two complete pairs exist or a side has zero
// variance.
func pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
