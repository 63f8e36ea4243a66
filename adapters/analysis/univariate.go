package analysis

import (
	"fmt"

	"goeda/adapters/charts"
	"goeda/domain/core"
	"goeda/domain/dataset"
	"goeda/domain/pipeline"
	"goeda/domain/report"
	"goeda/internal"
)

// UnivariateRenderer produces one chart per column and requested plot type.
type UnivariateRenderer struct {
	charts *charts.Renderer
	log    *internal.Logger
}

// NewUnivariateRenderer creates a new univariate renderer.
func NewUnivariateRenderer(r *charts.Renderer, log *internal.Logger) *UnivariateRenderer {
	return &UnivariateRenderer{charts: r, log: log}
}

// Render walks columns in dataset order. Numerical columns get one chart
// per requested numerical plot type, in the order listed in params; unknown
// plot-type names are ignored for forward compatibility with newer config
// files. Categorical columns get a bar chart of reduced value counts when
// "barplot" is requested.
//
// A file-write failure aborts the step's remaining renders and returns the
// artifacts generated so far; partial output stays on disk.
func (u *UnivariateRenderer) Render(ds *dataset.Dataset, params pipeline.UnivariateParams) ([]report.ChartArtifact, error) {
	plotTypes := params.PlotTypes
	if plotTypes == nil {
		plotTypes = pipeline.DefaultUnivariatePlotTypes()
	}
	maxCategories := params.MaxCategories
	if maxCategories == 0 {
		maxCategories = pipeline.DefaultMaxCategories
	}

	var artifacts []report.ChartArtifact

	for _, col := range ds.Columns() {
		switch col.Kind {
		case dataset.KindNumerical:
			for _, plotType := range plotTypes[string(dataset.KindNumerical)] {
				artifact, err := u.renderNumerical(col, plotType)
				if err != nil {
					return artifacts, core.NewRenderError(string(pipeline.StepUnivariate), err)
				}
				if artifact != "" {
					artifacts = append(artifacts, artifact)
				}
			}

		case dataset.KindCategorical:
			if !contains(plotTypes[string(dataset.KindCategorical)], "barplot") {
				continue
			}
			artifact, err := u.renderBarplot(col, maxCategories)
			if err != nil {
				if core.IsInvalidParameter(err) {
					return artifacts, err
				}
				return artifacts, core.NewRenderError(string(pipeline.StepUnivariate), err)
			}
			if artifact != "" {
				artifacts = append(artifacts, artifact)
			}
		}
	}

	return artifacts, nil
}

func (u *UnivariateRenderer) renderNumerical(col dataset.Column, plotType string) (report.ChartArtifact, error) {
	data := col.ValidFloats()
	if len(data) == 0 {
		u.log.Warn("column %s has no valid values, skipping %s", col.Name, plotType)
		return "", nil
	}

	label := charts.Humanize(col.Name)
	name := fmt.Sprintf("univariate_%s_%s.png", col.Name, plotType)

	switch plotType {
	case "histogram":
		if err := u.charts.Histogram("Distribution of "+label, label, data, name); err != nil {
			return "", err
		}
	case "boxplot":
		if err := u.charts.BoxPlot("Box Plot for "+label, label, data, name); err != nil {
			return "", err
		}
	default:
		// Unknown plot types are not an error.
		u.log.Debug("ignoring unknown numerical plot type %q", plotType)
		return "", nil
	}

	u.log.Info("generated %s for %s", plotType, col.Name)
	return report.ChartArtifact(name), nil
}

func (u *UnivariateRenderer) renderBarplot(col dataset.Column, maxCategories int) (report.ChartArtifact, error) {
	reduced, truncated, err := ReduceCardinality(col.Values(), maxCategories)
	if err != nil {
		return "", err
	}

	counts, firstSeen := countValues(reduced)
	if len(counts) == 0 {
		u.log.Warn("column %s has no categorical values, skipping barplot", col.Name)
		return "", nil
	}
	ranked := rankByFrequency(counts, firstSeen)

	// Horizontal bars draw bottom-up, so reverse to put the most frequent
	// value on top.
	labels := make([]string, len(ranked))
	values := make([]float64, len(ranked))
	for i, v := range ranked {
		labels[len(ranked)-1-i] = v
		values[len(ranked)-1-i] = float64(counts[v])
	}

	title := "Frequency of " + charts.Humanize(col.Name)
	if truncated {
		title += fmt.Sprintf(" (Top %d categories)", maxCategories)
	}

	name := fmt.Sprintf("univariate_%s_barplot.png", col.Name)
	if err := u.charts.BarChart(title, labels, values, name); err != nil {
		return "", err
	}

	u.log.Info("generated barplot for %s", col.Name)
	return report.ChartArtifact(name), nil
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
