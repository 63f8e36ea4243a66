package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/plotter"

	"goeda/adapters/charts"
	"goeda/domain/core"
	"goeda/domain/dataset"
	"goeda/domain/pipeline"
	"goeda/domain/report"
	"goeda/internal"
)

// BivariateRenderer pairs every feature column against one target column.
type BivariateRenderer struct {
	charts *charts.Renderer
	log    *internal.Logger
}

// NewBivariateRenderer creates a new bivariate renderer.
func NewBivariateRenderer(r *charts.Renderer, log *internal.Logger) *BivariateRenderer {
	return &BivariateRenderer{charts: r, log: log}
}

// Render produces one chart per feature paired against the target:
// numerical feature x numerical target becomes a scatter plot, categorical
// feature x numerical target becomes a box plot grouped by reduced feature
// value. Any other kind combination is skipped without an artifact.
//
// Returns ErrMissingTarget when target-centric analysis is requested
// without a target column; the orchestrator treats that as a planned skip.
func (b *BivariateRenderer) Render(ds *dataset.Dataset, targetColumn string, params pipeline.BivariateParams) ([]report.ChartArtifact, error) {
	if !params.TargetCentric {
		b.log.Info("skipping bivariate analysis, target_centric is not enabled")
		return nil, nil
	}
	if targetColumn == "" {
		return nil, core.ErrMissingTarget
	}
	target, ok := ds.Column(targetColumn)
	if !ok {
		return nil, fmt.Errorf("%w: column %q not in dataset", core.ErrMissingTarget, targetColumn)
	}

	maxCategories := params.MaxCategories
	if maxCategories == 0 {
		maxCategories = pipeline.DefaultMaxCategories
	}

	targetIsNumeric := target.Kind == dataset.KindNumerical
	var artifacts []report.ChartArtifact

	for _, feature := range ds.Columns() {
		if feature.Name == targetColumn {
			continue
		}

		var err error
		var artifact report.ChartArtifact

		switch {
		case feature.Kind == dataset.KindNumerical && targetIsNumeric:
			artifact, err = b.renderScatter(feature, target)
		case feature.Kind == dataset.KindCategorical && targetIsNumeric:
			artifact, err = b.renderGroupedBox(feature, target, maxCategories)
		default:
			// Categorical targets and categorical x categorical pairs are a
			// deliberate scope limit.
			continue
		}

		if err != nil {
			if core.IsInvalidParameter(err) {
				return artifacts, err
			}
			return artifacts, core.NewRenderError(string(pipeline.StepBivariate), err)
		}
		if artifact != "" {
			artifacts = append(artifacts, artifact)
			b.log.Info("generated bivariate plot for %s vs %s", feature.Name, targetColumn)
		}
	}

	return artifacts, nil
}

func (b *BivariateRenderer) renderScatter(feature, target dataset.Column) (report.ChartArtifact, error) {
	xs := feature.Floats()
	ys := target.Floats()

	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(pts) == 0 {
		b.log.Warn("no complete rows for %s vs %s, skipping scatter", feature.Name, target.Name)
		return "", nil
	}

	title := fmt.Sprintf("%s vs. %s", charts.Humanize(target.Name), charts.Humanize(feature.Name))
	name := fmt.Sprintf("bivariate_%s_vs_%s.png", feature.Name, target.Name)
	if err := b.charts.Scatter(title, charts.Humanize(feature.Name), charts.Humanize(target.Name), pts, name); err != nil {
		return "", err
	}
	return report.ChartArtifact(name), nil
}

func (b *BivariateRenderer) renderGroupedBox(feature, target dataset.Column, maxCategories int) (report.ChartArtifact, error) {
	reduced, truncated, err := ReduceCardinality(feature.Values(), maxCategories)
	if err != nil {
		return "", err
	}

	targetVals := target.Floats()
	grouped := make(map[string][]float64)
	counts, firstSeen := countValues(reduced)
	for i, label := range reduced {
		if label == "" || math.IsNaN(targetVals[i]) {
			continue
		}
		grouped[label] = append(grouped[label], targetVals[i])
	}
	if len(grouped) == 0 {
		b.log.Warn("no complete rows for %s vs %s, skipping boxplot", feature.Name, target.Name)
		return "", nil
	}

	groups := make([]charts.BoxGroup, 0, len(grouped))
	for _, label := range rankByFrequency(counts, firstSeen) {
		if vals, ok := grouped[label]; ok {
			groups = append(groups, charts.BoxGroup{Label: label, Values: vals})
		}
	}

	title := fmt.Sprintf("Distribution of %s by %s", charts.Humanize(target.Name), charts.Humanize(feature.Name))
	if truncated {
		title += fmt.Sprintf(" (Top %d categories)", maxCategories)
	}

	name := fmt.Sprintf("bivariate_%s_vs_%s.png", feature.Name, target.Name)
	if err := b.charts.GroupedBox(title, charts.Humanize(target.Name), groups, name); err != nil {
		return "", err
	}
	return report.ChartArtifact(name), nil
}
