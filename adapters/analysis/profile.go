package analysis

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"goeda/adapters/charts"
	"goeda/domain/dataset"
	"goeda/domain/report"
	"goeda/internal"
)

// DefaultVisualSummaryCap bounds how many columns get a rendered summary
// chart; profiling statistics are still computed for every column.
const DefaultVisualSummaryCap = 100

// NoTopValue is reported for a categorical column with no non-missing
// values instead of failing.
const NoTopValue = "<none>"

// topValueTableSize is the length of the categorical frequency table.
const topValueTableSize = 5

// Shape is the dataset's row/column count.
type Shape struct {
	Rows int
	Cols int
}

// ValueCount is one entry of a categorical frequency table.
type ValueCount struct {
	Value string
	Count int
}

// NumericalStats are the descriptive statistics for a numerical column.
// Fields are NaN when the column has no valid values.
type NumericalStats struct {
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// CategoricalStats describe a categorical column's value distribution.
type CategoricalStats struct {
	UniqueCount int
	TopValue    string
	TopCount    int
	TopValues   []ValueCount
}

// ColumnProfile is the profiling result for one column. Exactly one of
// Numerical/Categorical is set, matching the column kind. Summary names
// the column's compact visual-summary chart, or is empty past the cap.
type ColumnProfile struct {
	Name         string
	Kind         dataset.ColumnKind
	MissingCount int
	Numerical    *NumericalStats
	Categorical  *CategoricalStats
	Summary      report.ChartArtifact
}

// ProfileResult is the payload stored under the report's profile key.
type ProfileResult struct {
	Shape   Shape
	Columns []ColumnProfile
}

// Profiler computes per-column descriptive statistics and renders compact
// visual summaries for up to visualCap columns.
type Profiler struct {
	charts    *charts.Renderer
	log       *internal.Logger
	visualCap int
}

// NewProfiler creates a profiler with the default visual-summary cap.
func NewProfiler(r *charts.Renderer, log *internal.Logger) *Profiler {
	return NewProfilerWithCap(r, log, DefaultVisualSummaryCap)
}

// NewProfilerWithCap creates a profiler with an explicit cap on rendered
// visual summaries.
func NewProfilerWithCap(r *charts.Renderer, log *internal.Logger, visualCap int) *Profiler {
	return &Profiler{charts: r, log: log, visualCap: visualCap}
}

// Profile computes the dataset profile. The input dataset is not mutated.
func (p *Profiler) Profile(ds *dataset.Dataset) (*ProfileResult, error) {
	result := &ProfileResult{
		Shape:   Shape{Rows: ds.NumRows(), Cols: ds.NumCols()},
		Columns: make([]ColumnProfile, 0, ds.NumCols()),
	}

	for i, col := range ds.Columns() {
		entry := ColumnProfile{
			Name:         col.Name,
			Kind:         col.Kind,
			MissingCount: col.MissingCount(),
		}

		if col.Kind == dataset.KindNumerical {
			entry.Numerical = describeNumerical(col)
		} else {
			entry.Categorical = describeCategorical(col)
		}

		if i < p.visualCap {
			entry.Summary = p.renderSummary(col)
		}

		result.Columns = append(result.Columns, entry)
	}

	return result, nil
}

// describeNumerical computes mean/median/std/min/max over valid values.
func describeNumerical(col dataset.Column) *NumericalStats {
	data := col.ValidFloats()
	if len(data) == 0 {
		nan := math.NaN()
		return &NumericalStats{Mean: nan, Median: nan, StdDev: nan, Min: nan, Max: nan}
	}

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	return &NumericalStats{Mean: mean, Median: median, StdDev: stdDev, Min: min, Max: max}
}

// describeCategorical computes the unique count, the single most frequent
// value, and the top-5 frequency table.
func describeCategorical(col dataset.Column) *CategoricalStats {
	counts, firstSeen := countValues(col.Values())
	out := &CategoricalStats{
		UniqueCount: len(counts),
		TopValue:    NoTopValue,
	}
	if len(counts) == 0 {
		return out
	}

	ranked := rankByFrequency(counts, firstSeen)
	out.TopValue = ranked[0]
	out.TopCount = counts[ranked[0]]

	n := topValueTableSize
	if len(ranked) < n {
		n = len(ranked)
	}
	for _, v := range ranked[:n] {
		out.TopValues = append(out.TopValues, ValueCount{Value: v, Count: counts[v]})
	}
	return out
}

// renderSummary draws the compact per-column chart. A failed render is
// logged and degrades to no summary; it never fails the profile step.
func (p *Profiler) renderSummary(col dataset.Column) report.ChartArtifact {
	name := fmt.Sprintf("profile_%s_summary.png", col.Name)

	var err error
	if col.Kind == dataset.KindNumerical {
		data := col.ValidFloats()
		if len(data) == 0 {
			return ""
		}
		err = p.charts.Histogram(charts.Humanize(col.Name), charts.Humanize(col.Name), data, name)
	} else {
		top := describeCategorical(col).TopValues
		if len(top) == 0 {
			return ""
		}
		labels := make([]string, len(top))
		counts := make([]float64, len(top))
		for i, vc := range top {
			// Reverse so the most frequent bar sits on top.
			labels[len(top)-1-i] = vc.Value
			counts[len(top)-1-i] = float64(vc.Count)
		}
		err = p.charts.BarChart(charts.Humanize(col.Name), labels, counts, name)
	}

	if err != nil {
		p.log.Warn("profile summary for column %s skipped: %v", col.Name, err)
		return ""
	}
	return report.ChartArtifact(name)
}
