package htmlreport

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goeda/adapters/analysis"
	"goeda/domain/dataset"
	"goeda/domain/report"
	"goeda/internal"
)

func sampleData() *report.Data {
	data := report.NewData("Insurance EDA")
	data.Set(report.KeyProfile, &analysis.ProfileResult{
		Shape: analysis.Shape{Rows: 5, Cols: 2},
		Columns: []analysis.ColumnProfile{
			{
				Name: "age",
				Kind: dataset.KindNumerical,
				Numerical: &analysis.NumericalStats{
					Mean: 26, Median: 28, StdDev: 6.67, Min: 18, Max: 33,
				},
			},
			{
				Name: "sex",
				Kind: dataset.KindCategorical,
				Categorical: &analysis.CategoricalStats{
					UniqueCount: 2, TopValue: "male", TopCount: 4,
				},
			},
		},
	})
	data.Set(report.KeyUnivariate, []report.ChartArtifact{"univariate_age_histogram.png"})
	data.Set(report.KeyMultivariate, []report.ChartArtifact{"multivariate_correlation_matrix.png"})
	data.Finalize(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return data
}

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	a := NewAssembler(internal.NewLogger(internal.LogLevelError))

	require.NoError(t, a.Assemble(sampleData(), dir))

	raw, err := os.ReadFile(filepath.Join(dir, ReportFileName))
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, "Insurance EDA")
	assert.Contains(t, html, "2025-06-01 12:00:00")
	assert.Contains(t, html, "charts/univariate_age_histogram.png")
	assert.Contains(t, html, "charts/multivariate_correlation_matrix.png")
	assert.Contains(t, html, "age")
	assert.Contains(t, html, "26.00")
	// The bivariate section was never populated and must not appear.
	assert.NotContains(t, html, "Bivariate Analysis")
}

func TestAssemble_EmptyRun(t *testing.T) {
	dir := t.TempDir()
	a := NewAssembler(internal.NewLogger(internal.LogLevelError))

	data := report.NewData("Empty")
	data.Finalize(time.Now())

	require.NoError(t, a.Assemble(data, dir))
	_, err := os.Stat(filepath.Join(dir, ReportFileName))
	assert.NoError(t, err)
}

func TestAssemble_MissingDirectoryFails(t *testing.T) {
	a := NewAssembler(internal.NewLogger(internal.LogLevelError))

	err := a.Assemble(sampleData(), filepath.Join(t.TempDir(), "does", "not", "exist"))
	require.Error(t, err)
}

func TestFmtFloat(t *testing.T) {
	assert.Equal(t, "26.00", fmtFloat(26))
	assert.Equal(t, "0.50", fmtFloat(0.5))
	assert.Equal(t, "–", fmtFloat(math.NaN()))
}
