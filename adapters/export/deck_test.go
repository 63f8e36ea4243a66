package export

import (
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

func deckData() *report.Data {
	data := report.NewData("Insurance EDA")
	data.Set(report.KeyProfile, &analysis.ProfileResult{
		Shape: analysis.Shape{Rows: 5, Cols: 2},
		Columns: []analysis.ColumnProfile{
			{
				Name:      "age",
				Kind:      dataset.KindNumerical,
				Numerical: &analysis.NumericalStats{Mean: 26, Median: 28, StdDev: 6.67},
			},
			{
				Name:        "sex",
				Kind:        dataset.KindCategorical,
				Categorical: &analysis.CategoricalStats{UniqueCount: 2, TopValue: "male", TopCount: 4},
			},
		},
	})
	data.Set(report.KeyUnivariate, []report.ChartArtifact{
		"univariate_age_histogram.png",
		"univariate_sex_barplot.png",
	})
	data.Finalize(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return data
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	e := NewDeckExporter(internal.NewLogger(internal.LogLevelError))

	require.NoError(t, e.Export(deckData(), dir))

	md, err := os.ReadFile(filepath.Join(dir, DeckMarkdownName))
	require.NoError(t, err)
	text := string(md)

	assert.Contains(t, text, "# Insurance EDA")
	assert.Contains(t, text, "## Data Profile")
	assert.Contains(t, text, "5 rows x 2 columns")
	assert.Contains(t, text, "| age | numerical | 0 | mean 26.00, median 28.00, std 6.67 |")
	assert.Contains(t, text, "2 unique, top male (4)")
	assert.Contains(t, text, "### Chart - univariate_age_histogram.png")
	assert.Contains(t, text, "![univariate_age_histogram.png](charts/univariate_age_histogram.png)")
	assert.NotContains(t, text, "Bivariate Analysis")

	html, err := os.ReadFile(filepath.Join(dir, DeckHTMLName))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<img src=\"charts/univariate_age_histogram.png\"")
	assert.Contains(t, string(html), "Insurance EDA")
}

func TestExport_EmptyRunStillWritesDeck(t *testing.T) {
	dir := t.TempDir()
	e := NewDeckExporter(internal.NewLogger(internal.LogLevelError))

	data := report.NewData("Empty")
	data.Finalize(time.Now())

	require.NoError(t, e.Export(data, dir))
	_, err := os.Stat(filepath.Join(dir, DeckMarkdownName))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, DeckHTMLName))
	assert.NoError(t, err)
}

func TestExport_UnwritableDirectory(t *testing.T) {
	e := NewDeckExporter(internal.NewLogger(internal.LogLevelError))

	err := e.Export(deckData(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
