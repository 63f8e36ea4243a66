package analysis

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goeda/domain/core"
	"goeda/domain/dataset"
	"goeda/domain/pipeline"
	"goeda/domain/report"
)

func TestMultivariate_AllNumericalByDefault(t *testing.T) {
	r := newTestRenderer(t)
	m := NewMultivariateRenderer(r, quietLogger())

	artifacts, err := m.Render(insuranceSample(), pipeline.MultivariateParams{Enabled: true})
	require.NoError(t, err)

	require.Equal(t, []report.ChartArtifact{"multivariate_correlation_matrix.png"}, artifacts)
	_, statErr := os.Stat(filepath.Join(r.Dir(), string(artifacts[0])))
	assert.NoError(t, statErr)
}

func TestMultivariate_ExplicitColumnSelection(t *testing.T) {
	m := NewMultivariateRenderer(newTestRenderer(t), quietLogger())

	params := pipeline.MultivariateParams{
		Enabled:         true,
		CorrelationCols: []string{"age", "bmi"},
	}
	artifacts, err := m.Render(insuranceSample(), params)

	require.NoError(t, err)
	assert.Len(t, artifacts, 1)
}

func TestMultivariate_UnknownColumnFails(t *testing.T) {
	m := NewMultivariateRenderer(newTestRenderer(t), quietLogger())

	params := pipeline.MultivariateParams{
		Enabled:         true,
		CorrelationCols: []string{"age", "height"},
	}
	_, err := m.Render(insuranceSample(), params)

	require.Error(t, err)
	assert.True(t, core.IsRenderFailure(err))
}

func TestMultivariate_NonNumericalColumnSkipped(t *testing.T) {
	m := NewMultivariateRenderer(newTestRenderer(t), quietLogger())

	params := pipeline.MultivariateParams{
		Enabled:         true,
		CorrelationCols: []string{"age", "sex", "bmi"},
	}
	artifacts, err := m.Render(insuranceSample(), params)

	require.NoError(t, err)
	assert.Len(t, artifacts, 1)
}

func TestMultivariate_TooFewColumnsIsNoOp(t *testing.T) {
	ds := dataset.New(
		[]string{"v", "label"},
		[][]string{{"1", "a"}, {"2", "b"}},
	)
	m := NewMultivariateRenderer(newTestRenderer(t), quietLogger())

	artifacts, err := m.Render(ds, pipeline.MultivariateParams{Enabled: true})

	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestPearson(t *testing.T) {
	t.Run("perfect positive", func(t *testing.T) {
		r := pearson([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
		assert.InDelta(t, 1.0, r, 1e-9)
	})

	t.Run("perfect negative", func(t *testing.T) {
		r := pearson([]float64{1, 2, 3, 4}, []float64{8, 6, 4, 2})
		assert.InDelta(t, -1.0, r, 1e-9)
	})

	t.Run("pairwise complete rows only", func(t *testing.T) {
		nan := math.NaN()
		r := pearson([]float64{1, nan, 3, 4}, []float64{2, 5, nan, 8})
		assert.InDelta(t, 1.0, r, 1e-9)
	})

	t.Run("constant column is undefined", func(t *testing.T) {
		r := pearson([]float64{5, 5, 5, 5}, []float64{1, 2, 3, 4})
		assert.True(t, math.IsNaN(r))
	})

	t.Run("fewer than two pairs is undefined", func(t *testing.T) {
		nan := math.NaN()
		r := pearson([]float64{1, nan}, []float64{nan, 2})
		assert.True(t, math.IsNaN(r))
	})
}
