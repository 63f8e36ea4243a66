package analysis

import (
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

func TestUnivariate_DefaultPlotTypes(t *testing.T) {
	r := newTestRenderer(t)
	u := NewUnivariateRenderer(r, quietLogger())

	artifacts, err := u.Render(insuranceSample(), pipeline.UnivariateParams{Enabled: true})
	require.NoError(t, err)

	// Three numerical columns x (histogram, boxplot) plus one categorical barplot.
	want := []report.ChartArtifact{
		"univariate_age_histogram.png",
		"univariate_age_boxplot.png",
		"univariate_sex_barplot.png",
		"univariate_bmi_histogram.png",
		"univariate_bmi_boxplot.png",
		"univariate_charges_histogram.png",
		"univariate_charges_boxplot.png",
	}
	assert.Equal(t, want, artifacts)

	for _, a := range artifacts {
		_, statErr := os.Stat(filepath.Join(r.Dir(), string(a)))
		assert.NoError(t, statErr, a)
	}
}

func TestUnivariate_PlotTypeOrderIsPreserved(t *testing.T) {
	u := NewUnivariateRenderer(newTestRenderer(t), quietLogger())

	params := pipeline.UnivariateParams{
		Enabled: true,
		PlotTypes: map[string][]string{
			string(dataset.KindNumerical): {"boxplot", "histogram"},
		},
	}
	ds := dataset.New([]string{"v"}, [][]string{{"1"}, {"2"}, {"3"}})

	artifacts, err := u.Render(ds, params)
	require.NoError(t, err)
	assert.Equal(t, []report.ChartArtifact{
		"univariate_v_boxplot.png",
		"univariate_v_histogram.png",
	}, artifacts)
}

func TestUnivariate_UnknownPlotTypeIgnored(t *testing.T) {
	u := NewUnivariateRenderer(newTestRenderer(t), quietLogger())

	params := pipeline.UnivariateParams{
		Enabled: true,
		PlotTypes: map[string][]string{
			string(dataset.KindNumerical): {"violin", "histogram"},
		},
	}
	ds := dataset.New([]string{"v"}, [][]string{{"1"}, {"2"}, {"3"}})

	artifacts, err := u.Render(ds, params)
	require.NoError(t, err)
	assert.Equal(t, []report.ChartArtifact{"univariate_v_histogram.png"}, artifacts)
}

func TestUnivariate_BarplotOnlyWhenRequested(t *testing.T) {
	u := NewUnivariateRenderer(newTestRenderer(t), quietLogger())

	params := pipeline.UnivariateParams{
		Enabled: true,
		PlotTypes: map[string][]string{
			string(dataset.KindNumerical): {"histogram"},
		},
	}

	artifacts, err := u.Render(insuranceSample(), params)
	require.NoError(t, err)
	for _, a := range artifacts {
		assert.NotContains(t, string(a), "barplot")
	}
}

func TestUnivariate_InvalidMaxCategoriesFailsStep(t *testing.T) {
	u := NewUnivariateRenderer(newTestRenderer(t), quietLogger())

	params := pipeline.UnivariateParams{
		Enabled:       true,
		MaxCategories: -3,
		PlotTypes: map[string][]string{
			string(dataset.KindCategorical): {"barplot"},
		},
	}

	_, err := u.Render(insuranceSample(), params)
	require.Error(t, err)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestUnivariate_EmptyColumnSkipped(t *testing.T) {
	u := NewUnivariateRenderer(newTestRenderer(t), quietLogger())

	ds := dataset.New([]string{"blank"}, [][]string{{""}, {""}})
	artifacts, err := u.Render(ds, pipeline.UnivariateParams{Enabled: true})

	require.NoError(t, err)
	assert.Empty(t, artifacts)
}
