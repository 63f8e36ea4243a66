package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goeda/domain/core"
)

func TestStep_KindExactlyOneVariant(t *testing.T) {
	step := Step{Profile: &ProfileParams{Enabled: true}}

	kind, err := step.Kind()
	require.NoError(t, err)
	assert.Equal(t, StepProfile, kind)
}

func TestStep_KindRejectsEmptyStep(t *testing.T) {
	_, err := Step{}.Kind()

	require.Error(t, err)
	assert.True(t, core.IsConfigurationError(err))
}

func TestStep_KindRejectsMultipleVariants(t *testing.T) {
	step := Step{
		Profile:    &ProfileParams{Enabled: true},
		Univariate: &UnivariateParams{Enabled: true},
	}

	_, err := step.Kind()
	require.Error(t, err)
	assert.True(t, core.IsConfigurationError(err))
}

func TestStep_Enabled(t *testing.T) {
	assert.True(t, Step{Bivariate: &BivariateParams{Enabled: true}}.Enabled())
	assert.False(t, Step{Bivariate: &BivariateParams{}}.Enabled())
	assert.False(t, Step{}.Enabled())
}

func TestPipeline_Validate(t *testing.T) {
	good := Pipeline{
		{Profile: &ProfileParams{Enabled: true}},
		{Multivariate: &MultivariateParams{Enabled: true}},
	}
	require.NoError(t, good.Validate())

	bad := Pipeline{
		{Profile: &ProfileParams{Enabled: true}},
		{},
	}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1")
}
