package pipeline

import (
	"fmt"

	"goeda/domain/core"
	"goeda/domain/dataset"
)

// StepKind names one of the four analysis step variants.
type StepKind string

const (
	StepProfile      StepKind = "profile"
	StepUnivariate   StepKind = "univariate"
	StepBivariate    StepKind = "bivariate"
	StepMultivariate StepKind = "multivariate"
)

// DefaultMaxCategories caps distinct categorical values before plotting.
const DefaultMaxCategories = 20

// ProfileParams configures the dataset profiling step.
type ProfileParams struct {
	Enabled bool `koanf:"enabled" yaml:"enabled"`
}

// UnivariateParams configures single-column chart generation. PlotTypes maps
// a column kind name ("numerical"/"categorical") to the plot types requested
// for it; unknown plot-type names are ignored by the renderer.
type UnivariateParams struct {
	Enabled       bool                `koanf:"enabled" yaml:"enabled"`
	PlotTypes     map[string][]string `koanf:"plot_types" yaml:"plot_types,omitempty"`
	MaxCategories int                 `koanf:"max_categories" yaml:"max_categories,omitempty"`
}

// DefaultUnivariatePlotTypes returns the standard plot selection.
func DefaultUnivariatePlotTypes() map[string][]string {
	return map[string][]string{
		string(dataset.KindNumerical):   {"histogram", "boxplot"},
		string(dataset.KindCategorical): {"barplot"},
	}
}

// BivariateParams configures target-centric pairwise chart generation.
type BivariateParams struct {
	Enabled       bool `koanf:"enabled" yaml:"enabled"`
	TargetCentric bool `koanf:"target_centric" yaml:"target_centric"`
	MaxCategories int  `koanf:"max_categories" yaml:"max_categories,omitempty"`
}

// MultivariateParams configures the correlation heatmap. An empty
// CorrelationCols selects all numerical columns.
type MultivariateParams struct {
	Enabled         bool     `koanf:"enabled" yaml:"enabled"`
	CorrelationCols []string `koanf:"correlation_cols" yaml:"correlation_cols,omitempty"`
}

// Step is a tagged variant: exactly one of the four pointers must be set.
type Step struct {
	Profile      *ProfileParams      `koanf:"profile" yaml:"profile,omitempty"`
	Univariate   *UnivariateParams   `koanf:"univariate" yaml:"univariate,omitempty"`
	Bivariate    *BivariateParams    `koanf:"bivariate" yaml:"bivariate,omitempty"`
	Multivariate *MultivariateParams `koanf:"multivariate" yaml:"multivariate,omitempty"`
}

// Kind returns the populated variant's kind, or a configuration error if
// the step populates zero or more than one variant.
func (s Step) Kind() (StepKind, error) {
	var kind StepKind
	n := 0
	if s.Profile != nil {
		kind, n = StepProfile, n+1
	}
	if s.Univariate != nil {
		kind, n = StepUnivariate, n+1
	}
	if s.Bivariate != nil {
		kind, n = StepBivariate, n+1
	}
	if s.Multivariate != nil {
		kind, n = StepMultivariate, n+1
	}
	if n != 1 {
		return "", core.ErrAmbiguousStep
	}
	return kind, nil
}

// Enabled reports whether the populated variant is enabled. A malformed
// step reports false.
func (s Step) Enabled() bool {
	switch {
	case s.Profile != nil:
		return s.Profile.Enabled
	case s.Univariate != nil:
		return s.Univariate.Enabled
	case s.Bivariate != nil:
		return s.Bivariate.Enabled
	case s.Multivariate != nil:
		return s.Multivariate.Enabled
	}
	return false
}

// Pipeline is the ordered analysis plan; insertion order is execution order.
type Pipeline []Step

// Validate checks that every step decodes to exactly one variant.
func (p Pipeline) Validate() error {
	for i, step := range p {
		if _, err := step.Kind(); err != nil {
			return core.NewConfigurationError(fmt.Sprintf(
				"analysis_pipeline step %d must populate exactly one of profile/univariate/bivariate/multivariate", i))
		}
	}
	return nil
}
