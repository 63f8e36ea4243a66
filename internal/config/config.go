package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"goeda/domain/core"
	"goeda/domain/dataset"
	"goeda/domain/pipeline"
	apperrors "goeda/internal/errors"
)

// DefaultReportTitle is used when the config omits report_title.
const DefaultReportTitle = "EDA Report"

// Config is the validated run configuration. It is constructed once before
// a run and treated as immutable for the run's duration.
type Config struct {
	InputFile        string            `koanf:"input_file" yaml:"input_file"`
	OutputDir        string            `koanf:"output_dir" yaml:"output_dir"`
	ReportTitle      string            `koanf:"report_title" yaml:"report_title"`
	TargetVariable   string            `koanf:"target_variable" yaml:"target_variable,omitempty"`
	AnalysisPipeline pipeline.Pipeline `koanf:"analysis_pipeline" yaml:"analysis_pipeline"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, core.NewConfigurationError(fmt.Sprintf("config file not found: %s", path))
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, apperrors.Wrapf(err, "failed to read config file %s", path)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, apperrors.Wrapf(err, "failed to decode config file %s", path)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills optional fields.
func (c *Config) ApplyDefaults() {
	if c.ReportTitle == "" {
		c.ReportTitle = DefaultReportTitle
	}
}

// Validate fails fast on a provably-invalid plan, before any step runs.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return core.NewConfigurationError("config must contain 'input_file'")
	}
	if c.OutputDir == "" {
		return core.NewConfigurationError("config must contain 'output_dir'")
	}
	return c.AnalysisPipeline.Validate()
}

// ValidateAgainst checks dataset-dependent constraints: a configured target
// column must exist.
func (c *Config) ValidateAgainst(ds *dataset.Dataset) error {
	if c.TargetVariable != "" && !ds.HasColumn(c.TargetVariable) {
		return core.NewConfigurationError(fmt.Sprintf("target column %q not found in dataset", c.TargetVariable))
	}
	return nil
}
