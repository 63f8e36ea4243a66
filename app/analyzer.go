package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"goeda/adapters/analysis"
	"goeda/adapters/charts"
	"goeda/domain/core"
	"goeda/domain/dataset"
	"goeda/domain/pipeline"
	"goeda/domain/report"
	"goeda/internal"
	"goeda/internal/config"
)

// State names the orchestrator's position in the run lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateRunning    State = "running"
	StateFinalizing State = "finalizing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// ReportAssembler consumes the accumulated report data and persists the
// final report into the output directory.
type ReportAssembler interface {
	Assemble(data *report.Data, outputDir string) error
}

// StepIssue records one skipped or degraded step for the run summary.
type StepIssue struct {
	Step  pipeline.StepKind
	Cause error
}

// Analyzer orchestrates one analysis run: it executes the enabled pipeline
// steps in declared order, accumulates their results, and triggers report
// assembly.
//
// One Analyzer owns its output directory and ReportData for the lifetime of
// a Run call. Run performs a destructive reset of the charts subdirectory,
// so two runs must never share an output directory concurrently; callers
// are responsible for serializing runs per directory.
type Analyzer struct {
	ds        *dataset.Dataset
	cfg       *config.Config
	assembler ReportAssembler
	log       *internal.Logger

	runID  core.RunID
	state  State
	issues []StepIssue
}

// NewAnalyzer creates an idle analyzer for one dataset and configuration.
func NewAnalyzer(ds *dataset.Dataset, cfg *config.Config, assembler ReportAssembler, log *internal.Logger) *Analyzer {
	return &Analyzer{
		ds:        ds,
		cfg:       cfg,
		assembler: assembler,
		log:       log,
		runID:     core.NewRunID(),
		state:     StateIdle,
	}
}

// State returns the current lifecycle state.
func (a *Analyzer) State() State {
	return a.state
}

// Issues returns the skipped/degraded steps of the last run.
func (a *Analyzer) Issues() []StepIssue {
	return a.issues
}

// Run executes the pipeline. Per-step render failures are caught, logged
// with the step name, and leave that step's report key absent while the
// pipeline continues. Configuration and parameter errors abort the run.
// A report-assembly failure is the run's terminal error but does not
// invalidate already-computed step results.
func (a *Analyzer) Run() (*report.Data, error) {
	if a.state != StateIdle {
		return nil, fmt.Errorf("analyzer already ran (state %s)", a.state)
	}

	if err := a.cfg.ValidateAgainst(a.ds); err != nil {
		a.state = StateFailed
		return nil, err
	}

	chartsDir, err := a.resetChartsDir()
	if err != nil {
		a.state = StateFailed
		return nil, err
	}

	renderer := charts.NewRenderer(chartsDir)
	profiler := analysis.NewProfiler(renderer, a.log)
	univariate := analysis.NewUnivariateRenderer(renderer, a.log)
	bivariate := analysis.NewBivariateRenderer(renderer, a.log)
	multivariate := analysis.NewMultivariateRenderer(renderer, a.log)

	data := report.NewData(a.cfg.ReportTitle)
	a.state = StateRunning

	for _, step := range a.cfg.AnalysisPipeline {
		kind, err := step.Kind()
		if err != nil {
			a.state = StateFailed
			return nil, err
		}
		if !step.Enabled() {
			continue
		}

		key := report.KeyFor(kind)
		if data.Has(key) {
			a.log.Warn("step %s appears more than once, ignoring the duplicate", kind)
			continue
		}

		a.log.Info("--- Running Step: %s ---", kind)

		var payload interface{}
		switch kind {
		case pipeline.StepProfile:
			payload, err = profiler.Profile(a.ds)
		case pipeline.StepUnivariate:
			payload, err = univariate.Render(a.ds, *step.Univariate)
		case pipeline.StepBivariate:
			payload, err = bivariate.Render(a.ds, a.cfg.TargetVariable, *step.Bivariate)
		case pipeline.StepMultivariate:
			payload, err = multivariate.Render(a.ds, *step.Multivariate)
		}

		if err != nil {
			if core.IsMissingTarget(err) {
				// Planned skip, not a failure: the step contributes no key.
				a.log.Warn("bivariate 'target_centric' is true, but no target column is configured, skipping")
				a.issues = append(a.issues, StepIssue{Step: kind, Cause: err})
				continue
			}
			if core.IsInvalidParameter(err) || core.IsConfigurationError(err) {
				a.state = StateFailed
				return nil, err
			}
			// Step failures are isolated: log and move on without the key.
			a.log.Error("step %s failed: %v", kind, err)
			a.issues = append(a.issues, StepIssue{Step: kind, Cause: err})
			continue
		}

		data.Set(key, payload)
	}

	a.state = StateFinalizing
	a.log.Info("--- Generating Report ---")
	data.Finalize(time.Now())

	if err := a.assembler.Assemble(data, a.cfg.OutputDir); err != nil {
		a.state = StateFailed
		return data, fmt.Errorf("%w: %v", core.ErrReportAssembly, err)
	}

	a.state = StateDone
	return data, nil
}

// resetChartsDir removes stale prior-run artifacts and recreates the chart
// subdirectory.
func (a *Analyzer) resetChartsDir() (string, error) {
	chartsDir := filepath.Join(a.cfg.OutputDir, "charts")
	if err := os.RemoveAll(chartsDir); err != nil {
		return "", fmt.Errorf("reset charts directory: %w", err)
	}
	if err := os.MkdirAll(chartsDir, 0o755); err != nil {
		return "", fmt.Errorf("create charts directory: %w", err)
	}
	return chartsDir, nil
}
