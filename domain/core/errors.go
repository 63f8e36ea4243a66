package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors abort a run before any step executes
	ErrConfiguration    = errors.New("invalid configuration")
	ErrUnknownStep      = fmt.Errorf("%w: unknown analysis step", ErrConfiguration)
	ErrAmbiguousStep    = fmt.Errorf("%w: step block must populate exactly one variant", ErrConfiguration)
	ErrUnsupportedInput = fmt.Errorf("%w: unsupported input format", ErrConfiguration)

	// Parameter errors fail fast at the point of use
	ErrInvalidParameter = errors.New("invalid parameter")

	// MissingTarget marks a planned bivariate skip, not a pipeline failure
	ErrMissingTarget = errors.New("bivariate analysis requires a target column")

	// Step-local render failures are caught at the orchestrator boundary
	ErrRenderFailure = errors.New("chart rendering failed")

	// ReportAssembly failures are the run's terminal error
	ErrReportAssembly = errors.New("report assembly failed")
)

// Error constructors with context
func NewConfigurationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, reason)
}

func NewInvalidParameterError(name string, value interface{}) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidParameter, name, value)
}

func NewRenderError(step string, err error) error {
	return fmt.Errorf("%w in step %s: %v", ErrRenderFailure, step, err)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsMissingTarget(err error) bool {
	return errors.Is(err, ErrMissingTarget)
}

func IsRenderFailure(err error) bool {
	return errors.Is(err, ErrRenderFailure)
}
