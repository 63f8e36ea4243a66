package report

import (
	"time"

	"goeda/domain/pipeline"
)

// Key identifies one step's slot in the report accumulator.
type Key string

const (
	KeyProfile      Key = "profile"
	KeyUnivariate   Key = "univariate_plots"
	KeyBivariate    Key = "bivariate_plots"
	KeyMultivariate Key = "multivariate_plots"
)

// KeyFor maps a step kind to its fixed report key.
func KeyFor(kind pipeline.StepKind) Key {
	switch kind {
	case pipeline.StepProfile:
		return KeyProfile
	case pipeline.StepUnivariate:
		return KeyUnivariate
	case pipeline.StepBivariate:
		return KeyBivariate
	case pipeline.StepMultivariate:
		return KeyMultivariate
	}
	return ""
}

// ChartArtifact is the relative path of one rendered chart image, resolved
// against the run's charts directory.
type ChartArtifact string

// Data accumulates step results for report assembly. It is owned by exactly
// one orchestrator run; there are no concurrent writers.
type Data struct {
	Title       string
	GeneratedAt time.Time

	sections map[Key]interface{}
}

// NewData creates an empty accumulator with the given report title.
func NewData(title string) *Data {
	return &Data{
		Title:    title,
		sections: make(map[Key]interface{}),
	}
}

// Set stores a step's payload under its key, overwriting nothing: the first
// write wins, which makes duplicate pipeline steps idempotent.
func (d *Data) Set(key Key, payload interface{}) bool {
	if _, exists := d.sections[key]; exists {
		return false
	}
	d.sections[key] = payload
	return true
}

// Has reports whether a key has been populated.
func (d *Data) Has(key Key) bool {
	_, ok := d.sections[key]
	return ok
}

// Get returns a key's payload.
func (d *Data) Get(key Key) (interface{}, bool) {
	v, ok := d.sections[key]
	return v, ok
}

// Charts returns the artifact list stored under a plot key, or nil.
func (d *Data) Charts(key Key) []ChartArtifact {
	v, ok := d.sections[key]
	if !ok {
		return nil
	}
	charts, _ := v.([]ChartArtifact)
	return charts
}

// Len returns the number of populated keys.
func (d *Data) Len() int {
	return len(d.sections)
}

// Finalize stamps the generation time once, before report assembly.
func (d *Data) Finalize(now time.Time) {
	if d.GeneratedAt.IsZero() {
		d.GeneratedAt = now
	}
}
