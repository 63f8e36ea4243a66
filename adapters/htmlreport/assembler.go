package htmlreport

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"

	"goeda/adapters/analysis"
	"goeda/domain/report"
	"goeda/internal"
	apperrors "goeda/internal/errors"
)

//go:embed templates/report_template.html
var templateFS embed.FS

// ReportFileName is the report file written into the output directory.
const ReportFileName = "eda_report.html"

// Assembler renders the accumulated report data into one self-contained
// HTML file that references chart images by their charts/ relative paths.
type Assembler struct {
	log *internal.Logger
}

// NewAssembler creates a new report assembler.
func NewAssembler(log *internal.Logger) *Assembler {
	return &Assembler{log: log}
}

// view is the template's root context.
type view struct {
	Title        string
	GeneratedAt  string
	Profile      *analysis.ProfileResult
	Univariate   []report.ChartArtifact
	Bivariate    []report.ChartArtifact
	Multivariate []report.ChartArtifact
}

// Assemble writes <outputDir>/eda_report.html. A write failure here is the
// run's terminal error; already-rendered charts stay on disk.
func (a *Assembler) Assemble(data *report.Data, outputDir string) error {
	tmpl, err := template.New("report_template.html").Funcs(template.FuncMap{
		"fmtFloat": fmtFloat,
	}).ParseFS(templateFS, "templates/report_template.html")
	if err != nil {
		return apperrors.Wrap(err, "failed to parse report template")
	}

	v := view{
		Title:        data.Title,
		GeneratedAt:  data.GeneratedAt.Format("2006-01-02 15:04:05"),
		Univariate:   data.Charts(report.KeyUnivariate),
		Bivariate:    data.Charts(report.KeyBivariate),
		Multivariate: data.Charts(report.KeyMultivariate),
	}
	if payload, ok := data.Get(report.KeyProfile); ok {
		v.Profile, _ = payload.(*analysis.ProfileResult)
	}

	reportPath := filepath.Join(outputDir, ReportFileName)
	f, err := os.Create(reportPath)
	if err != nil {
		return apperrors.Wrapf(err, "failed to create report file %s", reportPath)
	}
	defer f.Close()

	if err := tmpl.Execute(f, v); err != nil {
		return apperrors.Wrapf(err, "failed to render report %s", reportPath)
	}

	a.log.Info("report written to %s", reportPath)
	return nil
}

// fmtFloat formats a statistic for the profile table; NaN shows as a dash.
func fmtFloat(v float64) string {
	if math.IsNaN(v) {
		return "–"
	}
	return fmt.Sprintf("%.2f", v)
}
