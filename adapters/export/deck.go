package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"goeda/adapters/analysis"
	"goeda/domain/report"
	"goeda/internal"
	apperrors "goeda/internal/errors"
)

// File names written into the output directory.
const (
	DeckMarkdownName = "eda_summary.md"
	DeckHTMLName     = "eda_summary.html"
)

// DeckExporter writes a slide-style summary of a run: one markdown section
// per profile table and chart, plus a standalone HTML rendering of it.
// It replaces the legacy presentation exporter and reads only the report
// accumulator, never the analysis internals.
type DeckExporter struct {
	log *internal.Logger
}

// NewDeckExporter creates a new summary deck exporter.
func NewDeckExporter(log *internal.Logger) *DeckExporter {
	return &DeckExporter{log: log}
}

// Export writes eda_summary.md and eda_summary.html next to the report.
func (e *DeckExporter) Export(data *report.Data, outputDir string) error {
	md := e.buildMarkdown(data)

	mdPath := filepath.Join(outputDir, DeckMarkdownName)
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return apperrors.Wrapf(err, "failed to write summary deck %s", mdPath)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.CompletePage})
	htmlOut := markdown.Render(doc, renderer)

	htmlPath := filepath.Join(outputDir, DeckHTMLName)
	if err := os.WriteFile(htmlPath, htmlOut, 0o644); err != nil {
		return apperrors.Wrapf(err, "failed to write summary deck %s", htmlPath)
	}

	e.log.Info("summary deck written to %s", mdPath)
	return nil
}

func (e *DeckExporter) buildMarkdown(data *report.Data) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", data.Title)
	fmt.Fprintf(&b, "Generated at %s\n\n", data.GeneratedAt.Format("2006-01-02 15:04:05"))

	if payload, ok := data.Get(report.KeyProfile); ok {
		if profile, ok := payload.(*analysis.ProfileResult); ok {
			writeProfileSection(&b, profile)
		}
	}

	sections := []struct {
		title string
		key   report.Key
	}{
		{"Univariate Analysis", report.KeyUnivariate},
		{"Bivariate Analysis", report.KeyBivariate},
		{"Multivariate Analysis", report.KeyMultivariate},
	}
	for _, s := range sections {
		charts := data.Charts(s.key)
		if len(charts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", s.title)
		for _, c := range charts {
			fmt.Fprintf(&b, "### Chart - %s\n\n![%s](charts/%s)\n\n", c, c, c)
		}
	}

	return b.String()
}

func writeProfileSection(b *strings.Builder, profile *analysis.ProfileResult) {
	fmt.Fprintf(b, "## Data Profile\n\n%d rows x %d columns\n\n", profile.Shape.Rows, profile.Shape.Cols)
	b.WriteString("| Column | Kind | Missing | Detail |\n|---|---|---|---|\n")
	for _, col := range profile.Columns {
		detail := ""
		switch {
		case col.Numerical != nil:
			detail = fmt.Sprintf("mean %.2f, median %.2f, std %.2f", col.Numerical.Mean, col.Numerical.Median, col.Numerical.StdDev)
		case col.Categorical != nil:
			detail = fmt.Sprintf("%d unique, top %s (%d)", col.Categorical.UniqueCount, col.Categorical.TopValue, col.Categorical.TopCount)
		}
		fmt.Fprintf(b, "| %s | %s | %d | %s |\n", col.Name, col.Kind, col.MissingCount, detail)
	}
	b.WriteString("\n")
}
