package charts

import (
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Palette for all charts: one strong primary color for data ink, soft
// grays for context.
var (
	PrimaryBlue     = color.RGBA{R: 0x1a, G: 0x53, B: 0x5c, A: 0xff}
	AccentAqua      = color.RGBA{R: 0x4e, G: 0xcd, B: 0xc4, A: 0xff}
	BackgroundColor = color.RGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}
	TextColor       = color.RGBA{R: 0x34, G: 0x3a, B: 0x40, A: 0xff}
	GridColor       = color.RGBA{R: 0xde, G: 0xe2, B: 0xe6, A: 0xff}
	UndefinedGray   = color.RGBA{R: 0xad, G: 0xb5, B: 0xbd, A: 0xff}
)

// Standard figure size, matching a 10x6 layout.
const (
	figWidth  = 10 * vg.Inch
	figHeight = 6 * vg.Inch
)

// applyStyle sets the shared look of a plot: soft background, muted text,
// padded left-aligned title.
func applyStyle(p *plot.Plot) {
	p.BackgroundColor = BackgroundColor
	p.Title.TextStyle.Color = TextColor
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(12)
	p.X.Label.TextStyle.Color = TextColor
	p.Y.Label.TextStyle.Color = TextColor
	p.X.Color = UndefinedGray
	p.Y.Color = UndefinedGray
	p.X.Tick.Color = UndefinedGray
	p.Y.Tick.Color = UndefinedGray
	p.X.Tick.Label.Color = TextColor
	p.Y.Tick.Label.Color = TextColor
}

// Humanize turns a column name like "patient_age" into "Patient Age" for
// chart titles and axis labels.
func Humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
