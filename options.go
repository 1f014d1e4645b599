package rent

import (
	"github.com/orsabag2/rent/assets"
	"github.com/orsabag2/rent/layout"
)

// Option is a functional option for configuring a Renderer via New.
type Option func(*rendererConfig)

type rendererConfig struct {
	bundle       *assets.Bundle
	titleSection string
	rawValues    bool
	fonts        *layout.Fonts
	margins      []float64
}

// WithBundle sets the questions, general clauses and master template.
// Without it the embedded defaults are used.
func WithBundle(b *assets.Bundle) Option {
	return func(c *rendererConfig) {
		c.bundle = b
	}
}

// WithTitleSection names the section rendered as the document title and the
// master template line rendered as the top heading.
func WithTitleSection(title string) Option {
	return func(c *rendererConfig) {
		c.titleSection = title
	}
}

// WithRawValues inserts answers into HTML without escaping. Only for
// callers that trust every answer.
func WithRawValues() Option {
	return func(c *rendererConfig) {
		c.rawValues = true
	}
}

// WithFonts sets the TrueType faces used for PDF output.
func WithFonts(f layout.Fonts) Option {
	return func(c *rendererConfig) {
		c.fonts = &f
	}
}

// WithMargins sets the page margins in points.
func WithMargins(left, top, right, bottom float64) Option {
	return func(c *rendererConfig) {
		c.margins = []float64{left, top, right, bottom}
	}
}
