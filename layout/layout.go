// Package layout paginates styled text runs onto fixed-size pages and draws
// them as PDF.
//
// Pagination is pure: Paginate places every line given a Measurer and
// returns the positions, so page breaks can be checked without producing a
// PDF. Render measures with the embedded fonts through gofpdf and draws the
// result, optionally with a signature image anchored below the landlord's
// signature label.
//
// Coordinates are in points with the origin at the top-left corner of the
// page. Y values are text baselines.
package layout

import (
	"errors"

	"github.com/orsabag2/rent/doctpl"
)

// A4 page size in points.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// DefaultMargin is applied on all four sides.
const DefaultMargin = 60.0

// Labels whose first occurrence is recorded as a landmark.
const (
	LandlordLabel = "חתימת בעל הדירה"
	TenantLabel   = "חתימת השוכר"
)

// Signature box and offset from the landlord landmark.
const (
	SignatureWidth  = 120.0
	SignatureHeight = 40.0
	SignatureOffset = 5.0
)

// ErrNoFont is returned when the fonts cannot be loaded or embedded.
var ErrNoFont = errors.New("layout: font could not be loaded")

// Measurer reports the width in points of text in the body face.
type Measurer interface {
	Width(text string, bold bool, size float64) float64
}

// Line is one placed line of text.
type Line struct {
	Text  string       `json:"text"` // logical order, after digit fix-up
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Width float64      `json:"width"`
	Size  float64      `json:"size"`
	Bold  bool         `json:"bold,omitempty"`
	Align doctpl.Align `json:"align"`
}

// Visual returns the line in drawing order. Right-aligned text carries
// digit runs reversed by FixDigits, so they are restored first.
func (l Line) Visual() string {
	text := l.Text
	if l.Align == doctpl.AlignRight {
		text = FixDigits(text)
	}
	return Visual(text)
}

// Rule is a horizontal divider.
type Rule struct {
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
	Y  float64 `json:"y"`
}

// Page holds the content placed on one page.
type Page struct {
	Lines []Line `json:"lines"`
	Rules []Rule `json:"rules,omitempty"`
}

// Landmark is the position of a recorded label. Page is 1-based.
type Landmark struct {
	Page int     `json:"page"`
	Y    float64 `json:"y"`
}

// Landmarks are stored next to a shared contract and used to place
// signatures later.
type Landmarks struct {
	Landlord *Landmark `json:"landlord,omitempty"`
	Tenant   *Landmark `json:"tenant,omitempty"`
}

// Result is the outcome of pagination.
type Result struct {
	PageWidth  float64   `json:"pageWidth"`
	PageHeight float64   `json:"pageHeight"`
	Pages      []Page    `json:"pages"`
	Landmarks  Landmarks `json:"landmarks"`
}

// Option configures pagination and rendering.
type Option func(*config)

type config struct {
	width, height            float64
	left, top, right, bottom float64
	fonts                    Fonts
	signature                []byte
}

func newConfig(opts []Option) *config {
	c := &config{
		width:  A4Width,
		height: A4Height,
		left:   DefaultMargin,
		top:    DefaultMargin,
		right:  DefaultMargin,
		bottom: DefaultMargin,
		fonts:  DefaultFonts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithPageSize sets a custom page size in points.
func WithPageSize(width, height float64) Option {
	return func(c *config) {
		c.width, c.height = width, height
	}
}

// WithMargins sets the page margins in points.
func WithMargins(left, top, right, bottom float64) Option {
	return func(c *config) {
		c.left, c.top, c.right, c.bottom = left, top, right, bottom
	}
}

// WithFonts replaces the embedded regular and bold faces.
func WithFonts(f Fonts) Option {
	return func(c *config) {
		c.fonts = f
	}
}

// WithSignature draws the PNG image below the landlord landmark.
func WithSignature(png []byte) Option {
	return func(c *config) {
		c.signature = png
	}
}
