// Package doctpl converts contract documents into a flat sequence of styled
// text runs ready for pagination.
//
// Runs come from three sources: rich-text HTML produced by the contract
// editor (FromHTML), plain summary text (FromText), or a JSON document that
// lists the runs directly (Parse).
//
// Example JSON:
//
//	{
//	  "title": "חוזה שכירות",
//	  "runs": [
//	    {"kind": "heading1", "text": "הסכם שכירות", "weight": "bold", "align": "center", "size": 16},
//	    {"kind": "space", "gap": 10},
//	    {"kind": "paragraph", "text": "שנערך ונחתם ביום 01/08/2025"}
//	  ]
//	}
package doctpl

// Kind is the block kind a run was produced from.
type Kind string

const (
	KindHeading1  Kind = "heading1"
	KindHeading2  Kind = "heading2"
	KindHeading3  Kind = "heading3"
	KindParagraph Kind = "paragraph"
	KindListItem  Kind = "listItem"
	KindRule      Kind = "rule"
	KindQuote     Kind = "quote"
	KindSpace     Kind = "space"
)

// Align is the horizontal alignment of a run.
type Align string

const (
	AlignRight  Align = "right"
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Weight is the font weight of a run.
type Weight string

const (
	WeightNormal Weight = "normal"
	WeightBold   Weight = "bold"
)

// Point sizes used for each block kind.
const (
	SizeHeading1 = 16.0
	SizeHeading2 = 13.0
	SizeHeading3 = 11.0
	SizeBody     = 10.0
	SizeSummary  = 14.0
)

// Document is a titled run sequence.
type Document struct {
	Title string `json:"title,omitempty"`
	Runs  []Run  `json:"runs"`
}

// Run is one unit of laid-out content. Text runs start on a new line and
// wrap within the page. Space runs only advance the cursor by Gap points.
// Rule runs draw a full-width divider.
type Run struct {
	Kind   Kind    `json:"kind"`
	Text   string  `json:"text,omitempty"`
	Weight Weight  `json:"weight,omitempty"`
	Align  Align   `json:"align,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Gap    float64 `json:"gap,omitempty"`
}

// Space returns a run that advances the cursor by gap points.
func Space(gap float64) Run {
	return Run{Kind: KindSpace, Gap: gap}
}

// Rule returns a divider run.
func Rule() Run {
	return Run{Kind: KindRule}
}

// Bold reports whether r is drawn with the bold face.
func (r Run) Bold() bool {
	return r.Weight == WeightBold
}

// IsText reports whether r carries text to draw.
func (r Run) IsText() bool {
	return r.Kind != KindSpace && r.Kind != KindRule
}

// FontSize returns Size, or the default size of the run's kind when Size
// is unset.
func (r Run) FontSize() float64 {
	if r.Size > 0 {
		return r.Size
	}
	switch r.Kind {
	case KindHeading1:
		return SizeHeading1
	case KindHeading2:
		return SizeHeading2
	case KindHeading3:
		return SizeHeading3
	}
	return SizeBody
}

// Alignment returns Align, defaulting to right.
func (r Run) Alignment() Align {
	if r.Align == "" {
		return AlignRight
	}
	return r.Align
}
