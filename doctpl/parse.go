package doctpl

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidRun is returned when a JSON document holds an unusable run.
var ErrInvalidRun = errors.New("doctpl: invalid run")

// Parse decodes and validates a JSON document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("doctpl: parsing document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks every run's kind, alignment, weight and sizes.
func (d *Document) Validate() error {
	for i, r := range d.Runs {
		switch r.Kind {
		case KindHeading1, KindHeading2, KindHeading3, KindParagraph,
			KindListItem, KindQuote, KindRule, KindSpace:
		default:
			return fmt.Errorf("%w %d: unknown kind %q", ErrInvalidRun, i+1, r.Kind)
		}
		switch r.Align {
		case "", AlignRight, AlignLeft, AlignCenter:
		default:
			return fmt.Errorf("%w %d: unknown align %q", ErrInvalidRun, i+1, r.Align)
		}
		switch r.Weight {
		case "", WeightNormal, WeightBold:
		default:
			return fmt.Errorf("%w %d: unknown weight %q", ErrInvalidRun, i+1, r.Weight)
		}
		if r.Size < 0 || r.Gap < 0 {
			return fmt.Errorf("%w %d: negative size or gap", ErrInvalidRun, i+1)
		}
	}
	return nil
}
