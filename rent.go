// Package rent renders Hebrew residential rental contracts.
//
// A Renderer holds the questionnaire, the general clause list and the
// master template. From a set of answers it produces contract HTML in one
// of two modes and paginates that HTML into an A4 PDF:
//
//	r, err := rent.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	answers := clause.Answers{"fullName": "דנה כהן", "monthlyRent": "5000"}
//	res, err := r.PDF(w, answers, rent.ModeClauses, nil)
//
// ModeClauses assembles the general clauses with the dynamic clauses
// selected by the answers. ModeTemplate cleans the master template: lines
// with unanswered placeholders are dropped and the survivors renumbered.
package rent

import (
	"fmt"
	"io"

	"github.com/orsabag2/rent/assemble"
	"github.com/orsabag2/rent/assets"
	"github.com/orsabag2/rent/clause"
	"github.com/orsabag2/rent/doctpl"
	"github.com/orsabag2/rent/layout"
	"github.com/orsabag2/rent/tpl"
)

// Mode selects how contract HTML is produced.
type Mode string

const (
	ModeClauses  Mode = "clauses"
	ModeTemplate Mode = "template"
)

// ParseMode maps a request value to a Mode. The empty string selects
// ModeClauses.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeClauses:
		return ModeClauses, nil
	case ModeTemplate:
		return ModeTemplate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Renderer turns answers into contract HTML and PDF. It is safe for
// concurrent use.
type Renderer struct {
	questions []clause.Definition
	master    string
	title     string
	assembler *assemble.Assembler
	layout    []layout.Option
}

// New returns a Renderer configured by opts.
func New(opts ...Option) (*Renderer, error) {
	cfg := &rendererConfig{titleSection: tpl.DocumentTitle}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.bundle == nil {
		b, err := assets.Default()
		if err != nil {
			return nil, newOpError("New", err)
		}
		cfg.bundle = b
	}
	if len(cfg.bundle.Questions) == 0 {
		return nil, newOpError("New", ErrNoQuestions)
	}

	r := &Renderer{
		questions: cfg.bundle.Questions,
		master:    cfg.bundle.Master,
		title:     cfg.titleSection,
	}

	asmOpts := []assemble.Option{assemble.WithTitleSection(cfg.titleSection)}
	if cfg.rawValues {
		asmOpts = append(asmOpts, assemble.WithRawValues())
	}
	r.assembler = assemble.New(cfg.bundle.General, cfg.bundle.Questions, asmOpts...)

	if cfg.fonts != nil {
		r.layout = append(r.layout, layout.WithFonts(*cfg.fonts))
	}
	if m := cfg.margins; m != nil {
		for _, v := range m {
			if v < 0 {
				return nil, newOpError("New", fmt.Errorf("%w: negative margin %v", ErrInvalidParam, v))
			}
		}
		r.layout = append(r.layout, layout.WithMargins(m[0], m[1], m[2], m[3]))
	}
	return r, nil
}

// Questions returns the questionnaire definitions.
func (r *Renderer) Questions() []clause.Definition {
	return r.questions
}

// Sections returns the questionnaire grouped by section, numbered
// sections first.
func (r *Renderer) Sections() []clause.Section {
	sections := clause.GroupSections(r.questions)
	clause.SortSections(sections)
	return sections
}

// NewSession starts a questionnaire session over the renderer's questions.
func (r *Renderer) NewSession() *clause.Session {
	return clause.NewSession(r.questions)
}

// ContractHTML returns the contract body for answers. Address parts missing
// from answers are derived from the full property address first.
func (r *Renderer) ContractHTML(answers clause.Answers, mode Mode) (string, error) {
	filled := clause.FillAddress(answers)
	switch mode {
	case ModeClauses, "":
		return r.assembler.HTML(filled), nil
	case ModeTemplate:
		if r.master == "" {
			return "", newOpError("ContractHTML", ErrNoTemplate)
		}
		return tpl.CleanHTML(r.master, filled, r.title), nil
	}
	return "", newOpError("ContractHTML", fmt.Errorf("%w: %q", ErrUnknownMode, mode))
}

// ContractText returns the cleaned master template as plain text.
func (r *Renderer) ContractText(answers clause.Answers) (string, error) {
	if r.master == "" {
		return "", newOpError("ContractText", ErrNoTemplate)
	}
	return tpl.CleanText(r.master, clause.FillAddress(answers)), nil
}

// PDF renders the contract for answers and writes it to w. A non-empty
// signature PNG is placed under the landlord signature line.
func (r *Renderer) PDF(w io.Writer, answers clause.Answers, mode Mode, signature []byte) (layout.Result, error) {
	body, err := r.ContractHTML(answers, mode)
	if err != nil {
		return layout.Result{}, err
	}
	return r.PDFFromHTML(w, body, signature)
}

// PDFFromHTML paginates arbitrary contract HTML. Markup outside the
// supported subset is stripped first.
func (r *Renderer) PDFFromHTML(w io.Writer, rawHTML string, signature []byte) (layout.Result, error) {
	runs, err := doctpl.FromHTML(rawHTML)
	if err != nil {
		return layout.Result{}, newOpError("PDFFromHTML", err)
	}
	return r.render("PDFFromHTML", w, runs, signature)
}

// PDFFromText paginates plain text, one right-aligned paragraph per line.
func (r *Renderer) PDFFromText(w io.Writer, text string) (layout.Result, error) {
	return r.render("PDFFromText", w, doctpl.FromText(text), nil)
}

// PDFFromDocument paginates a prepared run document.
func (r *Renderer) PDFFromDocument(w io.Writer, doc *doctpl.Document, signature []byte) (layout.Result, error) {
	if doc == nil {
		return layout.Result{}, newOpError("PDFFromDocument", fmt.Errorf("%w: nil document", ErrInvalidParam))
	}
	if err := doc.Validate(); err != nil {
		return layout.Result{}, newOpError("PDFFromDocument", err)
	}
	return r.render("PDFFromDocument", w, doc.Runs, signature)
}

func (r *Renderer) render(op string, w io.Writer, runs []doctpl.Run, signature []byte) (layout.Result, error) {
	opts := r.layout
	if len(signature) > 0 {
		opts = append(append([]layout.Option{}, r.layout...), layout.WithSignature(signature))
	}
	res, err := layout.Render(w, runs, opts...)
	if err != nil {
		return res, newOpError(op, err)
	}
	return res, nil
}
