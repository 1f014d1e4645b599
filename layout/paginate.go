package layout

import (
	"math"
	"strings"

	"github.com/orsabag2/rent/doctpl"
)

type state int

const (
	writing state = iota
	pageBreak
)

type paginator struct {
	cfg     *config
	measure Measurer
	state   state
	cursorY float64
	res     Result
}

// Paginate lays out runs with the given metrics. The result always has at
// least one page.
func Paginate(runs []doctpl.Run, m Measurer, opts ...Option) Result {
	return paginate(runs, m, newConfig(opts))
}

func paginate(runs []doctpl.Run, m Measurer, cfg *config) Result {
	p := &paginator{
		cfg:     cfg,
		measure: m,
		cursorY: cfg.top,
		res: Result{
			PageWidth:  cfg.width,
			PageHeight: cfg.height,
			Pages:      []Page{{}},
		},
	}
	for _, r := range runs {
		switch r.Kind {
		case doctpl.KindSpace:
			p.cursorY += r.Gap
		case doctpl.KindRule:
			p.rule()
		default:
			p.text(r)
		}
	}
	return p.res
}

func (p *paginator) page() *Page {
	return &p.res.Pages[len(p.res.Pages)-1]
}

// step runs the page-break transition when the next item does not fit.
func (p *paginator) step(fits bool) {
	if !fits {
		p.state = pageBreak
	}
	if p.state == pageBreak {
		p.res.Pages = append(p.res.Pages, Page{})
		p.cursorY = p.cfg.top
		p.state = writing
	}
}

func (p *paginator) rule() {
	p.step(p.cursorY <= p.cfg.height-p.cfg.bottom)
	pg := p.page()
	pg.Rules = append(pg.Rules, Rule{X1: p.cfg.left, X2: p.cfg.width - p.cfg.right, Y: p.cursorY})
}

func (p *paginator) text(r doctpl.Run) {
	if strings.TrimSpace(r.Text) == "" {
		return
	}
	size := r.FontSize()
	align := r.Alignment()
	bold := r.Bold()

	display := r.Text
	if align == doctpl.AlignRight {
		display = FixDigits(display)
	}
	width := func(s string) float64 { return p.measure.Width(s, bold, size) }
	maxWidth := p.cfg.width - p.cfg.left - p.cfg.right
	advance := size + math.Max(4, size*0.5)

	for _, text := range Wrap(display, maxWidth, width) {
		p.step(p.cursorY <= p.cfg.height-p.cfg.bottom-size)

		w := width(text)
		x := p.cfg.left
		switch align {
		case doctpl.AlignRight:
			x = p.cfg.width - p.cfg.right - w
		case doctpl.AlignCenter:
			x = (p.cfg.width - w) / 2
		}
		pg := p.page()
		pg.Lines = append(pg.Lines, Line{
			Text: text, X: x, Y: p.cursorY, Width: w, Size: size, Bold: bold, Align: align,
		})
		p.landmark(text)
		p.cursorY += advance
	}
}

func (p *paginator) landmark(text string) {
	lm := &Landmark{Page: len(p.res.Pages), Y: p.cursorY}
	if p.res.Landmarks.Landlord == nil && strings.Contains(text, LandlordLabel) {
		p.res.Landmarks.Landlord = lm
	}
	if p.res.Landmarks.Tenant == nil && strings.Contains(text, TenantLabel) {
		p.res.Landmarks.Tenant = lm
	}
}

// PageCount returns the number of pages.
func (r Result) PageCount() int {
	return len(r.Pages)
}
