// Package assemble builds the contract body from clause definitions.
//
// The general clause list fixes which sections exist and their order.
// Dynamic clauses, the ones driven by questionnaire answers, are slotted into
// the matching general section. A dynamic clause whose section matches none
// is appended after all general sections under its own section heading.
package assemble

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/orsabag2/rent/clause"
	"github.com/orsabag2/rent/tpl"
)

// DefaultTitleSection is the section rendered as the document title.
const DefaultTitleSection = "כותרת החוזה"

// ValueKey is the placeholder through which clause text refers to the
// answer of its own question.
const ValueKey = "value"

const unansweredOpen = `<div class="unanswered" style="color:#9ca3af">`

// Heading levels used for section titles.
const (
	HeadingTitle    = "h1"
	HeadingNumbered = "h2"
	HeadingPlain    = "h3"
)

// Block is one rendered section.
type Block struct {
	Title   string
	Heading string   // h1, h2 or h3
	Clauses []string // rendered HTML of each non-empty clause
	Names   []string // definition name of each entry in Clauses
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithTitleSection names the section rendered as the centered document
// title.
func WithTitleSection(title string) Option {
	return func(a *Assembler) {
		a.titleSection = title
	}
}

// WithRawValues inserts answers into clause text without HTML escaping.
func WithRawValues() Option {
	return func(a *Assembler) {
		a.resolverOpts = append(a.resolverOpts, tpl.WithRawValues())
	}
}

// Assembler merges general and dynamic clause definitions into contract HTML.
// It is immutable after New and safe for concurrent use.
type Assembler struct {
	general      []clause.Definition
	dynamic      []clause.Definition
	all          []clause.Definition
	titleSection string
	resolverOpts []tpl.Option
	resolver     *tpl.Resolver
}

// New returns an assembler over the general clauses, which fix section
// order, and the dynamic clauses slotted into them.
func New(general, dynamic []clause.Definition, opts ...Option) *Assembler {
	a := &Assembler{
		general:      general,
		dynamic:      dynamic,
		titleSection: DefaultTitleSection,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.all = append(append([]clause.Definition{}, general...), dynamic...)
	a.resolver = tpl.NewResolver(tpl.ModeHTML, append([]tpl.Option{tpl.WithDateKeys()}, a.resolverOpts...)...)
	return a
}

type slot struct {
	title string
	defs  []clause.Definition
}

// layout distributes every definition over the ordered section slots. Each
// definition lands in exactly one slot.
func (a *Assembler) layout() []slot {
	var slots []slot
	keys := make(map[string]int)
	addKey := func(k string, i int) {
		if k == "" {
			return
		}
		if _, taken := keys[k]; !taken {
			keys[k] = i
		}
	}

	for _, sec := range clause.GroupSections(a.general) {
		i := len(slots)
		slots = append(slots, slot{title: sec.Title, defs: sec.Definitions})
		addKey("t:"+sec.Title, i)
		if n, ok := clause.LeadingNumber(sec.Title); ok {
			addKey("n:"+strconv.Itoa(n), i)
		}
		addKey("s:"+clause.StripNumber(sec.Title), i)
	}

	extra := make(map[string]int)
	var tail []slot
	for _, d := range a.dynamic {
		title := clause.NormalizeSection(d.Section)
		if i, ok := matchSection(keys, title); ok {
			slots[i].defs = append(slots[i].defs, d)
			continue
		}
		i, ok := extra[title]
		if !ok {
			i = len(tail)
			extra[title] = i
			tail = append(tail, slot{title: title})
		}
		tail[i].defs = append(tail[i].defs, d)
	}
	return append(slots, tail...)
}

func matchSection(keys map[string]int, title string) (int, bool) {
	if i, ok := keys["t:"+title]; ok {
		return i, true
	}
	if n, ok := clause.LeadingNumber(title); ok {
		if i, ok := keys["n:"+strconv.Itoa(n)]; ok {
			return i, true
		}
	}
	i, ok := keys["s:"+clause.StripNumber(title)]
	return i, ok
}

// Blocks renders every section that has at least one non-empty clause.
func (a *Assembler) Blocks(answers clause.Answers) []Block {
	var out []Block
	for _, s := range a.layout() {
		b := Block{Title: s.title, Heading: a.headingFor(s.title)}
		for _, d := range s.defs {
			if !clause.Satisfied(d, a.all, answers) {
				continue
			}
			if body := a.renderClause(d, answers); body != "" {
				b.Clauses = append(b.Clauses, body)
				b.Names = append(b.Names, d.Name)
			}
		}
		if len(b.Clauses) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// HTML renders the full contract body.
func (a *Assembler) HTML(answers clause.Answers) string {
	var b strings.Builder
	for _, blk := range a.Blocks(answers) {
		b.WriteString(heading(blk.Heading, blk.Title))
		for _, c := range blk.Clauses {
			b.WriteString(c)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (a *Assembler) headingFor(title string) string {
	if title == a.titleSection {
		return HeadingTitle
	}
	if _, ok := clause.LeadingNumber(title); ok {
		return HeadingNumbered
	}
	return HeadingPlain
}

func heading(tag, title string) string {
	t := html.EscapeString(title)
	if tag == HeadingTitle {
		return `<h1 style="text-align:center">` + t + "</h1>\n"
	}
	return "<" + tag + ">" + t + "</" + tag + ">\n"
}

func (a *Assembler) renderClause(d clause.Definition, answers clause.Answers) string {
	answer := answers.Get(d.Name)
	text := strings.TrimSpace(d.ClauseText(answer))
	if text == "" {
		return ""
	}

	scoped := answers.Clone()
	scoped[ValueKey] = answer
	body := formatLines(a.resolver.Resolve(html.EscapeString(text), scoped))

	if !d.IsStatic() && answer == "" {
		return unansweredOpen + body + "</div>"
	}
	return body
}

var (
	level1Re = regexp.MustCompile(`^\d+\.(\D|$)`)
	level2Re = regexp.MustCompile(`^\d+\.\d+(\D|$)`)
	level3Re = regexp.MustCompile(`^\d+\.\d+\.\d+`)
)

func lineLevel(line string) int {
	switch {
	case level3Re.MatchString(line):
		return 3
	case level2Re.MatchString(line):
		return 2
	case level1Re.MatchString(line):
		return 1
	}
	return 0
}

const olOpen = `<ol data-numbering="inline">`

// formatLines turns clause text into HTML. Numbered lines become nested
// ordered lists that keep their literal numbers; other lines become
// paragraphs.
func formatLines(text string) string {
	var b strings.Builder
	depth := 0
	closeTo := func(level int) {
		for depth > level {
			b.WriteString("</li></ol>")
			depth--
		}
	}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		level := lineLevel(line)
		if level == 0 {
			closeTo(0)
			b.WriteString("<p>" + line + "</p>")
			continue
		}
		closeTo(level)
		if depth == level {
			b.WriteString("</li><li>")
		}
		for depth < level {
			b.WriteString(olOpen + "<li>")
			depth++
		}
		b.WriteString(line)
	}
	closeTo(0)
	return b.String()
}
