package doctpl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Vertical gaps, in points, around block elements.
const (
	gapBeforeH1    = 18
	gapAfterH1     = 10
	gapBeforeH2    = 16 + 18
	gapBeforeH3    = 10
	gapAfterH3     = 6
	gapAfterList   = 2
	gapAfterQuote  = 4
	gapAfterRule   = 10
	gapAfterBlock  = 6
	bulletPrefix   = "• "
	inlineNumbered = "inline"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

var (
	alignValueRe  = regexp.MustCompile(`^(left|right|center|justify)$`)
	weightValueRe = regexp.MustCompile(`^(normal|bold|bolder|lighter|[1-9]00)$`)
)

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.StrictPolicy()
		p.AllowElements(
			"h1", "h2", "h3", "h4", "h5", "h6", "p", "div", "section", "span",
			"b", "strong", "i", "em", "u", "s", "strike", "mark",
			"ul", "ol", "li", "blockquote", "hr", "br",
		)
		p.AllowAttrs("data-text-align", "align", "class", "data-key").Globally()
		p.AllowAttrs("data-numbering").OnElements("ol", "ul")
		p.AllowStyles("text-align").MatchingEnum("left", "right", "center", "justify").Globally()
		p.AllowStyles("font-weight").Matching(weightValueRe).Globally()
		p.AllowStyles("color").Globally()
		policy = p
	})
	return policy
}

// Sanitize strips every element and attribute the renderer does not
// understand, including scripts and event handlers.
func Sanitize(rawHTML string) string {
	return sanitizer().Sanitize(rawHTML)
}

// inherited is the context threaded down the tree walk.
type inherited struct {
	align Align
	bold  bool
}

type builder struct {
	runs []Run
}

// FromHTML sanitizes rich-text HTML and converts it into runs.
//
// Alignment comes from the nearest block element that declares one through a
// text-align style, a data-text-align attribute or an align attribute, and is
// right when none does. Text is bold inside b or strong elements or under a
// font-weight of bold, bolder or 600 and above. Each text node yields one run.
func FromHTML(rawHTML string) ([]Run, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(Sanitize(rawHTML)), body)
	if err != nil {
		return nil, fmt.Errorf("doctpl: parsing html: %w", err)
	}
	b := &builder{}
	ctx := inherited{align: AlignRight}
	for _, n := range nodes {
		b.walk(n, ctx)
	}
	return b.runs, nil
}

func (b *builder) walk(n *html.Node, ctx inherited) {
	switch n.Type {
	case html.TextNode:
		if text := collapse(n.Data); text != "" {
			b.add(KindParagraph, text, ctx, SizeBody)
		}
		return
	case html.ElementNode:
	default:
		b.children(n, ctx)
		return
	}

	if isBlock(n.DataAtom) {
		if a, ok := explicitAlign(n); ok {
			ctx.align = a
		}
	}
	if isBold(n) {
		ctx.bold = true
	}

	switch n.DataAtom {
	case atom.H1:
		b.space(gapBeforeH1)
		b.heading(KindHeading1, n, ctx, SizeHeading1)
		b.space(gapAfterH1)
	case atom.H2:
		b.space(gapBeforeH2)
		b.heading(KindHeading2, n, ctx, SizeHeading2)
	case atom.H3, atom.H4, atom.H5, atom.H6:
		b.space(gapBeforeH3)
		b.heading(KindHeading3, n, ctx, SizeHeading3)
		b.space(gapAfterH3)
	case atom.Ul, atom.Ol:
		b.list(n, ctx)
		b.space(gapAfterList)
	case atom.Li:
		b.item(n, ctx, bulletPrefix)
	case atom.Br:
	case atom.Blockquote:
		if text := textContent(n, false); text != "" {
			b.add(KindQuote, text, ctx, SizeBody)
		}
		b.space(gapAfterQuote)
	case atom.Hr:
		b.runs = append(b.runs, Rule())
		b.space(gapAfterRule)
	case atom.P, atom.Div:
		b.children(n, ctx)
		b.space(gapAfterBlock)
	default:
		b.children(n, ctx)
	}
}

func (b *builder) children(n *html.Node, ctx inherited) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c, ctx)
	}
}

func (b *builder) heading(kind Kind, n *html.Node, ctx inherited, size float64) {
	ctx.bold = true
	if text := textContent(n, false); text != "" {
		b.add(kind, text, ctx, size)
	}
}

func (b *builder) list(n *html.Node, ctx inherited) {
	ordered := n.DataAtom == atom.Ol
	inline := attr(n, "data-numbering") == inlineNumbered
	idx := 1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}
		itemCtx := ctx
		if a, ok := explicitAlign(c); ok {
			itemCtx.align = a
		}
		if isBold(c) {
			itemCtx.bold = true
		}
		prefix := bulletPrefix
		switch {
		case inline:
			prefix = ""
		case ordered:
			prefix = strconv.Itoa(idx) + ". "
		}
		b.item(c, itemCtx, prefix)
		idx++
	}
}

// item writes the text of a list item followed by any lists nested in it.
func (b *builder) item(n *html.Node, ctx inherited, prefix string) {
	if text := textContent(n, true); text != "" {
		b.add(KindListItem, prefix+text, ctx, SizeBody)
	}
	for _, nested := range nestedLists(n) {
		b.list(nested, ctx)
	}
}

func (b *builder) add(kind Kind, text string, ctx inherited, size float64) {
	w := WeightNormal
	if ctx.bold {
		w = WeightBold
	}
	b.runs = append(b.runs, Run{Kind: kind, Text: text, Weight: w, Align: ctx.align, Size: size})
}

func (b *builder) space(gap float64) {
	b.runs = append(b.runs, Space(gap))
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Div, atom.Section, atom.Blockquote, atom.Ul, atom.Ol, atom.Li:
		return true
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// styleValue returns the value of a CSS property in the node's style
// attribute.
func styleValue(n *html.Node, property string) string {
	for _, decl := range strings.Split(attr(n, "style"), ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), property) {
			return strings.ToLower(strings.TrimSpace(value))
		}
	}
	return ""
}

func explicitAlign(n *html.Node) (Align, bool) {
	for _, v := range []string{styleValue(n, "text-align"), attr(n, "data-text-align"), strings.ToLower(attr(n, "align"))} {
		if !alignValueRe.MatchString(v) {
			continue
		}
		switch v {
		case "left":
			return AlignLeft, true
		case "center":
			return AlignCenter, true
		default:
			return AlignRight, true
		}
	}
	return "", false
}

func isBold(n *html.Node) bool {
	if n.DataAtom == atom.B || n.DataAtom == atom.Strong {
		return true
	}
	switch w := styleValue(n, "font-weight"); w {
	case "bold", "bolder":
		return true
	case "":
		return false
	default:
		v, err := strconv.Atoi(w)
		return err == nil && v >= 600
	}
}

// textContent returns the collapsed text below n. With skipLists set the
// text of nested lists is left out.
func textContent(n *html.Node, skipLists bool) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			return
		}
		if c.Type == html.ElementNode && c.DataAtom == atom.Br {
			sb.WriteByte(' ')
			return
		}
		if skipLists && c != n && c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
			return
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			visit(k)
		}
	}
	visit(n)
	return collapse(sb.String())
}

func nestedLists(n *html.Node) []*html.Node {
	var out []*html.Node
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			if k.Type == html.ElementNode && (k.DataAtom == atom.Ul || k.DataAtom == atom.Ol) {
				out = append(out, k)
				continue
			}
			visit(k)
		}
	}
	visit(n)
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
