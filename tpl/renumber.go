package tpl

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/orsabag2/rent/clause"
)

// DocumentTitle is the master template's title line. CleanHTML renders it as
// a centered heading with the parenthesised subtitle on its own line.
const DocumentTitle = "הסכם שכירות למגורים (שכירות בלתי מוגנת)"

// Line is one surviving line of a cleaned template.
type Line struct {
	Text   string
	Main   int  // renumbered main section, 0 before the first main line
	Sub    int  // renumbered sub section, 0 for main and plain lines
	IsMain bool // line opens a main section ("3. ...")
	IsSub  bool // line is a sub or third-level clause ("3.1", "3.1.2")
}

var (
	mainRe    = regexp.MustCompile(`^\s*(\d+)\.(\D|$)`)
	mainNumRe = regexp.MustCompile(`^\s*\d+\.`)
	subRe     = regexp.MustCompile(`^\s*(\d+)\.(\d+)(?:\.(\d+))?`)
	dividerRe = regexp.MustCompile(`^[-—–]{3,}$`)
)

// Renumber assigns contiguous section numbers to lines.
//
// A line starting "N." with no digit after the dot opens the next main
// section and resets the sub counter. A line starting "N.M" becomes
// "{main}.{next sub}". A third-level line "N.M.P" keeps P and takes the new
// number of the preceding sub line with the same original "N.M"; when that
// parent line is gone it takes the next sub number itself. Sub lines that
// appear before any main line are passed through unchanged. All other lines
// pass through unnumbered.
func Renumber(lines []string) []Line {
	out := make([]Line, 0, len(lines))
	var (
		main, sub int
		parentKey string // original "N.M" of the last renumbered sub line
	)
	for _, text := range lines {
		l := Line{Text: text}
		if mainRe.MatchString(text) {
			main++
			sub = 0
			parentKey = ""
			l.Main, l.IsMain = main, true
			l.Text = mainNumRe.ReplaceAllString(text, strconv.Itoa(main)+".")
			out = append(out, l)
			continue
		}
		m := subRe.FindStringSubmatchIndex(text)
		if m == nil || main == 0 {
			l.Main = main
			out = append(out, l)
			continue
		}

		key := text[m[2]:m[3]] + "." + text[m[4]:m[5]]
		third := m[6] >= 0
		if !third || key != parentKey {
			sub++
			parentKey = key
		}
		number := strconv.Itoa(main) + "." + strconv.Itoa(sub)
		if third {
			number += "." + text[m[6]:m[7]]
		}
		l.Main, l.Sub, l.IsSub = main, sub, true
		l.Text = number + text[m[1]:]
		out = append(out, l)
	}
	return out
}

// Clean runs the master template path: conditional blocks are evaluated,
// every line holding an unanswered placeholder is dropped, the surviving
// lines are renumbered and their placeholders resolved as plain text with
// dates formatted dd/mm/yyyy.
func Clean(template string, answers clause.Answers) []Line {
	text := EvalConditionals(template, answers)

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if len(Unanswered(line, answers)) > 0 {
			continue
		}
		kept = append(kept, strings.TrimRight(line, "\r"))
	}

	r := NewResolver(ModeText, WithDateKeys())
	lines := Renumber(kept)
	for i := range lines {
		lines[i].Text = r.Resolve(lines[i].Text, answers)
	}
	return lines
}

// CleanText returns the result of Clean joined with newlines.
func CleanText(template string, answers clause.Answers) string {
	lines := Clean(template, answers)
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

// CleanHTML renders the result of Clean as HTML. Divider lines are dropped,
// the title line becomes a centered h1 followed by its subtitle, main lines
// become h2 and everything else a paragraph. Line text is escaped.
func CleanHTML(template string, answers clause.Answers, title string) string {
	if title == "" {
		title = DocumentTitle
	}
	var b strings.Builder
	for _, l := range Clean(template, answers) {
		trimmed := strings.TrimSpace(l.Text)
		switch {
		case trimmed == "":
			continue
		case IsDivider(trimmed):
			continue
		case trimmed == title:
			head, subtitle := splitTitle(trimmed)
			b.WriteString(`<h1 style="text-align:center"><b>` + html.EscapeString(head) + "</b></h1>\n")
			if subtitle != "" {
				b.WriteString(`<p style="text-align:center">` + html.EscapeString(subtitle) + "</p>\n")
			}
		case l.IsMain:
			b.WriteString("<h2><b>" + html.EscapeString(trimmed) + "</b></h2>\n")
		default:
			b.WriteString("<p>" + html.EscapeString(trimmed) + "</p>\n")
		}
	}
	return b.String()
}

// IsDivider reports whether a trimmed line is a section divider.
func IsDivider(trimmed string) bool {
	return trimmed == "⸻" || dividerRe.MatchString(trimmed)
}

func splitTitle(title string) (head, subtitle string) {
	i := strings.Index(title, "(")
	if i <= 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i:])
}
