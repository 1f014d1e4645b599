// Package tpl implements the contract template language.
//
// A template is literal text containing placeholders and conditional blocks:
//
//	{{ key }}                 replaced by the answer for key
//	{{#if key}}BODY{{/if}}    BODY kept only when key is answered "כן"
//
// Keys match [A-Za-z_][A-Za-z0-9_]* and may be surrounded by spaces inside
// the braces. Anything else between double braces is literal text. There is
// no escape for a literal "{{". Conditional blocks do not nest: a block ends
// at the first "{{/if}}" after it opens.
package tpl

import (
	"html"
	"regexp"

	"github.com/orsabag2/rent/clause"
)

// Mode selects how unanswered placeholders and answer values are written.
type Mode int

const (
	// ModeHTML writes a styled marker for unanswered keys and escapes values.
	ModeHTML Mode = iota
	// ModeText writes a plain blank line for unanswered keys.
	ModeText
)

// Blank is the visible text of an unanswered placeholder.
const Blank = "________"

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// aliases lists renamed keys: when the primary key has no answer the alias
// is tried before the key counts as unanswered.
var aliases = map[string]string{
	"contractSignDate": "contractDay",
	"contractSignCity": "contractLocation",
	"idNumber":         "landlordId",
	"tenantIdNumber":   "tenantId",
	"apartmentDefects": "defects",
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRawValues inserts answer values into HTML output without escaping.
// Only use it for answers that come from a trusted source.
func WithRawValues() Option {
	return func(r *Resolver) {
		r.raw = true
	}
}

// WithDateKeys formats answers of keys whose name contains "date" as
// dd/mm/yyyy.
func WithDateKeys() Option {
	return func(r *Resolver) {
		r.dates = true
	}
}

// Resolver substitutes placeholders with answers. It holds no state beyond
// its options and is safe for concurrent use.
type Resolver struct {
	mode  Mode
	raw   bool
	dates bool
}

// NewResolver returns a resolver for the given output mode.
func NewResolver(mode Mode, opts ...Option) *Resolver {
	r := &Resolver{mode: mode}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve replaces every placeholder in text. Answered keys yield their
// value, unanswered keys yield the unanswered marker, so the output never
// contains a raw placeholder for a well-formed key.
func (r *Resolver) Resolve(text string, answers clause.Answers) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(tok string) string {
		key := placeholderRe.FindStringSubmatch(tok)[1]
		v, ok := Lookup(key, answers)
		if !ok {
			return r.Marker(key)
		}
		if r.dates && IsDateKey(key) {
			v = FormatDate(v)
		}
		if r.mode == ModeHTML && !r.raw {
			v = html.EscapeString(v)
		}
		return v
	})
}

// Marker returns the unanswered marker for key in the resolver's mode.
func (r *Resolver) Marker(key string) string {
	if r.mode == ModeText {
		return Blank
	}
	return `<span class="unanswered" style="color:#9ca3af" data-key="` + key + `">` + Blank + `</span>`
}

// Lookup returns the trimmed answer for key, falling back to its alias.
func Lookup(key string, answers clause.Answers) (string, bool) {
	if v := answers.Get(key); v != "" {
		return v, true
	}
	if alias, ok := aliases[key]; ok {
		if v := answers.Get(alias); v != "" {
			return v, true
		}
	}
	return "", false
}

// Keys returns the placeholder keys of text in order of first appearance.
func Keys(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// Unanswered returns the placeholder keys of text that have no answer.
func Unanswered(text string, answers clause.Answers) []string {
	var out []string
	for _, k := range Keys(text) {
		if _, ok := Lookup(k, answers); !ok {
			out = append(out, k)
		}
	}
	return out
}
