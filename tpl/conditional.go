package tpl

import (
	"regexp"

	"github.com/orsabag2/rent/clause"
)

var conditionalRe = regexp.MustCompile(`(?s)\{\{#if\s+([A-Za-z_][A-Za-z0-9_]*)\s*\}\}(.*?)\{\{/if\}\}`)

// EvalConditionals keeps the body of each conditional block whose key is
// answered with clause.Yes and removes the other blocks entirely. Bodies are
// returned unresolved; placeholders inside them are left for Resolve.
func EvalConditionals(text string, answers clause.Answers) string {
	return conditionalRe.ReplaceAllStringFunc(text, func(block string) string {
		m := conditionalRe.FindStringSubmatch(block)
		if answers.Get(m[1]) == clause.Yes {
			return m[2]
		}
		return ""
	})
}
