// Package clause holds the question and clause definitions that drive a
// rental contract, the answer set collected for them, and the derived
// section grouping.
//
// Definitions are loaded once from JSON with Load, which maps every legacy or
// alternate-language key onto one canonical field. Rendering code only ever
// sees the normalized Definition.
package clause

import "strings"

// Kind tells apart fixed contract text from answer-driven clauses.
type Kind int

const (
	// KindDynamic is a clause driven by the answer to a question.
	KindDynamic Kind = iota
	// KindStatic is fixed contract text with no question attached.
	KindStatic
)

func (k Kind) String() string {
	if k == KindStatic {
		return "static"
	}
	return "dynamic"
}

// Input types used by the question set.
const (
	InputText        = "text"
	InputNumber      = "number"
	InputDate        = "date"
	InputSelect      = "select"
	InputMultiselect = "multiselect"
)

// Yes is the affirmative answer used throughout the question set.
const Yes = "כן"

// DefaultSection is the section assigned to definitions that name none.
const DefaultSection = "שונות"

// Condition makes a definition apply only when another question, identified
// by its label, has the required value.
type Condition struct {
	QuestionLabel string `json:"questionLabel"`
	RequiredValue string `json:"requiredValue"`
}

// Definition is a single question or clause of the contract.
type Definition struct {
	Name         string     `json:"name"`
	Label        string     `json:"label"`
	Section      string     `json:"section"`
	InputType    string     `json:"inputType"`
	Kind         Kind       `json:"-"`
	StaticText   string     `json:"staticText,omitempty"`
	LegalText    string     `json:"legalText,omitempty"`
	Options      []string   `json:"options,omitempty"`
	LegalOptions []string   `json:"legalOptions,omitempty"`
	Conditional  *Condition `json:"conditional,omitempty"`
	Placeholder  string     `json:"placeholder,omitempty"`
	Explanation  string     `json:"explanation,omitempty"`
	Required     bool       `json:"required,omitempty"`
}

// IsStatic reports whether d carries fixed text rather than a question.
func (d Definition) IsStatic() bool {
	return d.Kind == KindStatic
}

// ClauseText returns the legal text that applies for the given answer.
//
// Static definitions always yield StaticText. Dynamic definitions yield the
// positional LegalOptions entry of the selected option when Options and
// LegalOptions line up, and LegalText otherwise. For multiselect answers the
// legal texts of all selected options are joined in option order.
func (d Definition) ClauseText(answer string) string {
	if d.IsStatic() {
		return d.StaticText
	}
	if answer == "" || len(d.Options) == 0 || len(d.Options) != len(d.LegalOptions) {
		return d.LegalText
	}
	if d.InputType == InputMultiselect {
		selected := make(map[string]bool)
		for _, v := range SplitMulti(answer) {
			selected[v] = true
		}
		var parts []string
		for i, opt := range d.Options {
			if selected[opt] && strings.TrimSpace(d.LegalOptions[i]) != "" {
				parts = append(parts, d.LegalOptions[i])
			}
		}
		if len(parts) == 0 {
			return d.LegalText
		}
		return strings.Join(parts, "\n")
	}
	for i, opt := range d.Options {
		if opt == answer {
			return d.LegalOptions[i]
		}
	}
	return d.LegalText
}
