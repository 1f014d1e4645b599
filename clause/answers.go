package clause

import "strings"

// MultiSeparator joins the chosen labels of a multiselect answer.
const MultiSeparator = ","

// Answers maps a question name to its answer. An empty or absent value means
// the question is unanswered.
type Answers map[string]string

// Get returns the trimmed answer for name.
func (a Answers) Get(name string) string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a[name])
}

// Answered reports whether name has a non-blank answer.
func (a Answers) Answered(name string) bool {
	return a.Get(name) != ""
}

// Clone returns a shallow copy. Callers that derive values use it so the
// answer set handed to the pipeline stays untouched.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// SplitMulti splits a multiselect answer into its trimmed, non-empty labels.
func SplitMulti(value string) []string {
	var out []string
	for _, part := range strings.Split(value, MultiSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinMulti is the inverse of SplitMulti.
func JoinMulti(values []string) string {
	return strings.Join(values, MultiSeparator)
}
