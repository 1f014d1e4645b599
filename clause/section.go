package clause

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Section is a named group of definitions rendered under one heading.
type Section struct {
	Title       string       `json:"title"`
	Definitions []Definition `json:"questions"`
}

var leadingNumberRe = regexp.MustCompile(`^\s*(\d+)\s*[.)]?\s*`)

// GroupSections groups defs by section title, keeping the order in which
// each title first appears.
func GroupSections(defs []Definition) []Section {
	var out []Section
	index := make(map[string]int)
	for _, d := range defs {
		title := NormalizeSection(d.Section)
		i, ok := index[title]
		if !ok {
			i = len(out)
			index[title] = i
			out = append(out, Section{Title: title})
		}
		out[i].Definitions = append(out[i].Definitions, d)
	}
	return out
}

// SortSections orders sections in place: titles that start with a number
// come first in numeric order, the rest follow lexicographically.
func SortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return lessTitle(sections[i].Title, sections[j].Title)
	})
}

func lessTitle(a, b string) bool {
	na, aok := LeadingNumber(a)
	nb, bok := LeadingNumber(b)
	switch {
	case aok && bok:
		if na != nb {
			return na < nb
		}
		return a < b
	case aok:
		return true
	case bok:
		return false
	}
	return a < b
}

// LeadingNumber returns the number a section title starts with, as in
// "3. תקופת השכירות".
func LeadingNumber(title string) (int, bool) {
	m := leadingNumberRe.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// StripNumber removes a leading section number from title.
func StripNumber(title string) string {
	loc := leadingNumberRe.FindStringIndex(title)
	if loc == nil {
		return strings.TrimSpace(title)
	}
	return strings.TrimSpace(title[loc[1]:])
}
