package layout

import (
	"regexp"
	"strings"
	"unicode"
)

var digitsRe = regexp.MustCompile(`\d+`)

// FixDigits reverses every maximal run of digits in text. Right-aligned
// lines are drawn in visual order, which would otherwise flip numbers.
func FixDigits(text string) string {
	return digitsRe.ReplaceAllStringFunc(text, reverse)
}

// Wrap splits text into lines no wider than maxWidth. Words are broken
// only at spaces; a single word wider than maxWidth gets a line to itself.
func Wrap(text string, maxWidth float64, width func(string) float64) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && width(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

var mirrored = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
}

// Visual returns text in left-to-right drawing order. Lines containing
// Hebrew are reversed with brackets mirrored, except for runs of Latin
// letters and digits, which keep their logical order. Lines without Hebrew
// are returned unchanged.
func Visual(text string) string {
	if !hasHebrew(text) {
		return text
	}
	rs := []rune(text)
	out := make([]rune, 0, len(rs))
	for end := len(rs); end > 0; {
		start := end - 1
		if ltrStart, ok := ltrRunEnding(rs, start); ok {
			out = append(out, rs[ltrStart:end]...)
			end = ltrStart
			continue
		}
		r := rs[start]
		if m, ok := mirrored[r]; ok {
			r = m
		}
		out = append(out, r)
		end = start
	}
	return string(out)
}

// ltrRunEnding reports the start of the left-to-right run whose last rune
// is rs[end]. Letters join across neutral runes; digits join across a
// single separator placed between two digits.
func ltrRunEnding(rs []rune, end int) (int, bool) {
	if !isStrongLTR(rs[end]) {
		return 0, false
	}
	start := end
	for i := end - 1; i >= 0; {
		switch {
		case isStrongLTR(rs[i]):
			start = i
			i--
		case unicode.IsDigit(rs[start]) && i > 0 && strings.ContainsRune(".,:/-", rs[i]) && unicode.IsDigit(rs[i-1]):
			start = i - 1
			i -= 2
		default:
			j := i
			for j >= 0 && isNeutral(rs[j]) {
				j--
			}
			if j < 0 || j == i || !unicode.IsLetter(rs[j]) || !isStrongLTR(rs[j]) || !unicode.IsLetter(rs[start]) {
				return start, true
			}
			start = j
			i = j - 1
		}
	}
	return start, true
}

func isStrongLTR(r rune) bool {
	return unicode.IsDigit(r) || (unicode.IsLetter(r) && !unicode.Is(unicode.Hebrew, r))
}

func isNeutral(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func hasHebrew(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}

func reverse(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}
