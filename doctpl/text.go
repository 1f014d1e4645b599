package doctpl

import "strings"

// FromText turns plain summary text into one right-aligned paragraph per
// line. Blank lines keep their vertical space.
func FromText(text string) []Run {
	var runs []Run
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			runs = append(runs, Space(SizeSummary+6))
			continue
		}
		runs = append(runs, Run{
			Kind:   KindParagraph,
			Text:   line,
			Weight: WeightNormal,
			Align:  AlignRight,
			Size:   SizeSummary,
		})
	}
	return runs
}
