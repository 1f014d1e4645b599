package clause

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func titles(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Title
	}
	return out
}

func TestGroupSectionsFirstSeenOrder(t *testing.T) {
	defs := []Definition{
		{Name: "a", Section: "פרטי השוכר"},
		{Name: "b", Section: "פרטי הנכס"},
		{Name: "c", Section: "פרטי השוכר"},
		{Name: "d"},
		{Name: "e", Section: "פרטי הדירה"},
	}
	got := GroupSections(defs)

	if diff := cmp.Diff([]string{"פרטי השוכר", "פרטי הנכס", "שונות"}, titles(got)); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
	if n := len(got[1].Definitions); n != 2 {
		t.Errorf("פרטי הנכס has %d definitions, want 2", n)
	}
}

func TestSortSections(t *testing.T) {
	sections := []Section{
		{Title: "10. שונות"},
		{Title: "ב"},
		{Title: "2. תקופה"},
		{Title: "א"},
		{Title: "1. הגדרות"},
	}
	SortSections(sections)

	want := []string{"1. הגדרות", "2. תקופה", "10. שונות", "א", "ב"}
	if diff := cmp.Diff(want, titles(sections)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestLeadingNumberAndStrip(t *testing.T) {
	tests := []struct {
		title    string
		n        int
		ok       bool
		stripped string
	}{
		{"3. תקופת השכירות", 3, true, "תקופת השכירות"},
		{"12) ביטוחים", 12, true, "ביטוחים"},
		{"ביטוחים", 0, false, "ביטוחים"},
	}
	for _, tt := range tests {
		n, ok := LeadingNumber(tt.title)
		if n != tt.n || ok != tt.ok {
			t.Errorf("LeadingNumber(%q) = %d, %v; want %d, %v", tt.title, n, ok, tt.n, tt.ok)
		}
		if got := StripNumber(tt.title); got != tt.stripped {
			t.Errorf("StripNumber(%q) = %q, want %q", tt.title, got, tt.stripped)
		}
	}
}
