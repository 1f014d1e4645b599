package clause

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseNormalizesLegacyKeys(t *testing.T) {
	data := `[
		{"name": "parking", "שאלה": "יש חניה?", "סעיף": " פרטי הדירה ", "type": "select",
		 "אפשרויות": ["כן", "לא"], "legalOptions": ["חניה כלולה", "אין חניה"], "טקסט משפטי": "ברירת מחדל"},
		{"טקסט קבוע": "הצדדים מסכימים."},
		{"name": "parkingNumber", "label": "מספר חניה",
		 "conditional": {"שאלה": "יש חניה?", "ערך": "כן"}}
	]`

	defs, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []Definition{
		{
			Name:         "parking",
			Label:        "יש חניה?",
			Section:      "פרטי הנכס",
			InputType:    InputSelect,
			LegalText:    "ברירת מחדל",
			Options:      []string{"כן", "לא"},
			LegalOptions: []string{"חניה כלולה", "אין חניה"},
		},
		{
			Name:       "q2",
			Label:      "אנא הזן ערך עבור q2",
			Section:    DefaultSection,
			InputType:  InputText,
			Kind:       KindStatic,
			StaticText: "הצדדים מסכימים.",
		},
		{
			Name:        "parkingNumber",
			Label:       "מספר חניה",
			Section:     DefaultSection,
			InputType:   InputText,
			Conditional: &Condition{QuestionLabel: "יש חניה?", RequiredValue: "כן"},
		},
	}
	if diff := cmp.Diff(want, defs); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDuplicateName(t *testing.T) {
	_, err := Parse([]byte(`[{"name":"a"},{"name":"b"},{"name":"a"}]`))
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"options not array", `[{"name":"a","options":"כן"}]`},
		{"option not string", `[{"name":"a","options":[1,2]}]`},
		{"static not string", `[{"name":"a","staticText":3}]`},
		{"conditional not object", `[{"name":"a","conditional":"x"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	if _, err := Load(strings.NewReader("{")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(t.TempDir() + "/missing.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestClauseText(t *testing.T) {
	d := Definition{
		Name:         "pets",
		InputType:    InputSelect,
		LegalText:    "default",
		Options:      []string{"כן", "לא"},
		LegalOptions: []string{"textA", "textB"},
	}
	tests := []struct {
		answer string
		want   string
	}{
		{"כן", "textA"},
		{"לא", "textB"},
		{"אולי", "default"},
		{"", "default"},
	}
	for _, tt := range tests {
		if got := d.ClauseText(tt.answer); got != tt.want {
			t.Errorf("ClauseText(%q) = %q, want %q", tt.answer, got, tt.want)
		}
	}
}

func TestClauseTextMismatchedOptions(t *testing.T) {
	d := Definition{
		LegalText:    "default",
		Options:      []string{"כן", "לא"},
		LegalOptions: []string{"textA"},
	}
	if got := d.ClauseText("כן"); got != "default" {
		t.Errorf("ClauseText = %q, want default", got)
	}
}

func TestClauseTextMultiselect(t *testing.T) {
	d := Definition{
		InputType:    InputMultiselect,
		LegalText:    "default",
		Options:      []string{"שטר חוב", "ערבות בנקאית", "ערב"},
		LegalOptions: []string{"A", "B", "C"},
	}
	if got := d.ClauseText("ערב, שטר חוב"); got != "A\nC" {
		t.Errorf("ClauseText = %q, want option order A\\nC", got)
	}
	if got := d.ClauseText("אחר"); got != "default" {
		t.Errorf("ClauseText = %q, want default", got)
	}
}

func TestClauseTextStatic(t *testing.T) {
	d := Definition{Kind: KindStatic, StaticText: "fixed", LegalText: "ignored"}
	if got := d.ClauseText("anything"); got != "fixed" {
		t.Errorf("ClauseText = %q, want fixed", got)
	}
}
