package tpl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/orsabag2/rent/clause"
)

func TestResolveIdempotentWhenAnswered(t *testing.T) {
	text := "שם: {{fullName}} ת.ז.: {{ idNumber }}"
	answers := clause.Answers{"fullName": "דנה כהן", "idNumber": "123456789"}
	r := NewResolver(ModeHTML)

	once := r.Resolve(text, answers)
	twice := r.Resolve(once, answers)
	if once != twice {
		t.Errorf("second resolve changed output:\n%q\n%q", once, twice)
	}
	if strings.Contains(once, Blank) {
		t.Errorf("fully answered template still has markers: %q", once)
	}
	if want := "שם: דנה כהן ת.ז.: 123456789"; once != want {
		t.Errorf("Resolve = %q, want %q", once, want)
	}
}

func TestResolveUnansweredMarker(t *testing.T) {
	text := "שוכר: {{tenantName}}."
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeHTML, `שוכר: <span class="unanswered" style="color:#9ca3af" data-key="tenantName">________</span>.`},
		{ModeText, "שוכר: ________."},
	}
	for _, tt := range tests {
		got := NewResolver(tt.mode).Resolve(text, clause.Answers{"tenantName": "  "})
		if got != tt.want {
			t.Errorf("mode %d: Resolve = %q, want %q", tt.mode, got, tt.want)
		}
		if strings.Contains(got, "{{") {
			t.Errorf("mode %d: raw placeholder left in %q", tt.mode, got)
		}
	}
}

func TestResolveAliases(t *testing.T) {
	answers := clause.Answers{"landlordId": "111", "defects": "אין", "tenantIdNumber": "222", "tenantId": "333"}
	got := NewResolver(ModeText).Resolve("{{idNumber}}|{{apartmentDefects}}|{{tenantIdNumber}}|{{contractSignCity}}", answers)
	if want := "111|אין|222|________"; got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveEscapesHTML(t *testing.T) {
	answers := clause.Answers{"note": `<script>alert("x")</script>`}

	got := NewResolver(ModeHTML).Resolve("{{note}}", answers)
	if strings.Contains(got, "<script>") {
		t.Errorf("value not escaped: %q", got)
	}
	raw := NewResolver(ModeHTML, WithRawValues()).Resolve("{{note}}", answers)
	if raw != answers["note"] {
		t.Errorf("raw value altered: %q", raw)
	}
	text := NewResolver(ModeText).Resolve("{{note}}", answers)
	if text != answers["note"] {
		t.Errorf("text mode altered value: %q", text)
	}
}

func TestResolveLiteralBraces(t *testing.T) {
	text := "{{not a key}} {{1abc}} {{ok}}"
	got := NewResolver(ModeText).Resolve(text, clause.Answers{"ok": "v"})
	if want := "{{not a key}} {{1abc}} v"; got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveDateKeys(t *testing.T) {
	answers := clause.Answers{"moveInDate": "2025-08-01", "endDate": "לא ידוע", "plain": "2025-08-01"}
	r := NewResolver(ModeText, WithDateKeys())
	got := r.Resolve("{{moveInDate}} {{endDate}} {{plain}}", answers)
	if want := "01/08/2025 לא ידוע 2025-08-01"; got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestUnanswered(t *testing.T) {
	got := Unanswered("{{a}} {{b}} {{a}} {{idNumber}}", clause.Answers{"b": "x", "landlordId": "1"})
	if diff := cmp.Diff([]string{"a"}, got); diff != "" {
		t.Errorf("Unanswered mismatch (-want +got):\n%s", diff)
	}
}

func TestEvalConditionals(t *testing.T) {
	text := "{{#if flag}}X{{/if}}Y"
	tests := []struct {
		name    string
		answers clause.Answers
		want    string
	}{
		{"yes", clause.Answers{"flag": "כן"}, "XY"},
		{"no", clause.Answers{"flag": "לא"}, "Y"},
		{"absent", clause.Answers{}, "Y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvalConditionals(text, tt.answers); got != tt.want {
				t.Errorf("EvalConditionals = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvalConditionalsKeepsBodyUnresolved(t *testing.T) {
	text := "א\n{{#if appendix}}\nערב: {{guarantorName}}\n{{/if}}\nב"
	got := EvalConditionals(text, clause.Answers{"appendix": "כן"})
	if want := "א\n\nערב: {{guarantorName}}\n\nב"; got != want {
		t.Errorf("EvalConditionals = %q, want %q", got, want)
	}
}

func TestEvalConditionalsNoNesting(t *testing.T) {
	text := "{{#if a}}1{{#if b}}2{{/if}}3{{/if}}"
	got := EvalConditionals(text, clause.Answers{})
	if want := "3{{/if}}"; got != want {
		t.Errorf("EvalConditionals = %q, want %q", got, want)
	}
}

func TestFormatDate(t *testing.T) {
	tests := map[string]string{
		"2024-02-29":           "29/02/2024",
		"2024-02-29T10:00:00Z": "29/02/2024",
		"29/02/2024":           "29/02/2024",
		"מחר":                  "מחר",
	}
	for in, want := range tests {
		if got := FormatDate(in); got != want {
			t.Errorf("FormatDate(%q) = %q, want %q", in, got, want)
		}
	}
}
