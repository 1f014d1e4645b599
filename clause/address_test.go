package clause

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in   string
		want Address
	}{
		{
			in:   "גאולים 14 כניסה 2 דירה 7, תל אביב",
			want: Address{Street: "גאולים", Apartment: "7", Entrance: "2", City: "תל אביב"},
		},
		{
			in:   "הרצל 3",
			want: Address{Street: "הרצל"},
		},
		{
			in:   "",
			want: Address{},
		},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseAddress(tt.in)); diff != "" {
			t.Errorf("ParseAddress(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestFillAddressKeepsExplicitAnswers(t *testing.T) {
	in := Answers{
		KeyPropertyAddress: "גאולים 14 דירה 7, תל אביב",
		KeyCity:            "חיפה",
	}
	got := FillAddress(in)

	if got.Get(KeyCity) != "חיפה" {
		t.Errorf("city overwritten: %q", got.Get(KeyCity))
	}
	if got.Get(KeyStreet) != "גאולים" || got.Get(KeyApartmentNumber) != "7" {
		t.Errorf("derived parts missing: %v", got)
	}
	if got.Answered(KeyEntrance) {
		t.Errorf("entrance should stay unanswered, got %q", got.Get(KeyEntrance))
	}
	if in.Answered(KeyStreet) {
		t.Error("FillAddress mutated its input")
	}
}
