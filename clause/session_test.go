package clause

import (
	"errors"
	"testing"
)

func sessionDefs() []Definition {
	return []Definition{
		{Name: "parking", Label: "יש חניה?", Section: "פרטי הנכס", InputType: InputSelect, Options: []string{"כן", "לא"}},
		{Name: "parkingNumber", Label: "מספר חניה", Section: "פרטי הנכס",
			Conditional: &Condition{QuestionLabel: "יש חניה?", RequiredValue: "כן"}},
		{Name: "guarantees", Label: "בטחונות", Section: "ערבויות", InputType: InputMultiselect, Required: true},
		{Name: "guarantor", Label: "פרטי ערב", Section: "ערבויות",
			Conditional: &Condition{QuestionLabel: "בטחונות", RequiredValue: "ערב"}},
		{Name: "intro", Section: "ערבויות", Kind: KindStatic, StaticText: "..."},
	}
}

func TestSessionSetUnknown(t *testing.T) {
	s := NewSession(sessionDefs())
	if err := s.Set("nope", "x"); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
}

func TestSessionAnswersIsCopy(t *testing.T) {
	s := NewSession(sessionDefs())
	if err := s.Set("parking", "כן"); err != nil {
		t.Fatal(err)
	}
	a := s.Answers()
	a["parking"] = "לא"
	if got := s.Answers().Get("parking"); got != "כן" {
		t.Errorf("session answer changed through copy: %q", got)
	}
}

func TestSessionVisibility(t *testing.T) {
	s := NewSession(sessionDefs())
	defs := s.Definitions()

	if s.Visible(defs[1]) {
		t.Error("parkingNumber visible before parking answered")
	}
	_ = s.Set("parking", "כן")
	if !s.Visible(defs[1]) {
		t.Error("parkingNumber hidden after parking=כן")
	}

	_ = s.Set("guarantees", "שטר חוב, ערב")
	if !s.Visible(defs[3]) {
		t.Error("guarantor hidden although multiselect contains ערב")
	}
	_ = s.Set("guarantees", "שטר חוב")
	if s.Visible(defs[3]) {
		t.Error("guarantor visible without ערב selected")
	}

	if got := len(s.Questions("ערבויות")); got != 1 {
		t.Errorf("Questions(ערבויות) = %d, want 1", got)
	}
}

func TestSessionMissingConditionReference(t *testing.T) {
	d := Definition{Name: "x", Conditional: &Condition{QuestionLabel: "אין כזו", RequiredValue: "כן"}}
	if Satisfied(d, nil, Answers{}) {
		t.Error("condition on a missing question should not be satisfied")
	}
}

func TestSessionCompletion(t *testing.T) {
	s := NewSession(sessionDefs())
	if s.SectionComplete("פרטי הנכס") {
		t.Fatal("section complete before review")
	}
	s.MarkReviewed("parking")
	s.MarkReviewed("parkingNumber")
	if !s.SectionComplete("פרטי הנכס") {
		t.Fatal("section incomplete after reviewing all questions")
	}

	s.MarkReviewed("guarantees")
	s.MarkReviewed("guarantor")
	if s.Complete() {
		t.Fatal("complete while a required question is unanswered")
	}
	_ = s.Set("guarantees", "שטר חוב")
	if !s.Complete() {
		t.Fatal("expected session to be complete")
	}
}

func TestSessionClear(t *testing.T) {
	s := NewSession(sessionDefs())
	_ = s.Set("parking", "כן")
	s.Clear("parking")
	if s.Answers().Answered("parking") {
		t.Error("answer survived Clear")
	}
}
