package clause

import (
	"errors"
	"fmt"
)

// ErrUnknownQuestion is returned when an answer names no loaded definition.
var ErrUnknownQuestion = errors.New("clause: unknown question")

// Session owns the state of one questionnaire run: the loaded definitions,
// the answers given so far and which questions the user has already seen.
//
// All mutation goes through Set, Clear and MarkReviewed. The definitions are
// read-only once the session is created. A Session is not safe for
// concurrent use.
type Session struct {
	defs     []Definition
	byName   map[string]int
	answers  Answers
	reviewed map[string]bool
}

// NewSession starts a session over defs with every question unanswered.
func NewSession(defs []Definition) *Session {
	s := &Session{
		defs:     defs,
		byName:   make(map[string]int, len(defs)),
		answers:  make(Answers, len(defs)),
		reviewed: make(map[string]bool),
	}
	for i, d := range defs {
		s.byName[d.Name] = i
	}
	return s
}

// Definitions returns the loaded definitions.
func (s *Session) Definitions() []Definition {
	return s.defs
}

// Set records the answer for the named question.
func (s *Session) Set(name, value string) error {
	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, name)
	}
	s.answers[name] = value
	return nil
}

// Clear forgets the answer for the named question.
func (s *Session) Clear(name string) {
	delete(s.answers, name)
}

// Answers returns a copy of the current answers with address parts derived
// from the full property address.
func (s *Session) Answers() Answers {
	return FillAddress(s.answers)
}

// MarkReviewed records that the named question was shown to the user.
func (s *Session) MarkReviewed(name string) {
	s.reviewed[name] = true
}

// Visible reports whether d applies given the current answers. A
// conditional definition whose referenced question does not exist is never
// visible.
func (s *Session) Visible(d Definition) bool {
	return Satisfied(d, s.defs, s.answers)
}

// Questions returns the visible, non-static definitions of the named
// section in load order.
func (s *Session) Questions(section string) []Definition {
	var out []Definition
	for _, d := range s.defs {
		if d.IsStatic() || NormalizeSection(d.Section) != section || !s.Visible(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Sections returns the definitions grouped by section in first-seen order.
func (s *Session) Sections() []Section {
	return GroupSections(s.defs)
}

// SectionComplete reports whether every question of the section has been
// reviewed.
func (s *Session) SectionComplete(section string) bool {
	for _, d := range s.defs {
		if NormalizeSection(d.Section) == section && !d.IsStatic() && !s.reviewed[d.Name] {
			return false
		}
	}
	return true
}

// Complete reports whether every section is complete and every visible
// required question has an answer.
func (s *Session) Complete() bool {
	for _, sec := range s.Sections() {
		if !s.SectionComplete(sec.Title) {
			return false
		}
	}
	for _, d := range s.defs {
		if d.Required && s.Visible(d) && !s.answers.Answered(d.Name) {
			return false
		}
	}
	return true
}

// Satisfied reports whether the condition of d holds for answers. The
// referenced question is looked up by label among defs; multiselect answers
// satisfy the condition when any chosen label equals the required value.
func Satisfied(d Definition, defs []Definition, answers Answers) bool {
	if d.Conditional == nil {
		return true
	}
	var ref *Definition
	for i := range defs {
		if defs[i].Label == d.Conditional.QuestionLabel {
			ref = &defs[i]
			break
		}
	}
	if ref == nil {
		return false
	}
	answer := answers.Get(ref.Name)
	if ref.InputType == InputMultiselect {
		for _, v := range SplitMulti(answer) {
			if v == d.Conditional.RequiredValue {
				return true
			}
		}
		return false
	}
	return answer == d.Conditional.RequiredValue
}
