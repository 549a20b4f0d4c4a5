package score

import "github.com/mojiuchi/mojiuchi/pkg/seconds"

// Sections is the ordered run of Sections a compiled score sheet is split
// into at each `@` marker, with a cursor over which one is currently being
// played.
type Sections struct {
	sections            []*Section
	currentSectionIndex int
}

// NewSections groups notes into Sections, deriving each one's overall
// Duration from its first and last note's span.
func NewSections(grouped [][]*Note) *Sections {
	sections := make([]*Section, len(grouped))
	for i, notes := range grouped {
		first := notes[0].Duration()
		last := notes[len(notes)-1].Duration()
		sections[i] = NewSection(notes, first.Concat(last))
	}
	return &Sections{sections: sections}
}

// CurrentSection is the section presently being played, or nil once the
// cursor has run past the last one.
func (s *Sections) CurrentSection() *Section {
	if s.currentSectionIndex < len(s.sections) {
		return s.sections[s.currentSectionIndex]
	}
	return nil
}

// Input feeds a keystroke to the current section's current note.
func (s *Sections) Input(typed rune) TypeResult {
	if cur := s.CurrentSection(); cur != nil {
		return cur.Input(typed)
	}
	return Vacant
}

// Progress is the current section's char-count-weighted progress, or 1.0
// once the cursor has run past the last section.
func (s *Sections) Progress() float64 {
	if cur := s.CurrentSection(); cur != nil {
		return cur.Progress()
	}
	return 1.0
}

// Update scans every section, in order, for the first one with a note
// spanning time, moves the cursor there and reports it. It reports nil once
// no section contains time, meaning the score has ended, and moves the
// cursor past the last section.
func (s *Sections) Update(t seconds.Seconds) *Section {
	for i, section := range s.sections {
		if section.Update(t) {
			s.currentSectionIndex = i
			return section
		}
	}
	s.currentSectionIndex = len(s.sections)
	return nil
}

// All exposes the underlying section sequence in order.
func (s *Sections) All() []*Section {
	return s.sections
}
