package score

import (
	"sort"

	"github.com/mojiuchi/mojiuchi/pkg/seconds"
)

// Section is a contiguous run of notes between two `@` markers, the unit a
// perfect-section bonus is judged against.
type Section struct {
	notes            []*Note
	currentNoteIndex int
	duration         seconds.Duration
}

// NewSection builds a Section from its notes and overall span.
func NewSection(notes []*Note, duration seconds.Duration) *Section {
	return &Section{notes: notes, duration: duration}
}

// CurrentNote is the note the player is presently meant to be typing.
func (s *Section) CurrentNote() *Note {
	return s.notes[s.currentNoteIndex]
}

// ID is the current note's identity, used to detect when the cursor has
// moved on to a new note.
func (s *Section) ID() NoteID {
	return s.CurrentNote().ID()
}

// Duration is the section's overall time span.
func (s *Section) Duration() seconds.Duration {
	return s.duration
}

// Input feeds a keystroke to the current note.
func (s *Section) Input(typed rune) TypeResult {
	return s.notes[s.currentNoteIndex].Input(typed)
}

// Accuracy is the median of every note's Accuracy in this section. The
// even/odd branches below sort ascending and then pick: an even note count
// takes the single element at the midpoint, an odd count averages the two
// elements straddling it — the reverse of the usual median rule, kept
// exactly as the scoring system this was ported from computes it.
func (s *Section) Accuracy() float64 {
	accuracies := make([]float64, len(s.notes))
	for i, n := range s.notes {
		accuracies[i] = n.Accuracy()
	}
	sort.Float64s(accuracies)
	mid := len(accuracies) / 2
	if len(accuracies)%2 == 0 {
		return accuracies[mid]
	}
	return (accuracies[mid-1] + accuracies[mid]) / 2.0
}

// Progress is the char-count-weighted fraction of this section's typed
// text that has been entered so far, a finer-grained companion to Accuracy
// useful for rendering a progress bar mid-section.
func (s *Section) Progress() float64 {
	var inputted, total int
	for _, n := range s.notes {
		sentence := n.Content().Sentence
		if sentence == nil {
			continue
		}
		r := sentence.Roman()
		inputted += len([]rune(r.Inputted))
		total += len([]rune(r.Inputted)) + len([]rune(r.WillInput))
	}
	if total == 0 {
		return 1.0
	}
	return float64(inputted) / float64(total)
}

// Update moves the cursor to whichever note's Duration includes time, if
// any, and reports whether such a note was found.
func (s *Section) Update(t seconds.Seconds) bool {
	for i, n := range s.notes {
		if n.Duration().Includes(t) {
			s.currentNoteIndex = i
			return true
		}
	}
	return false
}

// Notes exposes the underlying note sequence in order.
func (s *Section) Notes() []*Note {
	return s.notes
}
