package score

import (
	"sync/atomic"

	"github.com/mojiuchi/mojiuchi/pkg/seconds"
)

// TypeResult reports the outcome of a single keystroke against a Note.
type TypeResult int

const (
	// Vacant means the keystroke had nothing to act on: the note isn't a
	// sentence, or its sentence was already fully typed.
	Vacant TypeResult = iota
	Succeed
	Mistaken
)

// NoteID identifies a Note within a Scoremap. Notes are assigned IDs in
// parse order rather than the reference format's random tag, since nothing
// in this port needs them to be unguessable.
type NoteID uint64

var noteIDSeq uint64

func nextNoteID() NoteID {
	return NoteID(atomic.AddUint64(&noteIDSeq, 1))
}

// NoteContent is the payload a Note carries: exactly one of a typed
// Sentence, a display-only Caption, or a Blank spacer note.
type NoteContent struct {
	Sentence *Sentence
	Caption  string
	IsBlank  bool
}

// Note is a single scored unit of a score sheet: a span of time paired with
// what the player sees and, for sentence notes, types during that span.
type Note struct {
	id       NoteID
	duration seconds.Duration
	content  NoteContent
	scoring  Scoring
}

func newNote(duration seconds.Duration, content NoteContent) *Note {
	return &Note{id: nextNoteID(), duration: duration, content: content}
}

// NewSentenceNote builds a note the player types the given sentence during.
func NewSentenceNote(duration seconds.Duration, sentence *Sentence) *Note {
	return newNote(duration, NoteContent{Sentence: sentence})
}

// NewCaptionNote builds a display-only caption note.
func NewCaptionNote(duration seconds.Duration, caption string) *Note {
	return newNote(duration, NoteContent{Caption: caption})
}

// NewBlankNote builds a spacer note with no displayed content.
func NewBlankNote(duration seconds.Duration) *Note {
	return newNote(duration, NoteContent{IsBlank: true})
}

// ID returns the note's identity, stable for its lifetime.
func (n *Note) ID() NoteID { return n.id }

// Duration is the time span during which this note is current.
func (n *Note) Duration() seconds.Duration { return n.duration }

// Content returns the note's payload.
func (n *Note) Content() NoteContent { return n.content }

// Input feeds one keystroke to the note's sentence, if it has one.
func (n *Note) Input(typed rune) TypeResult {
	if n.content.Sentence == nil {
		return Vacant
	}
	var result TypeResult
	if n.content.Sentence.Completed() {
		result = Vacant
	} else if n.content.Sentence.Input(typed) {
		result = Succeed
	} else {
		result = Mistaken
	}
	n.scoring.Point(result)
	return result
}

// Accuracy is the note's correct-keystroke ratio, or 1.0 for non-sentence
// notes (captions and blanks always count as fully accurate).
func (n *Note) Accuracy() float64 {
	if n.content.Sentence == nil {
		return 1.0
	}
	return n.scoring.Accuracy()
}
