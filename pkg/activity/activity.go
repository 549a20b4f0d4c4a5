// Package activity drives a compiled score through a game session: it
// tracks which note is current, applies keystrokes and elapsed time, and
// emits the event stream a frontend renders from.
package activity

import (
	"github.com/mojiuchi/mojiuchi/pkg/score"
	"github.com/mojiuchi/mojiuchi/pkg/seconds"
)

// Activity is the cursor and running score over a Scoremap's sections: the
// part of a session that doesn't know about point values or event
// bookkeeping, only about where the player currently is and how accurately
// they've typed.
type Activity struct {
	sections *score.Sections
	points   int
	started  bool
	gameOver bool
}

// NewActivity wraps a compiled score's sections for play.
func NewActivity(sections *score.Sections) *Activity {
	return &Activity{sections: sections}
}

// CurrentSection is the section the cursor currently sits in, or nil once
// the game is over.
func (a *Activity) CurrentSection() *score.Section {
	return a.sections.CurrentSection()
}

// CurrentNote is the note the cursor currently sits on, or nil once the
// game is over or before any time has elapsed.
func (a *Activity) CurrentNote() *score.Note {
	if !a.started {
		return nil
	}
	section := a.CurrentSection()
	if section == nil {
		return nil
	}
	return section.CurrentNote()
}

// CurrentNoteID is the current note's identity, or zero once the game is
// over. Comparing this across two calls is how the engine detects the
// cursor moving to a new note.
func (a *Activity) CurrentNoteID() score.NoteID {
	if note := a.CurrentNote(); note != nil {
		return note.ID()
	}
	return 0
}

// CurrentSentence is the current note's Sentence, or nil if the current
// note isn't a sentence note (a caption, a blank, or no note at all).
func (a *Activity) CurrentSentence() *score.Sentence {
	note := a.CurrentNote()
	if note == nil {
		return nil
	}
	return note.Content().Sentence
}

// Input feeds one keystroke to the current note.
func (a *Activity) Input(typed rune) score.TypeResult {
	if a.CurrentNote() == nil {
		return score.Vacant
	}
	return a.sections.Input(typed)
}

// Point adjusts the running score by delta, which may be negative.
func (a *Activity) Point(delta int) {
	a.points += delta
}

// Score is the running point total.
func (a *Activity) Score() int {
	return a.points
}

// UpdateTime moves the cursor to whichever note now covers t. Once no
// section has a note covering t, the activity is over: the cursor moves past
// the last section and IsGameOver reports true from then on.
func (a *Activity) UpdateTime(t seconds.Seconds) {
	a.started = true
	if a.sections.Update(t) == nil {
		a.gameOver = true
	}
}

// IsGameOver reports whether the cursor has run past the end of the score.
func (a *Activity) IsGameOver() bool {
	return a.gameOver
}

// RemainingRatio is how far through the current note t now falls, as a 0..1
// ratio; see seconds.Duration.RemainingRatio. With no current note (the
// game is over, or nothing has played yet) it reports 1.
func (a *Activity) RemainingRatio(t seconds.Seconds) float64 {
	note := a.CurrentNote()
	if note == nil {
		return 1
	}
	return note.Duration().RemainingRatio(t)
}
