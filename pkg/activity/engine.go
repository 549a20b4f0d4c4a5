package activity

import (
	"errors"

	"github.com/mojiuchi/mojiuchi/pkg/score"
	"github.com/mojiuchi/mojiuchi/pkg/seconds"
)

// ErrSongDataNotFound is returned by New when a score sheet has no
// song_data property: there is nothing to play audio against.
var ErrSongDataNotFound = errors.New("activity: song_data property is required")

// EventKind identifies what a Event reports.
type EventKind int

const (
	EventPlayBGM EventKind = iota
	EventUpdateSentence
	EventMissedSentence
	EventCompletedSentence
	EventDidPerfectSection
	EventTyped
	EventEndOfScore
)

// TypeOutcome is the per-keystroke result carried by an EventTyped event.
type TypeOutcome int

const (
	TypeVacant TypeOutcome = iota
	TypeCorrect
	TypeMissed
)

func toOutcome(r score.TypeResult) TypeOutcome {
	switch r {
	case score.Succeed:
		return TypeCorrect
	case score.Mistaken:
		return TypeMissed
	default:
		return TypeVacant
	}
}

// Event is one notification produced by KeyPress or ElapseTime for a
// frontend to render.
type Event struct {
	Kind        EventKind
	Sentence    *score.Sentence
	BGMPath     string
	TypeOutcome TypeOutcome
}

// Point is a signed score adjustment; wrong keystrokes and missed sentences
// subtract from the running total.
type Point = int

// Config holds the point value of every scoring event.
type Config struct {
	WrongType        Point
	CorrectType      Point
	MissedSentence   Point
	CompleteSentence Point
	PerfectSentence  Point
	PerfectSection   Point
	// IdealTypingSpeed is keystrokes per second a perfectly-paced player
	// would need to clear a sentence exactly as its section ends. It is
	// carried through for a frontend's typing-speed display; the scoring
	// engine itself doesn't consume it.
	IdealTypingSpeed float64
}

// DefaultConfig is the point schedule every score sheet uses absent an
// override.
func DefaultConfig() Config {
	return Config{
		WrongType:        30,
		CorrectType:      10,
		MissedSentence:   2,
		CompleteSentence: 50,
		PerfectSentence:  100,
		PerfectSection:   300,
		IdealTypingSpeed: 3.0,
	}
}

// GameScore is the running tally a frontend's scoreboard reads from: the
// point total alongside the two ratio metrics §3 defines over the whole
// session, not just the current note.
type GameScore struct {
	ScorePoint      int
	Accuracy        float64
	AchievementRate float64
}

// Engine drives a Scoremap through a play session: it owns the Activity
// cursor, accumulates elapsed time, and turns KeyPress/ElapseTime calls
// into the event stream a frontend consumes.
type Engine struct {
	activity        *Activity
	metadata        score.Metadata
	accumulatedTime seconds.Seconds
	eventQueue      []Event
	config          Config

	allRomanLen  int
	correctCount int
	wrongCount   int
}

// New builds an Engine from a compiled score sheet. It fails if the score
// sheet has no song_data property, since there is nothing to cue BGM from.
func New(sm *score.Scoremap, config Config) (*Engine, error) {
	songData, ok := sm.Metadata["song_data"]
	if !ok {
		return nil, ErrSongDataNotFound
	}
	return &Engine{
		activity:    NewActivity(sm.Sections),
		metadata:    sm.Metadata,
		config:      config,
		allRomanLen: allRomanLen(sm.Sections),
		eventQueue: []Event{
			{Kind: EventPlayBGM, BGMPath: songData},
		},
	}, nil
}

// allRomanLen sums the canonical romanization length of every sentence note
// across every section, the denominator GameScore.AchievementRate is judged
// against.
func allRomanLen(sections *score.Sections) int {
	total := 0
	for _, section := range sections.All() {
		for _, note := range section.Notes() {
			if sentence := note.Content().Sentence; sentence != nil {
				total += len(sentence.Roman().WillInput)
			}
		}
	}
	return total
}

// flushEvents drains the queued events (BGM cue and this call's Typed
// events), appends trailing in order, and finally appends the current
// sentence's UpdateSentence event last, so a frontend always sees what
// happened before it sees what to display next.
func (e *Engine) flushEvents(trailing []Event) []Event {
	events := append(e.eventQueue, trailing...)
	e.eventQueue = nil
	events = append(events, Event{Kind: EventUpdateSentence, Sentence: e.activity.CurrentSentence()})
	return events
}

// KeyPress feeds typed keystrokes to the engine in order, scoring each one
// and, if it completes the current sentence, awarding completion and
// perfect-section/perfect-sentence bonuses.
func (e *Engine) KeyPress(typed []rune) []Event {
	prevSentence := e.activity.CurrentSentence()
	prevCompleted := prevSentence == nil || prevSentence.Completed()

	for _, r := range typed {
		result := e.activity.Input(r)
		switch result {
		case score.Succeed:
			e.activity.Point(e.config.CorrectType)
			e.correctCount++
		case score.Mistaken:
			e.activity.Point(-e.config.WrongType)
			e.wrongCount++
		}
		e.eventQueue = append(e.eventQueue, Event{Kind: EventTyped, TypeOutcome: toOutcome(result)})
	}

	currSentence := e.activity.CurrentSentence()
	currCompleted := currSentence == nil || currSentence.Completed()

	var trailing []Event
	if !prevCompleted && currCompleted {
		if section := e.activity.CurrentSection(); section != nil && section.Accuracy() >= 1.0 {
			e.activity.Point(e.config.PerfectSection)
			trailing = append(trailing, Event{Kind: EventDidPerfectSection})
		}
		if note := e.activity.CurrentNote(); note != nil && note.Accuracy() >= 1.0 {
			e.activity.Point(e.config.PerfectSentence)
		}
		e.activity.Point(e.config.CompleteSentence)
		trailing = append(trailing, Event{Kind: EventCompletedSentence, Sentence: prevSentence})
	}
	return e.flushEvents(trailing)
}

// ElapseTime advances the game clock by delta and moves the cursor to
// whichever note now covers it. If the clock runs past the end of the
// score, only an EndOfScore event is returned. If the cursor moves off an
// unfinished sentence onto a new note, a missed-sentence penalty applies.
func (e *Engine) ElapseTime(delta seconds.Seconds) []Event {
	e.accumulatedTime = e.accumulatedTime.Add(delta)

	prevSentence := e.activity.CurrentSentence()
	completed := prevSentence == nil || prevSentence.Completed()
	prevNoteID := e.activity.CurrentNoteID()

	e.activity.UpdateTime(e.accumulatedTime)

	if e.activity.IsGameOver() {
		return []Event{{Kind: EventEndOfScore}}
	}

	var trailing []Event
	if !completed && prevNoteID != e.activity.CurrentNoteID() {
		e.activity.Point(-e.config.MissedSentence)
		trailing = append(trailing, Event{Kind: EventMissedSentence, Sentence: prevSentence})
	}
	return e.flushEvents(trailing)
}

// AccumulatedTime is the total elapsed game time so far.
func (e *Engine) AccumulatedTime() seconds.Seconds {
	return e.accumulatedTime
}

// SectionRemainingRatio is how far through the current note the clock now
// falls, as a 0..1 ratio (named for the section progress bar a frontend
// renders it against, per spec.md's query naming).
func (e *Engine) SectionRemainingRatio() float64 {
	return e.activity.RemainingRatio(e.accumulatedTime)
}

// Score is the running point total.
func (e *Engine) Score() int {
	return e.activity.Score()
}

// GameScore is the session-wide scoring snapshot: point total, overall
// keystroke accuracy, and achievement rate against every typeable
// character in the score sheet. Accuracy is 0 until the first keystroke is
// recorded, per §3; AchievementRate is clamped to 1 since a player cannot
// type more correct characters than the sheet contains.
func (e *Engine) GameScore() GameScore {
	total := e.correctCount + e.wrongCount
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(e.correctCount) / float64(total)
	}
	achievement := 0.0
	if e.allRomanLen > 0 {
		achievement = float64(e.correctCount) / float64(e.allRomanLen)
		if achievement > 1 {
			achievement = 1
		}
	}
	return GameScore{
		ScorePoint:      e.activity.Score(),
		Accuracy:        accuracy,
		AchievementRate: achievement,
	}
}

// Metadata returns the score sheet's properties (title, singer, bpm, ...).
func (e *Engine) Metadata() score.Metadata {
	return e.metadata
}
