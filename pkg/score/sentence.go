package score

import "github.com/mojiuchi/mojiuchi/pkg/roman"

// TypingText pairs the already-typed prefix of a text with what remains.
type TypingText struct {
	Inputted  string
	WillInput string
}

// Sentence is one lyric line: its displayed Japanese text alongside the
// romanized reading the player actually types against.
type Sentence struct {
	origin  string
	reading *roman.Str
}

// NewSentence pairs origin text with a reading already parsed into a Str.
func NewSentence(origin string, reading *roman.Str) *Sentence {
	return &Sentence{origin: origin, reading: reading}
}

// NewSentenceFromYomigana parses yomigana directly, for tests and tools
// that don't already hold a parsed Str.
func NewSentenceFromYomigana(origin, yomigana string) (*Sentence, error) {
	reading, err := roman.New(yomigana)
	if err != nil {
		return nil, err
	}
	return &Sentence{origin: origin, reading: reading}, nil
}

// Origin is the displayed Japanese text.
func (s *Sentence) Origin() string { return s.origin }

// Yomigana splits the underlying reading into inputted/remaining kana.
func (s *Sentence) Yomigana() TypingText {
	return TypingText{
		Inputted:  s.reading.InputtedYomigana(),
		WillInput: s.reading.WillInputYomigana(),
	}
}

// Roman splits the romanized reading into inputted/remaining spelling.
func (s *Sentence) Roman() TypingText {
	return TypingText{
		Inputted:  s.reading.InputtedRoman(),
		WillInput: s.reading.WillInputRoman(),
	}
}

// Input feeds one keystroke to the underlying reading.
func (s *Sentence) Input(typed rune) bool {
	return s.reading.Input(typed)
}

// Completed reports whether the whole reading has been typed.
func (s *Sentence) Completed() bool {
	return s.reading.Completed()
}
