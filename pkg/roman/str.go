package roman

// Str is a full reading (e.g. one lyric line's yomigana) tracked as an
// ordered sequence of Chars, with a cursor over which unit is currently
// being typed.
type Str struct {
	yomigana     []rune
	chars        []*Char
	inputtingIdx int
	inputted     string
}

// New parses yomigana into a Str ready to receive keystrokes.
func New(yomigana string) (*Str, error) {
	runes := []rune(yomigana)
	chars, err := ParseYomigana(runes)
	if err != nil {
		return nil, err
	}
	return &Str{yomigana: runes, chars: chars}, nil
}

// inputtedYomiganaIndex counts how many leading kana units have been fully
// typed, used to split the origin yomigana into an inputted/remaining pair.
func (s *Str) inputtedYomiganaIndex() int {
	n := 0
	for _, c := range s.chars {
		if !c.CompletedInput() {
			break
		}
		n++
	}
	return n
}

// WillInputYomigana is the suffix of the original reading not yet typed.
func (s *Str) WillInputYomigana() string {
	return string(s.yomigana[s.inputtedYomiganaIndex():])
}

// InputtedYomigana is the prefix of the original reading already typed.
func (s *Str) InputtedYomigana() string {
	return string(s.yomigana[:s.inputtedYomiganaIndex()])
}

// WillInputRoman is the remainder of the currently displayed romanization
// the player still needs to type.
func (s *Str) WillInputRoman() string {
	var full string
	for _, c := range s.chars {
		full += c.DeterminedStyle()
	}
	return full[len(s.inputted):]
}

// InputtedRoman is the romanized prefix the player has typed so far.
func (s *Str) InputtedRoman() string {
	return s.inputted
}

// Input feeds one typed rune to the current unit. It reports whether the
// keystroke was accepted. On acceptance, once the current unit completes,
// the cursor advances and the style fix-forward hint primes the next unit.
func (s *Str) Input(typed rune) bool {
	if s.Completed() {
		return false
	}
	cur := s.chars[s.inputtingIdx]
	if !cur.Input(typed) {
		return false
	}
	s.inputted += string(typed)
	if cur.CompletedInput() {
		s.inputtingIdx++
	}
	if !s.Completed() {
		s.chars[s.inputtingIdx].FixStyle(typed)
	}
	return true
}

// Completed reports whether every unit has been fully typed.
func (s *Str) Completed() bool {
	return s.inputtingIdx >= len(s.chars)
}

// Chars exposes the underlying unit sequence, e.g. for rendering styled
// romanization letter by letter.
func (s *Str) Chars() []*Char {
	return s.chars
}
