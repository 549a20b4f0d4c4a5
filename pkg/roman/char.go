// Package roman implements the kana-to-romanization transducer: given a
// hiragana reading it builds a sequence of units, each accepting whichever
// of several equally valid romanization spellings the player chooses to
// type, narrowing the displayed spelling live as keystrokes arrive.
package roman

import "strings"

// Char is a single kana unit (one kana, a digraph, or a sokuon lead-in) and
// every romanization style a player may type for it. Styles[0] is the
// canonical, displayed-by-default spelling.
type Char struct {
	styles   []string
	inputted string
	style    string
	hasStyle bool
}

// NewChar builds a Char from its ordered candidate styles. styles must be
// non-empty; ParseYomigana is the only caller and always supplies at least
// one style per unit.
func NewChar(styles []string) *Char {
	cp := make([]string, len(styles))
	copy(cp, styles)
	return &Char{styles: cp}
}

// Styles returns the unit's current candidate spellings, in their original
// declared order. FixStyle can narrow this list; Input never does.
func (c *Char) Styles() []string {
	return c.styles
}

// DeterminedStyle is the spelling currently being displayed to the player:
// whichever style Input last narrowed down to, or the first candidate
// style if nothing has been accepted yet. A rejected keystroke never
// changes it.
func (c *Char) DeterminedStyle() string {
	if c.hasStyle {
		return c.style
	}
	return c.styles[0]
}

// Inputted is the prefix of DeterminedStyle the player has successfully typed
// so far for this unit.
func (c *Char) Inputted() string {
	return c.inputted
}

func firstWithPrefix(styles []string, prefix string) (string, bool) {
	for _, s := range styles {
		if strings.HasPrefix(s, prefix) {
			return s, true
		}
	}
	return "", false
}

// Input tries to extend this unit's inputted prefix with typed, narrowing
// DeterminedStyle to the first remaining style consistent with it. It
// reports whether typed was accepted; on rejection nothing about the unit's
// state changes, so a bad keystroke never disturbs an already-narrowed
// style.
func (c *Char) Input(typed rune) bool {
	attempt := c.inputted + string(typed)
	style, ok := firstWithPrefix(c.styles, attempt)
	if !ok {
		return false
	}
	c.style = style
	c.hasStyle = true
	c.inputted = attempt
	return true
}

// CompletedInput reports whether the player has fully typed this unit's
// determined style.
func (c *Char) CompletedInput() bool {
	return len(c.DeterminedStyle()) == len(c.inputted)
}

// FixStyle narrows this unit's candidate styles to those starting with
// hint, without consuming it as typed input. It is the "style fix-forward"
// hint: the engine calls it with the keystroke that just completed the
// previous unit, so a player typing the start of a later unit's spelling
// biases which ambiguous style is displayed before they've typed anything
// for it themselves. A hint matching nothing leaves the unit untouched.
func (c *Char) FixStyle(hint rune) {
	if filtered := filterPrefix(c.styles, string(hint)); len(filtered) > 0 {
		c.styles = filtered
	}
}

func filterPrefix(styles []string, prefix string) []string {
	var out []string
	for _, s := range styles {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}
