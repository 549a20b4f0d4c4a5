package score

import (
	"fmt"
	"io"
)

// Metadata holds the score sheet's `:key value` properties (title, singer,
// song_data, bpm, ...).
type Metadata map[string]string

// Scoremap is a fully compiled score sheet: its metadata plus the ordered
// sections of notes a player plays through.
type Scoremap struct {
	Metadata Metadata
	Sections *Sections
}

// Load lexes and parses a score sheet from r in one step.
func Load(r io.Reader, cfg LoadConfig) (*Scoremap, error) {
	tokens, err := Lex(r, cfg)
	if err != nil {
		return nil, fmt.Errorf("lex score sheet: %w", err)
	}
	score, err := Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("parse score sheet: %w", err)
	}
	return score, nil
}
