// Package score compiles a score sheet's plain-text source into a Scoremap:
// metadata, sections and the notes a player types against. It is organized
// as a lexer producing a flat token stream and a parser folding that stream
// into notes, mirroring the two-stage pipeline the format was designed for.
package score

import (
	"github.com/mojiuchi/mojiuchi/pkg/roman"
	"github.com/mojiuchi/mojiuchi/pkg/seconds"
)

// TokenKind identifies which line pattern produced a Token.
type TokenKind int

const (
	TokenComment TokenKind = iota
	TokenCommand
	TokenCaption
	TokenProperty
	TokenYomigana
	TokenSection
	TokenTime
	TokenLyrics
)

// Token is one classified line of score sheet source. Only the fields
// relevant to Kind are populated; the rest are left at their zero value.
type Token struct {
	LineNum int
	Kind    TokenKind

	Command       string
	Caption       string
	PropertyKey   string
	PropertyValue string
	Yomigana      *roman.Str
	Section       string
	Time          seconds.MinuteSecond
	Lyrics        string
}
