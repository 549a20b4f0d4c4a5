package score

import (
	"bufio"
	"fmt"
	"io"
	"regexp"

	"github.com/mojiuchi/mojiuchi/pkg/roman"
	"github.com/mojiuchi/mojiuchi/pkg/seconds"
)

// LexError reports why a score sheet line could not be classified.
type LexError struct {
	LineNum int
	Reason  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d: %s", e.LineNum, e.Reason)
}

// metadataKeys are the only `:key value` properties a score sheet may set.
var metadataKeys = map[string]bool{
	"title":        true,
	"song_author":  true,
	"singer":       true,
	"score_author": true,
	"song_data":    true,
	"bpm":          true,
}

var (
	commentPattern  = regexp.MustCompile(`^\s*(:?#.*)?$`)
	propertyPattern = regexp.MustCompile(`^:(\S+)\s+(.+)$`)
	commandPattern  = regexp.MustCompile(`^\s*\[\s*(.*)\s*\]\s*$`)
	yomiganaPattern = regexp.MustCompile(`^:([ぁ-んー]+)$`)
	captionPattern  = regexp.MustCompile(`^\s*>>\s*(.+?)\s*$`)
	sectionPattern  = regexp.MustCompile(`@\s*(.+?)\s*$`)
	secondsPattern  = regexp.MustCompile(`^\*\s*((?:[0-9]+\.[0-9]+)|(?:0\.[0-9]+))\s*$`)
	minutesPattern  = regexp.MustCompile(`^\|\s*([1-9][0-9]*)\s*$`)
)

// LoadConfig controls lenience of the lexer pass.
type LoadConfig struct {
	IgnoreUnsupportedProperty bool
}

// lexerCtx threads the line number, line text and running timestamp through
// the matcher chain as a score sheet is read line by line.
type lexerCtx struct {
	lineNum  int
	line     string
	cfg      LoadConfig
	currMise seconds.MinuteSecond
}

// lexMatcher classifies one already-assigned line into a Token, or returns a
// nil Token for a line that produces nothing worth keeping (a stale `*`
// timestamp); a comment line yields a Comment token.
// Matchers run in priority order; the first pattern that matches the line
// wins even if a later pattern would also match.
type lexMatcher func(ctx *lexerCtx) (*Token, error, bool)

func matchComment(ctx *lexerCtx) (*Token, error, bool) {
	if !commentPattern.MatchString(ctx.line) {
		return nil, nil, false
	}
	return &Token{LineNum: ctx.lineNum, Kind: TokenComment}, nil, true
}

func matchSeconds(ctx *lexerCtx) (*Token, error, bool) {
	m := secondsPattern.FindStringSubmatch(ctx.line)
	if m == nil {
		return nil, nil, false
	}
	var num float64
	if _, err := fmt.Sscanf(m[1], "%g", &num); err != nil {
		return nil, &LexError{LineNum: ctx.lineNum, Reason: "秒数の解析に失敗しました。"}, true
	}
	candidate := ctx.currMise.WithSeconds(seconds.New(num))
	// A timestamp that doesn't move the clock forward is silently dropped.
	if candidate.LessEqual(ctx.currMise) {
		return nil, nil, true
	}
	ctx.currMise = candidate
	return &Token{LineNum: ctx.lineNum, Kind: TokenTime, Time: ctx.currMise}, nil, true
}

func matchMinutes(ctx *lexerCtx) (*Token, error, bool) {
	m := minutesPattern.FindStringSubmatch(ctx.line)
	if m == nil {
		return nil, nil, false
	}
	var num int
	if _, err := fmt.Sscanf(m[1], "%d", &num); err != nil {
		return nil, &LexError{LineNum: ctx.lineNum, Reason: "分数の解析に失敗しました。"}, true
	}
	ctx.currMise = ctx.currMise.WithMinutes(num).WithSeconds(seconds.Zero)
	return &Token{LineNum: ctx.lineNum, Kind: TokenComment}, nil, true
}

func matchCommand(ctx *lexerCtx) (*Token, error, bool) {
	m := commandPattern.FindStringSubmatch(ctx.line)
	if m == nil {
		return nil, nil, false
	}
	return &Token{LineNum: ctx.lineNum, Kind: TokenCommand, Command: m[1]}, nil, true
}

func matchCaption(ctx *lexerCtx) (*Token, error, bool) {
	m := captionPattern.FindStringSubmatch(ctx.line)
	if m == nil {
		return nil, nil, false
	}
	return &Token{LineNum: ctx.lineNum, Kind: TokenCaption, Caption: m[1]}, nil, true
}

func matchProperty(ctx *lexerCtx) (*Token, error, bool) {
	m := propertyPattern.FindStringSubmatch(ctx.line)
	if m == nil {
		return nil, nil, false
	}
	key, value := m[1], m[2]
	if !metadataKeys[key] {
		if ctx.cfg.IgnoreUnsupportedProperty {
			return &Token{LineNum: ctx.lineNum, Kind: TokenComment}, nil, true
		}
		return nil, &LexError{LineNum: ctx.lineNum, Reason: "未対応のプロパティです。"}, true
	}
	return &Token{LineNum: ctx.lineNum, Kind: TokenProperty, PropertyKey: key, PropertyValue: value}, nil, true
}

func matchYomigana(ctx *lexerCtx) (*Token, error, bool) {
	m := yomiganaPattern.FindStringSubmatch(ctx.line)
	if m == nil {
		return nil, nil, false
	}
	str, err := roman.New(m[1])
	if err != nil {
		return nil, &LexError{LineNum: ctx.lineNum, Reason: "ふりがなでのそのような平仮名の並びは未対応です。"}, true
	}
	return &Token{LineNum: ctx.lineNum, Kind: TokenYomigana, Yomigana: str}, nil, true
}

func matchSection(ctx *lexerCtx) (*Token, error, bool) {
	m := sectionPattern.FindStringSubmatch(ctx.line)
	if m == nil {
		return nil, nil, false
	}
	return &Token{LineNum: ctx.lineNum, Kind: TokenSection, Section: m[1]}, nil, true
}

func matchLyrics(ctx *lexerCtx) (*Token, error, bool) {
	return &Token{LineNum: ctx.lineNum, Kind: TokenLyrics, Lyrics: ctx.line}, nil, true
}

// lexMatchers runs in exactly this priority order: the first pattern that
// matches a line wins, so e.g. a line that happens to look both like a
// caption and a section is always read as a caption.
var lexMatchers = []lexMatcher{
	matchComment,
	matchSeconds,
	matchMinutes,
	matchCommand,
	matchCaption,
	matchProperty,
	matchYomigana,
	matchSection,
	matchLyrics,
}

// Lex reads a score sheet line by line and produces its flat token stream.
func Lex(r io.Reader, cfg LoadConfig) ([]Token, error) {
	ctx := &lexerCtx{cfg: cfg}
	var tokens []Token
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		ctx.line = scanner.Text()
		ctx.lineNum = lineNum
		for _, match := range lexMatchers {
			tok, err, matched := match(ctx)
			if !matched {
				continue
			}
			if err != nil {
				return nil, err
			}
			if tok != nil {
				tokens = append(tokens, *tok)
			}
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read score sheet: %w", err)
	}
	return tokens, nil
}
