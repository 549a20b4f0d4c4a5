package score

import (
	"fmt"

	"github.com/mojiuchi/mojiuchi/pkg/seconds"
)

// ParseError reports why a score sheet's token stream didn't fold into
// valid notes.
type ParseError struct {
	LineNum int
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.LineNum, e.Reason)
}

// parserCtx accumulates parse state across the token stream: metadata seen
// so far, notes finished so far, completed sections, and the lyric/time
// bookkeeping needed to stitch a `:yomigana` line back to the Japanese text
// and timestamp that preceded it.
type parserCtx struct {
	metadata       map[string]string
	sections       [][]*Note
	notes          []*Note
	parsingLyrics  bool
	parsedJapanese *string
	currTime       seconds.MinuteSecond
}

func newParserCtx() *parserCtx {
	return &parserCtx{metadata: map[string]string{}}
}

// calcDuration spans from the context's running clock to the next `Time`
// token still queued, or one second past the clock if none remain (the
// trailing note at end of file).
func (ctx *parserCtx) calcDuration(tokens []Token, lineNum int) (seconds.Duration, error) {
	next := ctx.currTime.ToSeconds().Add(seconds.New(1))
	for _, t := range tokens {
		if t.Kind == TokenTime {
			next = t.Time.ToSeconds()
			break
		}
	}
	d, err := seconds.NewDuration(ctx.currTime.ToSeconds(), next)
	if err != nil {
		return seconds.Duration{}, &ParseError{LineNum: lineNum, Reason: err.Error()}
	}
	return d, nil
}

// parseStep tries to consume the front of tokens, returning the note it
// produced (if any), whether it consumed anything, and any error. Each step
// corresponds to exactly one token kind.
type parseStep func(tokens *[]Token, ctx *parserCtx) (*Note, error, bool)

func stepDoubleTime(tokens *[]Token, _ *parserCtx) (*Note, error, bool) {
	ts := *tokens
	if len(ts) < 2 || ts[0].Kind != TokenTime || ts[1].Kind != TokenTime {
		return nil, nil, false
	}
	from, to := ts[0].Time.ToSeconds(), ts[1].Time.ToSeconds()
	*tokens = ts[1:]
	d, err := seconds.NewDuration(from, to)
	if err != nil {
		return nil, &ParseError{LineNum: ts[0].LineNum, Reason: err.Error()}, true
	}
	return NewBlankNote(d), nil, true
}

func stepSingleTime(tokens *[]Token, ctx *parserCtx) (*Note, error, bool) {
	ts := *tokens
	if len(ts) == 0 || ts[0].Kind != TokenTime {
		return nil, nil, false
	}
	specified := ts[0].Time
	lineNum := ts[0].LineNum
	duration, err := ctx.calcDuration(ts, lineNum)
	*tokens = ts[1:]
	if err != nil {
		return nil, err, true
	}
	if !ctx.parsingLyrics {
		return nil, &ParseError{LineNum: lineNum, Reason: "時間指定は歌詞定義の中のみ有効です。"}, true
	}
	if specified.LessEqual(ctx.currTime) {
		return nil, nil, true
	}
	ctx.currTime = specified
	ctx.parsedJapanese = nil
	if len(ctx.notes) == 0 {
		return NewBlankNote(duration), nil, true
	}
	return nil, nil, true
}

func stepCommand(tokens *[]Token, ctx *parserCtx) (*Note, error, bool) {
	ts := *tokens
	if len(ts) == 0 || ts[0].Kind != TokenCommand {
		return nil, nil, false
	}
	lineNum := ts[0].LineNum
	command := ts[0].Command
	*tokens = ts[1:]
	switch command {
	case "start":
		if ctx.parsingLyrics {
			return nil, &ParseError{LineNum: lineNum, Reason: "start コマンドは end コマンドより前で有効です。"}, true
		}
		ctx.parsingLyrics = true
	case "break":
	case "end":
		if !ctx.parsingLyrics {
			return nil, &ParseError{LineNum: lineNum, Reason: "end コマンドは start コマンドより後で有効です。"}, true
		}
		ctx.parsingLyrics = false
	default:
		return nil, &ParseError{LineNum: lineNum, Reason: "start、break、end コマンドのみが有効です。"}, true
	}
	return nil, nil, true
}

func stepCaption(tokens *[]Token, ctx *parserCtx) (*Note, error, bool) {
	ts := *tokens
	if len(ts) == 0 || ts[0].Kind != TokenCaption {
		return nil, nil, false
	}
	lineNum := ts[0].LineNum
	caption := ts[0].Caption
	duration, err := ctx.calcDuration(ts, lineNum)
	*tokens = ts[1:]
	if err != nil {
		return nil, err, true
	}
	if !ctx.parsingLyrics {
		return nil, &ParseError{LineNum: lineNum, Reason: "キャプションの指定は歌詞定義の中のみ有効です。"}, true
	}
	return NewCaptionNote(duration, caption), nil, true
}

func stepProperty(tokens *[]Token, ctx *parserCtx) (*Note, error, bool) {
	ts := *tokens
	if len(ts) == 0 || ts[0].Kind != TokenProperty {
		return nil, nil, false
	}
	lineNum := ts[0].LineNum
	key, value := ts[0].PropertyKey, ts[0].PropertyValue
	*tokens = ts[1:]
	if ctx.parsingLyrics {
		return nil, &ParseError{LineNum: lineNum, Reason: "プロパティの指定は歌詞定義の外のみ有効です。"}, true
	}
	ctx.metadata[key] = value
	return nil, nil, true
}

func stepYomigana(tokens *[]Token, ctx *parserCtx) (*Note, error, bool) {
	ts := *tokens
	if len(ts) == 0 || ts[0].Kind != TokenYomigana {
		return nil, nil, false
	}
	lineNum := ts[0].LineNum
	reading := ts[0].Yomigana
	duration, err := ctx.calcDuration(ts, lineNum)
	*tokens = ts[1:]
	if err != nil {
		return nil, err, true
	}
	if ctx.parsedJapanese == nil {
		return nil, &ParseError{LineNum: lineNum, Reason: "読み仮名は歌詞より後にしてください。"}, true
	}
	sentence := NewSentence(*ctx.parsedJapanese, reading)
	ctx.parsedJapanese = nil
	return NewSentenceNote(duration, sentence), nil, true
}

func stepSection(tokens *[]Token, ctx *parserCtx) (*Note, error, bool) {
	ts := *tokens
	if len(ts) == 0 || ts[0].Kind != TokenSection {
		return nil, nil, false
	}
	*tokens = ts[1:]
	if len(ctx.notes) > 0 {
		ctx.sections = append(ctx.sections, ctx.notes)
		ctx.notes = nil
	}
	return nil, nil, true
}

func stepLyrics(tokens *[]Token, ctx *parserCtx) (*Note, error, bool) {
	ts := *tokens
	if len(ts) == 0 || ts[0].Kind != TokenLyrics {
		return nil, nil, false
	}
	lyrics := ts[0].Lyrics
	*tokens = ts[1:]
	if ctx.parsedJapanese != nil {
		joined := *ctx.parsedJapanese + lyrics
		ctx.parsedJapanese = &joined
	} else {
		ctx.parsedJapanese = &lyrics
	}
	return nil, nil, true
}

// parseSteps runs in exactly this priority order against the front of the
// remaining token stream; the first step that recognizes the front token(s)
// consumes them.
var parseSteps = []parseStep{
	stepDoubleTime,
	stepSingleTime,
	stepCommand,
	stepCaption,
	stepProperty,
	stepYomigana,
	stepSection,
	stepLyrics,
}

// Parse folds a token stream (as produced by Lex) into a Scoremap. Comment
// tokens are dropped up front since no step recognizes them.
func Parse(tokens []Token) (*Scoremap, error) {
	filtered := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != TokenComment {
			filtered = append(filtered, t)
		}
	}

	ctx := newParserCtx()
	for len(filtered) > 0 {
		for _, step := range parseSteps {
			note, err, ok := step(&filtered, ctx)
			if !ok {
				continue
			}
			if err != nil {
				return nil, err
			}
			if note != nil {
				ctx.notes = append(ctx.notes, note)
			}
			break
		}
	}

	if len(ctx.notes) > 0 {
		last := ctx.notes[len(ctx.notes)-1].Duration().Following(seconds.New(1))
		ctx.notes = append(ctx.notes, NewBlankNote(last))
	}
	ctx.sections = append(ctx.sections, ctx.notes)

	return &Scoremap{
		Metadata: ctx.metadata,
		Sections: NewSections(ctx.sections),
	}, nil
}
