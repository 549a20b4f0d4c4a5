// Package lyrics tokenizes Japanese lyric text and fetches article text
// from the web as a starting point for drafting a score sheet's lyric
// lines before furigana annotation.
package lyrics

import (
	"regexp"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is a single morphologically analyzed unit of lyric text.
type Token struct {
	Surface       string   // The text as it appears (e.g. "行っ")
	BaseForm      string   // The dictionary form (e.g. "行く")
	Reading       string   // The pronunciation (katakana, e.g. "イッ")
	PartsOfSpeech []string // e.g. ["動詞", "自立", "*", "*"] (Kagome POS labels)
	PrimaryPOS    string   // The first (primary) part of speech, if available.
}

// Indices into a kagome IPA token's feature list for the fields Analyze
// pulls out by name; everything past PrimaryPOS is carried through
// verbatim in PartsOfSpeech for callers that want the rest (conjugation
// type, conjugation form) without this package naming every one of them.
const (
	featureIdxPOS     = 0
	featureIdxBase    = 6
	featureIdxReading = 7
)

// Analyzer wraps a kagome tokenizer over the IPA dictionary, the same
// morphological split the annotation pipeline needs to line a lyric's
// kanji up against a drafted hiragana reading.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer builds an Analyzer.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Analyze splits a lyric line into tokens with readings and base forms.
// Dummy tokens (kagome's sentence-boundary padding) and whitespace-only
// surfaces are dropped; a lyric line yields no boundary tokens of its own
// since it's already exactly one line from the score sheet.
func (a *Analyzer) Analyze(line string) ([]Token, error) {
	raw := a.t.Tokenize(line)
	tokens := make([]Token, 0, len(raw))
	for _, r := range raw {
		if r.Class == tokenizer.DUMMY || strings.TrimSpace(r.Surface) == "" {
			continue
		}
		tokens = append(tokens, tokenFromFeatures(r.Surface, r.Features()))
	}
	return tokens, nil
}

func tokenFromFeatures(surface string, features []string) Token {
	return Token{
		Surface:       surface,
		BaseForm:      featureOrDefault(features, featureIdxBase, surface),
		Reading:       featureOrDefault(features, featureIdxReading, ""),
		PartsOfSpeech: features,
		PrimaryPOS:    featureOrDefault(features, featureIdxPOS, ""),
	}
}

// featureOrDefault returns features[idx] unless it's out of range or the
// unfilled-feature placeholder kagome uses ("*"), in which case it falls
// back to def.
func featureOrDefault(features []string, idx int, def string) string {
	if idx >= len(features) || features[idx] == "*" {
		return def
	}
	return features[idx]
}

// HasKanji reports whether s contains at least one CJK ideograph — the
// only case where a token's surface and its furigana reading can
// legitimately differ, and so the condition the annotation pipeline uses
// to decide whether a token needs a dictionary/tokenizer-resolved reading
// at all or can simply be copied through as-is.
func HasKanji(s string) bool {
	for _, r := range s {
		if isKanji(r) {
			return true
		}
	}
	return false
}

func isKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF)
}

// KanjiRun is a maximal run of kanji runes within a token's surface,
// paired with the slice of that token's reading covering just that run.
type KanjiRun struct {
	Surface string
	Reading string
}

// ExtractKanjiRuns finds every kanji-bearing token across tokens and
// narrows each one down to its kanji stem plus the stem's own reading,
// trimming away shared okurigana (the inflectional kana surrounding a
// kanji, e.g. the "く" in "歩く") from both sides. A score sheet's
// `:yomigana` line only needs to carry a reading for the kanji a lyric
// line actually contains, so drafting furigana against the stem alone —
// rather than the whole token — is what a human annotator would place by
// hand.
func ExtractKanjiRuns(tokens []Token) []KanjiRun {
	var runs []KanjiRun
	for _, t := range tokens {
		if !HasKanji(t.Surface) {
			continue
		}
		runs = append(runs, trimOkurigana(t.Surface, katakanaToHiragana(t.Reading)))
	}
	return runs
}

// trimOkurigana strips the longest matching kana prefix and suffix shared
// between surface and reading, stopping as soon as either side reaches a
// kanji rune. A token like "歩く" (reading "あるく") becomes {"歩", "ある"};
// a token whose reading shares no kana edge with its surface (an
// irregular or gairaigo reading) is returned with both fields unchanged.
func trimOkurigana(surface, reading string) KanjiRun {
	sr, rr := []rune(surface), []rune(reading)

	start := 0
	for start < len(sr) && start < len(rr) && !isKanji(sr[start]) && sr[start] == rr[start] {
		start++
	}
	end, rEnd := len(sr), len(rr)
	for end > start && rEnd > start && !isKanji(sr[end-1]) && sr[end-1] == rr[rEnd-1] {
		end--
		rEnd--
	}
	return KanjiRun{Surface: string(sr[start:end]), Reading: string(rr[start:rEnd])}
}

// katakanaToHiragana converts a kagome reading (always katakana) to
// hiragana, since furigana drafted into a score sheet must satisfy
// pkg/roman's yomigana parser.
func katakanaToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

var (
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby strips ruby annotations (<rt>...</rt>, <rp>...</rp>) from
// HTML content. Readability extracts all text including furigana, which
// would otherwise duplicate every annotated word (e.g. "漢字" becomes
// "漢字かんじ"). Operates on bytes and is safe for Shift_JIS too, since
// <, >, r, t, p are ASCII and < never appears as a trailing byte there.
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, []byte{})
	cleaned = reRP.ReplaceAll(cleaned, []byte{})
	return cleaned
}
