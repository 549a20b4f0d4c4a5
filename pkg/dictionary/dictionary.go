// Package dictionary imports JMdict-simplified entries into a kanji→reading
// lookup table, the source of furigana suggestions the annotation pipeline
// drafts for unannotated lyric lines.
package dictionary

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// JMdictEntry matches the structure of jmdict-simplified entries.
type JMdictEntry struct {
	Id    string          `json:"id"`
	Kanji []JMdictElement `json:"kanji"`
	Kana  []JMdictElement `json:"kana"`
}

// JMdictElement is one kanji or kana spelling of an entry.
type JMdictElement struct {
	Text   string   `json:"text"`
	Common bool     `json:"common"`
	Tags   []string `json:"tags"`
}

// LoadJMdictSimplified reads a JSON file shaped either as a bare array of
// entries (how jmdict-simplified ships its dumps) or as an object wrapping
// them under "words" (how some redistributions bundle it alongside other
// metadata), and returns the entries it holds. Real files are tens of
// megabytes, so this loads the whole thing at once rather than streaming;
// that's acceptable for a one-shot import command. Which shape is present
// is decided up front by peeking at the first significant byte, rather
// than decoding optimistically and retrying, since a failed decode into
// the wrong shape can already have consumed part of the stream.
func LoadJMdictSimplified(path string) ([]JMdictEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	lead, err := firstSignificantByte(br)
	if err != nil {
		return nil, fmt.Errorf("inspect dictionary file: %w", err)
	}

	dec := json.NewDecoder(br)
	if lead == '{' {
		var wrapped struct {
			Words []JMdictEntry `json:"words"`
		}
		if err := dec.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("parse dictionary object: %w", err)
		}
		return wrapped.Words, nil
	}

	var entries []JMdictEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse dictionary array: %w", err)
	}
	return entries, nil
}

// firstSignificantByte returns the first non-whitespace byte br will
// yield, without consuming anything, so the caller can choose a decode
// target before handing br to json.Decoder.
func firstSignificantByte(br *bufio.Reader) (byte, error) {
	for i := 0; ; i++ {
		peeked, err := br.Peek(i + 1)
		if err != nil {
			return 0, err
		}
		switch c := peeked[i]; c {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return c, nil
		}
	}
}

// ToHiragana converts Katakana runes to Hiragana; JMdict kana elements are
// katakana for some entries and hiragana for others, but furigana must
// always be hiragana to satisfy pkg/roman's Parse.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
