package score

import (
	"strings"
	"testing"
)

func TestLexClassifiesEachLineKind(t *testing.T) {
	src := `# a comment
:title 満点星の約束
:song_data twinkle.ogg
[start]
*1.0
@一番
>> 満点星の約束
体が浮くような星空
:からだがうくようなほしぞら
[end]
`
	tokens, err := Lex(strings.NewReader(src), LoadConfig{})
	if err != nil {
		t.Fatal(err)
	}
	want := []TokenKind{
		TokenComment, TokenProperty, TokenProperty, TokenCommand,
		TokenTime, TokenSection, TokenCaption, TokenLyrics, TokenYomigana,
		TokenCommand,
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Fatalf("token %d: expected kind %d, got %d", i, k, tokens[i].Kind)
		}
	}
}

func TestLexRejectsUnsupportedProperty(t *testing.T) {
	_, err := Lex(strings.NewReader(":bogus value\n"), LoadConfig{})
	if err == nil {
		t.Fatal("expected an error for an unsupported property key")
	}
}

func TestLexIgnoresUnsupportedPropertyWhenConfigured(t *testing.T) {
	tokens, err := Lex(strings.NewReader(":bogus value\n"), LoadConfig{IgnoreUnsupportedProperty: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 || tokens[0].Kind != TokenComment {
		t.Fatalf("expected a single comment token, got %+v", tokens)
	}
}

func TestLexDropsStaleTimestamp(t *testing.T) {
	tokens, err := Lex(strings.NewReader("*5.0\n*3.0\n"), LoadConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected the earlier-or-equal timestamp to be dropped, got %+v", tokens)
	}
}

func TestLexAcceptsLoneSmallKanaYomigana(t *testing.T) {
	// A lone small ゃ has a standalone spelling of its own (xya or lya) in
	// the romanization table, so ParseYomigana accepts it and the line lexes
	// as a yomigana token.
	tokens, err := Lex(strings.NewReader(":ゃ\n"), LoadConfig{})
	if err != nil {
		t.Fatalf("expected a lone small kana yomigana line to lex, got %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != TokenYomigana {
		t.Fatalf("expected a single yomigana token, got %+v", tokens)
	}
	if got := tokens[0].Yomigana.WillInputRoman(); got != "xya" {
		t.Fatalf("expected canonical spelling xya, got %q", got)
	}
}
