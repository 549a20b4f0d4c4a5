package score

import (
	"strings"
	"testing"
)

func mustLoad(t *testing.T, src string) *Scoremap {
	t.Helper()
	sm, err := Load(strings.NewReader(src), LoadConfig{})
	if err != nil {
		t.Fatal(err)
	}
	return sm
}

func TestParseBuildsMetadataAndSections(t *testing.T) {
	src := `:title てすと
:song_data test.ogg

[start]
*0.0
@一番
>> こんにちは
体が浮くような星空
:こんにちはというれいぶんです

*5.0
次の文
:つぎのぶん

[end]
`
	sm := mustLoad(t, src)
	if sm.Metadata["title"] != "てすと" {
		t.Fatalf("expected title metadata, got %+v", sm.Metadata)
	}
	if sm.Metadata["song_data"] != "test.ogg" {
		t.Fatalf("expected song_data metadata, got %+v", sm.Metadata)
	}

	sections := sm.Sections.All()
	if len(sections) != 1 {
		t.Fatalf("expected a single section, got %d", len(sections))
	}
	notes := sections[0].Notes()
	// caption, sentence, sentence, trailing blank
	if len(notes) != 4 {
		t.Fatalf("expected 4 notes, got %d: %+v", len(notes), notes)
	}
	if notes[0].Content().Caption != "こんにちは" {
		t.Fatalf("expected first note to be the caption, got %+v", notes[0].Content())
	}
	if notes[1].Content().Sentence == nil || notes[1].Content().Sentence.Origin() != "体が浮くような星空" {
		t.Fatalf("expected second note to be the first sentence, got %+v", notes[1].Content())
	}
	if notes[2].Content().Sentence == nil || notes[2].Content().Sentence.Origin() != "次の文" {
		t.Fatalf("expected third note to be the second sentence, got %+v", notes[2].Content())
	}
	if !notes[3].Content().IsBlank {
		t.Fatalf("expected a trailing blank note, got %+v", notes[3].Content())
	}
}

func TestParseSplitsOnSectionMarker(t *testing.T) {
	src := `[start]
*0.0
@一番
あ
:あ

*2.0
@二番
い
:い

[end]
`
	sm := mustLoad(t, src)
	sections := sm.Sections.All()
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
}

func TestParseDoubleTimeProducesBlankNote(t *testing.T) {
	src := `[start]
*1.0
*2.0
あ
:あ

[end]
`
	sm := mustLoad(t, src)
	notes := sm.Sections.All()[0].Notes()
	if len(notes) < 1 || !notes[0].Content().IsBlank {
		t.Fatalf("expected a leading blank note from the double time marker, got %+v", notes)
	}
}

func TestParseRejectsTimingOutsideLyrics(t *testing.T) {
	_, err := Load(strings.NewReader("*1.0\n"), LoadConfig{})
	if err == nil {
		t.Fatal("expected an error for a timestamp outside start/end")
	}
}

func TestParseRejectsYomiganaBeforeLyrics(t *testing.T) {
	src := `[start]
*1.0
:あ

[end]
`
	_, err := Load(strings.NewReader(src), LoadConfig{})
	if err == nil {
		t.Fatal("expected an error for yomigana with no preceding lyric line")
	}
}

func TestParseRejectsUnknownCommand(t *testing.T) {
	_, err := Load(strings.NewReader("[dance]\n"), LoadConfig{})
	if err == nil {
		t.Fatal("expected an error for an unrecognized command")
	}
}
