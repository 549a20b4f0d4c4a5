package activity

import (
	"strings"
	"testing"

	"github.com/mojiuchi/mojiuchi/pkg/score"
	"github.com/mojiuchi/mojiuchi/pkg/seconds"
)

const typingTestScore = `:song_data void.ogg
[start]
*2.22
打鍵テスト
:だけんてすと
*3.0
[end]
`

func mustLoad(t *testing.T, src string) *score.Scoremap {
	t.Helper()
	sm, err := score.Load(strings.NewReader(src), score.LoadConfig{})
	if err != nil {
		t.Fatal(err)
	}
	return sm
}

// TestEngineTypingTestScenario reproduces spec.md §8 scenario 7 exactly:
// Wait(2.22), KeyPress("dakentesuto"), Wait(1.0).
func TestEngineTypingTestScenario(t *testing.T) {
	sm := mustLoad(t, typingTestScore)
	e, err := New(sm, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	var events []Event
	events = append(events, e.ElapseTime(seconds.New(2.22))...)
	events = append(events, e.KeyPress([]rune("dakentesuto"))...)
	events = append(events, e.ElapseTime(seconds.New(1.0))...)

	var correct int
	var sawPerfectSection, sawCompleted bool
	for _, ev := range events {
		switch ev.Kind {
		case EventTyped:
			if ev.TypeOutcome == TypeCorrect {
				correct++
			}
		case EventDidPerfectSection:
			sawPerfectSection = true
		case EventCompletedSentence:
			sawCompleted = true
		}
	}
	if correct != 11 {
		t.Fatalf("expected 11 correct keystrokes, got %d", correct)
	}
	if !sawPerfectSection {
		t.Fatalf("expected a perfect-section bonus")
	}
	if !sawCompleted {
		t.Fatalf("expected the sentence to complete")
	}
	if got := e.GameScore().ScorePoint; got != 560 {
		t.Fatalf("expected final score_point 560, got %d", got)
	}
}

func TestEnginePlayBGMFromSongData(t *testing.T) {
	sm := mustLoad(t, typingTestScore)
	e, err := New(sm, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	events := e.ElapseTime(seconds.New(0))
	if events[0].Kind != EventPlayBGM || events[0].BGMPath != "void.ogg" {
		t.Fatalf("expected leading PlayBgm event, got %+v", events[0])
	}
}

func TestEngineRequiresSongData(t *testing.T) {
	sm := mustLoad(t, strings.Replace(typingTestScore, ":song_data void.ogg\n", "", 1))
	if _, err := New(sm, DefaultConfig()); err != ErrSongDataNotFound {
		t.Fatalf("expected ErrSongDataNotFound, got %v", err)
	}
}

// TestEngineAccuracyAndAchievementRateBounded checks the §8 universal
// property that both ratios stay in [0,1] and achievement_rate never
// exceeds all_roman_len worth of correct keystrokes.
func TestEngineAccuracyAndAchievementRateBounded(t *testing.T) {
	sm := mustLoad(t, typingTestScore)
	e, err := New(sm, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	e.ElapseTime(seconds.New(2.22))
	for _, r := range "xakentesuto" {
		e.KeyPress([]rune{r})
		gs := e.GameScore()
		if gs.Accuracy < 0 || gs.Accuracy > 1 {
			t.Fatalf("accuracy out of range: %v", gs.Accuracy)
		}
		if gs.AchievementRate < 0 || gs.AchievementRate > 1 {
			t.Fatalf("achievement rate out of range: %v", gs.AchievementRate)
		}
	}
}

// TestEngineSectionRemainingRatioTracksCurrentNote checks spec.md §4.3's
// section_remaining_ratio against the current *note*'s span (2.22s-3.0s for
// 打鍵テスト here), not the section's overall span, per the reference's
// game_activity.rs.
func TestEngineSectionRemainingRatioTracksCurrentNote(t *testing.T) {
	sm := mustLoad(t, typingTestScore)
	e, err := New(sm, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got := e.SectionRemainingRatio(); got != 1 {
		t.Fatalf("expected ratio 1 before any note is current, got %v", got)
	}
	e.ElapseTime(seconds.New(2.22))
	if got := e.SectionRemainingRatio(); got != 0 {
		t.Fatalf("expected ratio 0 at the note's start, got %v", got)
	}
	e.ElapseTime(seconds.New(0.39))
	if got := e.SectionRemainingRatio(); got <= 0 || got >= 1 {
		t.Fatalf("expected a mid-note ratio strictly between 0 and 1, got %v", got)
	}
}

func TestEngineEndOfScoreOnceClockPassesSheet(t *testing.T) {
	sm := mustLoad(t, typingTestScore)
	e, err := New(sm, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	e.ElapseTime(seconds.New(2.22))
	events := e.ElapseTime(seconds.New(10))
	var sawEndOfScore bool
	for _, ev := range events {
		if ev.Kind == EventEndOfScore {
			sawEndOfScore = true
		}
	}
	if !sawEndOfScore {
		t.Fatalf("expected end of score once the clock runs past the sheet")
	}
}
