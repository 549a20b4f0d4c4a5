package roman

import "testing"

func typeAndCheck(t *testing.T, s *Str, typed rune, wantInputted, wantWillInput string) {
	t.Helper()
	if !s.Input(typed) {
		t.Fatalf("expected %q to be accepted", typed)
	}
	if got := s.InputtedRoman(); got != wantInputted {
		t.Fatalf("after typing %q: expected inputted %q, got %q", typed, wantInputted, got)
	}
	if got := s.WillInputRoman(); got != wantWillInput {
		t.Fatalf("after typing %q: expected will-input %q, got %q", typed, wantWillInput, got)
	}
}

func TestStrKonnichiwa(t *testing.T) {
	hello, err := New("こんにちは")
	if err != nil {
		t.Fatal(err)
	}
	if got := hello.WillInputRoman(); got != "konnnitiha" {
		t.Fatalf("expected konnnitiha, got %q", got)
	}
	typeAndCheck(t, hello, 'k', "k", "onnnitiha")
	typeAndCheck(t, hello, 'o', "ko", "nnnitiha")
	typeAndCheck(t, hello, 'n', "kon", "nnitiha")
	typeAndCheck(t, hello, 'n', "konn", "nitiha")
	typeAndCheck(t, hello, 'n', "konnn", "itiha")
	typeAndCheck(t, hello, 'i', "konnni", "tiha")
	typeAndCheck(t, hello, 't', "konnnit", "iha")
	typeAndCheck(t, hello, 'i', "konnniti", "ha")
	typeAndCheck(t, hello, 'h', "konnnitih", "a")
	typeAndCheck(t, hello, 'a', "konnnitiha", "")
	if !hello.Completed() {
		t.Fatal("expected completed after full reading typed")
	}
}

// TestStrOmochaLocksCha types the o-m-o-c-h-a path (spec's seed scenario):
// after "omoc" the remaining display locks to "ha", confirming the fix
// forward hint narrowed ちゃ's styles to ["cha","cya"] on the 'c' keystroke.
func TestStrOmochaLocksCha(t *testing.T) {
	toy, err := New("おもちゃ")
	if err != nil {
		t.Fatal(err)
	}
	if got := toy.WillInputRoman(); got != "omotya" {
		t.Fatalf("expected omotya, got %q", got)
	}
	typeAndCheck(t, toy, 'o', "o", "motya")
	typeAndCheck(t, toy, 'm', "om", "otya")
	typeAndCheck(t, toy, 'o', "omo", "tya")
	typeAndCheck(t, toy, 'c', "omoc", "ha")
	typeAndCheck(t, toy, 'h', "omoch", "a")
	typeAndCheck(t, toy, 'a', "omocha", "")
	if !toy.Completed() {
		t.Fatal("expected completed")
	}
}

// TestStrOmochaLocksCya covers the alternate y-path from the same "c"
// narrowed state, matching the reference's own test fixture.
func TestStrOmochaLocksCya(t *testing.T) {
	toy, err := New("おもちゃ")
	if err != nil {
		t.Fatal(err)
	}
	typeAndCheck(t, toy, 'o', "o", "motya")
	typeAndCheck(t, toy, 'm', "om", "otya")
	typeAndCheck(t, toy, 'o', "omo", "tya")
	typeAndCheck(t, toy, 'c', "omoc", "ha")
	typeAndCheck(t, toy, 'y', "omocy", "a")
	typeAndCheck(t, toy, 'a', "omocya", "")
	if !toy.Completed() {
		t.Fatal("expected completed")
	}
}

// TestStrChicchaiFixForward is the key demonstration of style fix-forward:
// after typing "tit" the small-tsu unit completes and primes the following
// ちゃ unit toward the "tya" style, so a 'c' keystroke (which would have
// opened "cha"/"cya" from scratch) is rejected.
func TestStrChicchaiFixForward(t *testing.T) {
	small, err := New("ちっちゃい")
	if err != nil {
		t.Fatal(err)
	}
	if got := small.WillInputRoman(); got != "tittyai" {
		t.Fatalf("expected tittyai, got %q", got)
	}
	typeAndCheck(t, small, 't', "t", "ittyai")
	typeAndCheck(t, small, 'i', "ti", "ttyai")
	typeAndCheck(t, small, 't', "tit", "tyai")
	if small.Input('c') {
		t.Fatal("expected 'c' to be rejected once the next unit is fixed toward tya")
	}
	typeAndCheck(t, small, 't', "titt", "yai")
	typeAndCheck(t, small, 'y', "titty", "ai")
	typeAndCheck(t, small, 'a', "tittya", "i")
	typeAndCheck(t, small, 'i', "tittyai", "")
	if !small.Completed() {
		t.Fatal("expected completed")
	}
}

func TestStrInputtedYomiganaTracksWholeUnits(t *testing.T) {
	s, err := New("こんにちは")
	if err != nil {
		t.Fatal(err)
	}
	s.Input('k')
	if got := s.InputtedYomigana(); got != "" {
		t.Fatalf("partial unit should not count as inputted yomigana, got %q", got)
	}
	s.Input('o')
	if got := s.InputtedYomigana(); got != "こ" {
		t.Fatalf("expected こ counted as inputted once k unit completes, got %q", got)
	}
}
