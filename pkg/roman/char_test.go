package roman

import "testing"

func TestCharNarrowsToFirstMatchingStyle(t *testing.T) {
	tea := NewChar([]string{"cha", "cya", "tya"})
	if got := tea.DeterminedStyle(); got != "cha" {
		t.Fatalf("expected initial style cha, got %s", got)
	}
	if !tea.Input('c') {
		t.Fatal("expected 'c' to be accepted")
	}
	if got := tea.DeterminedStyle(); got != "cha" {
		t.Fatalf("expected style to stay cha after 'c', got %s", got)
	}
	if !tea.Input('y') {
		t.Fatal("expected 'y' to be accepted")
	}
	if got := tea.DeterminedStyle(); got != "cya" {
		t.Fatalf("expected style to narrow to cya after 'cy', got %s", got)
	}
}

func TestCharNarrowsDirectlyToTya(t *testing.T) {
	tea := NewChar([]string{"cha", "cya", "tya"})
	if !tea.Input('t') {
		t.Fatal("expected 't' to be accepted")
	}
	if got := tea.DeterminedStyle(); got != "tya" {
		t.Fatalf("expected style tya after 't', got %s", got)
	}
}

func TestCharRejectsNonMatchingInput(t *testing.T) {
	c := NewChar([]string{"ka"})
	if c.Input('s') {
		t.Fatal("expected 's' to be rejected for styles [ka]")
	}
}

func TestCharRejectionLeavesNarrowedStyleUntouched(t *testing.T) {
	c := NewChar([]string{"si", "shi"})
	if !c.Input('s') {
		t.Fatal("expected 's' to be accepted")
	}
	if !c.Input('h') {
		t.Fatal("expected 'h' to be accepted, narrowing to shi")
	}
	if got := c.DeterminedStyle(); got != "shi" {
		t.Fatalf("expected style shi after 'sh', got %s", got)
	}
	if c.Input('q') {
		t.Fatal("expected 'q' to be rejected")
	}
	if got := c.DeterminedStyle(); got != "shi" {
		t.Fatalf("expected style to remain shi after a rejected keystroke, got %s", got)
	}
	if got := c.Inputted(); got != "sh" {
		t.Fatalf("expected inputted to remain sh after a rejected keystroke, got %s", got)
	}
	if c.CompletedInput() {
		t.Fatal("should not be complete after a rejected keystroke")
	}
}

func TestCharCompletedInput(t *testing.T) {
	c := NewChar([]string{"ka"})
	if c.CompletedInput() {
		t.Fatal("should not be complete before any input")
	}
	c.Input('k')
	if c.CompletedInput() {
		t.Fatal("should not be complete after one of two letters")
	}
	c.Input('a')
	if !c.CompletedInput() {
		t.Fatal("should be complete after both letters")
	}
}
