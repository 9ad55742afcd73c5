package tsm

import (
	"errors"
	"testing"
)

func TestSelectionSingleLineCopy(t *testing.T) {
	s := NewScreen(WithSize(10, 3))
	writeString(s, "hello")
	s.SelectionStart(0, 0)
	s.SelectionTarget(4, 0)
	got, err := s.SelectionCopy()
	if err != nil {
		t.Fatalf("SelectionCopy() error: %v", err)
	}
	if got != "hello" {
		t.Errorf("SelectionCopy() = %q, want %q", got, "hello")
	}
}

func TestSelectionNoActiveSelectionErrors(t *testing.T) {
	s := NewScreen(WithSize(10, 3))
	_, err := s.SelectionCopy()
	if err == nil {
		t.Fatal("SelectionCopy() with no selection should return an error")
	}
	var terr *Error
	if !errors.As(err, &terr) || terr.Code != CodeNoSelection {
		t.Errorf("error = %v, want a *Error with CodeNoSelection", err)
	}
}

func TestSelectionResetClearsState(t *testing.T) {
	s := NewScreen(WithSize(10, 3))
	s.SelectionStart(0, 0)
	s.SelectionReset()
	if s.selActive {
		t.Fatal("SelectionReset should clear selActive")
	}
	if _, err := s.SelectionCopy(); err == nil {
		t.Error("SelectionCopy after reset should error")
	}
}

func TestSelectionAcrossThreeLines(t *testing.T) {
	s := NewScreen(WithSize(10, 3))
	writeString(s, "first")
	s.MoveTo(0, 1)
	writeString(s, "second")
	s.MoveTo(0, 2)
	writeString(s, "third")

	s.SelectionStart(2, 0)
	s.SelectionTarget(2, 2)
	got, err := s.SelectionCopy()
	if err != nil {
		t.Fatalf("SelectionCopy() error: %v", err)
	}
	want := "rst\nsecond\nthi"
	if got != want {
		t.Errorf("SelectionCopy() = %q, want %q", got, want)
	}
}

func TestSelectionNormalizesReversedAnchors(t *testing.T) {
	s := NewScreen(WithSize(10, 3))
	writeString(s, "hello")
	s.SelectionStart(4, 0)
	s.SelectionTarget(0, 0)
	got, err := s.SelectionCopy()
	if err != nil {
		t.Fatalf("SelectionCopy() error: %v", err)
	}
	if got != "hello" {
		t.Errorf("SelectionCopy() with reversed anchors = %q, want %q", got, "hello")
	}
}

func TestSelectionSurvivesScroll(t *testing.T) {
	s := NewScreen(WithSize(10, 2))
	writeString(s, "keepme")
	s.SelectionStart(0, 0)
	s.SelectionTarget(5, 0)

	// Scroll the selected line into scroll-back.
	s.MoveTo(0, 1)
	s.Newline(true)
	s.Newline(true)

	got, err := s.SelectionCopy()
	if err != nil {
		t.Fatalf("SelectionCopy() after scroll error: %v", err)
	}
	if got != "keepme" {
		t.Errorf("selection should survive scrolling into scroll-back: got %q, want %q", got, "keepme")
	}
}
