package pattern

import "testing"

func TestDigitKnownShape(t *testing.T) {
	p, err := Digit(0, 35)
	if err != nil {
		t.Fatalf("Digit(0) failed: %v", err)
	}
	if len(p) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(p))
	}
	if p[0] != 1 {
		t.Errorf("expected digit 0's top-left pixel to be active")
	}
}

func TestDigitTruncatesShortTarget(t *testing.T) {
	p, err := Digit(1, 10)
	if err != nil {
		t.Fatalf("Digit(1) failed: %v", err)
	}
	if len(p) != 10 {
		t.Fatalf("expected 10 cells, got %d", len(p))
	}
}

func TestDigitPadsLongTarget(t *testing.T) {
	p, err := Digit(1, 120)
	if err != nil {
		t.Fatalf("Digit(1) failed: %v", err)
	}
	if len(p) != 120 {
		t.Fatalf("expected 120 cells, got %d", len(p))
	}
	for i := 35; i < 120; i++ {
		if p[i] != 0 {
			t.Fatalf("expected zero padding beyond bitmap length, got %d at %d", p[i], i)
		}
	}
}

func TestDigitUnknownFails(t *testing.T) {
	if _, err := Digit(42, 35); err == nil {
		t.Fatal("expected an error for an unknown digit")
	}
}
