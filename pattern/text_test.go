package pattern

import "testing"

func TestFromTextIsDeterministic(t *testing.T) {
	a := FromText("hello brain", 40)
	b := FromText("hello brain", 40)
	if len(a) != 40 || len(b) != 40 {
		t.Fatalf("expected length 40 patterns")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical patterns for identical text, differ at %d", i)
		}
	}
}

func TestFromTextVariesWithText(t *testing.T) {
	a := FromText("short", 40)
	b := FromText("a completely different message", 40)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different text to usually produce a different pattern")
	}
}
