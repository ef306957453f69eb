package game

import (
	"strings"
	"testing"
)

func TestSource_Deterministic(t *testing.T) {
	a := NewSource(99)
	b := NewSource(99)

	if a.ID(8) != b.ID(8) {
		t.Error("Same seed should yield the same id sequence")
	}
	if a.Digits(4) != b.Digits(4) {
		t.Error("Same seed should yield the same digit sequence")
	}
}

func TestSource_Charset(t *testing.T) {
	src := NewSource(1)

	id := src.ID(64)
	if len(id) != 64 {
		t.Fatalf("Expected 64 chars, got %d", len(id))
	}
	for _, c := range id {
		if !strings.ContainsRune(idCharset, c) {
			t.Errorf("ID contains out-of-charset rune %q", c)
		}
	}

	digits := src.Digits(32)
	for _, c := range digits {
		if c < '0' || c > '9' {
			t.Errorf("Digits contains non-digit rune %q", c)
		}
	}
}
