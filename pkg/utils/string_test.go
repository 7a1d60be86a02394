package utils

import (
	"strings"
	"testing"
)

func TestGenerateFromAlphabet(t *testing.T) {
	code, err := GenerateFromAlphabet("AB", 32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(code) != 32 {
		t.Fatalf("expected length 32, got %d", len(code))
	}
	for _, r := range code {
		if r != 'A' && r != 'B' {
			t.Fatalf("unexpected character %q in %s", r, code)
		}
	}
}

func TestGenerateRandomStringUsesCodeCharset(t *testing.T) {
	code, err := GenerateRandomString(64)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, r := range code {
		if !strings.ContainsRune(CodeCharset, r) {
			t.Fatalf("character %q not in code charset", r)
		}
	}
}

func TestGenerateFromAlphabetRejectsBadParameters(t *testing.T) {
	if _, err := GenerateFromAlphabet("", 6); err == nil {
		t.Error("expected error for empty alphabet")
	}
	if _, err := GenerateFromAlphabet("ABC", 0); err == nil {
		t.Error("expected error for zero length")
	}
}
