package utils

import (
	"strings"
	"testing"
)

func TestNewShareTokenIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok, err := NewShareToken()
		if err != nil {
			t.Fatalf("NewShareToken: %v", err)
		}
		if seen[tok] {
			t.Fatalf("duplicate token after %d generations", i)
		}
		seen[tok] = true
	}
}

func TestNewShareTokenIsURLSafe(t *testing.T) {
	tok, err := NewShareToken()
	if err != nil {
		t.Fatalf("NewShareToken: %v", err)
	}
	if tok == "" {
		t.Fatal("empty token")
	}
	if strings.ContainsAny(tok, "+/=") {
		t.Errorf("token %q contains non-URL-safe characters", tok)
	}
}
