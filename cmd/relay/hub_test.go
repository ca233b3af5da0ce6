package main

import (
	"context"
	"errors"
	"testing"
)

func TestCreateMatchCodesAreUnique(t *testing.T) {
	hub := NewHub()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := hub.CreateMatch()
		if code == "" {
			t.Fatal("empty match code")
		}
		if seen[code] {
			t.Fatalf("duplicate code %q", code)
		}
		seen[code] = true
	}
}

func TestJoinUnknownMatch(t *testing.T) {
	hub := NewHub()
	err := hub.Join(context.Background(), "nope", nil)
	if !errors.Is(err, ErrNoSuchMatch) {
		t.Fatalf("err = %v, want ErrNoSuchMatch", err)
	}
}
