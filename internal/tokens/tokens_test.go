// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package tokens_test

import (
	"testing"

	"github.com/animstream/parser/internal/tokens"
)

func TestReaderSplitsOnWhitespace(t *testing.T) {
	r := tokens.NewReader("", "rect  x 10\ty 20\n")
	var got []string
	for {
		tok, ok := r.Next()
		if !ok {
			break
		}
		got = append(got, tok)
	}
	want := []string{"rect", "x", "10", "y", "20"}
	if len(got) != len(want) {
		t.Fatalf("want %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestReaderJoinsPreambleAndInput(t *testing.T) {
	r := tokens.NewReader("update 0", "rect x 10")
	tok, ok := r.Next()
	if !ok || tok != "update" {
		t.Fatalf("want first token %q, got %q (ok=%v)", "update", tok, ok)
	}
}

func TestReaderEmptyPreamble(t *testing.T) {
	r := tokens.NewReader("", "rect")
	tok, ok := r.Next()
	if !ok || tok != "rect" {
		t.Fatalf("want first token %q, got %q (ok=%v)", "rect", tok, ok)
	}
}

func TestReaderExhaustion(t *testing.T) {
	r := tokens.NewReader("", "only")
	if _, ok := r.Next(); !ok {
		t.Fatalf("want first Next() to succeed")
	}
	if _, ok := r.Next(); ok {
		t.Errorf("want second Next() to report exhaustion")
	}
}

func TestReaderRemaining(t *testing.T) {
	r := tokens.NewReader("", "a b c")
	if got, want := r.Remaining(), 3; got != want {
		t.Fatalf("want Remaining() == %d, got %d", want, got)
	}
	r.Next()
	if got, want := r.Remaining(), 2; got != want {
		t.Errorf("want Remaining() == %d after one Next(), got %d", want, got)
	}
}
