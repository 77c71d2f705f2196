// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package uid_test

import (
	"testing"

	"github.com/animstream/parser/internal/uid"
)

func TestUnsetIsNotSet(t *testing.T) {
	u := uid.Unset()
	if u.IsSet() {
		t.Errorf("want zero-value UID to report IsSet() == false")
	}
	if got, want := u.String(), "not set"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	if got, want := u.Ordinal(), uint32(0); got != want {
		t.Errorf("want ordinal %d, got %d", want, got)
	}
}

func TestGeneratorAssignsSequentialOrdinals(t *testing.T) {
	gen := uid.NewGenerator()
	for _, tc := range []struct {
		id   string
		want uint32
	}{
		{id: "first", want: 1},
		{id: "second", want: 2},
		{id: "third", want: 3},
	} {
		got := gen.Next()
		if !got.IsSet() {
			t.Errorf("id %q: want IsSet() == true", tc.id)
		}
		if got.Ordinal() != tc.want {
			t.Errorf("id %q: want ordinal %d, got %d", tc.id, tc.want, got.Ordinal())
		}
	}
}

func TestStringBase62Rollover(t *testing.T) {
	gen := uid.NewGenerator()
	for i := uint32(1); i < 62; i++ {
		gen.Next()
	}
	// the 62nd UID rolls from single digit "Z" into two digits "10"
	got := gen.Next()
	if got.Ordinal() != 62 {
		t.Fatalf("want ordinal 62, got %d", got.Ordinal())
	}
	if got, want := got.String(), "10"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestMarshalText(t *testing.T) {
	gen := uid.NewGenerator()
	u := gen.Next()
	buf, err := u.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	if got, want := string(buf), "1"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}
