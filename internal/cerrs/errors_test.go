// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package cerrs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/animstream/parser/internal/cerrs"
)

func TestErrorString(t *testing.T) {
	if got, want := cerrs.ErrUnknownCommand.Error(), "unknown command"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestWrappingPreservesIs(t *testing.T) {
	wrapped := fmt.Errorf("command %q: %w", "spin", cerrs.ErrUnknownCommand)
	if !errors.Is(wrapped, cerrs.ErrUnknownCommand) {
		t.Errorf("want errors.Is(wrapped, ErrUnknownCommand) == true")
	}
	if errors.Is(wrapped, cerrs.ErrBadConfig) {
		t.Errorf("want errors.Is(wrapped, ErrBadConfig) == false")
	}
}

func TestDistinctConstantsCompareUnequal(t *testing.T) {
	if cerrs.ErrBadNumber == cerrs.ErrBadColor {
		t.Errorf("want ErrBadNumber and ErrBadColor to be distinct errors")
	}
}
