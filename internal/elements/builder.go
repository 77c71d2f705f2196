// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package elements

import (
	"fmt"

	"github.com/animstream/parser/internal/cerrs"
	"github.com/animstream/parser/internal/lexctx"
	"github.com/animstream/parser/internal/settings"
	"github.com/animstream/parser/internal/tokens"
)

// setFunc is the per-shape set(name, token, ctx) dispatch used by both
// defaults application and positional input consumption.
type setFunc func(paramName, tok string, ctx *lexctx.Context) error

// applyDefaults calls set for every (name, rawToken) pair in the
// setting's defaults, before any input is consumed.
func applyDefaults(set setFunc, setting settings.PartsSetting_t, ctx *lexctx.Context) error {
	for name, tok := range setting.Defaults {
		if err := set(name, tok, ctx); err != nil {
			return err
		}
	}
	return nil
}

// applyInputs consumes one token per name in setting.Inputs, in order,
// failing with a parse-error identifying the missing parameter if the
// stream is exhausted first.
func applyInputs(r *tokens.Reader, set setFunc, setting settings.PartsSetting_t, ctx *lexctx.Context) error {
	for _, name := range setting.Inputs {
		tok, ok := r.Next()
		if !ok {
			return fmt.Errorf("%w: required: %s", cerrs.ErrStreamExhausted, name)
		}
		if err := set(name, tok, ctx); err != nil {
			return err
		}
	}
	return nil
}
