// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package lexctx

import (
	"fmt"
	"strconv"

	"github.com/animstream/parser/internal/cerrs"
)

// ParseNumber parses a raw token into a Number, resolving the reserved
// token $time against the context's current_time. Any other token
// parses by standard float lexical rules.
func ParseNumber(tok string, ctx *Context) (float64, error) {
	if tok == "$time" {
		return ctx.CurrentTime(), nil
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", cerrs.ErrBadNumber, tok, err)
	}
	return v, nil
}
