// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package palette implements the Color type: an opaque RGB triple
// constructible from a 7-character #RRGGBB literal or from the named
// palette, plus the channel-wise gradient used to fold gradBegin/
// gradEnd/gradRatio into a single color.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/animstream/parser/internal/cerrs"
)

// Color is an opaque 8-bit-per-channel RGB triple.
type Color struct {
	R, G, B uint8
}

// Default is the color new parametric elements carry before any
// explicit color or gradient is applied.
func Default() Color {
	return Color{R: 255, G: 255, B: 255}
}

// FromGradation computes the channel-wise gradient sample at ratio r
// between begin and end, truncating (not rounding) each channel to an
// integer.
func FromGradation(begin, end Color, r float64) Color {
	return Color{
		R: uint8(int(float64(begin.R) + (float64(end.R)-float64(begin.R))*r)),
		G: uint8(int(float64(begin.G) + (float64(end.G)-float64(begin.G))*r)),
		B: uint8(int(float64(begin.B) + (float64(end.B)-float64(begin.B))*r)),
	}
}

// Parse converts a raw token into a Color: either a 7-character
// #RRGGBB literal or a named palette entry (case-insensitive).
func Parse(tok string) (Color, error) {
	if len(tok) == 7 && tok[0] == '#' {
		r, err := strconv.ParseUint(tok[1:3], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", cerrs.ErrBadColor, tok, err)
		}
		g, err := strconv.ParseUint(tok[3:5], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", cerrs.ErrBadColor, tok, err)
		}
		b, err := strconv.ParseUint(tok[5:7], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", cerrs.ErrBadColor, tok, err)
		}
		return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
	}
	return Named(tok)
}

// String renders the color as #rrggbb, two hex digits per channel,
// zero-padded.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// namedPalette is the full named palette, carried over from the
// original Rust implementation's Palette type: historical single-word
// names alongside their more descriptive two-word counterparts.
var namedPalette = map[string]Color{
	"white":        {R: 255, G: 255, B: 255},
	"black":        {R: 0, G: 0, B: 0},
	"green":        {R: 62, G: 179, B: 112},
	"paris green":  {R: 0, G: 163, B: 129},
	"blue":         {R: 0, G: 149, B: 217},
	"indigo blue":  {R: 39, G: 74, B: 120},
	"red":          {R: 230, G: 0, B: 51},
	"deep scarlet": {R: 201, G: 23, B: 30},
}

// Named looks up a palette color by name, case-insensitive.
func Named(name string) (Color, error) {
	if c, ok := namedPalette[strings.ToLower(name)]; ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: %q", cerrs.ErrBadColor, name)
}
