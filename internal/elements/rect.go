// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package elements

import (
	"fmt"

	"github.com/animstream/parser/internal/cerrs"
	"github.com/animstream/parser/internal/lexctx"
	"github.com/animstream/parser/internal/palette"
	"github.com/animstream/parser/internal/settings"
	"github.com/animstream/parser/internal/tokens"
)

// Rect is the canonical rectangle element: x, y, w, h are always
// defined (invariant 4).
type Rect struct {
	GroupID string
	Name    string
	Color   *palette.Color
	X, Y, W, H, Z, Theta *float64
}

// multiParametricRect carries the over-determined horizontal and
// vertical quartets (left/right/width/centerX and top/bottom/height/
// centerY) ahead of reduction.
type multiParametricRect struct {
	GroupID string
	Name    string

	Color     *palette.Color
	GradBegin *palette.Color
	GradEnd   *palette.Color
	GradRatio *float64

	Left, Right, Width, CenterX   *float64
	Top, Bottom, Height, CenterY *float64

	Z, Theta *float64
}

func defaultMultiParametricRect() *multiParametricRect {
	return &multiParametricRect{GroupID: "group0", Name: "rect0"}
}

func (r *multiParametricRect) set(paramName, tok string, ctx *lexctx.Context) error {
	switch paramName {
	case "groupID":
		r.GroupID = tok
		return nil
	case "name":
		r.Name = tok
		return nil
	case "color":
		return setColor(&r.Color, paramName, tok, ctx)
	case "gradBegin":
		return setColor(&r.GradBegin, paramName, tok, ctx)
	case "gradEnd":
		return setColor(&r.GradEnd, paramName, tok, ctx)
	case "gradRatio":
		return setNumber(&r.GradRatio, paramName, tok, ctx)
	case "left":
		return setNumber(&r.Left, paramName, tok, ctx)
	case "right":
		return setNumber(&r.Right, paramName, tok, ctx)
	case "width":
		return setNumber(&r.Width, paramName, tok, ctx)
	case "centerX":
		return setNumber(&r.CenterX, paramName, tok, ctx)
	case "top":
		return setNumber(&r.Top, paramName, tok, ctx)
	case "bottom":
		return setNumber(&r.Bottom, paramName, tok, ctx)
	case "height":
		return setNumber(&r.Height, paramName, tok, ctx)
	case "centerY":
		return setNumber(&r.CenterY, paramName, tok, ctx)
	case "z":
		return setNumber(&r.Z, paramName, tok, ctx)
	case "theta":
		return setNumber(&r.Theta, paramName, tok, ctx)
	default:
		return unknownParam("Rect", paramName)
	}
}

// resolveAxis implements the rectangle reducer's first-matching-rule
// table for one axis (left/right/width/centerX, or the vertical
// analogue), returning (origin, extent).
func resolveAxis(lo, hi, extent, center *float64) (*float64, *float64, error) {
	f := func(v float64) *float64 { return &v }
	switch {
	case lo != nil && hi != nil:
		return lo, f(*hi - *lo), nil
	case lo != nil && extent != nil:
		return lo, extent, nil
	case lo != nil && center != nil:
		return lo, f((*center - *lo) * 2), nil
	case hi != nil && extent != nil:
		return f(*hi - *extent), extent, nil
	case hi != nil && center != nil:
		return f(2**center - *hi), f((*hi - *center) * 2), nil
	case extent != nil && center != nil:
		return f(*center - *extent/2), extent, nil
	default:
		return nil, nil, fmt.Errorf("%w", cerrs.ErrUnderdeterminedRect)
	}
}

// reduce resolves a multiParametricRect to its canonical form: x/w and
// y/h each by the first matching rule in the quartet, color by the
// explicit-then-gradient-overwrite rule, z/theta defaulting to zero.
func (r *multiParametricRect) reduce() (*Rect, error) {
	x, w, err := resolveAxis(r.Left, r.Right, r.Width, r.CenterX)
	if err != nil {
		return nil, fmt.Errorf("x and w: %w", err)
	}
	y, h, err := resolveAxis(r.Top, r.Bottom, r.Height, r.CenterY)
	if err != nil {
		return nil, fmt.Errorf("y and h: %w", err)
	}
	zero := 0.
	out := &Rect{
		GroupID: r.GroupID,
		Name:    r.Name,
		Color:   colorOrDefault(r.Color),
		X:       x,
		Y:       y,
		W:       w,
		H:       h,
		Z:       firstNonNil(r.Z, &zero),
		Theta:   firstNonNil(r.Theta, &zero),
	}
	applyGradient(&out.Color, r.GradBegin, r.GradEnd, r.GradRatio)
	return out, nil
}

func (r *Rect) diffAgainst(other *Rect) *Rect {
	return &Rect{
		GroupID: diffString(r.GroupID, other.GroupID),
		Name:    diffString(r.Name, other.Name),
		Color:   diffColorPtr(r.Color, other.Color),
		X:       diffFloatPtr(r.X, other.X),
		Y:       diffFloatPtr(r.Y, other.Y),
		W:       diffFloatPtr(r.W, other.W),
		H:       diffFloatPtr(r.H, other.H),
		Z:       diffFloatPtr(r.Z, other.Z),
		Theta:   diffFloatPtr(r.Theta, other.Theta),
	}
}

// BuildRect constructs a canonical Rect from the token stream.
func BuildRect(tr *tokens.Reader, setting settings.PartsSetting_t, ctx *lexctx.Context) (Elem, error) {
	mp := defaultMultiParametricRect()
	if err := applyDefaults(mp.set, setting, ctx); err != nil {
		return Elem{}, err
	}
	if err := applyInputs(tr, mp.set, setting, ctx); err != nil {
		return Elem{}, err
	}
	rect, err := mp.reduce()
	if err != nil {
		return Elem{}, err
	}
	return Elem{Kind: KindRect, Rect: rect}, nil
}
