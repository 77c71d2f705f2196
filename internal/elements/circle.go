// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package elements

import (
	"github.com/animstream/parser/internal/lexctx"
	"github.com/animstream/parser/internal/palette"
	"github.com/animstream/parser/internal/settings"
	"github.com/animstream/parser/internal/tokens"
)

// Circle is the canonical circle element.
type Circle struct {
	GroupID string
	Name    string
	Color   *palette.Color
	R, X, Y, Z, Theta *float64
}

// multiParametricCircle carries every geometric/color field as
// optional, including the gradient triple, ahead of reduction to the
// canonical Circle.
type multiParametricCircle struct {
	GroupID string
	Name    string

	Color     *palette.Color
	GradBegin *palette.Color
	GradEnd   *palette.Color
	GradRatio *float64

	R, X, Y, Z, Theta *float64
}

func defaultMultiParametricCircle() *multiParametricCircle {
	return &multiParametricCircle{GroupID: "group0", Name: "circle0"}
}

func (c *multiParametricCircle) set(paramName, tok string, ctx *lexctx.Context) error {
	switch paramName {
	case "groupID":
		c.GroupID = tok
		return nil
	case "name", "elemID":
		c.Name = tok
		return nil
	case "color":
		return setColor(&c.Color, paramName, tok, ctx)
	case "gradBegin":
		return setColor(&c.GradBegin, paramName, tok, ctx)
	case "gradEnd":
		return setColor(&c.GradEnd, paramName, tok, ctx)
	case "gradRatio":
		return setNumber(&c.GradRatio, paramName, tok, ctx)
	case "r":
		return setNumber(&c.R, paramName, tok, ctx)
	case "x":
		return setNumber(&c.X, paramName, tok, ctx)
	case "y":
		return setNumber(&c.Y, paramName, tok, ctx)
	case "z":
		return setNumber(&c.Z, paramName, tok, ctx)
	case "theta":
		return setNumber(&c.Theta, paramName, tok, ctx)
	default:
		return unknownParam("Circle", paramName)
	}
}

// reduce resolves a multiParametricCircle to its canonical form: unset
// geometric fields fall back to r=1, x=y=z=theta=0; color resolves by
// the explicit-then-gradient-overwrite rule shared with rect and path.
func (c *multiParametricCircle) reduce() *Circle {
	one, zero := 1., 0.
	out := &Circle{
		GroupID: c.GroupID,
		Name:    c.Name,
		Color:   colorOrDefault(c.Color),
		R:       firstNonNil(c.R, &one),
		X:       firstNonNil(c.X, &zero),
		Y:       firstNonNil(c.Y, &zero),
		Z:       firstNonNil(c.Z, &zero),
		Theta:   firstNonNil(c.Theta, &zero),
	}
	applyGradient(&out.Color, c.GradBegin, c.GradEnd, c.GradRatio)
	return out
}

func (c *Circle) diffAgainst(other *Circle) *Circle {
	return &Circle{
		GroupID: diffString(c.GroupID, other.GroupID),
		Name:    diffString(c.Name, other.Name),
		Color:   diffColorPtr(c.Color, other.Color),
		R:       diffFloatPtr(c.R, other.R),
		X:       diffFloatPtr(c.X, other.X),
		Y:       diffFloatPtr(c.Y, other.Y),
		Z:       diffFloatPtr(c.Z, other.Z),
		Theta:   diffFloatPtr(c.Theta, other.Theta),
	}
}

// BuildCircle constructs a canonical Circle from the token stream.
func BuildCircle(r *tokens.Reader, setting settings.PartsSetting_t, ctx *lexctx.Context) (Elem, error) {
	mp := defaultMultiParametricCircle()
	if err := applyDefaults(mp.set, setting, ctx); err != nil {
		return Elem{}, err
	}
	if err := applyInputs(r, mp.set, setting, ctx); err != nil {
		return Elem{}, err
	}
	return Elem{Kind: KindCircle, Circle: mp.reduce()}, nil
}

func firstNonNil(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}

func colorOrDefault(c *palette.Color) *palette.Color {
	if c != nil {
		return c
	}
	d := palette.Default()
	return &d
}

// applyGradient overwrites *color with the gradient sample when all
// three of begin/end/ratio are present, matching the original
// implementation's "gradient always wins when fully specified" rule.
func applyGradient(color **palette.Color, begin, end *palette.Color, ratio *float64) {
	if begin != nil && end != nil && ratio != nil {
		g := palette.FromGradation(*begin, *end, *ratio)
		*color = &g
	}
}
