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

// Path is the canonical open-polyline element.
type Path struct {
	GroupID string
	Name    string
	Color   *palette.Color
	Z       *float64
	Points  *[]Point
}

// multiParametricPath mirrors Path but keeps n/points in their raw,
// not-yet-validated form: points is only meaningful once n has been
// set.
type multiParametricPath struct {
	GroupID string
	Name    string

	Color     *palette.Color
	GradBegin *palette.Color
	GradEnd   *palette.Color
	GradRatio *float64

	Z *float64
	N *float64

	Points []Point
}

func defaultMultiParametricPath() *multiParametricPath {
	return &multiParametricPath{GroupID: "group0", Name: "path0"}
}

func (p *multiParametricPath) set(paramName, tok string, ctx *lexctx.Context) error {
	switch paramName {
	case "groupID":
		p.GroupID = tok
		return nil
	case "name":
		p.Name = tok
		return nil
	case "color":
		return setColor(&p.Color, paramName, tok, ctx)
	case "gradBegin":
		return setColor(&p.GradBegin, paramName, tok, ctx)
	case "gradEnd":
		return setColor(&p.GradEnd, paramName, tok, ctx)
	case "gradRatio":
		return setNumber(&p.GradRatio, paramName, tok, ctx)
	case "z":
		return setNumber(&p.Z, paramName, tok, ctx)
	case "n":
		return setNumber(&p.N, paramName, tok, ctx)
	case "points":
		return fmt.Errorf("points must be consumed via consumePoints, not set")
	default:
		return unknownParam("Path", paramName)
	}
}

// consumePointsFromReader consumes 2*n tokens from r, grouped into n
// (x,y) pairs. n must already have been set.
func (p *multiParametricPath) consumePointsFromReader(r *tokens.Reader, ctx *lexctx.Context) error {
	if p.N == nil {
		return fmt.Errorf("%w", cerrs.ErrPointsBeforeN)
	}
	n := int(*p.N)
	for i := 0; i < n; i++ {
		xTok, ok := r.Next()
		if !ok {
			return fmt.Errorf("%w: required: points", cerrs.ErrStreamExhausted)
		}
		x, err := lexctx.ParseNumber(xTok, ctx)
		if err != nil {
			return fmt.Errorf("points: %w", err)
		}
		yTok, ok := r.Next()
		if !ok {
			return fmt.Errorf("%w: required: points", cerrs.ErrStreamExhausted)
		}
		y, err := lexctx.ParseNumber(yTok, ctx)
		if err != nil {
			return fmt.Errorf("points: %w", err)
		}
		p.Points = append(p.Points, Point{X: x, Y: y})
	}
	return nil
}

// consumePointsFromBlock tokenizes a whitespace-delimited block (the
// form a defaults value takes) and consumes points from it the same
// way, since a default's points block is tokenized locally rather than
// against the live stream.
func (p *multiParametricPath) consumePointsFromBlock(block string, ctx *lexctx.Context) error {
	r := tokens.NewReader("", block)
	return p.consumePointsFromReader(r, ctx)
}

func (p *Path) diffAgainst(other *Path) *Path {
	out := &Path{
		GroupID: diffString(p.GroupID, other.GroupID),
		Name:    diffString(p.Name, other.Name),
		Color:   diffColorPtr(p.Color, other.Color),
		Z:       diffFloatPtr(p.Z, other.Z),
	}
	switch {
	case p.Points == nil:
		out.Points = nil
	case other.Points == nil:
		out.Points = p.Points
	case pointsEqual(*p.Points, *other.Points):
		out.Points = nil
	default:
		out.Points = p.Points
	}
	return out
}

func pointsEqual(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BuildPath constructs a canonical Path from the token stream,
// applying defaults (handling an inline points block specially) before
// consuming inputs (handling the live points/n pairing specially).
func BuildPath(r *tokens.Reader, setting settings.PartsSetting_t, ctx *lexctx.Context) (Elem, error) {
	mp := defaultMultiParametricPath()

	for name, tok := range setting.Defaults {
		if name == "points" {
			if err := mp.consumePointsFromBlock(tok, ctx); err != nil {
				return Elem{}, err
			}
			continue
		}
		if err := mp.set(name, tok, ctx); err != nil {
			return Elem{}, err
		}
	}

	for _, name := range setting.Inputs {
		if name == "points" {
			if err := mp.consumePointsFromReader(r, ctx); err != nil {
				return Elem{}, err
			}
			continue
		}
		tok, ok := r.Next()
		if !ok {
			return Elem{}, fmt.Errorf("%w: required: %s", cerrs.ErrStreamExhausted, name)
		}
		if err := mp.set(name, tok, ctx); err != nil {
			return Elem{}, err
		}
	}

	zero := 0.
	pts := append([]Point(nil), mp.Points...)
	out := &Path{
		GroupID: mp.GroupID,
		Name:    mp.Name,
		Color:   colorOrDefault(mp.Color),
		Z:       firstNonNil(mp.Z, &zero),
		Points:  &pts,
	}
	applyGradient(&out.Color, mp.GradBegin, mp.GradEnd, mp.GradRatio)

	return Elem{Kind: KindPath, Path: out}, nil
}
