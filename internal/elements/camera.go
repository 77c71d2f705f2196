// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package elements

import (
	"github.com/animstream/parser/internal/lexctx"
	"github.com/animstream/parser/internal/settings"
	"github.com/animstream/parser/internal/tokens"
)

// Camera is the canonical camera element. It carries no name/identity
// parameter at all: exactly one camera lives per group, identified by
// the constant key (KindCamera, "").
type Camera struct {
	GroupID string
	X, Y, W, H *float64
}

func defaultCamera() *Camera {
	x, y, w, h := 0., 0., 1000., 1000.
	return &Camera{GroupID: "group0", X: &x, Y: &y, W: &w, H: &h}
}

func (c *Camera) set(paramName, tok string, ctx *lexctx.Context) error {
	switch paramName {
	case "groupID":
		c.GroupID = tok
		return nil
	case "x":
		return setNumber(&c.X, paramName, tok, ctx)
	case "y":
		return setNumber(&c.Y, paramName, tok, ctx)
	case "w":
		return setNumber(&c.W, paramName, tok, ctx)
	case "h":
		return setNumber(&c.H, paramName, tok, ctx)
	default:
		return unknownParam("Camera", paramName)
	}
}

func (c *Camera) diffAgainst(other *Camera) *Camera {
	return &Camera{
		GroupID: diffString(c.GroupID, other.GroupID),
		X:       diffFloatPtr(c.X, other.X),
		Y:       diffFloatPtr(c.Y, other.Y),
		W:       diffFloatPtr(c.W, other.W),
		H:       diffFloatPtr(c.H, other.H),
	}
}

// BuildCamera constructs a canonical Camera from the token stream per
// setting: defaults are applied first, then each input param consumes
// one token.
func BuildCamera(r *tokens.Reader, setting settings.PartsSetting_t, ctx *lexctx.Context) (Elem, error) {
	c := defaultCamera()
	if err := applyDefaults(c.set, setting, ctx); err != nil {
		return Elem{}, err
	}
	if err := applyInputs(r, c.set, setting, ctx); err != nil {
		return Elem{}, err
	}
	return Elem{Kind: KindCamera, Camera: c}, nil
}
