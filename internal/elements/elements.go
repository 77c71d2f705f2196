// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package elements implements the parametric and canonical forms of the
// four graphic shape kinds (camera, circle, rect, path), the set()
// dispatch driven by a settings.PartsSetting_t, and the reducers that
// resolve a parametric element to its canonical form.
//
// The parametric->canonical split is deliberate: the parametric type
// carries every field as optional and may be under-determined, while
// the canonical type is the one the diff engine and emitter operate
// on, and it always satisfies its shape's geometric invariants.
//
// Identity is shape kind plus name, so elements of one kind that share
// a name within a group share one UID. That includes the per-kind
// default names ("circle0", "rect0", "path0"): two unrelated commands
// that leave name at its default address the same element.
package elements

import (
	"fmt"

	"github.com/animstream/parser/internal/cerrs"
	"github.com/animstream/parser/internal/colorcache"
	"github.com/animstream/parser/internal/lexctx"
	"github.com/animstream/parser/internal/palette"
	"github.com/animstream/parser/internal/uid"
)

// Kind is the closed sum of graphic shape kinds. Mismatched pairings in
// diffing (Rect against Circle) are an invariant violation, not a
// runtime possibility, because UIDs are keyed inclusive of Kind.
type Kind string

const (
	KindCamera Kind = "Camera"
	KindCircle Kind = "Circle"
	KindPath   Kind = "Path"
	KindRect   Kind = "Rect"
)

// Identity is the UID-map key: shape kind plus name, or the constant
// key (KindCamera, "") for cameras, which carry no name field at all.
type Identity struct {
	Kind Kind
	Name string
}

// Point is a pair of Numbers.
type Point struct {
	X, Y float64
}

// Elem is a canonical graphic element: the tagged union the diff
// engine and emitter operate on. Exactly one of the shape pointers is
// non-nil, selected by Kind.
type Elem struct {
	Kind   Kind
	UID    uid.UID
	Camera *Camera
	Circle *Circle
	Rect   *Rect
	Path   *Path
}

// GroupID returns the owning group for this element.
func (e Elem) GroupID() string {
	switch e.Kind {
	case KindCamera:
		return e.Camera.GroupID
	case KindCircle:
		return e.Circle.GroupID
	case KindRect:
		return e.Rect.GroupID
	case KindPath:
		return e.Path.GroupID
	default:
		panic(fmt.Sprintf("elements: unknown kind %q", e.Kind))
	}
}

// Identity returns this element's UID-map key.
func (e Elem) Identity() Identity {
	switch e.Kind {
	case KindCamera:
		return Identity{Kind: KindCamera}
	case KindCircle:
		return Identity{Kind: KindCircle, Name: e.Circle.Name}
	case KindRect:
		return Identity{Kind: KindRect, Name: e.Rect.Name}
	case KindPath:
		return Identity{Kind: KindPath, Name: e.Path.Name}
	default:
		panic(fmt.Sprintf("elements: unknown kind %q", e.Kind))
	}
}

// WithUID returns a copy of e with its UID replaced.
func (e Elem) WithUID(u uid.UID) Elem {
	e.UID = u
	return e
}

// Clone returns a deep-enough copy of e: the shape pointer is
// duplicated so later mutation of the original doesn't alias the
// clone, matching the frame's ownership rule that a snapshot is owned
// by the frame it's stored in.
func (e Elem) Clone() Elem {
	out := e
	switch e.Kind {
	case KindCamera:
		c := *e.Camera
		out.Camera = &c
	case KindCircle:
		c := *e.Circle
		out.Circle = &c
	case KindRect:
		r := *e.Rect
		out.Rect = &r
	case KindPath:
		p := *e.Path
		if p.Points != nil {
			pts := append([]Point(nil), *p.Points...)
			p.Points = &pts
		}
		out.Path = &p
	}
	return out
}

// DiffAgainst produces a snapshot of e where every field equal to the
// corresponding field in other is set to its absent sentinel; fields
// that differ are carried through unchanged. The UID is always
// carried, since it is the diff's address. e and other must share a
// Kind.
func (e Elem) DiffAgainst(other Elem) Elem {
	if e.Kind != other.Kind {
		panic("elements: diff against mismatched kind")
	}
	out := Elem{Kind: e.Kind, UID: e.UID}
	switch e.Kind {
	case KindCamera:
		out.Camera = e.Camera.diffAgainst(other.Camera)
	case KindCircle:
		out.Circle = e.Circle.diffAgainst(other.Circle)
	case KindRect:
		out.Rect = e.Rect.diffAgainst(other.Rect)
	case KindPath:
		out.Path = e.Path.diffAgainst(other.Path)
	}
	return out
}

// ForDeletion returns the minimal element carrying only this element's
// UID, used as a Delete diff's payload.
func (e Elem) ForDeletion() Elem {
	return Elem{Kind: e.Kind, UID: e.UID}
}

func eqFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqColorPtr(a, b *palette.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func diffFloatPtr(a, b *float64) *float64 {
	if eqFloatPtr(a, b) {
		return nil
	}
	return a
}

func diffColorPtr(a, b *palette.Color) *palette.Color {
	if eqColorPtr(a, b) {
		return nil
	}
	return a
}

func diffString(a, b string) string {
	if a == b {
		return ""
	}
	return a
}

// setNumber applies a numeric parameter and reports a bad-number error
// wrapped with the parameter name for context.
func setNumber(dst **float64, paramName, tok string, ctx *lexctx.Context) error {
	v, err := lexctx.ParseNumber(tok, ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", paramName, err)
	}
	*dst = &v
	return nil
}

func setColor(dst **palette.Color, paramName, tok string, ctx *lexctx.Context) error {
	_ = ctx
	v, err := colorcache.Parse(tok)
	if err != nil {
		return fmt.Errorf("%s: %w", paramName, err)
	}
	*dst = &v
	return nil
}

func unknownParam(shape, paramName string) error {
	return fmt.Errorf("%w: %s: %s", cerrs.ErrUnknownParamName, shape, paramName)
}
