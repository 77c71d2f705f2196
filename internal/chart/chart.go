// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package chart implements the chart creator: per (group, line) (x, y)
// sample accumulation with optional color overrides, finalized into a
// sorted, serialization-ready Chart.
package chart

import (
	"fmt"
	"sort"

	"github.com/animstream/parser/internal/cerrs"
	"github.com/animstream/parser/internal/colorcache"
	"github.com/animstream/parser/internal/lexctx"
	"github.com/animstream/parser/internal/palette"
	"github.com/animstream/parser/internal/settings"
	"github.com/animstream/parser/internal/tokens"
)

// Point is one (x, y) sample on a line.
type Point struct {
	X, Y float64
}

// Datum is one parsed chart command: a sample destined for
// (GroupID, LineID)'s line, with an optional color override and an
// optional (X, Y) pair — a datum missing either coordinate is dropped
// silently at accumulation time.
type Datum struct {
	GroupID string
	LineID  string
	Color   *palette.Color
	X, Y    *float64
}

func defaultDatum() *Datum {
	return &Datum{GroupID: "group0", LineID: "line0"}
}

func (d *Datum) set(paramName, tok string, ctx *lexctx.Context) error {
	switch paramName {
	case "groupID":
		d.GroupID = tok
		return nil
	case "lineID":
		d.LineID = tok
		return nil
	case "color":
		v, err := colorcache.Parse(tok)
		if err != nil {
			return fmt.Errorf("%s: %w", paramName, err)
		}
		d.Color = &v
		return nil
	case "x":
		v, err := lexctx.ParseNumber(tok, ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", paramName, err)
		}
		d.X = &v
		return nil
	case "y":
		v, err := lexctx.ParseNumber(tok, ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", paramName, err)
		}
		d.Y = &v
		return nil
	default:
		return fmt.Errorf("%w: %s: %s", cerrs.ErrUnknownParamName, "chart", paramName)
	}
}

// BuildDatum parses a chart command's tokens into a Datum.
func BuildDatum(r *tokens.Reader, setting settings.PartsSetting_t, ctx *lexctx.Context) (Datum, error) {
	d := defaultDatum()
	for name, tok := range setting.Defaults {
		if err := d.set(name, tok, ctx); err != nil {
			return Datum{}, err
		}
	}
	for _, name := range setting.Inputs {
		tok, ok := r.Next()
		if !ok {
			return Datum{}, fmt.Errorf("%w: required: %s", cerrs.ErrStreamExhausted, name)
		}
		if err := d.set(name, tok, ctx); err != nil {
			return Datum{}, err
		}
	}
	return *d, nil
}

// line is one line's accumulated state, keyed by LineID within a
// group.
type line struct {
	lineID string
	color  palette.Color
	data   []Point
}

// Creator accumulates Datum values per group, keyed internally by
// line ID, for a single group.
type Creator struct {
	lines map[string]*line
	order []string
}

// NewCreator returns an empty Creator.
func NewCreator() *Creator {
	return &Creator{lines: map[string]*line{}}
}

// Add folds one datum into its line: the line record is created on
// first sight with a palette default color; a carried color
// last-write-wins; an (x, y) pair is appended only when both
// coordinates are present.
func (c *Creator) Add(d Datum) {
	l, ok := c.lines[d.LineID]
	if !ok {
		def := palette.Default()
		l = &line{lineID: d.LineID, color: def}
		c.lines[d.LineID] = l
		c.order = append(c.order, d.LineID)
	}
	if d.Color != nil {
		l.color = *d.Color
	}
	if d.X != nil && d.Y != nil {
		l.data = append(l.data, Point{X: *d.X, Y: *d.Y})
	}
}

// Line is the finalized, sorted form of one line, ready to emit.
type Line struct {
	LineID string
	Color  palette.Color
	Data   []Point
}

// Finalize sorts each line's data ascending by x and returns every
// line in first-sight order.
func (c *Creator) Finalize() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		l := c.lines[id]
		data := append([]Point(nil), l.data...)
		sort.SliceStable(data, func(i, j int) bool { return data[i].X < data[j].X })
		out = append(out, Line{LineID: l.lineID, Color: l.color, Data: data})
	}
	return out
}

// IsConsecutiveIntegers reports whether data's x-coordinates, already
// sorted ascending, form exactly the sequence 0, 1, 2, ..., len(data)-1
// — the condition under which the emitter flattens data to bare
// y-values.
func IsConsecutiveIntegers(data []Point) bool {
	for i, p := range data {
		if p.X != float64(i) {
			return false
		}
	}
	return true
}
