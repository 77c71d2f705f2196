// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package dispatch implements the command dispatcher: tokenizes the
// preamble and input stream together and, left to right, either
// advances the playhead on the reserved "update" word or looks up the
// token in the command vocabulary and routes it to the matching
// element or chart builder, accumulating results per group.
package dispatch

import (
	"fmt"
	"math"

	"github.com/animstream/parser/internal/cerrs"
	"github.com/animstream/parser/internal/chart"
	"github.com/animstream/parser/internal/elements"
	"github.com/animstream/parser/internal/graphic"
	"github.com/animstream/parser/internal/lexctx"
	"github.com/animstream/parser/internal/settings"
	"github.com/animstream/parser/internal/tokens"
)

const updateKeyword = "update"

// Result is the fully accumulated, not-yet-finalized output of one
// run: per group, a graphic.Creator if the stream placed any graphic
// element in it and a chart.Creator if it placed any chart datum in it,
// with GroupOrder listing groups in first-sight order.
type Result struct {
	GroupOrder  []string
	Graphics    map[string]*graphic.Creator
	Charts      map[string]*chart.Creator
	PatchCounts map[string]int
}

func newResult() *Result {
	return &Result{
		Graphics:    map[string]*graphic.Creator{},
		Charts:      map[string]*chart.Creator{},
		PatchCounts: map[string]int{},
	}
}

func (res *Result) graphicFor(groupID string) *graphic.Creator {
	c, ok := res.Graphics[groupID]
	if !ok {
		c = graphic.NewCreator()
		res.Graphics[groupID] = c
		res.noteGroup(groupID)
	}
	res.PatchCounts[groupID]++
	return c
}

func (res *Result) chartFor(groupID string) *chart.Creator {
	c, ok := res.Charts[groupID]
	if !ok {
		c = chart.NewCreator()
		res.Charts[groupID] = c
		res.noteGroup(groupID)
	}
	return c
}

func (res *Result) noteGroup(groupID string) {
	for _, g := range res.GroupOrder {
		if g == groupID {
			return
		}
	}
	res.GroupOrder = append(res.GroupOrder, groupID)
}

// Run tokenizes cfg.InitialText and input together and dispatches
// every command in order, returning the accumulated per-group
// creators.
func Run(cfg *settings.Settings_t, input string) (*Result, error) {
	ctx := lexctx.New()
	r := tokens.NewReader(cfg.InitialText, input)
	res := newResult()

	for {
		tok, ok := r.Next()
		if !ok {
			break
		}

		if tok == updateKeyword {
			valTok, ok := r.Next()
			if !ok {
				return nil, fmt.Errorf("%w: required: update", cerrs.ErrStreamExhausted)
			}
			value, err := lexctx.ParseNumber(valTok, ctx)
			if err != nil {
				return nil, fmt.Errorf("update: %w", err)
			}
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return nil, fmt.Errorf("%w", cerrs.ErrNonFiniteTime)
			}
			ctx.UpdateTime(value)
			continue
		}

		setting, ok := cfg.Commands[tok]
		if !ok {
			return nil, fmt.Errorf("%w: %s", cerrs.ErrUnknownCommand, tok)
		}

		switch setting.UseElem {
		case settings.UseCamera:
			elem, err := elements.BuildCamera(r, setting, ctx)
			if err != nil {
				return nil, err
			}
			res.graphicFor(elem.GroupID()).Add(elem, ctx.CurrentTime())
		case settings.UseCircle:
			elem, err := elements.BuildCircle(r, setting, ctx)
			if err != nil {
				return nil, err
			}
			res.graphicFor(elem.GroupID()).Add(elem, ctx.CurrentTime())
		case settings.UseRect:
			elem, err := elements.BuildRect(r, setting, ctx)
			if err != nil {
				return nil, err
			}
			res.graphicFor(elem.GroupID()).Add(elem, ctx.CurrentTime())
		case settings.UsePath:
			elem, err := elements.BuildPath(r, setting, ctx)
			if err != nil {
				return nil, err
			}
			res.graphicFor(elem.GroupID()).Add(elem, ctx.CurrentTime())
		case settings.UseChart:
			datum, err := chart.BuildDatum(r, setting, ctx)
			if err != nil {
				return nil, err
			}
			res.chartFor(datum.GroupID).Add(datum)
		default:
			return nil, fmt.Errorf("%w: useElem %q", cerrs.ErrUnknownUseElem, setting.UseElem)
		}
	}

	return res, nil
}
