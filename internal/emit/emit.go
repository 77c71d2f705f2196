// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package emit serializes a dispatch.Result into the output document:
// an outer join of every group's graphic and chart creators into a
// group_id -> {graphic?, chart?} mapping, written as JSON.
package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/animstream/parser/internal/chart"
	"github.com/animstream/parser/internal/dispatch"
	"github.com/animstream/parser/internal/elements"
	"github.com/animstream/parser/internal/graphic"
	"github.com/animstream/parser/internal/palette"
	"github.com/animstream/parser/internal/uid"
)

type elemSnapshotJSON struct {
	ElemType string   `json:"elemType,omitempty"`
	UID      uid.UID  `json:"UID"`
	Name     string   `json:"name,omitempty"`
	Color    *string  `json:"color,omitempty"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	W        *float64 `json:"w,omitempty"`
	H        *float64 `json:"h,omitempty"`
	R        *float64 `json:"r,omitempty"`
	Z        *float64 `json:"z,omitempty"`
	Theta    *float64 `json:"theta,omitempty"`
	Points   *string  `json:"points,omitempty"`
}

func colorString(c *palette.Color) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func pointsString(pts *[]elements.Point) *string {
	if pts == nil {
		return nil
	}
	parts := make([]string, 0, len(*pts)*2)
	for _, p := range *pts {
		parts = append(parts, fmt.Sprintf("%v", p.X), fmt.Sprintf("%v", p.Y))
	}
	s := strings.Join(parts, " ")
	return &s
}

// toSnapshot flattens e's shape fields into the wire format. groupID
// is deliberately never carried here: it is the outer group_id map
// key, not a per-element field (matching the reference ElemSnapshot,
// which skips group_id on every shape).
func toSnapshot(e elements.Elem) elemSnapshotJSON {
	out := elemSnapshotJSON{ElemType: string(e.Kind), UID: e.UID}
	switch e.Kind {
	case elements.KindCamera:
		if c := e.Camera; c != nil {
			out.X, out.Y, out.W, out.H = c.X, c.Y, c.W, c.H
		}
	case elements.KindCircle:
		if c := e.Circle; c != nil {
			out.Name = c.Name
			out.Color = colorString(c.Color)
			out.R, out.X, out.Y, out.Z, out.Theta = c.R, c.X, c.Y, c.Z, c.Theta
		}
	case elements.KindRect:
		if r := e.Rect; r != nil {
			out.Name = r.Name
			out.Color = colorString(r.Color)
			out.X, out.Y, out.W, out.H, out.Z, out.Theta = r.X, r.Y, r.W, r.H, r.Z, r.Theta
		}
	case elements.KindPath:
		if p := e.Path; p != nil {
			out.Name = p.Name
			out.Color = colorString(p.Color)
			out.Z = p.Z
			out.Points = pointsString(p.Points)
		}
	}
	return out
}

type diffJSON struct {
	DiffType string `json:"diffType"`
	elemSnapshotJSON
}

// toDiff flattens d's payload alongside its diffType. A Delete diff's
// element carries only a UID (elements.Elem.ForDeletion already drops
// the shape pointer), so its elemType is cleared too: the wire form is
// exactly {diffType, UID}, not a tagged-but-empty shape.
func toDiff(d graphic.Diff) diffJSON {
	snapshot := toSnapshot(d.Elem)
	if d.Type == graphic.Delete {
		snapshot.ElemType = ""
	}
	return diffJSON{DiffType: string(d.Type), elemSnapshotJSON: snapshot}
}

func toDiffs(ds []graphic.Diff) []diffJSON {
	out := make([]diffJSON, 0, len(ds))
	for _, d := range ds {
		out = append(out, toDiff(d))
	}
	return out
}

type frameJSON struct {
	Time  float64             `json:"time"`
	Elems []elemSnapshotJSON `json:"elems"`
}

func toFrame(f graphic.Frame) frameJSON {
	uids := make([]uid.UID, 0, len(f.Elems))
	for u := range f.Elems {
		uids = append(uids, u)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i].Ordinal() < uids[j].Ordinal() })

	out := frameJSON{Time: f.Time, Elems: make([]elemSnapshotJSON, 0, len(uids))}
	for _, u := range uids {
		out.Elems = append(out.Elems, toSnapshot(f.Elems[u]))
	}
	return out
}

type transitionJSON struct {
	Time float64    `json:"time"`
	Prev []diffJSON `json:"prev"`
	Next []diffJSON `json:"next"`
}

type graphicJSON struct {
	Initial     frameJSON        `json:"initial"`
	Final       frameJSON        `json:"final"`
	Transitions []transitionJSON `json:"transitions"`
}

func toGraphic(g graphic.Graphic) graphicJSON {
	out := graphicJSON{
		Initial: toFrame(g.Initial),
		Final:   toFrame(g.Final),
	}
	for _, t := range g.Transitions {
		out.Transitions = append(out.Transitions, transitionJSON{
			Time: t.Time,
			Prev: toDiffs(t.Prev),
			Next: toDiffs(t.Next),
		})
	}
	return out
}

type chartLineJSON struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Data  any    `json:"data"`
}

func toChart(lines []chart.Line) map[string]chartLineJSON {
	out := make(map[string]chartLineJSON, len(lines))
	for _, l := range lines {
		var data any
		if chart.IsConsecutiveIntegers(l.Data) {
			ys := make([]float64, len(l.Data))
			for i, p := range l.Data {
				ys[i] = p.Y
			}
			data = ys
		} else {
			pairs := make([][2]float64, len(l.Data))
			for i, p := range l.Data {
				pairs[i] = [2]float64{p.X, p.Y}
			}
			data = pairs
		}
		out[l.LineID] = chartLineJSON{Name: l.LineID, Color: l.Color.String(), Data: data}
	}
	return out
}

type groupEntryJSON struct {
	Graphic *graphicJSON             `json:"graphic,omitempty"`
	Chart   map[string]chartLineJSON `json:"chart,omitempty"`
}

// FinalizedGroup holds one group's graphic and chart creators after
// their one-shot Finalize call, available both for JSON serialization
// and for a run summary.
type FinalizedGroup struct {
	GroupID string
	Graphic *graphic.Graphic
	Chart   []chart.Line
}

// Finalize walks res.GroupOrder and finalizes each group's graphic and
// chart creators exactly once. Callers that need both the JSON
// document and a run summary must finalize once and pass the result to
// Document and to their own stats pass, not call this twice.
func Finalize(res *dispatch.Result) []FinalizedGroup {
	out := make([]FinalizedGroup, 0, len(res.GroupOrder))
	for _, groupID := range res.GroupOrder {
		fg := FinalizedGroup{GroupID: groupID}
		if gc, ok := res.Graphics[groupID]; ok {
			g := gc.Finalize()
			fg.Graphic = &g
		}
		if cc, ok := res.Charts[groupID]; ok {
			fg.Chart = cc.Finalize()
		}
		out = append(out, fg)
	}
	return out
}

// Document builds the outer-joined group_id -> {graphic?, chart?}
// mapping from already-finalized groups.
func Document(groups []FinalizedGroup) map[string]groupEntryJSON {
	out := make(map[string]groupEntryJSON, len(groups))
	for _, fg := range groups {
		var entry groupEntryJSON
		if fg.Graphic != nil {
			g := toGraphic(*fg.Graphic)
			entry.Graphic = &g
		}
		if fg.Chart != nil {
			entry.Chart = toChart(fg.Chart)
		}
		out[fg.GroupID] = entry
	}
	return out
}

// Write writes the indented JSON document for already-finalized groups
// to w.
func Write(w io.Writer, groups []FinalizedGroup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document(groups))
}
