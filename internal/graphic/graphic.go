// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package graphic implements the timeline-diff engine: UID assignment,
// sorting patches by time, grouping by time, and folding each
// time-group into a Transition with symmetric forward (next) and
// backward (prev) diffs, bracketed by an initial and final Frame.
//
// The non-obvious detail is that a time-group's prev attaches to the
// transition carrying its own time, while its next attaches to the
// *previous* emitted transition — deferred binding, not inverted.
package graphic

import (
	"sort"

	"github.com/animstream/parser/internal/elements"
	"github.com/animstream/parser/internal/uid"
)

// DiffType tags a Diff's payload.
type DiffType string

const (
	Create DiffType = "Create"
	Update DiffType = "Update"
	Delete DiffType = "Delete"
)

// Diff is one tagged change within a Transition.
type Diff struct {
	Type DiffType
	Elem elements.Elem
}

// Transition is the diff-carrying record between adjacent frames.
type Transition struct {
	Time float64
	Prev []Diff
	Next []Diff
}

// Frame is a snapshot of all live elements at a specific time.
type Frame struct {
	Time  float64
	Elems map[uid.UID]elements.Elem
}

// Graphic is the finalized per-group timeline: an initial frame, a
// final frame, and the ordered transitions crossing every distinct
// patch time in between.
type Graphic struct {
	Initial     Frame
	Final       Frame
	Transitions []Transition
}

type patch struct {
	time float64
	elem elements.Elem
}

// Creator owns one group's append-only patch history and produces its
// finalized Graphic.
type Creator struct {
	patches []patch
}

// NewCreator returns an empty Creator.
func NewCreator() *Creator {
	return &Creator{}
}

// Add records one patch at the given time.
func (c *Creator) Add(elem elements.Elem, time float64) {
	c.patches = append(c.patches, patch{time: time, elem: elem})
}

// Finalize runs the four-step UID/sort/group/fold algorithm and
// returns the group's completed Graphic. It assigns UIDs to, and
// sorts, the recorded patch history in place, so a second call numbers
// UIDs in time order rather than stream order and its UIDs can differ
// from the first call's; callers finalize each group exactly once.
func (c *Creator) Finalize() Graphic {
	// Step 1 — UID assignment in stream order.
	gen := uid.NewGenerator()
	seen := map[elements.Identity]uid.UID{}
	for i := range c.patches {
		key := c.patches[i].elem.Identity()
		u, ok := seen[key]
		if !ok {
			u = gen.Next()
			seen[key] = u
		}
		c.patches[i].elem = c.patches[i].elem.WithUID(u)
	}

	// Step 2 — stable sort by time; ties preserve stream order.
	sort.SliceStable(c.patches, func(i, j int) bool {
		return c.patches[i].time < c.patches[j].time
	})

	// Step 3 — group by distinct time value.
	var groups [][]patch
	for _, p := range c.patches {
		if len(groups) == 0 || groups[len(groups)-1][0].time != p.time {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], p)
	}

	// Step 4 — fold, with deferred next-binding.
	var g Graphic
	frame := map[uid.UID]elements.Elem{}
	for gi, group := range groups {
		time := group[0].time
		transition := Transition{Time: time}
		for _, p := range group {
			u := p.elem.UID
			if prior, ok := frame[u]; ok {
				transition.Next = append(transition.Next, Diff{Type: Update, Elem: p.elem.DiffAgainst(prior)})
				transition.Prev = append(transition.Prev, Diff{Type: Update, Elem: prior.DiffAgainst(p.elem)})
			} else {
				transition.Next = append(transition.Next, Diff{Type: Create, Elem: p.elem.Clone()})
				transition.Prev = append(transition.Prev, Diff{Type: Delete, Elem: p.elem.ForDeletion()})
			}
			frame[u] = p.elem
		}

		if gi == 0 {
			g.Initial = Frame{Time: time, Elems: cloneFrame(frame)}
			g.Transitions = append(g.Transitions, Transition{Time: time})
		} else {
			g.Transitions[len(g.Transitions)-1].Next = transition.Next
			g.Transitions = append(g.Transitions, Transition{Time: time, Prev: transition.Prev})
		}
	}
	g.Final = Frame{Time: lastTime(groups), Elems: cloneFrame(frame)}

	return g
}

func cloneFrame(frame map[uid.UID]elements.Elem) map[uid.UID]elements.Elem {
	out := make(map[uid.UID]elements.Elem, len(frame))
	for k, v := range frame {
		out[k] = v
	}
	return out
}

func lastTime(groups [][]patch) float64 {
	if len(groups) == 0 {
		return 0
	}
	return groups[len(groups)-1][0].time
}
