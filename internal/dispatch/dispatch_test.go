// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package dispatch_test

import (
	"errors"
	"testing"

	"github.com/animstream/parser/internal/cerrs"
	"github.com/animstream/parser/internal/dispatch"
	"github.com/animstream/parser/internal/settings"
)

func mustParse(t *testing.T, raw string) *settings.Settings_t {
	t.Helper()
	cfg, err := settings.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("settings.Parse failed: %v", err)
	}
	return cfg
}

func TestRunAccumulatesGroupsInFirstSightOrder(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"rect": {"useElem": "rect", "inputs": ["groupID", "name", "left", "width", "top", "height"]}
		}
	}`)
	res, err := dispatch.Run(cfg, "rect groupB box1 0 10 0 10 rect groupA box2 0 10 0 10")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got, want := len(res.GroupOrder), 2; got != want {
		t.Fatalf("want %d groups, got %d", want, got)
	}
	if res.GroupOrder[0] != "groupB" || res.GroupOrder[1] != "groupA" {
		t.Errorf("want first-sight order [groupB groupA], got %v", res.GroupOrder)
	}
}

func TestRunUpdateAdvancesTime(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"rect": {"useElem": "rect", "inputs": ["name", "left", "width", "top", "height"]}
		}
	}`)
	res, err := dispatch.Run(cfg, "rect box 0 10 0 10 update 5 rect box 1 10 0 10")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	g, ok := res.Graphics["group0"]
	if !ok {
		t.Fatalf("want group0 to exist")
	}
	graphic := g.Finalize()
	if got, want := graphic.Final.Time, 5.0; got != want {
		t.Errorf("want final time %v, got %v", want, got)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	cfg := mustParse(t, `{"commands": {}}`)
	if _, err := dispatch.Run(cfg, "spin"); !errors.Is(err, cerrs.ErrUnknownCommand) {
		t.Errorf("want ErrUnknownCommand, got %v", err)
	}
}

func TestRunNonFiniteUpdateTime(t *testing.T) {
	cfg := mustParse(t, `{"commands": {}}`)
	if _, err := dispatch.Run(cfg, "update NaN"); err == nil {
		t.Errorf("want error for non-finite update time, got nil")
	}
}

func TestRunTimeSentinelResolvesCurrentTime(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"rect": {"useElem": "rect", "inputs": ["left", "width", "top", "height"]}
		}
	}`)
	res, err := dispatch.Run(cfg, "update 7 rect $time 10 0 10")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	g := res.Graphics["group0"].Finalize()
	if got, want := g.Final.Time, 7.0; got != want {
		t.Errorf("want patch recorded at time %v, got %v", want, got)
	}
	for _, e := range g.Final.Elems {
		if got, want := *e.Rect.X, 7.0; got != want {
			t.Errorf("want $time to resolve to %v for left, got %v", want, got)
		}
	}
}

func TestRunChartDispatchesSeparatelyFromGraphic(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"point": {"useElem": "chart", "inputs": ["groupID", "lineID", "x", "y"]},
			"rect": {"useElem": "rect", "inputs": ["groupID", "left", "width", "top", "height"]}
		}
	}`)
	res, err := dispatch.Run(cfg, "point g1 line1 0 1 rect g1 0 10 0 10")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, ok := res.Charts["g1"]; !ok {
		t.Errorf("want a chart creator for g1")
	}
	if _, ok := res.Graphics["g1"]; !ok {
		t.Errorf("want a graphic creator for g1")
	}
	if got, want := res.PatchCounts["g1"], 1; got != want {
		t.Errorf("want 1 graphic patch recorded for g1, got %d", got)
	}
}

func TestRunStreamExhaustedMidCommand(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"rect": {"useElem": "rect", "inputs": ["left", "width"]}
		}
	}`)
	if _, err := dispatch.Run(cfg, "rect 10"); !errors.Is(err, cerrs.ErrStreamExhausted) {
		t.Errorf("want ErrStreamExhausted, got %v", err)
	}
}
