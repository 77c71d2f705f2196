// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package emit_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/animstream/parser/internal/dispatch"
	"github.com/animstream/parser/internal/emit"
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

func TestWriteProducesValidJSON(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"rect": {"useElem": "rect", "inputs": ["groupID", "name", "left", "width", "top", "height"]},
			"point": {"useElem": "chart", "inputs": ["groupID", "lineID", "x", "y"]}
		}
	}`)
	res, err := dispatch.Run(cfg, "rect g1 box 0 10 0 10 update 1 rect g1 box 5 10 0 10 point g1 line1 0 10 point g1 line1 1 20")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	groups := emit.Finalize(res)

	var buf bytes.Buffer
	if err := emit.Write(&buf, groups); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var doc map[string]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	g1, ok := doc["g1"]
	if !ok {
		t.Fatalf("want group g1 in output, got %v", doc)
	}
	if _, ok := g1["graphic"]; !ok {
		t.Errorf("want g1.graphic present")
	}
	if _, ok := g1["chart"]; !ok {
		t.Errorf("want g1.chart present")
	}
}

func TestDocumentFrameElemsIsSortedArray(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"rect": {"useElem": "rect", "inputs": ["name", "left", "width", "top", "height"]}
		}
	}`)
	res, err := dispatch.Run(cfg, "rect first 0 10 0 10 rect second 0 10 0 10")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	groups := emit.Finalize(res)
	doc := emit.Document(groups)

	g := doc["group0"]
	graphicJSON, err := json.Marshal(g.Graphic)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var parsed struct {
		Initial struct {
			Elems []struct {
				UID  string `json:"UID"`
				Name string `json:"name"`
			} `json:"elems"`
		} `json:"initial"`
	}
	if err := json.Unmarshal(graphicJSON, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got, want := len(parsed.Initial.Elems), 2; got != want {
		t.Fatalf("want %d elems, got %d", want, got)
	}
	if got, want := parsed.Initial.Elems[0].UID, "1"; got != want {
		t.Errorf("want first elem UID %q (assigned first), got %q", want, got)
	}
	if got, want := parsed.Initial.Elems[1].UID, "2"; got != want {
		t.Errorf("want second elem UID %q, got %q", want, got)
	}
}

func TestChartConsecutiveIntegersFlattenToYArray(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"point": {"useElem": "chart", "inputs": ["lineID", "x", "y"]}
		}
	}`)
	res, err := dispatch.Run(cfg, "point line1 0 10 point line1 1 20 point line1 2 30")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	groups := emit.Finalize(res)
	doc := emit.Document(groups)

	buf, err := json.Marshal(doc["group0"].Chart["line1"])
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var parsed struct {
		Data []float64 `json:"data"`
	}
	if err := json.Unmarshal(buf, &parsed); err != nil {
		t.Fatalf("want consecutive-integer x values to flatten to a bare y array, got %s: %v", buf, err)
	}
	want := []float64{10, 20, 30}
	for i, y := range want {
		if parsed.Data[i] != y {
			t.Errorf("index %d: want %v, got %v", i, y, parsed.Data[i])
		}
	}
}

func TestChartNonConsecutiveKeepsPairs(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"point": {"useElem": "chart", "inputs": ["lineID", "x", "y"]}
		}
	}`)
	res, err := dispatch.Run(cfg, "point line1 0 10 point line1 5 20")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	groups := emit.Finalize(res)
	doc := emit.Document(groups)

	buf, err := json.Marshal(doc["group0"].Chart["line1"])
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var parsed struct {
		Data [][2]float64 `json:"data"`
	}
	if err := json.Unmarshal(buf, &parsed); err != nil {
		t.Fatalf("want non-consecutive x values to stay as (x,y) pairs, got %s: %v", buf, err)
	}
	if got, want := parsed.Data[1][0], 5.0; got != want {
		t.Errorf("want second pair's x %v, got %v", want, got)
	}
}

func TestDeleteDiffSerializesAsBareUID(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"rect": {"useElem": "rect", "inputs": ["name", "left", "width", "top", "height"]}
		}
	}`)
	// "second" first appears at time 1: its own transition's backward
	// diff is a Delete (stepping back before time 1 removes it).
	res, err := dispatch.Run(cfg, "rect first 0 10 0 10 update 1 rect second 0 10 0 10")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	groups := emit.Finalize(res)
	doc := emit.Document(groups)

	buf, err := json.Marshal(doc["group0"].Graphic.Transitions)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var raw []struct {
		Prev []map[string]any `json:"prev"`
	}
	if err := json.Unmarshal(buf, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	var deletePayload map[string]any
	for _, tr := range raw {
		for _, d := range tr.Prev {
			if d["diffType"] == "Delete" {
				deletePayload = d
			}
		}
	}
	if deletePayload == nil {
		t.Fatalf("want a Delete diff somewhere in prev, got %+v", raw)
	}
	if _, ok := deletePayload["elemType"]; ok {
		t.Errorf("want a Delete diff to omit elemType, got %+v", deletePayload)
	}
	if _, ok := deletePayload["UID"]; !ok {
		t.Errorf("want a Delete diff to carry UID, got %+v", deletePayload)
	}
	for _, key := range []string{"name", "x", "y", "w", "h", "color"} {
		if _, ok := deletePayload[key]; ok {
			t.Errorf("want a Delete diff to omit shape field %q, got %+v", key, deletePayload)
		}
	}
}

func TestFrameElemsOmitGroupID(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"rect": {"useElem": "rect", "inputs": ["groupID", "name", "left", "width", "top", "height"]}
		}
	}`)
	res, err := dispatch.Run(cfg, "rect g1 box 0 10 0 10")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	groups := emit.Finalize(res)
	doc := emit.Document(groups)

	buf, err := json.Marshal(doc["g1"].Graphic.Initial)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var parsed struct {
		Elems []map[string]any `json:"elems"`
	}
	if err := json.Unmarshal(buf, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(parsed.Elems) == 0 {
		t.Fatalf("want at least one element in the initial frame")
	}
	for _, key := range []string{"groupID", "group_id", "GroupID"} {
		if _, ok := parsed.Elems[0][key]; ok {
			t.Errorf("want element snapshot to omit %q (group_id is the outer map key), got %+v", key, parsed.Elems[0])
		}
	}
}

func TestDiffJSONFlattensElemFields(t *testing.T) {
	cfg := mustParse(t, `{
		"commands": {
			"rect": {"useElem": "rect", "inputs": ["name", "left", "width", "top", "height"]}
		}
	}`)
	res, err := dispatch.Run(cfg, "rect box 0 10 0 10 update 1 rect box 5 10 0 10")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	groups := emit.Finalize(res)
	doc := emit.Document(groups)

	buf, err := json.Marshal(doc["group0"].Graphic.Transitions)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var transitions []struct {
		Next []struct {
			DiffType string  `json:"diffType"`
			ElemType string  `json:"elemType"`
			X        float64 `json:"x"`
		} `json:"next"`
	}
	if err := json.Unmarshal(buf, &transitions); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(transitions) == 0 || len(transitions[0].Next) == 0 {
		t.Fatalf("want at least one diff in the first transition's next, got %+v", transitions)
	}
	d := transitions[0].Next[0]
	if got, want := d.DiffType, "Update"; got != want {
		t.Errorf("want diffType %q flattened at top level, got %q", want, d.DiffType)
	}
	if got, want := d.X, 5.0; got != want {
		t.Errorf("want elem field x flattened at top level with %v, got %v", want, d.X)
	}
}
