// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package rundb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/animstream/parser/internal/rundb"
)

func TestOpenCreatesSchemaOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := rundb.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	rec := rundb.Run{
		RunID:               "run-1",
		StartedAt:           "2026-07-30T00:00:00Z",
		SettingsFingerprint: "./settings.json",
		GroupCount:          2,
		ElementCount:        5,
		PatchCount:          7,
		DurationMS:          123,
	}
	if err := store.RecordRun(context.Background(), rec); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
}

func TestOpenReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	first, err := rundb.Open(path)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := rundb.Open(path)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer second.Close()

	if err := second.RecordRun(context.Background(), rundb.Run{RunID: "run-2", StartedAt: "2026-07-30T00:00:00Z"}); err != nil {
		t.Fatalf("RecordRun on reopened database failed: %v", err)
	}
}

func TestRecordRunCarriesErrorText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := rundb.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	rec := rundb.Run{RunID: "run-err", StartedAt: "2026-07-30T00:00:00Z", Err: "unknown command: spin"}
	if err := store.RecordRun(context.Background(), rec); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
}
