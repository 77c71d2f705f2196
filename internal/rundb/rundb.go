// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package rundb is an optional sqlite-backed audit log of parser
// invocations: one row per recorded run holding its identifier, settings
// fingerprint, element/patch/group counts, wall-clock duration, and
// any terminal error. It is independent of the per-element UID the
// diff engine assigns; a run's identifier has nothing to do with any
// element's identity.
package rundb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"log"
	"os"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaDDL string

// Store owns the audit database connection.
type Store struct {
	db *sql.DB
}

// Open creates the database file if it does not already exist and
// applies the schema, or opens it in place if it does.
func Open(path string) (*Store, error) {
	_, statErr := os.Stat(path)
	firstRun := errors.Is(statErr, os.ErrNotExist)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Printf("rundb: open: %s: %v\n", path, err)
		return nil, errors.Join(ErrOpenDatabase, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrForeignKeysOff, err)
	}

	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrCreateSchema, err)
	}

	if firstRun {
		log.Printf("rundb: created %s\n", path)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one audit record.
type Run struct {
	RunID               string
	StartedAt           string
	SettingsFingerprint string
	GroupCount          int
	ElementCount        int
	PatchCount          int
	DurationMS          int64
	Err                 string
}

// RecordRun inserts rec as a new audit row.
func (s *Store) RecordRun(ctx context.Context, rec Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, settings_fingerprint, group_count, element_count, patch_count, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.StartedAt, rec.SettingsFingerprint, rec.GroupCount, rec.ElementCount, rec.PatchCount, rec.DurationMS, rec.Err,
	)
	if err != nil {
		return errors.Join(ErrInsertRun, err)
	}
	return nil
}
