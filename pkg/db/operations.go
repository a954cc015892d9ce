package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/tinyshot/models"
)

// Run describes one recorded compress invocation.
type Run struct {
	RunID      int64
	RunKey     string
	InputCount int
	Success    int
	Failed     int
	CreatedAt  time.Time
}

// SnapshotInfo is the listing view of a stored snapshot.
type SnapshotInfo struct {
	SnapshotID      int64
	Source          string
	Title           string
	ElementCount    int
	EstimatedTokens int
	CreatedAt       time.Time
}

// CreateRun inserts a run row, returning the run_id. If the run key already
// exists, returns the existing run_id.
func (db *DB) CreateRun(runKey string, inputCount int) (int64, error) {
	var existingID int64
	err := db.QueryRow("SELECT run_id FROM runs WHERE run_key = ?", runKey).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing run: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO runs (run_key, input_count)
		VALUES (?, ?)
	`, runKey, inputCount)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// UpdateRunStats records the success/failure counts of a finished run.
func (db *DB) UpdateRunStats(runID int64, success, failed int) error {
	_, err := db.Exec(`
		UPDATE runs SET success = ?, failed = ? WHERE run_id = ?
	`, success, failed, runID)
	if err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}
	return nil
}

// InsertSnapshot stores a snapshot and its elements in one transaction,
// returning the snapshot_id.
func (db *DB) InsertSnapshot(runID int64, source, fingerprint string, snap models.Snapshot) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`
		INSERT INTO snapshots (run_id, source, fingerprint, title, text, element_count, estimated_tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, nullableID(runID), source, fingerprint, snap.Title, snap.Text, len(snap.Elements), snap.EstimatedTokens())
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	snapshotID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get snapshot ID: %w", err)
	}

	for i, e := range snap.Elements {
		_, err = tx.Exec(`
			INSERT INTO elements (snapshot_id, position, type, label, selector, context)
			VALUES (?, ?, ?, ?, ?, ?)
		`, snapshotID, i, string(e.Type), e.Text, e.Sel, e.Context)
		if err != nil {
			return 0, fmt.Errorf("failed to insert element: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return snapshotID, nil
}

// GetSnapshot reconstructs a stored snapshot with its elements in discovery
// order.
func (db *DB) GetSnapshot(snapshotID int64) (models.Snapshot, error) {
	var snap models.Snapshot
	err := db.QueryRow(`
		SELECT title, text FROM snapshots WHERE snapshot_id = ?
	`, snapshotID).Scan(&snap.Title, &snap.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, fmt.Errorf("snapshot %d not found", snapshotID)
	}
	if err != nil {
		return snap, fmt.Errorf("failed to get snapshot: %w", err)
	}

	rows, err := db.Query(`
		SELECT type, label, selector, context
		FROM elements WHERE snapshot_id = ? ORDER BY position
	`, snapshotID)
	if err != nil {
		return snap, fmt.Errorf("failed to get elements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Element
		var typ string
		if err := rows.Scan(&typ, &e.Text, &e.Sel, &e.Context); err != nil {
			return snap, fmt.Errorf("failed to scan element: %w", err)
		}
		e.Type = models.ElementType(typ)
		snap.Elements = append(snap.Elements, e)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("failed to iterate elements: %w", err)
	}
	return snap, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT run_id, run_key, input_count, success, failed, created_at
		FROM runs ORDER BY run_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.RunKey, &r.InputCount, &r.Success, &r.Failed, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListSnapshots returns the snapshots recorded for a run.
func (db *DB) ListSnapshots(runID int64) ([]SnapshotInfo, error) {
	rows, err := db.Query(`
		SELECT snapshot_id, source, title, element_count, estimated_tokens, created_at
		FROM snapshots WHERE run_id = ? ORDER BY snapshot_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var s SnapshotInfo
		if err := rows.Scan(&s.SnapshotID, &s.Source, &s.Title, &s.ElementCount, &s.EstimatedTokens, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		infos = append(infos, s)
	}
	return infos, rows.Err()
}

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id > 0}
}
