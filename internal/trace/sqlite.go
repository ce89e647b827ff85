// Package trace exports finished simulation runs to a SQLite database.
package trace

import (
	"database/sql"
	"fmt"
	"time"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"

	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/sched"
)

// SQLiteTraceWriter writes runs, their timeline and per-process metrics.
type SQLiteTraceWriter struct {
	*sql.DB
	path string
}

// NewSQLiteTraceWriter opens (or creates) the database at path and makes
// sure the tables exist.
func NewSQLiteTraceWriter(path string) (*SQLiteTraceWriter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	w := &SQLiteTraceWriter{DB: db, path: path}
	if err := w.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *SQLiteTraceWriter) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			policy TEXT NOT NULL,
			created_at TEXT NOT NULL,
			makespan INTEGER NOT NULL,
			avg_turnaround REAL NOT NULL,
			avg_waiting REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS segments (
			run_id TEXT NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			pid INTEGER,
			arrival INTEGER,
			start_at INTEGER NOT NULL,
			end_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS processes (
			run_id TEXT NOT NULL REFERENCES runs(id),
			pid INTEGER NOT NULL,
			arrival INTEGER NOT NULL,
			burst INTEGER NOT NULL,
			priority INTEGER NOT NULL,
			completion INTEGER NOT NULL,
			turnaround INTEGER NOT NULL,
			waiting INTEGER NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := w.Exec(s); err != nil {
			return fmt.Errorf("creating tables in %s: %w", w.path, err)
		}
	}
	return nil
}

// Write stores one run in a single transaction and returns its run ID.
func (w *SQLiteTraceWriter) Write(r *sched.Result) (string, error) {
	sum, err := sched.Summarize(r)
	if err != nil {
		return "", err
	}

	runID := xid.New().String()

	tx, err := w.Begin()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(
		`INSERT INTO runs (id, policy, created_at, makespan, avg_turnaround, avg_waiting)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, r.Policy, time.Now().UTC().Format(time.RFC3339Nano),
		r.Makespan, sum.AverageTurnaround, sum.AverageWaiting,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	segStmt, err := tx.Prepare(
		`INSERT INTO segments (run_id, seq, kind, pid, arrival, start_at, end_at) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer segStmt.Close()

	for i, seg := range r.Timeline {
		var pid, arrival any
		if !seg.IsIdle() {
			pid, arrival = seg.PID, seg.Arrival
		}
		if _, err := segStmt.Exec(runID, i, seg.Kind.String(), pid, arrival, seg.Start, seg.End); err != nil {
			return "", fmt.Errorf("inserting segment %d: %w", i, err)
		}
	}

	procStmt, err := tx.Prepare(
		`INSERT INTO processes (run_id, pid, arrival, burst, priority, completion, turnaround, waiting)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer procStmt.Close()

	for _, p := range sum.Processes {
		_, err := procStmt.Exec(runID, p.PID, p.Arrival, p.Burst, p.Priority,
			p.Completion, p.Turnaround, p.Waiting)
		if err != nil {
			return "", fmt.Errorf("inserting pid %d: %w", p.PID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// RunPolicy returns the policy stored for a run ID.
func (w *SQLiteTraceWriter) RunPolicy(runID string) (string, error) {
	var policy string
	err := w.QueryRow(`SELECT policy FROM runs WHERE id = ?`, runID).Scan(&policy)
	return policy, err
}

// ReadSegments returns the stored timeline of a run in recording order.
func (w *SQLiteTraceWriter) ReadSegments(runID string) ([]sched.Segment, error) {
	rows, err := w.Query(
		`SELECT kind, pid, arrival, start_at, end_at FROM segments WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segs []sched.Segment
	for rows.Next() {
		var (
			kind         string
			pid, arrival sql.NullInt64
			seg          sched.Segment
		)
		if err := rows.Scan(&kind, &pid, &arrival, &seg.Start, &seg.End); err != nil {
			return nil, err
		}
		if kind == sched.SegmentIdle.String() {
			seg.Kind = sched.SegmentIdle
		}
		seg.PID = int(pid.Int64)
		seg.Arrival = arrival.Int64
		segs = append(segs, seg)
	}
	return segs, rows.Err()
}
