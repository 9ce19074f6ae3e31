// Package store persists reconciliation runs to SQLite so repeated runs over
// the same night stay queryable. The engine itself never touches the store;
// the CLI engages it behind a flag.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/oximetry.report/internal/monitoring"
	"github.com/banshee-data/oximetry.report/internal/series"
	"github.com/banshee-data/oximetry.report/internal/timeutil"
)

// Store wraps the run database.
type Store struct {
	*sql.DB
	clock timeutil.Clock
}

// Open opens (creating if necessary) the run database at path and applies
// pending migrations.
func Open(path string, clock timeutil.Clock) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s := &Store{DB: db, clock: clock}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Run is the metadata for one reconciliation run.
type Run struct {
	RunID      string
	Directory  string
	PulseFile  string
	SpO2File   string
	O2RingFile string

	// RangeStart/RangeEnd bound the merged window; both are zero when the
	// sources had no overlap.
	RangeStart time.Time
	RangeEnd   time.Time

	Rows      int
	CreatedAt time.Time
}

// SaveRun records the run metadata and every present cell of the merged
// table in one transaction. A missing RunID is assigned; CreatedAt is set
// from the store's clock.
func (s *Store) SaveRun(run *Run, t *series.Table) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	run.Rows = t.Len()
	run.CreatedAt = s.clock.Now()
	if t.Len() > 0 {
		run.RangeStart = t.TimeAt(0)
		run.RangeEnd = t.TimeAt(t.Len() - 1)
	}

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var startUnix, endUnix sql.NullInt64
	if !run.RangeStart.IsZero() {
		startUnix = sql.NullInt64{Int64: run.RangeStart.Unix(), Valid: true}
		endUnix = sql.NullInt64{Int64: run.RangeEnd.Unix(), Valid: true}
	}
	_, err = tx.Exec(
		`INSERT INTO runs (
			run_id, directory, pulse_file, spo2_file, o2ring_file,
			range_start_unix, range_end_unix, row_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Directory, run.PulseFile, run.SpO2File, run.O2RingFile,
		startUnix, endUnix, run.Rows, run.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO merged_cells (run_id, minute_unix, channel, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare cell insert: %w", err)
	}
	defer stmt.Close()

	cells := 0
	for i := 0; i < t.Len(); i++ {
		minute := t.TimeAt(i).Unix()
		for _, ch := range t.Channels {
			v := t.Columns[ch][i]
			if !v.OK {
				// Absence is represented by the absence of a row.
				continue
			}
			if _, err := stmt.Exec(run.RunID, minute, string(ch), v.V); err != nil {
				return fmt.Errorf("insert cell %s@%d: %w", ch, minute, err)
			}
			cells++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	monitoring.Logf("recorded run %s: %d rows, %d cells", run.RunID, run.Rows, cells)
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.Query(
		`SELECT run_id, directory, pulse_file, spo2_file, o2ring_file,
			range_start_unix, range_end_unix, row_count, created_at
		FROM runs ORDER BY created_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startUnix, endUnix sql.NullInt64
		var createdUnix int64
		if err := rows.Scan(
			&r.RunID, &r.Directory, &r.PulseFile, &r.SpO2File, &r.O2RingFile,
			&startUnix, &endUnix, &r.Rows, &createdUnix,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if startUnix.Valid {
			r.RangeStart = time.Unix(startUnix.Int64, 0).UTC()
			r.RangeEnd = time.Unix(endUnix.Int64, 0).UTC()
		}
		r.CreatedAt = time.Unix(createdUnix, 0).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CellCount returns the number of stored cells for a run.
func (s *Store) CellCount(runID string) (int, error) {
	var n int
	err := s.QueryRow(`SELECT COUNT(*) FROM merged_cells WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count cells: %w", err)
	}
	return n, nil
}
