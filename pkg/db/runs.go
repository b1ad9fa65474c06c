package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Run status values.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run represents one prepare invocation
type Run struct {
	RunID         int64
	CreatedAt     time.Time
	InputPath     string
	Seed          uint64
	TrainFraction float64
	MinCount      int
	Status        string
	InputCount    int
	TrainCount    int
	TestCount     int
	TrainPath     string
	TestPath      string
	ErrorMessage  string
}

// StageTransition is one state a split entered.
type StageTransition struct {
	Split     string
	Stage     string
	Documents int
}

// Rejection is one document blanked during a run.
type Rejection struct {
	Split    string
	Index    int
	Reason   string
	Language string
}

// CreateRun inserts a run in the running state and returns its ID.
func (db *DB) CreateRun(inputPath string, seed uint64, trainFraction float64, minCount int) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (input_path, seed, train_fraction, min_count, status)
		VALUES (?, ?, ?, ?, ?)
	`, inputPath, strconv.FormatUint(seed, 10), trainFraction, minCount, StatusRunning)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// RecordStages appends transitions in order.
func (db *DB) RecordStages(runID int64, transitions []StageTransition) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRow("SELECT COALESCE(MAX(seq), -1) + 1 FROM stage_transitions WHERE run_id = ?", runID).Scan(&next); err != nil {
		return fmt.Errorf("failed to read stage sequence: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO stage_transitions (run_id, split, stage, documents, seq)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare stage insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range transitions {
		if _, err := stmt.Exec(runID, t.Split, t.Stage, t.Documents, next+i); err != nil {
			return fmt.Errorf("failed to record stage %s/%s: %w", t.Split, t.Stage, err)
		}
	}
	return tx.Commit()
}

// RecordRejections stores every rejected document for a run.
func (db *DB) RecordRejections(runID int64, rejections []Rejection) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO rejections (run_id, split, doc_index, reason, language)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare rejection insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rejections {
		var lang interface{}
		if r.Language != "" {
			lang = r.Language
		}
		if _, err := stmt.Exec(runID, r.Split, r.Index, r.Reason, lang); err != nil {
			return fmt.Errorf("failed to record rejection: %w", err)
		}
	}
	return tx.Commit()
}

// RunOutcome is what FinishRun stores once a run ends.
type RunOutcome struct {
	Status     string
	InputCount int
	TrainCount int
	TestCount  int
	TrainPath  string
	TestPath   string
	Err        error
}

// FinishRun records the final status and counts of a run.
func (db *DB) FinishRun(runID int64, outcome RunOutcome) error {
	var errMsg interface{}
	if outcome.Err != nil {
		errMsg = outcome.Err.Error()
	}
	result, err := db.Exec(`
		UPDATE runs
		SET status = ?, input_count = ?, train_count = ?, test_count = ?,
		    train_path = ?, test_path = ?, error_message = ?
		WHERE run_id = ?
	`, outcome.Status, outcome.InputCount, outcome.TrainCount, outcome.TestCount,
		outcome.TrainPath, outcome.TestPath, errMsg, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("run %d not found", runID)
	}
	return nil
}

const runColumns = `run_id, created_at, input_path, seed, train_fraction, min_count, status,
	input_count, train_count, test_count,
	COALESCE(train_path, ''), COALESCE(test_path, ''), COALESCE(error_message, '')`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var seed string
	if err := row.Scan(&r.RunID, &r.CreatedAt, &r.InputPath, &seed, &r.TrainFraction, &r.MinCount,
		&r.Status, &r.InputCount, &r.TrainCount, &r.TestCount,
		&r.TrainPath, &r.TestPath, &r.ErrorMessage); err != nil {
		return Run{}, err
	}
	s, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return Run{}, fmt.Errorf("invalid seed %q: %w", seed, err)
	}
	r.Seed = s
	return r, nil
}

// GetRun retrieves a run by its ID
func (db *DB) GetRun(runID int64) (*Run, error) {
	r, err := scanRun(db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// ListRuns retrieves runs ordered by most recent first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, run_id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetStages returns a run's transitions in the order they were recorded.
func (db *DB) GetStages(runID int64) ([]StageTransition, error) {
	rows, err := db.Query(`
		SELECT split, stage, documents
		FROM stage_transitions
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stages: %w", err)
	}
	defer rows.Close()

	var stages []StageTransition
	for rows.Next() {
		var s StageTransition
		if err := rows.Scan(&s.Split, &s.Stage, &s.Documents); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

// GetRejections returns a run's rejected documents.
func (db *DB) GetRejections(runID int64) ([]Rejection, error) {
	rows, err := db.Query(`
		SELECT split, doc_index, reason, COALESCE(language, '')
		FROM rejections
		WHERE run_id = ?
		ORDER BY rejection_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rejections: %w", err)
	}
	defer rows.Close()

	var rejections []Rejection
	for rows.Next() {
		var r Rejection
		if err := rows.Scan(&r.Split, &r.Index, &r.Reason, &r.Language); err != nil {
			return nil, fmt.Errorf("failed to scan rejection: %w", err)
		}
		rejections = append(rejections, r)
	}
	return rejections, rows.Err()
}

// RejectionCounts groups a run's rejections by reason.
func (db *DB) RejectionCounts(runID int64) (map[string]int, error) {
	rows, err := db.Query(`
		SELECT reason, COUNT(*)
		FROM rejections
		WHERE run_id = ?
		GROUP BY reason
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to count rejections: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var reason string
		var n int
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("failed to scan rejection count: %w", err)
		}
		counts[reason] = n
	}
	return counts, rows.Err()
}
