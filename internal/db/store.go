package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store provides persistence for evaluation runs and case outcomes.
type Store struct {
	db *sql.DB
}

// NewStore creates a store over an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RunRecord is one evaluation run as stored.
type RunRecord struct {
	RunID      string
	CreatedAt  string
	Suite      string
	Status     string
	TotalCases int
	Passed     int
	Failed     int
}

// OutcomeRecord is one case outcome as stored. Trajectory and verdict travel
// as the same JSON the rest of the system serializes.
type OutcomeRecord struct {
	RunID          string
	CaseIndex      int
	CaseID         string
	Passed         bool
	ShortCircuited bool
	Failure        string
	TrajectoryJSON string
	VerdictJSON    string
	StartedAt      string
	EndedAt        string
}

// CreateRun inserts the run record in running state.
func (s *Store) CreateRun(ctx context.Context, runID, suite string, totalCases int) error {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO eval_runs(run_id, created_at, suite, status, total_cases) VALUES(?, ?, ?, ?, ?)`,
		runID, createdAt, suite, "running", totalCases); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordOutcome appends one case outcome to a run.
func (s *Store) RecordOutcome(ctx context.Context, o OutcomeRecord) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO case_outcomes(run_id, case_index, case_id, passed, short_circuited, failure, trajectory_json, verdict_json, started_at, ended_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.RunID, o.CaseIndex, o.CaseID, o.Passed, o.ShortCircuited,
		nullableString(o.Failure), nullableString(o.TrajectoryJSON), nullableString(o.VerdictJSON),
		o.StartedAt, o.EndedAt); err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

// FinishRun marks a run completed and stores its aggregate counts.
func (s *Store) FinishRun(ctx context.Context, runID string, passed, failed int) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE eval_runs SET status=?, passed=?, failed=? WHERE run_id=?`,
		"done", passed, failed, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: unknown run id %q", runID)
	}
	return nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, created_at, suite, status, total_cases, passed, failed
		 FROM eval_runs ORDER BY created_at DESC, run_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Suite, &r.Status, &r.TotalCases, &r.Passed, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListOutcomes returns a run's case outcomes in case order.
func (s *Store) ListOutcomes(ctx context.Context, runID string) ([]OutcomeRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, case_index, case_id, passed, short_circuited, failure, trajectory_json, verdict_json, started_at, ended_at
		 FROM case_outcomes WHERE run_id=? ORDER BY case_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var outcomes []OutcomeRecord
	for rows.Next() {
		var (
			o                            OutcomeRecord
			failure, trajectory, verdict sql.NullString
		)
		if err := rows.Scan(&o.RunID, &o.CaseIndex, &o.CaseID, &o.Passed, &o.ShortCircuited,
			&failure, &trajectory, &verdict, &o.StartedAt, &o.EndedAt); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.Failure = failure.String
		o.TrajectoryJSON = trajectory.String
		o.VerdictJSON = verdict.String
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
