package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/review-sentiment/models"
)

// Run is a recorded analyze run.
type Run struct {
	RunID     int64
	URL       string
	Title     string
	CreatedAt time.Time

	Aggregate      models.PageAggregate
	AggregateError string // set when the aggregate was undefined
	ExportedTo     string

	Reviews []models.ScoredReview
}

// RunSummary is a row of the history listing.
type RunSummary struct {
	RunID               int64
	URL                 string
	Title               string
	CreatedAt           time.Time
	Mode                models.AveragingMode
	TotalReviews        int
	UnsupportedCount    int
	ValidCount          int
	AveragePolarity     sql.NullFloat64
	AverageSubjectivity sql.NullFloat64
	AggregateError      string
	ExportedTo          string
}

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// RecordRun stores a run and its reviews in one transaction and returns
// the new run_id. Averages are stored as NULL when run.AggregateError is set.
func (db *DB) RecordRun(run *Run) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var avgPolarity, avgSubjectivity sql.NullFloat64
	if run.AggregateError == "" {
		avgPolarity = sql.NullFloat64{Float64: run.Aggregate.AveragePolarity, Valid: true}
		avgSubjectivity = sql.NullFloat64{Float64: run.Aggregate.AverageSubjectivity, Valid: true}
	}

	agg := run.Aggregate
	result, err := tx.Exec(`
		INSERT INTO runs (url, title, averaging_mode, total_reviews, unsupported_count, valid_count,
			average_polarity, average_subjectivity, aggregate_error, exported_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.URL, run.Title, string(agg.Mode), agg.TotalReviews, agg.UnsupportedCount, agg.ValidCount,
		avgPolarity, avgSubjectivity, nullString(run.AggregateError), nullString(run.ExportedTo))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO review_results (run_id, review_index, text, kind, polarity, subjectivity,
			polarity_label, subjectivity_label, reason, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare review insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range run.Reviews {
		_, err := stmt.Exec(runID, r.Index, r.Text, string(r.Result.Kind), r.Result.Polarity, r.Result.Subjectivity,
			nullString(string(r.PolarityLabel)), nullString(string(r.SubjectivityLabel)),
			nullString(string(r.Result.Reason)), nullString(r.Result.Language))
		if err != nil {
			return 0, fmt.Errorf("failed to insert review %d: %w", r.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	run.RunID = runID
	return runID, nil
}

// SetRunExport records where a run's scores were exported.
func (db *DB) SetRunExport(runID int64, path string) error {
	res, err := db.Exec("UPDATE runs SET exported_to = ? WHERE run_id = ?", path, runID)
	if err != nil {
		return fmt.Errorf("failed to update run export: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update run export: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	return nil
}

// ListRuns returns the most recent runs first.
func (db *DB) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, url, COALESCE(title, ''), created_at, averaging_mode,
			total_reviews, unsupported_count, valid_count,
			average_polarity, average_subjectivity,
			COALESCE(aggregate_error, ''), COALESCE(exported_to, '')
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var s RunSummary
		var mode string
		if err := rows.Scan(&s.RunID, &s.URL, &s.Title, &s.CreatedAt, &mode,
			&s.TotalReviews, &s.UnsupportedCount, &s.ValidCount,
			&s.AveragePolarity, &s.AverageSubjectivity,
			&s.AggregateError, &s.ExportedTo); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		s.Mode = models.AveragingMode(mode)
		runs = append(runs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun loads a run and its reviews.
func (db *DB) GetRun(runID int64) (*Run, error) {
	run := &Run{RunID: runID}
	var mode string
	var avgPolarity, avgSubjectivity sql.NullFloat64

	err := db.QueryRow(`
		SELECT url, COALESCE(title, ''), created_at, averaging_mode,
			total_reviews, unsupported_count, valid_count,
			average_polarity, average_subjectivity,
			COALESCE(aggregate_error, ''), COALESCE(exported_to, '')
		FROM runs WHERE run_id = ?
	`, runID).Scan(&run.URL, &run.Title, &run.CreatedAt, &mode,
		&run.Aggregate.TotalReviews, &run.Aggregate.UnsupportedCount, &run.Aggregate.ValidCount,
		&avgPolarity, &avgSubjectivity, &run.AggregateError, &run.ExportedTo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.Aggregate.Mode = models.AveragingMode(mode)
	run.Aggregate.AveragePolarity = avgPolarity.Float64
	run.Aggregate.AverageSubjectivity = avgSubjectivity.Float64

	rows, err := db.Query(`
		SELECT review_index, text, kind, polarity, subjectivity,
			COALESCE(polarity_label, ''), COALESCE(subjectivity_label, ''),
			COALESCE(reason, ''), COALESCE(language, '')
		FROM review_results
		WHERE run_id = ?
		ORDER BY review_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.ScoredReview
		var kind, pLabel, sLabel, reason string
		if err := rows.Scan(&r.Index, &r.Text, &kind, &r.Result.Polarity, &r.Result.Subjectivity,
			&pLabel, &sLabel, &reason, &r.Result.Language); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		r.Result.Kind = models.ResultKind(kind)
		r.Result.Reason = models.UnsupportedReason(reason)
		r.PolarityLabel = models.PolarityLabel(pLabel)
		r.SubjectivityLabel = models.SubjectivityLabel(sLabel)
		run.Reviews = append(run.Reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run reviews: %w", err)
	}
	return run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
