package db

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/review-sentiment/models"
)

// setupTestDB creates a throwaway SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func sampleRun() *Run {
	return &Run{
		URL:   "https://www.example.com/dp/B000",
		Title: "Acme Blender",
		Aggregate: models.PageAggregate{
			Mode:                models.AveragingLegacy,
			TotalReviews:        3,
			UnsupportedCount:    1,
			ValidCount:          2,
			AveragePolarity:     0.1,
			AverageSubjectivity: 1.0,
		},
		Reviews: []models.ScoredReview{
			{
				Review:            models.Review{Index: 1, Text: "Great blender"},
				Result:            models.Scored(0.5, 0.6),
				PolarityLabel:     models.PolarityPositive,
				SubjectivityLabel: models.SubjectivitySomewhat,
			},
			{
				Review:            models.Review{Index: 2, Text: "Kind of loud"},
				Result:            models.Scored(-0.3, 0.4),
				PolarityLabel:     models.PolarityNegative,
				SubjectivityLabel: models.SubjectivityNeutral,
			},
			{
				Review: models.Review{Index: 3, Text: "Sehr gut"},
				Result: models.Unsupported(models.ReasonLanguage, "de"),
			},
		},
	}
}

func TestRecordAndGetRun(t *testing.T) {
	db := setupTestDB(t)

	run := sampleRun()
	runID, err := db.RecordRun(run)
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	if runID == 0 || run.RunID != runID {
		t.Fatalf("RecordRun() runID = %d, run.RunID = %d", runID, run.RunID)
	}

	got, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}

	if got.URL != run.URL || got.Title != run.Title {
		t.Errorf("GetRun() url/title = %q/%q, want %q/%q", got.URL, got.Title, run.URL, run.Title)
	}
	if got.Aggregate.Mode != models.AveragingLegacy {
		t.Errorf("Aggregate.Mode = %q, want legacy", got.Aggregate.Mode)
	}
	if got.Aggregate.ValidCount != 2 || got.Aggregate.UnsupportedCount != 1 || got.Aggregate.TotalReviews != 3 {
		t.Errorf("Aggregate counts = %+v", got.Aggregate)
	}
	if math.Abs(got.Aggregate.AveragePolarity-0.1) > 1e-9 {
		t.Errorf("AveragePolarity = %v, want 0.1", got.Aggregate.AveragePolarity)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}

	if len(got.Reviews) != 3 {
		t.Fatalf("len(Reviews) = %d, want 3", len(got.Reviews))
	}
	for i, want := range run.Reviews {
		if got.Reviews[i] != want {
			t.Errorf("Reviews[%d] = %+v, want %+v", i, got.Reviews[i], want)
		}
	}
}

func TestRecordRunWithAggregateError(t *testing.T) {
	db := setupTestDB(t)

	run := sampleRun()
	run.AggregateError = "AGGREGATION_UNDEFINED: no valid reviews out of 3"
	runID, err := db.RecordRun(run)
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != runID {
		t.Fatalf("ListRuns() = %+v", runs)
	}
	if runs[0].AveragePolarity.Valid || runs[0].AverageSubjectivity.Valid {
		t.Error("averages should be NULL when the aggregate is undefined")
	}
	if runs[0].AggregateError != run.AggregateError {
		t.Errorf("AggregateError = %q, want %q", runs[0].AggregateError, run.AggregateError)
	}
}

func TestListRunsOrderAndLimit(t *testing.T) {
	db := setupTestDB(t)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := db.RecordRun(sampleRun())
		if err != nil {
			t.Fatalf("RecordRun() error = %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].RunID != ids[2] || runs[1].RunID != ids[1] {
		t.Errorf("ListRuns() order = %d,%d, want %d,%d", runs[0].RunID, runs[1].RunID, ids[2], ids[1])
	}
}

func TestSetRunExport(t *testing.T) {
	db := setupTestDB(t)

	runID, err := db.RecordRun(sampleRun())
	if err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	if err := db.SetRunExport(runID, "Example_Output.xlsx"); err != nil {
		t.Fatalf("SetRunExport() error = %v", err)
	}
	got, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.ExportedTo != "Example_Output.xlsx" {
		t.Errorf("ExportedTo = %q", got.ExportedTo)
	}

	if err := db.SetRunExport(runID+100, "x.xlsx"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("SetRunExport() unknown run error = %v, want ErrRunNotFound", err)
	}
}

func TestGetRunNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetRun(42)
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := first.RecordRun(sampleRun()); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}
	_ = first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer second.Close()

	runs, err := second.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("len(runs) = %d, want 1", len(runs))
	}
	if second.Path() != path {
		t.Errorf("Path() = %q, want %q", second.Path(), path)
	}
}
