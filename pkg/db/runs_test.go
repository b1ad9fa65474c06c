package db

import (
	"errors"
	"math"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// Each connection would get its own in-memory database.
	database.SetMaxOpenConns(1)

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestCreateRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.CreateRun("news.csv", math.MaxUint64, 0.8, 5)
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("CreateRun() returned 0 run ID")
	}

	run, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.Status != StatusRunning {
		t.Errorf("run.Status = %q, want %q", run.Status, StatusRunning)
	}
	if run.Seed != math.MaxUint64 {
		t.Errorf("run.Seed = %d, want %d", run.Seed, uint64(math.MaxUint64))
	}
	if run.InputPath != "news.csv" || run.TrainFraction != 0.8 || run.MinCount != 5 {
		t.Errorf("run = %+v, unexpected parameters", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("run.CreatedAt is zero")
	}
}

func TestFinishRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tests := []struct {
		name    string
		outcome RunOutcome
		wantErr string
	}{
		{
			name:    "succeeded",
			outcome: RunOutcome{Status: StatusSucceeded, InputCount: 10, TrainCount: 6, TestCount: 2, TrainPath: "train.csv", TestPath: "test.csv"},
		},
		{
			name:    "failed",
			outcome: RunOutcome{Status: StatusFailed, InputCount: 10, Err: errors.New("boom")},
			wantErr: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runID, err := db.CreateRun("in.csv", 1, 0.5, 1)
			if err != nil {
				t.Fatalf("CreateRun() error = %v", err)
			}
			if err := db.FinishRun(runID, tt.outcome); err != nil {
				t.Fatalf("FinishRun() error = %v", err)
			}

			run, err := db.GetRun(runID)
			if err != nil {
				t.Fatalf("GetRun() error = %v", err)
			}
			if run.Status != tt.outcome.Status {
				t.Errorf("Status = %q, want %q", run.Status, tt.outcome.Status)
			}
			if run.TrainCount != tt.outcome.TrainCount || run.TestCount != tt.outcome.TestCount {
				t.Errorf("counts = %d/%d, want %d/%d", run.TrainCount, run.TestCount, tt.outcome.TrainCount, tt.outcome.TestCount)
			}
			if run.TrainPath != tt.outcome.TrainPath {
				t.Errorf("TrainPath = %q, want %q", run.TrainPath, tt.outcome.TrainPath)
			}
			if run.ErrorMessage != tt.wantErr {
				t.Errorf("ErrorMessage = %q, want %q", run.ErrorMessage, tt.wantErr)
			}
		})
	}
}

func TestFinishRun_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.FinishRun(42, RunOutcome{Status: StatusSucceeded}); err == nil {
		t.Error("FinishRun() on missing run should fail")
	}
	if _, err := db.GetRun(42); err == nil {
		t.Error("GetRun() on missing run should fail")
	}
}

func TestRecordStages_PreservesOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.CreateRun("in.csv", 1, 0.8, 5)

	first := []StageTransition{
		{Split: "train", Stage: "SPLIT", Documents: 8},
		{Split: "train", Stage: "AUGMENTED", Documents: 16},
	}
	second := []StageTransition{
		{Split: "test", Stage: "SPLIT", Documents: 2},
	}
	if err := db.RecordStages(runID, first); err != nil {
		t.Fatalf("RecordStages() error = %v", err)
	}
	if err := db.RecordStages(runID, second); err != nil {
		t.Fatalf("RecordStages() error = %v", err)
	}

	got, err := db.GetStages(runID)
	if err != nil {
		t.Fatalf("GetStages() error = %v", err)
	}
	want := append(first, second...)
	if len(got) != len(want) {
		t.Fatalf("GetStages() returned %d transitions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRecordRejections(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.CreateRun("in.csv", 1, 0.8, 5)
	rejections := []Rejection{
		{Split: "train", Index: 3, Reason: "unsupported_language", Language: "de"},
		{Split: "train", Index: 4, Reason: "unsupported_language"},
		{Split: "test", Index: 0, Reason: "too_short"},
	}
	if err := db.RecordRejections(runID, rejections); err != nil {
		t.Fatalf("RecordRejections() error = %v", err)
	}

	got, err := db.GetRejections(runID)
	if err != nil {
		t.Fatalf("GetRejections() error = %v", err)
	}
	if len(got) != len(rejections) {
		t.Fatalf("GetRejections() returned %d, want %d", len(got), len(rejections))
	}
	for i := range rejections {
		if got[i] != rejections[i] {
			t.Errorf("rejection[%d] = %+v, want %+v", i, got[i], rejections[i])
		}
	}

	counts, err := db.RejectionCounts(runID)
	if err != nil {
		t.Fatalf("RejectionCounts() error = %v", err)
	}
	if counts["unsupported_language"] != 2 || counts["too_short"] != 1 {
		t.Errorf("RejectionCounts() = %v", counts)
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for i := 0; i < 3; i++ {
		if _, err := db.CreateRun("in.csv", uint64(i), 0.8, 5); err != nil {
			t.Fatalf("CreateRun() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"all", 0, 3},
		{"limited", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := db.ListRuns(tt.limit)
			if err != nil {
				t.Fatalf("ListRuns() error = %v", err)
			}
			if len(runs) != tt.want {
				t.Fatalf("ListRuns() returned %d runs, want %d", len(runs), tt.want)
			}
			// Same-second inserts fall back to ID order.
			if runs[0].Seed != 2 {
				t.Errorf("most recent run seed = %d, want 2", runs[0].Seed)
			}
		})
	}
}

func TestDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.CreateRun("in.csv", 1, 0.8, 5)
	_ = db.RecordRejections(runID, []Rejection{{Split: "train", Index: 0, Reason: "too_short"}})
	_ = db.RecordStages(runID, []StageTransition{{Split: "train", Stage: "SPLIT", Documents: 1}})

	if _, err := db.Exec("DELETE FROM runs WHERE run_id = ?", runID); err != nil {
		t.Fatalf("delete run: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM rejections").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("rejections left after run delete = %d", n)
	}
}
