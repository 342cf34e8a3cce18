package database

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/keydiff/keydiff/internal/model"
)

// openTestDB opens a HistoryDB in a temporary directory.
func openTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

// testReport returns a report for storage tests.
func testReport() *model.ComparisonReport {
	return &model.ComparisonReport{
		LabelA:  "en.json",
		LabelB:  "zh.json",
		OnlyInA: []string{"menu.file"},
		Differing: []model.DifferingValue{
			{Key: "title", ValueA: "Home", ValueB: "首页"},
		},
		Identical: []string{"footer.year"},
	}
}

// TestOpen tests database creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database file and directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "data")
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dir, "keydiff.db")); err != nil {
			t.Errorf("expected database file to exist: %v", err)
		}
	})

	t.Run("refuses missing database without create option", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false, EnableWAL: true}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected error for missing database")
		}
	})
}

// TestSaveAndListComparisons tests the save/list round trip.
func TestSaveAndListComparisons(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	id1, err := db.SaveComparison(ctx, testReport(), "data/en.json", "data/zh.json")
	if err != nil {
		t.Fatalf("failed to save comparison: %v", err)
	}
	if id1 <= 0 {
		t.Errorf("expected positive ID, got %d", id1)
	}

	id2, err := db.SaveComparison(ctx, testReport(), "a.yaml", "b.yaml")
	if err != nil {
		t.Fatalf("failed to save second comparison: %v", err)
	}
	if id2 == id1 {
		t.Errorf("expected distinct IDs, both are %d", id1)
	}

	runs, err := db.ListComparisons(ctx)
	if err != nil {
		t.Fatalf("failed to list comparisons: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	// Newest first.
	if runs[0].ID != id2 {
		t.Errorf("expected newest run first, got ID %d", runs[0].ID)
	}
	if runs[1].FileA != "data/en.json" || runs[1].FileB != "data/zh.json" {
		t.Errorf("unexpected file paths: %+v", runs[1])
	}

	want := testReport().Summary()
	if runs[1].Summary != want {
		t.Errorf("Summary = %+v, want %+v", runs[1].Summary, want)
	}
	if runs[1].Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

// TestGetReportJSON tests retrieval of stored reports.
func TestGetReportJSON(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.SaveComparison(ctx, testReport(), "en.json", "zh.json")
	if err != nil {
		t.Fatalf("failed to save comparison: %v", err)
	}

	t.Run("returns the serialized report", func(t *testing.T) {
		data, err := db.GetReportJSON(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded map[string]json.RawMessage
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("stored report is not valid JSON: %v", err)
		}
		if _, ok := decoded["only_in_en.json"]; !ok {
			t.Errorf("expected dynamic field in stored report: %s", data)
		}
	})

	t.Run("unknown ID returns ErrRunNotFound", func(t *testing.T) {
		_, err := db.GetReportJSON(ctx, id+999)
		if !errors.Is(err, ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})
}

// TestListComparisonsEmpty tests listing on a fresh database.
func TestListComparisonsEmpty(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	runs, err := db.ListComparisons(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
