package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/keydiff/keydiff/internal/config"
)

// TestProcessBatch tests concurrent batch comparison runs.
func TestProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("processes all pairs and writes per-pair reports", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		en := writeFile(t, dir, "en.json", `{"title": "Home"}`)
		zh := writeFile(t, dir, "zh.json", `{"title": "首页"}`)
		de := writeFile(t, dir, "de.json", `{"title": "Start", "extra": true}`)

		pairs := []Pair{
			{A: en, B: zh, Output: filepath.Join(dir, "en_zh.json")},
			{A: en, B: de, Output: filepath.Join(dir, "en_de.json")},
		}

		cfg := config.NewConfig()
		factory := func() *Pipeline { return newDiffPipeline(cfg, io.Discard) }

		bp := NewBatchProcessor(factory,
			WithConcurrency(2),
			WithBatchLogger(discardLogger()),
		)

		results, err := bp.ProcessBatch(context.Background(), pairs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(pairs) {
			t.Fatalf("expected %d results, got %d", len(pairs), len(results))
		}

		for i, res := range results {
			if res.Err != nil {
				t.Errorf("pair %d failed: %v", i, res.Err)
			}
			if res.Pair != pairs[i] {
				t.Errorf("result %d out of order: got %+v", i, res.Pair)
			}
			if _, err := os.Stat(pairs[i].Output); err != nil {
				t.Errorf("missing report for pair %d: %v", i, err)
			}
		}
	})

	t.Run("records per-pair failure without aborting the batch", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		en := writeFile(t, dir, "en.json", `{"title": "Home"}`)
		zh := writeFile(t, dir, "zh.json", `{"title": "首页"}`)

		pairs := []Pair{
			{A: en, B: filepath.Join(dir, "missing.json"), Output: filepath.Join(dir, "bad.json")},
			{A: en, B: zh, Output: filepath.Join(dir, "good.json")},
		}

		cfg := config.NewConfig()
		factory := func() *Pipeline { return newDiffPipeline(cfg, io.Discard) }

		bp := NewBatchProcessor(factory, WithBatchLogger(discardLogger()))

		results, err := bp.ProcessBatch(context.Background(), pairs)
		if err != nil {
			t.Fatalf("unexpected batch error: %v", err)
		}

		if results[0].Err == nil {
			t.Error("expected error for pair with missing input")
		}
		if results[1].Err != nil {
			t.Errorf("expected second pair to succeed: %v", results[1].Err)
		}
		if _, err := os.Stat(pairs[1].Output); err != nil {
			t.Errorf("missing report for succeeding pair: %v", err)
		}
	})

	t.Run("empty batch returns no results", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		factory := func() *Pipeline { return newDiffPipeline(cfg, io.Discard) }

		bp := NewBatchProcessor(factory, WithBatchLogger(discardLogger()))

		results, err := bp.ProcessBatch(context.Background(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})
}
