package main

import (
	"testing"

	"github.com/keydiff/keydiff/internal/model"
)

// TestFormatRunSummary tests the history listing result column.
func TestFormatRunSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		summary model.Summary
		want    string
	}{
		{
			name:    "in sync",
			summary: model.Summary{Identical: 5},
			want:    "in sync",
		},
		{
			name:    "empty documents",
			summary: model.Summary{},
			want:    "in sync",
		},
		{
			name:    "all partitions populated",
			summary: model.Summary{OnlyInA: 2, OnlyInB: 1, Differing: 3, Identical: 4},
			want:    "-2 +1 ~3 =4",
		},
		{
			name:    "only differing values",
			summary: model.Summary{Differing: 1, Identical: 9},
			want:    "~1 =9",
		},
		{
			name:    "nothing identical",
			summary: model.Summary{OnlyInA: 1, OnlyInB: 1},
			want:    "-1 +1 =0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatRunSummary(tt.summary); got != tt.want {
				t.Errorf("formatRunSummary(%+v) = %q, want %q", tt.summary, got, tt.want)
			}
		})
	}
}

// TestNewHistoryCmd tests command metadata.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()
	if cmd.Name() != "history" {
		t.Errorf("Name() = %q, want history", cmd.Name())
	}
	for _, name := range []string{"list", "show"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag %q", name)
		}
	}
}
