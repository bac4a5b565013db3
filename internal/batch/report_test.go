package batch_test

import (
	"testing"

	"folio/internal/batch"
)

func TestReduction(t *testing.T) {
	cases := []struct {
		name      string
		original  float64
		optimized float64
		want      float64
	}{
		{name: "two thirds", original: 120.00, optimized: 40.00, want: 66.7},
		{name: "unchanged", original: 10, optimized: 10, want: 0},
		{name: "grew", original: 10, optimized: 12.5, want: -25},
		{name: "zero original", original: 0, optimized: 3, want: 0},
		{name: "fully removed", original: 5, optimized: 0, want: 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := batch.Reduction(tc.original, tc.optimized); got != tc.want {
				t.Fatalf("Reduction(%v, %v) = %v, want %v", tc.original, tc.optimized, got, tc.want)
			}
		})
	}
}

func TestUnitSizeRoundsToTwoDecimals(t *testing.T) {
	if got := batch.KB.Size(122880); got != 120 {
		t.Fatalf("KB.Size(122880) = %v, want 120", got)
	}
	if got := batch.KB.Size(1500); got != 1.46 {
		t.Fatalf("KB.Size(1500) = %v, want 1.46", got)
	}
	if got := batch.MB.Size(3 * 1024 * 1024); got != 3 {
		t.Fatalf("MB.Size = %v, want 3", got)
	}
	if batch.UnitByName("MB") != batch.MB || batch.UnitByName("bogus") != batch.KB {
		t.Fatal("UnitByName did not map names to units")
	}
}

func TestItemReductionUsesRoundedSizes(t *testing.T) {
	item := batch.ItemResult{OriginalBytes: 120 * 1024, OptimizedBytes: 40 * 1024}
	if got := item.Reduction(batch.KB); got != 66.7 {
		t.Fatalf("item reduction = %v, want 66.7", got)
	}
}

func TestReportCountsAndTotals(t *testing.T) {
	report := batch.Report{Items: []batch.ItemResult{
		{Outcome: batch.OutcomeSucceeded, OriginalBytes: 100, OptimizedBytes: 40},
		{Outcome: batch.OutcomeSucceeded, OriginalBytes: 50, OptimizedBytes: 60},
		{Outcome: batch.OutcomeSkipped},
		{Outcome: batch.OutcomeFailed, OriginalBytes: 999},
	}}
	succeeded, skipped, failed := report.Counts()
	if succeeded != 2 || skipped != 1 || failed != 1 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/1", succeeded, skipped, failed)
	}
	original, optimized := report.Totals()
	if original != 150 || optimized != 100 {
		t.Fatalf("totals = %d/%d, want 150/100", original, optimized)
	}
	if saved := report.SpaceSaved(); saved != 50 {
		t.Fatalf("space saved = %d, want 50", saved)
	}
}
