package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"folio/internal/batch"
)

var titleCaser = cases.Title(language.English)

func outcomeLabel(outcome batch.Outcome) string {
	return titleCaser.String(string(outcome))
}

func formatUnitSize(u batch.Unit, bytes int64) string {
	return fmt.Sprintf("%.2f %s", u.Size(bytes), u.Name)
}

func formatReduction(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

func renderReport(report batch.Report) string {
	unit := report.Unit
	rows := make([][]string, 0, len(report.Items))
	for _, item := range report.Items {
		row := []string{item.Name, outcomeLabel(item.Outcome), "-", "-", "-"}
		if item.Outcome != batch.OutcomeSkipped {
			row[2] = formatUnitSize(unit, item.OriginalBytes)
		}
		if item.Outcome == batch.OutcomeSucceeded {
			row[3] = formatUnitSize(unit, item.OptimizedBytes)
			row[4] = formatReduction(item.Reduction(unit))
		}
		rows = append(rows, row)
	}

	original, optimized := report.Totals()
	footer := []string{"Total", "", formatUnitSize(unit, original), formatUnitSize(unit, optimized), "-"}
	if original > 0 {
		footer[4] = formatReduction(batch.Reduction(unit.Size(original), unit.Size(optimized)))
	}

	var b strings.Builder
	b.WriteString(renderTable(tableSpec{
		headers: []string{"File", "Outcome", "Original", "Optimized", "Reduction"},
		rows:    rows,
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
		footer:  footer,
	}))
	b.WriteString("\n")

	succeeded, skipped, failed := report.Counts()
	fmt.Fprintf(&b, "%d succeeded, %d skipped, %d failed in %s", succeeded, skipped, failed,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	if saved := report.SpaceSaved(); saved > 0 {
		fmt.Fprintf(&b, "; saved %s", humanize.IBytes(uint64(saved)))
	}
	if report.Interrupted {
		b.WriteString(" (interrupted)")
	}
	fmt.Fprintf(&b, "\nOutputs: %s", report.OutputDir)
	return b.String()
}

type itemView struct {
	Name           string  `json:"name"`
	Outcome        string  `json:"outcome"`
	Source         string  `json:"source"`
	Output         string  `json:"output,omitempty"`
	OriginalBytes  int64   `json:"original_bytes"`
	OptimizedBytes int64   `json:"optimized_bytes"`
	OriginalSize   float64 `json:"original_size"`
	OptimizedSize  float64 `json:"optimized_size"`
	Unit           string  `json:"unit"`
	ReductionPct   float64 `json:"reduction_pct"`
	Error          string  `json:"error,omitempty"`
	DurationMS     int64   `json:"duration_ms"`
}

type reportView struct {
	RunID       string     `json:"run_id"`
	Kind        string     `json:"kind"`
	InputDir    string     `json:"input_dir"`
	OutputDir   string     `json:"output_dir"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  time.Time  `json:"finished_at"`
	Interrupted bool       `json:"interrupted"`
	Succeeded   int        `json:"succeeded"`
	Skipped     int        `json:"skipped"`
	Failed      int        `json:"failed"`
	Items       []itemView `json:"items"`
}

func newReportView(report batch.Report) reportView {
	view := reportView{
		RunID:       report.RunID,
		Kind:        string(report.Kind),
		InputDir:    report.InputDir,
		OutputDir:   report.OutputDir,
		StartedAt:   report.StartedAt,
		FinishedAt:  report.FinishedAt,
		Interrupted: report.Interrupted,
		Items:       make([]itemView, 0, len(report.Items)),
	}
	view.Succeeded, view.Skipped, view.Failed = report.Counts()
	unit := report.Unit
	for _, item := range report.Items {
		iv := itemView{
			Name:           item.Name,
			Outcome:        string(item.Outcome),
			Source:         item.Source,
			OriginalBytes:  item.OriginalBytes,
			OptimizedBytes: item.OptimizedBytes,
			OriginalSize:   unit.Size(item.OriginalBytes),
			OptimizedSize:  unit.Size(item.OptimizedBytes),
			Unit:           unit.Name,
			Error:          item.Error,
			DurationMS:     item.Duration.Milliseconds(),
		}
		if item.Outcome == batch.OutcomeSucceeded {
			iv.Output = item.Output
			iv.ReductionPct = item.Reduction(unit)
		}
		view.Items = append(view.Items, iv)
	}
	return view
}
