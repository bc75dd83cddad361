package cmd

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"time"

	"comics-etl/core/dataset"
	"comics-etl/feature/pipeline"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// topDiscrepancies is how many rows the run summary prints.
const topDiscrepancies = 10

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// renderStages prints one line per executed stage.
func renderStages(w io.Writer, stages []pipeline.StageResult) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Stage", "Rows", "Files", "Duration", "Status"})
	for _, s := range stages {
		status := text.FgGreen.Sprint("ok")
		if s.Err != nil {
			status = text.FgRed.Sprint("failed")
		}
		t.AppendRow(table.Row{s.Stage, s.Rows, s.Files, s.Duration.Round(time.Millisecond), status})
	}
	t.Render()
}

// renderReport prints the stage table, the aggregation counts and the largest discrepancies.
func renderReport(w io.Writer, r *pipeline.Report) {
	renderStages(w, r.Stages)
	if r.Summary == nil {
		return
	}

	s := newTable(w)
	s.SetTitle("Run " + r.RunID)
	s.AppendRows([]table.Row{
		{"Characters", r.Summary.Characters},
		{"Comic rows", r.Summary.ComicRows},
		{"Joined rows", r.Summary.Joined},
		{"Groups", r.Summary.Groups},
		{"Discrepancies", r.Summary.Discrepancies},
		{"Overcounted", r.Summary.Overcounted},
	})
	s.Render()

	renderDiscrepancies(w, r.Discrepancies, topDiscrepancies)
}

// renderDiscrepancies prints at most limit rows, largest difference first.
func renderDiscrepancies(w io.Writer, rows []dataset.ResultRow, limit int) {
	if len(rows) == 0 {
		return
	}

	sorted := slices.Clone(rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Difference > sorted[j].Difference
	})
	shown := sorted
	if len(shown) > limit {
		shown = shown[:limit]
	}

	t := newTable(w)
	t.SetTitle("Discrepancies")
	t.AppendHeader(table.Row{"Name", "Character ID", "Comics Count", "Count Calculated", "Difference"})
	for _, r := range shown {
		t.AppendRow(table.Row{r.Name, r.CharacterID, r.ComicsCount, r.CountCalculated, r.Difference})
	}
	if len(shown) < len(rows) {
		t.AppendFooter(table.Row{"", "", "", "Shown", fmt.Sprintf("%d of %d", len(shown), len(rows))})
	}
	t.Render()
}
