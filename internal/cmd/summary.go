package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/harrison/organizer/internal/logger"
	"github.com/harrison/organizer/internal/organizer"
)

func isTerminal(f *os.File) bool {
	if color.NoColor {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderExtensionTable renders per-extension totals as a rounded table with
// a totals footer.
func renderExtensionTable(report *organizer.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Extension", "Copied", "Skipped", "Failed", "Size"})

	for _, t := range report.ByExtension() {
		tw.AppendRow(table.Row{
			t.Extension,
			strconv.Itoa(t.Copied),
			strconv.Itoa(t.Skipped),
			strconv.Itoa(t.Failed),
			humanize.Bytes(uint64(t.Bytes)),
		})
	}
	tw.AppendFooter(table.Row{
		"Total",
		strconv.Itoa(report.Count(organizer.StatusCopied)),
		strconv.Itoa(report.Count(organizer.StatusSkipped)),
		strconv.Itoa(report.Count(organizer.StatusFailed)),
		humanize.Bytes(uint64(report.TotalBytes())),
	})

	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignLeft}}
	for i := 2; i <= 5; i++ {
		configs = append(configs, table.ColumnConfig{
			Number:      i,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
			AlignFooter: text.AlignRight,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// printSummary writes the run summary: counts, the extension table, and any
// stage errors or failed copies.
func printSummary(w io.Writer, report *organizer.Report, enableColor bool) {
	fmt.Fprintf(w, "\nRun %s summary:\n", report.RunID)
	fmt.Fprintf(w, "  Discovered: %d\n", report.Discovered)
	fmt.Fprintf(w, "  %s\n", logger.FormatOutcomeCounts(
		report.Count(organizer.StatusCopied),
		report.Count(organizer.StatusSkipped),
		report.Count(organizer.StatusFailed),
		enableColor,
	))
	fmt.Fprintf(w, "  Duration: %s\n", report.Duration.Round(time.Millisecond))

	if len(report.Outcomes) > 0 {
		fmt.Fprintln(w, renderExtensionTable(report))
	}

	if errs := report.StageErrors(); len(errs) > 0 {
		fmt.Fprintf(w, "\nStage errors:\n")
		for _, err := range errs {
			fmt.Fprintf(w, "  - %v\n", err)
		}
	}
	if failures := report.Failures(); len(failures) > 0 {
		fmt.Fprintf(w, "\nFailed copies:\n")
		for _, o := range failures {
			fmt.Fprintf(w, "  - %v\n", o.Err)
		}
	}
}
