package main

import (
	"fmt"
	"io"

	"glslu/internal/observ"
)

// printTimings writes one line per phase and the wall time of the scan.
func printTimings(out io.Writer, label string, report *observ.Report) {
	if out == nil || report == nil || len(report.Phases) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", label)
	for _, p := range report.Phases {
		fmt.Fprintf(out, "  %-8s %4dx %8.2f ms", p.Name, p.Runs, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(out, "  (%s)", p.Note)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "  %-8s       %8.2f ms\n", "wall", report.TotalMS)
}
