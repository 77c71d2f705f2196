// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package runsummary renders an optional post-run table: one row per
// group, with element, patch, and transition counts, humanized for
// readability. Rendering is skipped on a non-terminal writer unless
// explicitly forced, since a piped consumer almost never wants a table
// mixed into its stream.
package runsummary

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
)

// GroupStats is one group's contribution to the summary table.
type GroupStats struct {
	GroupID          string
	ElementCount     int
	PatchCount       int
	TransitionCount  int
	ChartLineCount   int
	ChartSampleCount int
}

// ShouldRender reports whether w looks like a terminal, the default
// gate for printing the table at all.
func ShouldRender(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render writes a humanized summary table to w, one row per group plus
// a totals row.
func Render(w io.Writer, groups []GroupStats) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"GROUP", "ELEMENTS", "PATCHES", "TRANSITIONS", "CHART LINES", "CHART SAMPLES"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	var totalElems, totalPatches, totalTransitions, totalLines, totalSamples int
	for _, g := range groups {
		tw.Append([]string{
			g.GroupID,
			humanize.Comma(int64(g.ElementCount)),
			humanize.Comma(int64(g.PatchCount)),
			humanize.Comma(int64(g.TransitionCount)),
			humanize.Comma(int64(g.ChartLineCount)),
			humanize.Comma(int64(g.ChartSampleCount)),
		})
		totalElems += g.ElementCount
		totalPatches += g.PatchCount
		totalTransitions += g.TransitionCount
		totalLines += g.ChartLineCount
		totalSamples += g.ChartSampleCount
	}
	tw.SetFooter([]string{
		"TOTAL",
		humanize.Comma(int64(totalElems)),
		humanize.Comma(int64(totalPatches)),
		humanize.Comma(int64(totalTransitions)),
		humanize.Comma(int64(totalLines)),
		humanize.Comma(int64(totalSamples)),
	})
	tw.Render()
}

// RenderDuration prints a one-line humanized wall-clock summary below
// the table.
func RenderDuration(w io.Writer, groupCount int, elapsedMS int64) {
	fmt.Fprintf(w, "\nparsed %s in %sms\n", pluralize(int64(groupCount), "group"), humanize.Comma(elapsedMS))
}

func pluralize(n int64, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(n), noun)
}
