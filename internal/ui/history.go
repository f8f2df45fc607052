package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chriserin/pegast/internal/db"
)

// HistoryTable prints one row per run with aligned columns.
func HistoryTable(w io.Writer, runs []db.Run) {
	langWidth, outcomeWidth, sourceWidth := 0, 0, 0
	for _, r := range runs {
		langWidth = max(langWidth, len(r.Language))
		outcomeWidth = max(outcomeWidth, len(r.Outcome))
		sourceWidth = max(sourceWidth, len(r.Source))
	}

	for _, r := range runs {
		outcome := outcomeStyle(r.Outcome).Render(r.Outcome) + spaces(outcomeWidth-len(r.Outcome))
		fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			faintStyle.Render(r.ShortID()),
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			pad(r.Language, langWidth),
			outcome,
			pad(r.Source, sourceWidth),
		)
	}
}

// ShowHeader prints the stored metadata of a run.
func ShowHeader(w io.Writer, r db.Run) {
	field := func(name, value string) {
		fmt.Fprintf(w, "%s%s %s\n", labelStyle.Render(name+":"), spaces(8-len(name)), value)
	}
	field("Run", r.ID)
	field("Language", r.Language)
	field("Source", r.Source)
	field("Outcome", outcomeStyle(r.Outcome).Render(r.Outcome))
	field("Elapsed", r.Elapsed.Round(time.Microsecond).String())
	if r.Nodes > 0 {
		field("Nodes", fmt.Sprint(r.Nodes))
	}
	field("Created", r.CreatedAt.Local().Format(time.RFC3339))
	if r.Message != "" {
		field("Error", errStyle.Render(r.Message))
	}
}

// StatsTable prints run counts grouped by language.
func StatsTable(w io.Writer, counts []db.OutcomeCount) {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	fmt.Fprintf(w, "Runs: %d\n", total)

	lang := ""
	for _, c := range counts {
		if c.Language != lang {
			lang = c.Language
			fmt.Fprintf(w, "  %s\n", labelStyle.Render(lang))
		}
		fmt.Fprintf(w, "    %s: %d\n", outcomeStyle(c.Outcome).Render(c.Outcome), c.Count)
	}
}

func pad(s string, width int) string {
	return s + spaces(width-len(s))
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
