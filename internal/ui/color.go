package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	kindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	labelStyle = lipgloss.NewStyle().Bold(true)
)

func outcomeStyle(outcome string) lipgloss.Style {
	if outcome == "ok" {
		return okStyle
	}
	return errStyle
}

// OkLine reports a file that parsed cleanly.
func OkLine(w io.Writer, path string) {
	fmt.Fprintln(w, okStyle.Render("ok")+"   "+path)
}

// ErrLine reports a file that failed, with the error indented below it.
func ErrLine(w io.Writer, path string, err error) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+path)
	for line := range strings.SplitSeq(err.Error(), "\n") {
		fmt.Fprintln(w, "       "+faintStyle.Render(line))
	}
}

func SummaryLine(w io.Writer, total, failed int) {
	noun := "files"
	if total == 1 {
		noun = "file"
	}
	if failed == 0 {
		fmt.Fprintf(w, "checked %d %s\n", total, noun)
		return
	}
	fmt.Fprintf(w, "checked %d %s, %s\n", total, noun, errStyle.Render(fmt.Sprintf("%d failed", failed)))
}
