// Package ui renders formatting results for the terminal: colored OK/ERROR
// indicator lines, a run summary, and an optional live progress display for
// large packages.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Printer renders the per-file and per-package indicator lines. Color is
// decided once at construction (auto|on|off against a terminal check) and
// applied consistently for the whole run.
type Printer struct {
	ok   *color.Color
	fail *color.Color
}

// NewPrinter builds a printer with colors enabled or disabled.
func NewPrinter(colorEnabled bool) *Printer {
	ok := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	if colorEnabled {
		ok.EnableColor()
		fail.EnableColor()
	} else {
		ok.DisableColor()
		fail.DisableColor()
	}
	return &Printer{ok: ok, fail: fail}
}

// OK returns the success indicator.
func (p *Printer) OK() string { return p.ok.Sprint("[OK]") }

// Error returns the failure indicator.
func (p *Printer) Error() string { return p.fail.Sprint("[ERROR]") }

// OKLine renders an "[OK] path" line.
func (p *Printer) OKLine(path string) string {
	return fmt.Sprintf("%s %s", p.OK(), path)
}

// ErrorLine renders an "[ERROR] message" line.
func (p *Printer) ErrorLine(msg string) string {
	return fmt.Sprintf("%s %s", p.Error(), msg)
}

var summaryStyle = lipgloss.NewStyle().Bold(true)

// Summary renders the end-of-run line: package and file totals with the
// failure count when nonzero.
func (p *Printer) Summary(packages, files, failures int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s, %d %s formatted",
		packages, plural(packages, "package"), files, plural(files, "file"))
	if failures > 0 {
		fmt.Fprintf(&sb, ", %d %s", failures, plural(failures, "error"))
	}
	return summaryStyle.Render(sb.String())
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
