// Package tui renders run summaries and the interactive record preview.
package tui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/crmclean/internal/contact"
)

// Summary describes one completed clean run.
type Summary struct {
	Input   string
	Output  string
	Format  string
	Lines   int
	Records int
	Skipped []contact.Skip
	Verbose bool // List every skipped line, not just the per-reason counts.
}

// Display renders a run summary.
type Display interface {
	Render(s Summary)
	Warn(format string, args ...any)
}

// Verify at compile time that both displays implement Display.
var (
	_ Display = (*PlainDisplay)(nil)
	_ Display = (*StyledDisplay)(nil)
)

// DisplayOptions configures display creation.
type DisplayOptions struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
}

// NewDisplay returns a styled display when the writer is a TTY, or a plain
// text display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.ForcePlain || !isTTY(opts.Writer) {
		return &PlainDisplay{w: opts.Writer}
	}

	return &StyledDisplay{w: opts.Writer, r: lipgloss.NewRenderer(opts.Writer)}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// reasonCount pairs a skip reason with how many lines it excluded.
type reasonCount struct {
	reason contact.SkipReason
	n      int
}

// countReasons tallies skips by reason in a stable order.
func countReasons(skips []contact.Skip) []reasonCount {
	counts := make(map[contact.SkipReason]int)
	for _, s := range skips {
		counts[s.Reason]++
	}
	out := make([]reasonCount, 0, len(counts))
	for reason, n := range counts {
		out = append(out, reasonCount{reason: reason, n: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].reason < out[j].reason })
	return out
}

func reasonLabel(r contact.SkipReason) string {
	return strings.ReplaceAll(string(r), "_", " ")
}

// PlainDisplay renders summaries as plain text lines.
type PlainDisplay struct {
	w io.Writer
}

// Render prints the summary.
func (d *PlainDisplay) Render(s Summary) {
	_, _ = fmt.Fprintf(d.w, "Cleaned %d of %d lines from %s\n", s.Records, s.Lines, s.Input)
	for _, rc := range countReasons(s.Skipped) {
		_, _ = fmt.Fprintf(d.w, "  skipped %d: %s\n", rc.n, reasonLabel(rc.reason))
	}
	if s.Verbose {
		for _, sk := range s.Skipped {
			_, _ = fmt.Fprintf(d.w, "    line %d (%s): %s\n", sk.Line, reasonLabel(sk.Reason), sk.Text)
		}
	}
	if s.Output != "" {
		_, _ = fmt.Fprintf(d.w, "Wrote %s (%s)\n", s.Output, s.Format)
	}
}

// Warn prints a warning line.
func (d *PlainDisplay) Warn(format string, args ...any) {
	_, _ = fmt.Fprintf(d.w, "warning: "+format+"\n", args...)
}

// StyledDisplay renders summaries with lipgloss colors for terminals.
type StyledDisplay struct {
	w io.Writer
	r *lipgloss.Renderer
}

func (d *StyledDisplay) style(light, dark string) lipgloss.Style {
	return d.r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
}

// Render prints the summary with colored counts.
func (d *StyledDisplay) Render(s Summary) {
	ok := d.style("2", "10").Bold(true)
	dim := d.style("240", "245")
	skip := d.style("3", "11")

	_, _ = fmt.Fprintf(d.w, "%s %s of %d lines from %s\n",
		ok.Render("✓ Cleaned"), ok.Render(fmt.Sprint(s.Records)), s.Lines, s.Input)
	for _, rc := range countReasons(s.Skipped) {
		_, _ = fmt.Fprintf(d.w, "  %s %s\n", skip.Render(fmt.Sprintf("– skipped %d:", rc.n)), reasonLabel(rc.reason))
	}
	if s.Verbose {
		for _, sk := range s.Skipped {
			_, _ = fmt.Fprintln(d.w, dim.Render(fmt.Sprintf("    line %d (%s): %s", sk.Line, reasonLabel(sk.Reason), sk.Text)))
		}
	}
	if s.Output != "" {
		_, _ = fmt.Fprintf(d.w, "%s %s %s\n", ok.Render("→"), s.Output, dim.Render("("+s.Format+")"))
	}
}

// Warn prints a highlighted warning line.
func (d *StyledDisplay) Warn(format string, args ...any) {
	label := d.style("1", "9").Bold(true).Render("warning:")
	_, _ = fmt.Fprintf(d.w, "%s %s\n", label, fmt.Sprintf(format, args...))
}
