// Package report turns strategy results into the plain text lines printed by
// the CLI and times strategy invocations.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/montyhall/internal/door"
	"github.com/Iron-Ham/montyhall/internal/strategy"
)

// Summary formats a result as
//
//	<trials> trials | <strategy> win: <wins> cars, probability: <pct>%
//
// with the probability expressed as a percentage with two decimals.
func Summary(res strategy.Result) string {
	return fmt.Sprintf("%d trials | %s win: %d cars, probability: %.2f%%",
		res.Trials, res.Strategy, res.Wins, Percent(res.Probability))
}

// Percent converts a probability in [0, 1] to a percentage.
func Percent(p float64) float64 {
	return 100 * p
}

// Time runs fn and returns its result together with the wall-clock time it took.
// The measurement has no effect on fn.
func Time[T any](fn func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	v, err := fn()
	return v, time.Since(start), err
}

// Reporter writes summaries to an output stream.
//
// Styles are rendered through a lipgloss renderer bound to the writer, so
// color is only emitted when the writer is a terminal.
type Reporter struct {
	out        io.Writer
	showTiming bool
	muted      lipgloss.Style
	header     lipgloss.Style
	note       lipgloss.Style
}

// New creates a Reporter writing to out. When showTiming is false, Elapsed
// lines are suppressed.
func New(out io.Writer, showTiming bool) *Reporter {
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out:        out,
		showTiming: showTiming,
		muted:      r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		header:     r.NewStyle().Bold(true),
		note:       r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	}
}

// Run times one strategy invocation, reports the elapsed time under label,
// and returns the strategy's result.
func (r *Reporter) Run(label string, fn func() (strategy.Result, error)) (strategy.Result, error) {
	res, elapsed, err := Time(fn)
	if err != nil {
		return res, err
	}
	r.Elapsed(label, elapsed)
	return res, nil
}

// Elapsed prints an indented timing line, e.g. "\toriginal: 0.42 sec".
func (r *Reporter) Elapsed(label string, d time.Duration) {
	if !r.showTiming {
		return
	}
	fmt.Fprintf(r.out, "\t%s\n", r.muted.Render(fmt.Sprintf("%s: %.2f sec", label, d.Seconds())))
}

// Result prints the summary line for res.
func (r *Reporter) Result(res strategy.Result) {
	fmt.Fprintln(r.out, Summary(res))
}

// Note prints an informational line.
func (r *Reporter) Note(msg string) {
	fmt.Fprintln(r.out, r.note.Render(msg))
}

// Header prints a bold heading describing the pool under test.
func (r *Reporter) Header(pool door.Pool) {
	fmt.Fprintln(r.out, r.header.Render(pool.String()))
}

// Sweep prints one summary per elimination count.
func (r *Reporter) Sweep(results []strategy.Result) {
	for _, res := range results {
		fmt.Fprintf(r.out, "%s %s\n", Summary(res), r.muted.Render(fmt.Sprintf("[%d opened]", res.Eliminations)))
	}
}
