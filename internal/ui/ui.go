// Package ui provides stderr-based output for the voyager CLI: styled
// status lines, per-frame trajectory lines, and the end-of-run summary.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/astrogator/voyager/internal/world"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleGood    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	styleBad     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleSummary = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Printer writes human-readable output to stderr, keeping stdout free for
// machine-readable results.
type Printer struct{}

// New creates a Printer.
func New() *Printer { return &Printer{} }

// Info prints a dim informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(os.Stderr, styleDim.Render(msg))
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(os.Stderr, styleBad.Render("error: ")+msg)
}

// WorldLoaded announces the loaded universe.
func (p *Printer) WorldLoaded(name string, bodies, wormholes, artifacts, k int) {
	fmt.Fprintf(os.Stderr, "%s %s\n",
		styleTitle.Render("world"),
		fmt.Sprintf("%s — %d bodies, %d wormholes, %d artifacts, target k=%d",
			name, bodies, wormholes, artifacts, k))
}

// Solved announces a successful search.
func (p *Printer) Solved(steps int, cost float64, expanded int, elapsed time.Duration) {
	fmt.Fprintf(os.Stderr, "%s path of %d steps, cost %.3f — %s states expanded in %s\n",
		styleGood.Render("✓ solved"),
		steps, cost,
		humanize.Comma(int64(expanded)),
		elapsed.Round(time.Millisecond))
}

// Failed announces an exhausted search.
func (p *Printer) Failed(err error, elapsed time.Duration) {
	fmt.Fprintf(os.Stderr, "%s %v (%s)\n", styleBad.Render("✗ failed"), err, elapsed.Round(time.Millisecond))
}

// Recorded reports the archived run id.
func (p *Printer) Recorded(runID string) {
	fmt.Fprintf(os.Stderr, "%s run %s\n", styleDim.Render("archived"), runID)
}

// FrameLine renders one trajectory step as a single line.
func FrameLine(step int, f world.Frame) string {
	collected := "-"
	if len(f.Ship.Collected) > 0 {
		ids := make([]string, len(f.Ship.Collected))
		for i, id := range f.Ship.Collected {
			ids[i] = fmt.Sprintf("%d", id)
		}
		collected = strings.Join(ids, ",")
	}
	return fmt.Sprintf("step %3d  t_u %8.3f  t_p %8.3f  x(%9.3f, %9.3f)  v(%8.3f, %8.3f)  fuel %7.3f  artifacts [%s]",
		step, f.TU, f.Ship.TProper,
		f.Ship.X[0], f.Ship.X[1],
		f.Ship.V[0], f.Ship.V[1],
		f.Ship.Fuel, collected)
}

// Frame prints one trajectory step.
func (p *Printer) Frame(step int, f world.Frame) {
	fmt.Fprintln(os.Stderr, FrameLine(step, f))
}

// SummaryData carries the figures for the end-of-run panel.
type SummaryData struct {
	World     string
	K         int
	Steps     int
	TotalCost float64
	Expanded  int
	Collected int
	FuelLeft  float64
	Elapsed   time.Duration
}

// Summary renders the end-of-run panel.
func Summary(d SummaryData) string {
	lines := []string{
		styleTitle.Render("voyager run summary"),
		fmt.Sprintf("world:      %s", d.World),
		fmt.Sprintf("artifacts:  %d collected (target %d)", d.Collected, d.K),
		fmt.Sprintf("path:       %d steps, total cost %.3f", d.Steps, d.TotalCost),
		fmt.Sprintf("search:     %s states expanded", humanize.Comma(int64(d.Expanded))),
		fmt.Sprintf("fuel left:  %.3f", d.FuelLeft),
		fmt.Sprintf("elapsed:    %s", d.Elapsed.Round(time.Millisecond)),
	}
	return styleSummary.Render(strings.Join(lines, "\n"))
}

// Summary prints the end-of-run panel.
func (p *Printer) Summary(d SummaryData) {
	fmt.Fprintln(os.Stderr, Summary(d))
}

// WatchTriggered announces a watch-mode rerun.
func (p *Printer) WatchTriggered(path string) {
	fmt.Fprintln(os.Stderr, styleWarn.Render("world file changed — rerunning: ")+path)
}
