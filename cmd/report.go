package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/coerce"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/converter"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/sales"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/xlsxwriter"
)

// Color palette, matching the workbook header colors.
var (
	colorPrimary = lipgloss.Color("#4472C4")
	colorSuccess = lipgloss.Color("#2E7D32")
	colorError   = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("245")
)

const ruleWidth = 50

// reporter prints the console report of a run. Styling is applied only when
// the output is an interactive terminal.
type reporter struct {
	w      io.Writer
	styled bool

	title   lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	muted   lipgloss.Style
	summary lipgloss.Style
}

func newReporter(w io.Writer) *reporter {
	r := lipgloss.NewRenderer(w)
	return &reporter{
		w:       w,
		styled:  isTerminal(w),
		title:   r.NewStyle().Bold(true).Foreground(colorPrimary),
		ok:      r.NewStyle().Foreground(colorSuccess),
		failed:  r.NewStyle().Foreground(colorError),
		muted:   r.NewStyle().Foreground(colorMuted),
		summary: r.NewStyle().Bold(true).Foreground(colorSuccess).Border(lipgloss.RoundedBorder()).BorderForeground(colorSuccess).Padding(0, 1),
	}
}

// isTerminal reports whether w is a terminal and color is not disabled.
func isTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *reporter) render(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r *reporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *reporter) rule(ch string) {
	r.printf("%s\n", r.render(r.muted, strings.Repeat(ch, ruleWidth)))
}

// Banner prints the program header.
func (r *reporter) Banner() {
	r.rule("=")
	r.printf("%s\n", r.render(r.title, "XLCut - XML to Excel Converter"))
	r.rule("=")
}

// NoInput prints where to put input files.
func (r *reporter) NoInput(sourceDir, outputDir string) {
	r.printf("\nNo XML files found in: %s\n", sourceDir)
	r.printf("\nTo use:\n")
	r.printf("  1. Put your XML files in: %s\n", sourceDir)
	r.printf("  2. Run this command again\n")
	r.printf("  3. Find your Excel file in: %s\n", outputDir)
}

// Found prints the number of input files.
func (r *reporter) Found(n int) {
	r.printf("\nFound %d XML file(s) in source folder\n", n)
	r.rule("-")
}

// Files prints one line per processed document.
func (r *reporter) Files(results []converter.Result) {
	for _, res := range results {
		switch {
		case !res.Success:
			r.printf("  %s %s: Error - %v\n", r.render(r.failed, "✗"), res.Name(), res.Error)
		case res.Skipped:
			r.printf("  %s %s: No data found, skipping\n", r.render(r.muted, "-"), res.Name())
		default:
			r.printf("  %s %s: %d records, %d items sold\n",
				r.render(r.ok, "✓"), res.Name(), res.Stats.Records, res.Stats.Items)
		}
	}
}

// Items prints the sold items summary.
func (r *reporter) Items(s sales.Summary) {
	if s.Items == 0 {
		return
	}
	r.rule("-")
	line := fmt.Sprintf("*** ITEMS SOLD: %d items, %s total ***", s.Items, coerce.Currency(s.Total))
	r.printf("\n%s\n", r.render(r.summary, line))
}

// Sheets prints the sheets of the written workbook.
func (r *reporter) Sheets(stats xlsxwriter.Stats) {
	r.printf("\nSheets:\n")
	for _, s := range stats.Sheets {
		r.printf("  %s: %d rows, %d columns\n", s.Name, s.Rows, s.Columns)
	}
}

// Done prints the closing summary.
func (r *reporter) Done(output string, batch converter.BatchResult, elapsed time.Duration, dryRun bool) {
	r.printf("\n%s\n", r.render(r.title, "=== Processing Complete ==="))
	r.printf("Total files:     %d\n", len(batch.Results))
	r.printf("Successful:      %d\n", len(batch.Succeeded()))
	r.printf("Errors:          %d\n", len(batch.Failed()))
	r.printf("Time elapsed:    %s\n", elapsed.Round(time.Millisecond))

	if dryRun {
		r.printf("\nDry run: %s was not written\n", output)
	} else {
		r.printf("\nOutput: %s\n", output)
	}
	r.printf("\nDone!\n")
}

// ErrorLog notes where failures were recorded.
func (r *reporter) ErrorLog(path string) {
	r.printf("\nErrors have been logged to: %s\n", path)
}
