// =============================================================================
// XML to XLSX Converter - Value Coercion
// =============================================================================
//
// This module converts the raw string values found in XML documents into the
// typed values written to spreadsheet cells.
//
// COERCION RULES:
//   - Generic cells: numbers become numbers, everything else stays text.
//   - Sold item amounts: always numeric, defaulting to zero.
//   - Dates: ISO-8601 values are reformatted for display.
//
// Every function here is best-effort. A value that cannot be converted is
// returned unchanged (or as the documented default); nothing returns an error.
//
// =============================================================================

package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout is the display format of coerced dates.
const DateLayout = "2006-01-02 15:04"

// isoLayouts are tried in order when parsing a date.
//
// CUSTOMIZATION: Add more layouts here if the source system changes format.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// =============================================================================
// CELL VALUES
// =============================================================================

// Cell converts a flattened row value into a spreadsheet cell value.
//
// RULES:
//   - "" stays "" (an empty cell, never zero).
//   - A value containing "." is parsed as a float64.
//   - Any other value is parsed as an int64.
//   - If parsing fails, or the result is not finite, the original string is
//     returned verbatim.
//
// EXAMPLE:
//
//	Cell("42")    -> int64(42)
//	Cell("9.99")  -> float64(9.99)
//	Cell("00123") -> int64(123)
//	Cell("A-17")  -> "A-17"
//	Cell("1e5")   -> "1e5"
func Cell(value string) any {
	s := strings.TrimSpace(value)
	if s == "" {
		return value
	}

	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return value
		}
		return f
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return value
	}
	return n
}

// Number parses a sold item amount. Empty or unparseable values yield 0.
func Number(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// NumberOr parses value as a float64 and falls back to def when it cannot.
func NumberOr(value string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) {
		return def
	}
	return f
}

// =============================================================================
// DATES
// =============================================================================

// Date reformats an ISO-8601 timestamp as DateLayout. A trailing "Z" is
// accepted. The wall clock of the value is kept; no zone conversion happens.
// Values that do not parse are returned unchanged.
//
// EXAMPLE:
//
//	Date("2024-03-05T14:30:00Z")      -> "2024-03-05 14:30"
//	Date("2024-03-05T14:30:00-05:00") -> "2024-03-05 14:30"
//	Date("2024-03-05")                -> "2024-03-05 00:00"
//	Date("yesterday")                 -> "yesterday"
func Date(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return value
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return value
}

// =============================================================================
// DISPLAY
// =============================================================================

var printer = message.NewPrinter(language.English)

// Currency formats an amount for console output, e.g. "$1,234.50".
func Currency(amount float64) string {
	if amount < 0 {
		return printer.Sprintf("-$%.2f", -amount)
	}
	return printer.Sprintf("$%.2f", amount)
}
