// =============================================================================
// XML to XLSX Converter - XLSX Writer Module
// =============================================================================
//
// This module is responsible for generating the output workbook from the
// grouped rows and the extracted sold items.
//
// WORKBOOK LAYOUT:
//
//   [Items Sold] [data] [refund] [sale] ...
//    ^ only when items exist
//                ^ one sheet per row group, in group order
//
//   Every sheet has one header row followed by one row per record. Header
//   cells are bold white on a colored band (blue for data sheets, green for
//   the items sheet), data rows alternate with a light fill, and every cell
//   gets a thin border.
//
// CELL VALUES:
//   - Data sheets: numeric-looking values are written as numbers (see
//     coerce.Cell). The source-file column is always text.
//   - Items sheet: Quantity, Unit Price and Total are always numbers; Unit
//     Price and Total use a currency format. Dates are reformatted.
//
// CUSTOMIZATION:
//   - Colors and formats are constants below.
//   - Sheet order and naming live in Build and sheetNamer.
//
// =============================================================================

package xlsxwriter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/coerce"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/types"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	dataHeaderColor  = "4472C4"
	dataAltColor     = "E9EDF4"
	itemsHeaderColor = "2E7D32"
	itemsAltColor    = "E8F5E9"
	borderColor      = "000000"
	currencyFormat   = "$#,##0.00"
)

// ErrEmptyWorkbook is returned when there is neither a group nor an item to
// write.
var ErrEmptyWorkbook = errors.New("nothing to write")

// =============================================================================
// OPTIONS
// =============================================================================

// Options contains options for workbook generation.
type Options struct {
	// ItemsSheet is the name of the sold items sheet.
	// Default: "Items Sold"
	ItemsSheet string

	// MaxWidth caps the computed column width.
	// Default: 50
	MaxWidth int

	// WidthSampleRows is how many data rows are measured per column.
	// Default: 100
	WidthSampleRows int
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		ItemsSheet:      "Items Sold",
		MaxWidth:        50,
		WidthSampleRows: 100,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ItemsSheet == "" {
		o.ItemsSheet = d.ItemsSheet
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = d.MaxWidth
	}
	if o.WidthSampleRows <= 0 {
		o.WidthSampleRows = d.WidthSampleRows
	}
	return o
}

// =============================================================================
// STATISTICS
// =============================================================================

// SheetStats describes one written sheet.
type SheetStats struct {
	// Name is the final sheet name in the workbook.
	Name string

	// Group is the row group written to the sheet, or "" for the items sheet.
	Group string

	// Rows is the number of data rows (header excluded).
	Rows int

	// Columns is the number of columns.
	Columns int
}

// Stats describes a generated workbook.
type Stats struct {
	// Sheets lists the sheets in workbook order.
	Sheets []SheetStats

	// Items is the number of rows on the items sheet.
	Items int
}

// =============================================================================
// WORKBOOK GENERATION
// =============================================================================

// Write builds the workbook and saves it to path, creating the parent
// directory when needed.
//
// PARAMETERS:
//   - path: Output file path (.xlsx).
//   - groups: Row groups in output order.
//   - items: Sold items in output order.
//   - opts: Generation options. Zero fields take their defaults.
//
// RETURNS:
//   - Statistics about the written sheets.
//   - ErrEmptyWorkbook if groups and items are both empty.
//   - An error if the workbook cannot be built or saved.
func Write(path string, groups []types.Group, items []types.SoldItem, opts Options) (Stats, error) {
	f, stats, err := Build(groups, items, opts)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Stats{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return Stats{}, fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return stats, nil
}

// Build creates the workbook in memory. The caller owns the returned file and
// must close it.
func Build(groups []types.Group, items []types.SoldItem, opts Options) (*excelize.File, Stats, error) {
	if len(groups) == 0 && len(items) == 0 {
		return nil, Stats{}, ErrEmptyWorkbook
	}
	opts = opts.withDefaults()

	f := excelize.NewFile()
	w := &workbook{file: f, opts: opts, names: newSheetNamer(), unused: f.GetSheetName(0)}

	var stats Stats

	if len(items) > 0 {
		sheet, err := w.writeItems(items)
		if err != nil {
			f.Close()
			return nil, Stats{}, err
		}
		stats.Sheets = append(stats.Sheets, sheet)
		stats.Items = len(items)
	}

	for _, g := range groups {
		sheet, err := w.writeGroup(g)
		if err != nil {
			f.Close()
			return nil, Stats{}, err
		}
		stats.Sheets = append(stats.Sheets, sheet)
	}

	f.SetActiveSheet(0)
	return f, stats, nil
}

// workbook carries the state shared while writing the sheets of one file.
type workbook struct {
	file  *excelize.File
	opts  Options
	names *sheetNamer

	// unused is the default sheet created with the file, until it is claimed.
	unused string
}

// addSheet claims the default sheet on first use and creates a new sheet
// afterwards. It returns the final sheet name.
func (w *workbook) addSheet(want string) (string, error) {
	name := w.names.Next(want)

	if w.unused != "" {
		if err := w.file.SetSheetName(w.unused, name); err != nil {
			return "", fmt.Errorf("failed to rename sheet to %q: %w", name, err)
		}
		w.unused = ""
		return name, nil
	}

	if _, err := w.file.NewSheet(name); err != nil {
		return "", fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	return name, nil
}

// writeGroup writes one row group to its own sheet.
func (w *workbook) writeGroup(g types.Group) (SheetStats, error) {
	sheet, err := w.addSheet(g.Name)
	if err != nil {
		return SheetStats{}, err
	}

	styles, err := newSheetStyles(w.file, dataHeaderColor, dataAltColor)
	if err != nil {
		return SheetStats{}, err
	}

	if err := writeHeader(w.file, sheet, g.Columns, styles.header); err != nil {
		return SheetStats{}, err
	}

	for i := range g.Rows {
		values := make([]any, len(g.Columns))
		for c, col := range g.Columns {
			if g.SourceColumn != "" && col == g.SourceColumn {
				values[c] = g.Rows[i].Source
				continue
			}
			values[c] = coerce.Cell(g.Cell(i, col))
		}
		if err := writeRow(w.file, sheet, i+2, values); err != nil {
			return SheetStats{}, err
		}
		if err := styleRow(w.file, sheet, i+2, len(g.Columns), styles.body(i+2)); err != nil {
			return SheetStats{}, err
		}
	}

	widths := make([]int, len(g.Columns))
	for c, col := range g.Columns {
		widths[c] = w.columnWidth(col, len(g.Rows), func(i int) string { return g.Cell(i, col) })
	}
	if err := setWidths(w.file, sheet, widths); err != nil {
		return SheetStats{}, err
	}

	return SheetStats{Name: sheet, Group: g.Name, Rows: len(g.Rows), Columns: len(g.Columns)}, nil
}

// writeItems writes the sold items sheet.
func (w *workbook) writeItems(items []types.SoldItem) (SheetStats, error) {
	sheet, err := w.addSheet(w.opts.ItemsSheet)
	if err != nil {
		return SheetStats{}, err
	}

	styles, err := newSheetStyles(w.file, itemsHeaderColor, itemsAltColor)
	if err != nil {
		return SheetStats{}, err
	}

	columns := types.SoldItemColumns
	if err := writeHeader(w.file, sheet, columns, styles.header); err != nil {
		return SheetStats{}, err
	}

	for i, item := range items {
		row := i + 2
		values := make([]any, len(columns))
		for c, col := range columns {
			values[c] = itemValue(item, col)
		}
		if err := writeRow(w.file, sheet, row, values); err != nil {
			return SheetStats{}, err
		}
		if err := styleRow(w.file, sheet, row, len(columns), styles.body(row)); err != nil {
			return SheetStats{}, err
		}
		for c, col := range columns {
			if !isCurrencyColumn(col) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return SheetStats{}, err
			}
			if err := w.file.SetCellStyle(sheet, cell, cell, styles.currency(row)); err != nil {
				return SheetStats{}, fmt.Errorf("failed to style %s!%s: %w", sheet, cell, err)
			}
		}
	}

	widths := make([]int, len(columns))
	for c, col := range columns {
		widths[c] = w.columnWidth(col, len(items), func(i int) string { return items[i].Field(col) })
	}
	if err := setWidths(w.file, sheet, widths); err != nil {
		return SheetStats{}, err
	}

	return SheetStats{Name: sheet, Rows: len(items), Columns: len(columns)}, nil
}

// itemValue returns the typed cell value of one item field.
func itemValue(item types.SoldItem, column string) any {
	raw := item.Field(column)
	switch column {
	case "Quantity", "Unit Price", "Total":
		return coerce.Number(raw)
	case "Date":
		return coerce.Date(raw)
	default:
		return raw
	}
}

func isCurrencyColumn(column string) bool {
	return column == "Unit Price" || column == "Total"
}

// columnWidth returns min(longest of header and sampled values + 2, MaxWidth).
// Lengths are measured on the raw strings.
func (w *workbook) columnWidth(header string, rows int, value func(i int) string) int {
	longest := utf8.RuneCountInString(header)
	if rows > w.opts.WidthSampleRows {
		rows = w.opts.WidthSampleRows
	}
	for i := 0; i < rows; i++ {
		if n := utf8.RuneCountInString(value(i)); n > longest {
			longest = n
		}
	}
	return min(longest+2, w.opts.MaxWidth)
}

// =============================================================================
// CELL HELPERS
// =============================================================================

func writeHeader(f *excelize.File, sheet string, columns []string, style int) error {
	if len(columns) == 0 {
		return nil
	}
	values := make([]any, len(columns))
	for i, c := range columns {
		values[i] = c
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}
	return styleRow(f, sheet, 1, len(columns), style)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, columns, style int) error {
	if columns == 0 {
		return nil
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("failed to style %s row %d: %w", sheet, row, err)
	}
	return nil
}

func setWidths(f *excelize.File, sheet string, widths []int) error {
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(width)); err != nil {
			return fmt.Errorf("failed to set width of %s!%s: %w", sheet, col, err)
		}
	}
	return nil
}
