// =============================================================================
// XML to XLSX Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - flatten
//   - partition
//   - sales
//   - xlsxwriter
//   - converter
//
// =============================================================================

package types

// =============================================================================
// ROW TYPES
// =============================================================================

// Row is an ordered mapping from a dotted-path key to a string value.
// It is produced by flattening one record element.
//
// COLLISION POLICY:
//   Setting a key that already exists replaces its value and keeps the key in
//   its original position (last-write-wins). Repeated sibling tags under one
//   record therefore overwrite each other instead of accumulating.
//
// The zero value is an empty row ready to use.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// RowOf builds a row from alternating key/value pairs.
// A trailing key without a value is ignored.
func RowOf(pairs ...string) *Row {
	r := NewRow()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Set stores value under key. See the collision policy on Row.
func (r *Row) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key and whether it was present.
func (r *Row) Get(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value stored under key, or "" when absent.
func (r *Row) Value(key string) string {
	v, _ := r.Get(key)
	return v
}

// Has reports whether key is present.
func (r *Row) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the keys in insertion order. The slice is a copy.
func (r *Row) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Merge copies every key of other into r in other's order, applying the
// last-write-wins policy on collisions.
func (r *Row) Merge(other *Row) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		r.Set(k, other.values[k])
	}
}

// Without returns a copy of the row with key removed. The receiver is not
// modified.
func (r *Row) Without(key string) *Row {
	out := NewRow()
	if r == nil {
		return out
	}
	for _, k := range r.keys {
		if k == key {
			continue
		}
		out.Set(k, r.values[k])
	}
	return out
}

// Equal reports whether both rows hold the same keys, in the same order,
// with the same values.
func (r *Row) Equal(other *Row) bool {
	if r.Len() != other.Len() {
		return false
	}
	if r.Len() == 0 {
		return true
	}
	for i, k := range r.keys {
		if other.keys[i] != k || other.values[k] != r.values[k] {
			return false
		}
	}
	return true
}

// SourcedRow is a Row together with the label of the file it came from.
// The label is carried out of band and is never part of the flattened data.
type SourcedRow struct {
	// Row holds the flattened data.
	Row *Row

	// Source is the file label (base name of the input document).
	Source string
}

// =============================================================================
// GROUP TYPES
// =============================================================================

// Group is a named, ordered set of rows sharing one logical record type.
type Group struct {
	// Name is the discriminant value (e.g. the @type attribute) or the
	// default label when the attribute is absent.
	Name string

	// Columns is the ordered column list for this group. When the run spans
	// several source files, the source column comes first.
	Columns []string

	// Rows contains the group's rows with the discriminant key removed.
	Rows []SourcedRow

	// SourceColumn is the name of the prepended source column, or "" when no
	// source column is shown.
	SourceColumn string
}

// Cell returns the string value for column col of row i, resolving the
// out-of-band source column.
func (g Group) Cell(i int, col string) string {
	row := g.Rows[i]
	if g.SourceColumn != "" && col == g.SourceColumn {
		return row.Source
	}
	return row.Row.Value(col)
}

// =============================================================================
// SALES TYPES
// =============================================================================

// SoldItem is one normalized line of a sale transaction.
// All fields hold the raw (trimmed) document text; numeric coercion happens
// when the item is written.
type SoldItem struct {
	Date        string
	Register    string
	Cashier     string
	Ticket      string
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
	Department  string
	UPC         string
	Type        string
}

// SoldItemColumns is the fixed header of the items sheet, in output order.
var SoldItemColumns = []string{
	"Date", "Register", "Cashier", "Ticket#", "Description",
	"Quantity", "Unit Price", "Total", "Department", "UPC", "Type",
}

// Field returns the value of the item field shown under the given
// SoldItemColumns header, or "" for an unknown header.
func (s SoldItem) Field(column string) string {
	switch column {
	case "Date":
		return s.Date
	case "Register":
		return s.Register
	case "Cashier":
		return s.Cashier
	case "Ticket#":
		return s.Ticket
	case "Description":
		return s.Description
	case "Quantity":
		return s.Quantity
	case "Unit Price":
		return s.UnitPrice
	case "Total":
		return s.Total
	case "Department":
		return s.Department
	case "UPC":
		return s.UPC
	case "Type":
		return s.Type
	default:
		return ""
	}
}
