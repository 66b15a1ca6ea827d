package flatten

import (
	"errors"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/types"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/xmldoc"
)

// Result is the flattened form of one document.
type Result struct {
	// Rows holds one row per record element, in document order.
	Rows []*types.Row

	// Columns is the first-seen union of the rows' keys.
	Columns []string

	// RepeatingTag is the detected record tag. It is "" when the document root
	// was treated as the single record.
	RepeatingTag string

	// Empty is set when the input held no content at all.
	Empty bool
}

// ParseDocument runs detection, flattening and column projection over one raw
// document. Empty input yields an empty Result and no error. Malformed input
// yields a *xmldoc.ParseError.
func ParseDocument(data []byte, source string) (Result, error) {
	root, err := xmldoc.Parse(data, source)
	if errors.Is(err, xmldoc.ErrEmptyInput) {
		return Result{Rows: []*types.Row{}, Columns: []string{}, Empty: true}, nil
	}
	if err != nil {
		return Result{}, err
	}
	return FlattenRoot(root), nil
}

// FlattenRoot flattens an already parsed document.
func FlattenRoot(root *etree.Element) Result {
	tag, ok := DetectRepeating(root)
	if !ok {
		rows := []*types.Row{Flatten(root, "")}
		return Result{Rows: rows, Columns: Columns(rows)}
	}

	var rows []*types.Row
	for _, el := range xmldoc.Descendants(root) {
		if el.FullTag() == tag {
			rows = append(rows, Flatten(el, ""))
		}
	}

	return Result{Rows: rows, Columns: Columns(rows), RepeatingTag: tag}
}
