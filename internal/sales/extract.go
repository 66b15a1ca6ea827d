// =============================================================================
// XML to XLSX Converter - Sales Item Extractor
// =============================================================================
//
// This module reads the point-of-sale transaction export and produces one
// SoldItem per positive sale line. It works directly against the known
// transaction schema and does not use the generic flattening engine.
//
// EXPECTED STRUCTURE:
//
//   <trans type="sale">
//     <trHeader>
//       <date>2024-01-01T09:30:00</date>
//       <cashier>Alice</cashier>
//       <physicalRegisterID>3</physicalRegisterID>
//       <trTickNum><trSeq>1042</trSeq></trTickNum>
//     </trHeader>
//     <trLines>
//       <trLine type="plu">
//         <trlSign>1.00</trlSign>
//         <trlLineTot>9.99</trlLineTot>
//         <trlDesc>Widget</trlDesc>
//         <trlQty>1</trlQty>
//         <trlUnitPrice>9.99</trlUnitPrice>
//         <trlDept>12</trlDept>
//         <trlUPC>0001234567890</trlUPC>
//       </trLine>
//     </trLines>
//   </trans>
//
// SELECTION:
//   - Only <trans> elements with type="sale" are read, at any depth. The
//     document root itself may be the transaction.
//   - A transaction without <trHeader> or <trLines> is skipped silently.
//   - A line is kept only when its sign and its line total are both > 0, so
//     refunds, payouts and zero-value lines never appear.
//
// =============================================================================

package sales

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/coerce"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/types"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/xmldoc"
)

// Schema element and attribute names.
const (
	transTag      = "trans"
	saleType      = "sale"
	headerTag     = "trHeader"
	linesTag      = "trLines"
	lineTag       = "trLine"
	ticketSeqPath = "trTickNum/trSeq"
)

// Line defaults applied when an element is missing. A present but empty
// element keeps its empty value.
const (
	defaultSign     = "1.00"
	defaultTotal    = "0.00"
	defaultQuantity = "1"
)

// Extract parses one document and returns its sold items in document order.
// Empty input yields no items and no error. Malformed input yields a
// *xmldoc.ParseError.
func Extract(data []byte, source string) ([]types.SoldItem, error) {
	root, err := xmldoc.Parse(data, source)
	if errors.Is(err, xmldoc.ErrEmptyInput) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ExtractFromRoot(root), nil
}

// ExtractFromRoot returns the sold items of an already parsed document.
func ExtractFromRoot(root *etree.Element) []types.SoldItem {
	var items []types.SoldItem

	candidates := append([]*etree.Element{root}, xmldoc.Descendants(root)...)
	for _, trans := range candidates {
		if trans.Tag != transTag || trans.SelectAttrValue("type", "") != saleType {
			continue
		}
		items = append(items, extractTransaction(trans)...)
	}

	return items
}

// extractTransaction returns the kept lines of one sale transaction.
func extractTransaction(trans *etree.Element) []types.SoldItem {
	header := trans.SelectElement(headerTag)
	if header == nil {
		return nil
	}
	lines := trans.SelectElement(linesTag)
	if lines == nil {
		return nil
	}

	base := types.SoldItem{
		Date:     textOr(header, "date", ""),
		Cashier:  textOr(header, "cashier", ""),
		Register: textOr(header, "physicalRegisterID", ""),
	}
	if seq := header.FindElement(ticketSeqPath); seq != nil {
		base.Ticket = strings.TrimSpace(seq.Text())
	}

	var items []types.SoldItem
	for _, line := range lines.SelectElements(lineTag) {
		sign := coerce.NumberOr(textOr(line, "trlSign", defaultSign), 1.0)
		if sign <= 0 {
			continue
		}

		total := textOr(line, "trlLineTot", defaultTotal)
		if coerce.NumberOr(total, 0.0) <= 0 {
			continue
		}

		item := base
		item.Description = textOr(line, "trlDesc", "")
		item.Quantity = textOr(line, "trlQty", defaultQuantity)
		item.UnitPrice = textOr(line, "trlUnitPrice", "")
		item.Total = total
		item.Department = textOr(line, "trlDept", "")
		item.UPC = textOr(line, "trlUPC", "")
		item.Type = line.SelectAttrValue("type", "")
		items = append(items, item)
	}

	return items
}

// textOr returns the trimmed text of el's first child named tag, or def when
// that child is missing.
func textOr(el *etree.Element, tag, def string) string {
	if v, ok := xmldoc.TextOf(el, tag); ok {
		return v
	}
	return def
}
