// =============================================================================
// XML to XLSX Converter - Element Flattener
// =============================================================================
//
// This module turns one XML element (and everything below it) into a single
// flat Row. Keys use dotted-path notation:
//
//   <rec id="7">                      @id          = 7
//     <name>Widget</name>             name         = Widget
//     <price currency="USD">          price.@currency = USD
//       9.99                          price        = 9.99
//     </price>
//     <dims><w>3</w><h>4</h></dims>   dims.w = 3, dims.h = 4
//   </rec>
//
// Repeated sibling tags collapse onto the same key and the last one wins.
//
// =============================================================================

package flatten

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/types"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/xmldoc"
)

// Flatten converts el into a Row. prefix is the dotted path accumulated from
// the ancestors and is empty at the top level.
//
// RULES (applied in order):
//  1. Each attribute becomes {prefix}@{name}.
//  2. An element without child elements records its trimmed, non-empty text
//     under the prefix (trailing "." removed), or under its own tag when the
//     prefix is empty.
//  3. For each child element in document order: a child with neither children
//     nor attributes records its trimmed text (possibly "") under
//     {prefix}{childTag}; any other child is flattened with the prefix
//     {prefix}{childTag}. and merged into the result.
func Flatten(el *etree.Element, prefix string) *types.Row {
	row := types.NewRow()

	for _, attr := range xmldoc.Attributes(el) {
		row.Set(prefix+"@"+attr.FullKey(), attr.Value)
	}

	children := el.ChildElements()

	if len(children) == 0 {
		text := strings.TrimSpace(el.Text())
		switch {
		case text != "" && prefix != "":
			row.Set(strings.TrimRight(prefix, "."), text)
		case text != "":
			row.Set(el.FullTag(), text)
		}
		return row
	}

	for _, child := range children {
		tag := child.FullTag()
		if len(child.ChildElements()) == 0 && len(xmldoc.Attributes(child)) == 0 {
			row.Set(prefix+tag, strings.TrimSpace(child.Text()))
			continue
		}
		row.Merge(Flatten(child, prefix+tag+"."))
	}

	return row
}
