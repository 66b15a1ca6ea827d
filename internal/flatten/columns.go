package flatten

import "github.com/ginjaninja78/XML-to-XLSX-conversion/internal/types"

// Columns returns the union of the rows' keys, in the order each key is first
// seen while walking the rows in sequence.
func Columns(rows []*types.Row) []string {
	seen := make(map[string]struct{})
	columns := []string{}
	for _, row := range rows {
		for _, key := range row.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			columns = append(columns, key)
		}
	}
	return columns
}
