package sales

import (
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/coerce"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/types"
)

// Summary totals a list of sold items for the end-of-run report.
type Summary struct {
	Items int
	Total float64
}

// Summarize counts items and adds up their line totals. Unparseable totals
// count as zero.
func Summarize(items []types.SoldItem) Summary {
	s := Summary{Items: len(items)}
	for _, item := range items {
		s.Total += coerce.Number(item.Total)
	}
	return s
}
