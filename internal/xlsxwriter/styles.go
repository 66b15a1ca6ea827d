package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sheetStyles holds the style IDs used on one kind of sheet.
type sheetStyles struct {
	header       int
	plain        int
	alt          int
	currencyBody int
	currencyAlt  int
}

// body returns the style of a data cell on worksheet row n. Even rows carry
// the alternate fill.
func (s sheetStyles) body(n int) int {
	if n%2 == 0 {
		return s.alt
	}
	return s.plain
}

// currency is body for the Unit Price and Total columns.
func (s sheetStyles) currency(n int) int {
	if n%2 == 0 {
		return s.currencyAlt
	}
	return s.currencyBody
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: borderColor, Style: 1},
		{Type: "right", Color: borderColor, Style: 1},
		{Type: "top", Color: borderColor, Style: 1},
		{Type: "bottom", Color: borderColor, Style: 1},
	}
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

// newSheetStyles registers the header and body styles for one color scheme.
func newSheetStyles(f *excelize.File, headerColor, altColor string) (sheetStyles, error) {
	currency := currencyFormat

	defs := []*excelize.Style{
		{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      solidFill(headerColor),
			Border:    thinBorder(),
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		{Border: thinBorder()},
		{Border: thinBorder(), Fill: solidFill(altColor)},
		{Border: thinBorder(), CustomNumFmt: &currency},
		{Border: thinBorder(), Fill: solidFill(altColor), CustomNumFmt: &currency},
	}

	ids := make([]int, len(defs))
	for i, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return sheetStyles{}, fmt.Errorf("failed to create cell style: %w", err)
		}
		ids[i] = id
	}

	return sheetStyles{
		header:       ids[0],
		plain:        ids[1],
		alt:          ids[2],
		currencyBody: ids[3],
		currencyAlt:  ids[4],
	}, nil
}
