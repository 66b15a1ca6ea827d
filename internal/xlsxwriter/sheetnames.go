package xlsxwriter

import (
	"fmt"
	"strings"
)

// MaxSheetNameLength is the longest sheet name Excel accepts, in characters.
const MaxSheetNameLength = 31

// sheetNameReplacer maps characters Excel forbids in sheet names to "-".
var sheetNameReplacer = strings.NewReplacer(
	"/", "-", `\`, "-", ":", "-", "?", "-", "*", "-", "[", "-", "]", "-",
)

// SanitizeSheetName turns a group name into a valid sheet name.
//
// EXAMPLE:
//
//	SanitizeSheetName("sale/return")  -> "sale-return"
//	SanitizeSheetName("")             -> "Sheet"
//	SanitizeSheetName(<40 chars>)     -> first 31 characters
func SanitizeSheetName(name string) string {
	name = sheetNameReplacer.Replace(name)
	name = truncate(name, MaxSheetNameLength)
	name = strings.Trim(name, "'")
	if strings.TrimSpace(name) == "" {
		return "Sheet"
	}
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// sheetNamer hands out unique sheet names. Excel compares sheet names
// case-insensitively, so "Sale" and "sale" collide.
type sheetNamer struct {
	used map[string]struct{}
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: make(map[string]struct{})}
}

// Next returns the sanitized form of want, suffixed with " (2)", " (3)", ...
// when that name is already taken.
func (n *sheetNamer) Next(want string) string {
	base := SanitizeSheetName(want)
	name := base
	for i := 2; n.taken(name); i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncate(base, MaxSheetNameLength-len(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = struct{}{}
	return name
}

func (n *sheetNamer) taken(name string) bool {
	_, ok := n.used[strings.ToLower(name)]
	return ok
}
