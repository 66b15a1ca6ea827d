// =============================================================================
// XML to XLSX Converter - Row Type Partitioner
// =============================================================================
//
// This module splits the rows of a whole run into groups, one per record type.
// Every group becomes one sheet of the output workbook.
//
// GROUPING:
//   The discriminant is a row key (by default "@type", the flattened form of a
//   type="..." attribute on the record element). Rows without it, or with an
//   empty value, land in the default group ("data").
//
// OUTPUT:
//   - Groups are sorted by name.
//   - Rows keep their run order inside a group.
//   - The discriminant key is removed from the rows and the columns.
//   - When the run spans more than one source file, a source column is
//     prepended to every group so each row can be traced back to its file.
//
// =============================================================================

package partition

import (
	"sort"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/flatten"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/types"
)

// Default option values.
const (
	DefaultDiscriminant = "@type"
	DefaultGroup        = "data"
	DefaultSourceColumn = "_source_file"
)

// Options controls how rows are grouped.
type Options struct {
	// Discriminant is the row key whose value names the group.
	Discriminant string

	// DefaultGroup names the group of rows without a discriminant value.
	DefaultGroup string

	// SourceColumn is the header of the prepended source-file column.
	SourceColumn string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Discriminant: DefaultDiscriminant,
		DefaultGroup: DefaultGroup,
		SourceColumn: DefaultSourceColumn,
	}
}

// withDefaults fills empty fields with their default values.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Discriminant == "" {
		o.Discriminant = d.Discriminant
	}
	if o.DefaultGroup == "" {
		o.DefaultGroup = d.DefaultGroup
	}
	if o.SourceColumn == "" {
		o.SourceColumn = d.SourceColumn
	}
	return o
}

// Partition groups rows by their discriminant value.
//
// PARAMETERS:
//   - rows: Every row of the run, in run order, each with its source label.
//   - opts: Grouping options. Empty fields take their defaults.
//
// RETURNS:
//   - The groups sorted by name. The input rows are not modified.
func Partition(rows []types.SourcedRow, opts Options) []types.Group {
	opts = opts.withDefaults()

	byName := make(map[string][]types.SourcedRow)
	sources := make(map[string]struct{})

	for _, sr := range rows {
		name := sr.Row.Value(opts.Discriminant)
		// A present but empty discriminant joins the default group too.
		if name == "" {
			name = opts.DefaultGroup
		}
		byName[name] = append(byName[name], types.SourcedRow{
			Row:    sr.Row.Without(opts.Discriminant),
			Source: sr.Source,
		})
		sources[sr.Source] = struct{}{}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	multiSource := len(sources) > 1

	groups := make([]types.Group, 0, len(names))
	for _, name := range names {
		members := byName[name]

		plain := make([]*types.Row, len(members))
		for i, m := range members {
			plain[i] = m.Row
		}
		columns := flatten.Columns(plain)

		g := types.Group{Name: name, Rows: members, Columns: columns}
		if multiSource {
			g.SourceColumn = opts.SourceColumn
			g.Columns = append([]string{opts.SourceColumn}, columns...)
		}
		groups = append(groups, g)
	}

	return groups
}
