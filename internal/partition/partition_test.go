package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/types"
)

func sourced(source string, pairs ...string) types.SourcedRow {
	return types.SourcedRow{Row: types.RowOf(pairs...), Source: source}
}

func TestPartition_GroupsByTypeSorted(t *testing.T) {
	rows := []types.SourcedRow{
		sourced("a.xml", "@type", "sale", "id", "1"),
		sourced("a.xml", "id", "2", "note", "x"),
		sourced("a.xml", "@type", "refund", "id", "3", "amt", "4"),
		sourced("a.xml", "@type", "sale", "id", "5", "qty", "2"),
	}

	groups := Partition(rows, DefaultOptions())

	require.Len(t, groups, 3)
	assert.Equal(t, "data", groups[0].Name)
	assert.Equal(t, "refund", groups[1].Name)
	assert.Equal(t, "sale", groups[2].Name)

	sale := groups[2]
	assert.Equal(t, []string{"id", "qty"}, sale.Columns)
	require.Len(t, sale.Rows, 2)
	assert.Equal(t, "1", sale.Rows[0].Row.Value("id"))
	assert.Equal(t, "5", sale.Rows[1].Row.Value("id"))

	assert.Equal(t, []string{"id", "note"}, groups[0].Columns)
	assert.Equal(t, "", groups[0].SourceColumn)
}

func TestPartition_DiscriminantNeverInColumnsOrRows(t *testing.T) {
	rows := []types.SourcedRow{
		sourced("a.xml", "@type", "x", "v", "1"),
		sourced("b.xml", "v", "2", "@type", "y"),
		sourced("b.xml", "@type", "", "v", "3"),
	}

	for _, g := range Partition(rows, DefaultOptions()) {
		assert.NotContains(t, g.Columns, "@type", g.Name)
		for _, r := range g.Rows {
			assert.False(t, r.Row.Has("@type"), g.Name)
		}
	}
}

func TestPartition_EmptyTypeUsesDefaultGroup(t *testing.T) {
	groups := Partition([]types.SourcedRow{sourced("a.xml", "@type", "", "v", "1")}, DefaultOptions())

	require.Len(t, groups, 1)
	assert.Equal(t, "data", groups[0].Name)
	assert.Equal(t, []string{"v"}, groups[0].Columns)
}

func TestPartition_SourceColumnOnlyForSeveralFiles(t *testing.T) {
	single := Partition([]types.SourcedRow{
		sourced("a.xml", "v", "1"),
		sourced("a.xml", "v", "2"),
	}, DefaultOptions())
	require.Len(t, single, 1)
	assert.Equal(t, []string{"v"}, single[0].Columns)

	multi := Partition([]types.SourcedRow{
		sourced("a.xml", "@type", "t1", "v", "1"),
		sourced("b.xml", "@type", "t2", "w", "2"),
	}, DefaultOptions())
	require.Len(t, multi, 2)
	for _, g := range multi {
		assert.Equal(t, "_source_file", g.Columns[0])
		assert.Equal(t, "_source_file", g.SourceColumn)
	}
	assert.Equal(t, "a.xml", multi[0].Cell(0, "_source_file"))
	assert.Equal(t, "b.xml", multi[1].Cell(0, "_source_file"))
	assert.Equal(t, "2", multi[1].Cell(0, "w"))
}

func TestPartition_DoesNotModifyInput(t *testing.T) {
	in := sourced("a.xml", "@type", "sale", "id", "1")

	Partition([]types.SourcedRow{in}, DefaultOptions())

	assert.Equal(t, "sale", in.Row.Value("@type"))
}

func TestPartition_CustomOptions(t *testing.T) {
	rows := []types.SourcedRow{
		sourced("a.xml", "kind", "k1", "v", "1"),
		sourced("b.xml", "v", "2"),
	}

	groups := Partition(rows, Options{Discriminant: "kind", DefaultGroup: "other", SourceColumn: "file"})

	require.Len(t, groups, 2)
	assert.Equal(t, "k1", groups[0].Name)
	assert.Equal(t, "other", groups[1].Name)
	assert.Equal(t, []string{"file", "v"}, groups[0].Columns)
}

func TestPartition_NoRows(t *testing.T) {
	assert.Empty(t, Partition(nil, Options{}))
}
