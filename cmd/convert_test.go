package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/converter"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/xmldoc"
)

const saleExport = `<export>
  <trans type="sale">
    <trHeader><date>2024-03-01T10:15:00</date><trTickNum><trSeq>42</trSeq></trTickNum></trHeader>
    <trLines>
      <trLine type="plu"><trlLineTot>9.99</trlLineTot><trlDesc>Widget</trlDesc></trLine>
    </trLines>
  </trans>
  <trans type="void"><trHeader/></trans>
</export>`

type workspace struct {
	source, output, archive string
}

func newWorkspace(t *testing.T, files map[string]string) workspace {
	t.Helper()
	root := t.TempDir()
	ws := workspace{
		source: filepath.Join(root, "source"),
		output: filepath.Join(root, "output"),
	}
	t.Setenv("XLCUT_SOURCE_DIR", ws.source)
	t.Setenv("XLCUT_OUTPUT_DIR", ws.output)
	t.Setenv("XLCUT_ARCHIVE_DIR", "")
	t.Setenv("XLCUT_LOG_LEVEL", "error")
	t.Setenv("XLCUT_LOG_FILE", "")

	require.NoError(t, os.MkdirAll(ws.source, 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(ws.source, name), []byte(body), 0o644))
	}
	return ws
}

func testOptions(t *testing.T) convertOptions {
	return convertOptions{configFile: filepath.Join(t.TempDir(), "missing.yaml")}
}

func workbooks(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	require.NoError(t, err)
	return matches
}

func TestRunConvert_WritesWorkbook(t *testing.T) {
	ws := newWorkspace(t, map[string]string{
		"a.xml": saleExport,
		"b.xml": `<log><entry type="void"><why>oops</why></entry><entry type="void"><why>again</why></entry></log>`,
	})

	var out bytes.Buffer
	require.NoError(t, runConvert(testOptions(t), &out))

	text := out.String()
	assert.Contains(t, text, "Found 2 XML file(s)")
	assert.Contains(t, text, "a.xml: 2 records, 1 items sold")
	assert.Contains(t, text, "*** ITEMS SOLD: 1 items, $9.99 total ***")
	assert.Contains(t, text, "Successful:      2")

	books := workbooks(t, ws.output)
	require.Len(t, books, 1)

	f, err := excelize.OpenFile(books[0])
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Items Sold", "sale", "void"}, f.GetSheetList())

	desc, err := f.GetCellValue("Items Sold", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Widget", desc)

	src, err := f.GetCellValue("void", "A1")
	require.NoError(t, err)
	assert.Equal(t, "_source_file", src)

	assert.FileExists(t, filepath.Join(ws.source, "a.xml"))
}

func TestRunConvert_ArchivesInputs(t *testing.T) {
	ws := newWorkspace(t, map[string]string{"a.xml": `<r><x>1</x><x>2</x></r>`})
	archive := filepath.Join(filepath.Dir(ws.source), "archive")
	t.Setenv("XLCUT_ARCHIVE_DIR", archive)

	var out bytes.Buffer
	require.NoError(t, runConvert(testOptions(t), &out))

	assert.NoFileExists(t, filepath.Join(ws.source, "a.xml"))
	assert.FileExists(t, filepath.Join(archive, "a.xml"))
}

func TestRunConvert_NoInput(t *testing.T) {
	ws := newWorkspace(t, nil)

	var out bytes.Buffer
	err := runConvert(testOptions(t), &out)

	assert.ErrorIs(t, err, errNoInput)
	assert.Contains(t, out.String(), "No XML files found in: "+ws.source)
	assert.Empty(t, workbooks(t, ws.output))
}

func TestRunConvert_FailuresAreLogged(t *testing.T) {
	ws := newWorkspace(t, map[string]string{
		"good.xml": `<d><r id="1"/><r id="2"/></d>`,
		"bad.xml":  "<d>\n<r id=1/>\n</d>",
	})

	var out bytes.Buffer
	require.NoError(t, runConvert(testOptions(t), &out))

	text := out.String()
	assert.Contains(t, text, "bad.xml: Error")
	assert.Contains(t, text, "Errors have been logged to:")
	assert.Contains(t, text, "Errors:          1")

	logs, err := filepath.Glob(filepath.Join(ws.output, "error_log_*.txt"))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	body, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "bad.xml")

	assert.Len(t, workbooks(t, ws.output), 1)
	assert.FileExists(t, filepath.Join(ws.source, "bad.xml"))
}

func TestRunConvert_NoData(t *testing.T) {
	ws := newWorkspace(t, map[string]string{"empty.xml": "  "})

	var out bytes.Buffer
	err := runConvert(testOptions(t), &out)

	assert.ErrorIs(t, err, converter.ErrNoData)
	assert.Empty(t, workbooks(t, ws.output))
}

func TestRunConvert_DryRun(t *testing.T) {
	ws := newWorkspace(t, map[string]string{"a.xml": saleExport})

	opts := testOptions(t)
	opts.dryRun = true

	var out bytes.Buffer
	require.NoError(t, runConvert(opts, &out))

	assert.Contains(t, out.String(), "Dry run:")
	assert.Contains(t, out.String(), "Items Sold: 1 rows")
	assert.Empty(t, workbooks(t, ws.output))
}

func TestRunConvert_FlagOverrides(t *testing.T) {
	ws := newWorkspace(t, nil)
	require.NoError(t, os.Remove(ws.source))
	other := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(other, "a.xml"), []byte(`<r><x>1</x></r>`), 0o644))
	otherOut := filepath.Join(t.TempDir(), "flag-out")

	opts := testOptions(t)
	opts.sourceDir = other
	opts.outputDir = otherOut

	var out bytes.Buffer
	require.NoError(t, runConvert(opts, &out))

	assert.Len(t, workbooks(t, otherOut), 1)
	assert.NoDirExists(t, ws.source)
	assert.NoDirExists(t, ws.output)
}

func TestErrorLogEntries(t *testing.T) {
	parseErr := &xmldoc.ParseError{Source: "bad.xml", Line: 3, Message: "unexpected EOF"}
	failed := []converter.Result{
		{FilePath: "/in/bad.xml", Error: parseErr},
		{FilePath: "/in/gone.xml", Error: fmt.Errorf("failed to read file: %w", os.ErrNotExist)},
	}

	entries := errorLogEntries(failed)

	require.Len(t, entries, 2)
	assert.Equal(t, "bad.xml", entries[0].FileName)
	assert.Equal(t, "parse", entries[0].ErrorType)
	assert.Equal(t, 3, entries[0].LineNumber)
	assert.Equal(t, "read", entries[1].ErrorType)
	assert.Zero(t, entries[1].LineNumber)
	assert.True(t, errors.Is(failed[1].Error, os.ErrNotExist))
}
