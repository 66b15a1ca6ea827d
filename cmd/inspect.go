// =============================================================================
// XML to XLSX Converter - Inspect Command
// =============================================================================
//
// COMMAND USAGE:
//   xlcut inspect <file.xml> [--rows N]
//
// Prints what a single document flattens to without writing a workbook:
// the detected record element, the record count, the column list and the
// number of sold items.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/flatten"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/sales"
)

// inspectRows is the number of sample rows printed.
var inspectRows int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.xml>",
	Short: "Show how a single XML file is flattened",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0], inspectRows, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectRows, "rows", 3, "Number of sample rows to print")
}

func runInspect(path string, sampleRows int, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	name := filepath.Base(path)

	flat, err := flatten.ParseDocument(data, name)
	if err != nil {
		return err
	}
	if flat.Empty {
		fmt.Fprintf(out, "%s: empty document\n", name)
		return nil
	}

	items, err := sales.Extract(data, name)
	if err != nil {
		return err
	}

	tag := flat.RepeatingTag
	if tag == "" {
		tag = "(none, whole document is one record)"
	}

	fmt.Fprintf(out, "File:       %s\n", name)
	fmt.Fprintf(out, "Record tag: %s\n", tag)
	fmt.Fprintf(out, "Records:    %d\n", len(flat.Rows))
	fmt.Fprintf(out, "Items sold: %d\n", len(items))
	fmt.Fprintf(out, "Columns:    %d\n", len(flat.Columns))
	for _, col := range flat.Columns {
		fmt.Fprintf(out, "  %s\n", col)
	}

	for i, row := range flat.Rows {
		if i >= sampleRows {
			break
		}
		fmt.Fprintf(out, "\nRow %d:\n", i+1)
		for _, key := range row.Keys() {
			fmt.Fprintf(out, "  %s = %s\n", key, row.Value(key))
		}
	}

	return nil
}
