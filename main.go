// =============================================================================
// XML to XLSX Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the XLCut CLI application. It delegates
// command execution to the cmd package.
//
// USAGE:
//   xlcut                - Convert all XML files in the source directory
//   xlcut convert        - Same, with flags
//   xlcut inspect FILE   - Show how one XML file is flattened
//   xlcut version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra) and console report
//   - internal/      : Flattening engine, sales extraction, workbook writer
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/XML-to-XLSX-conversion/cmd"
)

func main() {
	cmd.Execute()
}
