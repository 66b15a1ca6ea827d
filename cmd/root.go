// =============================================================================
// XML to XLSX Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (xlcut)
//   ├── convertCmd (xlcut convert)
//   ├── inspectCmd (xlcut inspect)
//   └── versionCmd (xlcut version)
//
// Running xlcut without a subcommand runs 'convert' with the default
// configuration, so the tool can be started by double-clicking it next to a
// "source" folder.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// stderr receives command errors.
var stderr io.Writer = os.Stderr

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "xlcut",
	Short: "XLCut - Flatten XML exports into an Excel workbook",
	Long: `XLCut turns XML exports into a single Excel workbook.

Every XML file in the source folder is scanned for its repeating record
element. Each record becomes one row, with nested elements and attributes
flattened into dot-separated columns (attributes are prefixed with "@").
Records are split into one sheet per record type, and the line items of
sale transactions are listed on an "Items Sold" sheet.

Example Usage:
  xlcut                              # Convert ./source/*.xml into ./output
  xlcut convert --source ./exports   # Use another source folder
  xlcut convert --config ./my.yaml   # Use a custom configuration file
  xlcut inspect ./exports/day1.xml   # Show what a single file flattens to`,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(convertOptions{configFile: cfgFile, verbose: verbose}, cmd.OutOrStdout())
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
