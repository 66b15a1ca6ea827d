// =============================================================================
// XML to XLSX Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which is the main command for
// turning XML exports into an Excel workbook.
//
// COMMAND USAGE:
//   xlcut convert [flags]
//
// FLAGS:
//   --source   : Directory scanned for XML files (overrides source_dir)
//   --output   : Directory for the workbook (overrides output_dir)
//   --dry-run  : Run the whole pipeline but do not write the workbook
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover XML files in the source directory (sorted by name)
//   3. Convert every document (failures are isolated per file)
//   4. Write the error log for failed documents
//   5. Write the workbook
//   6. Archive the processed input files
//   7. Print the summary report
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/converter"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/logging"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/partition"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/sales"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/xlsxwriter"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/xmldoc"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/pkg/utils"
)

// errNoInput is returned when the source directory holds no XML files.
var errNoInput = errors.New("no XML files found")

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// convertOptions holds the flags of the convert command.
type convertOptions struct {
	configFile string
	sourceDir  string
	outputDir  string
	dryRun     bool
	verbose    bool
}

var convertFlags convertOptions

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert XML files into an Excel workbook",
	Long: `The convert command scans the source directory for XML files, flattens
their repeating records into rows and writes one workbook to the output
directory.

Rows are grouped into one sheet per record type (the "type" attribute of the
record element). Sale transactions are also listed line by line on an
"Items Sold" sheet, placed first.

Each file is processed independently, and errors in one file do not affect
the processing of others.

On error:
  - An error log is created in the output directory
  - The failed XML file remains in the source directory
  - Processing continues for other files`,

	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convertFlags
		opts.configFile = cfgFile
		opts.verbose = verbose
		return runConvert(opts, cmd.OutOrStdout())
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the convert command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(
		&convertFlags.sourceDir,
		"source",
		"",
		"Directory containing the XML files (overrides source_dir)",
	)

	convertCmd.Flags().StringVar(
		&convertFlags.outputDir,
		"output",
		"",
		"Directory for the generated workbook (overrides output_dir)",
	)

	convertCmd.Flags().BoolVar(
		&convertFlags.dryRun,
		"dry-run",
		false,
		"Process files without writing the workbook or archiving inputs",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert is the main function that orchestrates the conversion pipeline.
func runConvert(opts convertOptions, out io.Writer) error {
	startTime := time.Now()
	report := newReporter(out)
	report.Banner()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(mainConfig.LogLevel, mainConfig.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("configuration loaded",
		zap.String("config", opts.configFile),
		zap.String("source", mainConfig.SourceDir),
		zap.String("output", mainConfig.OutputDir))

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	fm := utils.NewFileManager(mainConfig.SourceDir, mainConfig.OutputDir, mainConfig.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	inputFiles, err := fm.DiscoverInputFiles(mainConfig.InputPattern)
	if err != nil {
		return fmt.Errorf("failed to discover input files: %w", err)
	}

	if len(inputFiles) == 0 {
		report.NoInput(mainConfig.SourceDir, mainConfig.OutputDir)
		return errNoInput
	}

	report.Found(len(inputFiles))

	// =========================================================================
	// STEP 3: CONVERT DOCUMENTS
	// =========================================================================

	conv := converter.New(partitionOptions(mainConfig), logging.NewAdapter(logger))
	batch := conv.Run(inputFiles)
	report.Files(batch.Results)

	// =========================================================================
	// STEP 4: ERROR LOG
	// =========================================================================

	if failed := batch.Failed(); len(failed) > 0 && mainConfig.ErrorLogEnabled() {
		logPath, err := utils.WriteErrorLog(errorLogEntries(failed), mainConfig.OutputDir)
		if err != nil {
			logger.Warn("failed to write error log", zap.Error(err))
		} else {
			report.ErrorLog(logPath)
		}
	}

	if err := batch.Check(); err != nil {
		return err
	}

	report.Items(sales.Summarize(batch.Items))

	// =========================================================================
	// STEP 5: WRITE WORKBOOK
	// =========================================================================

	fileName := utils.GenerateOutputFileName(mainConfig.OutputNameFormat, nil)
	outputPath := filepath.Join(mainConfig.OutputDir, fileName)

	writeOpts := xlsxwriter.Options{
		ItemsSheet:      mainConfig.Workbook.ItemsSheet,
		MaxWidth:        mainConfig.Workbook.MaxWidth,
		WidthSampleRows: mainConfig.Workbook.WidthSampleRows,
	}

	if opts.dryRun {
		f, stats, err := xlsxwriter.Build(batch.Groups, batch.Items, writeOpts)
		if err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}
		_ = f.Close()
		report.Sheets(stats)
		report.Done(outputPath, batch, time.Since(startTime), true)
		return nil
	}

	stats, err := xlsxwriter.Write(outputPath, batch.Groups, batch.Items, writeOpts)
	if err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	logger.Info("workbook written", zap.String("path", outputPath), zap.Int("sheets", len(stats.Sheets)))
	report.Sheets(stats)

	// =========================================================================
	// STEP 6: ARCHIVE INPUT FILES
	// =========================================================================

	for _, res := range batch.Results {
		if !res.Success {
			continue
		}
		archived, err := fm.ArchiveInputFile(res.FilePath)
		if err != nil {
			// Log the error but don't fail the run.
			logger.Warn("failed to archive input file", zap.String("file", res.Name()), zap.Error(err))
			continue
		}
		if archived != res.FilePath {
			logger.Debug("archived input file", zap.String("file", res.Name()), zap.String("to", archived))
		}
	}

	// =========================================================================
	// STEP 7: SUMMARY
	// =========================================================================

	report.Done(outputPath, batch, time.Since(startTime), false)
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig loads the configuration with the command line overrides.
func loadConfig(opts convertOptions) (*config.MainConfig, error) {
	overrides := config.Overrides{
		SourceDir: opts.sourceDir,
		OutputDir: opts.outputDir,
	}
	if opts.verbose {
		overrides.LogLevel = "debug"
	}

	mainConfig, err := config.LoadWithOverrides(opts.configFile, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return mainConfig, nil
}

// partitionOptions maps the partition settings onto the partitioner.
func partitionOptions(c *config.MainConfig) partition.Options {
	return partition.Options{
		Discriminant: c.Partition.Discriminant,
		DefaultGroup: c.Partition.DefaultGroup,
		SourceColumn: c.Partition.SourceColumn,
	}
}

// errorLogEntries converts failed results into error log entries.
func errorLogEntries(failed []converter.Result) []utils.ErrorLogEntry {
	entries := make([]utils.ErrorLogEntry, 0, len(failed))
	for _, res := range failed {
		entry := utils.ErrorLogEntry{
			Timestamp:    time.Now(),
			FileName:     res.Name(),
			ErrorType:    "read",
			ErrorMessage: res.Error.Error(),
		}

		var parseErr *xmldoc.ParseError
		if errors.As(res.Error, &parseErr) {
			entry.ErrorType = "parse"
			entry.LineNumber = parseErr.Line
		}

		entries = append(entries, entry)
	}
	return entries
}
