// =============================================================================
// XML to XLSX Converter - Converter Module
// =============================================================================
//
// This module contains the batch conversion logic. It runs every input
// document through the flattening engine and the sales extractor and
// collects the results for the workbook writer.
//
// CONVERSION PIPELINE (per document, in file name order):
//   1. Read the file
//   2. Flatten it into rows (detect records, flatten, project columns)
//   3. Extract sold items from sale transactions
//   4. Tag the rows with the document's file name
//
// After the last document:
//   5. Partition all rows into groups by record type
//
// FAILURE POLICY:
//   A document that cannot be read or parsed is reported in its Result and
//   skipped. It never stops the remaining documents. An empty document is
//   skipped without being a failure.
//
// CONCURRENCY:
//   Documents are processed one at a time. Row, column and item order
//   therefore follow file name order exactly.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/flatten"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/partition"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/sales"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/internal/types"
	"github.com/ginjaninja78/XML-to-XLSX-conversion/pkg/utils"
)

// ErrNoData is returned by BatchResult.Check when no document produced a row
// or an item.
var ErrNoData = errors.New("no data extracted from any file")

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// Success indicates whether the document was read and parsed.
	Success bool

	// Skipped is set for documents that held no data. Skipped documents
	// are not failures.
	Skipped bool

	// Error contains the error if processing failed.
	// This is nil if processing was successful.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// Name returns the file label used in rows and messages.
func (r Result) Name() string {
	return filepath.Base(r.FilePath)
}

// ProcessingStats contains statistics about the processing of one document.
type ProcessingStats struct {
	// Records is the number of rows flattened from the document.
	Records int

	// Columns is the number of distinct columns across those rows.
	Columns int

	// Items is the number of sold items extracted.
	Items int

	// RepeatingTag is the detected record element, or "" when the document
	// was treated as a single record.
	RepeatingTag string

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// BatchResult is the combined outcome of a run.
type BatchResult struct {
	// RunID identifies the run in logs.
	RunID string

	// Results has one entry per input file, in processing order.
	Results []Result

	// Rows holds every flattened row, in processing order.
	Rows []types.SourcedRow

	// Groups holds the rows partitioned by record type.
	Groups []types.Group

	// Items holds every sold item, in processing order.
	Items []types.SoldItem
}

// Failed returns the results of documents that could not be processed.
func (b BatchResult) Failed() []Result {
	var failed []Result
	for _, r := range b.Results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}

// Succeeded returns the results of documents that produced data.
func (b BatchResult) Succeeded() []Result {
	var ok []Result
	for _, r := range b.Results {
		if r.Success && !r.Skipped {
			ok = append(ok, r)
		}
	}
	return ok
}

// Check returns ErrNoData when the run produced neither rows nor items.
func (b BatchResult) Check() error {
	if len(b.Rows) == 0 && len(b.Items) == 0 {
		return ErrNoData
	}
	return nil
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs batches of XML documents through the conversion pipeline.
type Converter struct {
	// partition controls how rows are grouped into sheets.
	partition partition.Options

	// logger is used for per-document progress and diagnostics.
	logger Logger

	// readFile loads a document. Tests replace it to simulate read errors.
	readFile func(string) ([]byte, error)
}

// Logger is an interface for logging.
// CUSTOMIZATION: Implement this interface with your preferred logging library.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter.
//
// PARAMETERS:
//   - opts: Grouping options for the partitioner.
//   - logger: Receives progress messages. Nil uses the default stdout logger.
func New(opts partition.Options, logger Logger) *Converter {
	if logger == nil {
		logger = &defaultLogger{}
	}
	return &Converter{
		partition: opts,
		logger:    logger,
		readFile:  os.ReadFile,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Run processes every file and partitions the collected rows.
//
// PARAMETERS:
//   - files: Paths of the input documents. They are processed in file name
//            order regardless of the order given.
//
// RETURNS:
//   - The combined BatchResult. Per-document failures are reported in
//     Results and never abort the run.
func (c *Converter) Run(files []string) BatchResult {
	ordered := append([]string(nil), files...)
	utils.SortByFileName(ordered)

	batch := BatchResult{RunID: uuid.New().String()}
	c.logger.Debug("Run %s: %d file(s)", batch.RunID, len(ordered))

	for _, path := range ordered {
		result, rows, items := c.ProcessFile(path)
		batch.Results = append(batch.Results, result)
		batch.Rows = append(batch.Rows, rows...)
		batch.Items = append(batch.Items, items...)
	}

	batch.Groups = partition.Partition(batch.Rows, c.partition)
	c.logger.Debug("Run %s: %d rows in %d group(s), %d items",
		batch.RunID, len(batch.Rows), len(batch.Groups), len(batch.Items))

	return batch
}

// ProcessFile reads and converts one document.
//
// RETURNS:
//   - The document's Result.
//   - Its rows, tagged with the file name.
//   - Its sold items.
func (c *Converter) ProcessFile(path string) (Result, []types.SourcedRow, []types.SoldItem) {
	startTime := time.Now()
	result := Result{FilePath: path}
	name := result.Name()

	// =========================================================================
	// STEP 1: READ
	// =========================================================================

	data, err := c.readFile(path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read file: %w", err)
		c.logger.Error("%s: %v", name, result.Error)
		return result, nil, nil
	}

	rows, items, err := c.ProcessDocument(data, name, &result.Stats)
	result.Stats.ProcessingTime = time.Since(startTime)
	if err != nil {
		result.Error = err
		c.logger.Error("%s: %v", name, err)
		return result, nil, nil
	}

	result.Success = true

	if len(rows) == 0 && len(items) == 0 {
		result.Skipped = true
		c.logger.Info("%s: no data found, skipping", name)
		return result, nil, nil
	}

	c.logger.Info("%s: %d records, %d items sold", name, len(rows), len(items))
	return result, rows, items
}

// ProcessDocument converts one document that is already in memory.
//
// PARAMETERS:
//   - data: The raw document bytes.
//   - source: The label attached to every row (usually the file name).
//   - stats: Filled with the document statistics. May be nil.
//
// RETURNS:
//   - The document's rows and sold items.
//   - A *xmldoc.ParseError if the document is malformed.
func (c *Converter) ProcessDocument(data []byte, source string, stats *ProcessingStats) ([]types.SourcedRow, []types.SoldItem, error) {
	if stats == nil {
		stats = &ProcessingStats{}
	}

	// =========================================================================
	// STEP 2: FLATTEN
	// =========================================================================

	flat, err := flatten.ParseDocument(data, source)
	if err != nil {
		return nil, nil, err
	}
	if flat.Empty {
		c.logger.Debug("%s: empty document", source)
		return nil, nil, nil
	}

	stats.Records = len(flat.Rows)
	stats.Columns = len(flat.Columns)
	stats.RepeatingTag = flat.RepeatingTag
	if flat.RepeatingTag == "" {
		c.logger.Debug("%s: no repeating element, using the whole document as one record", source)
	} else {
		c.logger.Debug("%s: repeating element <%s>", source, flat.RepeatingTag)
	}

	// =========================================================================
	// STEP 3: EXTRACT SOLD ITEMS
	// =========================================================================
	// The extractor parses the document on its own and knows nothing about
	// the flattened rows.

	items, err := sales.Extract(data, source)
	if err != nil {
		return nil, nil, err
	}
	stats.Items = len(items)

	// =========================================================================
	// STEP 4: TAG ROWS WITH THEIR SOURCE
	// =========================================================================

	rows := make([]types.SourcedRow, len(flat.Rows))
	for i, row := range flat.Rows {
		rows[i] = types.SourcedRow{Row: row, Source: source}
	}

	return rows, items, nil
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

// defaultLogger is a simple logger that prints to stdout.
type defaultLogger struct{}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	fmt.Printf("[DEBUG] "+msg+"\n", args...)
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}
