// =============================================================================
// XML to XLSX Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults
//   2. Main config file (xlcut.yaml), if present
//   3. A .env file in the working directory, if present
//   4. XLCUT_* environment variables
//
// A missing config file is not an error: the tool runs on defaults so it can
// be dropped next to a "source" folder and started without any setup.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up when none is given.
const DefaultConfigFile = "xlcut.yaml"

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables that override config file values.
const (
	EnvSourceDir  = "XLCUT_SOURCE_DIR"
	EnvOutputDir  = "XLCUT_OUTPUT_DIR"
	EnvArchiveDir = "XLCUT_ARCHIVE_DIR"
	EnvLogLevel   = "XLCUT_LOG_LEVEL"
	EnvLogFile    = "XLCUT_LOG_FILE"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// SourceDir is the directory scanned for input XML files.
	// Default: "./source"
	SourceDir string `yaml:"source_dir"`

	// OutputDir is where the generated workbook and error logs are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is where input files are moved after a successful run.
	// Leave empty to keep input files in place.
	// Default: "" (no archival)
	ArchiveDir string `yaml:"archive_dir"`

	// =========================================================================
	// INPUT / OUTPUT SETTINGS
	// =========================================================================

	// InputPattern is the glob matched against file names in SourceDir.
	// Default: "*.xml"
	InputPattern string `yaml:"input_pattern"`

	// OutputNameFormat defines the workbook file name.
	// Placeholders:
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "export_{timestamp}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`

	// WriteErrorLog enables error_log_{timestamp}.txt for failed documents.
	// Default: true
	WriteErrorLog *bool `yaml:"write_error_log"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is an optional file that receives a copy of the log.
	// Default: "" (stderr only)
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// GROUPING AND WORKBOOK SETTINGS
	// =========================================================================

	Partition PartitionConfig `yaml:"partition"`
	Workbook  WorkbookConfig  `yaml:"workbook"`
}

// PartitionConfig controls how rows are split into sheets.
type PartitionConfig struct {
	// Discriminant is the flattened key naming a row's group.
	// Default: "@type"
	Discriminant string `yaml:"discriminant"`

	// DefaultGroup names the group of rows without a discriminant.
	// Default: "data"
	DefaultGroup string `yaml:"default_group"`

	// SourceColumn is the header of the source-file column shown when a run
	// spans several files.
	// Default: "_source_file"
	SourceColumn string `yaml:"source_column"`
}

// WorkbookConfig controls the generated workbook.
type WorkbookConfig struct {
	// ItemsSheet is the name of the sold items sheet.
	// Default: "Items Sold"
	ItemsSheet string `yaml:"items_sheet"`

	// MaxWidth caps automatic column widths.
	// Default: 50
	MaxWidth int `yaml:"max_width"`

	// WidthSampleRows is how many rows are measured for column widths.
	// Default: 100
	WidthSampleRows int `yaml:"width_sample_rows"`
}

// ErrorLogEnabled reports whether failed documents are written to an error
// log file.
func (c *MainConfig) ErrorLogEnabled() bool {
	return c.WriteErrorLog == nil || *c.WriteErrorLog
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Overrides holds command line values that replace config file and
// environment values. Empty fields are ignored.
type Overrides struct {
	SourceDir string
	OutputDir string
	LogLevel  string
}

// Load returns the configuration for a run. A missing file at configPath is
// not an error; defaults and environment overrides still apply.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file exists but cannot be parsed, or if the resulting
//     configuration is invalid.
func Load(configPath string) (*MainConfig, error) {
	return LoadWithOverrides(configPath, Overrides{})
}

// LoadWithOverrides is Load with command line overrides. The overrides are
// applied before validation, so only the directories that are actually used
// get created.
func LoadWithOverrides(configPath string, overrides Overrides) (*MainConfig, error) {
	cfg, err := loadMainConfig(configPath, overrides)
	if errors.Is(err, ErrConfigNotFound) {
		cfg = &MainConfig{}
		if err := finish(cfg, overrides); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cfg, err
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - ErrConfigNotFound if the file does not exist.
//   - An error if the file cannot be read or parsed, or is invalid.
//
// CUSTOMIZATION:
//   - Add default values for any new configuration options.
//   - Add validation for required fields.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	return loadMainConfig(configPath, Overrides{})
}

func loadMainConfig(configPath string, overrides Overrides) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := finish(&config, overrides); err != nil {
		return nil, err
	}
	return &config, nil
}

// finish applies environment and command line overrides and defaults, then
// validates.
func finish(config *MainConfig, overrides Overrides) error {
	applyEnvOverrides(config)
	applyOverrides(config, overrides)
	applyMainConfigDefaults(config)

	if err := validateMainConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyOverrides(config *MainConfig, o Overrides) {
	if o.SourceDir != "" {
		config.SourceDir = o.SourceDir
	}
	if o.OutputDir != "" {
		config.OutputDir = o.OutputDir
	}
	if o.LogLevel != "" {
		config.LogLevel = o.LogLevel
	}
}

// applyEnvOverrides copies XLCUT_* variables over file values. A .env file
// in the working directory is loaded first; it never replaces variables that
// are already set.
func applyEnvOverrides(config *MainConfig) {
	_ = godotenv.Load()

	overrides := []struct {
		key    string
		target *string
	}{
		{EnvSourceDir, &config.SourceDir},
		{EnvOutputDir, &config.OutputDir},
		{EnvArchiveDir, &config.ArchiveDir},
		{EnvLogLevel, &config.LogLevel},
		{EnvLogFile, &config.LogFile},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			*o.target = v
		}
	}
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.SourceDir == "" {
		config.SourceDir = "./source"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputPattern == "" {
		config.InputPattern = "*.xml"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "export_{timestamp}.xlsx"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	config.LogLevel = strings.ToLower(config.LogLevel)

	if config.Partition.Discriminant == "" {
		config.Partition.Discriminant = "@type"
	}
	if config.Partition.DefaultGroup == "" {
		config.Partition.DefaultGroup = "data"
	}
	if config.Partition.SourceColumn == "" {
		config.Partition.SourceColumn = "_source_file"
	}

	if config.Workbook.ItemsSheet == "" {
		config.Workbook.ItemsSheet = "Items Sold"
	}
	if config.Workbook.MaxWidth == 0 {
		config.Workbook.MaxWidth = 50
	}
	if config.Workbook.WidthSampleRows == 0 {
		config.Workbook.WidthSampleRows = 100
	}
}

// validateMainConfig validates the main configuration and creates missing
// directories.
func validateMainConfig(config *MainConfig) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", config.LogLevel)
	}

	if _, err := filepath.Match(config.InputPattern, ""); err != nil {
		return fmt.Errorf("bad input pattern %q: %w", config.InputPattern, err)
	}

	if config.Workbook.MaxWidth < 0 || config.Workbook.WidthSampleRows < 0 {
		return errors.New("workbook widths must not be negative")
	}

	dirs := []string{config.SourceDir, config.OutputDir}
	if config.ArchiveDir != "" {
		dirs = append(dirs, config.ArchiveDir)
	}
	if config.LogFile != "" {
		dirs = append(dirs, filepath.Dir(config.LogFile))
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
