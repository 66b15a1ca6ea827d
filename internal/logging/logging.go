// =============================================================================
// XML to XLSX Converter - Logging
// =============================================================================
//
// This module builds the application logger. Log lines go to stderr in a
// human-readable console format and, when a log file is configured, are
// appended to that file as well.
//
// The batch converter does not depend on zap directly. It logs through its
// own small Logger interface, and Adapter bridges the two.
//
// =============================================================================

package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger at the given level ("debug", "info", "warn",
// "error"). When file is not empty, output is also appended to it.
func New(level, file string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	outputs := []string{"stderr"}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		outputs = append(outputs, file)
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Encoding:          "console",
		EncoderConfig:     encoderConfig(),
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func encoderConfig() zapcore.EncoderConfig {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	return enc
}

// Adapter exposes a zap logger through printf-style Debug/Info/Warn/Error
// methods.
type Adapter struct {
	s *zap.SugaredLogger
}

// NewAdapter wraps l. A nil logger discards everything.
func NewAdapter(l *zap.Logger) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Adapter{s: l.Sugar()}
}

func (a *Adapter) Debug(msg string, args ...interface{}) { a.s.Debugf(msg, args...) }
func (a *Adapter) Info(msg string, args ...interface{})  { a.s.Infof(msg, args...) }
func (a *Adapter) Warn(msg string, args ...interface{})  { a.s.Warnf(msg, args...) }
func (a *Adapter) Error(msg string, args ...interface{}) { a.s.Errorf(msg, args...) }
