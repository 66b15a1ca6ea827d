package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("chatty", "")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "xlcut.log")

	logger, err := New("info", file)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("processed", zap.Int("files", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "processed")
	assert.Contains(t, string(data), "INFO")
	assert.NotContains(t, string(data), "hidden")
}

func TestAdapter_FormatsMessages(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a := NewAdapter(zap.New(core))

	a.Debug("reading %s", "a.xml")
	a.Info("%s: %d records", "a.xml", 2)
	a.Warn("careful")
	a.Error("%s: %v", "b.xml", "boom")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, "reading a.xml", entries[0].Message)
	assert.Equal(t, "a.xml: 2 records", entries[1].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "b.xml: boom", entries[3].Message)
}

func TestAdapter_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewAdapter(nil).Info("nothing %d", 1)
	})
}
