package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage("Report exported", zap.String("file", "exports/x.json"))
	assert.Contains(t, msg, "Report exported: exports/x.json")

	msg = FormatMessage("Charts exported", zap.Int("count", 5), zap.String("dir", "out"))
	assert.Contains(t, msg, "5 charts written to out")

	assert.Equal(t, "plain", FormatMessage("plain"))
}

func TestPrettyLoggerDropsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewPrettyLogger(zapcore.AddSync(&buf), false)

	log.Info("Server listening", zap.String("addr", ":8080"), zap.String("secret", "hidden"))
	log.Debug("not shown at info level")

	out := buf.String()
	assert.Contains(t, out, "Serving dashboard API on :8080")
	assert.Contains(t, out, "[INFO]")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "not shown")
}

func TestTUILoggerWritesIntoBuffer(t *testing.T) {
	buffer, err := NewLogBuffer(10, "", zap.NewNop())
	require.NoError(t, err)

	log, err := CreateTUILoggerWithBuffer(true, buffer)
	require.NoError(t, err)

	log.Named("dashboard").Debug("View selected", zap.String("view", "risk"))

	logs := buffer.GetRecentLogs(0)
	require.Len(t, logs, 1)
	assert.Equal(t, "debug", logs[0].Level)
	assert.Equal(t, "dashboard", logs[0].Logger)
	assert.Equal(t, "View selected", logs[0].Message)
	assert.Equal(t, "risk", logs[0].Fields["view"])
	assert.False(t, logs[0].Timestamp.IsZero())
}

func TestTUILoggerRequiresBuffer(t *testing.T) {
	_, err := CreateTUILoggerWithBuffer(false, nil)
	assert.Error(t, err)
}

func TestParseEntryFallsBackToRawLine(t *testing.T) {
	entry := parseEntry("not json")
	assert.Equal(t, "not json", entry.Message)
	assert.Equal(t, "info", entry.Level)
}
