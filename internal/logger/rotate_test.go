package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWithRotatingFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "xau.log")
	base := zap.NewNop()

	log, closeFile := WithRotatingFile(base, RotationConfig{Path: path, MaxSizeMB: 1}, false)
	log.Named("export").Info("Report exported", zap.String("file", "a.json"))
	log.Debug("hidden below info")
	require.NoError(t, log.Sync())
	require.NoError(t, closeFile())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Report exported", entry["msg"])
	assert.Equal(t, "export", entry["logger"])
	assert.Equal(t, "a.json", entry["file"])
}

func TestWithRotatingFileDisabled(t *testing.T) {
	base := zap.NewNop()
	log, closeFile := WithRotatingFile(base, RotationConfig{}, true)
	assert.Same(t, base, log)
	assert.NoError(t, closeFile())
}
