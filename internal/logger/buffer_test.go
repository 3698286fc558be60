package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogBufferConcurrentAccess(t *testing.T) {
	spillFile := filepath.Join(t.TempDir(), "test_spill.log")

	buffer, err := NewLogBuffer(100, spillFile, zap.NewNop())
	require.NoError(t, err)
	defer buffer.Close()

	done := buffer.StartPeriodicFlush(50 * time.Millisecond)
	defer close(done)

	var wg sync.WaitGroup
	numGoroutines := 10
	logsPerGoroutine := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < logsPerGoroutine; j++ {
				fields := map[string]interface{}{"goroutine": id, "iteration": j}
				assert.NoError(t, buffer.Add("info", fmt.Sprintf("render %d/%d", id, j), fields))
			}
		}(i)
	}

	go func() {
		for i := 0; i < 20; i++ {
			_ = buffer.GetRecentLogs(10)
			_, _ = buffer.GetStats()
			time.Sleep(5 * time.Millisecond)
		}
	}()

	wg.Wait()
	require.NoError(t, buffer.Flush())

	total, spilled := buffer.GetStats()
	assert.Equal(t, uint64(numGoroutines*logsPerGoroutine), total)
	assert.Equal(t, total-100, spilled)

	_, err = os.Stat(spillFile)
	assert.NoError(t, err)
}

func TestLogBufferRingBufferBehavior(t *testing.T) {
	bufferSize := 5
	buffer, err := NewLogBuffer(bufferSize, "", zap.NewNop())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, buffer.Add("info", fmt.Sprintf("Log %d", i), nil))
	}

	logs := buffer.GetRecentLogs(10)
	require.Len(t, logs, bufferSize)
	assert.Equal(t, "Log 5", logs[0].Message)
	assert.Equal(t, "Log 9", logs[len(logs)-1].Message)

	logs = buffer.GetRecentLogs(2)
	require.Len(t, logs, 2)
	assert.Equal(t, "Log 8", logs[0].Message)

	total, spilled := buffer.GetStats()
	assert.Equal(t, uint64(10), total)
	assert.Equal(t, uint64(0), spilled)
}

func TestLogBufferPartiallyFilled(t *testing.T) {
	buffer, err := NewLogBuffer(5, "", zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, buffer.Add("warn", "one", nil))
	require.NoError(t, buffer.Add("info", "two", nil))

	logs := buffer.GetRecentLogs(0)
	require.Len(t, logs, 2)
	assert.Equal(t, "one", logs[0].Message)
	assert.NoError(t, buffer.Close())
}

func TestLogBufferRejectsZeroSize(t *testing.T) {
	_, err := NewLogBuffer(0, "", zap.NewNop())
	assert.Error(t, err)
}

func TestLogBufferCloseSpillsHeldEntries(t *testing.T) {
	spillFile := filepath.Join(t.TempDir(), "logs", "spill.log")
	buffer, err := NewLogBuffer(3, spillFile, zap.NewNop())
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, buffer.Add("info", fmt.Sprintf("Log %d", i), nil))
	}
	require.NoError(t, buffer.Close())

	data, err := os.ReadFile(spillFile)
	require.NoError(t, err)
	// One eviction plus the three entries still held.
	assert.Equal(t, 4, countLines(data))
}

func countLines(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}
