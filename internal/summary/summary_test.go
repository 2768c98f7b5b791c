package summary

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/bethropolis/dir-tree/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	messages []string
}

func (c *captureLogger) Info(format string, args ...interface{}) {
	c.messages = append(c.messages, fmt.Sprintf(format, args...))
}

func TestFormatCounts(t *testing.T) {
	tests := []struct {
		name     string
		stats    tree.Stats
		expected string
	}{
		{name: "empty", stats: tree.Stats{}, expected: "0 directories, 0 files"},
		{name: "singular", stats: tree.Stats{Dirs: 1, Files: 1}, expected: "1 directory, 1 file"},
		{name: "with diagnostics", stats: tree.Stats{Dirs: 3, Files: 7, Diagnostics: 2}, expected: "3 directories, 7 files, 2 unreadable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCounts(tt.stats))
		})
	}
}

func TestDisplayResults(t *testing.T) {
	logger := &captureLogger{}
	DisplayResults(logger, tree.Stats{Dirs: 2, Files: 5}, 1500*time.Microsecond, false)

	require.Len(t, logger.messages, 2)
	assert.Equal(t, "2 directories, 5 files", logger.messages[0])
	assert.Equal(t, "Tree rendered in 2ms.", logger.messages[1])
}

func TestDisplayResults_Quiet(t *testing.T) {
	logger := &captureLogger{}
	DisplayResults(logger, tree.Stats{Dirs: 2}, time.Second, true)

	assert.Empty(t, logger.messages)
}

func TestDisplaySkippedItems(t *testing.T) {
	logger := &captureLogger{}
	var out bytes.Buffer

	DisplaySkippedItems(logger, []tree.SkippedItem{
		{Path: "build", Reason: tree.ReasonIgnoredRule, IsDir: true},
		{Path: "debug.log", Reason: tree.ReasonIgnoredRule, Rule: "line 2: *.log"},
	}, &out, false)

	assert.Equal(t, []string{"--- Skipped Items (2) ---", "--- End Skipped Items ---"}, logger.messages)
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "Skipped DIR : build")
	assert.Contains(t, string(lines[0]), "[Ignored (Gitignore/Custom Rule)]")
	assert.Contains(t, string(lines[1]), "Skipped FILE: debug.log")
	assert.Contains(t, string(lines[1]), "[Ignored (Gitignore/Custom Rule), line 2: *.log]")
}

func TestDisplaySkippedItems_None(t *testing.T) {
	logger := &captureLogger{}
	var out bytes.Buffer

	DisplaySkippedItems(logger, nil, &out, false)

	assert.Empty(t, out.String())
	assert.Contains(t, logger.messages, "No items were skipped.")
}
