// Package summary handles display of render results and statistics
package summary

import (
	"fmt"
	"io"
	"time"

	"github.com/bethropolis/dir-tree/internal/tree"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// DisplayResults logs the totals of a render operation
func DisplayResults(
	logger Logger,
	stats tree.Stats,
	duration time.Duration,
	quiet bool,
) {
	if quiet {
		return
	}
	logger.Info("%s", FormatCounts(stats))
	logger.Info("Tree rendered in %v.", duration.Round(time.Millisecond))
}

// FormatCounts returns a "N directories, M files" summary line.
func FormatCounts(stats tree.Stats) string {
	line := fmt.Sprintf("%d %s, %d %s",
		stats.Dirs, plural(stats.Dirs, "directory", "directories"),
		stats.Files, plural(stats.Files, "file", "files"))
	if stats.Diagnostics > 0 {
		line += fmt.Sprintf(", %d unreadable", stats.Diagnostics)
	}
	return line
}

// DisplaySkippedItems formats and prints information about skipped items.
// Items are expected in the sorted order tree.Walk returns them in.
func DisplaySkippedItems(
	logger Logger,
	skippedItems []tree.SkippedItem,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) > 0 {
		for _, item := range skippedItems {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR " // Add space for alignment
			}
			reason := string(item.Reason)
			if item.Rule != "" {
				reason += ", " + item.Rule
			}
			fmt.Fprintf(output, "Skipped %s: %-50.50s [%s]\n",
				typeStr,
				item.Path,
				reason,
			)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
