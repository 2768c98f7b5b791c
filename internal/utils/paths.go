package utils

import (
	"path/filepath"
	"strings"
)

// RelativeSlashPath returns path relative to root using forward slashes.
// It falls back to the slash form of path when no relative path exists,
// and returns "." when both resolve to the same location.
func RelativeSlashPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(path))
	}
	return filepath.ToSlash(rel)
}

// SplitList splits a comma-separated flag value, trimming whitespace and
// dropping empty items.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
