package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/dir-tree/internal/ignore"
	"github.com/bethropolis/dir-tree/internal/utils"
)

// child is a directory entry after classification.
type child struct {
	index   int // position in the sorted, unfiltered listing
	name    string
	path    string
	relPath string
	isDir   bool
}

// classify resolves whether entry is a directory and decides whether it is
// rendered. Symlinks are followed when deciding whether an entry is a
// directory.
func (r *renderer) classify(dir string, index int, entry fs.DirEntry) (child, SkippedReason, bool) {
	name := entry.Name()
	fullPath := filepath.Join(dir, name)
	c := child{
		index:   index,
		name:    name,
		path:    fullPath,
		relPath: utils.RelativeSlashPath(r.root, fullPath),
		isDir:   entry.IsDir(),
	}

	if entry.Type()&fs.ModeSymlink != 0 {
		if info, err := os.Stat(fullPath); err == nil {
			c.isDir = info.IsDir()
		} else {
			r.opts.Logger.Debug("tree: cannot resolve symlink %q: %v", c.relPath, err)
		}
	}

	if c.isDir {
		if _, excluded := r.opts.Exclusions[name]; excluded {
			return c, ReasonExcludedName, false
		}
	}
	if r.opts.IgnoreHidden && strings.HasPrefix(name, ".") {
		return c, ReasonIgnoredHidden, false
	}
	if ignore.IsIgnored(r.matcher, c.relPath, c.isDir) {
		return c, ReasonIgnoredRule, false
	}
	return c, "", true
}

// diagnostic converts a listing failure into the line printed in place of
// the directory's children.
func diagnostic(path string, err error) (string, SkippedReason) {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied: " + path, ReasonPermError
	case errors.Is(err, fs.ErrNotExist):
		return "Path not found: " + path, ReasonNotFound
	default:
		return fmt.Sprintf("Cannot read directory: %s (%v)", path, unwrapPathError(err)), ReasonReadError
	}
}

func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
