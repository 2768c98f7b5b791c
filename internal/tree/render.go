package tree

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bethropolis/dir-tree/internal/ignore"
	"github.com/bethropolis/dir-tree/internal/utils"
)

// ErrNotDirectory is returned by Walk when the root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

type renderer struct {
	opts    Options
	root    string
	matcher ignore.Matcher
	emit    LineFunc
	tracker *SkippedTracker
	stats   Stats
}

func newRenderer(root string, matcher ignore.Matcher, fn LineFunc, opts []Option) *renderer {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Root != "" {
		root = options.Root
	}
	if fn == nil {
		fn = func(Line) {}
	}
	return &renderer{
		opts:    options,
		root:    root,
		matcher: matcher,
		emit:    fn,
		tracker: NewSkippedTracker(16),
	}
}

// Render lists the children of path under prefix and recurses into
// subdirectories, passing every line to fn. A nil matcher ignores nothing.
// Listing failures become a single diagnostic line and never abort the
// walk of sibling directories.
func Render(path, prefix string, matcher ignore.Matcher, fn LineFunc, opts ...Option) Stats {
	r := newRenderer(path, matcher, fn, opts)
	r.render(path, prefix, 0)
	r.stats.Skipped = r.tracker.Len()
	return r.stats
}

// Walk validates root and renders it from an empty prefix. It returns the
// render stats, the skipped entries sorted by path, and the context error
// if the render was interrupted.
func Walk(root string, matcher ignore.Matcher, fn LineFunc, opts ...Option) (Stats, []SkippedItem, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Stats{}, nil, fmt.Errorf("tree: cannot access root '%s': %w", root, err)
	}
	if !info.IsDir() {
		return Stats{}, nil, fmt.Errorf("tree: root '%s': %w", root, ErrNotDirectory)
	}

	r := newRenderer(root, matcher, fn, opts)
	r.opts.Logger.Debug("tree.Walk started. Root: %s, MaxDepth: %d, VisibleLast: %v",
		root, r.opts.MaxDepth, r.opts.VisibleLast)

	r.render(root, "", 0)
	r.stats.Skipped = r.tracker.Len()

	r.opts.Logger.Debug("tree.Walk finished: %d dirs, %d files, %d skipped",
		r.stats.Dirs, r.stats.Files, r.stats.Skipped)
	return r.stats, r.tracker.Items(), r.opts.Context.Err()
}

// Lines renders root and returns the printed text of every line.
func Lines(root string, matcher ignore.Matcher, opts ...Option) ([]string, error) {
	var lines []string
	_, _, err := Walk(root, matcher, func(line Line) {
		lines = append(lines, line.Text())
	}, opts...)
	return lines, err
}

func (r *renderer) render(path, prefix string, depth int) {
	if r.opts.Context.Err() != nil {
		return
	}

	entries, err := r.opts.readDir(path)
	if err != nil {
		message, reason := diagnostic(path, err)
		r.opts.Logger.Debug("tree: listing %q failed: %v", path, err)
		r.tracker.Track(utils.RelativeSlashPath(r.root, path), reason, true)
		r.stats.Diagnostics++
		r.emit(Line{Kind: LineDiagnostic, Prefix: prefix, Depth: depth, Message: message})
		return
	}
	slices.SortFunc(entries, func(a, b os.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	visible := make([]child, 0, len(entries))
	for i, entry := range entries {
		c, reason, ok := r.classify(path, i, entry)
		if !ok {
			item := SkippedItem{Path: c.relPath, Reason: reason, IsDir: c.isDir}
			if reason == ReasonIgnoredRule {
				item.Rule = r.explain(c.relPath, c.isDir)
			}
			r.opts.Logger.Debug("tree: skipping %q (%s)", c.relPath, reason)
			r.tracker.Add(item)
			continue
		}
		visible = append(visible, c)
	}

	lastIndex := len(entries) - 1
	if r.opts.VisibleLast && len(visible) > 0 {
		lastIndex = visible[len(visible)-1].index
	}

	for _, c := range visible {
		if r.opts.Context.Err() != nil {
			return
		}

		isLast := c.index == lastIndex
		connector, extension := TeeConnector, BranchExtension
		if isLast {
			connector, extension = CornerConnector, LastExtension
		}

		r.emit(Line{
			Kind:      LineEntry,
			Prefix:    prefix,
			Connector: connector,
			Name:      c.name,
			Path:      c.relPath,
			IsDir:     c.isDir,
			Depth:     depth,
		})
		if !c.isDir {
			r.stats.Files++
			continue
		}
		r.stats.Dirs++

		if r.opts.MaxDepth > 0 && depth+1 >= r.opts.MaxDepth {
			r.tracker.Track(c.relPath, ReasonDepthLimit, true)
			continue
		}
		r.render(c.path, prefix+extension, depth+1)
	}
}

// explain names the ignore rule that excluded path, if the matcher can
// tell.
func (r *renderer) explain(path string, isDir bool) string {
	explainer, ok := r.matcher.(ignore.Explainer)
	if !ok {
		return ""
	}
	rule, found := explainer.Explain(path, isDir)
	if !found {
		return ""
	}
	return rule.String()
}
