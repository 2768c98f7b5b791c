// Package ignore provides file/directory pattern matching for exclusion
//
// Patterns follow gitignore syntax: '#' comments, '!' negation, trailing
// '/' for directories, leading or inner '/' anchoring, and '*', '?',
// '[...]' and '**' wildcards. Rules are evaluated in file order and the
// last matching rule wins.
//
// The default engine is the self-contained RuleSet; two library-backed
// engines can be selected with WithEngine.
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bethropolis/dir-tree/internal/utils"
)

type loader struct {
	fileName       string
	engine         Engine
	customPatterns []string
	logger         utils.Logger
}

// Load reads the ignore file in rootDir once and compiles it together with
// any custom rules. It returns a nil Matcher when there is neither an
// ignore file nor a custom rule.
func Load(rootDir string, opts ...Option) (Matcher, error) {
	l := &loader{
		fileName: DefaultFileName,
		engine:   EngineNative,
		logger:   utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	ignorePath := filepath.Join(absRootDir, l.fileName)
	lines, found, err := readIgnoreFile(ignorePath)
	if err != nil {
		return nil, err
	}
	if found {
		l.logger.Debug("ignore.Load: read %d lines from %s", len(lines), ignorePath)
	} else {
		l.logger.Debug("ignore.Load: no %s in %s", l.fileName, absRootDir)
	}

	if !found && len(l.customPatterns) == 0 {
		return nil, nil
	}
	lines = append(lines, l.customPatterns...)

	l.logger.Debug("ignore.Load: compiling %d lines with the %s engine", len(lines), l.engine)
	matcher, err := Compile(l.engine, lines, absRootDir, l.logger)
	if err != nil {
		return nil, err
	}
	return matcher, nil
}

// NewFromConfig loads a Matcher from a Config struct
func NewFromConfig(cfg Config) (Matcher, error) {
	options := []Option{
		WithEngine(cfg.Engine),
		WithFileName(cfg.FileName),
		WithLogger(cfg.Logger),
	}
	if len(cfg.CustomRules) > 0 {
		options = append(options, WithCustomRules(cfg.CustomRules))
	}
	return Load(cfg.RootDir, options...)
}

// IsIgnored is a convenience function that treats a nil matcher as
// ignoring nothing.
func IsIgnored(matcher Matcher, path string, isDir bool) bool {
	if matcher == nil {
		return false
	}
	return matcher.IsIgnored(path, isDir)
}

// ReadLines splits ignore-file content into lines.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ignore: failed to read patterns: %w", err)
	}
	return lines, nil
}

// readIgnoreFile returns found=false without error when the file is absent.
func readIgnoreFile(path string) (lines []string, found bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("ignore: failed to open %s: %w", path, err)
	}
	defer f.Close()

	lines, err = ReadLines(f)
	if err != nil {
		return nil, true, err
	}
	return lines, true, nil
}
