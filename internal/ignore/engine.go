package ignore

import (
	"fmt"
	"strings"

	"github.com/bethropolis/dir-tree/internal/utils"
	denormal "github.com/denormal/go-gitignore"
	sabhiram "github.com/sabhiram/go-gitignore"
)

// Engine selects the implementation that evaluates ignore patterns.
type Engine string

const (
	// EngineNative is the built-in RuleSet.
	EngineNative Engine = "native"
	// EngineDenormal delegates to github.com/denormal/go-gitignore.
	EngineDenormal Engine = "denormal"
	// EngineSabhiram delegates to github.com/sabhiram/go-gitignore.
	EngineSabhiram Engine = "sabhiram"
)

// Engines lists the accepted engine names.
var Engines = []Engine{EngineNative, EngineDenormal, EngineSabhiram}

// ParseEngine resolves an engine name; the empty string selects EngineNative.
func ParseEngine(name string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EngineNative:
		return EngineNative, nil
	case EngineDenormal:
		return EngineDenormal, nil
	case EngineSabhiram:
		return EngineSabhiram, nil
	}
	return "", fmt.Errorf("ignore: unknown engine %q (want one of %v)", name, Engines)
}

// Compile builds a Matcher for lines with the given engine. base is the
// directory the patterns are relative to.
func Compile(engine Engine, lines []string, base string, logger utils.Logger) (Matcher, error) {
	logger = utils.OrNoop(logger)

	switch engine {
	case "", EngineNative:
		rs, err := Build(lines)
		if err != nil {
			return nil, err
		}
		return rs, nil
	case EngineDenormal:
		m, err := newDenormalMatcher(lines, base, logger)
		if err != nil {
			return nil, err
		}
		return m, nil
	case EngineSabhiram:
		return newSabhiramMatcher(lines), nil
	}
	return nil, fmt.Errorf("ignore: unknown engine %q", engine)
}

type denormalMatcher struct {
	gi denormal.GitIgnore
}

func newDenormalMatcher(lines []string, base string, logger utils.Logger) (*denormalMatcher, error) {
	var firstErr error
	gi := denormal.New(strings.NewReader(strings.Join(lines, "\n")), base, func(e denormal.Error) bool {
		logger.Warn("ignore: denormal engine rejected a pattern: %v", e.Error())
		if firstErr == nil {
			firstErr = fmt.Errorf("ignore: denormal engine: %s", e.Error())
		}
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return &denormalMatcher{gi: gi}, nil
}

func (m *denormalMatcher) IsIgnored(relativePath string, isDir bool) bool {
	return matchWithParents(relativePath, isDir, func(path string, dir bool) bool {
		match := m.gi.Relative(path, dir)
		return match != nil && match.Ignore()
	})
}

type sabhiramMatcher struct {
	gi *sabhiram.GitIgnore
}

func newSabhiramMatcher(lines []string) *sabhiramMatcher {
	return &sabhiramMatcher{gi: sabhiram.CompileIgnoreLines(lines...)}
}

// IsIgnored marks directories with a trailing slash, which is how the
// library tells dir-only patterns apart.
func (m *sabhiramMatcher) IsIgnored(relativePath string, isDir bool) bool {
	return matchWithParents(relativePath, isDir, func(path string, dir bool) bool {
		if dir {
			path += "/"
		}
		return m.gi.MatchesPath(path)
	})
}
