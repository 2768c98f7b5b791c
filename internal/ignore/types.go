// Package ignore provides file/directory pattern matching for exclusion
package ignore

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/bethropolis/dir-tree/internal/utils"
)

// DefaultFileName is the ignore file looked up in the render root.
const DefaultFileName = ".gitignore"

// ErrUnterminatedClass is reported for a '[' with no closing ']'.
var ErrUnterminatedClass = errors.New("unterminated character class")

// ErrUnknownClass is reported for a "[:name:]" class wildmatch does not know.
var ErrUnknownClass = errors.New("unknown character class")

// Matcher reports whether a root-relative, slash-separated path is excluded.
// A nil Matcher means no ignore rules are in effect.
type Matcher interface {
	IsIgnored(relativePath string, isDir bool) bool
}

// Explainer is implemented by matchers that can name the rule deciding a
// path. *RuleSet implements it.
type Explainer interface {
	Explain(relativePath string, isDir bool) (Rule, bool)
}

// Rule is one compiled line of an ignore file.
type Rule struct {
	Pattern  string // line as written, minus trailing whitespace
	Line     int    // 1-based line number in the source
	Negate   bool   // leading '!'
	DirOnly  bool   // trailing '/'
	Anchored bool   // leading or inner '/'

	re *regexp.Regexp
}

// String returns the pattern with its line number, e.g. "line 3: *.log".
func (r Rule) String() string {
	return fmt.Sprintf("line %d: %s", r.Line, r.Pattern)
}

// RuleSet is an ordered, immutable list of rules. The last rule that
// matches a path decides whether it is ignored.
type RuleSet struct {
	rules []Rule
}

// PatternError describes an ignore line that could not be compiled.
type PatternError struct {
	Line    int
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("ignore: line %d: invalid pattern %q: %v", e.Line, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Config holds configuration options for Load
type Config struct {
	RootDir     string
	FileName    string
	Engine      Engine
	CustomRules []string
	Logger      utils.Logger
}
