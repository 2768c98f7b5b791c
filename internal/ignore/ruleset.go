package ignore

import (
	"path/filepath"
	"strings"
)

// Build compiles ignore-file lines, in order, into a RuleSet. Blank lines
// and comments are skipped; a malformed pattern yields a *PatternError.
func Build(lines []string) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]Rule, 0, len(lines))}
	for i, line := range lines {
		rule, ok, err := parseRule(line, i+1)
		if err != nil {
			return nil, err
		}
		if ok {
			rs.rules = append(rs.rules, rule)
		}
	}
	return rs, nil
}

// MustBuild is like Build but panics on a malformed pattern.
func MustBuild(lines ...string) *RuleSet {
	rs, err := Build(lines)
	if err != nil {
		panic(err)
	}
	return rs
}

// Len returns the number of effective rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Rules returns a copy of the compiled rules in file order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// IsIgnored reports whether relativePath is excluded. A path inside an
// ignored directory is always ignored; negation cannot re-include it.
func (rs *RuleSet) IsIgnored(relativePath string, isDir bool) bool {
	if rs == nil || len(rs.rules) == 0 {
		return false
	}
	return matchWithParents(relativePath, isDir, rs.decide)
}

// Explain returns the rule that decides relativePath itself, ignoring
// parent directories. ok is false when no rule matches.
func (rs *RuleSet) Explain(relativePath string, isDir bool) (rule Rule, ok bool) {
	if rs == nil {
		return Rule{}, false
	}
	path := normalizePath(relativePath)
	for i := len(rs.rules) - 1; i >= 0; i-- {
		if rs.rules[i].matches(path, isDir) {
			return rs.rules[i], true
		}
	}
	return Rule{}, false
}

func (rs *RuleSet) decide(path string, isDir bool) bool {
	for i := len(rs.rules) - 1; i >= 0; i-- {
		if rs.rules[i].matches(path, isDir) {
			return !rs.rules[i].Negate
		}
	}
	return false
}

func (r *Rule) matches(path string, isDir bool) bool {
	if r.DirOnly && !isDir {
		return false
	}
	return r.re.MatchString(path)
}

// matchWithParents checks every parent directory of path, shallowest
// first, before path itself.
func matchWithParents(relativePath string, isDir bool, decide func(string, bool) bool) bool {
	path := normalizePath(relativePath)
	if path == "" || path == "." {
		return false
	}
	for i := 0; i < len(path); i++ {
		if path[i] == '/' && decide(path[:i], true) {
			return true
		}
	}
	return decide(path, isDir)
}

func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	return strings.Trim(p, "/")
}
