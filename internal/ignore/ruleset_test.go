package ignore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchCase struct {
	name     string
	path     string
	isDir    bool
	expected bool
}

func runMatchCases(t *testing.T, rs *RuleSet, cases []matchCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rs.IsIgnored(tt.path, tt.isDir))
		})
	}
}

func TestRuleSet_SimplePatterns(t *testing.T) {
	runMatchCases(t, MustBuild("foo.txt"), []matchCase{
		{name: "exact filename", path: "foo.txt", expected: true},
		{name: "filename in subdir", path: "src/foo.txt", expected: true},
		{name: "deep nested", path: "a/b/c/foo.txt", expected: true},
		{name: "other file", path: "bar.txt", expected: false},
		{name: "prefix only", path: "foo.txt.bak", expected: false},
	})
}

func TestRuleSet_Wildcards(t *testing.T) {
	t.Run("star", func(t *testing.T) {
		runMatchCases(t, MustBuild("*.log"), []matchCase{
			{name: "root file", path: "error.log", expected: true},
			{name: "nested file", path: "logs/error.log", expected: true},
			{name: "other extension", path: "error.txt", expected: false},
		})
	})
	t.Run("star does not cross separators", func(t *testing.T) {
		runMatchCases(t, MustBuild("src/*.go"), []matchCase{
			{name: "direct child", path: "src/main.go", expected: true},
			{name: "grandchild", path: "src/pkg/main.go", expected: false},
		})
	})
	t.Run("question mark", func(t *testing.T) {
		runMatchCases(t, MustBuild("file?.txt"), []matchCase{
			{name: "one char", path: "file1.txt", expected: true},
			{name: "two chars", path: "file12.txt", expected: false},
			{name: "no char", path: "file.txt", expected: false},
		})
	})
	t.Run("character class", func(t *testing.T) {
		runMatchCases(t, MustBuild("[abc].txt", "[0-9]*.md"), []matchCase{
			{name: "in class", path: "a.txt", expected: true},
			{name: "not in class", path: "d.txt", expected: false},
			{name: "range", path: "1intro.md", expected: true},
			{name: "range miss", path: "intro.md", expected: false},
		})
	})
	t.Run("negated class", func(t *testing.T) {
		runMatchCases(t, MustBuild("[!abc].txt"), []matchCase{
			{name: "outside class", path: "d.txt", expected: true},
			{name: "inside class", path: "a.txt", expected: false},
		})
	})
	t.Run("posix class", func(t *testing.T) {
		runMatchCases(t, MustBuild("file[[:digit:]].txt", "[[:upper:]_]*.md", "x[![:alpha:]]"), []matchCase{
			{name: "digit", path: "file1.txt", expected: true},
			{name: "not a digit", path: "filea.txt", expected: false},
			{name: "upper with extra member", path: "README.md", expected: true},
			{name: "extra member", path: "_draft.md", expected: true},
			{name: "lower", path: "readme.md", expected: false},
			{name: "negated posix", path: "x1", expected: true},
			{name: "negated posix miss", path: "xa", expected: false},
		})
	})
	t.Run("class never matches a separator", func(t *testing.T) {
		runMatchCases(t, MustBuild("a[+-0]b", "c[!x]d"), []matchCase{
			{name: "range spanning slash", path: "a/b", expected: false},
			{name: "range below slash", path: "a+b", expected: true},
			{name: "range above slash", path: "a0b", expected: true},
			{name: "negated class", path: "c/d", expected: false},
			{name: "negated class member", path: "cyd", expected: true},
		})
	})
}

func TestRuleSet_Globstar(t *testing.T) {
	t.Run("leading", func(t *testing.T) {
		runMatchCases(t, MustBuild("**/node_modules"), []matchCase{
			{name: "at root", path: "node_modules", isDir: true, expected: true},
			{name: "nested", path: "packages/foo/node_modules", isDir: true, expected: true},
		})
	})
	t.Run("trailing", func(t *testing.T) {
		runMatchCases(t, MustBuild("logs/**"), []matchCase{
			{name: "file inside", path: "logs/error.log", expected: true},
			{name: "deep inside", path: "logs/2024/01/error.log", expected: true},
			{name: "directory itself", path: "logs", isDir: true, expected: false},
			{name: "other root", path: "src/logs/error.log", expected: false},
		})
	})
	t.Run("middle", func(t *testing.T) {
		runMatchCases(t, MustBuild("a/**/b"), []matchCase{
			{name: "zero dirs", path: "a/b", expected: true},
			{name: "one dir", path: "a/x/b", expected: true},
			{name: "two dirs", path: "a/x/y/b", expected: true},
			{name: "wrong prefix", path: "c/x/b", expected: false},
		})
	})
	t.Run("repeated", func(t *testing.T) {
		runMatchCases(t, MustBuild("a/**/**/b"), []matchCase{
			{name: "zero dirs", path: "a/b", expected: true},
			{name: "deep", path: "a/x/y/z/b", expected: true},
		})
	})
	t.Run("alone", func(t *testing.T) {
		runMatchCases(t, MustBuild("**"), []matchCase{
			{name: "file", path: "a.txt", expected: true},
			{name: "nested", path: "a/b/c", expected: true},
		})
	})
}

func TestRuleSet_Anchoring(t *testing.T) {
	runMatchCases(t, MustBuild("/build", "doc/frotz"), []matchCase{
		{name: "leading slash at root", path: "build", expected: true},
		{name: "leading slash nested", path: "src/build", expected: false},
		{name: "inner slash at root", path: "doc/frotz", expected: true},
		{name: "inner slash nested", path: "a/doc/frotz", expected: false},
	})
}

func TestRuleSet_DirectoryOnly(t *testing.T) {
	runMatchCases(t, MustBuild("build/"), []matchCase{
		{name: "directory", path: "build", isDir: true, expected: true},
		{name: "file with same name", path: "build", isDir: false, expected: false},
		{name: "similar file", path: "build.txt", expected: false},
		{name: "nested directory", path: "src/build", isDir: true, expected: true},
		{name: "file inside", path: "build/out.o", expected: true},
	})
}

func TestRuleSet_Negation(t *testing.T) {
	t.Run("later negation re-includes", func(t *testing.T) {
		runMatchCases(t, MustBuild("*.log", "!keep.log"), []matchCase{
			{name: "negated file", path: "keep.log", expected: false},
			{name: "negated nested file", path: "logs/keep.log", expected: false},
			{name: "other log", path: "other.log", expected: true},
		})
	})
	t.Run("earlier negation is overridden", func(t *testing.T) {
		runMatchCases(t, MustBuild("!keep.log", "*.log"), []matchCase{
			{name: "broad rule wins", path: "keep.log", expected: true},
		})
	})
	t.Run("excluded parent cannot be re-included", func(t *testing.T) {
		runMatchCases(t, MustBuild("build/", "!build/keep.txt"), []matchCase{
			{name: "child of ignored dir", path: "build/keep.txt", expected: true},
		})
	})
	t.Run("directory re-included", func(t *testing.T) {
		runMatchCases(t, MustBuild("dist*", "!dist-docs/"), []matchCase{
			{name: "negated dir", path: "dist-docs", isDir: true, expected: false},
			{name: "file in negated dir", path: "dist-docs/index.html", expected: false},
			{name: "other dist", path: "dist", isDir: true, expected: true},
		})
	})
}

func TestRuleSet_Escapes(t *testing.T) {
	runMatchCases(t, MustBuild(`\#notes`, `\!important`, `trail\ `, "plain   ", "tab\t"), []matchCase{
		{name: "escaped hash", path: "#notes", expected: true},
		{name: "escaped bang", path: "!important", expected: true},
		{name: "escaped trailing space", path: "trail ", expected: true},
		{name: "trailing space required", path: "trail", expected: false},
		{name: "unescaped trailing space trimmed", path: "plain", expected: true},
		{name: "trailing tab kept", path: "tab\t", expected: true},
		{name: "trailing tab required", path: "tab", expected: false},
	})
}

func TestRuleSet_PathNormalization(t *testing.T) {
	rs := MustBuild("*.log")

	assert.False(t, rs.IsIgnored("", true))
	assert.False(t, rs.IsIgnored(".", true))
	assert.True(t, rs.IsIgnored("./logs/a.log", false))
	assert.True(t, rs.IsIgnored("/logs/a.log", false))
}

func TestBuild_SkipsNonRules(t *testing.T) {
	rs, err := Build([]string{"", "   ", "# comment", "!", "/", "*.log\r"})
	require.NoError(t, err)

	require.Equal(t, 1, rs.Len())
	rules := rs.Rules()
	assert.Equal(t, "*.log", rules[0].Pattern)
	assert.Equal(t, 6, rules[0].Line)
}

func TestBuild_RuleFlags(t *testing.T) {
	rs := MustBuild("!/src/gen/")
	rules := rs.Rules()
	require.Len(t, rules, 1)

	assert.True(t, rules[0].Negate)
	assert.True(t, rules[0].DirOnly)
	assert.True(t, rules[0].Anchored)
}

func TestBuild_MalformedPattern(t *testing.T) {
	_, err := Build([]string{"*.log", "[abc"})
	require.Error(t, err)

	var patternErr *PatternError
	require.True(t, errors.As(err, &patternErr))
	assert.Equal(t, 2, patternErr.Line)
	assert.Equal(t, "[abc", patternErr.Pattern)
	assert.ErrorIs(t, err, ErrUnterminatedClass)
}

func TestBuild_UnknownPosixClass(t *testing.T) {
	_, err := Build([]string{"file[[:digits:]]"})
	require.Error(t, err)

	var patternErr *PatternError
	require.True(t, errors.As(err, &patternErr))
	assert.Equal(t, 1, patternErr.Line)
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestMustBuild_Panics(t *testing.T) {
	assert.Panics(t, func() { MustBuild("a[") })
}

func TestRuleSet_Explain(t *testing.T) {
	rs := MustBuild("*.log", "!keep.log")

	rule, ok := rs.Explain("keep.log", false)
	require.True(t, ok)
	assert.True(t, rule.Negate)
	assert.Equal(t, 2, rule.Line)

	rule, ok = rs.Explain("other.log", false)
	require.True(t, ok)
	assert.Equal(t, "*.log", rule.Pattern)

	_, ok = rs.Explain("main.go", false)
	assert.False(t, ok)
}

func TestRuleSet_Nil(t *testing.T) {
	var rs *RuleSet

	assert.False(t, rs.IsIgnored("a", false))
	assert.Equal(t, 0, rs.Len())
	assert.Nil(t, rs.Rules())
}
