package ignore

import (
	"fmt"
	"regexp"
	"strings"
)

// parseRule compiles a single ignore-file line. ok is false for blank
// lines, comments and lines that can never match anything.
func parseRule(line string, lineNo int) (rule Rule, ok bool, err error) {
	line = trimTrailingSpace(strings.TrimSuffix(line, "\r"))
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false, nil
	}

	rule = Rule{Pattern: line, Line: lineNo}
	pattern := line
	if strings.HasPrefix(pattern, "!") {
		rule.Negate = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") && !strings.HasSuffix(pattern, `\/`) {
		rule.DirOnly = true
		pattern = strings.TrimRight(pattern, "/")
	}
	if strings.Contains(pattern, "/") {
		rule.Anchored = true
		pattern = strings.TrimPrefix(pattern, "/")
	}
	if pattern == "" {
		return Rule{}, false, nil
	}

	body, err := translate(pattern)
	if err != nil {
		return Rule{}, false, &PatternError{Line: lineNo, Pattern: line, Err: err}
	}
	expr := "^" + body + "$"
	if !rule.Anchored {
		expr = "^(?:.*/)?" + body + "$"
	}
	rule.re, err = regexp.Compile(expr)
	if err != nil {
		return Rule{}, false, &PatternError{Line: lineNo, Pattern: line, Err: err}
	}
	return rule, true, nil
}

// trimTrailingSpace drops trailing spaces unless escaped with '\'. Tabs
// are kept.
func trimTrailingSpace(line string) string {
	for strings.HasSuffix(line, " ") {
		if strings.HasSuffix(line, `\ `) {
			break
		}
		line = line[:len(line)-1]
	}
	return line
}

// translate turns a slash-separated glob into a regular expression body.
func translate(pattern string) (string, error) {
	segments := collapseGlobstars(strings.Split(pattern, "/"))

	var b strings.Builder
	n := len(segments)
	for i, segment := range segments {
		if segment == "**" {
			switch {
			case n == 1:
				b.WriteString(".*")
			case i == 0:
				b.WriteString("(?:.*/)?")
			case i == n-1:
				b.WriteString("/.*")
			default:
				b.WriteString("/(?:.*/)?")
			}
			continue
		}
		if i > 0 && segments[i-1] != "**" {
			b.WriteString("/")
		}
		if err := translateSegment(&b, segment); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func collapseGlobstars(segments []string) []string {
	out := segments[:0:0]
	for _, s := range segments {
		if s == "**" && len(out) > 0 && out[len(out)-1] == "**" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func translateSegment(b *strings.Builder, segment string) error {
	runes := []rune(segment)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			for i+1 < len(runes) && runes[i+1] == '*' {
				i++
			}
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		case '[':
			end, err := translateClass(b, runes, i)
			if err != nil {
				return err
			}
			i = end
		case '\\':
			if i+1 < len(runes) {
				i++
				b.WriteString(regexp.QuoteMeta(string(runes[i])))
			} else {
				b.WriteString(`\\`)
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return nil
}

// posixClasses are the bracket class names wildmatch accepts.
var posixClasses = map[string]bool{
	"alnum": true, "alpha": true, "blank": true, "cntrl": true,
	"digit": true, "graph": true, "lower": true, "print": true,
	"punct": true, "space": true, "upper": true, "xdigit": true,
}

// translateClass writes the bracket expression starting at runes[start]
// and returns the index of its closing ']'. A class never matches '/'.
func translateClass(b *strings.Builder, runes []rune, start int) (int, error) {
	j := start + 1
	negate := false
	if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
		negate = true
		j++
	}

	var class strings.Builder
	closed := false
	for first := true; j < len(runes); j, first = j+1, false {
		if runes[j] == ']' && !first {
			closed = true
			break
		}
		if name, end, ok := posixClassAt(runes, j); ok {
			if !posixClasses[name] {
				return 0, fmt.Errorf("%w [:%s:]", ErrUnknownClass, name)
			}
			class.WriteString("[:" + name + ":]")
			j = end
			continue
		}

		var lo, hi rune
		lo, j = classRune(runes, j)
		hi = lo
		if j+2 < len(runes) && runes[j+1] == '-' && runes[j+2] != ']' {
			hi, j = classRune(runes, j+2)
		}
		writeClassRange(&class, lo, hi)
	}
	if !closed {
		return 0, fmt.Errorf("%w at offset %d", ErrUnterminatedClass, start)
	}

	switch {
	case negate:
		b.WriteString("[^/" + class.String() + "]")
	case class.Len() == 0:
		b.WriteString(`[^\x00-\x{10FFFF}]`)
	default:
		b.WriteString("[" + class.String() + "]")
	}
	return j, nil
}

// posixClassAt reports a "[:name:]" item at runes[i] and the index of its
// final ']'.
func posixClassAt(runes []rune, i int) (name string, end int, ok bool) {
	if runes[i] != '[' || i+1 >= len(runes) || runes[i+1] != ':' {
		return "", 0, false
	}
	for k := i + 2; k+1 < len(runes); k++ {
		if runes[k] == ':' && runes[k+1] == ']' {
			return string(runes[i+2 : k]), k + 1, true
		}
		if runes[k] == ']' {
			break
		}
	}
	return "", 0, false
}

// classRune returns the class member at runes[i], resolving a '\' escape,
// and the index of its last rune.
func classRune(runes []rune, i int) (rune, int) {
	if runes[i] == '\\' && i+1 < len(runes) {
		return runes[i+1], i + 1
	}
	return runes[i], i
}

// writeClassRange writes lo-hi with '/' cut out of the range.
func writeClassRange(class *strings.Builder, lo, hi rune) {
	if lo <= '/' && '/' <= hi {
		if lo < '/' {
			writeClassRange(class, lo, '/'-1)
		}
		if hi > '/' {
			writeClassRange(class, '/'+1, hi)
		}
		return
	}
	writeClassRune(class, lo)
	if hi != lo {
		class.WriteByte('-')
		writeClassRune(class, hi)
	}
}

func writeClassRune(class *strings.Builder, r rune) {
	if strings.ContainsRune(`\[]^-`, r) {
		class.WriteByte('\\')
	}
	class.WriteRune(r)
}
