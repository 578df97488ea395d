package logic

import (
	"errors"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultPattern matches every path
const DefaultPattern = "*"

// maxClassRunes bounds the expansion of ranges in one bracket expression
const maxClassRunes = 4096

var errClassTooLarge = errors.New("bracket expression is too large")

// GlobFilter matches relative paths against a shell-style pattern. A "*"
// also matches "/", so "*.py" matches "src/a.py".
type GlobFilter struct {
	pattern string
	glob    glob.Glob // nil when the pattern did not compile
	never   bool      // a bracket expression has no members
}

// NewGlobFilter compiles pattern. An empty pattern becomes DefaultPattern.
func NewGlobFilter(pattern string) *GlobFilter {
	if pattern == "" {
		pattern = DefaultPattern
	}
	f := &GlobFilter{pattern: pattern}

	translated, ok, err := translate(pattern)
	if err != nil {
		return f
	}
	if !ok {
		f.never = true
		translated = DefaultPattern
	}
	if g, err := glob.Compile(translated); err == nil {
		f.glob = g
	}
	return f
}

// Pattern returns the pattern as typed by the user
func (f *GlobFilter) Pattern() string {
	return f.pattern
}

// Valid reports whether the pattern compiled; invalid patterns only match
// their literal text
func (f *GlobFilter) Valid() bool {
	return f.glob != nil
}

// Matches checks if a relative path matches the pattern
func (f *GlobFilter) Matches(path string) bool {
	if f == nil {
		return true
	}
	if f.glob == nil {
		return path == f.pattern
	}
	if f.never {
		return false
	}
	return f.glob.Match(path)
}

// translate rewrites a shell pattern into glob syntax. Braces and backslashes
// are literal in a shell pattern, an unclosed "[" is a literal bracket, and
// bracket expressions become explicit rune lists. ok is false when some
// bracket expression can match nothing.
func translate(pattern string) (string, bool, error) {
	runes := []rune(pattern)
	var b strings.Builder
	ok := true

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '*', '?':
			b.WriteRune(r)
		case '[':
			end := classEnd(runes, i+1)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			class, err := writeClass(runes[i+1 : end])
			if err != nil {
				return "", false, err
			}
			if class == "" {
				ok = false
			}
			b.WriteString(class)
			i = end
		case '{', '}', '\\', ']':
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), ok, nil
}

// classEnd returns the index of the "]" closing the bracket expression whose
// body starts at start, or -1. A "]" right after "[" or "[!" is a member.
func classEnd(runes []rune, start int) int {
	j := start
	if j < len(runes) && runes[j] == '!' {
		j++
	}
	if j < len(runes) && runes[j] == ']' {
		j++
	}
	for ; j < len(runes); j++ {
		if runes[j] == ']' {
			return j
		}
	}
	return -1
}

// writeClass renders a bracket expression body as a glob rune list. It
// returns "" for a class without members.
func writeClass(body []rune) (string, error) {
	negate := len(body) > 0 && body[0] == '!'
	if negate {
		body = body[1:]
	}

	members := make(map[rune]bool)
	for p := 0; p < len(body); {
		if p+2 < len(body) && body[p+1] == '-' {
			lo, hi := body[p], body[p+2]
			if int(hi)-int(lo) >= maxClassRunes {
				return "", errClassTooLarge
			}
			for c := lo; c <= hi; c++ {
				members[c] = true
			}
			p += 3
		} else {
			members[body[p]] = true
			p++
		}
		if len(members) > maxClassRunes {
			return "", errClassTooLarge
		}
	}

	if len(members) == 0 {
		if negate {
			return "?", nil
		}
		return "", nil
	}

	list := make([]rune, 0, len(members))
	for c := range members {
		list = append(list, c)
	}
	// "-" goes last so it never sits where glob expects a range bound
	sort.Slice(list, func(a, b int) bool {
		if (list[a] == '-') != (list[b] == '-') {
			return list[b] == '-'
		}
		return list[a] < list[b]
	})

	var b strings.Builder
	b.WriteRune('[')
	if negate {
		b.WriteRune('!')
	}
	for i, c := range list {
		switch {
		case c == '-' && len(list) == 1:
			b.WriteRune(c)
		case c == '-', c == ']', c == '\\':
			b.WriteRune('\\')
			b.WriteRune(c)
		case c == '!' && i == 0:
			b.WriteRune('\\')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteRune(']')
	return b.String(), nil
}
