package irregex

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// RegExp is a compiled regular expression that implements [Matcher].
//
// Patterns use the syntax and the default (.NET) semantics of
// github.com/dlclark/regexp2, not those of ECMAScript: "$" also matches
// before a final "\n" without FlagMultiline, and \d, \w and \s match any
// Unicode digit, word character or space. The "/source/flags" form returned
// by String is only a notation. Capturing groups are numbered in the order of
// their opening parentheses, named or not.
type RegExp struct {
	*Base
	re     *regexp2.Regexp
	source string

	// groups[i] is the regexp2 group number of capturing group i.
	groups []int
	names  []string

	idx runeIndex
}

// Compile parses a regular expression and returns, if successful, a RegExp
// that can be used to match against text.
//
// FlagIgnoreCase, FlagMultiline and FlagDotAll select the matching mode;
// FlagGlobal and FlagSticky select how the cursor is used.
func Compile(pattern string, flags Flag) (*RegExp, error) {
	opts := regexp2.None
	if flags&FlagIgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if flags&FlagMultiline != 0 {
		opts |= regexp2.Multiline
	}
	if flags&FlagDotAll != 0 {
		opts |= regexp2.Singleline
	}

	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, newSyntaxError(fmt.Sprintf("invalid regular expression %q: %v", pattern, err), err)
	}

	r := &RegExp{
		re:     re,
		source: pattern,
		names:  captureNames(pattern),
	}
	r.groups = make([]int, len(r.names))
	unnamed := 0
	for i, name := range r.names[1:] {
		if name == "" {
			unnamed++
			r.groups[i+1] = unnamed
		} else {
			r.groups[i+1] = re.GroupNumberFromName(name)
		}
	}
	r.Base = New(r, flags)
	return r, nil
}

// MustCompile is like [Compile] but panics if the expression cannot be parsed.
// It simplifies safe initialization of global variables containing regular
// expressions.
func MustCompile(pattern string, flags Flag) *RegExp {
	re, err := Compile(pattern, flags)
	if err != nil {
		panic("irregex: MustCompile: " + err.Error())
	}
	return re
}

// Source returns the pattern text.
func (r *RegExp) Source() string {
	return r.source
}

// String returns the expression in literal notation, e.g. "/a+/gi".
func (r *RegExp) String() string {
	return "/" + r.source + "/" + r.Flags()
}

// WithFlags compiles the same pattern with different flags. The new
// RegExp has its own cursor, starting at 0.
func (r *RegExp) WithFlags(flags Flag) (*RegExp, error) {
	re, err := Compile(r.source, flags)
	if err != nil {
		return nil, err
	}
	re.SetMatchTimeout(r.re.MatchTimeout)
	return re, nil
}

// SetMatchTimeout bounds the time a single search may take. A search that
// runs out of time fails with the error reported by regexp2.
func (r *RegExp) SetMatchTimeout(d time.Duration) {
	r.re.MatchTimeout = d
}

// SubexpNames returns the names of the capturing groups; index 0 is the full
// match and unnamed groups have empty names.
func (r *RegExp) SubexpNames() []string {
	return append([]string(nil), r.names...)
}

// LocateMatch implements [Locator].
func (r *RegExp) LocateMatch(s string, lastIndex int) (*Match, error) {
	if lastIndex > len(s) {
		return nil, nil
	}
	r.idx.reset(s)
	m, err := r.re.FindRunesMatchStartingAt(r.idx.runes, r.idx.runeAt(lastIndex))
	if err != nil || m == nil {
		return nil, err
	}

	loc := make([]int, 2*len(r.groups))
	for i, num := range r.groups {
		g := m.GroupByNumber(num)
		if g == nil || len(g.Captures) == 0 {
			loc[2*i], loc[2*i+1] = -1, -1
			continue
		}
		loc[2*i] = r.idx.offs[g.Index]
		loc[2*i+1] = r.idx.offs[g.Index+g.Length]
	}
	return NewMatch(s, loc, r.names...), nil
}

// runeIndex converts between byte offsets of a string and the rune indices
// regexp2 works with. It remembers the last string it was built for.
type runeIndex struct {
	s     string
	valid bool
	runes []rune
	// offs[i] is the byte offset of runes[i]; offs[len(runes)] == len(s).
	offs []int
}

func (ri *runeIndex) reset(s string) {
	if ri.valid && ri.s == s {
		return
	}
	ri.s, ri.valid = s, true
	ri.runes = ri.runes[:0]
	ri.offs = ri.offs[:0]
	for i, c := range s {
		ri.runes = append(ri.runes, c)
		ri.offs = append(ri.offs, i)
	}
	ri.offs = append(ri.offs, len(s))
}

// runeAt returns the index of the first rune starting at or after byte
// offset i.
func (ri *runeIndex) runeAt(i int) int {
	return lowerBound(ri.offs, i)
}

// captureNames lists the capturing groups of pattern in the order of their
// opening parentheses, in the layout of regexp.SubexpNames.
func captureNames(pattern string) []string {
	names := []string{""}
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			if strings.HasPrefix(pattern[i+1:], "^") {
				i++
			}
			// A leading ']' is a literal.
			if strings.HasPrefix(pattern[i+1:], "]") {
				i++
			}
		case c == '(':
			rest := pattern[i+1:]
			if !strings.HasPrefix(rest, "?") {
				names = append(names, "")
				continue
			}
			if name, ok := groupName(rest[1:]); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// groupName parses the name of a named group from the text following "(?".
func groupName(s string) (string, bool) {
	s = strings.TrimPrefix(s, "P")
	if len(s) < 2 {
		return "", false
	}
	var close byte
	switch s[0] {
	case '<':
		if s[1] == '=' || s[1] == '!' {
			return "", false
		}
		close = '>'
	case '\'':
		close = '\''
	default:
		return "", false
	}
	end := strings.IndexByte(s[1:], close)
	if end < 0 {
		return "", false
	}
	name := s[1 : 1+end]
	// Balancing groups name the group they capture into first.
	name, _, _ = strings.Cut(name, "-")
	return name, name != ""
}
