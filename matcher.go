// Package irregex lets custom matchers be used interchangeably with regular
// expressions.
//
// A custom matcher supplies a single primitive, [Locator.LocateMatch], which
// finds the next match at or after a cursor. Embedding a [*Base] built around
// that primitive gives the matcher the whole algorithm suite of a global
// ECMAScript RegExp: Exec, Test, MatchAll, Match, Replace, Search and Split.
//
// Offsets are byte offsets into the subject string. Wherever the algorithms
// must step over a position (empty matches, split probing) they step over a
// whole UTF-8 encoded code point.
//
// Matchers hold a mutable cursor and are not safe for concurrent use.
package irregex

import (
	"fmt"
	"math"
	"strings"
)

// Flag is a bitmask of matcher options.
// Combine flags with bitwise OR, e.g. FlagGlobal|FlagIgnoreCase.
type Flag uint16

const (
	// Exhaustive iteration ("g" flag).
	FlagGlobal Flag = 1 << iota

	// Case-insensitive matching ("i" flag).
	FlagIgnoreCase

	// "^" and "$" match line boundaries ("m" flag).
	FlagMultiline

	// "." matches line terminators ("s" flag).
	FlagDotAll

	// Match only at the cursor ("y" flag).
	FlagSticky
)

var flagLetters = [...]struct {
	flag   Flag
	letter byte
}{
	{FlagGlobal, 'g'},
	{FlagIgnoreCase, 'i'},
	{FlagMultiline, 'm'},
	{FlagDotAll, 's'},
	{FlagSticky, 'y'},
}

// String returns the flags in canonical order, e.g. "gi".
func (f Flag) String() string {
	var b strings.Builder
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			b.WriteByte(fl.letter)
		}
	}
	return b.String()
}

// ParseFlags parses a flags string such as "gi".
func ParseFlags(str string) (Flag, error) {
	var flags Flag
	for _, char := range str {
		var m Flag
		for _, fl := range flagLetters {
			if rune(fl.letter) == char {
				m = fl.flag
				break
			}
		}
		if m == 0 {
			return 0, newSyntaxError(fmt.Sprintf("invalid flag %q", char), nil)
		}
		if flags&m != 0 {
			return 0, newSyntaxError(fmt.Sprintf("duplicate flag %q", char), nil)
		}
		flags |= m
	}
	return flags, nil
}

// SyntaxError reports an invalid pattern or flags string.
type SyntaxError struct {
	msg string
	err error
}

func (e *SyntaxError) Error() string {
	return e.msg
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

var _ error = (*SyntaxError)(nil)

func newSyntaxError(msg string, err error) *SyntaxError {
	return &SyntaxError{msg: msg, err: err}
}

// Cursor is a resumable search position.
type Cursor interface {
	LastIndex() int
	SetLastIndex(i int)
}

// Locator finds the first match in s that starts at or after lastIndex.
// It returns nil, nil when there is none.
//
// Implementations may keep their own state in tracked dependents (see
// [Base.Track]); their cursors already equal lastIndex when LocateMatch is
// called.
type Locator interface {
	LocateMatch(s string, lastIndex int) (*Match, error)
}

// LocatorFunc adapts an ordinary function to a [Locator].
type LocatorFunc func(s string, lastIndex int) (*Match, error)

func (f LocatorFunc) LocateMatch(s string, lastIndex int) (*Match, error) {
	return f(s, lastIndex)
}

// Matcher is the contract shared by [*RegExp], [*Composite] and every
// matcher embedding [*Base].
type Matcher interface {
	Cursor
	Flags() string
	Global() bool
	Exec(s string) (*Match, error)
	Test(s string) (bool, error)
	MatchAll(s string) *Iterator
	Match(s string) ([]string, error)
	Replace(s, template string) (string, error)
	ReplaceFunc(s string, fn func(m *Match) string) (string, error)
	Search(s string) (int, error)
	Split(s string, limit int) ([]string, error)
}

const maxLastIndex = math.MaxInt32

func clampLastIndex(i int) int {
	return min(max(i, 0), maxLastIndex)
}

// Group represents a single captured substring of a match.
type Group struct {
	src string
	// Start is the inclusive start offset of the captured substring,
	// or -1 if the group did not participate in the match.
	Start int
	// End is the exclusive end offset of the captured substring,
	// or -1 if the group did not participate in the match.
	End int
	// Name is the group name if defined, otherwise empty.
	Name string
}

// Matched reports whether the group participated in the match.
func (g Group) Matched() bool {
	return g.Start != -1
}

// Text returns the captured substring, or "" if the group did not
// participate in the match.
func (g Group) Text() string {
	if g.Start == -1 {
		return ""
	}
	return g.src[g.Start:g.End]
}

// Match holds the result of a successful match.
type Match struct {
	// Input is the subject string the match was found in.
	Input string
	// Groups is the ordered list of captures.
	// Groups[0] is the full match; subsequent entries correspond to
	// the capturing groups.
	Groups []Group
	// NamedGroups maps a group name to its captured group.
	// It is nil if the matcher has no named groups.
	NamedGroups map[string]Group
}

// NewMatch builds a Match over input. loc holds index pairs in the layout
// returned by regexp.FindStringSubmatchIndex: group i spans
// input[loc[2*i]:loc[2*i+1]], or -1, -1 if it did not participate. names
// optionally gives group names in the layout of regexp.SubexpNames; empty
// names are unnamed groups.
//
// NewMatch panics if the full match is missing or a span lies outside input.
func NewMatch(input string, loc []int, names ...string) *Match {
	if len(loc) < 2 || len(loc)%2 != 0 || loc[0] < 0 {
		panic("irregex: NewMatch: missing full match span")
	}
	m := &Match{
		Input:  input,
		Groups: make([]Group, len(loc)/2),
	}
	for i := range m.Groups {
		start, end := loc[2*i], loc[2*i+1]
		if start == -1 || end == -1 {
			start, end = -1, -1
		} else if start > end || end > len(input) {
			panic(fmt.Sprintf("irregex: NewMatch: group %d span [%d, %d) out of range", i, start, end))
		}
		m.Groups[i] = Group{src: input, Start: start, End: end}
		if i < len(names) && names[i] != "" {
			m.Groups[i].Name = names[i]
			if m.NamedGroups == nil {
				m.NamedGroups = map[string]Group{}
			}
			// The first participating group wins a duplicated name.
			if prev, ok := m.NamedGroups[names[i]]; !ok || !prev.Matched() {
				m.NamedGroups[names[i]] = m.Groups[i]
			}
		}
	}
	return m
}

// Index returns the offset of the full match.
func (m *Match) Index() int {
	return m.Groups[0].Start
}

// End returns the offset just past the full match.
func (m *Match) End() int {
	return m.Groups[0].End
}

// String returns the full matched text.
func (m *Match) String() string {
	return m.Groups[0].Text()
}

// Group returns the text of group i and whether it participated.
// It returns "", false for out-of-range indices.
func (m *Match) Group(i int) (string, bool) {
	if i < 0 || i >= len(m.Groups) || !m.Groups[i].Matched() {
		return "", false
	}
	return m.Groups[i].Text(), true
}

// Captures returns the texts of the capturing groups, excluding the full
// match. Groups that did not participate yield "".
func (m *Match) Captures() []string {
	res := make([]string, len(m.Groups)-1)
	for i, g := range m.Groups[1:] {
		res[i] = g.Text()
	}
	return res
}
