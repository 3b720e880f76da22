package irregex

import (
	"strings"
	"unicode/utf8"
)

// Base implements the algorithms of [Matcher] on top of a [Locator].
//
// Custom matchers embed a *Base created by [New] around themselves:
//
//	type Digits struct {
//		*irregex.Base
//	}
//
//	func NewDigits() *Digits {
//		d := &Digits{}
//		d.Base = irregex.New(d, irregex.FlagGlobal)
//		return d
//	}
//
//	func (d *Digits) LocateMatch(s string, lastIndex int) (*irregex.Match, error) {
//		...
//	}
//
// Every algorithm that moves the cursor internally restores it on all exit
// paths, including errors returned by the locator and panics.
type Base struct {
	loc       Locator
	flags     Flag
	lastIndex int
	tracked   []Cursor
	cache     *seqCache
}

// New returns a Base that finds matches with loc.
// Custom matchers normally pass FlagGlobal.
func New(loc Locator, flags Flag) *Base {
	return &Base{loc: loc, flags: flags}
}

// LastIndex returns the offset at which the next search resumes.
func (b *Base) LastIndex() int {
	return b.lastIndex
}

// SetLastIndex sets the cursor, clamped to [0, math.MaxInt32], and copies
// it to every tracked cursor.
func (b *Base) SetLastIndex(i int) {
	i = clampLastIndex(i)
	b.lastIndex = i
	for _, c := range b.tracked {
		c.SetLastIndex(i)
	}
}

// Track registers cursors that must mirror this matcher's cursor, such as
// regular expressions used internally by the locator. They are synchronized
// immediately.
func (b *Base) Track(cursors ...Cursor) {
	b.tracked = append(b.tracked, cursors...)
	for _, c := range cursors {
		c.SetLastIndex(b.lastIndex)
	}
}

// Flags returns the flags string, e.g. "g".
func (b *Base) Flags() string {
	return b.flags.String()
}

// Global reports whether the matcher supports exhaustive iteration.
func (b *Base) Global() bool {
	return b.flags&FlagGlobal != 0
}

func (b *Base) sticky() bool {
	return b.flags&FlagSticky != 0
}

// enter moves the cursor to at and returns the function that moves it to
// *exit. Callers defer the result and may change *exit before returning.
func (b *Base) enter(at int, exit *int) func() {
	b.SetLastIndex(at)
	return func() { b.SetLastIndex(*exit) }
}

func (b *Base) locate(s string, lastIndex int) (*Match, error) {
	m, err := b.loc.LocateMatch(s, lastIndex)
	if err != nil {
		return nil, err
	}
	if m != nil && b.sticky() && m.Index() != lastIndex {
		return nil, nil
	}
	return m, nil
}

// Exec finds the next match at or after the cursor. On a match the cursor
// moves to the end of the match; otherwise it is reset to 0.
//
// A matcher that is neither global nor sticky always searches from 0 and
// leaves its cursor alone.
func (b *Base) Exec(s string) (*Match, error) {
	if b.flags&(FlagGlobal|FlagSticky) == 0 {
		saved := b.lastIndex
		defer b.enter(0, &saved)()
		return b.locate(s, 0)
	}
	m, err := b.locate(s, b.lastIndex)
	if err != nil {
		return nil, err
	}
	if m == nil {
		b.SetLastIndex(0)
		return nil, nil
	}
	b.SetLastIndex(m.End())
	return m, nil
}

// execSticky is Exec restricted to matches starting exactly at the cursor.
func (b *Base) execSticky(s string) (*Match, error) {
	i := b.lastIndex
	m, err := b.loc.LocateMatch(s, i)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Index() != i {
		b.SetLastIndex(0)
		return nil, nil
	}
	b.SetLastIndex(m.End())
	return m, nil
}

// Test reports whether Exec finds a match.
func (b *Base) Test(s string) (bool, error) {
	m, err := b.Exec(s)
	return m != nil, err
}

// MatchAll returns an iterator over the matches in s starting at the
// cursor. The cursor is restored once the iterator is exhausted, fails or is
// closed.
func (b *Base) MatchAll(s string) *Iterator {
	return &Iterator{b: b, s: s, saved: b.lastIndex}
}

// Match returns the text of every match in s, or nil if there is none.
// The cursor is 0 afterwards, unless an error is returned.
func (b *Base) Match(s string) ([]string, error) {
	exit := b.lastIndex
	defer b.enter(0, &exit)()
	matches, err := b.MatchAll(s).Collect()
	if err != nil {
		return nil, err
	}
	exit = 0
	if len(matches) == 0 {
		return nil, nil
	}
	res := make([]string, len(matches))
	for i, m := range matches {
		res[i] = m.String()
	}
	return res, nil
}

// Search returns the offset of the first match in s, or -1.
// The cursor is left unchanged.
func (b *Base) Search(s string) (int, error) {
	saved := b.lastIndex
	defer b.enter(0, &saved)()
	m, err := b.Exec(s)
	if err != nil || m == nil {
		return -1, err
	}
	return m.Index(), nil
}

// Replace returns a copy of s with every match replaced by template, expanded
// as described in [Expand]. The cursor is 0 afterwards, unless an error is
// returned.
func (b *Base) Replace(s, template string) (string, error) {
	return b.replace(s, compileTemplate(template))
}

// ReplaceFunc returns a copy of s with every match m replaced by fn(m).
// The cursor is 0 afterwards, unless an error is returned.
func (b *Base) ReplaceFunc(s string, fn func(m *Match) string) (string, error) {
	return b.replace(s, fn)
}

func (b *Base) replace(s string, fn func(m *Match) string) (string, error) {
	exit := b.lastIndex
	defer b.enter(0, &exit)()
	matches, err := b.MatchAll(s).Collect()
	if err != nil {
		return "", err
	}
	exit = 0
	if len(matches) == 0 {
		return s, nil
	}

	var out strings.Builder
	out.WriteString(s[:matches[0].Index()])
	for i, m := range matches {
		out.WriteString(fn(m))
		next := len(s)
		if i+1 < len(matches) {
			next = matches[i+1].Index()
		}
		if m.End() < next {
			out.WriteString(s[m.End():next])
		}
	}
	return out.String(), nil
}

// Split slices s around the matches and returns the substrings between
// them, interleaved with the capturing groups of each match. Groups that did
// not participate contribute "".
//
// The result has at most uint32(limit) elements, so any negative limit
// means no limit. The cursor is left unchanged.
func (b *Base) Split(s string, limit int) ([]string, error) {
	saved := b.lastIndex
	defer b.enter(0, &saved)()

	out := []string{}
	lim := uint32(limit)
	if lim == 0 {
		return out, nil
	}

	if s == "" {
		z, err := b.execSticky(s)
		if err != nil {
			return nil, err
		}
		if z == nil {
			return []string{s}, nil
		}
		return out, nil
	}

	p := 0
	for q := p; q < len(s); {
		b.SetLastIndex(q)
		z, err := b.execSticky(s)
		if err != nil {
			return nil, err
		}
		if z == nil {
			q = advanceStringIndex(s, q)
			continue
		}
		e := min(b.lastIndex, len(s))
		if e == p {
			q = advanceStringIndex(s, q)
			continue
		}
		out = append(out, s[p:q])
		if uint32(len(out)) == lim {
			return out, nil
		}
		for _, c := range z.Captures() {
			out = append(out, c)
			if uint32(len(out)) == lim {
				return out, nil
			}
		}
		p, q = e, e
	}

	return append(out, s[p:]), nil
}

// advanceStringIndex returns the offset of the code point after the one
// starting at i. Invalid UTF-8 bytes count as one code point each.
func advanceStringIndex(s string, i int) int {
	if i+1 >= len(s) {
		return i + 1
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return i + size
}
