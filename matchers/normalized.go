package matchers

import (
	"iter"

	"github.com/auvred/irregex"
	"golang.org/x/text/unicode/norm"
)

// Normalized runs a regular expression on a normalized copy of the input and
// reports its matches at their positions in the input.
//
// For example, with the [StripMarks] pass the pattern "nguoi" finds "người"
// whether the input is in NFC or NFD form.
type Normalized struct {
	*irregex.Base
	re     *irregex.RegExp
	flags  irregex.Flag
	global bool
	passes []irregex.Normalizer
}

// NewNormalized returns a matcher that searches for pattern in text rewritten
// by passes. If pattern is not global, only its first match is reported.
func NewNormalized(pattern *irregex.RegExp, passes ...irregex.Normalizer) (*Normalized, error) {
	flags, err := irregex.ParseFlags(pattern.Flags())
	if err != nil {
		return nil, err
	}
	flags &^= irregex.FlagSticky | irregex.FlagGlobal
	re, err := pattern.WithFlags(flags | irregex.FlagGlobal)
	if err != nil {
		return nil, err
	}
	m := &Normalized{
		re:     re,
		flags:  flags,
		global: pattern.Global(),
		passes: append([]irregex.Normalizer(nil), passes...),
	}
	m.Base = irregex.New(m, irregex.FlagGlobal)
	return m, nil
}

func (m *Normalized) LocateMatch(s string, lastIndex int) (*irregex.Match, error) {
	return m.FromSeq(s, lastIndex, m.matches)
}

func (m *Normalized) matches(s string) iter.Seq2[*irregex.Match, error] {
	return func(yield func(*irregex.Match, error) bool) {
		text, om, err := irregex.Normalize(s, m.passes...)
		if err != nil {
			yield(nil, err)
			return
		}
		// Each generator stays suspended in the cache between calls, so it
		// needs a cursor of its own.
		re, err := m.re.WithFlags(irregex.FlagGlobal | m.flags)
		if err != nil {
			yield(nil, err)
			return
		}
		for match, err := range re.MatchAll(text).All() {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(om.RemapMatch(match, s), nil) || !m.global {
				return
			}
		}
	}
}

// StripMarks returns a pass that removes combining marks from letters, so
// that "é" in either normalization form becomes "e".
func StripMarks() irregex.Normalizer {
	return irregex.Normalizer{
		Selector: irregex.MustCompile(`(\p{L})\p{M}*`, irregex.FlagGlobal),
		Replace: func(m *irregex.Match) string {
			base := norm.NFD.String(m.Groups[1].Text())
			for _, r := range base {
				return string(r)
			}
			return base
		},
	}
}

// CollapseSpace returns a pass that replaces runs of whitespace with a single
// space.
func CollapseSpace() irregex.Normalizer {
	return irregex.Normalizer{
		Selector: irregex.MustCompile(`\s+`, irregex.FlagGlobal),
		Replace:  func(*irregex.Match) string { return " " },
	}
}
