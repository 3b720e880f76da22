package matchers

import (
	"iter"
	"strings"

	"github.com/auvred/irregex"
	"github.com/rivo/uniseg"
)

// LineBreak matches the whitespace runs at which text has to be wrapped so
// that no line is wider than a number of display columns. Splitting text on
// a LineBreak yields the wrapped lines:
//
//	lines, err := matchers.NewLineBreak(80).Split(text, -1)
//
// Existing line feeds are kept, and a word wider than the limit gets a line
// of its own.
type LineBreak struct {
	*irregex.Base
	width int
	space *irregex.RegExp
}

// NewLineBreak returns a matcher for line breaks in text wrapped at width
// columns.
func NewLineBreak(width int) *LineBreak {
	m := &LineBreak{
		width: width,
		space: irregex.MustCompile(`\s+`, irregex.FlagGlobal),
	}
	m.Base = irregex.New(m, irregex.FlagGlobal)
	return m
}

func (m *LineBreak) LocateMatch(s string, lastIndex int) (*irregex.Match, error) {
	return m.FromSeq(s, lastIndex, m.breaks)
}

func (m *LineBreak) breaks(s string) iter.Seq2[*irregex.Match, error] {
	return func(yield func(*irregex.Match, error) bool) {
		// lineStart is the end of the last break yielded.
		lineStart := 0
		var prev *irregex.Match
		overflows := func(end int) bool {
			start := lineStart + strings.LastIndexByte(s[lineStart:end], '\n') + 1
			return uniseg.StringWidth(s[start:end]) > m.width && prev != nil && prev.Index() >= start
		}

		space, err := m.space.WithFlags(irregex.FlagGlobal)
		if err != nil {
			yield(nil, err)
			return
		}
		for ws, err := range space.MatchAll(s).All() {
			if err != nil {
				yield(nil, err)
				return
			}
			if overflows(ws.Index()) {
				if !yield(prev, nil) {
					return
				}
				lineStart = prev.End()
			}
			prev = ws
		}
		if overflows(len(s)) {
			yield(prev, nil)
		}
	}
}
