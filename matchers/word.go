package matchers

import (
	"iter"
	"unicode"
	"unicode/utf8"

	"github.com/auvred/irregex"
	"github.com/rivo/uniseg"
)

// abbrLen is the number of characters in a word abbreviation.
const abbrLen = 3

// Word matches words, as delimited by the Unicode word boundary rules, that
// contain at least one letter. The named group "abbr" holds the first three
// characters of the word.
type Word struct {
	*irregex.Base
}

// NewWord returns a matcher for words.
func NewWord() *Word {
	m := &Word{}
	m.Base = irregex.New(m, irregex.FlagGlobal)
	return m
}

func (m *Word) LocateMatch(s string, lastIndex int) (*irregex.Match, error) {
	return m.FromSeq(s, lastIndex, words)
}

var wordNames = []string{"", "abbr"}

func words(s string) iter.Seq2[*irregex.Match, error] {
	return func(yield func(*irregex.Match, error) bool) {
		for off, w := range segments(s) {
			if !hasLetter(w) {
				continue
			}
			abbr := 0
			for i := 0; i < abbrLen && abbr < len(w); i++ {
				_, size := utf8.DecodeRuneInString(w[abbr:])
				abbr += size
			}
			loc := []int{off, off + len(w), off, off + abbr}
			if !yield(irregex.NewMatch(s, loc, wordNames...), nil) {
				return
			}
		}
	}
}

func hasLetter(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// segments yields the word segments of s with their byte offsets. Runs of
// spaces and punctuation are segments too.
func segments(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		state := -1
		off := 0
		for rest := s; rest != ""; {
			var w string
			w, rest, state = uniseg.FirstWordInString(rest, state)
			if !yield(off, w) {
				return
			}
			off += len(w)
		}
	}
}
