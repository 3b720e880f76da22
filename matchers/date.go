package matchers

import (
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/auvred/irregex"
)

// Date matches calendar dates written as YYYY-MM-DD or YYYY/MM/DD. Both
// delimiters must be the same, and the date must exist: 2000-02-29 matches,
// 1999-02-29 does not.
//
// The named groups are "YYYY", "delim", "MM" and "DD".
type Date struct {
	*irregex.Base
	re *irregex.RegExp
}

// dateSegments is the number of word segments in a date: year, delimiter,
// month, delimiter, day.
const dateSegments = 5

// NewDate returns a matcher for dates.
func NewDate() *Date {
	m := &Date{
		re: irregex.MustCompile(`^(?<YYYY>[0-9]{4})(?<delim>[-/])(?<MM>[0-9]{2})\k<delim>(?<DD>[0-9]{2})$`, 0),
	}
	m.Base = irregex.New(m, irregex.FlagGlobal)
	return m
}

func (m *Date) LocateMatch(s string, lastIndex int) (*irregex.Match, error) {
	return m.FromSeq(s, lastIndex, m.dates)
}

type segment struct {
	off  int
	text string
}

func (m *Date) dates(s string) iter.Seq2[*irregex.Match, error] {
	return func(yield func(*irregex.Match, error) bool) {
		var window []segment
		for off, w := range segments(s) {
			window = append(window, segment{off, w})
			if len(window) > dateSegments {
				window = window[1:]
			}
			if len(window) < dateSegments || !isYear(window[0].text) {
				continue
			}

			var candidate strings.Builder
			for _, seg := range window {
				candidate.WriteString(seg.text)
			}
			d, err := m.re.Exec(candidate.String())
			if err != nil {
				yield(nil, err)
				return
			}
			if d == nil || !validDate(d) {
				continue
			}

			start := window[0].off
			loc := make([]int, 0, 2*len(d.Groups))
			for _, g := range d.Groups {
				loc = append(loc, start+g.Start, start+g.End)
			}
			if !yield(irregex.NewMatch(s, loc, m.re.SubexpNames()...), nil) {
				return
			}
		}
	}
}

func isYear(w string) bool {
	if len(w) != 4 {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < '0' || w[i] > '9' {
			return false
		}
	}
	return true
}

func validDate(d *irregex.Match) bool {
	year, _ := strconv.Atoi(d.NamedGroups["YYYY"].Text())
	month, _ := strconv.Atoi(d.NamedGroups["MM"].Text())
	day, _ := strconv.Atoi(d.NamedGroups["DD"].Text())
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
