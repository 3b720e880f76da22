package irregex

import "iter"

// Iterator walks the matches of a matcher over one subject string.
// It is created by MatchAll and must not be used after the matcher has been
// used for anything else.
//
// The matcher's cursor is restored to its value at MatchAll time as soon as
// the iterator is exhausted, returns an error, or is closed. Callers that
// stop early should call Close, or range over All, which closes for them.
type Iterator struct {
	b     *Base
	s     string
	saved int
	done  bool
}

// Next returns the next match, or nil, nil when there are no more.
// Errors from the locator are returned once; the iterator is closed
// afterwards.
func (it *Iterator) Next() (*Match, error) {
	if it.done {
		return nil, nil
	}
	keepOpen := false
	defer func() {
		if !keepOpen {
			it.Close()
		}
	}()

	m, err := it.b.Exec(it.s)
	if err != nil || m == nil {
		return nil, err
	}
	// An empty match would be found again at the same cursor.
	if m.Index() == m.End() {
		it.b.SetLastIndex(advanceStringIndex(it.s, it.b.lastIndex))
	}
	keepOpen = it.b.Global()
	return m, nil
}

// Close restores the matcher's cursor. It is safe to call more than once.
func (it *Iterator) Close() {
	if it.done {
		return
	}
	it.done = true
	it.b.SetLastIndex(it.saved)
}

// All returns a range-over-func sequence of the remaining matches. The
// iterator is closed when the loop ends, however it ends. An error is
// yielded as the final element.
func (it *Iterator) All() iter.Seq2[*Match, error] {
	return func(yield func(*Match, error) bool) {
		defer it.Close()
		for {
			m, err := it.Next()
			if err != nil {
				yield(nil, err)
				return
			}
			if m == nil || !yield(m, nil) {
				return
			}
		}
	}
}

// Collect returns all remaining matches.
func (it *Iterator) Collect() ([]*Match, error) {
	defer it.Close()
	var res []*Match
	for {
		m, err := it.Next()
		if err != nil {
			return nil, err
		}
		if m == nil {
			return res, nil
		}
		res = append(res, m)
	}
}
