package irregex

import (
	"iter"

	lru "github.com/hashicorp/golang-lru/v2"
)

// seqCacheSize is the number of input strings whose generated matches a
// matcher keeps.
const seqCacheSize = 10

type seqCache struct {
	entries *lru.Cache[string, *seqEntry]
}

func newSeqCache() *seqCache {
	entries, err := lru.NewWithEvict(seqCacheSize, func(_ string, e *seqEntry) {
		e.release()
	})
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &seqCache{entries: entries}
}

// seqEntry holds the matches generated so far for one input string.
type seqEntry struct {
	matches []*Match
	// offsets[i] == matches[i].Index()
	offsets []int
	// pos is the index of the match expected by a sequential caller.
	pos int

	next func() (*Match, error, bool)
	stop func()
	done bool
	err  error
}

func (e *seqEntry) release() {
	if !e.done {
		e.done = true
		e.stop()
	}
}

func (e *seqEntry) lookup(lastIndex int) (*Match, error) {
	if lastIndex == 0 {
		e.pos = 0
	}

	if n := len(e.offsets); n > 0 && lastIndex <= e.offsets[n-1] {
		i := e.pos
		if i >= n || e.offsets[i] < lastIndex || (i > 0 && e.offsets[i-1] >= lastIndex) {
			i = lowerBound(e.offsets, lastIndex)
		}
		e.pos = i + 1
		return e.matches[i], nil
	}

	for !e.done {
		m, err, ok := e.next()
		if !ok {
			e.release()
			break
		}
		if err != nil {
			e.err = err
			e.release()
			break
		}
		if m == nil {
			continue
		}
		e.matches = append(e.matches, m)
		e.offsets = append(e.offsets, m.Index())
		if m.Index() >= lastIndex {
			e.pos = len(e.matches)
			return m, nil
		}
	}
	return nil, e.err
}

// FromSeq implements a Locator on top of a generator of matches.
//
// gen is called at most once per input string; it must yield the matches of
// s in order of non-decreasing offset. The generated matches are kept for the
// ten most recently used input strings, so repeated searches over the same
// input resume where they left off instead of generating again. FromSeq
// returns the first generated match whose offset is at least lastIndex.
//
// If gen yields an error, FromSeq returns it, and returns it again whenever
// a lookup needs matches beyond that point.
func (b *Base) FromSeq(s string, lastIndex int, gen func(s string) iter.Seq2[*Match, error]) (*Match, error) {
	if b.cache == nil {
		b.cache = newSeqCache()
	}
	e, ok := b.cache.entries.Get(s)
	if !ok {
		next, stop := iter.Pull2(gen(s))
		e = &seqEntry{next: next, stop: stop}
		b.cache.entries.Add(s, e)
	}
	return e.lookup(lastIndex)
}

// ResetCache drops the matches cached by FromSeq and stops their
// generators.
func (b *Base) ResetCache() {
	if b.cache != nil {
		b.cache.entries.Purge()
	}
}
