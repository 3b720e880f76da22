package irregex

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

// seqMatcher matches every "x" through FromSeq and counts how often its
// generator is started and how often a generator returns.
type seqMatcher struct {
	*Base
	started  map[string]int
	finished int
}

func newSeqMatcher() *seqMatcher {
	m := &seqMatcher{started: map[string]int{}}
	m.Base = New(m, FlagGlobal)
	return m
}

func (m *seqMatcher) LocateMatch(s string, lastIndex int) (*Match, error) {
	return m.FromSeq(s, lastIndex, m.xs)
}

func (m *seqMatcher) xs(s string) iter.Seq2[*Match, error] {
	m.started[s]++
	return func(yield func(*Match, error) bool) {
		defer func() { m.finished++ }()
		for i := 0; i < len(s); i++ {
			if s[i] != 'x' {
				continue
			}
			if !yield(NewMatch(s, []int{i, i + 1}), nil) {
				return
			}
		}
	}
}

func TestFromSeqGeneratesOnce(t *testing.T) {
	m := newSeqMatcher()
	for range 3 {
		got, err := m.Match("xaxbx")
		assert.NilError(t, err)
		assert.DeepEqual(t, got, []string{"x", "x", "x"})
	}
	assert.Equal(t, m.started["xaxbx"], 1)
	assert.Equal(t, m.finished, 1)
}

func TestFromSeqRandomAccess(t *testing.T) {
	m := newSeqMatcher()
	const s = "x-x-x"
	offset := func(lastIndex int) int {
		t.Helper()
		match, err := m.FromSeq(s, lastIndex, m.xs)
		assert.NilError(t, err)
		if match == nil {
			return -1
		}
		return match.Index()
	}

	assert.Equal(t, offset(1), 2)
	assert.Equal(t, offset(0), 0)
	assert.Equal(t, offset(3), 4)
	assert.Equal(t, offset(2), 2)
	assert.Equal(t, offset(3), 4)
	assert.Equal(t, offset(5), -1)
	assert.Equal(t, offset(4), 4)
	assert.Equal(t, offset(1), 2)
	assert.Equal(t, m.started[s], 1)
}

func TestFromSeqEviction(t *testing.T) {
	m := newSeqMatcher()
	inputs := make([]string, seqCacheSize+1)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("x%dx", i)
	}

	for _, s := range inputs {
		m.SetLastIndex(0)
		match, err := m.Exec(s)
		assert.NilError(t, err)
		assert.Equal(t, match.Index(), 0)
	}
	// Only the generator of the first input was stopped.
	assert.Equal(t, m.finished, 1)

	m.SetLastIndex(0)
	_, err := m.Exec(inputs[0])
	assert.NilError(t, err)
	assert.Equal(t, m.started[inputs[0]], 2)
	assert.Equal(t, m.started[inputs[1]], 1)
	assert.Equal(t, m.finished, 2)

	m.ResetCache()
	assert.Equal(t, m.finished, len(inputs)+1)

	m.SetLastIndex(0)
	_, err = m.Exec(inputs[1])
	assert.NilError(t, err)
	assert.Equal(t, m.started[inputs[1]], 2)
}

func TestFromSeqError(t *testing.T) {
	errBoom := errors.New("boom")
	m := New(nil, FlagGlobal)
	started := 0
	gen := func(s string) iter.Seq2[*Match, error] {
		started++
		return func(yield func(*Match, error) bool) {
			if !yield(NewMatch(s, []int{0, 1}), nil) {
				return
			}
			yield(nil, errBoom)
		}
	}

	const s = "abc"
	match, err := m.FromSeq(s, 0, gen)
	assert.NilError(t, err)
	assert.Equal(t, match.Index(), 0)

	_, err = m.FromSeq(s, 1, gen)
	assert.ErrorIs(t, err, errBoom)
	_, err = m.FromSeq(s, 2, gen)
	assert.ErrorIs(t, err, errBoom)

	match, err = m.FromSeq(s, 0, gen)
	assert.NilError(t, err)
	assert.Equal(t, match.Index(), 0)
	assert.Equal(t, started, 1)
}

func TestFromSeqMatchesAlgorithms(t *testing.T) {
	m := newSeqMatcher()
	const s = "axbxxc"

	replaced, err := m.Replace(s, "[$&]")
	assert.NilError(t, err)
	assert.Equal(t, replaced, strings.ReplaceAll(s, "x", "[x]"))

	split, err := m.Split(s, -1)
	assert.NilError(t, err)
	assert.DeepEqual(t, split, []string{"a", "b", "", "c"})

	i, err := m.Search(s)
	assert.NilError(t, err)
	assert.Equal(t, i, 1)
	assert.Equal(t, m.started[s], 1)
}
