package irregex

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoChildren is returned by NewComposite when it is given no matchers.
	ErrNoChildren = errors.New("irregex: composite matcher needs at least one child")

	// ErrNotGlobal is returned by NewComposite when a child is not global.
	ErrNotGlobal = errors.New("irregex: composite child is not global")
)

// Composite merges the matches of several global matchers into one stream
// ordered by offset.
type Composite struct {
	*Base
	children []Matcher
}

// NewComposite returns a global matcher over children. The children's
// cursors follow the composite's cursor from then on.
func NewComposite(children ...Matcher) (*Composite, error) {
	if len(children) == 0 {
		return nil, ErrNoChildren
	}
	for i, c := range children {
		if !c.Global() {
			return nil, fmt.Errorf("child %d with flags %q: %w", i, c.Flags(), ErrNotGlobal)
		}
	}

	c := &Composite{children: slices.Clone(children)}
	c.Base = New(c, FlagGlobal)
	for _, child := range c.children {
		c.Track(child)
	}
	return c, nil
}

// Children returns the matchers the composite was built from.
func (c *Composite) Children() []Matcher {
	return slices.Clone(c.children)
}

// LocateMatch implements [Locator].
func (c *Composite) LocateMatch(s string, lastIndex int) (*Match, error) {
	m, _, err := c.Locate(s, lastIndex)
	return m, err
}

// Locate is like LocateMatch but also returns the index of the child that
// found the match, or -1. When several children match at the same offset,
// the one given first to NewComposite wins.
func (c *Composite) Locate(s string, lastIndex int) (*Match, int, error) {
	var best *Match
	bestChild := -1
	for i, child := range c.children {
		child.SetLastIndex(lastIndex)
		m, err := child.Exec(s)
		if err != nil {
			return nil, -1, err
		}
		if m != nil && (best == nil || m.Index() < best.Index()) {
			best, bestChild = m, i
		}
	}
	return best, bestChild, nil
}
