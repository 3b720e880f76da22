package irregex

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestNewCompositeErrors(t *testing.T) {
	_, err := NewComposite()
	assert.ErrorIs(t, err, ErrNoChildren)

	_, err = NewComposite(MustCompile(`a`, FlagGlobal), MustCompile(`b`, FlagIgnoreCase))
	assert.ErrorIs(t, err, ErrNotGlobal)
	assert.ErrorContains(t, err, "child 1")
}

func TestComposite(t *testing.T) {
	t.Run("merges children", func(t *testing.T) {
		c, err := NewComposite(MustCompile(`a`, FlagGlobal), MustCompile(`b`, FlagGlobal|FlagIgnoreCase))
		assert.NilError(t, err)
		got, err := c.Match("a A b B")
		assert.NilError(t, err)
		assert.DeepEqual(t, got, []string{"a", "b", "B"})

		replaced, err := c.Replace("a A b B", "[$&]")
		assert.NilError(t, err)
		assert.Equal(t, replaced, "[a] A [b] [B]")
	})

	t.Run("attribution", func(t *testing.T) {
		c, err := NewComposite(MustCompile(`a`, FlagGlobal), MustCompile(`b`, FlagGlobal), MustCompile(`!`, FlagGlobal))
		assert.NilError(t, err)

		// Pairs of match offset and child index.
		var got [][2]int
		const s = "abcab!ba!"
		for i := 0; ; {
			m, child, err := c.Locate(s, i)
			assert.NilError(t, err)
			if m == nil {
				break
			}
			got = append(got, [2]int{m.Index(), child})
			i = m.End()
		}
		assert.DeepEqual(t, got, [][2]int{{0, 0}, {1, 1}, {3, 0}, {4, 1}, {5, 2}, {6, 1}, {7, 0}, {8, 2}})
	})

	t.Run("earliest child wins ties", func(t *testing.T) {
		c, err := NewComposite(MustCompile(`ab`, FlagGlobal), MustCompile(`a`, FlagGlobal))
		assert.NilError(t, err)
		m, child, err := c.Locate("xab", 0)
		assert.NilError(t, err)
		assert.Equal(t, m.String(), "ab")
		assert.Equal(t, child, 0)
	})

	t.Run("cursor fans out", func(t *testing.T) {
		a, b := MustCompile(`a`, FlagGlobal), MustCompile(`b`, FlagGlobal)
		c, err := NewComposite(a, b)
		assert.NilError(t, err)
		c.SetLastIndex(3)
		assert.Equal(t, a.LastIndex(), 3)
		assert.Equal(t, b.LastIndex(), 3)
		assert.Equal(t, len(c.Children()), 2)
	})

	t.Run("child error", func(t *testing.T) {
		errBoom := errors.New("boom")
		failing := New(LocatorFunc(func(string, int) (*Match, error) {
			return nil, errBoom
		}), FlagGlobal)
		c, err := NewComposite(MustCompile(`a`, FlagGlobal), failing)
		assert.NilError(t, err)
		c.SetLastIndex(1)
		_, err = c.Split("aaa", -1)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, c.LastIndex(), 1)
	})
}
