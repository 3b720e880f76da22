package irregex

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestCompileError(t *testing.T) {
	_, err := Compile(`(a`, FlagGlobal)
	var syntaxErr *SyntaxError
	assert.Assert(t, errors.As(err, &syntaxErr))
	assert.Assert(t, errors.Unwrap(err) != nil)

	func() {
		defer func() {
			r := recover()
			assert.Assert(t, r != nil)
		}()
		MustCompile(`[a`, 0)
	}()
}

func TestRegExpGroups(t *testing.T) {
	re := MustCompile(`(?<id>(a))(b)|(c)`, FlagGlobal)
	assert.DeepEqual(t, re.SubexpNames(), []string{"", "id", "", "", ""})

	m, err := re.Exec("xab")
	assert.NilError(t, err)
	want := []Group{
		{src: "xab", Start: 1, End: 3},
		{src: "xab", Start: 1, End: 2, Name: "id"},
		{src: "xab", Start: 1, End: 2},
		{src: "xab", Start: 2, End: 3},
		{src: "xab", Start: -1, End: -1},
	}
	assert.DeepEqual(t, m.Groups, want, cmp.AllowUnexported(Group{}))
	assert.Equal(t, m.NamedGroups["id"].Text(), "a")
	assert.DeepEqual(t, m.Captures(), []string{"a", "a", "b", ""})
}

func TestRegExpByteOffsets(t *testing.T) {
	re := MustCompile(`b+`, FlagGlobal)
	const s = "ébb😀b"
	matches, err := re.MatchAll(s).Collect()
	assert.NilError(t, err)
	var spans [][2]int
	for _, m := range matches {
		spans = append(spans, [2]int{m.Index(), m.End()})
		assert.Equal(t, s[m.Index():m.End()], m.String())
	}
	assert.DeepEqual(t, spans, [][2]int{{2, 4}, {8, 9}})

	// A cursor inside a code point resumes at the next one.
	re.SetLastIndex(5)
	m, err := re.Exec(s)
	assert.NilError(t, err)
	assert.Equal(t, m.Index(), 8)
}

func TestRegExpFlags(t *testing.T) {
	re := MustCompile(`A`, FlagGlobal|FlagIgnoreCase)
	assert.Equal(t, re.Flags(), "gi")
	assert.Equal(t, re.String(), "/A/gi")
	assert.Equal(t, re.Source(), "A")
	got, err := re.Match("aA")
	assert.NilError(t, err)
	assert.DeepEqual(t, got, []string{"a", "A"})

	t.Run("multiline", func(t *testing.T) {
		i, err := MustCompile(`^b`, FlagMultiline).Search("a\nb")
		assert.NilError(t, err)
		assert.Equal(t, i, 2)
		i, err = MustCompile(`^b`, 0).Search("a\nb")
		assert.NilError(t, err)
		assert.Equal(t, i, -1)
	})

	t.Run("dot all", func(t *testing.T) {
		ok, err := MustCompile(`a.b`, FlagDotAll).Test("a\nb")
		assert.NilError(t, err)
		assert.Assert(t, ok)
		ok, err = MustCompile(`a.b`, 0).Test("a\nb")
		assert.NilError(t, err)
		assert.Assert(t, !ok)
	})

	t.Run("sticky", func(t *testing.T) {
		re := MustCompile(`a`, FlagSticky)
		m, err := re.Exec("ba")
		assert.NilError(t, err)
		assert.Assert(t, m == nil)
		assert.Equal(t, re.LastIndex(), 0)

		re.SetLastIndex(1)
		m, err = re.Exec("ba")
		assert.NilError(t, err)
		assert.Equal(t, m.Index(), 1)
		assert.Equal(t, re.LastIndex(), 2)
	})

	t.Run("not global", func(t *testing.T) {
		re := MustCompile(`a`, 0)
		re.SetLastIndex(5)
		m, err := re.Exec("bab")
		assert.NilError(t, err)
		assert.Equal(t, m.Index(), 1)
		assert.Equal(t, re.LastIndex(), 5)
	})

	t.Run("cursor past input", func(t *testing.T) {
		re := MustCompile(`$`, FlagGlobal)
		re.SetLastIndex(4)
		m, err := re.Exec("abc")
		assert.NilError(t, err)
		assert.Assert(t, m == nil)
		assert.Equal(t, re.LastIndex(), 0)
	})
}

func TestRegExpSemantics(t *testing.T) {
	ok, err := MustCompile(`a$`, 0).Test("a\n")
	assert.NilError(t, err)
	assert.Assert(t, ok)

	i, err := MustCompile(`\d+`, 0).Search("n=\u0663\u0664")
	assert.NilError(t, err)
	assert.Equal(t, i, 2)
}

func TestRegExpWithFlags(t *testing.T) {
	re := MustCompile(`a`, 0)
	re.SetMatchTimeout(time.Second)
	re.SetLastIndex(3)

	g, err := re.WithFlags(FlagGlobal)
	assert.NilError(t, err)
	assert.Equal(t, g.Source(), "a")
	assert.Equal(t, g.Flags(), "g")
	assert.Equal(t, g.LastIndex(), 0)
	assert.Equal(t, g.re.MatchTimeout, time.Second)
	assert.Equal(t, re.Flags(), "")
}

func TestCaptureNames(t *testing.T) {
	for _, c := range []struct {
		pattern string
		want    []string
	}{
		{``, []string{""}},
		{`(a)(?:b)(?<n>c)(?'m'd)(?P<p>e)`, []string{"", "", "n", "m", "p"}},
		{`(?=a)(?!b)(?<=c)(?<!d)(?i)`, []string{""}},
		{`\(a\)[(][^)]`, []string{""}},
		{`[]()](x)`, []string{"", ""}},
		{`[\]()](x)`, []string{"", ""}},
		{`(?<open-close>a)`, []string{"", "open"}},
	} {
		assert.DeepEqual(t, captureNames(c.pattern), c.want)
	}
}
