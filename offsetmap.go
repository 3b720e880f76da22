package irregex

import (
	"math"
	"slices"
)

// Breakpoint is a position in transformed text at which an offset delta
// takes effect. Every position at or after Pos is shifted by Delta (in
// addition to the deltas of earlier breakpoints) to obtain the position in
// the original text.
type Breakpoint struct {
	Pos   int
	Delta int
}

// OffsetMap translates positions in transformed text back to positions in
// the text it was produced from.
//
// An OffsetMap scans its breakpoints with a forward-only cursor: queries
// must be made in non-decreasing order of position, unless the scan state is
// rewound with [OffsetMap.Restore].
type OffsetMap struct {
	bps []Breakpoint

	cursor int
	acc    int
	latest int
}

// OffsetMapState is a snapshot of the scan state of an [OffsetMap].
// The zero value is the initial state.
type OffsetMapState struct {
	cursor int
	acc    int
}

// NewOffsetMap returns a map with the given breakpoints, which are sorted by
// position.
func NewOffsetMap(breakpoints ...Breakpoint) *OffsetMap {
	bps := slices.Clone(breakpoints)
	slices.SortStableFunc(bps, compareBreakpoints)
	return &OffsetMap{bps: bps}
}

func compareBreakpoints(a, b Breakpoint) int {
	return a.Pos - b.Pos
}

// Remap returns the original position of pos: pos plus the deltas of all
// breakpoints at or before pos.
func (om *OffsetMap) Remap(pos int) int {
	om.latest = 0
	for ; om.cursor < len(om.bps); om.cursor++ {
		bp := om.bps[om.cursor]
		if bp.Pos > pos {
			break
		}
		om.latest = bp.Delta
		om.acc += bp.Delta
	}
	return pos + om.acc
}

// Latest returns the delta of the last breakpoint crossed by the most recent
// call to Remap, or 0 if it crossed none.
func (om *OffsetMap) Latest() int {
	return om.latest
}

// State returns the current scan state.
func (om *OffsetMap) State() OffsetMapState {
	return OffsetMapState{cursor: om.cursor, acc: om.acc}
}

// Restore rewinds or advances the scan to a state returned by State.
func (om *OffsetMap) Restore(st OffsetMapState) {
	om.cursor = st.cursor
	om.acc = st.acc
}

// Breakpoints returns a copy of the breakpoints in position order.
func (om *OffsetMap) Breakpoints() []Breakpoint {
	return slices.Clone(om.bps)
}

// RemapMatch returns a copy of m, found in transformed text, with every group
// translated to input, the text the transformation started from.
//
// Matches must be remapped in order of non-decreasing offset. Groups may
// come in any order as long as they start at or after the full match.
func (om *OffsetMap) RemapMatch(m *Match, input string) *Match {
	loc := make([]int, 2*len(m.Groups))
	names := make([]string, len(m.Groups))

	var st OffsetMapState
	for i, g := range m.Groups {
		names[i] = g.Name
		if i == 0 {
			loc[0] = om.Remap(g.Start)
			st = om.State()
			loc[1] = max(om.Remap(g.End), loc[0])
			continue
		}
		if !g.Matched() {
			loc[2*i], loc[2*i+1] = -1, -1
			continue
		}
		om.Restore(st)
		loc[2*i] = om.Remap(g.Start)
		loc[2*i+1] = max(om.Remap(g.End), loc[2*i])
	}
	for i := range loc {
		if loc[i] > len(input) {
			loc[i] = len(input)
		}
	}
	return NewMatch(input, loc, names...)
}

// compose returns the breakpoints of the map that applies next (from the
// newest text to the previous one) followed by prev (from the previous text
// to the original).
//
// Each breakpoint of prev, positioned in the previous text, is moved to the
// first position of the newest text that next maps at or past it.
func compose(prev, next []Breakpoint) []Breakpoint {
	if len(prev) == 0 {
		return next
	}
	if len(next) == 0 {
		return prev
	}

	out := make([]Breakpoint, 0, len(prev)+len(next))
	out = append(out, next...)

	// The segment [start, next[seg].Pos) of the newest text is shifted by
	// shift.
	seg, start, shift := 0, math.MinInt, 0
	for _, bp := range prev {
		for {
			t := max(start, bp.Pos-shift)
			if seg == len(next) || t < next[seg].Pos {
				out = append(out, Breakpoint{Pos: t, Delta: bp.Delta})
				break
			}
			shift += next[seg].Delta
			start = next[seg].Pos
			seg++
		}
	}

	slices.SortStableFunc(out, compareBreakpoints)
	return out
}
