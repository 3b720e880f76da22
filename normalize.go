package irregex

import "fmt"

// Normalizer is one rewriting pass: every match of Selector is replaced by
// Replace(match). Selector should be global to rewrite every occurrence.
type Normalizer struct {
	Selector Matcher
	Replace  func(m *Match) string
}

// Normalize applies passes to input in order and returns the rewritten text
// together with the map from positions in it to positions in input.
//
// A replacement that has the same length as the text it replaces does not
// produce a breakpoint, so positions inside it map one to one. Positions
// inside a replacement that is longer than the replaced text map past its
// end.
func Normalize(input string, passes ...Normalizer) (string, *OffsetMap, error) {
	text := input
	var bps []Breakpoint
	for i, p := range passes {
		var pass []Breakpoint
		// len(output so far) - len(input consumed so far)
		shift := 0
		out, err := p.Selector.ReplaceFunc(text, func(m *Match) string {
			r := p.Replace(m)
			if d := len(m.String()) - len(r); d != 0 {
				shift -= d
				pass = append(pass, Breakpoint{Pos: m.End() + shift, Delta: d})
			}
			return r
		})
		if err != nil {
			return "", nil, fmt.Errorf("normalization pass %d: %w", i, err)
		}
		text = out
		bps = compose(bps, pass)
	}
	return text, &OffsetMap{bps: bps}, nil
}
