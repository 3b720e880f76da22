package irregex

import (
	"regexp"
	"strconv"
	"strings"
)

var templateRefRe = regexp.MustCompile(`\$(?:([$&` + "`" + `'])|(\d{1,2})|<([^>]*)>)`)

// Expand expands template against m the way String.prototype.replace does:
//
//	$$      a literal "$"
//	$&      the matched substring
//	$`      the part of the input before the match
//	$'      the part of the input after the match
//	$n $nn  capturing group n (1-99); the reference is kept literally if
//	        there is no such group
//	$<name> the named group; "" if it did not participate or is unknown,
//	        the reference is kept literally if m has no named groups at all
//
// Anything else is copied verbatim.
func Expand(template string, m *Match) string {
	return compileTemplate(template)(m)
}

func compileTemplate(template string) func(m *Match) string {
	if template == "" {
		return func(*Match) string { return "" }
	}
	refs := templateRefRe.FindAllStringSubmatchIndex(template, -1)
	if refs == nil {
		return func(*Match) string { return template }
	}
	return func(m *Match) string {
		var out strings.Builder
		prev := 0
		for _, ref := range refs {
			out.WriteString(template[prev:ref[0]])
			out.WriteString(expandRef(template, ref, m))
			prev = ref[1]
		}
		out.WriteString(template[prev:])
		return out.String()
	}
}

// expandRef expands one reference; ref is a submatch index slice of
// templateRefRe.
func expandRef(template string, ref []int, m *Match) string {
	whole := template[ref[0]:ref[1]]
	switch {
	case ref[2] != -1:
		switch template[ref[2]] {
		case '$':
			return "$"
		case '&':
			return m.String()
		case '`':
			return m.Input[:m.Index()]
		default: // '\''
			return m.Input[m.End():]
		}
	case ref[4] != -1:
		n, _ := strconv.Atoi(template[ref[4]:ref[5]])
		if n < 1 || n >= len(m.Groups) {
			return whole
		}
		return m.Groups[n].Text()
	default:
		name := template[ref[6]:ref[7]]
		if name == "" {
			return ""
		}
		if m.NamedGroups == nil {
			return whole
		}
		g, ok := m.NamedGroups[name]
		if !ok {
			return ""
		}
		return g.Text()
	}
}
