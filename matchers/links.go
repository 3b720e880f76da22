package matchers

import (
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/auvred/irregex"
	"mvdan.cc/xurls/v2"
)

// LinkKind classifies a link found by [Links].
type LinkKind uint8

const (
	// Web addresses, with or without a scheme.
	LinkURL LinkKind = 1 << iota

	// E-mail addresses, with or without "mailto:".
	LinkEmail

	// file: URLs.
	LinkFile

	allLinks = LinkURL | LinkEmail | LinkFile
)

func (k LinkKind) String() string {
	switch k {
	case LinkURL:
		return "url"
	case LinkEmail:
		return "email"
	case LinkFile:
		return "file"
	}
	return "LinkKind(" + strconv.Itoa(int(k)) + ")"
}

// Links matches URLs, e-mail addresses and file URLs in free text. The
// named group "scheme" holds the scheme of the link, without the colon, if
// the link has one.
type Links struct {
	*irregex.Base
	re    *regexp.Regexp
	kinds LinkKind
}

// NewLinks returns a matcher for links of the given kinds, or of every kind
// if none is given.
func NewLinks(kinds ...LinkKind) *Links {
	m := &Links{re: xurls.Relaxed()}
	for _, k := range kinds {
		m.kinds |= k
	}
	if m.kinds == 0 {
		m.kinds = allLinks
	}
	m.Base = irregex.New(m, irregex.FlagGlobal)
	return m
}

func (m *Links) LocateMatch(s string, lastIndex int) (*irregex.Match, error) {
	return m.FromSeq(s, lastIndex, m.links)
}

// KindOf classifies a match found by m.
func (m *Links) KindOf(match *irregex.Match) LinkKind {
	return linkKind(match.String())
}

var linkNames = []string{"", "scheme"}

func (m *Links) links(s string) iter.Seq2[*irregex.Match, error] {
	return func(yield func(*irregex.Match, error) bool) {
		for _, loc := range m.re.FindAllStringIndex(s, -1) {
			link := s[loc[0]:loc[1]]
			if linkKind(link)&m.kinds == 0 {
				continue
			}
			scheme := []int{-1, -1}
			if n := schemeLen(link); n > 0 {
				scheme = []int{loc[0], loc[0] + n}
			}
			if !yield(irregex.NewMatch(s, append(loc, scheme...), linkNames...), nil) {
				return
			}
		}
	}
}

func linkKind(link string) LinkKind {
	scheme := strings.ToLower(link[:schemeLen(link)])
	switch {
	case scheme == "file":
		return LinkFile
	case scheme == "mailto":
		return LinkEmail
	case scheme == "" && isEmail(link):
		return LinkEmail
	}
	return LinkURL
}

// isEmail reports whether link has a user part, that is an "@" before the
// path.
func isEmail(link string) bool {
	at := strings.IndexByte(link, '@')
	path := strings.IndexAny(link, "/?#")
	return at > 0 && (path < 0 || at < path)
}

// schemeLen returns the length of the scheme at the start of link, or 0.
func schemeLen(link string) int {
	i := strings.IndexByte(link, ':')
	if i <= 0 {
		return 0
	}
	for j, c := range link[:i] {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case j > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return 0
		}
	}
	rest := link[i+1:]
	if strings.HasPrefix(rest, "//") || strings.EqualFold(link[:i], "mailto") || strings.EqualFold(link[:i], "file") {
		return i
	}
	return 0
}
