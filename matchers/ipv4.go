// Package matchers provides ready-made matchers built on package irregex.
//
// Every matcher in this package is global and can be used wherever an
// irregex.Matcher is accepted.
package matchers

import (
	"strconv"

	"github.com/auvred/irregex"
)

// IPv4 matches dotted-quad IPv4 addresses such as 192.168.1.1. The four
// octets are captured in groups 1 to 4.
type IPv4 struct {
	*irregex.Base
	re *irregex.RegExp
}

// NewIPv4 returns a matcher for IPv4 addresses.
func NewIPv4() *IPv4 {
	m := &IPv4{
		re: irregex.MustCompile(`([0-9]{1,3})\.([0-9]{1,3})\.([0-9]{1,3})\.([0-9]{1,3})`, irregex.FlagGlobal),
	}
	m.Base = irregex.New(m, irregex.FlagGlobal)
	m.Track(m.re)
	return m
}

func (m *IPv4) LocateMatch(s string, _ int) (*irregex.Match, error) {
	for {
		match, err := m.re.Exec(s)
		if err != nil || match == nil {
			return nil, err
		}
		if validOctets(match.Captures()) {
			return match, nil
		}
	}
}

func validOctets(octets []string) bool {
	for _, o := range octets {
		n, err := strconv.Atoi(o)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}
