// Package oid provides helpers for dotted-decimal object identifiers.
package oid

import (
	"fmt"
	"slices"
	"strings"
)

// Separator delimits the arcs of a dotted OID.
const Separator = "."

// Arcs is the numeric form of an OID.
type Arcs []uint32

// IsDescendant reports whether child lies strictly below parent.
// The child must start with parent followed immediately by a separator,
// so "1.3.6.10" is not a descendant of "1.3.6.1" and equal OIDs never nest.
func IsDescendant(child, parent string) bool {
	if len(child) <= len(parent) {
		return false
	}
	return strings.HasPrefix(child, parent) && child[len(parent)] == '.'
}

// Parse converts a dotted string (e.g. "1.3.6.1.4.1") into arcs.
// A single leading dot is accepted.
func Parse(s string) (Arcs, error) {
	s = strings.TrimPrefix(s, Separator)
	if s == "" {
		return nil, nil
	}

	var arcs Arcs
	var current uint64
	var hasDigit bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			current = current*10 + uint64(c-'0')
			if current > 1<<32-1 {
				return nil, fmt.Errorf("arc out of range in OID %q", s)
			}
			hasDigit = true
		case c == '.':
			if !hasDigit {
				return nil, fmt.Errorf("empty arc in OID %q", s)
			}
			arcs = append(arcs, uint32(current))
			current = 0
			hasDigit = false
		default:
			return nil, fmt.Errorf("invalid character %q in OID %q", c, s)
		}
	}
	if !hasDigit {
		return nil, fmt.Errorf("trailing separator in OID %q", s)
	}
	return append(arcs, uint32(current)), nil
}

// String returns the dotted representation.
func (a Arcs) String() string {
	parts := make([]string, len(a))
	for i, arc := range a {
		parts[i] = fmt.Sprintf("%d", arc)
	}
	return strings.Join(parts, Separator)
}

// HasPrefix reports whether prefix matches the leading arcs of a.
func (a Arcs) HasPrefix(prefix Arcs) bool {
	return len(prefix) <= len(a) && slices.Equal(a[:len(prefix)], prefix)
}

// Compare orders OIDs arc by arc. Unparseable strings sort after valid
// ones and fall back to plain string comparison among themselves.
func Compare(x, y string) int {
	ax, errX := Parse(x)
	ay, errY := Parse(y)
	switch {
	case errX == nil && errY == nil:
		return slices.Compare(ax, ay)
	case errX == nil:
		return -1
	case errY == nil:
		return 1
	default:
		return strings.Compare(x, y)
	}
}

// Depth returns the number of arcs in a dotted OID, without validating them.
func Depth(s string) int {
	s = strings.TrimPrefix(s, Separator)
	if s == "" {
		return 0
	}
	return strings.Count(s, Separator) + 1
}
