// Package linkage holds the connector-level data model for the counting
// engine: connectors, disjuncts, words, sentences, and the connector
// matching rules.
package linkage

import "math"

// Priority of a connector. Almost all connectors are Thin; Up and Down
// appear only in dictionaries that use priority links.
type Priority uint8

const (
	ThinPriority Priority = iota
	UpPriority
	DownPriority
)

// ConnectorID is a stable index into a sentence's connector arena. The
// memo table keys on these rather than on pointers; two connectors with
// identical strings in different disjunct slots must never collide.
type ConnectorID int32

// NoConnector is the ID of an absent boundary connector.
const NoConnector ConnectorID = -1

// UnlimitedLen is the length limit of a connector that may span any
// distance.
const UnlimitedLen = math.MaxInt32

// Connector is one half of a potential link. The string starts with zero
// or more upper case letters (the head), followed by lower case letters,
// "*" and "^" (the tail). Next points at the subsequent connector on the
// same side of the same disjunct; the list is ordered innermost first.
type Connector struct {
	Label       int
	String      string
	Multi       bool
	LengthLimit int
	Priority    Priority
	// Word is the nearest word in the pointing direction that this
	// connector could possibly link to. The counter uses it to bound
	// the split-word loop.
	Word int
	Next *Connector

	id ConnectorID
}

// ID returns the arena index of c, or NoConnector for a nil connector.
func (c *Connector) ID() ConnectorID {
	if c == nil {
		return NoConnector
	}
	return c.id
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

// byteAt mimics reading past the end of a NUL-terminated string.
func byteAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// EasyMatch decides whether two connector strings match, ignoring labels,
// length limits and priorities. The sequences of upper case letters must
// match exactly; after that, "*" matches anything and "^" matches nothing
// except "*". This is the fast path used when the dictionary has no
// priority links. Match on ThinPriority connectors must agree with it.
func EasyMatch(s, t string) bool {
	i := 0
	for isUpper(byteAt(s, i)) || isUpper(byteAt(t, i)) {
		if byteAt(s, i) != byteAt(t, i) {
			return false
		}
		i++
	}
	for i < len(s) && i < len(t) {
		cs, ct := s[i], t[i]
		if cs == '*' || ct == '*' || (cs == ct && cs != '^') {
			i++
		} else {
			return false
		}
	}
	return true
}

// Match decides whether connector a (pointing right from word aw) and
// connector b (pointing left from word bw) can be linked. The labels must
// match, the distance must respect both length limits, the upper case
// heads must match exactly, and the tails must match under the priority
// pair. Thin/Thin matching is symmetric; Up/Down is directional.
func Match(a, b *Connector, aw, bw int) bool {
	if a.Label != b.Label {
		return false
	}

	dist := bw - aw
	if dist > a.LengthLimit || dist > b.LengthLimit {
		return false
	}

	s, t := a.String, b.String
	i := 0
	for isUpper(byteAt(s, i)) || isUpper(byteAt(t, i)) {
		if byteAt(s, i) != byteAt(t, i) {
			return false
		}
		i++
	}

	switch {
	case a.Priority == ThinPriority && b.Priority == ThinPriority:
		for i < len(s) && i < len(t) {
			cs, ct := s[i], t[i]
			if cs == '*' || ct == '*' || (cs == ct && cs != '^') {
				i++
			} else {
				return false
			}
		}
		return true

	case a.Priority == UpPriority && b.Priority == DownPriority:
		// Going up, the set of matching strings must get no larger: the
		// down string must be no stronger than the up string.
		for i < len(s) && i < len(t) {
			cs, ct := s[i], t[i]
			if cs == ct || cs == '*' || ct == '^' {
				i++
			} else {
				return false
			}
		}
		return true

	case b.Priority == UpPriority && a.Priority == DownPriority:
		for i < len(s) && i < len(t) {
			cs, ct := s[i], t[i]
			if cs == ct || ct == '*' || cs == '^' {
				i++
			} else {
				return false
			}
		}
		return true
	}
	return false
}

// LabelCompatible is the cheap prefix check the match-list index uses to
// bucket candidates: labels equal and upper case heads equal. It never
// rejects a pair that Match would accept.
func LabelCompatible(a, b *Connector) bool {
	if a.Label != b.Label {
		return false
	}
	s, t := a.String, b.String
	i := 0
	for isUpper(byteAt(s, i)) || isUpper(byteAt(t, i)) {
		if byteAt(s, i) != byteAt(t, i) {
			return false
		}
		i++
	}
	return true
}
