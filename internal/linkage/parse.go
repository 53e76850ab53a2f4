package linkage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentence-spec text format, the I/O surface shared by the CLI, the
// server and the tests. A sentence is whitespace-separated word specs:
//
//	the:D+ cat:D-,S+ ran:S-
//
// Each word spec is "text:alt/alt/..." where an alt is a comma-separated
// connector expression list and "/" separates alternative disjuncts. An
// expression is [@]HEAD[tail](+|-)[<n]: "@" marks a multi connector, the
// head is one or more upper case letters, the tail is lower case letters,
// "*" or "^", the sign gives the direction, and "<n" caps the link
// length. A bare "text:" gives the word no disjuncts at all.
//
// This is not a dictionary format; dictionary parsing and disjunct
// construction live upstream.

type connSpec struct {
	str         string
	multi       bool
	rightward   bool
	lengthLimit int
}

func parseConnectorExpr(expr string) (connSpec, error) {
	cs := connSpec{lengthLimit: UnlimitedLen}
	rest := expr
	if strings.HasPrefix(rest, "@") {
		cs.multi = true
		rest = rest[1:]
	}
	i := 0
	for i < len(rest) && isUpper(rest[i]) {
		i++
	}
	if i == 0 {
		return cs, fmt.Errorf("connector %q: missing upper case head", expr)
	}
	for i < len(rest) && (rest[i] >= 'a' && rest[i] <= 'z' || rest[i] == '*' || rest[i] == '^') {
		i++
	}
	cs.str = rest[:i]
	if i >= len(rest) {
		return cs, fmt.Errorf("connector %q: missing direction sign", expr)
	}
	switch rest[i] {
	case '+':
		cs.rightward = true
	case '-':
		cs.rightward = false
	default:
		return cs, fmt.Errorf("connector %q: bad direction %q", expr, rest[i])
	}
	i++
	if i < len(rest) {
		if rest[i] != '<' {
			return cs, fmt.Errorf("connector %q: trailing garbage", expr)
		}
		limit, err := strconv.Atoi(rest[i+1:])
		if err != nil || limit < 1 {
			return cs, fmt.Errorf("connector %q: bad length limit", expr)
		}
		cs.lengthLimit = limit
	}
	return cs, nil
}

// buildDisjunct turns one alternative's connector expressions into a
// disjunct. Expressions are attached innermost first on each side, in the
// order given.
func buildDisjunct(exprs []string) (*Disjunct, error) {
	d := &Disjunct{}
	var leftTail, rightTail *Connector
	for _, expr := range exprs {
		cs, err := parseConnectorExpr(expr)
		if err != nil {
			return nil, err
		}
		c := &Connector{
			String:      cs.str,
			Multi:       cs.multi,
			LengthLimit: cs.lengthLimit,
			Priority:    ThinPriority,
		}
		if cs.rightward {
			if rightTail == nil {
				d.Right = c
			} else {
				rightTail.Next = c
			}
			rightTail = c
		} else {
			if leftTail == nil {
				d.Left = c
			} else {
				leftTail.Next = c
			}
			leftTail = c
		}
	}
	return d, nil
}

// ParseWordSpec parses a single "text:alts" word spec.
func ParseWordSpec(spec string) (*Word, error) {
	text, alts, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("word spec %q: missing colon", spec)
	}
	if text == "" {
		return nil, fmt.Errorf("word spec %q: empty word", spec)
	}
	w := &Word{Text: text}
	if alts == "" {
		return w, nil
	}
	for _, alt := range strings.Split(alts, "/") {
		var exprs []string
		if alt != "" {
			exprs = strings.Split(alt, ",")
		}
		d, err := buildDisjunct(exprs)
		if err != nil {
			return nil, fmt.Errorf("word %q: %w", text, err)
		}
		w.Disjuncts = append(w.Disjuncts, d)
	}
	return w, nil
}

// ParseSentenceSpec parses a whitespace-separated list of word specs into
// a ready-to-count sentence.
func ParseSentenceSpec(spec string) (*Sentence, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, errors.New("empty sentence spec")
	}
	words := make([]*Word, 0, len(fields))
	for _, f := range fields {
		w, err := ParseWordSpec(f)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return NewSentence(words), nil
}
