package linkage

// Disjunct is one alternative way a word can participate in a parse: a
// list of left-pointing and a list of right-pointing connectors, all of
// which must be satisfied by links. Marked is scratch space for the
// optional pruning pass.
type Disjunct struct {
	Left   *Connector
	Right  *Connector
	Marked bool
}

// Word holds the candidate disjuncts for one sentence position.
type Word struct {
	Text      string
	Disjuncts []*Disjunct
}

// Sentence is an ordered sequence of words whose tokens have already been
// expanded into disjuncts. It owns the connector arena; connectors and
// disjuncts are immutable during counting.
type Sentence struct {
	Words []*Word

	arena []*Connector
}

// Length returns the number of words.
func (s *Sentence) Length() int { return len(s.Words) }

// register assigns the next arena slot to c. Every connector reachable
// from a disjunct must be registered exactly once before counting starts.
func (s *Sentence) register(c *Connector) {
	c.id = ConnectorID(len(s.arena))
	s.arena = append(s.arena, c)
}

// NumConnectors returns the arena size, a sizing hint for downstream
// tables.
func (s *Sentence) NumConnectors() int { return len(s.arena) }

// NewSentence assembles a sentence from fully-built words, registering
// every connector into the arena and fixing up the per-connector word
// hints. Connector lists must already be ordered innermost first.
func NewSentence(words []*Word) *Sentence {
	s := &Sentence{Words: words}
	for w, word := range words {
		for _, d := range word.Disjuncts {
			for c := d.Left; c != nil; c = c.Next {
				c.Word = w - 1
				s.register(c)
			}
			for c := d.Right; c != nil; c = c.Next {
				c.Word = w + 1
				s.register(c)
			}
		}
	}
	return s
}
