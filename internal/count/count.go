// Package count implements the exhaustive linkage-counting engine: a
// memoized recursive decomposition over sentence ranges and boundary
// connector states. For every range and pair of pending boundary
// connectors it computes the number of planar link assignments that
// satisfy all connectors, at a given number of unlinked words.
package count

import (
	"math"

	"github.com/momor666/link-grammar/internal/linkage"
	"github.com/momor666/link-grammar/internal/resources"
)

const (
	// CountSaturated is the saturation sentinel: totals are clamped here
	// to avoid overflow. The exact count is >= this value.
	CountSaturated = int64(math.MaxInt32)

	// ParseNumOverflow is the upstream heuristic threshold. It is
	// deliberately distinct from CountSaturated; callers compare against
	// whichever they mean.
	ParseNumOverflow = int64(1) << 24

	// checkTimerCadence spaces out resource polls so we don't make a
	// gazillion clock calls.
	checkTimerCadence = 450100
)

// Matcher enumerates candidate disjuncts for a split word and a pair of
// boundary connectors. Lists from nested calls may be outstanding at the
// same time.
type Matcher interface {
	FormMatchList(w int, le *linkage.Connector, lw int,
		re *linkage.Connector, rw int) []*linkage.Disjunct
	PutMatchList([]*linkage.Disjunct)
}

// Options is the per-parse configuration snapshot.
type Options struct {
	// IslandsOk allows linkage graphs with connected components separate
	// from the one containing the left wall.
	IslandsOk bool
	// MinNullCount is consulted by the pruning pass only.
	MinNullCount int
	// Resources is the budget handle; nil means unlimited.
	Resources *resources.Resources
}

// DeletableFunc is the oracle the pruning pass consults: may the words
// strictly between lw and rw be deleted as a block? lw may be -1. An
// empty range (rw <= lw+1) must report deletable.
type DeletableFunc func(lw, rw int) bool

// Context carries the memo table and the per-parse snapshot. It is owned
// by a single recursion; there is no locking because there is no sharing.
// A context may be reused across sentences via Reset.
type Context struct {
	sent      *linkage.Sentence
	nullBlock int
	islandsOk bool
	nullLinks bool

	tableSize     int
	log2TableSize uint
	table         []*tableEntry

	res        *resources.Resources
	exhausted  bool
	checktimer int

	deletable DeletableFunc
}

// NewContext allocates a counting context. The sentence length is used
// only as a sizing hint for the memo table.
func NewContext(sentLength int) *Context {
	c := &Context{}
	c.initTable(sentLength)
	return c
}

// Reset tears down the memo table and resizes it for a new sentence.
// Required between a pruning pass and a count, and between sentences.
func (c *Context) Reset(sentLength int) {
	c.initTable(sentLength)
	c.exhausted = false
	c.checktimer = 0
}

// Free releases the memo table. The context must not be used afterwards.
func (c *Context) Free() {
	c.freeTable()
}

// Exhausted reports whether the last parse ran out of resource budget, in
// which case its result is a lower bound rather than an exact count.
func (c *Context) Exhausted() bool { return c.exhausted }

// TableEntries returns the number of memo entries currently held, for
// metrics.
func (c *Context) TableEntries() int {
	n := 0
	for _, t := range c.table {
		for ; t != nil; t = t.next {
			n++
		}
	}
	return n
}

func (c *Context) doCount(m Matcher, lw, rw int,
	le, re *linkage.Connector, nullCount int) int64 {

	if nullCount < 0 {
		return 0
	}

	t := c.findTablePointer(lw, rw, le, re, nullCount)
	if t != nil {
		// May be a tentative zero from a frame below us on a cyclic
		// descent; returning it is what terminates that recursion.
		return t.count
	}
	// Create the entry with a tentative count of 0. It must be updated
	// before we return.
	t = c.tableStore(lw, rw, le, re, nullCount, 0)

	if rw == 1+lw {
		// Neighboring words. You can't have a linkage here with
		// nullCount > 0.
		if le == nil && re == nil && nullCount == 0 {
			t.count = 1
		} else {
			t.count = 0
		}
		return t.count
	}

	if le == nil && re == nil {
		if !c.islandsOk && lw != -1 {
			// If we don't allow islands then the null count of skipping
			// n words is just n. With nullBlock=4 the null count of
			// 1,2,3,4 nulls is 1; of 5,6,7,8 is 2; etc.
			if nullCount == (rw-lw-1+c.nullBlock-1)/c.nullBlock {
				t.count = 1
			} else {
				t.count = 0
			}
			return t.count
		}
		if nullCount == 0 {
			// There is no solution without nulls in this case. There is
			// a slight efficiency hack to separate this case out, but
			// it's not necessary for correctness.
			t.count = 0
			return t.count
		}
		var total int64
		w := lw + 1
		for _, d := range c.sent.Words[w].Disjuncts {
			if d.Left == nil {
				total += c.doCount(m, w, rw, d.Right, nil, nullCount-1)
			}
		}
		total += c.doCount(m, w, rw, nil, nil, nullCount-1)
		t.count = total
		return total
	}

	startWord := lw + 1
	if le != nil {
		startWord = le.Word
	}
	endWord := rw
	if re != nil {
		endWord = re.Word + 1
	}

	var total int64

	for w := startWord; w < endWord; w++ {
		ml := m.FormMatchList(w, le, lw, re, rw)
		for _, d := range ml {
			for lcost := 0; lcost <= nullCount; lcost++ {
				rcost := nullCount - lcost
				// lcost and rcost are the null budgets we're assigning
				// to the left and right parts respectively.

				lmatch := le != nil && d.Left != nil &&
					linkage.Match(le, d.Left, lw, w)
				rmatch := d.Right != nil && re != nil &&
					linkage.Match(d.Right, re, w, rw)

				// First determine, based on the table only, whether the
				// current split is provably unparsable. Four terms per
				// side: a multi connector stays in play after linking.
				var leftcount, rightcount int64
				if lmatch {
					leftcount = c.pseudocount(lw, w, le.Next, d.Left.Next, lcost)
					if le.Multi {
						leftcount += c.pseudocount(lw, w, le, d.Left.Next, lcost)
					}
					if d.Left.Multi {
						leftcount += c.pseudocount(lw, w, le.Next, d.Left, lcost)
					}
					if le.Multi && d.Left.Multi {
						leftcount += c.pseudocount(lw, w, le, d.Left, lcost)
					}
				}
				if rmatch {
					rightcount = c.pseudocount(w, rw, d.Right.Next, re.Next, rcost)
					if d.Right.Multi {
						rightcount += c.pseudocount(w, rw, d.Right, re.Next, rcost)
					}
					if re.Multi {
						rightcount += c.pseudocount(w, rw, d.Right.Next, re, rcost)
					}
					if d.Right.Multi && re.Multi {
						rightcount += c.pseudocount(w, rw, d.Right, re, rcost)
					}
				}

				// Total number where links are used on both sides.
				pseudototal := leftcount * rightcount

				if leftcount > 0 {
					// Evaluate using the left match, but not the right.
					pseudototal += leftcount *
						c.pseudocount(w, rw, d.Right, re, rcost)
				}
				if le == nil && rightcount > 0 {
					// Evaluate using the right match, but not the left.
					// This is only sound at the left wall; an interior
					// boundary connector must be consumed. Deliberately
					// no mirror term for re == nil.
					pseudototal += rightcount *
						c.pseudocount(lw, w, le, d.Left, lcost)
				}

				// pseudototal == 0 proves the true total is 0.
				if pseudototal == 0 {
					continue
				}

				leftcount, rightcount = 0, 0
				if lmatch {
					leftcount = c.doCount(m, lw, w, le.Next, d.Left.Next, lcost)
					if le.Multi {
						leftcount += c.doCount(m, lw, w, le, d.Left.Next, lcost)
					}
					if d.Left.Multi {
						leftcount += c.doCount(m, lw, w, le.Next, d.Left, lcost)
					}
					if le.Multi && d.Left.Multi {
						leftcount += c.doCount(m, lw, w, le, d.Left, lcost)
					}
				}
				if rmatch {
					rightcount = c.doCount(m, w, rw, d.Right.Next, re.Next, rcost)
					if d.Right.Multi {
						rightcount += c.doCount(m, w, rw, d.Right, re.Next, rcost)
					}
					if re.Multi {
						rightcount += c.doCount(m, w, rw, d.Right.Next, re, rcost)
					}
					if d.Right.Multi && re.Multi {
						rightcount += c.doCount(m, w, rw, d.Right, re, rcost)
					}
				}

				total += leftcount * rightcount

				if leftcount > 0 {
					total += leftcount * c.doCount(m, w, rw, d.Right, re, rcost)
				}
				if le == nil && rightcount > 0 {
					total += rightcount * c.doCount(m, lw, w, le, d.Left, lcost)
				}

				// Overflows can and do occur, esp. for dense disjunct
				// sets. Saturate and bail out.
				if total > CountSaturated {
					total = CountSaturated
					t.count = total
					m.PutMatchList(ml)
					return total
				}
			}
		}
		m.PutMatchList(ml)
	}
	t.count = total
	return total
}

// Parse returns the number of ways the sentence can be parsed with the
// specified null count: the number of words allowed to have no links to
// them. The context's table must already be initialized for this
// sentence.
func Parse(sent *linkage.Sentence, m Matcher, c *Context,
	nullCount int, opts Options) int64 {

	c.res = opts.Resources
	c.exhausted = c.res.Exhausted()
	c.checktimer = 0
	c.sent = sent

	// Consecutive blocks of this many words are considered one null
	// link. The extra +1 on the null count accommodates the virtual
	// null slot of the left wall.
	c.nullBlock = 1
	c.islandsOk = opts.IslandsOk

	total := c.doCount(m, -1, sent.Length(), nil, nil, nullCount+1)

	c.sent = nil
	c.res = nil
	c.checktimer = 0
	return total
}
