package count

import (
	"github.com/momor666/link-grammar/internal/linkage"
)

// Conjunction pruning.
//
// Before counting, a modified version of the exhaustive search can mark
// the disjuncts usable in at least one valid linkage, treating any range
// of deletable words as though it were not there. regionValid checks
// whether a region can be completed within itself; markRegion marks the
// disjuncts that can take part in completing it. Both share the memo
// table with a reduced value domain:
//
//	regionInvalid   the region can't be completed (marking irrelevant)
//	regionUnmarked  the region can be completed, not yet marked
//	regionMarked    the region can be completed and has been marked
//
// An absent entry means nothing is known yet. This pass is separate from
// counting; Reset the context before running a count afterwards.
const (
	regionInvalid  = int64(0)
	regionUnmarked = int64(1)
	regionMarked   = int64(2)
)

// pruneMatch gates the pruning recursion the way the counter gates on the
// full connector match.
func pruneMatch(le, re *linkage.Connector, lw, rw int) bool {
	return linkage.Match(le, re, lw, rw)
}

// regionValid returns regionInvalid if the range between lw and rw cannot
// be filled in with links given the boundary connectors, regionUnmarked
// if it can and hasn't been marked, and regionMarked if it has.
func (c *Context) regionValid(m Matcher, lw, rw int,
	le, re *linkage.Connector) int64 {

	if v, ok := c.tableLookup(lw, rw, le, re, 0); ok {
		return v
	}

	if le == nil && re == nil && c.deletable(lw, rw) {
		c.tableStore(lw, rw, le, re, 0, regionUnmarked)
		return regionUnmarked
	}

	startWord := lw + 1
	if le != nil {
		startWord = le.Word
	}
	endWord := rw
	if re != nil {
		endWord = re.Word + 1
	}

	found := regionInvalid

	for w := startWord; w < endWord && found == regionInvalid; w++ {
		ml := m.FormMatchList(w, le, lw, re, rw)
		for _, d := range ml {
			leftValid := le != nil && d.Left != nil &&
				pruneMatch(le, d.Left, lw, w) &&
				(c.regionValid(m, lw, w, le.Next, d.Left.Next) != regionInvalid ||
					(le.Multi && c.regionValid(m, lw, w, le, d.Left.Next) != regionInvalid) ||
					(d.Left.Multi && c.regionValid(m, lw, w, le.Next, d.Left) != regionInvalid) ||
					(le.Multi && d.Left.Multi && c.regionValid(m, lw, w, le, d.Left) != regionInvalid))
			if leftValid && c.regionValid(m, w, rw, d.Right, re) != regionInvalid {
				found = regionUnmarked
				break
			}
			rightValid := d.Right != nil && re != nil &&
				pruneMatch(d.Right, re, w, rw) &&
				(c.regionValid(m, w, rw, d.Right.Next, re.Next) != regionInvalid ||
					(d.Right.Multi && c.regionValid(m, w, rw, d.Right, re.Next) != regionInvalid) ||
					(re.Multi && c.regionValid(m, w, rw, d.Right.Next, re) != regionInvalid) ||
					(d.Right.Multi && re.Multi && c.regionValid(m, w, rw, d.Right, re) != regionInvalid))
			if (leftValid && rightValid) ||
				(rightValid && c.regionValid(m, lw, w, le, d.Left) != regionInvalid) {
				found = regionUnmarked
				break
			}
		}
		m.PutMatchList(ml)
	}
	c.tableStore(lw, rw, le, re, 0, found)
	return found
}

// markRegion marks as useful all disjuncts involved in some way in
// completing the structure within the region. Only disjuncts strictly
// between lw and rw get marked. If the region is invalid that fact lands
// in the table and nothing else happens.
func (c *Context) markRegion(m Matcher, lw, rw int,
	le, re *linkage.Connector) {

	v := c.regionValid(m, lw, rw, le, re)
	if v == regionInvalid || v == regionMarked {
		return
	}
	// Valid and unmarked; promote before descending.
	c.tableUpdate(lw, rw, le, re, 0, regionMarked)

	if le == nil && re == nil && c.nullLinks && rw != 1+lw {
		w := lw + 1
		for _, d := range c.sent.Words[w].Disjuncts {
			if d.Left == nil && c.regionValid(m, w, rw, d.Right, nil) != regionInvalid {
				d.Marked = true
				c.markRegion(m, w, rw, d.Right, nil)
			}
		}
		c.markRegion(m, w, rw, nil, nil)
		return
	}

	startWord := lw + 1
	if le != nil {
		startWord = le.Word
	}
	endWord := rw
	if re != nil {
		endWord = re.Word + 1
	}

	for w := startWord; w < endWord; w++ {
		ml := m.FormMatchList(w, le, lw, re, rw)
		for _, d := range ml {
			leftValid := le != nil && d.Left != nil &&
				pruneMatch(le, d.Left, lw, w) &&
				(c.regionValid(m, lw, w, le.Next, d.Left.Next) != regionInvalid ||
					(le.Multi && c.regionValid(m, lw, w, le, d.Left.Next) != regionInvalid) ||
					(d.Left.Multi && c.regionValid(m, lw, w, le.Next, d.Left) != regionInvalid) ||
					(le.Multi && d.Left.Multi && c.regionValid(m, lw, w, le, d.Left) != regionInvalid))
			rightValid := d.Right != nil && re != nil &&
				pruneMatch(d.Right, re, w, rw) &&
				(c.regionValid(m, w, rw, d.Right.Next, re.Next) != regionInvalid ||
					(d.Right.Multi && c.regionValid(m, w, rw, d.Right, re.Next) != regionInvalid) ||
					(re.Multi && c.regionValid(m, w, rw, d.Right.Next, re) != regionInvalid) ||
					(d.Right.Multi && re.Multi && c.regionValid(m, w, rw, d.Right, re) != regionInvalid))

			if leftValid && c.regionValid(m, w, rw, d.Right, re) != regionInvalid {
				d.Marked = true
				c.markRegion(m, w, rw, d.Right, re)
				c.markRegion(m, lw, w, le.Next, d.Left.Next)
				if le.Multi {
					c.markRegion(m, lw, w, le, d.Left.Next)
				}
				if d.Left.Multi {
					c.markRegion(m, lw, w, le.Next, d.Left)
				}
				if le.Multi && d.Left.Multi {
					c.markRegion(m, lw, w, le, d.Left)
				}
			}

			if rightValid && c.regionValid(m, lw, w, le, d.Left) != regionInvalid {
				d.Marked = true
				c.markRegion(m, lw, w, le, d.Left)
				c.markRegion(m, w, rw, d.Right.Next, re.Next)
				if d.Right.Multi {
					c.markRegion(m, w, rw, d.Right, re.Next)
				}
				if re.Multi {
					c.markRegion(m, w, rw, d.Right.Next, re)
				}
				if d.Right.Multi && re.Multi {
					c.markRegion(m, w, rw, d.Right, re)
				}
			}

			if leftValid && rightValid {
				d.Marked = true
				c.markRegion(m, lw, w, le.Next, d.Left.Next)
				if le.Multi {
					c.markRegion(m, lw, w, le, d.Left.Next)
				}
				if d.Left.Multi {
					c.markRegion(m, lw, w, le.Next, d.Left)
				}
				if le.Multi && d.Left.Multi {
					c.markRegion(m, lw, w, le, d.Left)
				}
				c.markRegion(m, w, rw, d.Right.Next, re.Next)
				if d.Right.Multi {
					c.markRegion(m, w, rw, d.Right, re.Next)
				}
				if re.Multi {
					c.markRegion(m, w, rw, d.Right.Next, re)
				}
				if d.Right.Multi && re.Multi {
					c.markRegion(m, w, rw, d.Right, re)
				}
			}
		}
		m.PutMatchList(ml)
	}
}

// DeleteUnmarkedDisjuncts removes from every word the disjuncts the
// marking pass left unmarked.
func DeleteUnmarkedDisjuncts(sent *linkage.Sentence) {
	for _, word := range sent.Words {
		kept := word.Disjuncts[:0]
		for _, d := range word.Disjuncts {
			if d.Marked {
				kept = append(kept, d)
			}
		}
		word.Disjuncts = kept
	}
}

// ConjunctionPrune marks and keeps only the disjuncts that can appear in
// some valid linkage when deletable ranges are treated as gaps, then
// deletes the rest. The matcher must have been built from the sentence's
// current disjunct sets. Reset the context before counting afterwards.
func ConjunctionPrune(sent *linkage.Sentence, m Matcher, c *Context,
	opts Options, deletable DeletableFunc) {

	c.res = opts.Resources
	c.exhausted = c.res.Exhausted()
	c.checktimer = 0
	c.sent = sent
	c.deletable = deletable
	c.nullLinks = opts.MinNullCount > 0

	for _, word := range sent.Words {
		for _, d := range word.Disjuncts {
			d.Marked = false
		}
	}

	if c.nullLinks {
		c.markRegion(m, -1, sent.Length(), nil, nil)
	} else {
		for w := range sent.Words {
			// Consider removing the words [0, w-1] from the beginning
			// of the sentence.
			if !c.deletable(-1, w) {
				continue
			}
			for _, d := range sent.Words[w].Disjuncts {
				if d.Left == nil &&
					c.regionValid(m, w, sent.Length(), d.Right, nil) != regionInvalid {
					c.markRegion(m, w, sent.Length(), d.Right, nil)
					d.Marked = true
				}
			}
		}
	}

	DeleteUnmarkedDisjuncts(sent)

	c.sent = nil
	c.res = nil
	c.checktimer = 0
	c.deletable = nil
}
