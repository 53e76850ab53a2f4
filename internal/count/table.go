package count

import (
	"github.com/momor666/link-grammar/internal/linkage"
)

// tableEntry memoizes one subproblem: the number of linkages of the open
// range (lw, rw) with boundary connectors le/re and exactly cost units of
// null budget. Entries chain on hash collision.
type tableEntry struct {
	lw, rw int32
	le, re linkage.ConnectorID
	cost   int32
	count  int64
	next   *tableEntry
}

// A piecewise exponential function of the sentence length determines the
// size of the hash table. Probably should make use of the actual number
// of disjuncts, rather than just the number of words.
func tableShift(sentLen int) uint {
	shift := uint(12)
	if sentLen >= 10 {
		shift = 12 + uint(sentLen)/6
	}
	if shift > 24 {
		shift = 24
	}
	return shift
}

func (c *Context) initTable(sentLen int) {
	if c.table != nil {
		c.freeTable()
	}
	shift := tableShift(sentLen)
	c.log2TableSize = shift
	c.tableSize = 1 << shift
	c.table = make([]*tableEntry, c.tableSize)
}

func (c *Context) freeTable() {
	c.table = nil
	c.tableSize = 0
	c.log2TableSize = 0
}

// pairHash folds the subproblem quintuple into log2TableSize bits.
func (c *Context) pairHash(lw, rw int, le, re linkage.ConnectorID, cost int) uint32 {
	h := uint64(uint32(lw))
	h = h*2654435761 + uint64(uint32(rw))
	h = h*2654435761 + uint64(uint32(le))
	h = h*2654435761 + uint64(uint32(re))
	h = h*2654435761 + uint64(uint32(cost))
	h ^= h >> 32
	return uint32(h) & uint32(c.tableSize-1)
}

// tableStore inserts a fresh entry. Assumes it's not already there.
func (c *Context) tableStore(lw, rw int, le, re *linkage.Connector,
	cost int, count int64) *tableEntry {

	n := &tableEntry{
		lw: int32(lw), rw: int32(rw),
		le: le.ID(), re: re.ID(),
		cost: int32(cost), count: count,
	}
	h := c.pairHash(lw, rw, n.le, n.re, cost)
	n.next = c.table[h]
	c.table[h] = n
	return n
}

// findTablePointer returns the entry for this quintuple, or nil if
// absent. Every miss bumps the checktimer; at a coarse cadence we poll
// the resource budget, and once it trips every subsequent miss is
// materialized as a zero-count entry so the recursion above
// short-circuits. The count then degrades to a lower bound.
func (c *Context) findTablePointer(lw, rw int, le, re *linkage.Connector,
	cost int) *tableEntry {

	lid, rid := le.ID(), re.ID()
	h := c.pairHash(lw, rw, lid, rid, cost)
	for t := c.table[h]; t != nil; t = t.next {
		if t.lw == int32(lw) && t.rw == int32(rw) &&
			t.le == lid && t.re == rid && t.cost == int32(cost) {
			return t
		}
	}

	c.checktimer++
	if c.exhausted || (c.checktimer%checkTimerCadence == 0 &&
		c.res != nil && c.res.Exhausted()) {
		c.exhausted = true
		return c.tableStore(lw, rw, le, re, cost, 0)
	}
	return nil
}

// tableLookup returns the memoized count for this quintuple, if present.
func (c *Context) tableLookup(lw, rw int, le, re *linkage.Connector,
	cost int) (int64, bool) {

	t := c.findTablePointer(lw, rw, le, re, cost)
	if t == nil {
		return 0, false
	}
	return t.count, true
}

// tableUpdate overwrites an entry that must already be present. Only the
// pruning pass uses it, to promote a region from valid to marked.
func (c *Context) tableUpdate(lw, rw int, le, re *linkage.Connector,
	cost int, count int64) {

	t := c.findTablePointer(lw, rw, le, re, cost)
	if t == nil {
		panic("count: table entry missing on update")
	}
	t.count = count
}

// pseudocount returns 0 if and only if this subproblem is in the table
// with a count of zero; absence and any non-zero count give 1. It is the
// cheap oracle the counter consults before expanding a branch.
func (c *Context) pseudocount(lw, rw int, le, re *linkage.Connector,
	cost int) int64 {

	count, ok := c.tableLookup(lw, rw, le, re, cost)
	if ok && count == 0 {
		return 0
	}
	return 1
}
