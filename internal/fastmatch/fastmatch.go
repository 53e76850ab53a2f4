// Package fastmatch indexes the disjuncts of a sentence so that the
// counter can cheaply enumerate, for a candidate split word and a pair of
// boundary connectors, only those disjuncts that could plausibly match
// either boundary. Candidates still go through the full connector match
// inside the counter; the index only narrows the list.
package fastmatch

import (
	"github.com/momor666/link-grammar/internal/linkage"
)

// wordIndex buckets one word's disjuncts by the label of the shallowest
// connector on each side. Only the shallowest connector can take part in
// a boundary match, so bucketing on it loses nothing.
type wordIndex struct {
	left  map[int][]*linkage.Disjunct
	right map[int][]*linkage.Disjunct
}

// Context holds the per-sentence index plus a stack of reusable match
// lists. The counter holds several lists open at once across recursion,
// so every FormMatchList call gets its own list; PutMatchList recycles
// it. A single shared cursor would break the recursion.
type Context struct {
	words []wordIndex
	free  [][]*linkage.Disjunct
}

// NewContext builds the index from the sentence's current disjunct sets.
// Build it after any pruning pass; the index is read-only afterwards.
func NewContext(sent *linkage.Sentence) *Context {
	ctx := &Context{words: make([]wordIndex, sent.Length())}
	for w, word := range sent.Words {
		wi := wordIndex{
			left:  make(map[int][]*linkage.Disjunct),
			right: make(map[int][]*linkage.Disjunct),
		}
		for _, d := range word.Disjuncts {
			if d.Left != nil {
				wi.left[d.Left.Label] = append(wi.left[d.Left.Label], d)
			}
			if d.Right != nil {
				wi.right[d.Right.Label] = append(wi.right[d.Right.Label], d)
			}
		}
		ctx.words[w] = wi
	}
	return ctx
}

func (ctx *Context) getList() []*linkage.Disjunct {
	n := len(ctx.free)
	if n == 0 {
		return make([]*linkage.Disjunct, 0, 16)
	}
	l := ctx.free[n-1]
	ctx.free = ctx.free[:n-1]
	return l
}

// FormMatchList returns the disjuncts on word w whose shallowest left
// connector is label-compatible with le, or whose shallowest right
// connector is label-compatible with re. Either boundary may be nil. The
// returned list must be released with PutMatchList; lists from nested
// calls may be outstanding simultaneously.
func (ctx *Context) FormMatchList(w int, le *linkage.Connector, lw int,
	re *linkage.Connector, rw int) []*linkage.Disjunct {

	wi := ctx.words[w]
	ml := ctx.getList()

	if le != nil {
		for _, d := range wi.left[le.Label] {
			if linkage.LabelCompatible(le, d.Left) {
				ml = append(ml, d)
			}
		}
	}
	if re != nil {
		for _, d := range wi.right[re.Label] {
			// Skip disjuncts already taken via the left boundary.
			if le != nil && d.Left != nil && linkage.LabelCompatible(le, d.Left) {
				continue
			}
			if linkage.LabelCompatible(d.Right, re) {
				ml = append(ml, d)
			}
		}
	}
	return ml
}

// PutMatchList releases a list obtained from FormMatchList.
func (ctx *Context) PutMatchList(ml []*linkage.Disjunct) {
	ctx.free = append(ctx.free, ml[:0])
}
