package count

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momor666/link-grammar/internal/fastmatch"
)

func allDeletable(lw, rw int) bool { return true }

// emptyOnlyDeletable treats only empty ranges as gaps.
func emptyOnlyDeletable(lw, rw int) bool { return rw-lw <= 1 }

func TestConjunctionPruneKeepsUsable(t *testing.T) {
	// a's X+ can never link anywhere; the pass must drop it and keep
	// the S pair.
	sent := mustSentence(t, "a:S+/X+ b:S-")
	m := fastmatch.NewContext(sent)
	c := NewContext(sent.Length())
	defer c.Free()

	ConjunctionPrune(sent, m, c, Options{MinNullCount: 1}, allDeletable)

	require.Len(t, sent.Words[0].Disjuncts, 1)
	assert.Equal(t, "S", sent.Words[0].Disjuncts[0].Right.String)
	require.Len(t, sent.Words[1].Disjuncts, 1)
	assert.Equal(t, "S", sent.Words[1].Disjuncts[0].Left.String)
}

func TestConjunctionPruneNoNullLinks(t *testing.T) {
	// With null links off, marking starts from left-less disjuncts of
	// words whose prefix is deletable.
	sent := mustSentence(t, "a:S+/X+ b:S-")
	m := fastmatch.NewContext(sent)
	c := NewContext(sent.Length())
	defer c.Free()

	ConjunctionPrune(sent, m, c, Options{MinNullCount: 0}, emptyOnlyDeletable)

	require.Len(t, sent.Words[0].Disjuncts, 1)
	assert.Equal(t, "S", sent.Words[0].Disjuncts[0].Right.String)
	require.Len(t, sent.Words[1].Disjuncts, 1)
}

func TestConjunctionPruneDropsAllWhenInvalid(t *testing.T) {
	// Nothing can complete: every disjunct goes.
	sent := mustSentence(t, "a:X+ b:S-")
	m := fastmatch.NewContext(sent)
	c := NewContext(sent.Length())
	defer c.Free()

	ConjunctionPrune(sent, m, c, Options{MinNullCount: 0}, emptyOnlyDeletable)

	assert.Empty(t, sent.Words[0].Disjuncts)
	assert.Empty(t, sent.Words[1].Disjuncts)
}

// A region marked valid by the pruning recursion and then counted after
// a reset gives a consistent picture: pruning never removes a disjunct
// that a real linkage uses.
func TestPruneThenCount(t *testing.T) {
	sent := mustSentence(t, "a:S+/X+ b:S-/Y-")
	before := countAt(mustSentence(t, "a:S+/X+ b:S-/Y-"), 0, false)

	m := fastmatch.NewContext(sent)
	c := NewContext(sent.Length())
	ConjunctionPrune(sent, m, c, Options{MinNullCount: 1}, allDeletable)
	c.Reset(sent.Length())

	// The index must be rebuilt over the surviving disjuncts.
	after := Parse(sent, fastmatch.NewContext(sent), c, 0, Options{})
	c.Free()
	assert.Equal(t, before, after)
}

func TestRegionValidMemoizes(t *testing.T) {
	sent := mustSentence(t, "a:S+ b:S-")
	m := fastmatch.NewContext(sent)
	c := NewContext(sent.Length())
	defer c.Free()
	c.sent = sent
	c.deletable = emptyOnlyDeletable

	first := c.regionValid(m, -1, 2, nil, nil)
	v, ok := c.tableLookup(-1, 2, nil, nil, 0)
	require.True(t, ok)
	assert.Equal(t, first, v)
	assert.Equal(t, first, c.regionValid(m, -1, 2, nil, nil))
}
