package fastmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momor666/link-grammar/internal/linkage"
)

func mustSentence(t *testing.T, spec string) *linkage.Sentence {
	t.Helper()
	sent, err := linkage.ParseSentenceSpec(spec)
	require.NoError(t, err)
	return sent
}

func TestFormMatchListLeft(t *testing.T) {
	sent := mustSentence(t, "a:S+ b:S-/O-/S-,T+ c:T-")
	ctx := NewContext(sent)

	le := sent.Words[0].Disjuncts[0].Right // S+
	ml := ctx.FormMatchList(1, le, 0, nil, 3)
	// Both S- disjuncts of b qualify; the O- one does not.
	assert.Len(t, ml, 2)
	for _, d := range ml {
		assert.Equal(t, "S", d.Left.String)
	}
	ctx.PutMatchList(ml)
}

func TestFormMatchListRight(t *testing.T) {
	sent := mustSentence(t, "a:S+ b:S-,T+ c:T-")
	ctx := NewContext(sent)

	re := sent.Words[2].Disjuncts[0].Left // T-
	ml := ctx.FormMatchList(1, nil, 0, re, 2)
	assert.Len(t, ml, 1)
	assert.Equal(t, "T", ml[0].Right.String)
	ctx.PutMatchList(ml)
}

func TestFormMatchListNoDuplicates(t *testing.T) {
	// b's lone disjunct is compatible with both boundaries; it must
	// appear once.
	sent := mustSentence(t, "a:S+ b:S-,T+ c:T-")
	ctx := NewContext(sent)

	le := sent.Words[0].Disjuncts[0].Right
	re := sent.Words[2].Disjuncts[0].Left
	ml := ctx.FormMatchList(1, le, 0, re, 2)
	assert.Len(t, ml, 1)
	ctx.PutMatchList(ml)
}

func TestFormMatchListBothNil(t *testing.T) {
	sent := mustSentence(t, "a:S+ b:S-")
	ctx := NewContext(sent)
	ml := ctx.FormMatchList(1, nil, 0, nil, 2)
	assert.Empty(t, ml)
	ctx.PutMatchList(ml)
}

func TestOutstandingLists(t *testing.T) {
	// Nested recursion holds several lists open at once; forming a new
	// list must not disturb an outstanding one.
	sent := mustSentence(t, "a:S+/T+ b:S-/T- c:S-/T-")
	ctx := NewContext(sent)

	leS := sent.Words[0].Disjuncts[0].Right
	leT := sent.Words[0].Disjuncts[1].Right

	outer := ctx.FormMatchList(1, leS, 0, nil, 3)
	require.Len(t, outer, 1)
	outerD := outer[0]

	inner := ctx.FormMatchList(2, leT, 0, nil, 3)
	require.Len(t, inner, 1)
	assert.Equal(t, "T", inner[0].Left.String)

	// The outer list is still intact.
	assert.Len(t, outer, 1)
	assert.Same(t, outerD, outer[0])

	ctx.PutMatchList(inner)
	ctx.PutMatchList(outer)
}

func TestListRecycling(t *testing.T) {
	sent := mustSentence(t, "a:S+ b:S-")
	ctx := NewContext(sent)
	le := sent.Words[0].Disjuncts[0].Right

	ml := ctx.FormMatchList(1, le, 0, nil, 2)
	ctx.PutMatchList(ml)
	ml2 := ctx.FormMatchList(1, le, 0, nil, 2)
	assert.Len(t, ml2, 1)
	ctx.PutMatchList(ml2)
}
