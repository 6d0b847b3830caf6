package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// exprGrammar builds the canonical E/E'/T/T'/F expression grammar from the
// worked example: the fixture every other core package's tests key off of.
func exprGrammar() *Grammar {
	return New(
		"E",
		[]Symbol{"E", "E'", "T", "T'", "F"},
		[]Symbol{"+", "*", "(", ")", "id"},
		[]Production{
			{Left: "E", Right: []Symbol{"T", "E'"}},
			{Left: "E'", Right: []Symbol{"+", "T", "E'"}},
			{Left: "E'", Right: []Symbol{Epsilon}},
			{Left: "T", Right: []Symbol{"F", "T'"}},
			{Left: "T'", Right: []Symbol{"*", "F", "T'"}},
			{Left: "T'", Right: []Symbol{Epsilon}},
			{Left: "F", Right: []Symbol{"(", "E", ")"}},
			{Left: "F", Right: []Symbol{"id"}},
		},
	)
}

func TestValidate_ExprGrammarIsWellFormed(t *testing.T) {
	g := exprGrammar()
	assert.Empty(t, g.Validate())
}

func TestValidate_DuplicateSymbol(t *testing.T) {
	g := New("E", []Symbol{"E", "id"}, []Symbol{"id"}, []Production{
		{Left: "E", Right: []Symbol{"id"}},
	})
	errs := g.Validate()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, ReasonDuplicateSymbol, errs[0].Reason)
	}
}

func TestValidate_StartNotInV(t *testing.T) {
	g := New("Z", []Symbol{"E"}, []Symbol{"id"}, []Production{
		{Left: "E", Right: []Symbol{"id"}},
	})
	errs := g.Validate()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, ReasonStartNotInV, errs[0].Reason)
	}
}

func TestValidate_LeftNotInV(t *testing.T) {
	g := New("E", []Symbol{"E"}, []Symbol{"id"}, []Production{
		{Left: "X", Right: []Symbol{"id"}},
	})
	errs := g.Validate()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, ReasonLeftNotInV, errs[0].Reason)
	}
}

func TestValidate_RightUndefined(t *testing.T) {
	g := New("E", []Symbol{"E"}, []Symbol{"id"}, []Production{
		{Left: "E", Right: []Symbol{"bogus"}},
	})
	errs := g.Validate()
	if assert.Len(t, errs, 1) {
		assert.Equal(t, ReasonRightUndefined, errs[0].Reason)
	}
}

func TestValidate_ReportsMultipleDefects(t *testing.T) {
	g := New("Z", []Symbol{"E"}, []Symbol{"id"}, []Production{
		{Left: "X", Right: []Symbol{"bogus"}},
	})
	errs := g.Validate()
	assert.Len(t, errs, 3)
}

func TestAugment_AddsFreshStartAndProduction(t *testing.T) {
	g := exprGrammar()
	aug := g.Augment()

	assert.True(t, aug.IsNonTerminal(aug.Start()))
	assert.NotEqual(t, g.Start(), aug.Start())

	prods := aug.Productions()
	last := prods[len(prods)-1]
	assert.Equal(t, aug.Start(), last.Left)
	assert.Equal(t, []Symbol{"E"}, last.Right)

	// original productions are untouched, in order, at the front
	assert.Equal(t, g.Productions(), prods[:len(prods)-1])
}

func TestAugment_FreshNameAvoidsCollisionWithExistingPrime(t *testing.T) {
	// "E'" is already a non-terminal in the expression grammar, so
	// augmenting the sub-grammar rooted at E must not reuse it.
	g := exprGrammar()
	aug := g.Augment()
	assert.False(t, g.HasSymbol(aug.Start()))
}

func TestProductionIsEpsilon(t *testing.T) {
	assert.True(t, Production{Left: "E'", Right: []Symbol{Epsilon}}.IsEpsilon())
	assert.False(t, Production{Left: "E'", Right: []Symbol{"+", "T"}}.IsEpsilon())
}

func TestProductionsOf(t *testing.T) {
	g := exprGrammar()
	idx := g.ProductionsOf("T'")
	assert.Equal(t, []int{4, 5}, idx)
}

func TestSymbolIDRoundTrip(t *testing.T) {
	g := exprGrammar()
	id, ok := g.SymbolID("F")
	assert.True(t, ok)
	assert.Equal(t, Symbol("F"), g.Name(id))

	_, ok = g.SymbolID("not-a-symbol")
	assert.False(t, ok)
}
