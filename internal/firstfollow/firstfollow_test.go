package firstfollow

import (
	"testing"

	"github.com/corvane/slrforge/internal/grammar"
	"github.com/corvane/slrforge/internal/util"
	"github.com/stretchr/testify/assert"
)

// exprGrammar is the canonical worked-example arithmetic-expression grammar:
//
//	E  -> T E'
//	E' -> + T E' | ε
//	T  -> F T'
//	T' -> * F T' | ε
//	F  -> ( E ) | id
func exprGrammar() *grammar.Grammar {
	return grammar.New(
		"E",
		[]grammar.Symbol{"E", "E'", "T", "T'", "F"},
		[]grammar.Symbol{"+", "*", "(", ")", "id"},
		[]grammar.Production{
			{Left: "E", Right: []grammar.Symbol{"T", "E'"}},
			{Left: "E'", Right: []grammar.Symbol{"+", "T", "E'"}},
			{Left: "E'", Right: []grammar.Symbol{grammar.Epsilon}},
			{Left: "T", Right: []grammar.Symbol{"F", "T'"}},
			{Left: "T'", Right: []grammar.Symbol{"*", "F", "T'"}},
			{Left: "T'", Right: []grammar.Symbol{grammar.Epsilon}},
			{Left: "F", Right: []grammar.Symbol{"(", "E", ")"}},
			{Left: "F", Right: []grammar.Symbol{"id"}},
		},
	)
}

func TestComputeFirst_MatchesWorkedExample(t *testing.T) {
	g := exprGrammar()
	first := ComputeFirst(g)

	assert.Equal(t, util.NewStringSet("(", "id"), first.Of("E"))
	assert.Equal(t, util.NewStringSet("+", grammar.Epsilon), first.Of("E'"))
	assert.Equal(t, util.NewStringSet("(", "id"), first.Of("T"))
	assert.Equal(t, util.NewStringSet("*", grammar.Epsilon), first.Of("T'"))
	assert.Equal(t, util.NewStringSet("(", "id"), first.Of("F"))
}

func TestComputeFirst_TerminalIsItself(t *testing.T) {
	g := exprGrammar()
	first := ComputeFirst(g)
	assert.Equal(t, util.NewStringSet("id"), first.Of("id"))
	assert.Equal(t, util.NewStringSet(grammar.Epsilon), first.Of(grammar.Epsilon))
}

func TestComputeFollow_MatchesWorkedExample(t *testing.T) {
	g := exprGrammar()
	first := ComputeFirst(g)
	follow := ComputeFollow(g, first)

	assert.Equal(t, util.NewStringSet(grammar.EndOfInput, ")"), follow.Of("E"))
	assert.Equal(t, util.NewStringSet(grammar.EndOfInput, ")"), follow.Of("E'"))
	assert.Equal(t, util.NewStringSet(grammar.EndOfInput, ")", "+"), follow.Of("T"))
	assert.Equal(t, util.NewStringSet(grammar.EndOfInput, ")", "+"), follow.Of("T'"))
	assert.Equal(t, util.NewStringSet(grammar.EndOfInput, ")", "*", "+"), follow.Of("F"))
}

func TestFirstSets_OfSeq(t *testing.T) {
	g := exprGrammar()
	first := ComputeFirst(g)

	// FIRST(T E') = FIRST(T) since T is never nullable.
	assert.Equal(t, util.NewStringSet("(", "id"), first.OfSeq([]grammar.Symbol{"T", "E'"}))

	// FIRST of an empty sequence is {ε}.
	assert.Equal(t, util.NewStringSet(grammar.Epsilon), first.OfSeq(nil))

	// FIRST(E' ")") : E' is nullable, so ")" contributes too.
	assert.Equal(t, util.NewStringSet("+", ")"), first.OfSeq([]grammar.Symbol{"E'", ")"}))
}
