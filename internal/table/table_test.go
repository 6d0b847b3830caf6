package table

import (
	"testing"

	"github.com/corvane/slrforge/internal/firstfollow"
	"github.com/corvane/slrforge/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func build(g *grammar.Grammar) *Tables {
	first := firstfollow.ComputeFirst(g)
	follow := firstfollow.ComputeFollow(g, first)
	return Build(g, first, follow)
}

func TestBuild_ExprGrammarIsConflictFree(t *testing.T) {
	tb := build(exprGrammar())
	assert.True(t, tb.IsSLR1())
	assert.Empty(t, tb.Conflicts)
}

func TestBuild_StateZeroShiftsOnOpenParenAndID(t *testing.T) {
	tb := build(exprGrammar())
	assert.Equal(t, ActionShift, tb.Action(0, "(").Type)
	assert.Equal(t, ActionShift, tb.Action(0, "id").Type)
	assert.Equal(t, ActionError, tb.Action(0, "+").Type)
}

// TestBuild_EpsilonProductionsGetReduceActions guards against an
// epsilon-production's sole item (A -> ·ε, dot never advancing since ε is
// never a GOTO column) being missed by the ACTION emission switch: every
// epsilon production in the grammar must end up with a reduce action
// written for each terminal in its left side's FOLLOW set, not just the
// item existing in some state's closure.
func TestBuild_EpsilonProductionsGetReduceActions(t *testing.T) {
	g := exprGrammar()
	tb := build(g)

	epsilonProds := map[int]string{}
	for i, p := range g.Productions() {
		if p.IsEpsilon() {
			epsilonProds[i] = p.Left
		}
	}
	require.Len(t, epsilonProds, 2) // E' -> ε (1), T' -> ε (4)

	first := firstfollow.ComputeFirst(g)
	follow := firstfollow.ComputeFollow(g, first)

	for prodIdx, left := range epsilonProds {
		found := false
		for k := range tb.Collection.States {
			for _, a := range follow.Of(left).Sorted() {
				act := tb.Action(k, a)
				if act.Type == ActionReduce && act.Production == prodIdx {
					found = true
				}
			}
		}
		assert.Truef(t, found, "no ACTION entry ever written for epsilon-production %d (%s -> ε)", prodIdx, left)
	}
}

func TestBuild_AcceptStateExists(t *testing.T) {
	tb := build(exprGrammar())
	found := false
	for k := range tb.Collection.States {
		if tb.Action(k, grammar.EndOfInput).Type == ActionAccept {
			found = true
			break
		}
	}
	assert.True(t, found)
}

// ambiguousGrammar is the classic S -> E ; E -> E + E | id, which has a
// shift/reduce conflict on "+" and is not SLR(1).
func ambiguousGrammar() *grammar.Grammar {
	return grammar.New(
		"S",
		[]grammar.Symbol{"S", "E"},
		[]grammar.Symbol{"+", "id"},
		[]grammar.Production{
			{Left: "S", Right: []grammar.Symbol{"E"}},
			{Left: "E", Right: []grammar.Symbol{"E", "+", "E"}},
			{Left: "E", Right: []grammar.Symbol{"id"}},
		},
	)
}

func TestBuild_AmbiguousGrammarReportsConflict(t *testing.T) {
	tb := build(ambiguousGrammar())
	require.False(t, tb.IsSLR1())
	require.NotEmpty(t, tb.Conflicts)
	assert.Equal(t, grammar.Symbol("+"), tb.Conflicts[0].Symbol)
}

// TestBuild_IsDeterministic rebuilds the tables from the same grammar and
// checks state-for-state identity: state insertion order, ACTION cells, and
// GOTO cells must all reproduce exactly.
func TestBuild_IsDeterministic(t *testing.T) {
	a := build(exprGrammar())
	b := build(exprGrammar())

	require.Equal(t, len(a.Collection.States), len(b.Collection.States))
	for k := range a.Collection.States {
		assert.Equal(t, a.Collection.States[k].Key(), b.Collection.States[k].Key())
	}
	assert.Equal(t, a.String(), b.String())
}

func TestTables_StringRendersWithoutPanicking(t *testing.T) {
	tb := build(exprGrammar())
	s := tb.String()
	assert.Contains(t, s, "A:id")
	assert.Contains(t, s, "G:E")
}
