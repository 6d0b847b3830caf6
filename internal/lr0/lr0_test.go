package lr0

import (
	"testing"

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

func TestItemSet_CanonicalOrderAndDedup(t *testing.T) {
	s := NewItemSet(Item{Prod: 2, Dot: 1}, Item{Prod: 0, Dot: 0}, Item{Prod: 0, Dot: 0}, Item{Prod: 1, Dot: 0})
	require.Len(t, s, 3)
	assert.Equal(t, ItemSet{{0, 0}, {1, 0}, {2, 1}}, s)
}

func TestClosure_Item0Contents(t *testing.T) {
	g := exprGrammar().Augment()
	startProds := g.ProductionsOf(g.Start())
	require.Len(t, startProds, 1)

	c0 := Closure(g, NewItemSet(Item{Prod: startProds[0], Dot: 0}))

	// CLOSURE({S' -> ·E}) must include every item that can be reached by
	// repeatedly expanding the non-terminal at the dot: S'->.E, E->.TE',
	// T->.FT', F->.(E), F->.id.
	var rendered []string
	for _, it := range c0 {
		rendered = append(rendered, it.String(g))
	}
	assert.Contains(t, rendered, g.Start()+" -> · E")
	assert.Contains(t, rendered, "E -> · T E'")
	assert.Contains(t, rendered, "T -> · F T'")
	assert.Contains(t, rendered, "F -> · ( E )")
	assert.Contains(t, rendered, "F -> · id")
}

func TestClosure_Idempotent(t *testing.T) {
	g := exprGrammar().Augment()
	startProds := g.ProductionsOf(g.Start())

	once := Closure(g, NewItemSet(Item{Prod: startProds[0], Dot: 0}))
	twice := Closure(g, once)
	assert.Equal(t, once.Key(), twice.Key())
}

func TestGoto_EmptyWhenNoItemAdvances(t *testing.T) {
	g := exprGrammar().Augment()
	startProds := g.ProductionsOf(g.Start())
	c0 := Closure(g, NewItemSet(Item{Prod: startProds[0], Dot: 0}))

	assert.Empty(t, Goto(g, c0, "*"))
}

func TestBuild_ReachesAcceptState(t *testing.T) {
	g := exprGrammar().Augment()
	c := Build(g)

	require.NotEmpty(t, c.States)

	// The accept item S' -> S· must appear in exactly one state.
	startProd := g.ProductionsOf(g.Start())[0]
	found := 0
	for _, state := range c.States {
		for _, it := range state {
			if it.Prod == startProd && it.AtEnd(g) {
				found++
			}
		}
	}
	assert.Equal(t, 1, found)
}

func TestBuild_TransitionsAreConsistentWithGoto(t *testing.T) {
	g := exprGrammar().Augment()
	c := Build(g)

	for i, trans := range c.Transitions {
		for sym, j := range trans {
			assert.Equal(t, Goto(g, c.States[i], sym).Key(), c.States[j].Key())
		}
	}
}
