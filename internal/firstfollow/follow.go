package firstfollow

import (
	"github.com/corvane/slrforge/internal/grammar"
	"github.com/corvane/slrforge/internal/util"
)

// FollowSets is the fully-computed FOLLOW function for a grammar's
// non-terminals: for every non-terminal A, the set of terminals that can
// immediately follow A in some derivation from the start symbol, plus
// whether end-of-input can immediately follow it.
type FollowSets struct {
	g      *grammar.Grammar
	set    []util.IntSet // by symbolID, non-terminals only
	hasEnd []bool        // by symbolID
}

// ComputeFollow computes FOLLOW(A) for every non-terminal A of g, given its
// already-computed FirstSets, by the least fixed point satisfying:
//
//   - end-of-input ∈ FOLLOW(S) for the grammar's start symbol S;
//   - for every production B -> αAβ, FIRST(β) \ {ε} ⊆ FOLLOW(A);
//   - for every production B -> αAβ where β is empty or nullable,
//     FOLLOW(B) ⊆ FOLLOW(A).
//
// As with ComputeFirst, the iteration repeats to a fixed point because
// FOLLOW(B) may not be fully known the first time a production referencing
// it is processed (mutually FOLLOW-dependent non-terminals).
func ComputeFollow(g *grammar.Grammar, first *FirstSets) *FollowSets {
	n := g.NumSymbols()
	fo := &FollowSets{g: g, set: make([]util.IntSet, n), hasEnd: make([]bool, n)}
	for id := 0; id < n; id++ {
		fo.set[id] = util.IntSet{}
	}

	startID, _ := g.SymbolID(g.Start())
	fo.hasEnd[startID] = true

	for {
		changed := false
		for _, p := range g.Productions() {
			for i, sym := range p.Right {
				if sym == grammar.Epsilon || !g.IsNonTerminal(sym) {
					continue
				}
				symID, _ := g.SymbolID(sym)
				beta := p.Right[i+1:]

				betaFirst := first.OfSeq(beta)
				for _, t := range betaFirst.Sorted() {
					if t == grammar.Epsilon {
						continue
					}
					tid, _ := g.SymbolID(t)
					if !fo.set[symID].Has(tid) {
						fo.set[symID].Add(tid)
						changed = true
					}
				}

				if len(beta) == 0 || betaFirst.Has(grammar.Epsilon) {
					leftID, _ := g.SymbolID(p.Left)
					if fo.set[symID].AddAll(fo.set[leftID]) {
						changed = true
					}
					if !fo.hasEnd[symID] && fo.hasEnd[leftID] {
						fo.hasEnd[symID] = true
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return fo
}

// Of returns FOLLOW(nonTerminal) as a StringSet of terminal text, including
// "#" when end-of-input can follow nonTerminal.
func (fo *FollowSets) Of(nonTerminal grammar.Symbol) util.StringSet {
	id, ok := fo.g.SymbolID(nonTerminal)
	if !ok {
		return util.StringSet{}
	}
	out := make(util.StringSet, len(fo.set[id]))
	for tid := range fo.set[id] {
		out.Add(fo.g.Name(tid))
	}
	if fo.hasEnd[id] {
		out.Add(grammar.EndOfInput)
	}
	return out
}
