// Package firstfollow computes FIRST and FOLLOW sets for a grammar.Grammar
// by the standard fixed-point iterations (Dragon Book algorithms 4.27/4.28).
// Both are computed over
// interned symbol IDs for speed and converted back to symbol text only when
// a caller asks for a particular symbol's set.
package firstfollow

import (
	"github.com/corvane/slrforge/internal/grammar"
	"github.com/corvane/slrforge/internal/util"
)

// FirstSets is the fully-computed FIRST function for a grammar: for every
// interned symbol, the set of terminals (and possibly ε) that can begin a
// string it derives.
type FirstSets struct {
	g   *grammar.Grammar
	set []util.IntSet // by symbolID
	eps int           // interned id of grammar.Epsilon
}

// ComputeFirst computes FIRST(X) for every symbol X of g: FIRST(a) = {a} for
// a terminal, and for a non-terminal A the least sets satisfying, for every
// production A -> X1 X2 ... Xn:
//
//   - FIRST(X1) \ {ε} ⊆ FIRST(A);
//   - if X1, ..., Xi are all nullable, FIRST(Xi+1) \ {ε} ⊆ FIRST(A);
//   - if X1, ..., Xn are all nullable, ε ∈ FIRST(A);
//   - FIRST(A) ∪= {ε} directly for any epsilon-production A -> ε.
//
// The iteration repeats until no set changes, which terminates because each
// set only grows and is bounded by the finite symbol alphabet.
func ComputeFirst(g *grammar.Grammar) *FirstSets {
	n := g.NumSymbols()
	fs := &FirstSets{g: g, set: make([]util.IntSet, n)}
	for id := 0; id < n; id++ {
		fs.set[id] = util.IntSet{}
		if g.IsTerminalID(id) {
			fs.set[id].Add(id)
		}
	}
	eps, _ := g.SymbolID(grammar.Epsilon)
	fs.eps = eps

	for {
		changed := false
		for _, p := range g.Productions() {
			leftID, _ := g.SymbolID(p.Left)

			if p.IsEpsilon() {
				if !fs.set[leftID].Has(eps) {
					fs.set[leftID].Add(eps)
					changed = true
				}
				continue
			}

			allNullable := true
			for _, sym := range p.Right {
				symID, _ := g.SymbolID(sym)
				for t := range fs.set[symID] {
					if t == eps {
						continue
					}
					if !fs.set[leftID].Has(t) {
						fs.set[leftID].Add(t)
						changed = true
					}
				}
				if !fs.set[symID].Has(eps) {
					allNullable = false
					break
				}
			}
			if allNullable && !fs.set[leftID].Has(eps) {
				fs.set[leftID].Add(eps)
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return fs
}

// Of returns FIRST(sym) as a StringSet of symbol text, including "ε" when
// sym is nullable.
func (fs *FirstSets) Of(sym grammar.Symbol) util.StringSet {
	id, ok := fs.g.SymbolID(sym)
	if !ok {
		return util.StringSet{}
	}
	return fs.stringify(fs.set[id])
}

// OfSeq returns FIRST(X1 X2 ... Xn) for a sequence of symbols: the standard
// chaining rule applied to FirstSets already computed per-symbol. An empty
// sequence has FIRST = {ε}.
func (fs *FirstSets) OfSeq(syms []grammar.Symbol) util.StringSet {
	out := util.IntSet{}
	allNullable := true
	for _, sym := range syms {
		id, ok := fs.g.SymbolID(sym)
		if !ok {
			allNullable = false
			break
		}
		for t := range fs.set[id] {
			if t != fs.eps {
				out.Add(t)
			}
		}
		if !fs.set[id].Has(fs.eps) {
			allNullable = false
			break
		}
	}
	if allNullable {
		out.Add(fs.eps)
	}
	return fs.stringify(out)
}

func (fs *FirstSets) stringify(s util.IntSet) util.StringSet {
	out := make(util.StringSet, len(s))
	for id := range s {
		out.Add(fs.g.Name(id))
	}
	return out
}
