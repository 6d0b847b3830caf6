// Package lr0 builds the canonical collection of LR(0) item sets for an
// augmented grammar: CLOSURE, GOTO, and the work-queue construction that
// assembles every reachable state (the table builder itself lives in
// internal/table and consumes this collection).
package lr0

import (
	"fmt"
	"sort"
	"strings"

	"github.com/corvane/slrforge/internal/grammar"
)

// Item is a single LR(0) item: a production together with a dot position
// marking how much of its right-hand side has been matched so far. Dot
// ranges from 0 (nothing matched) to len(production.Right) (a reduce item).
type Item struct {
	Prod int
	Dot  int
}

// AtEnd reports whether the dot has reached the end of the production's
// right-hand side (a reduce item). An ε-production's dot never advances past
// 0 (ε is not a symbol any GOTO shifts on), so it is always at its logical
// end the moment CLOSURE introduces it: A -> ·ε is already A -> ε·.
func (it Item) AtEnd(g *grammar.Grammar) bool {
	p := g.Productions()[it.Prod]
	if p.IsEpsilon() {
		return true
	}
	return it.Dot >= len(p.Right)
}

// NextSymbol returns the symbol immediately after the dot, if any. An
// ε-production is never shifted on; its placeholder Epsilon symbol is not a
// real GOTO column, so NextSymbol reports no next symbol regardless of the
// dot's raw position, matching AtEnd.
func (it Item) NextSymbol(g *grammar.Grammar) (grammar.Symbol, bool) {
	p := g.Productions()[it.Prod]
	if p.IsEpsilon() {
		return "", false
	}
	if it.Dot >= len(p.Right) {
		return "", false
	}
	return p.Right[it.Dot], true
}

// Advance returns the item with the dot moved one position to the right.
func (it Item) Advance() Item {
	return Item{Prod: it.Prod, Dot: it.Dot + 1}
}

// String renders it as "A -> α·β", the standard dotted-item notation.
func (it Item) String(g *grammar.Grammar) string {
	p := g.Productions()[it.Prod]
	if p.IsEpsilon() {
		return fmt.Sprintf("%s -> %s·", p.Left, grammar.Epsilon)
	}
	parts := make([]string, 0, len(p.Right)+1)
	for i, sym := range p.Right {
		if i == it.Dot {
			parts = append(parts, "·")
		}
		parts = append(parts, sym)
	}
	if it.Dot >= len(p.Right) {
		parts = append(parts, "·")
	}
	return fmt.Sprintf("%s -> %s", p.Left, strings.Join(parts, " "))
}

// ItemSet is a canonically ordered, duplicate-free set of items: sorted by
// production index then dot position. This canonical order is what lets the
// canonical-collection builder test "is this set already in the collection"
// in time linear in the set's size via Key, rather than a quadratic
// pairwise item-by-item comparison.
type ItemSet []Item

// NewItemSet builds a canonical ItemSet from a (possibly unsorted,
// possibly duplicate-containing) slice of items.
func NewItemSet(items ...Item) ItemSet {
	seen := map[Item]bool{}
	out := make(ItemSet, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Prod != out[j].Prod {
			return out[i].Prod < out[j].Prod
		}
		return out[i].Dot < out[j].Dot
	})
	return out
}

// Key returns a canonical string uniquely identifying the set's contents,
// used as the map key for canonical-collection membership tests.
func (s ItemSet) Key() string {
	var sb strings.Builder
	for i, it := range s {
		if i > 0 {
			sb.WriteByte(';')
		}
		fmt.Fprintf(&sb, "%d:%d", it.Prod, it.Dot)
	}
	return sb.String()
}

// String renders every item in the set, one per line.
func (s ItemSet) String(g *grammar.Grammar) string {
	lines := make([]string, len(s))
	for i, it := range s {
		lines[i] = it.String(g)
	}
	return strings.Join(lines, "\n")
}

// Closure computes CLOSURE(items) per the standard LR(0) closure rule: for
// every item A -> α·Bβ in the set with B a non-terminal, add B -> ·γ for
// every production of B, repeating until no item is added.
func Closure(g *grammar.Grammar, items ItemSet) ItemSet {
	inSet := map[Item]bool{}
	var work []Item
	for _, it := range items {
		if !inSet[it] {
			inSet[it] = true
			work = append(work, it)
		}
	}

	for i := 0; i < len(work); i++ {
		sym, ok := work[i].NextSymbol(g)
		if !ok || !g.IsNonTerminal(sym) {
			continue
		}
		for _, prodIdx := range g.ProductionsOf(sym) {
			cand := Item{Prod: prodIdx, Dot: 0}
			if !inSet[cand] {
				inSet[cand] = true
				work = append(work, cand)
			}
		}
	}

	return NewItemSet(work...)
}

// Goto computes GOTO(state, X): advance every item of state whose next
// symbol is X, then close the result. Returns an empty ItemSet if no item
// of state can advance on X.
func Goto(g *grammar.Grammar, state ItemSet, x grammar.Symbol) ItemSet {
	var moved []Item
	for _, it := range state {
		sym, ok := it.NextSymbol(g)
		if ok && sym == x {
			moved = append(moved, it.Advance())
		}
	}
	if len(moved) == 0 {
		return nil
	}
	return Closure(g, moved)
}
