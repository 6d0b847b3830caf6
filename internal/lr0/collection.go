package lr0

import "github.com/corvane/slrforge/internal/grammar"

// Collection is the canonical LR(0) item-set collection for an augmented
// grammar: every reachable state, plus the GOTO transitions between them,
// built breadth-first from state 0 = CLOSURE({S' -> ·S}).
type Collection struct {
	States []ItemSet

	// Transitions[i][X] is the state GOTO(States[i], X) reaches, for every
	// symbol X (terminal or non-terminal) that takes state i somewhere.
	Transitions []map[grammar.Symbol]int
}

// Build constructs the canonical collection for g, which must already be
// augmented (g.Augment()) so that its start symbol is the fresh S' with the
// single production S' -> S. It is the standard work-queue construction:
// start from state 0, and for every state and every symbol of the
// grammar compute GOTO; any result not already in the collection (by
// ItemSet.Key, not by identity) becomes a new state and is queued for the
// same treatment.
func Build(g *grammar.Grammar) *Collection {
	startProds := g.ProductionsOf(g.Start())
	initial := Closure(g, NewItemSet(Item{Prod: startProds[0], Dot: 0}))

	c := &Collection{
		States:      []ItemSet{initial},
		Transitions: []map[grammar.Symbol]int{{}},
	}
	index := map[string]int{initial.Key(): 0}

	symbols := allSymbols(g)

	queue := []int{0}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		for _, x := range symbols {
			target := Goto(g, c.States[i], x)
			if len(target) == 0 {
				continue
			}
			key := target.Key()
			j, ok := index[key]
			if !ok {
				j = len(c.States)
				c.States = append(c.States, target)
				c.Transitions = append(c.Transitions, map[grammar.Symbol]int{})
				index[key] = j
				queue = append(queue, j)
			}
			c.Transitions[i][x] = j
		}
	}

	return c
}

// allSymbols returns every symbol of g that can legally appear after a dot:
// every non-terminal and every terminal except Epsilon (an item's next
// symbol is never ε; an ε-production is represented by the dot already
// being at the end of an empty right-hand side).
func allSymbols(g *grammar.Grammar) []grammar.Symbol {
	var out []grammar.Symbol
	out = append(out, g.NonTerminals()...)
	for _, t := range g.Terminals() {
		if t != grammar.Epsilon {
			out = append(out, t)
		}
	}
	return out
}
