// Package table builds the SLR(1) ACTION/GOTO tables for a validated
// grammar: augmentation, the canonical LR(0) collection (via
// internal/lr0), and the ACTION/GOTO emission rule, including its
// last-write-wins conflict policy with observable diagnostics.
package table

import (
	"fmt"

	"github.com/corvane/slrforge/internal/firstfollow"
	"github.com/corvane/slrforge/internal/grammar"
	"github.com/corvane/slrforge/internal/lr0"
)

// ActionType distinguishes the four possible ACTION table entries.
type ActionType int

const (
	// ActionError is the zero value: an empty cell, meaning no entry was
	// ever written for that (state, terminal) pair.
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

func (t ActionType) String() string {
	switch t {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table cell. Only the field relevant to Type is
// meaningful: State for ActionShift, Production for ActionReduce.
type Action struct {
	Type       ActionType
	State      int
	Production int
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("shift %d", a.State)
	case ActionReduce:
		return fmt.Sprintf("reduce %d", a.Production)
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// equal compares two actions by the fields that matter for their Type;
// two ActionError values are always equal regardless of their other
// (meaningless) fields.
func (a Action) equal(o Action) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case ActionShift:
		return a.State == o.State
	case ActionReduce:
		return a.Production == o.Production
	default:
		return true
	}
}

// Conflict records a table cell that was written more than once with
// different actions: the grammar is not SLR(1). Conflict is a diagnostic,
// not a Go error returned from Build: building a conflicted table always
// succeeds (the teaching policy is permissive) but every conflict is
// recorded so a caller can observe "this grammar is not SLR(1)."
type Conflict struct {
	State     int
	Symbol    grammar.Symbol
	Existing  Action
	Attempted Action
}

func (c Conflict) String() string {
	kind := "shift/reduce"
	if c.Existing.Type == ActionReduce && c.Attempted.Type == ActionReduce {
		kind = "reduce/reduce"
	} else if c.Existing.Type == ActionAccept || c.Attempted.Type == ActionAccept {
		kind = "accept/reduce"
	}
	return fmt.Sprintf("%s conflict in state %d on %q: %s vs %s (kept %s)",
		kind, c.State, c.Symbol, c.Existing, c.Attempted, c.Attempted)
}

// Tables is the immutable ACTION/GOTO pair for a grammar, along with the
// canonical LR(0) collection it was built from and every conflict detected
// while emitting it.
type Tables struct {
	Augmented  *grammar.Grammar
	Collection *lr0.Collection
	Conflicts  []Conflict

	action map[int]map[grammar.Symbol]Action
	goTo   map[int]map[grammar.Symbol]int
}

// Build constructs the SLR(1) tables for g (a validated, unaugmented
// grammar) given its FIRST/FOLLOW sets (computed on g itself, not the
// augmented form: FOLLOW(S) already carries "#" per
// firstfollow.ComputeFollow, independent of augmentation).
func Build(g *grammar.Grammar, _ *firstfollow.FirstSets, follow *firstfollow.FollowSets) *Tables {
	aug := g.Augment()
	collection := lr0.Build(aug)
	startProd := aug.ProductionsOf(aug.Start())[0]

	t := &Tables{
		Augmented:  aug,
		Collection: collection,
		action:     map[int]map[grammar.Symbol]Action{},
		goTo:       map[int]map[grammar.Symbol]int{},
	}

	for k, state := range collection.States {
		t.action[k] = map[grammar.Symbol]Action{}
		t.goTo[k] = map[grammar.Symbol]int{}

		for _, item := range state {
			sym, hasNext := item.NextSymbol(aug)

			switch {
			case hasNext && aug.IsTerminal(sym) && sym != grammar.Epsilon:
				j := collection.Transitions[k][sym]
				t.write(k, sym, Action{Type: ActionShift, State: j})

			case hasNext && aug.IsNonTerminal(sym):
				t.goTo[k][sym] = collection.Transitions[k][sym]

			case !hasNext && item.Prod == startProd:
				t.write(k, grammar.EndOfInput, Action{Type: ActionAccept})

			case !hasNext:
				left := aug.Productions()[item.Prod].Left
				for _, a := range follow.Of(left).Sorted() {
					t.write(k, a, Action{Type: ActionReduce, Production: item.Prod})
				}
			}
		}
	}

	return t
}

// write installs act into cell (state, sym), recording a Conflict and
// keeping the new write if a different action was already there.
func (t *Tables) write(state int, sym grammar.Symbol, act Action) {
	existing, ok := t.action[state][sym]
	if ok && !existing.equal(act) {
		t.Conflicts = append(t.Conflicts, Conflict{
			State:     state,
			Symbol:    sym,
			Existing:  existing,
			Attempted: act,
		})
	}
	t.action[state][sym] = act
}

// Action returns ACTION[state, sym]. A zero Action (ActionError) means the
// cell was never written.
func (t *Tables) Action(state int, sym grammar.Symbol) Action {
	return t.action[state][sym]
}

// Goto returns GOTO[state, nonTerminal] and whether that cell was written.
func (t *Tables) Goto(state int, nonTerminal grammar.Symbol) (int, bool) {
	j, ok := t.goTo[state][nonTerminal]
	return j, ok
}

// IsSLR1 reports whether Build detected zero conflicts: a positive answer
// to "is this grammar SLR(1)?"
func (t *Tables) IsSLR1() bool {
	return len(t.Conflicts) == 0
}
