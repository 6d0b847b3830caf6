package driver

import (
	"fmt"

	"github.com/corvane/slrforge/internal/grammar"
	"github.com/corvane/slrforge/internal/table"
)

// TraceStep is a snapshot of the driver's configuration at one step of the
// parse, taken after the step's action was applied: state stack, symbol
// stack, remaining buffer, and the action taken.
type TraceStep struct {
	Step        int
	Action      string
	StateStack  []int
	SymbolStack []grammar.Symbol
	Buffer      []grammar.Symbol
}

// Trace is the complete step-by-step record of a parse.
type Trace []TraceStep

// ParseErrorReason distinguishes the three ways the fail-fast driver can
// halt.
type ParseErrorReason int

const (
	// ReasonNoAction means ACTION[state, lookahead] was empty.
	ReasonNoAction ParseErrorReason = iota
	// ReasonNoGoto means a reduction completed but GOTO[state, A] was
	// empty.
	ReasonNoGoto
	// ReasonNoProgress means the driver detected a no-progress cycle of
	// epsilon-reductions and halted rather than loop forever.
	ReasonNoProgress
)

// ParseError reports why the driver rejected its input: the step at which
// it happened, the offending state, and (where applicable) the lookahead
// terminal that had no table entry.
type ParseError struct {
	Reason    ParseErrorReason
	Step      int
	State     int
	Lookahead grammar.Symbol
	Message   string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Parse replays tables against tokens using the standard two-stack
// construction: state_stack seeded with state 0, symbol_stack seeded with the
// end-of-input sentinel) and a buffer of tokens with "#" appended as the
// end marker. It returns whether the input was accepted, the full trace of
// steps taken, and a non-nil error (a *ParseError) describing the first
// failure on rejection.
func Parse(tables *table.Tables, tokens []Token) (accepted bool, trace Trace, err error) {
	buffer := make([]grammar.Symbol, 0, len(tokens)+1)
	for _, tok := range tokens {
		buffer = append(buffer, tok.Terminal())
	}
	buffer = append(buffer, grammar.EndOfInput)

	states := []int{0}
	syms := []grammar.Symbol{grammar.EndOfInput}
	pos := 0
	step := 0

	// visitedSinceShift detects a no-progress cycle: a reduction that pops
	// zero symbols (an epsilon-production) changes the top of state_stack
	// without consuming input. If the same (input position, new top state)
	// pair recurs before the next shift, the driver is looping forever on
	// a degenerate chain of epsilon-reductions and must halt instead.
	visitedSinceShift := map[int]bool{}

	for {
		state := states[len(states)-1]
		a := buffer[pos]
		act := tables.Action(state, a)

		switch act.Type {
		case table.ActionShift:
			states = append(states, act.State)
			syms = append(syms, a)
			pos++
			step++
			trace = append(trace, snapshot(step, fmt.Sprintf("shift %d", act.State), states, syms, buffer[pos:]))
			visitedSinceShift = map[int]bool{}

		case table.ActionReduce:
			prod := tables.Augmented.Productions()[act.Production]
			n := len(prod.Right)
			if prod.IsEpsilon() {
				n = 0
			}
			states = states[:len(states)-n]
			syms = syms[:len(syms)-n]

			s2 := states[len(states)-1]
			j, ok := tables.Goto(s2, prod.Left)
			if !ok {
				step++
				perr := &ParseError{
					Reason:    ReasonNoGoto,
					Step:      step,
					State:     s2,
					Lookahead: a,
					Message: fmt.Sprintf("step %d: no GOTO entry for state %d on %q after reducing by %q",
						step, s2, prod.Left, prod.String()),
				}
				return false, trace, perr
			}

			states = append(states, j)
			syms = append(syms, prod.Left)
			step++
			trace = append(trace, snapshot(step, fmt.Sprintf("reduce %d (%s)", act.Production, prod.String()), states, syms, buffer[pos:]))

			if n == 0 {
				key := pos*len(tables.Collection.States) + j
				if visitedSinceShift[key] {
					step++
					perr := &ParseError{
						Reason: ReasonNoProgress,
						Step:   step,
						State:  j,
						Message: fmt.Sprintf("step %d: no-progress cycle detected at input position %d, state %d (epsilon-reduction loop)",
							step, pos, j),
					}
					return false, trace, perr
				}
				visitedSinceShift[key] = true
			}

		case table.ActionAccept:
			step++
			trace = append(trace, snapshot(step, "accept", states, syms, buffer[pos:]))
			return true, trace, nil

		default:
			step++
			perr := &ParseError{
				Reason:    ReasonNoAction,
				Step:      step,
				State:     state,
				Lookahead: a,
				Message:   fmt.Sprintf("step %d: no ACTION entry for state %d on lookahead %q", step, state, a),
			}
			return false, trace, perr
		}
	}
}

func snapshot(step int, action string, states []int, syms []grammar.Symbol, buffer []grammar.Symbol) TraceStep {
	return TraceStep{
		Step:        step,
		Action:      action,
		StateStack:  append([]int{}, states...),
		SymbolStack: append([]grammar.Symbol{}, syms...),
		Buffer:      append([]grammar.Symbol{}, buffer...),
	}
}
