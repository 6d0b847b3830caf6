package table

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/corvane/slrforge/internal/grammar"
)

// String renders the ACTION/GOTO tables as a fixed-width grid, one row per
// state, ACTION columns (one per terminal plus end-of-input) followed by
// GOTO columns (one per non-terminal of the original, unaugmented
// grammar), built with rosed.InsertTableOpts.
func (t *Tables) String() string {
	terms := t.Augmented.Terminals()
	var allTerms []grammar.Symbol
	for _, term := range terms {
		if term != grammar.Epsilon {
			allTerms = append(allTerms, term)
		}
	}
	allTerms = append(allTerms, grammar.EndOfInput)

	var nonTerms []grammar.Symbol
	for _, nt := range t.Augmented.NonTerminals() {
		if nt != t.Augmented.Start() {
			nonTerms = append(nonTerms, nt)
		}
	}

	headers := []string{"state", "|"}
	for _, term := range allTerms {
		headers = append(headers, fmt.Sprintf("A:%s", term))
	}
	headers = append(headers, "|")
	for _, nt := range nonTerms {
		headers = append(headers, fmt.Sprintf("G:%s", nt))
	}

	data := [][]string{headers}

	for k := range t.Collection.States {
		row := []string{fmt.Sprintf("%d", k), "|"}

		for _, term := range allTerms {
			act := t.Action(k, term)
			cell := ""
			switch act.Type {
			case ActionShift:
				cell = fmt.Sprintf("s%d", act.State)
			case ActionReduce:
				cell = fmt.Sprintf("r%d", act.Production)
			case ActionAccept:
				cell = "acc"
			}
			row = append(row, cell)
		}

		row = append(row, "|")

		for _, nt := range nonTerms {
			cell := ""
			if j, ok := t.Goto(k, nt); ok {
				cell = fmt.Sprintf("%d", j)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
