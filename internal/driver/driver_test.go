package driver

import (
	"testing"

	"github.com/corvane/slrforge/internal/firstfollow"
	"github.com/corvane/slrforge/internal/grammar"
	"github.com/corvane/slrforge/internal/table"
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

func exprTables() *table.Tables {
	g := exprGrammar()
	first := firstfollow.ComputeFirst(g)
	follow := firstfollow.ComputeFollow(g, first)
	return table.Build(g, first, follow)
}

func idTok() Token { return Token{Kind: KindIdentifier, Lexeme: "id"} }
func opTok(s string) Token { return Token{Kind: KindOperator, Lexeme: s} }
func delimTok(s string) Token { return Token{Kind: KindDelimiter, Lexeme: s} }

func TestParse_IdPlusIdTimesIdAccepts(t *testing.T) {
	tb := exprTables()
	tokens := []Token{idTok(), opTok("+"), idTok(), opTok("*"), idTok()}

	accepted, trace, err := Parse(tb, tokens)
	require.NoError(t, err)
	assert.True(t, accepted)
	require.True(t, len(trace) >= 2)
	assert.Equal(t, "accept", trace[len(trace)-1].Action)
	assert.Equal(t, "reduce 0 (E -> T E')", trace[len(trace)-2].Action)
}

// TestParse_EpsilonReductionFiresMidParse guards the fix for a bug where an
// epsilon production's item (A -> ·ε, dot never advancing past 0) never
// produced a written ACTION entry: with that bug, reducing T' -> ε on
// lookahead "+" had no ACTION entry and the parse failed instead of
// continuing. This asserts the reduction actually appears in the trace
// while input remains, not just that the overall parse accepts.
func TestParse_EpsilonReductionFiresMidParse(t *testing.T) {
	tb := exprTables()
	tokens := []Token{idTok(), opTok("+"), idTok(), opTok("*"), idTok()}

	accepted, trace, err := Parse(tb, tokens)
	require.NoError(t, err)
	require.True(t, accepted)

	found := false
	for _, step := range trace {
		if len(step.Buffer) == 0 {
			continue // only interested in reductions with input still pending
		}
		if step.Action == "reduce 5 (T' -> ε)" || step.Action == "reduce 2 (E' -> ε)" {
			found = true
			break
		}
	}
	assert.True(t, found, "expected an epsilon-production reduce mid-parse, trace: %+v", trace)
}

func TestParse_ParenthesizedExpressionAccepts(t *testing.T) {
	tb := exprTables()
	tokens := []Token{delimTok("("), idTok(), opTok("+"), idTok(), delimTok(")")}

	accepted, _, err := Parse(tb, tokens)
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestParse_UnbalancedParenRejects(t *testing.T) {
	tb := exprTables()
	tokens := []Token{delimTok("("), idTok()}

	accepted, _, err := Parse(tb, tokens)
	assert.False(t, accepted)
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ReasonNoAction, perr.Reason)
}

func TestParse_DanglingOperatorRejects(t *testing.T) {
	tb := exprTables()
	tokens := []Token{idTok(), opTok("+")}

	accepted, _, err := Parse(tb, tokens)
	assert.False(t, accepted)
	require.Error(t, err)
}

func TestParse_AdjacentIdsRejects(t *testing.T) {
	tb := exprTables()
	tokens := []Token{idTok(), idTok()}

	accepted, _, err := Parse(tb, tokens)
	assert.False(t, accepted)
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ReasonNoAction, perr.Reason)
	assert.Equal(t, grammar.Symbol("id"), perr.Lookahead)
}

func TestToken_TerminalMapping(t *testing.T) {
	assert.Equal(t, grammar.Symbol("id"), Token{Kind: KindIdentifier, Lexeme: "foo"}.Terminal())
	assert.Equal(t, grammar.Symbol("value"), Token{Kind: KindConstant, Lexeme: "42"}.Terminal())
	assert.Equal(t, grammar.Symbol("+"), Token{Kind: KindOperator, Lexeme: "+"}.Terminal())
	assert.Equal(t, grammar.Symbol("if"), Token{Kind: KindKeyword, Lexeme: "if"}.Terminal())
}
