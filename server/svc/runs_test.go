package svc

import (
	"context"
	"testing"

	"github.com/corvane/slrforge/internal/firstfollow"
	"github.com/corvane/slrforge/internal/grammar"
	"github.com/corvane/slrforge/internal/scanner"
	"github.com/corvane/slrforge/internal/table"
	"github.com/corvane/slrforge/server/dao/inmem"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) Service {
	t.Helper()

	g := grammar.New(
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
	require.Empty(t, g.Validate())

	first := firstfollow.ComputeFirst(g)
	follow := firstfollow.ComputeFollow(g, first)
	tables := table.Build(g, first, follow)

	return New(inmem.NewDatastore(), g, tables, scanner.New())
}

func TestSubmitRun_PersistsVerdictAndTrace(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	userID := uuid.New()

	run, err := svc.SubmitRun(ctx, userID, "x + y * z")
	require.NoError(t, err)

	assert.True(t, run.Accepted)
	assert.Equal(t, "E", run.GrammarName)
	assert.Equal(t, userID, run.UserID)
	assert.NotEqual(t, uuid.Nil, run.ID)

	trace, err := DecodeTrace(run.Trace)
	require.NoError(t, err)
	require.NotEmpty(t, trace)
	assert.Equal(t, "accept", trace[len(trace)-1].Action)
}

func TestSubmitRun_RejectedParseIsStillStored(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	run, err := svc.SubmitRun(ctx, uuid.New(), "x +")
	require.NoError(t, err)
	assert.False(t, run.Accepted)

	got, err := svc.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.False(t, got.Accepted)
	assert.Equal(t, "x +", got.Source)
}
