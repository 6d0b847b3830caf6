package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_BinaryRoundTrip(t *testing.T) {
	tb := exprTables()
	tokens := []Token{idTok(), opTok("+"), idTok()}

	accepted, trace, err := Parse(tb, tokens)
	require.NoError(t, err)
	require.True(t, accepted)
	require.NotEmpty(t, trace)

	data, err := trace.MarshalBinary()
	require.NoError(t, err)

	var decoded Trace
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, trace, decoded)
}

func TestTrace_UnmarshalBinaryTruncatedDataErrors(t *testing.T) {
	trace := Trace{{Step: 1, Action: "shift 3", StateStack: []int{0, 3}, SymbolStack: []string{"#", "id"}, Buffer: []string{"#"}}}
	data, err := trace.MarshalBinary()
	require.NoError(t, err)

	var decoded Trace
	assert.Error(t, decoded.UnmarshalBinary(data[:len(data)-4]))
}
