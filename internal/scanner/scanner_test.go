package scanner

import (
	"testing"

	"github.com/corvane/slrforge/internal/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_IdentifiersOperatorsAndDelimiters(t *testing.T) {
	toks, err := New().Scan("id + id * id")
	require.NoError(t, err)
	require.Len(t, toks, 5)

	assert.Equal(t, driver.KindIdentifier, toks[0].Kind)
	assert.Equal(t, "id", toks[0].Lexeme)
	assert.Equal(t, driver.KindOperator, toks[1].Kind)
	assert.Equal(t, "+", toks[1].Lexeme)
	assert.Equal(t, driver.KindOperator, toks[3].Kind)
	assert.Equal(t, "*", toks[3].Lexeme)
}

func TestScan_KeywordsClassifiedSeparatelyFromIdentifiers(t *testing.T) {
	toks, err := New().Scan("if x")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, driver.KindKeyword, toks[0].Kind)
	assert.Equal(t, driver.KindIdentifier, toks[1].Kind)
}

func TestScan_NumericConstant(t *testing.T) {
	toks, err := New().Scan("42")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, driver.KindConstant, toks[0].Kind)
	assert.Equal(t, "42", toks[0].Lexeme)
}

func TestScan_ParenthesesAreDelimiters(t *testing.T) {
	toks, err := New().Scan("( id )")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, driver.KindDelimiter, toks[0].Kind)
	assert.Equal(t, "(", toks[0].Lexeme)
	assert.Equal(t, driver.KindDelimiter, toks[2].Kind)
	assert.Equal(t, ")", toks[2].Lexeme)
}

func TestScan_UnterminatedStringLiteralErrors(t *testing.T) {
	_, err := New().Scan(`"unterminated`)
	require.Error(t, err)
	_, ok := err.(*ScanError)
	assert.True(t, ok)
}

func TestScan_LineAndColumnTracking(t *testing.T) {
	toks, err := New().Scan("id\nid2")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 1, toks[1].Col)
}
