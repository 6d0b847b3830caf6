package gramfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprGrammarTOML = `
s = "E"
v = ["E", "E'", "T", "T'", "F"]
t = ["+", "*", "(", ")", "id"]

[[p]]
left = "E"
right = ["T", "E'"]

[[p]]
left = "E'"
right = ["+", "T", "E'"]

[[p]]
left = "E'"
right = ["ε"]

[[p]]
left = "T"
right = ["F", "T'"]

[[p]]
left = "T'"
right = ["*", "F", "T'"]

[[p]]
left = "T'"
right = ["ε"]

[[p]]
left = "F"
right = ["(", "E", ")"]

[[p]]
left = "F"
right = ["id"]
`

func TestParse_ValidGrammarLoads(t *testing.T) {
	g, err := Parse([]byte(exprGrammarTOML))
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "E", g.Start())
	assert.True(t, g.IsNonTerminal("E'"))
	assert.True(t, g.IsTerminal("id"))
	assert.Len(t, g.Productions(), 8)
}

func TestParse_MissingStartSymbolIsError(t *testing.T) {
	_, err := Parse([]byte(`v = ["E"]` + "\n[[p]]\nleft=\"E\"\nright=[\"id\"]\n"))
	require.Error(t, err)
}

func TestParse_InvalidGrammarReturnsLoadError(t *testing.T) {
	_, err := Parse([]byte(`
s = "Z"
v = ["E"]
t = ["id"]
[[p]]
left = "E"
right = ["id"]
`))
	require.Error(t, err)
	_, ok := err.(*LoadError)
	assert.True(t, ok)
}

func TestParse_EmptyRightDefaultsToEpsilon(t *testing.T) {
	g, err := Parse([]byte(`
s = "E"
v = ["E"]
t = []
[[p]]
left = "E"
right = []
`))
	require.NoError(t, err)
	prods := g.Productions()
	require.Len(t, prods, 1)
	assert.True(t, prods[0].IsEpsilon())
}
