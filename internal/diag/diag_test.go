package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollector_HasErrorsOnlyWhenErrorSeverityPresent(t *testing.T) {
	c := New()
	assert.False(t, c.HasErrors())

	c.Add(Warning, "table", "shift/reduce conflict in state 3 on \"+\"")
	assert.False(t, c.HasErrors())

	c.Addf(Error, "grammar", "start symbol %q not in V", "Z")
	assert.True(t, c.HasErrors())

	assert.Len(t, c.All(), 2)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Severity: Error, Stage: "parse", Message: "no ACTION entry"}
	assert.Equal(t, `[error] parse: no ACTION entry`, d.String())
}
