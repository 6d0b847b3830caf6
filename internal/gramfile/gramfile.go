// Package gramfile reads the external grammar description format
// from a TOML document (this project's structured-input-file convention
// for world/resource-style files) into a validated grammar.Grammar.
package gramfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"

	"github.com/corvane/slrforge/internal/grammar"
)

// document is the on-disk shape of a grammar file: the s/v/t/p keys,
// with each production table carrying a left side and an ordered right
// side.
type document struct {
	S string     `toml:"s"`
	V []string   `toml:"v"`
	T []string   `toml:"t"`
	P []prodDoc  `toml:"p"`
}

type prodDoc struct {
	Left  string   `toml:"left"`
	Right []string `toml:"right"`
}

// LoadError reports that a grammar file was syntactically valid TOML but
// failed grammar.Validate.
type LoadError struct {
	Path   string
	Errors []*grammar.GrammarError
}

func (e *LoadError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		msgs[i] = ge.Error()
	}
	return fmt.Sprintf("grammar file %q is not well-formed: %s", e.Path, strings.Join(msgs, "; "))
}

// Load reads the grammar description at path and returns a validated
// Grammar, or an error: a TOML syntax error, a missing required key, or a
// *LoadError wrapping the grammar's Validate failures.
func Load(path string) (*grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar file %q: %w", path, err)
	}

	g, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Path = path
			return nil, le
		}
		return nil, fmt.Errorf("grammar file %q: %w", path, err)
	}
	return g, nil
}

// Parse decodes a grammar description from raw TOML bytes. Every symbol
// name (the start symbol, each entry of v and t, and every production's
// left/right symbols) is normalized to Unicode NFC before interning, so
// that visually identical symbols supplied in different normalization
// forms are never treated as distinct grammar symbols.
func Parse(data []byte) (*grammar.Grammar, error) {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("decode grammar file: %w", err)
	}

	if doc.S == "" {
		return nil, fmt.Errorf(`grammar file: missing required key "s"`)
	}
	if len(doc.V) == 0 {
		return nil, fmt.Errorf(`grammar file: missing required key "v"`)
	}
	if len(doc.P) == 0 {
		return nil, fmt.Errorf(`grammar file: missing required key "p"`)
	}

	start := nfc(doc.S)
	nonTerms := nfcAll(doc.V)
	terms := nfcAll(doc.T)

	prods := make([]grammar.Production, len(doc.P))
	for i, p := range doc.P {
		if p.Left == "" {
			return nil, fmt.Errorf("grammar file: production %d: missing required key \"left\"", i)
		}
		right := nfcAll(p.Right)
		if len(right) == 0 {
			right = []grammar.Symbol{grammar.Epsilon}
		}
		prods[i] = grammar.Production{Left: nfc(p.Left), Right: right}
	}

	g := grammar.New(start, nonTerms, terms, prods)
	if errs := g.Validate(); len(errs) > 0 {
		return nil, &LoadError{Errors: errs}
	}
	return g, nil
}

func nfc(s string) string {
	return norm.NFC.String(s)
}

func nfcAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = nfc(s)
	}
	return out
}
