// Package driver implements the SLR(1) parser driver: the
// two-stack state machine that replays a grammar's ACTION/GOTO tables
// against a stream of tokens, producing an accept/reject verdict and a
// full step-by-step trace.
package driver

import "github.com/corvane/slrforge/internal/grammar"

// TokenKind classifies a lexical token as produced by an external
// collaborator (internal/scanner for this repository's CLI/server front
// ends, or supplied directly in tests).
type TokenKind int

const (
	KindKeyword TokenKind = iota
	KindIdentifier
	KindConstant
	KindOperator
	KindDelimiter
)

func (k TokenKind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindIdentifier:
		return "identifier"
	case KindConstant:
		return "constant"
	case KindOperator:
		return "operator"
	case KindDelimiter:
		return "delimiter"
	default:
		return "unknown"
	}
}

// Token is one classified lexical token: a kind, the literal text matched,
// and its source position for diagnostics.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Col    int
}

// Terminal maps tok to the grammar terminal the driver should look it up
// under: an identifier always maps to the terminal "id", a constant always
// maps to "value", and every other kind (keyword, operator, delimiter) maps
// to its own literal text.
func (tok Token) Terminal() grammar.Symbol {
	switch tok.Kind {
	case KindIdentifier:
		return "id"
	case KindConstant:
		return "value"
	default:
		return tok.Lexeme
	}
}
