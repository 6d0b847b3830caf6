// Package svc is a service layer for the slrd history server, decoupled
// from the HTTP API that calls it. It performs the actions requested and
// makes calls to server persistence (package dao) to preserve state.
package svc

import (
	"github.com/corvane/slrforge/internal/grammar"
	"github.com/corvane/slrforge/internal/scanner"
	"github.com/corvane/slrforge/internal/table"
	"github.com/corvane/slrforge/server/dao"
)

// Service interacts with and modifies the slrd server backend. A Service
// is bound to a single grammar, loaded once at server startup: every run it
// executes scans and parses against that grammar's ACTION/GOTO table.
//
// The zero-value of Service is not ready to be used; construct one with New.
type Service struct {
	DB      dao.Store
	Grammar *grammar.Grammar
	Tables  *table.Tables
	Scanner *scanner.Scanner
}

func New(db dao.Store, g *grammar.Grammar, tables *table.Tables, sc *scanner.Scanner) Service {
	return Service{DB: db, Grammar: g, Tables: tables, Scanner: sc}
}
