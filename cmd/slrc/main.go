/*
Slrc runs the SLR(1) parser-generator pipeline against a grammar file and a
source file and prints the grammar summary, FIRST/FOLLOW sets, the ACTION/
GOTO table, and the shift/reduce trace of parsing the source.

Usage:

	slrc [flags]

The flags are:

	-v, --version
		Give the current version and exit.

	-g, --grammar FILE
		Use the provided TOML grammar description. Defaults to "grammar.toml"
		in the current working directory.

	-s, --source FILE
		Use the provided source file to scan and parse. Defaults to
		"source.txt" in the current working directory. Ignored in
		interactive mode.

	-i, --interactive
		Drop into a readline-backed REPL: every line entered is scanned and
		parsed against the loaded grammar, and the trace and verdict are
		printed immediately. Type "quit" to exit.

Once the grammar is loaded, its well-formedness is checked before anything
else runs; a malformed grammar is reported and the program exits without
attempting FIRST/FOLLOW, table construction, or parsing.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/corvane/slrforge/internal/diag"
	"github.com/corvane/slrforge/internal/driver"
	"github.com/corvane/slrforge/internal/firstfollow"
	"github.com/corvane/slrforge/internal/gramfile"
	"github.com/corvane/slrforge/internal/input"
	"github.com/corvane/slrforge/internal/scanner"
	"github.com/corvane/slrforge/internal/table"
	"github.com/corvane/slrforge/internal/util"
	"github.com/corvane/slrforge/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGrammarError indicates the grammar file was missing, malformed
	// TOML, or failed grammar.Validate.
	ExitGrammarError

	// ExitSourceError indicates the source file could not be read or
	// scanned.
	ExitSourceError

	// ExitRejected indicates the pipeline ran to completion but the parse
	// was rejected.
	ExitRejected
)

var (
	returnCode      = ExitSuccess
	flagVersion     = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile     = pflag.StringP("grammar", "g", "grammar.toml", "The TOML grammar description file")
	sourceFile      = pflag.StringP("source", "s", "source.txt", "The source file to scan and parse")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Drop into a readline REPL instead of parsing a single source file")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	collector := diag.New()

	g, err := gramfile.Load(*grammarFile)
	if err != nil {
		collector.Add(diag.Error, "grammar", err.Error())
		reportDiags(collector)
		returnCode = ExitGrammarError
		return
	}

	fmt.Println("grammar summary:")
	fmt.Println(g.String())
	fmt.Printf("non-terminals %s and terminals %s were loaded from %s\n",
		util.MakeTextList(g.NonTerminals()), util.MakeTextList(g.Terminals()), *grammarFile)

	first := firstfollow.ComputeFirst(g)
	follow := firstfollow.ComputeFollow(g, first)

	fmt.Println("FIRST sets:")
	for _, nt := range g.NonTerminals() {
		fmt.Printf("  FIRST(%s) = %s\n", nt, first.Of(nt))
	}
	fmt.Println("FOLLOW sets:")
	for _, nt := range g.NonTerminals() {
		fmt.Printf("  FOLLOW(%s) = %s\n", nt, follow.Of(nt))
	}

	tables := table.Build(g, first, follow)

	for _, c := range tables.Conflicts {
		collector.Add(diag.Warning, "table", c.String())
	}
	reportDiags(collector)

	fmt.Println("ACTION/GOTO table:")
	fmt.Println(tables.String())
	if !tables.IsSLR1() {
		fmt.Println("this grammar is NOT SLR(1); see conflicts above")
	}

	sc := scanner.New()

	if *flagInteractive {
		runREPL(sc, tables)
		return
	}

	src, err := os.ReadFile(*sourceFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitSourceError
		return
	}

	accepted := runOnce(sc, tables, string(src))
	if !accepted {
		returnCode = ExitRejected
	}
}

// runOnce scans and parses one piece of source text, prints the trace and
// verdict, and returns whether it was accepted. Each run owns its own
// diag.Collector: scan and parse failures are recorded there and reported
// together at the end of the run.
func runOnce(sc *scanner.Scanner, tables *table.Tables, src string) bool {
	collector := diag.New()

	toks, err := sc.Scan(src)
	if err != nil {
		collector.Add(diag.Error, "scan", err.Error())
		reportDiags(collector)
		return false
	}

	accepted, trace, err := driver.Parse(tables, toks)
	for _, step := range trace {
		fmt.Printf("  %3d %-30s states=%v symbols=%v buffer=%v\n",
			step.Step, step.Action, step.StateStack, step.SymbolStack, step.Buffer)
	}
	if err != nil {
		collector.Add(diag.Error, "parse", err.Error())
	}
	reportDiags(collector)

	if err != nil {
		fmt.Println("REJECTED")
		return false
	}
	if accepted {
		fmt.Println("ACCEPTED")
	}
	return accepted
}

// reportDiags writes every collected diagnostic to stderr, keeping the
// diagnostic stream separate from the stdout verdict/trace output.
func reportDiags(c *diag.Collector) {
	for _, d := range c.All() {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

// runREPL re-runs the pipeline's scan+parse stage against every line of
// input read interactively until the user types "quit" or closes stdin.
func runREPL(sc *scanner.Scanner, tables *table.Tables) {
	var reader input.Reader
	if rl, err := input.NewInteractiveReader(); err == nil {
		reader = rl
	} else {
		// not connected to a TTY; fall back to reading stdin directly
		reader = input.NewDirectReader(os.Stdin)
	}
	defer reader.Close()

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			return
		}
		if line == "quit" {
			return
		}
		runOnce(sc, tables, line)
	}
}
