package svc

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/corvane/slrforge/internal/diag"
	"github.com/corvane/slrforge/internal/driver"
	"github.com/corvane/slrforge/server/dao"
	"github.com/corvane/slrforge/server/serr"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// SubmitRun scans and parses source against the Service's loaded grammar
// and persists the outcome as a run owned by userID. It returns the
// persisted run, which carries a freshly generated ID and the rezi-encoded
// trace.
//
// Each run owns its own diag.Collector: a scan failure or a ParseError is
// recorded there and logged. A rejected parse is still a valid, storable
// run, so a ParseError does not make SubmitRun itself fail; it is reflected
// in the stored run's Accepted field and surfaced on the diagnostic
// channel.
func (svc Service) SubmitRun(ctx context.Context, userID uuid.UUID, source string) (dao.Run, error) {
	collector := diag.New()

	toks, err := svc.Scanner.Scan(source)
	if err != nil {
		collector.Add(diag.Error, "scan", err.Error())
		logDiags(collector)
		return dao.Run{}, serr.New(fmt.Sprintf("scan source: %s", err.Error()), serr.ErrBadArgument)
	}

	accepted, trace, parseErr := driver.Parse(svc.Tables, toks)
	if parseErr != nil {
		collector.Add(diag.Error, "parse", parseErr.Error())
	}
	logDiags(collector)

	traceBytes := rezi.EncBinary(trace)

	run := dao.Run{
		UserID:        userID,
		GrammarName:   svc.Grammar.Start(),
		Source:        source,
		Accepted:      accepted,
		ConflictCount: len(svc.Tables.Conflicts),
		Trace:         traceBytes,
	}

	created, err := svc.DB.Runs().Create(ctx, run)
	if err != nil {
		return dao.Run{}, serr.WrapDB("could not store run", err)
	}

	return created, nil
}

// logDiags writes every collected diagnostic to the server log at a level
// matching its severity.
func logDiags(c *diag.Collector) {
	for _, d := range c.All() {
		if d.Severity == diag.Error {
			log.Printf("ERROR %s", d)
		} else {
			log.Printf("WARN  %s", d)
		}
	}
}

// GetRun returns a single run by ID.
func (svc Service) GetRun(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	run, err := svc.DB.Runs().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Run{}, serr.ErrNotFound
		}
		return dao.Run{}, serr.WrapDB("could not retrieve run", err)
	}
	return run, nil
}

// ListRuns returns every run in the system, in submission order.
func (svc Service) ListRuns(ctx context.Context) ([]dao.Run, error) {
	runs, err := svc.DB.Runs().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("could not list runs", err)
	}
	return runs, nil
}

// DecodeTrace decodes the rezi-encoded trace stored on a run back into its
// step-by-step form.
func DecodeTrace(data []byte) (driver.Trace, error) {
	var trace driver.Trace
	n, err := rezi.DecBinary(data, &trace)
	if err != nil {
		return nil, fmt.Errorf("rezi decode: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("rezi decoded byte count mismatch; only consumed %d/%d bytes", n, len(data))
	}
	return trace, nil
}
