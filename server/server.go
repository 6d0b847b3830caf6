// Package server assembles the slrd history server: a chi router wrapping
// package api's endpoints, JWT auth via package middle, and the service
// layer in package svc, all backed by a single grammar loaded once at
// startup.
package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/corvane/slrforge/internal/diag"
	"github.com/corvane/slrforge/internal/firstfollow"
	"github.com/corvane/slrforge/internal/gramfile"
	"github.com/corvane/slrforge/internal/scanner"
	"github.com/corvane/slrforge/internal/table"
	"github.com/corvane/slrforge/server/api"
	"github.com/corvane/slrforge/server/dao"
	"github.com/corvane/slrforge/server/middle"
	"github.com/corvane/slrforge/server/svc"
	"github.com/go-chi/chi/v5"
)

// Server is the HTTP history server for the SLR(1) pipeline.
type Server struct {
	router  chi.Router
	db      dao.Store
	backend svc.Service
}

// New builds a Server from cfg. It loads and validates cfg.GrammarFile,
// computes its FIRST/FOLLOW sets and ACTION/GOTO table, connects to the
// configured persistence layer, and wires chi routes for login and run
// submission/history.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Startup owns its own diag.Collector: a GrammarError is fatal, table
	// conflicts are warnings, and both are logged from the same channel.
	collector := diag.New()

	g, err := gramfile.Load(cfg.GrammarFile)
	if err != nil {
		collector.Add(diag.Error, "grammar", err.Error())
		logDiags(collector)
		return nil, fmt.Errorf("load grammar: %w", err)
	}

	first := firstfollow.ComputeFirst(g)
	follow := firstfollow.ComputeFollow(g, first)
	tables := table.Build(g, first, follow)

	for _, c := range tables.Conflicts {
		collector.Add(diag.Warning, "table", c.String())
	}
	logDiags(collector)

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	backend := svc.New(db, g, tables, scanner.New())

	srv := &Server{
		db:      db,
		backend: backend,
	}
	srv.router = srv.routes(cfg)

	return srv, nil
}

func (s *Server) routes(cfg Config) chi.Router {
	a := api.API{
		Backend:     s.backend,
		UnauthDelay: cfg.UnauthDelay(),
		Secret:      cfg.TokenSecret,
	}

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.Post("/login", a.HTTPCreateLogin())

		r.Group(func(r chi.Router) {
			r.Use(middle.RequireAuth(s.db.Users(), cfg.TokenSecret, cfg.UnauthDelay(), dao.User{}))
			r.Delete("/login", a.HTTPDeleteLogin())
			r.Post("/runs", a.HTTPCreateRun())
			r.Get("/runs", a.HTTPGetAllRuns())
			r.Get("/runs/{id}", a.HTTPGetRun())
		})
	})

	return r
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

// ListenAndServe starts the HTTP server on addr. It blocks until the server
// stops or returns an error.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return httpSrv.ListenAndServe()
}

// Close releases the server's persistence layer.
func (s *Server) Close() error {
	return s.db.Close()
}

// Users exposes the server's user repository so a caller (e.g. cmd/slrd's
// startup seeding of a default admin account) can manage accounts without
// going through the HTTP API.
func (s *Server) Users() dao.UserRepository {
	return s.db.Users()
}
