// Package dao provides data access objects for use in the slrd history
// server. It exposes a Store of repositories backed by either an in-memory
// map (package inmem) or SQLite (package sqlite).
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store holds all the repositories needed to run slrd.
type Store interface {
	Users() UserRepository
	Runs() RunRepository
	Close() error
}

// UserRepository persists the small set of accounts allowed to submit and
// read parse runs.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Close() error
}

type User struct {
	ID             uuid.UUID // PK, NOT NULL
	Username       string    // UNIQUE, NOT NULL
	Password       string    // bcrypt hash, NOT NULL
	Created        time.Time
	LastLogoutTime time.Time
}

// RunRepository persists the result of running the pipeline (scan, build
// tables, parse) once against a grammar and a source file.
type RunRepository interface {
	Create(ctx context.Context, run Run) (Run, error)
	GetByID(ctx context.Context, id uuid.UUID) (Run, error)
	GetAll(ctx context.Context) ([]Run, error)

	// GetAllByUser retrieves every Run submitted by the given user.
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]Run, error)
	Close() error
}

// Run is a single invocation of the pipeline, capturing enough of its
// output to reconstruct what happened without re-running it.
type Run struct {
	ID             uuid.UUID // PK, NOT NULL
	UserID         uuid.UUID // FK (Many-to-One User.ID), NOT NULL
	GrammarName    string    // NOT NULL, the start symbol of the loaded grammar
	Source         string    // NOT NULL, the source text that was parsed
	Accepted       bool      // NOT NULL
	ConflictCount  int       // NOT NULL, number of shift/reduce or reduce/reduce conflicts in the table
	Trace          []byte    // rezi-encoded []driver.TraceStep
	Created        time.Time // NOT NULL
}
