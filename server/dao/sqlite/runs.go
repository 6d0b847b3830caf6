package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/corvane/slrforge/server/dao"
	"github.com/google/uuid"
)

type RunsDB struct {
	db *sql.DB
}

func (repo *RunsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		grammar_name TEXT NOT NULL,
		source TEXT NOT NULL,
		accepted INTEGER NOT NULL,
		conflict_count INTEGER NOT NULL,
		trace BLOB NOT NULL,
		created INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *RunsDB) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Run{}, fmt.Errorf("could not generate ID: %w", err)
	}

	run.ID = newUUID
	run.Created = time.Now()

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO runs (id, user_id, grammar_name, source, accepted, conflict_count, trace, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.UserID.String(), run.GrammarName, run.Source, boolToInt(run.Accepted), run.ConflictCount, run.Trace, run.Created.Unix(),
	)
	if err != nil {
		return dao.Run{}, wrapDBError(err)
	}

	return run, nil
}

func (repo *RunsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	run := dao.Run{ID: id}
	var userID string
	var accepted int
	var created int64

	row := repo.db.QueryRowContext(ctx,
		`SELECT user_id, grammar_name, source, accepted, conflict_count, trace, created FROM runs WHERE id = ?;`, id.String())
	if err := row.Scan(&userID, &run.GrammarName, &run.Source, &accepted, &run.ConflictCount, &run.Trace, &created); err != nil {
		return run, wrapDBError(err)
	}

	parsedUser, err := uuid.Parse(userID)
	if err != nil {
		return run, fmt.Errorf("stored UUID %q is invalid", userID)
	}
	run.UserID = parsedUser
	run.Accepted = accepted != 0
	run.Created = time.Unix(created, 0)

	return run, nil
}

func (repo *RunsDB) GetAll(ctx context.Context) ([]dao.Run, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, user_id, grammar_name, source, accepted, conflict_count, trace, created FROM runs ORDER BY created ASC;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func (repo *RunsDB) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Run, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, user_id, grammar_name, source, accepted, conflict_count, trace, created FROM runs WHERE user_id = ? ORDER BY created ASC;`,
		userID.String(),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]dao.Run, error) {
	var all []dao.Run
	for rows.Next() {
		var run dao.Run
		var id, userID string
		var accepted int
		var created int64

		err := rows.Scan(&id, &userID, &run.GrammarName, &run.Source, &accepted, &run.ConflictCount, &run.Trace, &created)
		if err != nil {
			return nil, wrapDBError(err)
		}

		run.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid", id)
		}
		run.UserID, err = uuid.Parse(userID)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid", userID)
		}
		run.Accepted = accepted != 0
		run.Created = time.Unix(created, 0)

		all = append(all, run)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *RunsDB) Close() error {
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
