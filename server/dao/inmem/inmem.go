// Package inmem is a dao.Store backed by plain in-process maps. It is the
// default store for slrd and is always available regardless of build
// environment.
package inmem

import (
	"github.com/corvane/slrforge/server/dao"
)

type store struct {
	users *InMemoryUsersRepository
	runs  *InMemoryRunsRepository
}

func NewDatastore() dao.Store {
	return &store{
		users: NewUsersRepository(),
		runs:  NewRunsRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Runs() dao.RunRepository {
	return s.runs
}

func (s *store) Close() error {
	if err := s.users.Close(); err != nil {
		return err
	}
	return s.runs.Close()
}
