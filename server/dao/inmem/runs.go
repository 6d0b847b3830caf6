package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/corvane/slrforge/server/dao"
	"github.com/google/uuid"
)

func NewRunsRepository() *InMemoryRunsRepository {
	return &InMemoryRunsRepository{
		runs: make(map[uuid.UUID]dao.Run),
	}
}

type InMemoryRunsRepository struct {
	runs map[uuid.UUID]dao.Run
}

func (imrr *InMemoryRunsRepository) Close() error {
	return nil
}

func (imrr *InMemoryRunsRepository) Create(ctx context.Context, run dao.Run) (dao.Run, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Run{}, fmt.Errorf("could not generate ID: %w", err)
	}

	run.ID = newUUID
	run.Created = time.Now()

	imrr.runs[run.ID] = run

	return run, nil
}

func (imrr *InMemoryRunsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Run, error) {
	run, ok := imrr.runs[id]
	if !ok {
		return dao.Run{}, dao.ErrNotFound
	}

	return run, nil
}

func (imrr *InMemoryRunsRepository) GetAll(ctx context.Context) ([]dao.Run, error) {
	all := make([]dao.Run, 0, len(imrr.runs))
	for k := range imrr.runs {
		all = append(all, imrr.runs[k])
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Created.Before(all[j].Created) })
	return all, nil
}

func (imrr *InMemoryRunsRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Run, error) {
	var matched []dao.Run
	for k := range imrr.runs {
		if imrr.runs[k].UserID == userID {
			matched = append(matched, imrr.runs[k])
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Created.Before(matched[j].Created) })
	return matched, nil
}
