package matching

import (
	"context"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
	"sync"
)

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	GetByIDFunc             func(ctx context.Context, id int64) (*domain.Profile, error)
	GetByIDsFunc            func(ctx context.Context, ids []int64) ([]domain.Profile, error)
	ListCandidatesAfterFunc func(ctx context.Context, afterID int64, limit int) ([]domain.Profile, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  int64
		}
		GetByIDs []struct {
			Ctx context.Context
			Ids []int64
		}
		ListCandidatesAfter []struct {
			Ctx     context.Context
			AfterID int64
			Limit   int
		}
	}
	lockGetByID             sync.RWMutex
	lockGetByIDs            sync.RWMutex
	lockListCandidatesAfter sync.RWMutex
}

func (mock *profileRepoMock) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	if mock.GetByIDFunc == nil {
		panic("profileRepoMock.GetByIDFunc: method is nil but profileRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *profileRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *profileRepoMock) GetByIDs(ctx context.Context, ids []int64) ([]domain.Profile, error) {
	if mock.GetByIDsFunc == nil {
		panic("profileRepoMock.GetByIDsFunc: method is nil but profileRepo.GetByIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []int64
	}{Ctx: ctx, Ids: ids}
	mock.lockGetByIDs.Lock()
	mock.calls.GetByIDs = append(mock.calls.GetByIDs, callInfo)
	mock.lockGetByIDs.Unlock()
	return mock.GetByIDsFunc(ctx, ids)
}

func (mock *profileRepoMock) GetByIDsCalls() []struct {
	Ctx context.Context
	Ids []int64
} {
	mock.lockGetByIDs.RLock()
	calls := mock.calls.GetByIDs
	mock.lockGetByIDs.RUnlock()
	return calls
}

func (mock *profileRepoMock) ListCandidatesAfter(ctx context.Context, afterID int64, limit int) ([]domain.Profile, error) {
	if mock.ListCandidatesAfterFunc == nil {
		panic("profileRepoMock.ListCandidatesAfterFunc: method is nil but profileRepo.ListCandidatesAfter was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		AfterID int64
		Limit   int
	}{Ctx: ctx, AfterID: afterID, Limit: limit}
	mock.lockListCandidatesAfter.Lock()
	mock.calls.ListCandidatesAfter = append(mock.calls.ListCandidatesAfter, callInfo)
	mock.lockListCandidatesAfter.Unlock()
	return mock.ListCandidatesAfterFunc(ctx, afterID, limit)
}

func (mock *profileRepoMock) ListCandidatesAfterCalls() []struct {
	Ctx     context.Context
	AfterID int64
	Limit   int
} {
	mock.lockListCandidatesAfter.RLock()
	calls := mock.calls.ListCandidatesAfter
	mock.lockListCandidatesAfter.RUnlock()
	return calls
}
