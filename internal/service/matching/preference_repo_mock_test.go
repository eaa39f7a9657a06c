package matching

import (
	"context"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
	"sync"
)

var _ preferenceRepo = &preferenceRepoMock{}

type preferenceRepoMock struct {
	ListByRequesterFunc func(ctx context.Context, requesterID int64) ([]domain.PreferenceCounter, error)
	InitCountersFunc    func(ctx context.Context, requesterID int64, tags []domain.Tag) error
	IncrementFunc       func(ctx context.Context, requesterID int64, tagType domain.TagType, tagID int, delta int64) error

	calls struct {
		ListByRequester []struct {
			Ctx         context.Context
			RequesterID int64
		}
		InitCounters []struct {
			Ctx         context.Context
			RequesterID int64
			Tags        []domain.Tag
		}
		Increment []struct {
			Ctx         context.Context
			RequesterID int64
			TagType     domain.TagType
			TagID       int
			Delta       int64
		}
	}
	lockListByRequester sync.RWMutex
	lockInitCounters    sync.RWMutex
	lockIncrement       sync.RWMutex
}

func (mock *preferenceRepoMock) ListByRequester(ctx context.Context, requesterID int64) ([]domain.PreferenceCounter, error) {
	if mock.ListByRequesterFunc == nil {
		panic("preferenceRepoMock.ListByRequesterFunc: method is nil but preferenceRepo.ListByRequester was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RequesterID int64
	}{Ctx: ctx, RequesterID: requesterID}
	mock.lockListByRequester.Lock()
	mock.calls.ListByRequester = append(mock.calls.ListByRequester, callInfo)
	mock.lockListByRequester.Unlock()
	return mock.ListByRequesterFunc(ctx, requesterID)
}

func (mock *preferenceRepoMock) ListByRequesterCalls() []struct {
	Ctx         context.Context
	RequesterID int64
} {
	mock.lockListByRequester.RLock()
	calls := mock.calls.ListByRequester
	mock.lockListByRequester.RUnlock()
	return calls
}

func (mock *preferenceRepoMock) InitCounters(ctx context.Context, requesterID int64, tags []domain.Tag) error {
	if mock.InitCountersFunc == nil {
		panic("preferenceRepoMock.InitCountersFunc: method is nil but preferenceRepo.InitCounters was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RequesterID int64
		Tags        []domain.Tag
	}{Ctx: ctx, RequesterID: requesterID, Tags: tags}
	mock.lockInitCounters.Lock()
	mock.calls.InitCounters = append(mock.calls.InitCounters, callInfo)
	mock.lockInitCounters.Unlock()
	return mock.InitCountersFunc(ctx, requesterID, tags)
}

func (mock *preferenceRepoMock) InitCountersCalls() []struct {
	Ctx         context.Context
	RequesterID int64
	Tags        []domain.Tag
} {
	mock.lockInitCounters.RLock()
	calls := mock.calls.InitCounters
	mock.lockInitCounters.RUnlock()
	return calls
}

func (mock *preferenceRepoMock) Increment(ctx context.Context, requesterID int64, tagType domain.TagType, tagID int, delta int64) error {
	if mock.IncrementFunc == nil {
		panic("preferenceRepoMock.IncrementFunc: method is nil but preferenceRepo.Increment was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RequesterID int64
		TagType     domain.TagType
		TagID       int
		Delta       int64
	}{Ctx: ctx, RequesterID: requesterID, TagType: tagType, TagID: tagID, Delta: delta}
	mock.lockIncrement.Lock()
	mock.calls.Increment = append(mock.calls.Increment, callInfo)
	mock.lockIncrement.Unlock()
	return mock.IncrementFunc(ctx, requesterID, tagType, tagID, delta)
}

func (mock *preferenceRepoMock) IncrementCalls() []struct {
	Ctx         context.Context
	RequesterID int64
	TagType     domain.TagType
	TagID       int
	Delta       int64
} {
	mock.lockIncrement.RLock()
	calls := mock.calls.Increment
	mock.lockIncrement.RUnlock()
	return calls
}
