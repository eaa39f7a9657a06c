package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
	"github.com/heartmarshall/tagmatch-backend/internal/service/matching"
)

var _ matchingService = &matchingServiceMock{}

type matchingServiceMock struct {
	GetPreferenceFunc      func(ctx context.Context, requesterID int64) (*matching.PreferenceSnapshot, error)
	RecommendFunc          func(ctx context.Context, input matching.RecommendInput) (*matching.Recommendation, error)
	RevisitDeclinedFunc    func(ctx context.Context, requesterID int64) (int64, error)
	RespondAsRequesterFunc func(ctx context.Context, input matching.RespondInput) (*matching.RespondResult, error)
	RespondAsCandidateFunc func(ctx context.Context, input matching.RespondInput) (*matching.RespondResult, error)
	UpdateMatchFunc        func(ctx context.Context, input matching.UpdateMatchInput) (*domain.Match, error)
	DeleteMatchesFunc      func(ctx context.Context, input matching.DeleteMatchesInput) (int64, error)
	RetrieveMatchesFunc    func(ctx context.Context, input matching.RetrieveMatchesInput) ([]domain.MatchSummary, error)

	calls struct {
		GetPreference []struct {
			Ctx         context.Context
			RequesterID int64
		}
		Recommend []struct {
			Ctx   context.Context
			Input matching.RecommendInput
		}
		RevisitDeclined []struct {
			Ctx         context.Context
			RequesterID int64
		}
		RespondAsRequester []struct {
			Ctx   context.Context
			Input matching.RespondInput
		}
		RespondAsCandidate []struct {
			Ctx   context.Context
			Input matching.RespondInput
		}
		UpdateMatch []struct {
			Ctx   context.Context
			Input matching.UpdateMatchInput
		}
		DeleteMatches []struct {
			Ctx   context.Context
			Input matching.DeleteMatchesInput
		}
		RetrieveMatches []struct {
			Ctx   context.Context
			Input matching.RetrieveMatchesInput
		}
	}
	lockGetPreference      sync.RWMutex
	lockRecommend          sync.RWMutex
	lockRevisitDeclined    sync.RWMutex
	lockRespondAsRequester sync.RWMutex
	lockRespondAsCandidate sync.RWMutex
	lockUpdateMatch        sync.RWMutex
	lockDeleteMatches      sync.RWMutex
	lockRetrieveMatches    sync.RWMutex
}

func (mock *matchingServiceMock) GetPreference(ctx context.Context, requesterID int64) (*matching.PreferenceSnapshot, error) {
	if mock.GetPreferenceFunc == nil {
		panic("matchingServiceMock.GetPreferenceFunc: method is nil but matchingService.GetPreference was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RequesterID int64
	}{Ctx: ctx, RequesterID: requesterID}
	mock.lockGetPreference.Lock()
	mock.calls.GetPreference = append(mock.calls.GetPreference, callInfo)
	mock.lockGetPreference.Unlock()
	return mock.GetPreferenceFunc(ctx, requesterID)
}

func (mock *matchingServiceMock) GetPreferenceCalls() []struct {
	Ctx         context.Context
	RequesterID int64
} {
	mock.lockGetPreference.RLock()
	calls := mock.calls.GetPreference
	mock.lockGetPreference.RUnlock()
	return calls
}

func (mock *matchingServiceMock) Recommend(ctx context.Context, input matching.RecommendInput) (*matching.Recommendation, error) {
	if mock.RecommendFunc == nil {
		panic("matchingServiceMock.RecommendFunc: method is nil but matchingService.Recommend was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input matching.RecommendInput
	}{Ctx: ctx, Input: input}
	mock.lockRecommend.Lock()
	mock.calls.Recommend = append(mock.calls.Recommend, callInfo)
	mock.lockRecommend.Unlock()
	return mock.RecommendFunc(ctx, input)
}

func (mock *matchingServiceMock) RecommendCalls() []struct {
	Ctx   context.Context
	Input matching.RecommendInput
} {
	mock.lockRecommend.RLock()
	calls := mock.calls.Recommend
	mock.lockRecommend.RUnlock()
	return calls
}

func (mock *matchingServiceMock) RevisitDeclined(ctx context.Context, requesterID int64) (int64, error) {
	if mock.RevisitDeclinedFunc == nil {
		panic("matchingServiceMock.RevisitDeclinedFunc: method is nil but matchingService.RevisitDeclined was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RequesterID int64
	}{Ctx: ctx, RequesterID: requesterID}
	mock.lockRevisitDeclined.Lock()
	mock.calls.RevisitDeclined = append(mock.calls.RevisitDeclined, callInfo)
	mock.lockRevisitDeclined.Unlock()
	return mock.RevisitDeclinedFunc(ctx, requesterID)
}

func (mock *matchingServiceMock) RevisitDeclinedCalls() []struct {
	Ctx         context.Context
	RequesterID int64
} {
	mock.lockRevisitDeclined.RLock()
	calls := mock.calls.RevisitDeclined
	mock.lockRevisitDeclined.RUnlock()
	return calls
}

func (mock *matchingServiceMock) RespondAsRequester(ctx context.Context, input matching.RespondInput) (*matching.RespondResult, error) {
	if mock.RespondAsRequesterFunc == nil {
		panic("matchingServiceMock.RespondAsRequesterFunc: method is nil but matchingService.RespondAsRequester was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input matching.RespondInput
	}{Ctx: ctx, Input: input}
	mock.lockRespondAsRequester.Lock()
	mock.calls.RespondAsRequester = append(mock.calls.RespondAsRequester, callInfo)
	mock.lockRespondAsRequester.Unlock()
	return mock.RespondAsRequesterFunc(ctx, input)
}

func (mock *matchingServiceMock) RespondAsRequesterCalls() []struct {
	Ctx   context.Context
	Input matching.RespondInput
} {
	mock.lockRespondAsRequester.RLock()
	calls := mock.calls.RespondAsRequester
	mock.lockRespondAsRequester.RUnlock()
	return calls
}

func (mock *matchingServiceMock) RespondAsCandidate(ctx context.Context, input matching.RespondInput) (*matching.RespondResult, error) {
	if mock.RespondAsCandidateFunc == nil {
		panic("matchingServiceMock.RespondAsCandidateFunc: method is nil but matchingService.RespondAsCandidate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input matching.RespondInput
	}{Ctx: ctx, Input: input}
	mock.lockRespondAsCandidate.Lock()
	mock.calls.RespondAsCandidate = append(mock.calls.RespondAsCandidate, callInfo)
	mock.lockRespondAsCandidate.Unlock()
	return mock.RespondAsCandidateFunc(ctx, input)
}

func (mock *matchingServiceMock) RespondAsCandidateCalls() []struct {
	Ctx   context.Context
	Input matching.RespondInput
} {
	mock.lockRespondAsCandidate.RLock()
	calls := mock.calls.RespondAsCandidate
	mock.lockRespondAsCandidate.RUnlock()
	return calls
}

func (mock *matchingServiceMock) UpdateMatch(ctx context.Context, input matching.UpdateMatchInput) (*domain.Match, error) {
	if mock.UpdateMatchFunc == nil {
		panic("matchingServiceMock.UpdateMatchFunc: method is nil but matchingService.UpdateMatch was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input matching.UpdateMatchInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdateMatch.Lock()
	mock.calls.UpdateMatch = append(mock.calls.UpdateMatch, callInfo)
	mock.lockUpdateMatch.Unlock()
	return mock.UpdateMatchFunc(ctx, input)
}

func (mock *matchingServiceMock) UpdateMatchCalls() []struct {
	Ctx   context.Context
	Input matching.UpdateMatchInput
} {
	mock.lockUpdateMatch.RLock()
	calls := mock.calls.UpdateMatch
	mock.lockUpdateMatch.RUnlock()
	return calls
}

func (mock *matchingServiceMock) DeleteMatches(ctx context.Context, input matching.DeleteMatchesInput) (int64, error) {
	if mock.DeleteMatchesFunc == nil {
		panic("matchingServiceMock.DeleteMatchesFunc: method is nil but matchingService.DeleteMatches was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input matching.DeleteMatchesInput
	}{Ctx: ctx, Input: input}
	mock.lockDeleteMatches.Lock()
	mock.calls.DeleteMatches = append(mock.calls.DeleteMatches, callInfo)
	mock.lockDeleteMatches.Unlock()
	return mock.DeleteMatchesFunc(ctx, input)
}

func (mock *matchingServiceMock) DeleteMatchesCalls() []struct {
	Ctx   context.Context
	Input matching.DeleteMatchesInput
} {
	mock.lockDeleteMatches.RLock()
	calls := mock.calls.DeleteMatches
	mock.lockDeleteMatches.RUnlock()
	return calls
}

func (mock *matchingServiceMock) RetrieveMatches(ctx context.Context, input matching.RetrieveMatchesInput) ([]domain.MatchSummary, error) {
	if mock.RetrieveMatchesFunc == nil {
		panic("matchingServiceMock.RetrieveMatchesFunc: method is nil but matchingService.RetrieveMatches was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input matching.RetrieveMatchesInput
	}{Ctx: ctx, Input: input}
	mock.lockRetrieveMatches.Lock()
	mock.calls.RetrieveMatches = append(mock.calls.RetrieveMatches, callInfo)
	mock.lockRetrieveMatches.Unlock()
	return mock.RetrieveMatchesFunc(ctx, input)
}

func (mock *matchingServiceMock) RetrieveMatchesCalls() []struct {
	Ctx   context.Context
	Input matching.RetrieveMatchesInput
} {
	mock.lockRetrieveMatches.RLock()
	calls := mock.calls.RetrieveMatches
	mock.lockRetrieveMatches.RUnlock()
	return calls
}
