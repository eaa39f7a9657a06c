package matching

import (
	"context"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
	"sync"
)

var _ taxonomyProvider = &taxonomyProviderMock{}

type taxonomyProviderMock struct {
	TaxonomyFunc func(ctx context.Context) (domain.Taxonomy, error)

	calls struct {
		Taxonomy []struct {
			Ctx context.Context
		}
	}
	lockTaxonomy sync.RWMutex
}

func (mock *taxonomyProviderMock) Taxonomy(ctx context.Context) (domain.Taxonomy, error) {
	if mock.TaxonomyFunc == nil {
		panic("taxonomyProviderMock.TaxonomyFunc: method is nil but taxonomyProvider.Taxonomy was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockTaxonomy.Lock()
	mock.calls.Taxonomy = append(mock.calls.Taxonomy, callInfo)
	mock.lockTaxonomy.Unlock()
	return mock.TaxonomyFunc(ctx)
}

func (mock *taxonomyProviderMock) TaxonomyCalls() []struct {
	Ctx context.Context
} {
	mock.lockTaxonomy.RLock()
	calls := mock.calls.Taxonomy
	mock.lockTaxonomy.RUnlock()
	return calls
}
