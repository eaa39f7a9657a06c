package matching

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// memStore backs the repo mocks with maps so multi-step flows can be tested
// without a database.
type memStore struct {
	mu       sync.Mutex
	tags     []domain.Tag
	profiles map[int64]domain.Profile
	counters map[counterKey]int64
	matches  map[pairKey]domain.Match
}

type counterKey struct {
	requesterID int64
	tagType     domain.TagType
	tagID       int
}

type pairKey struct {
	requesterID int64
	candidateID int64
}

func newMemStore(countA, countB int) *memStore {
	st := &memStore{
		profiles: make(map[int64]domain.Profile),
		counters: make(map[counterKey]int64),
		matches:  make(map[pairKey]domain.Match),
	}
	for i := 1; i <= countA; i++ {
		st.tags = append(st.tags, domain.Tag{ID: i, Type: domain.TagTypeTraitA})
	}
	for i := 1; i <= countB; i++ {
		st.tags = append(st.tags, domain.Tag{ID: i, Type: domain.TagTypeTraitB})
	}
	return st
}

func (st *memStore) addRequester(id int64) {
	st.profiles[id] = domain.Profile{ID: id, Type: domain.ProfileTypeRequester, DisplayName: "requester"}
}

func (st *memStore) addCandidate(id int64, name string, traitA, traitB []int) {
	st.profiles[id] = domain.Profile{
		ID:          id,
		Type:        domain.ProfileTypeCandidate,
		DisplayName: name,
		TraitA:      traitA,
		TraitB:      traitB,
	}
}

func (st *memStore) match(requesterID, candidateID int64) (domain.Match, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	m, ok := st.matches[pairKey{requesterID, candidateID}]
	return m, ok
}

func (st *memStore) counter(requesterID int64, tagType domain.TagType, tagID int) int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.counters[counterKey{requesterID, tagType, tagID}]
}

func (st *memStore) taxonomyMock() *taxonomyProviderMock {
	return &taxonomyProviderMock{
		TaxonomyFunc: func(ctx context.Context) (domain.Taxonomy, error) {
			return domain.NewTaxonomy(st.tags), nil
		},
	}
}

func (st *memStore) prefMock() *preferenceRepoMock {
	return &preferenceRepoMock{
		ListByRequesterFunc: func(ctx context.Context, requesterID int64) ([]domain.PreferenceCounter, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			var out []domain.PreferenceCounter
			for k, v := range st.counters {
				if k.requesterID == requesterID {
					out = append(out, domain.PreferenceCounter{RequesterID: requesterID, TagType: k.tagType, TagID: k.tagID, LikeCount: v})
				}
			}
			return out, nil
		},
		InitCountersFunc: func(ctx context.Context, requesterID int64, tags []domain.Tag) error {
			st.mu.Lock()
			defer st.mu.Unlock()
			for _, t := range tags {
				k := counterKey{requesterID, t.Type, t.ID}
				if _, ok := st.counters[k]; !ok {
					st.counters[k] = 0
				}
			}
			return nil
		},
		IncrementFunc: func(ctx context.Context, requesterID int64, tagType domain.TagType, tagID int, delta int64) error {
			st.mu.Lock()
			defer st.mu.Unlock()
			k := counterKey{requesterID, tagType, tagID}
			if _, ok := st.counters[k]; !ok {
				return domain.ErrNotFound
			}
			st.counters[k] += delta
			return nil
		},
	}
}

func (st *memStore) profileMock() *profileRepoMock {
	return &profileRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Profile, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			p, ok := st.profiles[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return &p, nil
		},
		GetByIDsFunc: func(ctx context.Context, ids []int64) ([]domain.Profile, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			var out []domain.Profile
			for _, id := range ids {
				if p, ok := st.profiles[id]; ok {
					out = append(out, p)
				}
			}
			return out, nil
		},
		ListCandidatesAfterFunc: func(ctx context.Context, afterID int64, limit int) ([]domain.Profile, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			var ids []int64
			for id, p := range st.profiles {
				if p.Type == domain.ProfileTypeCandidate && id > afterID {
					ids = append(ids, id)
				}
			}
			slices.Sort(ids)
			if len(ids) > limit {
				ids = ids[:limit]
			}
			out := make([]domain.Profile, 0, len(ids))
			for _, id := range ids {
				out = append(out, st.profiles[id])
			}
			return out, nil
		},
	}
}

func (st *memStore) matchMock() *matchRepoMock {
	has := func(states []domain.MatchState, s domain.MatchState) bool { return slices.Contains(states, s) }

	return &matchRepoMock{
		GetForUpdateFunc: func(ctx context.Context, requesterID, candidateID int64) (*domain.Match, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			m, ok := st.matches[pairKey{requesterID, candidateID}]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return &m, nil
		},
		ListByRequesterFunc: func(ctx context.Context, requesterID int64) ([]domain.Match, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			var out []domain.Match
			for k, m := range st.matches {
				if k.requesterID == requesterID {
					out = append(out, m)
				}
			}
			slices.SortFunc(out, func(a, b domain.Match) int { return int(a.CandidateID - b.CandidateID) })
			return out, nil
		},
		ListByProfileFunc: func(ctx context.Context, role domain.ProfileRole, profileID int64, states []domain.MatchState) ([]domain.Match, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			var out []domain.Match
			for k, m := range st.matches {
				id := k.requesterID
				if role == domain.ProfileRoleCandidate {
					id = k.candidateID
				}
				if id == profileID && has(states, m.State) {
					out = append(out, m)
				}
			}
			return out, nil
		},
		CreateIfAbsentFunc: func(ctx context.Context, m *domain.Match) (*domain.Match, bool, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			k := pairKey{m.RequesterID, m.CandidateID}
			if existing, ok := st.matches[k]; ok {
				return &existing, false, nil
			}
			st.matches[k] = *m
			created := *m
			return &created, true, nil
		},
		UpdateFunc: func(ctx context.Context, requesterID, candidateID int64, params domain.MatchUpdateParams) (*domain.Match, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			k := pairKey{requesterID, candidateID}
			m, ok := st.matches[k]
			if !ok {
				return nil, domain.ErrNotFound
			}
			m = m.Apply(params)
			m.UpdatedAt = time.Now().UTC()
			st.matches[k] = m
			return &m, nil
		},
		DeleteByIDsFunc: func(ctx context.Context, ids []uuid.UUID) (int64, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			var n int64
			for k, m := range st.matches {
				if slices.Contains(ids, m.ID) {
					delete(st.matches, k)
					n++
				}
			}
			return n, nil
		},
		DeleteWhereFunc: func(ctx context.Context, role domain.ProfileRole, profileIDs []int64, states []domain.MatchState) (int64, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			var n int64
			for k, m := range st.matches {
				id := k.requesterID
				if role == domain.ProfileRoleCandidate {
					id = k.candidateID
				}
				if slices.Contains(profileIDs, id) && has(states, m.State) {
					delete(st.matches, k)
					n++
				}
			}
			return n, nil
		},
		DeleteRejectedBeforeFunc: func(ctx context.Context, before time.Time) (int64, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			var n int64
			for k, m := range st.matches {
				if m.State == domain.MatchStateRejected && m.UpdatedAt.Before(before) {
					delete(st.matches, k)
					n++
				}
			}
			return n, nil
		},
	}
}

func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}

type memTxKey struct{}

// rollbackTx restores the store's counters and matches when fn fails.
// Nested calls join the outer transaction.
func (st *memStore) rollbackTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			if ctx.Value(memTxKey{}) != nil {
				return fn(ctx)
			}

			st.mu.Lock()
			counters := maps.Clone(st.counters)
			matches := maps.Clone(st.matches)
			st.mu.Unlock()

			err := fn(context.WithValue(ctx, memTxKey{}, true))
			if err != nil {
				st.mu.Lock()
				st.counters = counters
				st.matches = matches
				st.mu.Unlock()
			}
			return err
		},
	}
}

// newStoreService wires a Service to a memStore.
func newStoreService(t *testing.T, st *memStore, opts Options) *Service {
	t.Helper()
	svc, err := NewService(slog.Default(), st.taxonomyMock(), st.prefMock(), st.profileMock(), st.matchMock(), passthroughTx(), opts)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}
