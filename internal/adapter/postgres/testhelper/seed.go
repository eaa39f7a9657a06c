package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func toInt32(refs []int) []int32 {
	out := make([]int32, len(refs))
	for i, v := range refs {
		out[i] = int32(v)
	}
	return out
}

// SeedProfile inserts a profile and returns it with the generated ID.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, profileType domain.ProfileType, traitA, traitB []int) domain.Profile {
	t.Helper()
	ctx := context.Background()

	p := domain.Profile{
		Type:        profileType,
		DisplayName: "Profile " + uniqueSuffix(),
		TraitA:      traitA,
		TraitB:      traitB,
	}
	if p.TraitA == nil {
		p.TraitA = []int{}
	}
	if p.TraitB == nil {
		p.TraitB = []int{}
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO profiles (profile_type, display_name, trait_a_refs, trait_b_refs)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		string(p.Type), p.DisplayName, toInt32(p.TraitA), toInt32(p.TraitB),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}

	return p
}

// SeedRequester is SeedProfile for a REQUESTER without tags.
func SeedRequester(t *testing.T, pool *pgxpool.Pool) domain.Profile {
	t.Helper()
	return SeedProfile(t, pool, domain.ProfileTypeRequester, nil, nil)
}

// SeedMatch inserts a ledger record for the pair in the given state.
func SeedMatch(t *testing.T, pool *pgxpool.Pool, requesterID, candidateID int64, state domain.MatchState) domain.Match {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	m := domain.Match{
		ID:          uuid.New(),
		RequesterID: requesterID,
		CandidateID: candidateID,
		State:       state,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO matches (id, requester_id, candidate_id, state, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.RequesterID, m.CandidateID, string(m.State), m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMatch: %v", err)
	}

	return m
}

// SeedCounter inserts a preference counter row.
func SeedCounter(t *testing.T, pool *pgxpool.Pool, requesterID int64, tagType domain.TagType, tagID int, likeCount int64) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO preference_counters (requester_id, tag_type, tag_id, like_count)
		 VALUES ($1, $2, $3, $4)`,
		requesterID, string(tagType), tagID, likeCount,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCounter: %v", err)
	}
}
