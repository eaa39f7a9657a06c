// Package profile implements the Candidate Repository using PostgreSQL.
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

const table = "profiles"

var columns = []string{"id", "profile_type", "display_name", "trait_a_refs", "trait_b_refs", "created_at"}

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a profile by primary key.
// Returns domain.ErrNotFound if the profile does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get profile: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	p, err := scanProfile(row)
	if err != nil {
		return nil, postgres.MapError(err, "profile", id)
	}
	return &p, nil
}

// GetByIDs returns the profiles that exist among ids, in ID order.
func (r *Repo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return []domain.Profile{}, nil
	}

	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id"))
}

// ListCandidatesAfter returns up to limit CANDIDATE profiles with ID greater
// than afterID, ordered by ID. afterID 0 starts from the beginning.
func (r *Repo) ListCandidatesAfter(ctx context.Context, afterID int64, limit int) ([]domain.Profile, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"profile_type": string(domain.ProfileTypeCandidate)}).
		Where(squirrel.Gt{"id": afterID}).
		OrderBy("id").
		Limit(uint64(limit)))
}

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder) ([]domain.Profile, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list profiles: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a profile and returns it with the generated ID.
func (r *Repo) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("profile_type", "display_name", "trait_a_refs", "trait_b_refs").
		Values(string(p.Type), p.DisplayName, toInt32(p.TraitA), toInt32(p.TraitB)).
		Suffix("RETURNING id, profile_type, display_name, trait_a_refs, trait_b_refs, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create profile: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanProfile(row)
	if err != nil {
		return nil, postgres.MapError(err, "profile", p.DisplayName)
	}
	return &created, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var (
		p              domain.Profile
		profileType    string
		traitA, traitB []int32
		createdAt      time.Time
	)
	if err := row.Scan(&p.ID, &profileType, &p.DisplayName, &traitA, &traitB, &createdAt); err != nil {
		return domain.Profile{}, err
	}
	p.Type = domain.ProfileType(profileType)
	p.TraitA = toInt(traitA)
	p.TraitB = toInt(traitB)
	p.CreatedAt = createdAt
	return p, nil
}

func toInt32(refs []int) []int32 {
	out := make([]int32, len(refs))
	for i, v := range refs {
		out[i] = int32(v)
	}
	return out
}

func toInt(refs []int32) []int {
	out := make([]int, len(refs))
	for i, v := range refs {
		out[i] = int(v)
	}
	return out
}
