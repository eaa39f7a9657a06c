// Package preference implements the Preference Vector store using PostgreSQL.
// Each requester has one like-count row per taxonomy tag.
package preference

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

const table = "preference_counters"

// Repo provides preference counter persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new preference repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListByRequester returns every counter of the requester, ordered by type and tag ID.
// Returns an empty slice when the requester has no counters yet.
func (r *Repo) ListByRequester(ctx context.Context, requesterID int64) ([]domain.PreferenceCounter, error) {
	query, args, err := postgres.Builder().
		Select("tag_type", "tag_id", "like_count").
		From(table).
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("tag_type", "tag_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list counters: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "preference_counters", requesterID)
	}
	defer rows.Close()

	counters := []domain.PreferenceCounter{}
	for rows.Next() {
		c := domain.PreferenceCounter{RequesterID: requesterID}
		var tagType string
		if err := rows.Scan(&tagType, &c.TagID, &c.LikeCount); err != nil {
			return nil, fmt.Errorf("scan counter: %w", err)
		}
		c.TagType = domain.TagType(tagType)
		counters = append(counters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "preference_counters", requesterID)
	}

	return counters, nil
}

// InitCounters creates a zero counter for each tag. Existing counters are
// left untouched, so concurrent first access is safe.
func (r *Repo) InitCounters(ctx context.Context, requesterID int64, tags []domain.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	insert := postgres.Builder().
		Insert(table).
		Columns("requester_id", "tag_type", "tag_id", "like_count")
	for _, t := range tags {
		insert = insert.Values(requesterID, string(t.Type), t.ID, 0)
	}
	query, args, err := insert.
		Suffix("ON CONFLICT (requester_id, tag_type, tag_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build init counters: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "preference_counters", requesterID)
	}
	return nil
}

// Increment adds delta to one counter.
// Returns domain.ErrNotFound when the counter does not exist.
func (r *Repo) Increment(ctx context.Context, requesterID int64, tagType domain.TagType, tagID int, delta int64) error {
	query, args, err := postgres.Builder().
		Update(table).
		Set("like_count", squirrel.Expr("like_count + ?", delta)).
		Where(squirrel.Eq{
			"requester_id": requesterID,
			"tag_type":     string(tagType),
			"tag_id":       tagID,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build increment counter: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "preference_counter", fmt.Sprintf("%d/%s/%d", requesterID, tagType, tagID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("preference_counter %d/%s/%d: %w", requesterID, tagType, tagID, domain.ErrNotFound)
	}
	return nil
}
