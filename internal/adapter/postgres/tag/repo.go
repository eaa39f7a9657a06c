// Package tag implements the Tag Taxonomy repository using PostgreSQL.
package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

const table = "tags"

// Repo provides read access to the taxonomy and the seeding upsert.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tag repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListAll returns every tag ordered by type, then ID.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Tag, error) {
	query, args, err := postgres.Builder().
		Select("tag_type", "tag_id", "display_name").
		From(table).
		OrderBy("tag_type", "tag_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tags: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var (
			t       domain.Tag
			tagType string
		)
		if err := rows.Scan(&tagType, &t.ID, &t.DisplayName); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		t.Type = domain.TagType(tagType)
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	return tags, nil
}

// Taxonomy loads the full taxonomy.
func (r *Repo) Taxonomy(ctx context.Context) (domain.Taxonomy, error) {
	tags, err := r.ListAll(ctx)
	if err != nil {
		return domain.Taxonomy{}, err
	}
	return domain.NewTaxonomy(tags), nil
}

// Upsert inserts tags, updating the display name of tags that already exist.
// Returns the number of rows written.
func (r *Repo) Upsert(ctx context.Context, tags []domain.Tag) (int64, error) {
	if len(tags) == 0 {
		return 0, nil
	}

	insert := postgres.Builder().
		Insert(table).
		Columns("tag_type", "tag_id", "display_name")
	for _, t := range tags {
		insert = insert.Values(string(t.Type), t.ID, t.DisplayName)
	}
	query, args, err := insert.
		Suffix("ON CONFLICT (tag_type, tag_id) DO UPDATE SET display_name = EXCLUDED.display_name").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build upsert tags: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "tags", len(tags))
	}

	return tag.RowsAffected(), nil
}
