package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres/match"
	"github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres/preference"
	"github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres/tag"
	"github.com/heartmarshall/tagmatch-backend/internal/adapter/redis"
	"github.com/heartmarshall/tagmatch-backend/internal/config"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
	"github.com/heartmarshall/tagmatch-backend/internal/service/matching"
)

type taxonomySource interface {
	Taxonomy(ctx context.Context) (domain.Taxonomy, error)
}

// Engine bundles the matching service with the repositories the command
// line tools use directly.
type Engine struct {
	Matching *matching.Service
	Tags     *tag.Repo
	Profiles *profile.Repo
	Matches  *match.Repo
	// Cache is nil when Redis is not configured.
	Cache *redis.TaxonomyCache

	redisClient *goredis.Client
}

// NewEngine wires repositories, the optional taxonomy cache, and the
// matching service on top of pool.
func NewEngine(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Engine, error) {
	e := &Engine{
		Tags:     tag.New(pool),
		Profiles: profile.New(pool),
		Matches:  match.New(pool),
	}

	var taxonomy taxonomySource = e.Tags

	if cfg.Redis.Enabled() {
		client, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		e.redisClient = client
		e.Cache = redis.NewTaxonomyCache(client, e.Tags, cfg.Redis.TaxonomyTTL, logger)
		taxonomy = e.Cache
	}

	strategy, err := matching.ParseDistanceStrategy(cfg.Matching.DistanceStrategy)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("matching: %w", err)
	}

	svc, err := matching.NewService(
		logger,
		taxonomy,
		preference.New(pool),
		e.Profiles,
		e.Matches,
		postgres.NewTxManager(pool),
		matching.Options{
			PageSize:    cfg.Matching.PageSize,
			MaxPageScan: cfg.Matching.MaxPageScan,
			Strategy:    strategy,
		},
	)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.Matching = svc

	return e, nil
}

// InvalidateTaxonomy drops the cached taxonomy after the tags table changes.
// A no-op without a cache.
func (e *Engine) InvalidateTaxonomy(ctx context.Context) error {
	if e.Cache == nil {
		return nil
	}
	return e.Cache.Invalidate(ctx)
}

// Close releases the Redis client. The pool is owned by the caller.
func (e *Engine) Close() {
	if e.redisClient != nil {
		_ = e.redisClient.Close()
	}
}
