package matching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

const (
	DefaultPageSize    = 10
	DefaultMaxPageScan = 50
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type taxonomyProvider interface {
	Taxonomy(ctx context.Context) (domain.Taxonomy, error)
}

type preferenceRepo interface {
	ListByRequester(ctx context.Context, requesterID int64) ([]domain.PreferenceCounter, error)
	InitCounters(ctx context.Context, requesterID int64, tags []domain.Tag) error
	Increment(ctx context.Context, requesterID int64, tagType domain.TagType, tagID int, delta int64) error
}

type profileRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Profile, error)
	ListCandidatesAfter(ctx context.Context, afterID int64, limit int) ([]domain.Profile, error)
}

type matchRepo interface {
	GetForUpdate(ctx context.Context, requesterID, candidateID int64) (*domain.Match, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]domain.Match, error)
	ListByProfile(ctx context.Context, role domain.ProfileRole, profileID int64, states []domain.MatchState) ([]domain.Match, error)
	CreateIfAbsent(ctx context.Context, m *domain.Match) (*domain.Match, bool, error)
	Update(ctx context.Context, requesterID, candidateID int64, params domain.MatchUpdateParams) (*domain.Match, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	DeleteWhere(ctx context.Context, role domain.ProfileRole, profileIDs []int64, states []domain.MatchState) (int64, error)
	DeleteRejectedBefore(ctx context.Context, before time.Time) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Options tunes paging and ranking.
type Options struct {
	PageSize    int
	MaxPageScan int
	Strategy    DistanceStrategy
}

// Service is the matching engine: preference vectors, candidate paging,
// ranking and the match ledger state machine.
type Service struct {
	taxonomy taxonomyProvider
	prefs    preferenceRepo
	profiles profileRepo
	matches  matchRepo
	tx       txManager
	log      *slog.Logger
	opts     Options
}

// NewService creates a new Matching service. Zero option values fall back to defaults.
func NewService(
	log *slog.Logger,
	taxonomy taxonomyProvider,
	prefs preferenceRepo,
	profiles profileRepo,
	matches matchRepo,
	tx txManager,
	opts Options,
) (*Service, error) {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.MaxPageScan <= 0 {
		opts.MaxPageScan = DefaultMaxPageScan
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategySumSquare
	}
	if !opts.Strategy.IsValid() {
		return nil, fmt.Errorf("unknown distance strategy %q", opts.Strategy)
	}

	return &Service{
		taxonomy: taxonomy,
		prefs:    prefs,
		profiles: profiles,
		matches:  matches,
		tx:       tx,
		log:      log.With("service", "matching"),
		opts:     opts,
	}, nil
}

// densify builds a Candidate from a profile, reporting dropped tag references.
func (s *Service) densify(ctx context.Context, tax domain.Taxonomy, p domain.Profile) domain.Candidate {
	vec, dropped := domain.Densify(tax, p.TraitA, p.TraitB)
	for _, ref := range dropped {
		s.log.WarnContext(ctx, "tag reference outside taxonomy",
			slog.Int64("profile_id", p.ID),
			slog.String("tag_type", ref.Type.String()),
			slog.Int("tag_id", ref.ID),
		)
	}
	return domain.Candidate{Profile: p, Vector: vec}
}
