// Package match implements the Match Ledger repository using PostgreSQL.
package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

const table = "matches"

var columns = []string{
	"id", "requester_id", "candidate_id",
	"requester_approved", "candidate_approved",
	"state", "created_at", "updated_at",
}

// Repo provides match ledger persistence backed by PostgreSQL.
// The (requester_id, candidate_id) unique constraint keeps one record per pair.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new match repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type pair struct{ requesterID, candidateID int64 }

func (p pair) String() string { return fmt.Sprintf("%d/%d", p.requesterID, p.candidateID) }

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the record for the pair.
// Returns domain.ErrNotFound if the pair has no record.
func (r *Repo) Get(ctx context.Context, requesterID, candidateID int64) (*domain.Match, error) {
	return r.get(ctx, requesterID, candidateID, "")
}

// GetForUpdate is Get with a row lock held until the surrounding transaction
// ends. It must run inside TxManager.RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, requesterID, candidateID int64) (*domain.Match, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("get match %v for update: no transaction in context", pair{requesterID, candidateID})
	}
	return r.get(ctx, requesterID, candidateID, "FOR UPDATE")
}

func (r *Repo) get(ctx context.Context, requesterID, candidateID int64, suffix string) (*domain.Match, error) {
	b := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"requester_id": requesterID, "candidate_id": candidateID})
	if suffix != "" {
		b = b.Suffix(suffix)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get match: %w", err)
	}

	m, err := scanMatch(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "match", pair{requesterID, candidateID})
	}
	return &m, nil
}

// ListByRequester returns every record of the requester in any state.
func (r *Repo) ListByRequester(ctx context.Context, requesterID int64) ([]domain.Match, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("created_at", "candidate_id"))
}

// ListByProfile returns the records where profileID is on the given side
// and the state is one of states.
func (r *Repo) ListByProfile(ctx context.Context, role domain.ProfileRole, profileID int64, states []domain.MatchState) ([]domain.Match, error) {
	col, err := roleColumn(role)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return []domain.Match{}, nil
	}

	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{col: profileID, "state": stateStrings(states)}).
		OrderBy("updated_at DESC", "id"))
}

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder) ([]domain.Match, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list matches: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	matches := []domain.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateIfAbsent inserts m unless the pair already has a record. The boolean
// reports whether a row was inserted; when false the existing record is returned.
func (r *Repo) CreateIfAbsent(ctx context.Context, m *domain.Match) (*domain.Match, bool, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(m.ID, m.RequesterID, m.CandidateID, m.RequesterApproved, m.CandidateApproved,
			string(m.State), m.CreatedAt, m.UpdatedAt).
		Suffix("ON CONFLICT (requester_id, candidate_id) DO NOTHING RETURNING " + returning()).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build create match: %w", err)
	}

	created, err := scanMatch(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err == nil {
		return &created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, postgres.MapError(err, "match", pair{m.RequesterID, m.CandidateID})
	}

	existing, err := r.Get(ctx, m.RequesterID, m.CandidateID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Update applies the non-nil fields of params to the record for the pair.
// Returns domain.ErrNotFound if the pair has no record.
func (r *Repo) Update(ctx context.Context, requesterID, candidateID int64, params domain.MatchUpdateParams) (*domain.Match, error) {
	if params.IsEmpty() {
		return r.Get(ctx, requesterID, candidateID)
	}

	b := postgres.Builder().
		Update(table).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"requester_id": requesterID, "candidate_id": candidateID}).
		Suffix("RETURNING " + returning())
	if params.RequesterApproved != nil {
		b = b.Set("requester_approved", *params.RequesterApproved)
	}
	if params.CandidateApproved != nil {
		b = b.Set("candidate_approved", *params.CandidateApproved)
	}
	if params.State != nil {
		b = b.Set("state", string(*params.State))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update match: %w", err)
	}

	m, err := scanMatch(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "match", pair{requesterID, candidateID})
	}
	return &m, nil
}

// DeleteByIDs removes records by primary key and returns the number deleted.
func (r *Repo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.exec(ctx, postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": ids}))
}

// DeleteWhere removes records whose party on the given side is in
// profileIDs and whose state is in states.
func (r *Repo) DeleteWhere(ctx context.Context, role domain.ProfileRole, profileIDs []int64, states []domain.MatchState) (int64, error) {
	col, err := roleColumn(role)
	if err != nil {
		return 0, err
	}
	if len(profileIDs) == 0 || len(states) == 0 {
		return 0, nil
	}
	return r.exec(ctx, postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{col: profileIDs, "state": stateStrings(states)}))
}

// DeleteRejectedBefore removes REJECTED records last updated before the cutoff.
func (r *Repo) DeleteRejectedBefore(ctx context.Context, before time.Time) (int64, error) {
	return r.exec(ctx, postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"state": string(domain.MatchStateRejected)}).
		Where(squirrel.Lt{"updated_at": before}))
}

func (r *Repo) exec(ctx context.Context, b squirrel.DeleteBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete matches: %w", err)
	}
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete matches: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func returning() string {
	out := columns[0]
	for _, c := range columns[1:] {
		out += ", " + c
	}
	return out
}

func roleColumn(role domain.ProfileRole) (string, error) {
	switch role {
	case domain.ProfileRoleRequester:
		return "requester_id", nil
	case domain.ProfileRoleCandidate:
		return "candidate_id", nil
	}
	return "", domain.NewValidationError("role", "must be REQUESTER or CANDIDATE")
}

func stateStrings(states []domain.MatchState) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}

func scanMatch(row pgx.Row) (domain.Match, error) {
	var (
		m     domain.Match
		state string
	)
	err := row.Scan(&m.ID, &m.RequesterID, &m.CandidateID,
		&m.RequesterApproved, &m.CandidateApproved,
		&state, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Match{}, err
	}
	m.State = domain.MatchState(state)
	return m, nil
}
