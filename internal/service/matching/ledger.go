package matching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// DeleteMatches removes every record whose party (selected by Role) is in
// IDs and whose state is in States.
func (s *Service) DeleteMatches(ctx context.Context, input DeleteMatchesInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	role := domain.ProfileRoleRequester
	if input.Role != "" {
		role, _ = domain.ParseProfileRole(input.Role)
	}
	states := make([]domain.MatchState, 0, len(input.States))
	for _, st := range input.States {
		state, _ := domain.ParseMatchState(st)
		states = append(states, state)
	}

	n, err := s.matches.DeleteWhere(ctx, role, input.IDs, states)
	if err != nil {
		return 0, fmt.Errorf("delete matches: %w", err)
	}

	s.log.InfoContext(ctx, "matches deleted",
		slog.String("role", role.String()),
		slog.Int("ids", len(input.IDs)),
		slog.Int64("deleted", n),
	)
	return n, nil
}

// RevisitDeclined deletes the requester's REJECTED records so those
// candidates can be recommended again.
func (s *Service) RevisitDeclined(ctx context.Context, requesterID int64) (int64, error) {
	if requesterID <= 0 {
		return 0, domain.NewValidationError("requester_id", "required")
	}
	return s.DeleteMatches(ctx, DeleteMatchesInput{
		IDs:    []int64{requesterID},
		States: []string{domain.MatchStateRejected.String()},
		Role:   domain.ProfileRoleRequester.String(),
	})
}

// RetrieveMatches lists the PENDING and ACTIVE records of a profile, plus
// REJECTED ones when asked, each resolved to the other party's name.
func (s *Service) RetrieveMatches(ctx context.Context, input RetrieveMatchesInput) ([]domain.MatchSummary, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	role, _ := domain.ParseProfileRole(input.Role)

	states := []domain.MatchState{domain.MatchStatePending, domain.MatchStateActive}
	if input.IncludeRejected {
		states = append(states, domain.MatchStateRejected)
	}

	records, err := s.matches.ListByProfile(ctx, role, input.ProfileID, states)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if len(records) == 0 {
		return []domain.MatchSummary{}, nil
	}

	counterparty := func(m domain.Match) int64 {
		if role == domain.ProfileRoleRequester {
			return m.CandidateID
		}
		return m.RequesterID
	}

	ids := make([]int64, 0, len(records))
	for _, m := range records {
		ids = append(ids, counterparty(m))
	}
	profiles, err := s.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get counterparties: %w", err)
	}
	names := make(map[int64]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.DisplayName
	}

	out := make([]domain.MatchSummary, 0, len(records))
	for _, m := range records {
		id := counterparty(m)
		name, ok := names[id]
		if !ok {
			s.log.WarnContext(ctx, "counterparty profile not found",
				slog.String("match_id", m.ID.String()),
				slog.Int64("profile_id", id),
			)
		}
		out = append(out, domain.MatchSummary{
			MatchID:          m.ID,
			CounterpartyID:   id,
			CounterpartyName: name,
			Status:           m.State,
		})
	}
	return out, nil
}

// PurgeRejected deletes REJECTED records last updated before olderThan.
func (s *Service) PurgeRejected(ctx context.Context, olderThan time.Time) (int64, error) {
	n, err := s.matches.DeleteRejectedBefore(ctx, olderThan)
	if err != nil {
		return 0, fmt.Errorf("purge rejected matches: %w", err)
	}
	s.log.InfoContext(ctx, "rejected matches purged",
		slog.Time("older_than", olderThan),
		slog.Int64("deleted", n),
	)
	return n, nil
}
