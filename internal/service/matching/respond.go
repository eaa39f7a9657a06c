package matching

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// RespondAsRequester applies the requester's answer. Approval moves the
// record to PENDING and, when it leaves CREATED, feeds the candidate's tags
// into the preference vector in the same transaction. Approving a PENDING
// record again leaves the preference untouched. Decline moves it to REJECTED.
func (s *Service) RespondAsRequester(ctx context.Context, input RespondInput) (*RespondResult, error) {
	return s.respond(ctx, domain.ProfileRoleRequester, input)
}

// RespondAsCandidate applies the candidate's answer to a PENDING record.
func (s *Service) RespondAsCandidate(ctx context.Context, input RespondInput) (*RespondResult, error) {
	return s.respond(ctx, domain.ProfileRoleCandidate, input)
}

func (s *Service) respond(ctx context.Context, role domain.ProfileRole, input RespondInput) (*RespondResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	resp, _ := domain.ParseResponse(input.Response)

	var tax domain.Taxonomy
	feedback := role == domain.ProfileRoleRequester && resp == domain.ResponseApprove
	if feedback {
		var err error
		tax, err = s.taxonomy.Taxonomy(ctx)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
	}

	var result RespondResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		result = RespondResult{}
		current, err := s.matches.GetForUpdate(txCtx, input.RequesterID, input.CandidateID)
		if err != nil {
			return fmt.Errorf("get match %d/%d: %w", input.RequesterID, input.CandidateID, err)
		}

		params, err := current.Transition(role, resp)
		if err != nil {
			return err
		}

		updated, err := s.matches.Update(txCtx, input.RequesterID, input.CandidateID, params)
		if err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		result.Match = *updated

		// Only the first approval feeds the candidate's tags back.
		if !feedback || current.State != domain.MatchStateCreated {
			return nil
		}

		candidate, err := s.profiles.GetByID(txCtx, input.CandidateID)
		if err != nil {
			return fmt.Errorf("get candidate %d: %w", input.CandidateID, err)
		}
		c := s.densify(txCtx, tax, *candidate)

		result.Preference, err = s.updatePreference(txCtx, tax, input.RequesterID, c.Vector)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "match response recorded",
		slog.Int64("requester_id", input.RequesterID),
		slog.Int64("candidate_id", input.CandidateID),
		slog.String("role", role.String()),
		slog.String("response", resp.String()),
		slog.String("state", result.Match.State.String()),
	)

	return &result, nil
}

// UpdateMatch applies a partial update to the record for the pair.
// Returns ErrNotFound when the pair has no record.
func (s *Service) UpdateMatch(ctx context.Context, input UpdateMatchInput) (*domain.Match, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	m, err := s.matches.Update(ctx, input.RequesterID, input.CandidateID, input.params())
	if err != nil {
		return nil, fmt.Errorf("update match %d/%d: %w", input.RequesterID, input.CandidateID, err)
	}

	s.log.InfoContext(ctx, "match updated",
		slog.String("match_id", m.ID.String()),
		slog.String("state", m.State.String()),
	)
	return m, nil
}
