package matching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// SelectBestMatch ranks the batch against the preference vector, records a
// CREATED proposal for the closest candidate and returns it with the rest of
// the batch. Ties go to the candidate that comes first in the batch.
func (s *Service) SelectBestMatch(ctx context.Context, input SelectBestMatchInput) (*Selection, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	best := Rank(s.opts.Strategy, input.Preference, input.Batch)[0]

	match, err := s.propose(ctx, input.RequesterID, best.Candidate.ID())
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "match proposed",
		slog.Int64("requester_id", input.RequesterID),
		slog.Int64("candidate_id", best.Candidate.ID()),
		slog.Float64("distance", best.Distance),
		slog.String("strategy", s.opts.Strategy.String()),
	)

	return &Selection{
		Best:      best.Candidate,
		Distance:  best.Distance,
		Remaining: withoutCandidate(input.Batch, best.Candidate.ID()),
		Match:     *match,
	}, nil
}

// propose writes a CREATED record for the pair. An existing CREATED record
// is reused; a record in any other state means the pair was already answered.
func (s *Service) propose(ctx context.Context, requesterID, candidateID int64) (*domain.Match, error) {
	now := time.Now().UTC()
	m, created, err := s.matches.CreateIfAbsent(ctx, &domain.Match{
		ID:          uuid.New(),
		RequesterID: requesterID,
		CandidateID: candidateID,
		State:       domain.MatchStateCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	if !created && m.State != domain.MatchStateCreated {
		return nil, fmt.Errorf("match %d/%d is %s: %w", requesterID, candidateID, m.State, domain.ErrAlreadyExists)
	}
	return m, nil
}
