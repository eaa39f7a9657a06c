package matching

import (
	"context"
	"fmt"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// Recommend runs one step of the recommendation flow: load the preference
// vector, take the remaining batch or fetch the next page, and propose the
// closest candidate. The step runs in one transaction, so a failed proposal
// leaves earlier unanswered proposals and counters as they were.
func (s *Service) Recommend(ctx context.Context, input RecommendInput) (*Recommendation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.requireRequester(ctx, input.RequesterID); err != nil {
		return nil, err
	}

	tax, err := s.taxonomy.Taxonomy(ctx)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	var rec *Recommendation
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		rec, txErr = s.recommend(txCtx, tax, input)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) recommend(ctx context.Context, tax domain.Taxonomy, input RecommendInput) (*Recommendation, error) {
	pref, err := s.loadPreference(ctx, tax, input.RequesterID)
	if err != nil {
		return nil, err
	}

	batch, err := s.remainingBatch(ctx, tax, input.RequesterID, input.Remaining)
	if err != nil {
		return nil, err
	}

	rec := &Recommendation{Preference: pref.Normalized, Cursor: input.Cursor}
	if len(batch) == 0 {
		page, err := s.retrieveCandidates(ctx, tax, RetrieveCandidatesInput{
			RequesterID: input.RequesterID,
			FirstPage:   input.FirstPage,
			Cursor:      input.Cursor,
		})
		if err != nil {
			return nil, err
		}
		batch = page.Candidates
		rec.Cursor = page.Cursor
		rec.Exhausted = page.Exhausted
		rec.Message = page.Message
	}

	if len(batch) == 0 {
		return rec, nil
	}

	sel, err := s.SelectBestMatch(ctx, SelectBestMatchInput{
		RequesterID: input.RequesterID,
		Preference:  pref.Normalized,
		Batch:       batch,
	})
	if err != nil {
		return nil, err
	}

	rec.Candidate = &sel.Best
	rec.Distance = sel.Distance
	rec.Match = &sel.Match
	rec.Remaining = sel.Remaining
	rec.Message = ""
	return rec, nil
}

// remainingBatch reloads candidates left over from a previous step, dropping
// any the requester has answered since.
func (s *Service) remainingBatch(ctx context.Context, tax domain.Taxonomy, requesterID int64, ids []int64) ([]domain.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	records, err := s.matches.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	answered := make(map[int64]struct{}, len(records))
	for _, m := range records {
		if m.State != domain.MatchStateCreated {
			answered[m.CandidateID] = struct{}{}
		}
	}

	open := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := answered[id]; !ok {
			open = append(open, id)
		}
	}
	return s.loadCandidates(ctx, tax, open)
}
