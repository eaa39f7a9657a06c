package matching

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// RetrieveCandidates returns the next batch of candidates the requester has
// not responded to.
//
// Unanswered proposals (CREATED records) are deleted and their candidates
// are put at the front of the batch; candidates with any other record are
// excluded. The deletion commits only if the page is built. Pages that
// filter down to nothing are skipped, up to MaxPageScan pages per call.
// Running out of pages is reported through Exhausted, not as an error.
func (s *Service) RetrieveCandidates(ctx context.Context, input RetrieveCandidatesInput) (*CandidatePage, error) {
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

	var page *CandidatePage
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		page, txErr = s.retrieveCandidates(txCtx, tax, input)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Service) retrieveCandidates(ctx context.Context, tax domain.Taxonomy, input RetrieveCandidatesInput) (*CandidatePage, error) {
	records, err := s.matches.ListByRequester(ctx, input.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	excluded := make(map[int64]struct{}, len(records))
	carriedSet := make(map[int64]struct{})
	var carriedIDs []int64
	var createdRecords []uuid.UUID
	for _, m := range records {
		if m.State == domain.MatchStateCreated {
			createdRecords = append(createdRecords, m.ID)
			carriedIDs = append(carriedIDs, m.CandidateID)
			carriedSet[m.CandidateID] = struct{}{}
			continue
		}
		excluded[m.CandidateID] = struct{}{}
	}

	var carried []domain.Candidate
	if len(createdRecords) > 0 {
		if _, err := s.matches.DeleteByIDs(ctx, createdRecords); err != nil {
			return nil, fmt.Errorf("delete created matches: %w", err)
		}
		carried, err = s.loadCandidates(ctx, tax, carriedIDs)
		if err != nil {
			return nil, err
		}
	}

	cursor := input.Cursor
	if input.FirstPage {
		cursor = 0
	}

	for scanned := 0; scanned < s.opts.MaxPageScan; scanned++ {
		page, err := s.profiles.ListCandidatesAfter(ctx, cursor, s.opts.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list candidates after %d: %w", cursor, err)
		}

		if len(page) == 0 {
			msg := MsgNoMoreCandidates
			if scanned == 0 && input.FirstPage {
				msg = MsgNoCandidates
			}
			return &CandidatePage{Candidates: carried, Cursor: cursor, Exhausted: true, Message: msg}, nil
		}
		cursor = page[len(page)-1].ID

		batch := make([]domain.Candidate, 0, len(carried)+len(page))
		batch = append(batch, carried...)
		for _, p := range page {
			if _, ok := excluded[p.ID]; ok {
				continue
			}
			if _, ok := carriedSet[p.ID]; ok {
				continue
			}
			batch = append(batch, s.densify(ctx, tax, p))
		}

		if len(batch) > 0 {
			return &CandidatePage{Candidates: batch, Cursor: cursor}, nil
		}
	}

	s.log.WarnContext(ctx, "page scan limit reached",
		slog.Int64("requester_id", input.RequesterID),
		slog.Int("pages", s.opts.MaxPageScan),
		slog.Int64("cursor", cursor),
	)
	return &CandidatePage{Cursor: cursor, Message: MsgScanLimit}, nil
}

// loadCandidates fetches and densifies profiles, keeping the order of ids.
// Missing or non-candidate profiles are skipped.
func (s *Service) loadCandidates(ctx context.Context, tax domain.Taxonomy, ids []int64) ([]domain.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	profiles, err := s.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get candidate profiles: %w", err)
	}

	byID := make(map[int64]domain.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]domain.Candidate, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok || p.Type != domain.ProfileTypeCandidate {
			s.log.WarnContext(ctx, "candidate profile not found, skipping", slog.Int64("profile_id", id))
			continue
		}
		out = append(out, s.densify(ctx, tax, p))
	}
	return out, nil
}
