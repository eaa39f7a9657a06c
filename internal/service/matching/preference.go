package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// GetPreference returns the requester's preference vector, creating zero
// counters for every known tag on first access.
func (s *Service) GetPreference(ctx context.Context, requesterID int64) (*PreferenceSnapshot, error) {
	if requesterID <= 0 {
		return nil, domain.NewValidationError("requester_id", "required")
	}

	if err := s.requireRequester(ctx, requesterID); err != nil {
		return nil, err
	}

	tax, err := s.taxonomy.Taxonomy(ctx)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	return s.loadPreference(ctx, tax, requesterID)
}

// UpdatePreference increments the requester's counter at every position set
// in vec and returns the renormalized vector.
func (s *Service) UpdatePreference(ctx context.Context, requesterID int64, vec domain.TagVector) ([]float64, error) {
	if requesterID <= 0 {
		return nil, domain.NewValidationError("requester_id", "required")
	}

	tax, err := s.taxonomy.Taxonomy(ctx)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	var normalized []float64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		normalized, txErr = s.updatePreference(txCtx, tax, requesterID, vec)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return normalized, nil
}

func (s *Service) requireRequester(ctx context.Context, requesterID int64) error {
	profile, err := s.profiles.GetByID(ctx, requesterID)
	if err != nil {
		return fmt.Errorf("get requester %d: %w", requesterID, err)
	}
	if profile.Type != domain.ProfileTypeRequester {
		return domain.NewValidationError("requester_id", "profile is not a requester")
	}
	return nil
}

// loadPreference reads the counters and places each at its taxonomy position.
// Counters for tags outside the taxonomy are skipped. Taxonomy tags that were
// added after initialization have no counter and read as 0; they are not backfilled.
func (s *Service) loadPreference(ctx context.Context, tax domain.Taxonomy, requesterID int64) (*PreferenceSnapshot, error) {
	counters, err := s.prefs.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list preference counters: %w", err)
	}

	snap := &PreferenceSnapshot{
		RequesterID: requesterID,
		CountA:      tax.CountA,
		CountB:      tax.CountB,
		Raw:         make([]int64, tax.Size()),
	}

	if len(counters) == 0 {
		if err := s.prefs.InitCounters(ctx, requesterID, tax.Tags); err != nil {
			return nil, fmt.Errorf("init preference counters: %w", err)
		}
		snap.Initialized = true
		snap.Normalized = domain.Normalize(snap.Raw)

		s.log.InfoContext(ctx, "preference counters initialized",
			slog.Int64("requester_id", requesterID),
			slog.Int("tags", len(tax.Tags)),
		)
		return snap, nil
	}

	seen := make([]bool, tax.Size())
	for _, c := range counters {
		idx, ok := tax.Index(c.TagType, c.TagID)
		if !ok {
			s.log.WarnContext(ctx, "preference counter outside taxonomy",
				slog.Int64("requester_id", requesterID),
				slog.String("tag_type", c.TagType.String()),
				slog.Int("tag_id", c.TagID),
			)
			continue
		}
		snap.Raw[idx] = c.LikeCount
		seen[idx] = true
	}
	for _, ok := range seen {
		if !ok {
			snap.MissingCounters++
		}
	}
	if snap.MissingCounters > 0 {
		s.log.WarnContext(ctx, "taxonomy has tags without preference counters",
			slog.Int64("requester_id", requesterID),
			slog.Int("missing", snap.MissingCounters),
		)
	}

	snap.Normalized = domain.Normalize(snap.Raw)
	return snap, nil
}

func (s *Service) updatePreference(ctx context.Context, tax domain.Taxonomy, requesterID int64, vec domain.TagVector) ([]float64, error) {
	if len(vec) != tax.Size() {
		return nil, domain.NewValidationError("vector", fmt.Sprintf("length must be %d", tax.Size()))
	}
	for _, v := range vec {
		if v != 0 && v != 1 {
			return nil, domain.NewValidationError("vector", "values must be 0 or 1")
		}
	}

	snap, err := s.loadPreference(ctx, tax, requesterID)
	if err != nil {
		return nil, err
	}

	var incremented int
	for i, v := range vec {
		if v != 1 {
			continue
		}
		tagType, tagID, _ := tax.TagAt(i)
		err := s.prefs.Increment(ctx, requesterID, tagType, tagID, 1)
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "no preference counter for tag, skipping",
				slog.Int64("requester_id", requesterID),
				slog.String("tag_type", tagType.String()),
				slog.Int("tag_id", tagID),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("increment preference counter: %w", err)
		}
		snap.Raw[i]++
		incremented++
	}

	s.log.InfoContext(ctx, "preference updated",
		slog.Int64("requester_id", requesterID),
		slog.Int("incremented", incremented),
	)

	return domain.Normalize(snap.Raw), nil
}
