package matching

import (
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// RetrieveCandidatesInput holds the parameters for fetching the next candidate batch.
type RetrieveCandidatesInput struct {
	RequesterID int64
	FirstPage   bool
	Cursor      int64
}

// Validate checks all fields and collects all errors.
func (i RetrieveCandidatesInput) Validate() error {
	var errs []domain.FieldError
	if i.RequesterID <= 0 {
		errs = append(errs, domain.FieldError{Field: "requester_id", Message: "required"})
	}
	if i.Cursor < 0 {
		errs = append(errs, domain.FieldError{Field: "cursor", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SelectBestMatchInput holds a normalized preference vector and a non-empty batch.
type SelectBestMatchInput struct {
	RequesterID int64
	Preference  []float64
	Batch       []domain.Candidate
}

// Validate checks all fields and collects all errors.
func (i SelectBestMatchInput) Validate() error {
	var errs []domain.FieldError
	if i.RequesterID <= 0 {
		errs = append(errs, domain.FieldError{Field: "requester_id", Message: "required"})
	}
	if len(i.Batch) == 0 {
		errs = append(errs, domain.FieldError{Field: "batch", Message: "must not be empty"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RecommendInput drives one recommendation step. Remaining holds candidate
// IDs left over from the previous step; when empty the next page is fetched.
type RecommendInput struct {
	RequesterID int64
	FirstPage   bool
	Cursor      int64
	Remaining   []int64
}

// Validate checks all fields and collects all errors.
func (i RecommendInput) Validate() error {
	var errs []domain.FieldError
	if i.RequesterID <= 0 {
		errs = append(errs, domain.FieldError{Field: "requester_id", Message: "required"})
	}
	if i.Cursor < 0 {
		errs = append(errs, domain.FieldError{Field: "cursor", Message: "must be non-negative"})
	}
	for _, id := range i.Remaining {
		if id <= 0 {
			errs = append(errs, domain.FieldError{Field: "remaining", Message: "ids must be positive"})
			break
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RespondInput is one party's answer to a proposed match.
type RespondInput struct {
	RequesterID int64
	CandidateID int64
	Response    string
}

// Validate checks all fields and collects all errors.
func (i RespondInput) Validate() error {
	var errs []domain.FieldError
	if i.RequesterID <= 0 {
		errs = append(errs, domain.FieldError{Field: "requester_id", Message: "required"})
	}
	if i.CandidateID <= 0 {
		errs = append(errs, domain.FieldError{Field: "candidate_id", Message: "required"})
	}
	if _, ok := domain.ParseResponse(i.Response); !ok {
		errs = append(errs, domain.FieldError{Field: "response", Message: "must be Approve or Decline"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateMatchInput is a partial update of the record for a pair. Nil fields
// are left unchanged.
type UpdateMatchInput struct {
	RequesterID       int64
	CandidateID       int64
	RequesterApproved *bool
	CandidateApproved *bool
	State             *string
}

// Validate checks all fields and collects all errors.
func (i UpdateMatchInput) Validate() error {
	var errs []domain.FieldError
	if i.RequesterID <= 0 {
		errs = append(errs, domain.FieldError{Field: "requester_id", Message: "required"})
	}
	if i.CandidateID <= 0 {
		errs = append(errs, domain.FieldError{Field: "candidate_id", Message: "required"})
	}
	if i.State != nil {
		if _, ok := domain.ParseMatchState(*i.State); !ok {
			errs = append(errs, domain.FieldError{Field: "state", Message: "unknown state"})
		}
	}
	if i.RequesterApproved == nil && i.CandidateApproved == nil && i.State == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be set"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateMatchInput) params() domain.MatchUpdateParams {
	p := domain.MatchUpdateParams{
		RequesterApproved: i.RequesterApproved,
		CandidateApproved: i.CandidateApproved,
	}
	if i.State != nil {
		state, _ := domain.ParseMatchState(*i.State)
		p.State = &state
	}
	return p
}

// DeleteMatchesInput selects ledger records by party IDs and states.
// Role picks which side IDs refer to; empty means requester.
type DeleteMatchesInput struct {
	IDs    []int64
	States []string
	Role   string
}

// Validate checks all fields and collects all errors.
func (i DeleteMatchesInput) Validate() error {
	var errs []domain.FieldError
	if len(i.IDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "ids", Message: "required"})
	}
	if len(i.States) == 0 {
		errs = append(errs, domain.FieldError{Field: "states", Message: "required"})
	}
	for _, st := range i.States {
		if _, ok := domain.ParseMatchState(st); !ok {
			errs = append(errs, domain.FieldError{Field: "states", Message: "unknown state " + st})
		}
	}
	if i.Role != "" {
		if _, ok := domain.ParseProfileRole(i.Role); !ok {
			errs = append(errs, domain.FieldError{Field: "role", Message: "must be REQUESTER or CANDIDATE"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RetrieveMatchesInput selects the ledger view of one profile.
type RetrieveMatchesInput struct {
	ProfileID       int64
	Role            string
	IncludeRejected bool
}

// Validate checks all fields and collects all errors.
func (i RetrieveMatchesInput) Validate() error {
	var errs []domain.FieldError
	if i.ProfileID <= 0 {
		errs = append(errs, domain.FieldError{Field: "profile_id", Message: "required"})
	}
	if _, ok := domain.ParseProfileRole(i.Role); !ok {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be REQUESTER or CANDIDATE"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
