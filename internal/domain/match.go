package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Match is a match ledger record. At most one record exists per
// (RequesterID, CandidateID) pair.
type Match struct {
	ID                uuid.UUID  `json:"id"`
	RequesterID       int64      `json:"requester_id"`
	CandidateID       int64      `json:"candidate_id"`
	RequesterApproved *bool      `json:"requester_approved"`
	CandidateApproved *bool      `json:"candidate_approved"`
	State             MatchState `json:"state"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// MatchUpdateParams holds a partial update. Nil fields are left unchanged.
type MatchUpdateParams struct {
	RequesterApproved *bool
	CandidateApproved *bool
	State             *MatchState
}

// IsEmpty reports whether no field is set.
func (p MatchUpdateParams) IsEmpty() bool {
	return p.RequesterApproved == nil && p.CandidateApproved == nil && p.State == nil
}

// MatchSummary is a ledger record seen from one party, with the other
// party resolved to a name.
type MatchSummary struct {
	MatchID          uuid.UUID  `json:"match_id"`
	CounterpartyID   int64      `json:"counterparty_id"`
	CounterpartyName string     `json:"counterparty_name"`
	Status           MatchState `json:"status"`
}

// Transition computes the update a response produces on the record.
//
// Requester: APPROVE moves CREATED or PENDING to PENDING, DECLINE moves
// CREATED or PENDING to REJECTED. Candidate: only PENDING records accept a
// response; APPROVE moves to ACTIVE, DECLINE to REJECTED. ACTIVE and REJECTED
// are terminal. Invalid transitions wrap ErrConflict.
func (m Match) Transition(role ProfileRole, resp Response) (MatchUpdateParams, error) {
	if !resp.IsValid() {
		return MatchUpdateParams{}, NewValidationError("response", "must be APPROVE or DECLINE")
	}
	if m.State.IsTerminal() {
		return MatchUpdateParams{}, fmt.Errorf("match %s is %s: %w", m.ID, m.State, ErrConflict)
	}

	approved := resp == ResponseApprove
	next := MatchStateRejected

	switch role {
	case ProfileRoleRequester:
		if approved {
			next = MatchStatePending
		}
		return MatchUpdateParams{RequesterApproved: &approved, State: &next}, nil

	case ProfileRoleCandidate:
		if m.State != MatchStatePending {
			return MatchUpdateParams{}, fmt.Errorf("match %s awaits the requester (state %s): %w", m.ID, m.State, ErrConflict)
		}
		if approved {
			next = MatchStateActive
		}
		return MatchUpdateParams{CandidateApproved: &approved, State: &next}, nil
	}

	return MatchUpdateParams{}, NewValidationError("role", "must be REQUESTER or CANDIDATE")
}

// Apply returns a copy of m with params applied.
func (m Match) Apply(p MatchUpdateParams) Match {
	if p.RequesterApproved != nil {
		v := *p.RequesterApproved
		m.RequesterApproved = &v
	}
	if p.CandidateApproved != nil {
		v := *p.CandidateApproved
		m.CandidateApproved = &v
	}
	if p.State != nil {
		m.State = *p.State
	}
	return m
}
