package domain

import "strings"

// TagType is the taxonomy category a tag belongs to.
// TraitA tags are interests, TraitB tags are skills.
type TagType string

const (
	TagTypeTraitA TagType = "TRAIT_A"
	TagTypeTraitB TagType = "TRAIT_B"
)

func (t TagType) String() string { return string(t) }

func (t TagType) IsValid() bool {
	switch t {
	case TagTypeTraitA, TagTypeTraitB:
		return true
	}
	return false
}

// ProfileType distinguishes the two populations being matched.
type ProfileType string

const (
	ProfileTypeCandidate ProfileType = "CANDIDATE"
	ProfileTypeRequester ProfileType = "REQUESTER"
)

func (p ProfileType) String() string { return string(p) }

func (p ProfileType) IsValid() bool {
	switch p {
	case ProfileTypeCandidate, ProfileTypeRequester:
		return true
	}
	return false
}

// MatchState is the lifecycle state of a match ledger record.
type MatchState string

const (
	MatchStateCreated  MatchState = "CREATED"
	MatchStatePending  MatchState = "PENDING"
	MatchStateActive   MatchState = "ACTIVE"
	MatchStateRejected MatchState = "REJECTED"
)

func (s MatchState) String() string { return string(s) }

func (s MatchState) IsValid() bool {
	switch s {
	case MatchStateCreated, MatchStatePending, MatchStateActive, MatchStateRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves the state.
func (s MatchState) IsTerminal() bool {
	return s == MatchStateActive || s == MatchStateRejected
}

// ParseMatchState accepts state names case-insensitively ("Rejected", "REJECTED").
func ParseMatchState(s string) (MatchState, bool) {
	state := MatchState(strings.ToUpper(strings.TrimSpace(s)))
	return state, state.IsValid()
}

// ProfileRole selects which side of a match record an ID refers to.
type ProfileRole string

const (
	ProfileRoleRequester ProfileRole = "REQUESTER"
	ProfileRoleCandidate ProfileRole = "CANDIDATE"
)

func (r ProfileRole) String() string { return string(r) }

func (r ProfileRole) IsValid() bool {
	switch r {
	case ProfileRoleRequester, ProfileRoleCandidate:
		return true
	}
	return false
}

// ParseProfileRole accepts role names case-insensitively.
func ParseProfileRole(s string) (ProfileRole, bool) {
	role := ProfileRole(strings.ToUpper(strings.TrimSpace(s)))
	return role, role.IsValid()
}

// Response is a party's answer to a proposed match.
type Response string

const (
	ResponseApprove Response = "APPROVE"
	ResponseDecline Response = "DECLINE"
)

func (r Response) String() string { return string(r) }

func (r Response) IsValid() bool {
	switch r {
	case ResponseApprove, ResponseDecline:
		return true
	}
	return false
}

// ParseResponse accepts "Approve"/"Decline" in any letter case.
func ParseResponse(s string) (Response, bool) {
	resp := Response(strings.ToUpper(strings.TrimSpace(s)))
	return resp, resp.IsValid()
}
