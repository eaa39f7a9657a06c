package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
	"github.com/heartmarshall/tagmatch-backend/internal/service/matching"
)

// matchingService defines the engine operations exposed over HTTP.
type matchingService interface {
	GetPreference(ctx context.Context, requesterID int64) (*matching.PreferenceSnapshot, error)
	Recommend(ctx context.Context, input matching.RecommendInput) (*matching.Recommendation, error)
	RevisitDeclined(ctx context.Context, requesterID int64) (int64, error)
	RespondAsRequester(ctx context.Context, input matching.RespondInput) (*matching.RespondResult, error)
	RespondAsCandidate(ctx context.Context, input matching.RespondInput) (*matching.RespondResult, error)
	UpdateMatch(ctx context.Context, input matching.UpdateMatchInput) (*domain.Match, error)
	DeleteMatches(ctx context.Context, input matching.DeleteMatchesInput) (int64, error)
	RetrieveMatches(ctx context.Context, input matching.RetrieveMatchesInput) ([]domain.MatchSummary, error)
}

// MatchingHandler serves the matching REST endpoints.
type MatchingHandler struct {
	svc matchingService
	log *slog.Logger
}

// NewMatchingHandler creates a MatchingHandler.
func NewMatchingHandler(svc matchingService, logger *slog.Logger) *MatchingHandler {
	return &MatchingHandler{svc: svc, log: logger.With("handler", "matching")}
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type preferenceResponse struct {
	RequesterID     int64      `json:"requester_id"`
	CountA          int        `json:"count_a"`
	CountB          int        `json:"count_b"`
	Raw             []int64    `json:"raw"`
	Normalized      []*float64 `json:"normalized"`
	Initialized     bool       `json:"initialized"`
	MissingCounters int        `json:"missing_counters,omitempty"`
}

type recommendRequest struct {
	FirstPage bool    `json:"first_page"`
	Cursor    int64   `json:"cursor"`
	Remaining []int64 `json:"remaining"`
}

type candidateResponse struct {
	ID          int64    `json:"id"`
	DisplayName string   `json:"display_name"`
	TraitA      []int    `json:"trait_a"`
	TraitB      []int    `json:"trait_b"`
	Distance    *float64 `json:"distance"`
}

type recommendationResponse struct {
	Candidate  *candidateResponse `json:"candidate"`
	Match      *matchResponse     `json:"match"`
	Remaining  []int64            `json:"remaining"`
	Preference []*float64         `json:"preference"`
	Cursor     int64              `json:"cursor"`
	Exhausted  bool               `json:"exhausted"`
	Message    string             `json:"message,omitempty"`
}

type respondRequest struct {
	RequesterID int64  `json:"requester_id"`
	CandidateID int64  `json:"candidate_id"`
	Party       string `json:"party"`
	Response    string `json:"response"`
}

type respondResponse struct {
	Match      matchResponse `json:"match"`
	Preference []*float64    `json:"preference,omitempty"`
}

type updateMatchRequest struct {
	RequesterID       int64   `json:"requester_id"`
	CandidateID       int64   `json:"candidate_id"`
	RequesterApproved *bool   `json:"requester_approved"`
	CandidateApproved *bool   `json:"candidate_approved"`
	State             *string `json:"state"`
}

type deleteMatchesRequest struct {
	IDs    []int64  `json:"ids"`
	States []string `json:"states"`
	Role   string   `json:"role"`
}

type matchResponse struct {
	ID                uuid.UUID `json:"id"`
	RequesterID       int64     `json:"requester_id"`
	CandidateID       int64     `json:"candidate_id"`
	RequesterApproved *bool     `json:"requester_approved"`
	CandidateApproved *bool     `json:"candidate_approved"`
	State             string    `json:"state"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type deletedResponse struct {
	Deleted int64 `json:"deleted"`
}

func toMatchResponse(m domain.Match) matchResponse {
	return matchResponse{
		ID:                m.ID,
		RequesterID:       m.RequesterID,
		CandidateID:       m.CandidateID,
		RequesterApproved: m.RequesterApproved,
		CandidateApproved: m.CandidateApproved,
		State:             m.State.String(),
		UpdatedAt:         m.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// GetPreference handles GET /requesters/{id}/preference.
func (h *MatchingHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	snap, err := h.svc.GetPreference(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, preferenceResponse{
		RequesterID:     snap.RequesterID,
		CountA:          snap.CountA,
		CountB:          snap.CountB,
		Raw:             snap.Raw,
		Normalized:      finiteAll(snap.Normalized),
		Initialized:     snap.Initialized,
		MissingCounters: snap.MissingCounters,
	})
}

// Recommend handles POST /requesters/{id}/recommendation.
// The client echoes back cursor and remaining from the previous response.
func (h *MatchingHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req recommendRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			handleError(h.log, w, r, err)
			return
		}
	}

	rec, err := h.svc.Recommend(r.Context(), matching.RecommendInput{
		RequesterID: id,
		FirstPage:   req.FirstPage,
		Cursor:      req.Cursor,
		Remaining:   req.Remaining,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := recommendationResponse{
		Remaining:  make([]int64, 0, len(rec.Remaining)),
		Preference: finiteAll(rec.Preference),
		Cursor:     rec.Cursor,
		Exhausted:  rec.Exhausted,
		Message:    rec.Message,
	}
	for _, c := range rec.Remaining {
		resp.Remaining = append(resp.Remaining, c.ID())
	}
	if rec.Candidate != nil {
		p := rec.Candidate.Profile
		resp.Candidate = &candidateResponse{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			TraitA:      p.TraitA,
			TraitB:      p.TraitB,
			Distance:    finite(rec.Distance),
		}
	}
	if rec.Match != nil {
		m := toMatchResponse(*rec.Match)
		resp.Match = &m
	}

	writeJSON(w, http.StatusOK, resp)
}

// RevisitDeclined handles POST /requesters/{id}/revisit-declined.
func (h *MatchingHandler) RevisitDeclined(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	n, err := h.svc.RevisitDeclined(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deletedResponse{Deleted: n})
}

// Respond handles POST /matches/respond. Party selects which side answers.
func (h *MatchingHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := matching.RespondInput{
		RequesterID: req.RequesterID,
		CandidateID: req.CandidateID,
		Response:    req.Response,
	}

	party, ok := domain.ParseProfileRole(req.Party)
	if !ok {
		handleError(h.log, w, r, domain.NewValidationError("party", "must be REQUESTER or CANDIDATE"))
		return
	}

	var (
		result *matching.RespondResult
		err    error
	)
	if party == domain.ProfileRoleRequester {
		result, err = h.svc.RespondAsRequester(r.Context(), input)
	} else {
		result, err = h.svc.RespondAsCandidate(r.Context(), input)
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := respondResponse{Match: toMatchResponse(result.Match)}
	if result.Preference != nil {
		resp.Preference = finiteAll(result.Preference)
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateMatch handles PATCH /matches.
func (h *MatchingHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	var req updateMatchRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	m, err := h.svc.UpdateMatch(r.Context(), matching.UpdateMatchInput{
		RequesterID:       req.RequesterID,
		CandidateID:       req.CandidateID,
		RequesterApproved: req.RequesterApproved,
		CandidateApproved: req.CandidateApproved,
		State:             req.State,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMatchResponse(*m))
}

// DeleteMatches handles DELETE /matches.
func (h *MatchingHandler) DeleteMatches(w http.ResponseWriter, r *http.Request) {
	var req deleteMatchesRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	n, err := h.svc.DeleteMatches(r.Context(), matching.DeleteMatchesInput{
		IDs:    req.IDs,
		States: req.States,
		Role:   req.Role,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deletedResponse{Deleted: n})
}

// RetrieveMatches handles GET /profiles/{id}/matches?role=&include_rejected=.
// role defaults to REQUESTER.
func (h *MatchingHandler) RetrieveMatches(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	q := r.URL.Query()
	role := q.Get("role")
	if strings.TrimSpace(role) == "" {
		role = domain.ProfileRoleRequester.String()
	}
	includeRejected := false
	if v := q.Get("include_rejected"); v != "" {
		includeRejected, err = strconv.ParseBool(v)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("include_rejected", "must be a boolean"))
			return
		}
	}

	summaries, err := h.svc.RetrieveMatches(r.Context(), matching.RetrieveMatchesInput{
		ProfileID:       id,
		Role:            role,
		IncludeRejected: includeRejected,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}
