package matching

import "github.com/heartmarshall/tagmatch-backend/internal/domain"

const (
	MsgNoCandidates     = "no candidates available yet"
	MsgNoMoreCandidates = "no more candidates, check back later"
	MsgScanLimit        = "no new candidates in the scanned pages, continue from the cursor"
)

// PreferenceSnapshot is a requester's preference vector, raw and normalized.
type PreferenceSnapshot struct {
	RequesterID int64
	CountA      int
	CountB      int
	Raw         []int64
	Normalized  []float64
	// Initialized is true when this call created the counters.
	Initialized bool
	// MissingCounters is the number of taxonomy tags with no persisted counter.
	MissingCounters int
}

// CandidatePage is one filtered candidate batch.
// Exhausted reports that paging reached the end; Candidates may still hold
// candidates carried over from unanswered proposals.
type CandidatePage struct {
	Candidates []domain.Candidate
	Cursor     int64
	Exhausted  bool
	Message    string
}

// Selection is the outcome of ranking a batch.
type Selection struct {
	Best      domain.Candidate
	Distance  float64
	Remaining []domain.Candidate
	Match     domain.Match
}

// Recommendation is one step of the recommendation flow. Candidate is nil
// when nothing is left to show; Message then explains why.
type Recommendation struct {
	Candidate  *domain.Candidate
	Distance   float64
	Match      *domain.Match
	Remaining  []domain.Candidate
	Preference []float64
	Cursor     int64
	Exhausted  bool
	Message    string
}

// RespondResult holds the updated record and, after a requester approval,
// the renormalized preference vector.
type RespondResult struct {
	Match      domain.Match
	Preference []float64
}
