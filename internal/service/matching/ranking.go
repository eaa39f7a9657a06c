package matching

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// DistanceStrategy selects the distance formula used for ranking.
type DistanceStrategy string

const (
	// StrategySumSquare is Σ(p+c)^2. It favours candidates whose tags coincide
	// with heavily liked tags, and is the default.
	StrategySumSquare DistanceStrategy = "sum_square"
	// StrategySquaredDifference is Σ(p-c)^2, the squared Euclidean distance.
	StrategySquaredDifference DistanceStrategy = "squared_difference"
)

func (d DistanceStrategy) String() string { return string(d) }

func (d DistanceStrategy) IsValid() bool {
	switch d {
	case StrategySumSquare, StrategySquaredDifference:
		return true
	}
	return false
}

// ParseDistanceStrategy accepts strategy names case-insensitively.
func ParseDistanceStrategy(s string) (DistanceStrategy, error) {
	d := DistanceStrategy(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("unknown distance strategy %q", s)
	}
	return d, nil
}

// Distance computes the distance between a normalized preference vector and
// a candidate tag vector. Positions missing from the shorter vector count as 0.
func Distance(strategy DistanceStrategy, pref []float64, vec domain.TagVector) float64 {
	n := max(len(pref), len(vec))
	var sum float64
	for i := 0; i < n; i++ {
		var p, c float64
		if i < len(pref) {
			p = pref[i]
		}
		if i < len(vec) {
			c = float64(vec[i])
		}
		var d float64
		if strategy == StrategySquaredDifference {
			d = p - c
		} else {
			d = p + c
		}
		sum += d * d
	}
	return sum
}

// Ranked is a candidate with its distance.
type Ranked struct {
	Candidate domain.Candidate
	Distance  float64
}

// Rank orders candidates by ascending distance. Equal distances keep batch order.
func Rank(strategy DistanceStrategy, pref []float64, batch []domain.Candidate) []Ranked {
	ranked := make([]Ranked, len(batch))
	for i, c := range batch {
		ranked[i] = Ranked{Candidate: c, Distance: Distance(strategy, pref, c.Vector)}
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return ranked
}

// withoutCandidate returns batch minus the candidate with the given profile ID.
func withoutCandidate(batch []domain.Candidate, id int64) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(batch))
	for _, c := range batch {
		if c.ID() != id {
			out = append(out, c)
		}
	}
	return out
}
