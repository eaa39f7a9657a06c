package domain

import "time"

// Profile is a participant of either population. Tag references are sparse;
// the dense vector is derived with Densify and never stored.
type Profile struct {
	ID          int64       `json:"id"`
	Type        ProfileType `json:"type"`
	DisplayName string      `json:"display_name"`
	TraitA      []int       `json:"trait_a"`
	TraitB      []int       `json:"trait_b"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Candidate is a profile prepared for ranking.
type Candidate struct {
	Profile Profile   `json:"profile"`
	Vector  TagVector `json:"vector"`
}

// ID is a shortcut for Profile.ID.
func (c Candidate) ID() int64 { return c.Profile.ID }
