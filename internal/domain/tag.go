package domain

import (
	"cmp"
	"slices"
)

// Tag is an entry of the fixed taxonomy. ID is 1-based and unique within its Type.
type Tag struct {
	ID          int     `json:"id"`
	Type        TagType `json:"type"`
	DisplayName string  `json:"display_name"`
}

// Taxonomy is the read-only catalog of tags. Combined vectors have length
// CountA+CountB: TraitA tags occupy [0, CountA), TraitB tags [CountA, CountA+CountB),
// each ordered by ID-1.
type Taxonomy struct {
	CountA int   `json:"count_a"`
	CountB int   `json:"count_b"`
	Tags   []Tag `json:"tags"`
}

// NewTaxonomy builds a Taxonomy from an unordered tag list. Tags with an
// unknown type are ignored. Counts are the number of tags per type.
func NewTaxonomy(tags []Tag) Taxonomy {
	sorted := make([]Tag, 0, len(tags))
	var countA, countB int
	for _, t := range tags {
		switch t.Type {
		case TagTypeTraitA:
			countA++
		case TagTypeTraitB:
			countB++
		default:
			continue
		}
		sorted = append(sorted, t)
	}

	slices.SortFunc(sorted, func(a, b Tag) int {
		if a.Type != b.Type {
			if a.Type == TagTypeTraitA {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return Taxonomy{CountA: countA, CountB: countB, Tags: sorted}
}

// Size returns the length of a combined tag vector.
func (t Taxonomy) Size() int { return t.CountA + t.CountB }

// Index maps a tag reference to its combined vector position.
// ok is false when the reference is outside the taxonomy range.
func (t Taxonomy) Index(tagType TagType, tagID int) (int, bool) {
	switch tagType {
	case TagTypeTraitA:
		if tagID < 1 || tagID > t.CountA {
			return 0, false
		}
		return tagID - 1, true
	case TagTypeTraitB:
		if tagID < 1 || tagID > t.CountB {
			return 0, false
		}
		return t.CountA + tagID - 1, true
	}
	return 0, false
}

// TagAt is the inverse of Index.
func (t Taxonomy) TagAt(index int) (TagType, int, bool) {
	switch {
	case index < 0 || index >= t.Size():
		return "", 0, false
	case index < t.CountA:
		return TagTypeTraitA, index + 1, true
	default:
		return TagTypeTraitB, index - t.CountA + 1, true
	}
}
