package domain

// TagVector is a dense 0/1 vector over the combined taxonomy.
type TagVector []int

// TagRef is a sparse reference to a tag that failed to map into a vector.
type TagRef struct {
	Type TagType
	ID   int
}

// Densify converts sparse tag references into a TagVector of length tax.Size().
// References outside the taxonomy are skipped and returned as dropped so the
// caller can report them; they never fail the conversion.
func Densify(tax Taxonomy, traitA, traitB []int) (TagVector, []TagRef) {
	vec := make(TagVector, tax.Size())
	var dropped []TagRef

	set := func(tagType TagType, refs []int) {
		for _, id := range refs {
			idx, ok := tax.Index(tagType, id)
			if !ok {
				dropped = append(dropped, TagRef{Type: tagType, ID: id})
				continue
			}
			vec[idx] = 1
		}
	}
	set(TagTypeTraitA, traitA)
	set(TagTypeTraitB, traitB)

	return vec, dropped
}

// Normalize min-max scales raw like-counts into [0,1].
//
// An all-zero vector is returned as zeros ("no preference yet"). When every
// entry is equal and non-zero the result is NaN at every position; callers
// that rank with it get NaN distances.
func Normalize(raw []int64) []float64 {
	out := make([]float64, len(raw))
	if len(raw) == 0 {
		return out
	}

	allZero := true
	lo, hi := raw[0], raw[0]
	for _, x := range raw {
		if x != 0 {
			allZero = false
		}
		lo = min(lo, x)
		hi = max(hi, x)
	}
	if allZero {
		return out
	}

	span := float64(hi - lo)
	for i, x := range raw {
		out[i] = float64(x-lo) / span
	}
	return out
}
