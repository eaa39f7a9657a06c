package app

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/tagmatch-backend/internal/domain"
)

// SeedFile is the YAML document read by `matchctl seed`.
//
//	trait_a:
//	  - {id: 1, name: hiking}
//	trait_b:
//	  - {id: 1, name: go}
//	profiles:
//	  - {type: candidate, name: Ada, trait_a: [1], trait_b: [1]}
type SeedFile struct {
	TraitA   []SeedTag     `yaml:"trait_a"`
	TraitB   []SeedTag     `yaml:"trait_b"`
	Profiles []SeedProfile `yaml:"profiles"`
}

// SeedTag is one taxonomy entry.
type SeedTag struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// SeedProfile is one profile to create.
type SeedProfile struct {
	Type   string `yaml:"type"`
	Name   string `yaml:"name"`
	TraitA []int  `yaml:"trait_a"`
	TraitB []int  `yaml:"trait_b"`
}

// LoadSeedFile reads and validates a seed file.
func LoadSeedFile(path string) (*SeedFile, error) {
	var f SeedFile
	if err := cleanenv.ReadConfig(path, &f); err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that tag IDs of each type are exactly 1..n, since vector
// positions are derived from IDs, and that every profile is well-formed.
func (f *SeedFile) Validate() error {
	var errs []domain.FieldError

	check := func(field string, tags []SeedTag) {
		ids := make([]int, 0, len(tags))
		for _, t := range tags {
			if strings.TrimSpace(t.Name) == "" {
				errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("tag %d has no name", t.ID)})
			}
			ids = append(ids, t.ID)
		}
		slices.Sort(ids)
		for i, id := range ids {
			if id != i+1 {
				errs = append(errs, domain.FieldError{Field: field, Message: "ids must be contiguous from 1 without duplicates"})
				return
			}
		}
	}
	check("trait_a", f.TraitA)
	check("trait_b", f.TraitB)

	for i, p := range f.Profiles {
		field := fmt.Sprintf("profiles[%d]", i)
		if !domain.ProfileType(strings.ToUpper(strings.TrimSpace(p.Type))).IsValid() {
			errs = append(errs, domain.FieldError{Field: field, Message: "type must be candidate or requester"})
		}
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, domain.FieldError{Field: field, Message: "name required"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Tags converts the taxonomy section into domain tags.
func (f *SeedFile) Tags() []domain.Tag {
	tags := make([]domain.Tag, 0, len(f.TraitA)+len(f.TraitB))
	for _, t := range f.TraitA {
		tags = append(tags, domain.Tag{ID: t.ID, Type: domain.TagTypeTraitA, DisplayName: t.Name})
	}
	for _, t := range f.TraitB {
		tags = append(tags, domain.Tag{ID: t.ID, Type: domain.TagTypeTraitB, DisplayName: t.Name})
	}
	return tags
}

// ProfileList converts the profiles section into domain profiles.
func (f *SeedFile) ProfileList() []domain.Profile {
	out := make([]domain.Profile, 0, len(f.Profiles))
	for _, p := range f.Profiles {
		out = append(out, domain.Profile{
			Type:        domain.ProfileType(strings.ToUpper(strings.TrimSpace(p.Type))),
			DisplayName: strings.TrimSpace(p.Name),
			TraitA:      p.TraitA,
			TraitB:      p.TraitB,
		})
	}
	return out
}
