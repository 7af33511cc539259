package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ComputeOptions alter which stat combinations are considered when computing filters.
// Pointer-free so that yaml files may set only some keys on top of DefaultComputeOptions.
type ComputeOptions struct {
	// SkipCritBuilds drops builds that require both cr and cd (the game auto-locks those).
	SkipCritBuilds          bool `yaml:"skip_crit_builds"`
	ExpandElementalGoblet   bool `yaml:"expand_elemental_goblet"`
	ExpandCritCirclet       bool `yaml:"expand_crit_circlet"`
	MergeSingleFlexVariants bool `yaml:"merge_single_flex_variants"`
	FindRigidCommonSubset   bool `yaml:"find_rigid_common_subset"`
}

func DefaultComputeOptions() ComputeOptions {
	return ComputeOptions{
		SkipCritBuilds:          false,
		ExpandElementalGoblet:   true,
		ExpandCritCirclet:       true,
		MergeSingleFlexVariants: true,
		FindRigidCommonSubset:   true,
	}
}

func (o *ComputeOptions) UnmarshalYAML(value *yaml.Node) error {
	err := checkKeys(value, "compute", map[string]struct{}{
		"skip_crit_builds":           {},
		"expand_elemental_goblet":    {},
		"expand_crit_circlet":        {},
		"merge_single_flex_variants": {},
		"find_rigid_common_subset":   {},
	})
	if err != nil {
		return err
	}
	type raw ComputeOptions
	tmp := raw(DefaultComputeOptions())
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*o = ComputeOptions(tmp)
	return nil
}

// SortDirection is tri-state; SortOff keeps input order.
type SortDirection string

const (
	SortOff  SortDirection = "off"
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case SortOff, SortAsc, SortDesc:
		return d, nil
	case "":
		return SortOff, nil
	}
	return SortOff, fmt.Errorf("unsupported sort direction %q (supported: asc, desc, off)", s)
}

func (d *SortDirection) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseSortDirection(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Tier string

var Tiers = []Tier{"S", "A", "B", "C", "D", "Pool"}

type TierPlacement struct {
	Tier     Tier `yaml:"tier"`
	Position int  `yaml:"position"`
}

// TierAssignment maps a character id to its tier placement.
type TierAssignment map[string]TierPlacement
