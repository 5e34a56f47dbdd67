// Package decode translates raw sound-bank cells into typed patch fields.
//
// The historical importer existed as three near-identical scripts, one per
// revision of the bank mapping. They are collapsed here into one decoder set
// parameterized by an explicit Schema value, so the behavioral differences
// between revisions stay selectable instead of living in divergent copies.
package decode

import (
	"fmt"
	"strings"
)

// Schema selects one revision of the bank mapping.
type Schema int

const (
	// SchemaV1 is the earliest revision: every envelope "max" sentinel
	// resolves to -1.0, and identifier normalization only lowercases and
	// hyphenates spaces.
	SchemaV1 Schema = iota + 1

	// SchemaV2 resolves "max" per envelope stage and extends normalization
	// to strip commas and map slashes to hyphens.
	SchemaV2

	// SchemaV3 is the latest revision: SchemaV2 plus the fixed row-exclusion
	// policy and the one irregular depth token special case.
	SchemaV3
)

// SchemaLatest is the default for new imports.
const SchemaLatest = SchemaV3

// ParseSchema parses a schema revision name such as "v3" or "3".
func ParseSchema(s string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1", "1":
		return SchemaV1, nil
	case "v2", "2":
		return SchemaV2, nil
	case "v3", "3", "latest":
		return SchemaV3, nil
	default:
		return 0, fmt.Errorf("unknown schema revision %q", s)
	}
}

func (s Schema) String() string {
	switch s {
	case SchemaV1:
		return "v1"
	case SchemaV2:
		return "v2"
	case SchemaV3:
		return "v3"
	default:
		return fmt.Sprintf("Schema(%d)", int(s))
	}
}

// SchemaNames lists the accepted revision names, oldest first.
func SchemaNames() []string {
	return []string{"v1", "v2", "v3"}
}

// ExcludesRows reports whether this revision carries the fixed row-exclusion
// policy (annotation rows and the known-defective row id).
func (s Schema) ExcludesRows() bool {
	return s >= SchemaV3
}

// specialCasesDepth reports whether the irregular "10/17%" depth token is
// rewritten before parsing.
func (s Schema) specialCasesDepth() bool {
	return s >= SchemaV3
}
