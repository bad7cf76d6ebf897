// Package lint is the rule framework: lint metadata, the pass
// interfaces for both tiers, the registry with its dispatch tables, and
// the visitors that drive registered passes over the syntax tree and the
// lowered module.
package lint

import (
	"sollint/internal/diag"
)

// Tier says which representation a lint inspects.
type Tier uint8

const (
	// TierEarly lints run on the unresolved syntax tree.
	TierEarly Tier = iota
	// TierLate lints run on the lowered, symbol-resolved module.
	TierLate
)

func (t Tier) String() string {
	if t == TierLate {
		return "late"
	}
	return "early"
}

// Lint is the static metadata of one rule. Instances are declared once at
// registration and never mutated.
type Lint struct {
	// ID is the stable rule identifier, unique across the registry.
	ID diag.Code
	// Description is the one-line human summary.
	Description string
	// Severity is the default severity of every diagnostic the rule emits.
	Severity diag.Severity
	// HelpLink optionally points at longer documentation.
	HelpLink string
	Tier     Tier
}
