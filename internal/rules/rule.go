// Package rules holds the classification rule store for one audit
// engagement. Four rule tiers resolve in fixed precedence order: per-ledger
// overrides, keyword rules, exact group rules, then the built-in Schedule III
// defaults. Rules are data, mutable at runtime, and scoped to the engagement
// that owns the store.
package rules

import (
	"strings"

	"github.com/ledgermap-dev/ledgermap/internal/key"
	"github.com/ledgermap-dev/ledgermap/internal/model"
)

// MatchType selects how a keyword pattern is compared against a name.
type MatchType string

const (
	MatchContains   MatchType = "contains"
	MatchStartsWith MatchType = "starts-with"
	MatchEndsWith   MatchType = "ends-with"
)

// KeywordRule classifies accounts whose name or parent group matches a
// keyword pattern. Higher priority wins; exclude keywords veto a match.
type KeywordRule struct {
	ID       string
	Pattern  string
	Match    MatchType
	Exclude  []string
	Priority int
	Class    model.Classification
}

// Matches reports whether the rule applies to an account name or its parent
// group. Comparison happens on normalized text.
func (r KeywordRule) Matches(accountName, parentGroup string) bool {
	name := key.Normalize(accountName)
	parent := key.Normalize(parentGroup)
	if !r.matchesText(name) && !r.matchesText(parent) {
		return false
	}
	for _, ex := range r.Exclude {
		needle := key.Normalize(ex)
		if needle == "" {
			continue
		}
		if strings.Contains(name, needle) || strings.Contains(parent, needle) {
			return false
		}
	}
	return true
}

func (r KeywordRule) matchesText(text string) bool {
	if text == "" {
		return false
	}
	pattern := key.Normalize(r.Pattern)
	if pattern == "" {
		return false
	}
	switch r.Match {
	case MatchStartsWith:
		return strings.HasPrefix(text, pattern)
	case MatchEndsWith:
		return strings.HasSuffix(text, pattern)
	default:
		return strings.Contains(text, pattern)
	}
}

// GroupRule classifies accounts by exact primary-group match.
type GroupRule struct {
	ID    string
	Group string // normalized at insert time
	Class model.Classification
}

// DefaultRule is one entry of the built-in Schedule III seed, keyed by
// primary group and parameterized by business type, constitution and
// balance sign.
type DefaultRule struct {
	Group string
	Class model.Classification

	// Negative substitutes when the closing balance is a credit
	// (e.g. a bank account in overdraft reclassifies to a liability).
	Negative *model.Classification

	// Trading and Manufacturing substitute per business type.
	Trading       *model.Classification
	Manufacturing *model.Classification

	// Partnership and Proprietor substitute per constitution for capital
	// heads; the base Class covers companies.
	Partnership *model.Classification
	Proprietor  *model.Classification
}

// resolve picks the variant of a default rule that applies to an account in
// the given context.
func (d DefaultRule) resolve(acct model.LedgerAccount, ctx model.Context) model.Classification {
	switch {
	case d.Trading != nil && ctx.BusinessType == model.BusinessTrading:
		return *d.Trading
	case d.Manufacturing != nil && ctx.BusinessType == model.BusinessManufacturing:
		return *d.Manufacturing
	case d.Partnership != nil && ctx.IsPartnershipLike():
		return *d.Partnership
	case d.Proprietor != nil && ctx.Constitution != model.ConstitutionCompany && ctx.Constitution != "":
		return *d.Proprietor
	case d.Negative != nil && acct.Closing.Sign() < 0:
		return *d.Negative
	default:
		return d.Class
	}
}

// Conflict records a same-tier overwrite: two rules claimed the same
// condition value with different results. Authoring is last-write-wins, but
// the overwrite is reported rather than silent.
type Conflict struct {
	Tier      string // "keyword" or "group"
	Condition string
	Old       model.Classification
	New       model.Classification
}
