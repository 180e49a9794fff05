package model

// Classification is a five-level financial-statement assignment.
// H1..H4 are drawn from the cascading taxonomy; H5 is free-text detail.
type Classification struct {
	H1 string
	H2 string
	H3 string
	H4 string
	H5 string
	// Source records which rule tier produced the assignment, for the audit
	// trail. Empty for rows that were never matched.
	Source RuleSource
	RuleID string
}

// RuleSource identifies the rule tier that produced a classification.
type RuleSource string

const (
	SourceOverride RuleSource = "override"
	SourceKeyword  RuleSource = "keyword"
	SourceGroup    RuleSource = "group"
	SourceDefault  RuleSource = "default"
	SourceManual   RuleSource = "manual"
)

// Empty reports whether no level is populated.
func (c Classification) Empty() bool {
	return c.H1 == "" && c.H2 == "" && c.H3 == "" && c.H4 == "" && c.H5 == ""
}

// DeriveStatus computes the row status from the populated levels.
// A row is Mapped only when both H1 and H2 are set.
func (c Classification) DeriveStatus() Status {
	if c.H1 != "" && c.H2 != "" {
		return StatusMapped
	}
	return StatusUnmapped
}

// ClassifiedRow is a ledger account joined with its classification.
// This is the unit stored, filtered, sorted and exported.
type ClassifiedRow struct {
	Key     string // composite key; the join identity across imports
	Account LedgerAccount
	Class   Classification
	Status  Status
}

// ClassificationPatch is a partial update to a Classification.
// Nil fields are left untouched; non-nil fields overwrite.
type ClassificationPatch struct {
	H1 *string
	H2 *string
	H3 *string
	H4 *string
	H5 *string
}

// IsZero reports whether the patch sets nothing.
func (p ClassificationPatch) IsZero() bool {
	return p.H1 == nil && p.H2 == nil && p.H3 == nil && p.H4 == nil && p.H5 == nil
}

// ApplyTo merges the patch into a classification, returning the result.
func (p ClassificationPatch) ApplyTo(c Classification) Classification {
	if p.H1 != nil {
		c.H1 = *p.H1
	}
	if p.H2 != nil {
		c.H2 = *p.H2
	}
	if p.H3 != nil {
		c.H3 = *p.H3
	}
	if p.H4 != nil {
		c.H4 = *p.H4
	}
	if p.H5 != nil {
		c.H5 = *p.H5
	}
	return c
}
