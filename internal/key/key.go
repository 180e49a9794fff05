// Package key derives the stable composite identity of a ledger account.
// The key is the join identity across imports, overrides and persistence:
// equal (name, group) pairs after normalization always yield the same key.
package key

import "strings"

// Invalid is the sentinel key for rows whose account name normalizes to
// empty. The classifier marks such rows Error rather than classifying them.
const Invalid = "|invalid|"

// Separator joins the normalized name and group parts.
const Separator = "|"

// Generate returns the composite key for an account name and its declared
// primary (or parent) group. Deterministic and pure.
func Generate(accountName, primaryGroup string) string {
	name := Normalize(accountName)
	if name == "" {
		return Invalid
	}
	return name + Separator + Normalize(primaryGroup)
}

// IsValid reports whether k is a usable composite key.
func IsValid(k string) bool {
	return k != "" && k != Invalid
}

// Normalize trims, collapses internal whitespace and case-folds a part.
func Normalize(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// Name returns the normalized account-name part of a key, or "" for an
// invalid key.
func Name(k string) string {
	if !IsValid(k) {
		return ""
	}
	name, _, _ := strings.Cut(k, Separator)
	return name
}

// Group returns the normalized group part of a key, or "" for an invalid key.
func Group(k string) string {
	if !IsValid(k) {
		return ""
	}
	_, group, _ := strings.Cut(k, Separator)
	return group
}
