// Package report derives summaries from a classified set: status counts,
// balance totals, filtered views and the balance-anomaly exception report.
// Everything here is read-only over the rows it is given.
package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgermap-dev/ledgermap/internal/key"
	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/nature"
)

// DefaultTolerance is the absolute amount within which a trial balance is
// considered to net to zero.
var DefaultTolerance = decimal.RequireFromString("0.01")

// Summary totals a classified set. Error rows are counted separately,
// excluded from the mapped/unmapped split and from the monetary totals:
// a row without a usable identity cannot vouch for its figures, so it
// must not tip the balance check.
type Summary struct {
	Total    int
	Mapped   int
	Unmapped int
	Errors   int

	OpeningTotal decimal.Decimal
	DebitTotal   decimal.Decimal
	CreditTotal  decimal.Decimal
	ClosingTotal decimal.Decimal
	Balanced     bool
}

// Summarize computes counts and totals over the rows. The balance check
// treats any closing total within tolerance of zero as balanced.
func Summarize(rows []model.ClassifiedRow, tolerance decimal.Decimal) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		switch r.Status {
		case model.StatusMapped:
			s.Mapped++
		case model.StatusError:
			s.Errors++
			continue
		default:
			s.Unmapped++
		}
		s.OpeningTotal = s.OpeningTotal.Add(r.Account.Opening)
		s.DebitTotal = s.DebitTotal.Add(r.Account.DebitTotal)
		s.CreditTotal = s.CreditTotal.Add(r.Account.CreditTotal)
		s.ClosingTotal = s.ClosingTotal.Add(r.Account.Closing)
	}
	s.Balanced = s.ClosingTotal.Abs().LessThanOrEqual(tolerance)
	return s
}

// Filter narrows a classified set. Zero-valued fields match everything.
type Filter struct {
	Status model.Status
	H1     string
	H2     string
	H3     string
	// Text matches against account name and primary group, normalized.
	Text string
}

// Apply returns the rows the filter keeps, preserving input order.
func (f Filter) Apply(rows []model.ClassifiedRow) []model.ClassifiedRow {
	needle := key.Normalize(f.Text)

	var out []model.ClassifiedRow
	for _, r := range rows {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.H1 != "" && r.Class.H1 != f.H1 {
			continue
		}
		if f.H2 != "" && r.Class.H2 != f.H2 {
			continue
		}
		if f.H3 != "" && r.Class.H3 != f.H3 {
			continue
		}
		if needle != "" &&
			!strings.Contains(key.Normalize(r.Account.Name), needle) &&
			!strings.Contains(key.Normalize(r.Account.PrimaryGroup), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortBy is a row ordering for report output.
type SortBy string

const (
	SortByName    SortBy = "name"
	SortByGroup   SortBy = "group"
	SortByClosing SortBy = "closing" // largest absolute balance first
	SortByStatus  SortBy = "status"
)

// Sort orders rows without mutating the input.
func Sort(rows []model.ClassifiedRow, by SortBy) []model.ClassifiedRow {
	out := make([]model.ClassifiedRow, len(rows))
	copy(out, rows)

	less := func(i, j int) bool { return out[i].Account.Name < out[j].Account.Name }
	switch by {
	case SortByGroup:
		less = func(i, j int) bool {
			if out[i].Account.PrimaryGroup != out[j].Account.PrimaryGroup {
				return out[i].Account.PrimaryGroup < out[j].Account.PrimaryGroup
			}
			return out[i].Account.Name < out[j].Account.Name
		}
	case SortByClosing:
		less = func(i, j int) bool {
			a, b := out[i].Account.Closing.Abs(), out[j].Account.Closing.Abs()
			if !a.Equal(b) {
				return a.GreaterThan(b)
			}
			return out[i].Account.Name < out[j].Account.Name
		}
	case SortByStatus:
		rank := map[model.Status]int{model.StatusError: 0, model.StatusUnmapped: 1, model.StatusMapped: 2}
		less = func(i, j int) bool {
			if rank[out[i].Status] != rank[out[j].Status] {
				return rank[out[i].Status] < rank[out[j].Status]
			}
			return out[i].Account.Name < out[j].Account.Name
		}
	}
	sort.SliceStable(out, less)
	return out
}

// Anomaly is one row whose closing balance sits on the opposite side of its
// group's accounting nature, e.g. a receivable in credit.
type Anomaly struct {
	Row      model.ClassifiedRow
	Expected model.BalanceSign
	Actual   model.BalanceSign
	Bucket   nature.Bucket
}

// Exceptions returns the balance anomalies in a classified set, largest
// absolute balance first. Groups whose nature is unknown are skipped rather
// than guessed at; dormant and error rows never flag.
func Exceptions(rows []model.ClassifiedRow) []Anomaly {
	var out []Anomaly
	for _, r := range rows {
		if r.Status == model.StatusError || r.Account.Dormant() {
			continue
		}
		res := nature.Resolve(r.Account.PrimaryGroup)
		if !res.Confident {
			continue
		}
		actual := r.Account.ActualSign()
		if actual == res.Expected {
			continue
		}
		out = append(out, Anomaly{Row: r, Expected: res.Expected, Actual: actual, Bucket: res.Bucket})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Row.Account.Closing.Abs(), out[j].Row.Account.Closing.Abs()
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return out[i].Row.Account.Name < out[j].Row.Account.Name
	})
	return out
}
