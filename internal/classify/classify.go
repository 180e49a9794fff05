// Package classify turns a batch of imported ledger accounts into classified
// rows. Classification is a pure function of the input rows, the rule store
// and the engagement context; running it twice over the same inputs yields
// the same output.
package classify

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/ledgermap-dev/ledgermap/internal/key"
	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/rules"
)

// Batch classifies every account against the rule store. Accounts whose name
// normalizes to nothing get the invalid sentinel key and Error status;
// accounts no tier matches stay Unmapped with an empty classification. Input
// order is preserved and neither the accounts nor the store are mutated.
func Batch(accounts []model.LedgerAccount, store *rules.Store, ctx model.Context) []model.ClassifiedRow {
	rows := make([]model.ClassifiedRow, 0, len(accounts))
	for _, a := range accounts {
		k := key.Generate(a.Name, a.PrimaryGroup)
		row := model.ClassifiedRow{Key: k, Account: a}
		if !key.IsValid(k) {
			row.Status = model.StatusError
			rows = append(rows, row)
			continue
		}
		if c, ok := store.Resolve(a, ctx); ok {
			row.Class = c
		}
		row.Status = row.Class.DeriveStatus()
		rows = append(rows, row)
	}
	return rows
}

// SplitDormant partitions accounts into active and dormant. An account is
// dormant only when opening, debit, credit and closing are all exactly zero;
// offsetting movement keeps it active.
func SplitDormant(accounts []model.LedgerAccount) (active, dormant []model.LedgerAccount) {
	for _, a := range accounts {
		if a.Dormant() {
			dormant = append(dormant, a)
		} else {
			active = append(active, a)
		}
	}
	return active, dormant
}

// Suggestion pairs a mapped row with its name distance from an unmapped
// account.
type Suggestion struct {
	Key      string
	Name     string
	Class    model.Classification
	Distance int
}

// Suggest returns up to limit mapped rows whose account names sit closest to
// the unmapped account's name by edit distance, nearest first. Ties break on
// name for a stable order.
func Suggest(unmapped model.LedgerAccount, rows []model.ClassifiedRow, limit int) []Suggestion {
	target := key.Normalize(unmapped.Name)
	if target == "" || limit <= 0 {
		return nil
	}

	var out []Suggestion
	for _, r := range rows {
		if r.Status != model.StatusMapped {
			continue
		}
		out = append(out, Suggestion{
			Key:      r.Key,
			Name:     r.Account.Name,
			Class:    r.Class,
			Distance: levenshtein.ComputeDistance(target, key.Normalize(r.Account.Name)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
