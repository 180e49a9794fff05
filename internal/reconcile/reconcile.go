// Package reconcile merges a freshly classified import with the rows already
// held for an engagement. Fresh figures always win; classification work done
// on the previous batch survives unless a per-ledger override spoke for the
// fresh row.
package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledgermap-dev/ledgermap/internal/model"
)

// KeyCollisionError reports composite keys that appeared more than once in a
// fresh batch. Duplicate keys make the merge ambiguous, so the whole batch is
// rejected.
type KeyCollisionError struct {
	Keys []string
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("duplicate composite keys in batch: %s", strings.Join(e.Keys, ", "))
}

// Merge folds a fresh batch over the previous rows. For keys in both, the
// fresh account figures replace the old ones; the previous classification is
// kept unless the fresh row was resolved by a per-ledger override. Keys only
// in the previous batch are dropped as stale. Output follows fresh batch
// order.
func Merge(previous, fresh []model.ClassifiedRow) ([]model.ClassifiedRow, error) {
	if dup := duplicateKeys(fresh); len(dup) > 0 {
		return nil, &KeyCollisionError{Keys: dup}
	}

	prior := make(map[string]model.ClassifiedRow, len(previous))
	for _, r := range previous {
		prior[r.Key] = r
	}

	out := make([]model.ClassifiedRow, 0, len(fresh))
	for _, r := range fresh {
		if old, ok := prior[r.Key]; ok {
			if r.Class.Source != model.SourceOverride && !old.Class.Empty() {
				r.Class = old.Class
				r.Status = r.Class.DeriveStatus()
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// duplicateKeys returns the valid keys occurring more than once, sorted.
// The invalid sentinel key may repeat freely; unkeyable rows are reported
// row by row, not as collisions with each other.
func duplicateKeys(rows []model.ClassifiedRow) []string {
	seen := make(map[string]int, len(rows))
	for _, r := range rows {
		if r.Status == model.StatusError {
			continue
		}
		seen[r.Key]++
	}

	var dup []string
	for k, n := range seen {
		if n > 1 {
			dup = append(dup, k)
		}
	}
	sort.Strings(dup)
	return dup
}
