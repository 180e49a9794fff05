// Package edit applies manual classification changes to classified rows,
// singly or in bulk. Every successful edit is written back to the rule store
// as a per-ledger override so the decision survives the next import.
package edit

import (
	"fmt"

	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/rules"
	"github.com/ledgermap-dev/ledgermap/internal/taxonomy"
)

// Result reports what an Apply call changed.
type Result struct {
	Updated int
	Skipped []string // keys that were selected but not editable or not found
}

// Apply merges the patch into every selected row, recomputes statuses and
// upserts a per-ledger override for each changed row. Rows in Error status
// have no usable identity and are skipped. The patch is validated against
// the taxonomy per row; an illegal result rejects the whole batch before any
// row or the store is touched.
func Apply(rows []model.ClassifiedRow, keys []string, patch model.ClassificationPatch, store *rules.Store) (Result, error) {
	if patch.IsZero() {
		return Result{}, fmt.Errorf("empty patch")
	}

	selected := make(map[string]bool, len(keys))
	for _, k := range keys {
		selected[k] = true
	}

	// Validate every target first so a bad patch cannot apply halfway.
	byKey := make(map[string]int, len(rows))
	for i, r := range rows {
		if !selected[r.Key] || r.Status == model.StatusError {
			continue
		}
		byKey[r.Key] = i
		next := patch.ApplyTo(r.Class)
		if err := taxonomy.Validate(stripMeta(next)); err != nil {
			return Result{}, fmt.Errorf("edit for %s: %w", r.Key, err)
		}
	}

	var res Result
	for _, k := range keys {
		i, ok := byKey[k]
		if !ok {
			res.Skipped = append(res.Skipped, k)
			continue
		}
		r := rows[i]
		next := patch.ApplyTo(r.Class)
		next.Source = model.SourceManual
		next.RuleID = ""

		if err := store.UpsertOverride(r.Key, next); err != nil {
			return res, fmt.Errorf("writing override for %s: %w", r.Key, err)
		}
		// Read back so the row carries the source the store assigned.
		if c, ok := store.Override(r.Key); ok {
			next = c
		}

		rows[i].Class = next
		rows[i].Status = next.DeriveStatus()
		res.Updated++
	}
	return res, nil
}

func stripMeta(c model.Classification) model.Classification {
	c.Source = ""
	c.RuleID = ""
	return c
}

// UniformPatch inspects the selected rows and returns a patch carrying each
// hierarchy level on which every selected row already agrees. Bulk-edit
// forms seed from it so shared values show up pre-filled. Levels with any
// disagreement stay nil.
func UniformPatch(rows []model.ClassifiedRow, keys []string) model.ClassificationPatch {
	selected := make(map[string]bool, len(keys))
	for _, k := range keys {
		selected[k] = true
	}

	var classes []model.Classification
	for _, r := range rows {
		if selected[r.Key] {
			classes = append(classes, r.Class)
		}
	}
	if len(classes) == 0 {
		return model.ClassificationPatch{}
	}

	uniform := func(get func(model.Classification) string) *string {
		v := get(classes[0])
		for _, c := range classes[1:] {
			if get(c) != v {
				return nil
			}
		}
		return &v
	}

	return model.ClassificationPatch{
		H1: uniform(func(c model.Classification) string { return c.H1 }),
		H2: uniform(func(c model.Classification) string { return c.H2 }),
		H3: uniform(func(c model.Classification) string { return c.H3 }),
		H4: uniform(func(c model.Classification) string { return c.H4 }),
		H5: uniform(func(c model.Classification) string { return c.H5 }),
	}
}
