package rules

import "github.com/ledgermap-dev/ledgermap/internal/model"

// Snapshot is the persistable state of a store: overrides, keyword rules and
// group rules. Keyword rules include the seed so deleting or reprioritizing
// one sticks across sessions; the group default seed is code-shipped and
// never saved.
type Snapshot struct {
	Overrides map[string]model.Classification `json:"overrides,omitempty"`
	Keywords  []KeywordRule                   `json:"keywords,omitempty"`
	Groups    []GroupRule                     `json:"groups,omitempty"`
}

// Snapshot captures the authored rules for persistence.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Overrides: s.Overrides(),
		Keywords:  s.KeywordRules(),
		Groups:    s.GroupRules(),
	}
}

// Restore replaces the overrides, keyword and group rules with a snapshot's
// contents. The default seed is untouched, so a restored store still
// resolves groups no authored rule covers.
func (s *Store) Restore(snap Snapshot) {
	s.overrides = make(map[string]model.Classification, len(snap.Overrides))
	for k, v := range snap.Overrides {
		s.overrides[k] = v
	}
	s.keywords = append([]KeywordRule(nil), snap.Keywords...)
	s.sortKeywords()
	s.groups = make(map[string]GroupRule, len(snap.Groups))
	for _, g := range snap.Groups {
		s.groups[g.Group] = g
	}
}
