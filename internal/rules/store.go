package rules

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/ledgermap-dev/ledgermap/internal/key"
	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/taxonomy"
)

// Store is the ordered rule collection for one engagement. It is a plain
// value owned by the engagement session and passed by handle to the
// classifier; nothing in this package keeps package-level rule state.
type Store struct {
	overrides map[string]model.Classification // by composite key
	keywords  []KeywordRule                   // kept sorted by priority desc
	groups    map[string]GroupRule            // by normalized group
	defaults  map[string]DefaultRule          // by normalized group

	conflicts []Conflict
}

// NewStore returns a store seeded with the built-in Schedule III defaults.
func NewStore() *Store {
	s := NewEmptyStore()
	for _, d := range scheduleIIIDefaults() {
		s.defaults[key.Normalize(d.Group)] = d
	}
	for _, k := range seedKeywordRules() {
		s.keywords = append(s.keywords, k)
	}
	s.sortKeywords()
	return s
}

// NewEmptyStore returns a store with no rules at all, not even the
// built-in default seed.
func NewEmptyStore() *Store {
	return &Store{
		overrides: make(map[string]model.Classification),
		groups:    make(map[string]GroupRule),
		defaults:  make(map[string]DefaultRule),
	}
}

// Resolve tries the four rule tiers in precedence order and returns the
// first match. ok is false when no tier matched; the caller decides to mark
// the row Unmapped rather than guess.
func (s *Store) Resolve(acct model.LedgerAccount, ctx model.Context) (model.Classification, bool) {
	k := key.Generate(acct.Name, acct.PrimaryGroup)
	if key.IsValid(k) {
		if c, ok := s.overrides[k]; ok {
			c.Source = model.SourceOverride
			return c, true
		}
	}

	for _, r := range s.keywords {
		if r.Matches(acct.Name, acct.ParentGroup) {
			c := r.Class
			c.Source = model.SourceKeyword
			c.RuleID = r.ID
			return c, true
		}
	}

	group := key.Normalize(acct.PrimaryGroup)
	if r, ok := s.groups[group]; ok {
		c := r.Class
		c.Source = model.SourceGroup
		c.RuleID = r.ID
		return c, true
	}

	if d, ok := s.defaults[group]; ok {
		c := d.resolve(acct, ctx)
		c.Source = model.SourceDefault
		return c, true
	}

	return model.Classification{}, false
}

// UpsertOverride installs a per-ledger override for a composite key. The
// classification is validated against the taxonomy at write time.
func (s *Store) UpsertOverride(compositeKey string, c model.Classification) error {
	if !key.IsValid(compositeKey) {
		return fmt.Errorf("invalid composite key %q", compositeKey)
	}
	if err := taxonomy.Validate(c); err != nil {
		return fmt.Errorf("override for %s: %w", compositeKey, err)
	}
	c.Source = model.SourceOverride
	s.overrides[compositeKey] = c
	return nil
}

// DeleteOverride removes a per-ledger override if present.
func (s *Store) DeleteOverride(compositeKey string) {
	delete(s.overrides, compositeKey)
}

// Override returns the override for a key, if any.
func (s *Store) Override(compositeKey string) (model.Classification, bool) {
	c, ok := s.overrides[compositeKey]
	return c, ok
}

// Overrides returns a copy of all overrides keyed by composite key.
func (s *Store) Overrides() map[string]model.Classification {
	out := make(map[string]model.Classification, len(s.overrides))
	for k, v := range s.overrides {
		out[k] = v
	}
	return out
}

// AddKeywordRule installs or replaces a keyword rule. A same-pattern rule
// with a different result is overwritten last-write-wins and the overwrite
// recorded as a conflict.
func (s *Store) AddKeywordRule(r KeywordRule) error {
	if key.Normalize(r.Pattern) == "" {
		return fmt.Errorf("keyword rule: empty pattern")
	}
	if err := taxonomy.Validate(r.Class); err != nil {
		return fmt.Errorf("keyword rule %q: %w", r.Pattern, err)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Match == "" {
		r.Match = MatchContains
	}

	for i, existing := range s.keywords {
		if key.Normalize(existing.Pattern) == key.Normalize(r.Pattern) && existing.Match == r.Match {
			if existing.Class != r.Class {
				s.conflicts = append(s.conflicts, Conflict{
					Tier:      "keyword",
					Condition: r.Pattern,
					Old:       existing.Class,
					New:       r.Class,
				})
			}
			s.keywords[i] = r
			s.sortKeywords()
			return nil
		}
	}

	s.keywords = append(s.keywords, r)
	s.sortKeywords()
	return nil
}

// AddGroupRule installs or replaces an exact primary-group rule, recording a
// conflict when it overwrites a different result for the same group.
func (s *Store) AddGroupRule(r GroupRule) error {
	group := key.Normalize(r.Group)
	if group == "" {
		return fmt.Errorf("group rule: empty group")
	}
	if err := taxonomy.Validate(r.Class); err != nil {
		return fmt.Errorf("group rule %q: %w", r.Group, err)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.Group = group

	if existing, ok := s.groups[group]; ok && existing.Class != r.Class {
		s.conflicts = append(s.conflicts, Conflict{
			Tier:      "group",
			Condition: r.Group,
			Old:       existing.Class,
			New:       r.Class,
		})
	}
	s.groups[group] = r
	return nil
}

// DeleteKeywordRule removes the keyword rule with the given ID.
func (s *Store) DeleteKeywordRule(id string) bool {
	for i, r := range s.keywords {
		if r.ID == id {
			s.keywords = append(s.keywords[:i], s.keywords[i+1:]...)
			return true
		}
	}
	return false
}

// DeleteGroupRule removes the group rule for a primary group.
func (s *Store) DeleteGroupRule(group string) bool {
	g := key.Normalize(group)
	if _, ok := s.groups[g]; !ok {
		return false
	}
	delete(s.groups, g)
	return true
}

// KeywordRules returns the keyword rules in priority order.
func (s *Store) KeywordRules() []KeywordRule {
	out := make([]KeywordRule, len(s.keywords))
	copy(out, s.keywords)
	return out
}

// GroupRules returns the group rules sorted by group name.
func (s *Store) GroupRules() []GroupRule {
	out := make([]GroupRule, 0, len(s.groups))
	for _, r := range s.groups {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}

// Clone returns an independent copy of the store. Trial imports and edits
// run against a clone so a failure leaves the original untouched. Pending
// conflicts are not copied.
func (s *Store) Clone() *Store {
	c := NewEmptyStore()
	for k, v := range s.overrides {
		c.overrides[k] = v
	}
	c.keywords = append(c.keywords, s.keywords...)
	for k, v := range s.groups {
		c.groups[k] = v
	}
	for k, v := range s.defaults {
		c.defaults[k] = v
	}
	return c
}

// Conflicts drains and returns the overwrites recorded since the last call.
func (s *Store) Conflicts() []Conflict {
	out := s.conflicts
	s.conflicts = nil
	return out
}

func (s *Store) sortKeywords() {
	sort.SliceStable(s.keywords, func(i, j int) bool {
		return s.keywords[i].Priority > s.keywords[j].Priority
	})
}
