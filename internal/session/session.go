// Package session ties one engagement's state together: its configuration,
// rule store, classified rows and database handle. Commands talk to a
// Session; everything below it stays pure.
package session

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgermap-dev/ledgermap/internal/auditlog"
	"github.com/ledgermap-dev/ledgermap/internal/classify"
	"github.com/ledgermap-dev/ledgermap/internal/config"
	"github.com/ledgermap-dev/ledgermap/internal/edit"
	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/reconcile"
	"github.com/ledgermap-dev/ledgermap/internal/report"
	"github.com/ledgermap-dev/ledgermap/internal/rules"
	"github.com/ledgermap-dev/ledgermap/internal/store"
)

// Session is an open engagement workspace.
type Session struct {
	workspace  string
	cfg        *config.Config
	db         *store.DB
	engagement string
	rules      *rules.Store
	rows       []model.ClassifiedRow
	tolerance  decimal.Decimal

	now func() time.Time
}

// Open loads the workspace config, opens the engagement database and pulls
// the saved rows and rules for the configured engagement.
func Open(workspace string) (*Session, error) {
	cfg, err := config.Load(filepath.Join(workspace, config.FileName))
	if err != nil {
		return nil, err
	}
	if cfg.Engagement.ID == "" {
		return nil, fmt.Errorf("config has no engagement id; run init first")
	}

	db, err := store.Open(filepath.Join(workspace, cfg.Database.Path))
	if err != nil {
		return nil, err
	}

	tolerance := report.DefaultTolerance
	if cfg.Thresholds.BalanceTolerance != "" {
		tolerance, err = decimal.NewFromString(cfg.Thresholds.BalanceTolerance)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("parsing balance tolerance: %w", err)
		}
	}

	s := &Session{
		workspace: workspace,
		cfg:       cfg,
		db:        db,
		tolerance: tolerance,
		now:       time.Now,
	}
	if err := s.load(cfg.Engagement.ID); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// load replaces all in-memory state with the named engagement's saved state.
func (s *Session) load(engagement string) error {
	rows, err := s.db.LoadRows(engagement)
	if err != nil {
		return err
	}

	rs := rules.NewStore()
	if snap, ok, err := s.db.LoadRules(engagement); err != nil {
		return err
	} else if ok {
		rs.Restore(snap)
	}

	s.engagement = engagement
	s.rows = rows
	s.rules = rs
	return nil
}

// Close releases the database.
func (s *Session) Close() error {
	return s.db.Close()
}

// Engagement returns the active engagement id.
func (s *Session) Engagement() string { return s.engagement }

// Config returns the workspace configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Context returns the classification context from the config.
func (s *Session) Context() model.Context { return s.cfg.Context() }

// Tolerance returns the balance tolerance from the config.
func (s *Session) Tolerance() decimal.Decimal { return s.tolerance }

// Rows returns the held classified set.
func (s *Session) Rows() []model.ClassifiedRow { return s.rows }

// Rules returns the engagement's rule store.
func (s *Session) Rules() *rules.Store { return s.rules }

// ImportStats describes one import run.
type ImportStats struct {
	Imported int
	Dormant  int
	Summary  report.Summary
}

// ImportAndClassify runs a raw batch through the pipeline: dormant filtering,
// classification, reconciliation against the held set, then persistence. On
// any failure the held rows are left exactly as they were.
func (s *Session) ImportAndClassify(accounts []model.LedgerAccount, source string) (ImportStats, error) {
	active, dormant := classify.SplitDormant(accounts)
	fresh := classify.Batch(active, s.rules, s.Context())

	merged, err := reconcile.Merge(s.rows, fresh)
	if err != nil {
		return ImportStats{}, err
	}

	if err := s.db.SaveRows(s.engagement, merged); err != nil {
		return ImportStats{}, err
	}
	s.rows = merged

	stats := ImportStats{
		Imported: len(active),
		Dormant:  len(dormant),
		Summary:  report.Summarize(merged, s.tolerance),
	}
	s.log(auditlog.ActionImport, source,
		fmt.Sprintf("%d rows imported, %d dormant skipped, %d mapped, %d unmapped, %d errors",
			stats.Imported, stats.Dormant, stats.Summary.Mapped, stats.Summary.Unmapped, stats.Summary.Errors))
	return stats, nil
}

// Reclassify reruns the rule store over the held accounts. Prior
// classification work survives through the usual merge semantics, so only
// rows the store now resolves by override move.
func (s *Session) Reclassify() (report.Summary, error) {
	accounts := make([]model.LedgerAccount, 0, len(s.rows))
	for _, r := range s.rows {
		accounts = append(accounts, r.Account)
	}
	fresh := classify.Batch(accounts, s.rules, s.Context())

	merged, err := reconcile.Merge(s.rows, fresh)
	if err != nil {
		return report.Summary{}, err
	}
	if err := s.db.SaveRows(s.engagement, merged); err != nil {
		return report.Summary{}, err
	}
	s.rows = merged

	summary := report.Summarize(merged, s.tolerance)
	s.log(auditlog.ActionClassify, "",
		fmt.Sprintf("%d rows, %d mapped, %d unmapped, %d errors",
			summary.Total, summary.Mapped, summary.Unmapped, summary.Errors))
	return summary, nil
}

// ApplyEdit patches the selected rows, records the overrides and persists
// both rows and rules.
func (s *Session) ApplyEdit(keys []string, patch model.ClassificationPatch) (edit.Result, error) {
	// Work on copies so a failed save leaves the held rows and rules
	// untouched; otherwise a later Reclassify would apply overrides that
	// were never persisted.
	rows := make([]model.ClassifiedRow, len(s.rows))
	copy(rows, s.rows)
	rls := s.rules.Clone()

	res, err := edit.Apply(rows, keys, patch, rls)
	if err != nil {
		return edit.Result{}, err
	}
	if err := s.db.SaveRows(s.engagement, rows); err != nil {
		return edit.Result{}, err
	}
	if err := s.db.SaveRules(s.engagement, rls.Snapshot()); err != nil {
		return edit.Result{}, err
	}
	s.rows = rows
	s.rules = rls

	for _, k := range keys {
		s.log(auditlog.ActionEdit, k, describePatch(patch))
	}
	return res, nil
}

// SaveRules persists the authored rules and logs any same-tier overwrites
// recorded since the last save.
func (s *Session) SaveRules() error {
	if err := s.db.SaveRules(s.engagement, s.rules.Snapshot()); err != nil {
		return err
	}
	for _, c := range s.rules.Conflicts() {
		s.log(auditlog.ActionRuleConflict, c.Condition,
			fmt.Sprintf("%s rule overwritten: %q -> %q", c.Tier, c.Old.H3, c.New.H3))
	}
	return nil
}

// Switch discards the in-memory state and loads another engagement. The
// previous engagement's unsaved state is gone by design; everything that
// matters was persisted when it changed.
func (s *Session) Switch(engagement string) error {
	if engagement == "" {
		return fmt.Errorf("empty engagement id")
	}
	return s.load(engagement)
}

// Clear drops all saved state for the active engagement and empties the
// in-memory set.
func (s *Session) Clear() error {
	if err := s.db.Clear(s.engagement); err != nil {
		return err
	}
	s.rows = nil
	s.rules = rules.NewStore()
	s.log(auditlog.ActionClear, "", "all engagement data cleared")
	return nil
}

// log appends an audit entry. A logging failure never fails the operation
// that triggered it.
func (s *Session) log(action, subject, details string) {
	_ = auditlog.Append(s.workspace, []auditlog.Entry{{
		Timestamp:  s.now(),
		Engagement: s.engagement,
		Action:     action,
		Subject:    subject,
		Details:    details,
	}})
}

func describePatch(p model.ClassificationPatch) string {
	var parts []string
	add := func(level string, v *string) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s=%s", level, *v))
		}
	}
	add("H1", p.H1)
	add("H2", p.H2)
	add("H3", p.H3)
	add("H4", p.H4)
	add("H5", p.H5)
	if len(parts) == 0 {
		return "no-op patch"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return "set " + out
}
