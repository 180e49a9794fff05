package session

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermap-dev/ledgermap/internal/auditlog"
	"github.com/ledgermap-dev/ledgermap/internal/config"
	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/rules"
	"github.com/ledgermap-dev/ledgermap/internal/taxonomy"
)

func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default("fy25-acme", "Acme Industries Pvt Ltd")
	require.NoError(t, config.Save(filepath.Join(dir, config.FileName), cfg))
	return dir
}

func openSession(t *testing.T, dir string) *Session {
	t.Helper()
	s, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func rawBatch() []model.LedgerAccount {
	return []model.LedgerAccount{
		{
			Name:         "Cash",
			PrimaryGroup: "Cash-in-Hand",
			Opening:      decimal.NewFromInt(50000),
			DebitTotal:   decimal.NewFromInt(200000),
			CreditTotal:  decimal.NewFromInt(150000),
			Closing:      decimal.NewFromInt(100000),
		},
		{
			Name:         "Sales",
			PrimaryGroup: "Sales Accounts",
			CreditTotal:  decimal.NewFromInt(500000),
			Closing:      decimal.NewFromInt(-500000),
			IsRevenue:    true,
		},
		{Name: "Dormant Deposit", PrimaryGroup: "Deposits (Asset)"},
	}
}

func TestImportAndClassify(t *testing.T) {
	dir := newWorkspace(t)
	s := openSession(t, dir)

	stats, err := s.ImportAndClassify(rawBatch(), "tb.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 1, stats.Dormant)
	assert.Equal(t, 2, stats.Summary.Mapped, "Cash and Sales both hit the default seed")

	rows := s.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "cash|cash-in-hand", rows[0].Key)

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, auditlog.ActionImport, entries[0].Action)
	assert.Equal(t, "fy25-acme", entries[0].Engagement)
}

func TestFailedEditSaveLeavesRulesUntouched(t *testing.T) {
	dir := newWorkspace(t)
	s := openSession(t, dir)
	_, err := s.ImportAndClassify(rawBatch(), "tb.csv")
	require.NoError(t, err)

	// Closing the database makes the save fail after the patch validates.
	require.NoError(t, s.Close())

	h5 := "reviewed"
	_, err = s.ApplyEdit([]string{"sales|sales accounts"}, model.ClassificationPatch{H5: &h5})
	require.Error(t, err)
	assert.Empty(t, s.Rules().Overrides(), "a failed save must not leave the override behind")

	for _, r := range s.Rows() {
		assert.NotEqual(t, "reviewed", r.Class.H5)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := newWorkspace(t)
	s := openSession(t, dir)
	_, err := s.ImportAndClassify(rawBatch(), "tb.csv")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2 := openSession(t, dir)
	assert.Len(t, s2.Rows(), 2)
}

func TestEditSurvivesReimport(t *testing.T) {
	dir := newWorkspace(t)
	s := openSession(t, dir)
	_, err := s.ImportAndClassify(rawBatch(), "tb.csv")
	require.NoError(t, err)

	h5 := "reviewed"
	salesKey := "sales|sales accounts"
	res, err := s.ApplyEdit([]string{salesKey}, model.ClassificationPatch{H5: &h5})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)

	// Next period: identical raw batch. The manual edit must survive as a
	// per-ledger override.
	_, err = s.ImportAndClassify(rawBatch(), "tb2.csv")
	require.NoError(t, err)

	for _, r := range s.Rows() {
		if r.Key == salesKey {
			assert.Equal(t, "reviewed", r.Class.H5)
			assert.Equal(t, model.SourceOverride, r.Class.Source)
			return
		}
	}
	t.Fatalf("sales row missing after re-import")
}

func TestReclassifyPicksUpNewRulesForUnmappedRows(t *testing.T) {
	dir := newWorkspace(t)
	s := openSession(t, dir)

	batch := []model.LedgerAccount{
		{Name: "Suspense Receipt", PrimaryGroup: "Suspense Items", Closing: decimal.NewFromInt(7)},
	}
	stats, err := s.ImportAndClassify(batch, "tb.csv")
	require.NoError(t, err)
	require.Equal(t, 1, stats.Summary.Unmapped)

	require.NoError(t, s.Rules().AddGroupRule(ruleFor("Suspense Items")))
	require.NoError(t, s.SaveRules())

	summary, err := s.Reclassify()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Mapped)
	assert.Equal(t, 0, summary.Unmapped)
}

func TestSwitchIsolatesEngagements(t *testing.T) {
	dir := newWorkspace(t)
	s := openSession(t, dir)
	_, err := s.ImportAndClassify(rawBatch(), "tb.csv")
	require.NoError(t, err)

	require.NoError(t, s.Rules().AddGroupRule(ruleFor("Suspense Items")))
	require.NoError(t, s.SaveRules())

	require.NoError(t, s.Switch("fy25-other"))
	assert.Empty(t, s.Rows())
	assert.Empty(t, s.Rules().GroupRules(), "authored rules are engagement-scoped")

	require.NoError(t, s.Switch("fy25-acme"))
	assert.Len(t, s.Rows(), 2)
	assert.Len(t, s.Rules().GroupRules(), 1)
}

func TestClear(t *testing.T) {
	dir := newWorkspace(t)
	s := openSession(t, dir)
	_, err := s.ImportAndClassify(rawBatch(), "tb.csv")
	require.NoError(t, err)

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Rows())

	require.NoError(t, s.Switch("fy25-acme"))
	assert.Empty(t, s.Rows(), "clear removed the saved state too")
}

func ruleFor(group string) rules.GroupRule {
	return rules.GroupRule{
		Group: group,
		Class: model.Classification{H1: taxonomy.BalanceSheet, H2: taxonomy.Assets, H3: "Other Current Assets"},
	}
}
