package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/rules"
	"github.com/ledgermap-dev/ledgermap/internal/taxonomy"
)

func open(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "ledgermap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRowsRoundTrip(t *testing.T) {
	db := open(t)

	rows := []model.ClassifiedRow{
		{
			Key: "cash|cash-in-hand",
			Account: model.LedgerAccount{
				Name:         "Cash",
				PrimaryGroup: "Cash-in-Hand",
				Closing:      decimal.RequireFromString("100000.50"),
			},
			Class:  model.Classification{H1: taxonomy.BalanceSheet, H2: taxonomy.Assets, Source: model.SourceDefault},
			Status: model.StatusMapped,
		},
	}
	require.NoError(t, db.SaveRows("fy25-acme", rows))

	got, err := db.LoadRows("fy25-acme")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rows[0].Key, got[0].Key)
	assert.True(t, got[0].Account.Closing.Equal(rows[0].Account.Closing))
	assert.Equal(t, rows[0].Class, got[0].Class)
}

func TestLoadMissingEngagement(t *testing.T) {
	db := open(t)

	rows, err := db.LoadRows("nothing-here")
	require.NoError(t, err)
	assert.Nil(t, rows)

	_, ok, err := db.LoadRules("nothing-here")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRulesRoundTripAndScoping(t *testing.T) {
	db := open(t)

	s := rules.NewEmptyStore()
	require.NoError(t, s.AddGroupRule(rules.GroupRule{
		Group: "Sundry Debtors",
		Class: model.Classification{H1: taxonomy.BalanceSheet, H2: taxonomy.Assets, H3: "Trade Receivables"},
	}))
	require.NoError(t, db.SaveRules("fy25-acme", s.Snapshot()))

	snap, ok, err := db.LoadRules("fy25-acme")
	require.NoError(t, err)
	require.True(t, ok)

	restored := rules.NewStore()
	restored.Restore(snap)
	require.Len(t, restored.GroupRules(), 1)

	// Another engagement sees none of it.
	_, ok, err = db.LoadRules("fy25-other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngagementsAndClear(t *testing.T) {
	db := open(t)
	require.NoError(t, db.SaveRows("a", nil))
	require.NoError(t, db.SaveRows("b", nil))

	names, err := db.Engagements()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, db.Clear("a"))
	require.NoError(t, db.Clear("a"), "clearing twice is fine")

	names, err = db.Engagements()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestSaveOverwrites(t *testing.T) {
	db := open(t)
	require.NoError(t, db.SaveRows("e", []model.ClassifiedRow{{Key: "a|b"}}))
	require.NoError(t, db.SaveRows("e", []model.ClassifiedRow{{Key: "c|d"}}))

	got, err := db.LoadRows("e")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c|d", got[0].Key)
}
