package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/taxonomy"
)

const groupRulesCSV = `Condition Value,H1,H2,H3,H4,H5
Sundry Debtors,Balance Sheet,Assets,Trade Receivables,"Unsecured, Considered Good",
Sundry Creditors,Balance Sheet,Liabilities,Trade Payables,Dues to Others,
`

func TestImportGroupRules(t *testing.T) {
	s := NewEmptyStore()
	res, err := s.ImportCSV(strings.NewReader(groupRulesCSV), KindGroup)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Added)
	assert.Empty(t, res.Conflicts)

	c, ok := s.Resolve(acct("ABC Traders", "Sundry Debtors"), model.Context{})
	require.True(t, ok)
	assert.Equal(t, "Trade Receivables", c.H3)
	assert.Equal(t, "Unsecured, Considered Good", c.H4)
}

func TestImportHeaderCaseInsensitive(t *testing.T) {
	in := "condition value,h1,h2,h3,h4,h5\nSundry Debtors,Balance Sheet,Assets,Trade Receivables,,\n"
	s := NewEmptyStore()
	res, err := s.ImportCSV(strings.NewReader(in), KindGroup)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
}

func TestImportKeywordRules(t *testing.T) {
	in := "Condition Value,H1,H2,H3,H4,H5\naudit fee,Profit and Loss,Expenses,Other Expenses,Audit Fee,\n"
	s := NewEmptyStore()
	res, err := s.ImportCSV(strings.NewReader(in), KindKeyword)
	require.NoError(t, err)
	require.Equal(t, 1, res.Added)

	rules := s.KeywordRules()
	require.Len(t, rules, 1)
	assert.Equal(t, MatchContains, rules[0].Match)
	assert.NotEmpty(t, rules[0].ID)
}

func TestImportRejectsWholeFile(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad header", "Value,H1,H2,H3,H4,H5\nSundry Debtors,Balance Sheet,Assets,,,\n"},
		{"short row", "Condition Value,H1,H2,H3,H4,H5\nSundry Debtors,Balance Sheet\n"},
		{"empty condition", "Condition Value,H1,H2,H3,H4,H5\n,Balance Sheet,Assets,,,\n"},
		{"illegal hierarchy", "Condition Value,H1,H2,H3,H4,H5\nGood Row,Balance Sheet,Assets,,,\nBad Row,Balance Sheet,Income,,,\n"},
		{"empty file", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewEmptyStore()
			_, err := s.ImportCSV(strings.NewReader(tt.in), KindGroup)
			require.Error(t, err)

			var shapeErr *ShapeError
			assert.ErrorAs(t, err, &shapeErr)
			assert.Empty(t, s.GroupRules(), "a bad file must not partially import")
		})
	}
}

func TestImportRecordsOverwriteConflicts(t *testing.T) {
	in := "Condition Value,H1,H2,H3,H4,H5\n" +
		"Indirect Expenses,Profit and Loss,Expenses,Other Expenses,,\n" +
		"Indirect Expenses,Profit and Loss,Expenses,Finance Costs,,\n"
	s := NewEmptyStore()
	res, err := s.ImportCSV(strings.NewReader(in), KindGroup)
	require.NoError(t, err)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "Other Expenses", res.Conflicts[0].Old.H3)
	assert.Equal(t, "Finance Costs", res.Conflicts[0].New.H3)

	// Last write wins.
	c, ok := s.Resolve(acct("Misc", "Indirect Expenses"), model.Context{})
	require.True(t, ok)
	assert.Equal(t, "Finance Costs", c.H3)
}

func TestExportRoundTrip(t *testing.T) {
	s := NewEmptyStore()
	require.NoError(t, s.AddGroupRule(GroupRule{
		Group: "Sundry Debtors",
		Class: model.Classification{H1: taxonomy.BalanceSheet, H2: taxonomy.Assets, H3: "Trade Receivables"},
	}))

	var out strings.Builder
	require.NoError(t, s.ExportCSV(&out, KindGroup))

	s2 := NewEmptyStore()
	res, err := s2.ImportCSV(strings.NewReader(out.String()), KindGroup)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, s.GroupRules()[0].Class, s2.GroupRules()[0].Class)
}
