package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermap-dev/ledgermap/internal/key"
	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/taxonomy"
)

func row(name, group string, closing string, status model.Status) model.ClassifiedRow {
	r := model.ClassifiedRow{
		Key: key.Generate(name, group),
		Account: model.LedgerAccount{
			Name:         name,
			PrimaryGroup: group,
			Closing:      decimal.RequireFromString(closing),
		},
		Status: status,
	}
	if status == model.StatusMapped {
		r.Class = model.Classification{H1: taxonomy.BalanceSheet, H2: taxonomy.Assets}
	}
	return r
}

func TestSummarize(t *testing.T) {
	rows := []model.ClassifiedRow{
		row("Cash", "Cash-in-Hand", "100000", model.StatusMapped),
		row("Sales", "Sales Accounts", "-500000", model.StatusUnmapped),
		row("Debtors", "Sundry Debtors", "400000", model.StatusMapped),
		{Key: key.Invalid, Status: model.StatusError},
	}

	s := Summarize(rows, DefaultTolerance)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Mapped)
	assert.Equal(t, 1, s.Unmapped)
	assert.Equal(t, 1, s.Errors)
	assert.True(t, s.ClosingTotal.IsZero())
	assert.True(t, s.Balanced)
}

func TestSummarizeSkipsErrorRowAmounts(t *testing.T) {
	bad := row("", "", "9999", model.StatusError)
	bad.Key = key.Invalid
	rows := []model.ClassifiedRow{
		row("Cash", "Cash-in-Hand", "100", model.StatusMapped),
		row("Sales", "Sales Accounts", "-100", model.StatusUnmapped),
		bad,
	}

	s := Summarize(rows, DefaultTolerance)
	assert.Equal(t, 1, s.Errors)
	assert.True(t, s.ClosingTotal.IsZero(), "a row without identity must not move the totals")
	assert.True(t, s.Balanced)
}

func TestSummarizeAggregateTotals(t *testing.T) {
	a := row("Cash", "Cash-in-Hand", "150", model.StatusMapped)
	a.Account.Opening = decimal.RequireFromString("100")
	a.Account.DebitTotal = decimal.RequireFromString("80")
	a.Account.CreditTotal = decimal.RequireFromString("30")
	b := row("Creditors", "Sundry Creditors", "-150", model.StatusMapped)
	b.Account.Opening = decimal.RequireFromString("-120")
	b.Account.DebitTotal = decimal.RequireFromString("10")
	b.Account.CreditTotal = decimal.RequireFromString("40")

	s := Summarize([]model.ClassifiedRow{a, b}, DefaultTolerance)
	assert.Equal(t, "-20", s.OpeningTotal.String())
	assert.Equal(t, "90", s.DebitTotal.String())
	assert.Equal(t, "70", s.CreditTotal.String())
	assert.True(t, s.ClosingTotal.IsZero())
}

func TestSummarizeTolerance(t *testing.T) {
	rows := []model.ClassifiedRow{
		row("A", "Cash-in-Hand", "100.00", model.StatusMapped),
		row("B", "Sales Accounts", "-99.995", model.StatusMapped),
	}
	s := Summarize(rows, DefaultTolerance)
	assert.True(t, s.Balanced, "a 0.005 difference sits inside tolerance")

	rows[1].Account.Closing = decimal.RequireFromString("-99.90")
	s = Summarize(rows, DefaultTolerance)
	assert.False(t, s.Balanced)
}

func TestFilter(t *testing.T) {
	rows := []model.ClassifiedRow{
		row("Cash", "Cash-in-Hand", "1", model.StatusMapped),
		row("HDFC Bank", "Bank Accounts", "2", model.StatusMapped),
		row("Suspense", "Suspense Items", "3", model.StatusUnmapped),
	}

	got := Filter{Status: model.StatusUnmapped}.Apply(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "Suspense", got[0].Account.Name)

	got = Filter{H2: taxonomy.Assets}.Apply(rows)
	assert.Len(t, got, 2)

	got = Filter{Text: "hdfc"}.Apply(rows)
	require.Len(t, got, 1)
	assert.Equal(t, "HDFC Bank", got[0].Account.Name)

	got = Filter{Text: "bank accounts"}.Apply(rows)
	require.Len(t, got, 1, "free text also matches the primary group")

	assert.Len(t, Filter{}.Apply(rows), 3)
}

func TestSort(t *testing.T) {
	rows := []model.ClassifiedRow{
		row("Zebra", "Sundry Debtors", "10", model.StatusMapped),
		row("Apple", "Sundry Debtors", "-9000", model.StatusUnmapped),
		row("Mango", "Cash-in-Hand", "500", model.StatusMapped),
	}

	byName := Sort(rows, SortByName)
	assert.Equal(t, "Apple", byName[0].Account.Name)
	assert.Equal(t, "Zebra", rows[0].Account.Name, "input order untouched")

	byClosing := Sort(rows, SortByClosing)
	assert.Equal(t, "Apple", byClosing[0].Account.Name)
	assert.Equal(t, "Zebra", byClosing[2].Account.Name)

	byStatus := Sort(rows, SortByStatus)
	assert.Equal(t, model.StatusUnmapped, byStatus[0].Status)
}

func TestExceptions(t *testing.T) {
	rows := []model.ClassifiedRow{
		// A debtor in credit and a creditor in debit both flag.
		row("ABC Traders", "Sundry Debtors", "-35000", model.StatusMapped),
		row("XYZ Suppliers", "Sundry Creditors", "12000", model.StatusUnmapped),
		// Normal-side balances do not.
		row("Cash", "Cash-in-Hand", "100000", model.StatusMapped),
		row("Sales", "Sales Accounts", "-500000", model.StatusMapped),
		// Unknown groups are skipped, not guessed.
		row("Suspense", "Suspense Items", "-77", model.StatusUnmapped),
	}

	got := Exceptions(rows)
	require.Len(t, got, 2)

	assert.Equal(t, "ABC Traders", got[0].Row.Account.Name)
	assert.Equal(t, model.Debit, got[0].Expected)
	assert.Equal(t, model.Credit, got[0].Actual)

	assert.Equal(t, "XYZ Suppliers", got[1].Row.Account.Name)
	assert.Equal(t, model.Credit, got[1].Expected)
	assert.Equal(t, model.Debit, got[1].Actual)
}

func TestExceptionsSkipDormantAndErrorRows(t *testing.T) {
	dormant := row("Old Debtor", "Sundry Debtors", "0", model.StatusMapped)
	bad := model.ClassifiedRow{
		Key:     key.Invalid,
		Account: model.LedgerAccount{PrimaryGroup: "Sundry Debtors", Closing: decimal.NewFromInt(-10)},
		Status:  model.StatusError,
	}
	assert.Empty(t, Exceptions([]model.ClassifiedRow{dormant, bad}))
}
