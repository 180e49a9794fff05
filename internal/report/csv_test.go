package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/taxonomy"
)

func TestWriteRows(t *testing.T) {
	r := row("Cash", "Cash-in-Hand", "100000", model.StatusMapped)
	r.Class.H3 = "Cash and Bank Balances"
	r.Class.H4 = "Cash on Hand"

	var out strings.Builder
	require.NoError(t, WriteRows(&out, []model.ClassifiedRow{r}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Ledger Name,Primary Group,Parent Group,Opening Balance,Debit,Credit,Closing Balance,Balance Type,Status,H1,H2,H3", lines[0])
	assert.Contains(t, lines[1], "Cash,Cash-in-Hand,")
	assert.Contains(t, lines[1], "100000.00,Dr,Mapped,"+taxonomy.BalanceSheet+",Assets,Cash and Bank Balances > Cash on Hand")
}

func TestWriteRowsCreditSign(t *testing.T) {
	r := row("Sales", "Sales Accounts", "-500000", model.StatusUnmapped)

	var out strings.Builder
	require.NoError(t, WriteRows(&out, []model.ClassifiedRow{r}))
	assert.Contains(t, out.String(), "-500000.00,Cr,Unmapped")
}
