package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ledgermap-dev/ledgermap/internal/model"
)

const (
	rowNumFields = 12
	colName      = 0
	colGroup     = 1
	colParent    = 2
	colOpening   = 3
	colDebit     = 4
	colCredit    = 5
	colClosing   = 6
	colSign      = 7
	colStatus    = 8
	colH1        = 9
	colH2        = 10
	colH3        = 11
)

var rowHeader = []string{
	"Ledger Name", "Primary Group", "Parent Group",
	"Opening Balance", "Debit", "Credit", "Closing Balance", "Balance Type",
	"Status", "H1", "H2", "H3",
}

// WriteRows writes the classified set as a CSV for downstream statement
// preparation. H4/H5 ride in the H3 column separated by " > " when present,
// matching how note heads read on the face of the statements.
func WriteRows(w io.Writer, rows []model.ClassifiedRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(rowHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range rows {
		if err := cw.Write(marshalRow(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalRow(r model.ClassifiedRow) []string {
	row := make([]string, rowNumFields)
	row[colName] = r.Account.Name
	row[colGroup] = r.Account.PrimaryGroup
	row[colParent] = r.Account.ParentGroup
	row[colOpening] = r.Account.Opening.StringFixed(2)
	row[colDebit] = r.Account.DebitTotal.StringFixed(2)
	row[colCredit] = r.Account.CreditTotal.StringFixed(2)
	row[colClosing] = r.Account.Closing.StringFixed(2)
	row[colSign] = string(r.Account.ActualSign())
	row[colStatus] = string(r.Status)
	row[colH1] = r.Class.H1
	row[colH2] = r.Class.H2
	row[colH3] = noteHead(r.Class)
	return row
}

func noteHead(c model.Classification) string {
	head := c.H3
	if c.H4 != "" {
		head += " > " + c.H4
	}
	if c.H5 != "" {
		head += " > " + c.H5
	}
	return head
}
