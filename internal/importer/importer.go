// Package importer reads trial-balance exports into strictly-typed
// LedgerAccounts. All header-alias resolution happens here, at the boundary;
// downstream packages only ever see the canonical shape.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgermap-dev/ledgermap/internal/model"
)

// ShapeError reports a ledger file whose headers or rows cannot be mapped to
// LedgerAccount fields. The whole file is rejected, never partially applied.
type ShapeError struct {
	Row    int // 1-based, 1 is the header
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("ledger file row %d: %s", e.Row, e.Reason)
}

// Canonical column names and their accepted aliases, compared
// case-insensitively with spaces, underscores and hyphens collapsed.
var headerAliases = map[string][]string{
	"name":    {"ledger name", "name", "account name", "ledger"},
	"primary": {"primary group", "group", "primary"},
	"parent":  {"parent group", "parent"},
	"opening": {"opening balance", "opening", "opening bal"},
	"debit":   {"debit", "debit total", "debit movement", "total debit"},
	"credit":  {"credit", "credit total", "credit movement", "total credit"},
	"closing": {"closing balance", "closing", "closing bal"},
	"revenue": {"is revenue", "revenue", "isrevenue"},
}

// required columns; the rest default when absent.
var requiredColumns = []string{"name", "primary"}

// ReadTrialBalance parses a trial-balance CSV into LedgerAccounts. Column
// order is free and headers match by alias. Missing optional amount columns
// read as zero; any unparseable amount rejects the entire file.
func ReadTrialBalance(r io.Reader) ([]model.LedgerAccount, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, &ShapeError{Row: 1, Reason: "empty file"}
	}

	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	var accounts []model.LedgerAccount
	for i, rec := range records[1:] {
		rowNum := i + 2
		if len(rec) != len(records[0]) {
			return nil, &ShapeError{Row: rowNum, Reason: fmt.Sprintf("expected %d fields, got %d", len(records[0]), len(rec))}
		}
		acct, err := unmarshalRow(rec, cols)
		if err != nil {
			return nil, &ShapeError{Row: rowNum, Reason: err.Error()}
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// mapHeader resolves header cells to canonical column indexes.
func mapHeader(header []string) (map[string]int, error) {
	byAlias := make(map[string]string)
	for canonical, aliases := range headerAliases {
		for _, a := range aliases {
			byAlias[foldHeader(a)] = canonical
		}
	}

	cols := make(map[string]int)
	for i, cell := range header {
		canonical, ok := byAlias[foldHeader(cell)]
		if !ok {
			continue // unknown columns are carried by the file, not by us
		}
		if _, dup := cols[canonical]; dup {
			return nil, &ShapeError{Row: 1, Reason: fmt.Sprintf("column %q mapped twice", cell)}
		}
		cols[canonical] = i
	}

	for _, req := range requiredColumns {
		if _, ok := cols[req]; !ok {
			return nil, &ShapeError{Row: 1, Reason: fmt.Sprintf("missing required column %q", headerAliases[req][0])}
		}
	}
	return cols, nil
}

// foldHeader normalizes a header cell for alias comparison.
func foldHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

func unmarshalRow(rec []string, cols map[string]int) (model.LedgerAccount, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	amount := func(name string) (decimal.Decimal, error) {
		raw := cell(name)
		if raw == "" {
			return decimal.Zero, nil
		}
		// Accountants write thousands separators; strip them.
		raw = strings.ReplaceAll(raw, ",", "")
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parsing %s %q: %w", name, raw, err)
		}
		return d, nil
	}

	acct := model.LedgerAccount{
		Name:         cell("name"),
		PrimaryGroup: cell("primary"),
		ParentGroup:  cell("parent"),
	}

	var err error
	if acct.Opening, err = amount("opening"); err != nil {
		return model.LedgerAccount{}, err
	}
	if acct.DebitTotal, err = amount("debit"); err != nil {
		return model.LedgerAccount{}, err
	}
	if acct.CreditTotal, err = amount("credit"); err != nil {
		return model.LedgerAccount{}, err
	}
	if acct.Closing, err = amount("closing"); err != nil {
		return model.LedgerAccount{}, err
	}

	switch strings.ToLower(cell("revenue")) {
	case "true", "yes", "y", "1":
		acct.IsRevenue = true
	case "", "false", "no", "n", "0":
	default:
		return model.LedgerAccount{}, fmt.Errorf("parsing is revenue %q", cell("revenue"))
	}

	return acct, nil
}
