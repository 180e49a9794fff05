package model

import (
	"github.com/shopspring/decimal"
)

// Status is the classification state of a ledger row.
type Status string

const (
	StatusMapped   Status = "Mapped"
	StatusUnmapped Status = "Unmapped"
	StatusError    Status = "Error"
)

// BalanceSign is the debit-or-credit nature of a balance.
type BalanceSign string

const (
	Debit  BalanceSign = "Dr"
	Credit BalanceSign = "Cr"
)

// LedgerAccount is one raw trial-balance row for a single reporting period.
// Identity is derived from name and primary group, never supplied upstream.
type LedgerAccount struct {
	Name         string
	PrimaryGroup string
	ParentGroup  string
	Opening      decimal.Decimal // signed; positive = debit balance
	DebitTotal   decimal.Decimal // period movement, absolute
	CreditTotal  decimal.Decimal // period movement, absolute
	Closing      decimal.Decimal // signed; positive = debit balance
	IsRevenue    bool
}

// Dormant reports whether the account had no balance and no movement:
// opening, debit, credit and closing all exactly zero.
func (a LedgerAccount) Dormant() bool {
	return a.Opening.IsZero() && a.DebitTotal.IsZero() &&
		a.CreditTotal.IsZero() && a.Closing.IsZero()
}

// ActualSign returns the debit/credit side the closing balance actually sits on.
func (a LedgerAccount) ActualSign() BalanceSign {
	if a.Closing.Sign() < 0 {
		return Credit
	}
	return Debit
}
