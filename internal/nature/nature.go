// Package nature determines the expected debit/credit side of a ledger
// account from its primary group. The result depends only on the group's
// accounting nature, never on the actual balance, so the exception report can
// compare expected vs actual sign without circularity.
package nature

import (
	"github.com/ledgermap-dev/ledgermap/internal/key"
	"github.com/ledgermap-dev/ledgermap/internal/model"
)

// Bucket is the canonical accounting nature of a primary group.
type Bucket string

const (
	AssetLike     Bucket = "asset"
	LiabilityLike Bucket = "liability"
	EquityLike    Bucket = "equity"
	IncomeLike    Bucket = "income"
	ExpenseLike   Bucket = "expense"
	Unknown       Bucket = "unknown"
)

// buckets maps normalized primary-group names to their nature. The vocabulary
// mirrors the group names the rule store understands.
var buckets = map[string]Bucket{
	"fixed assets":             AssetLike,
	"investments":              AssetLike,
	"current assets":           AssetLike,
	"stock-in-hand":            AssetLike,
	"sundry debtors":           AssetLike,
	"trade receivables":        AssetLike,
	"cash-in-hand":             AssetLike,
	"bank accounts":            AssetLike,
	"deposits (asset)":         AssetLike,
	"loans & advances (asset)": AssetLike,
	"misc. expenses (asset)":   AssetLike,

	"loans (liability)":   LiabilityLike,
	"secured loans":       LiabilityLike,
	"unsecured loans":     LiabilityLike,
	"bank od a/c":         LiabilityLike,
	"bank occ a/c":        LiabilityLike,
	"current liabilities": LiabilityLike,
	"sundry creditors":    LiabilityLike,
	"trade payables":      LiabilityLike,
	"duties & taxes":      LiabilityLike,
	"provisions":          LiabilityLike,

	"capital account":    EquityLike,
	"share capital":      EquityLike,
	"reserves & surplus": EquityLike,
	"retained earnings":  EquityLike,

	"sales accounts":   IncomeLike,
	"direct incomes":   IncomeLike,
	"indirect incomes": IncomeLike,

	"purchase accounts": ExpenseLike,
	"direct expenses":   ExpenseLike,
	"indirect expenses": ExpenseLike,
}

// Resolution is the outcome of resolving an account's expected balance side.
type Resolution struct {
	Expected model.BalanceSign
	Bucket   Bucket
	// Confident is false when the primary group matched no nature bucket and
	// the Debit default was applied; callers use it to separate confident
	// anomaly flags from guesses.
	Confident bool
}

// Resolve returns the expected balance sign for a primary group.
// Asset- and expense-like groups expect Debit; liability-, equity- and
// income-like groups expect Credit. Unrecognized groups default to Debit
// with Confident=false.
func Resolve(primaryGroup string) Resolution {
	b, ok := buckets[key.Normalize(primaryGroup)]
	if !ok {
		return Resolution{Expected: model.Debit, Bucket: Unknown, Confident: false}
	}
	return Resolution{Expected: b.ExpectedSign(), Bucket: b, Confident: true}
}

// ExpectedSign returns the balance side a bucket normally carries.
func (b Bucket) ExpectedSign() model.BalanceSign {
	switch b {
	case LiabilityLike, EquityLike, IncomeLike:
		return model.Credit
	default:
		return model.Debit
	}
}
