// Package taxonomy holds the five-level financial-statement presentation
// hierarchy (statement, category, note, sub-note, detail) and validates
// classifications against it. H2 choices depend on H1, H3 on H2, H4 on H3;
// H5 is free text and never constrained.
package taxonomy

import (
	"fmt"

	"github.com/ledgermap-dev/ledgermap/internal/model"
)

// Statement (H1) values.
const (
	BalanceSheet  = "Balance Sheet"
	ProfitAndLoss = "Profit and Loss"
)

// Category (H2) values.
const (
	Assets      = "Assets"
	Liabilities = "Liabilities"
	Equity      = "Equity"
	Income      = "Income"
	Expenses    = "Expenses"
)

// H1Options lists the legal statement types.
var H1Options = []string{BalanceSheet, ProfitAndLoss}

// H2Options maps each H1 to its legal categories.
var H2Options = map[string][]string{
	BalanceSheet:  {Assets, Liabilities, Equity},
	ProfitAndLoss: {Income, Expenses},
}

// H3Options maps each H2 to its legal note heads.
var H3Options = map[string][]string{
	Assets: {
		"Property, Plant and Equipment",
		"Capital Work-in-Progress",
		"Intangible Assets",
		"Investments",
		"Long-term Loans and Advances",
		"Other Non-current Assets",
		"Inventories",
		"Trade Receivables",
		"Cash and Bank Balances",
		"Short-term Loans and Advances",
		"Other Current Assets",
	},
	Liabilities: {
		"Long-term Borrowings",
		"Other Non-current Liabilities",
		"Provisions",
		"Short-term Borrowings",
		"Trade Payables",
		"Other Current Liabilities",
	},
	Equity: {
		"Share Capital",
		"Partners' Capital Account",
		"Owners' Capital Account",
		"Reserves and Surplus",
		"Other Equity",
	},
	Income: {
		"Revenue from Operations",
		"Other Income",
	},
	Expenses: {
		"Cost of Materials Consumed",
		"Purchases of Stock-in-Trade",
		"Changes in Inventories",
		"Employee Benefits Expense",
		"Finance Costs",
		"Depreciation and Amortisation Expense",
		"Other Expenses",
		"Tax Expenses",
	},
}

// H4Options maps each H3 to its legal sub-notes. Note heads absent from this
// map carry free-form sub-notes.
var H4Options = map[string][]string{
	"Property, Plant and Equipment": {
		"Freehold Land",
		"Buildings",
		"Plant and Machinery",
		"Furniture and Fixtures",
		"Vehicles",
		"Office Equipment",
		"Computers",
	},
	"Inventories": {
		"Raw Materials",
		"Work-in-Progress",
		"Finished Goods",
		"Stock-in-Trade",
		"Stores and Spares",
	},
	"Trade Receivables": {
		"Secured, Considered Good",
		"Unsecured, Considered Good",
		"Doubtful",
	},
	"Cash and Bank Balances": {
		"Cash on Hand",
		"Balances with Banks in Current Accounts",
		"Balances with Banks in Savings Accounts",
		"Bank Deposits",
		"Cheques and Drafts on Hand",
	},
	"Share Capital": {
		"Equity Share Capital",
		"Preference Share Capital",
	},
	"Reserves and Surplus": {
		"Capital Reserve",
		"Securities Premium",
		"General Reserve",
		"Surplus in Statement of Profit and Loss",
	},
	"Trade Payables": {
		"Dues to MSME",
		"Dues to Others",
	},
	"Other Current Liabilities": {
		"Bank Overdraft",
		"Statutory Dues Payable",
		"TDS Payable",
		"GST Payable",
		"Audit Fees Payable",
		"Employee Dues Payable",
		"Advance from Customers",
	},
	"Long-term Borrowings": {
		"Term Loans from Banks",
		"Term Loans from Others",
		"Loans from Related Parties",
	},
	"Short-term Borrowings": {
		"Cash Credit and Overdraft from Banks",
		"Loans Repayable on Demand",
	},
	"Revenue from Operations": {
		"Sale of Products",
		"Sale of Services",
		"Other Operating Revenue",
	},
	"Other Income": {
		"Interest Income",
		"Dividend Income",
		"Miscellaneous Income",
	},
	"Cost of Materials Consumed": {
		"Purchases of Raw Materials",
		"Direct Expenses",
	},
	"Changes in Inventories": {
		"Opening Stock",
		"Less: Closing Stock",
	},
	"Employee Benefits Expense": {
		"Salaries and Wages",
		"Contribution to Provident Fund",
		"Staff Welfare Expenses",
		"Directors' Remuneration",
	},
	"Finance Costs": {
		"Interest Expense on Borrowings",
		"Interest on Late Payment of Taxes",
		"Other Borrowing Costs",
		"Bank Charges",
	},
	"Depreciation and Amortisation Expense": {
		"Depreciation on Tangible Assets",
		"Amortisation of Intangible Assets",
	},
	"Other Expenses": {
		"Rent",
		"Rates and Taxes",
		"Repairs and Maintenance",
		"Insurance",
		"Telephone and Internet",
		"Printing and Stationery",
		"Travelling and Conveyance",
		"Power and Fuel",
		"Legal and Professional Fees",
		"Audit Fee",
		"Advertisement and Publicity",
		"Commission and Brokerage",
		"Bad Debts Written Off",
		"Miscellaneous Expenses",
	},
}

// InferH1 returns the statement a category belongs to, or "" if the category
// is unknown.
func InferH1(h2 string) string {
	for h1, cats := range H2Options {
		for _, c := range cats {
			if c == h2 {
				return h1
			}
		}
	}
	return ""
}

// contains reports membership of v in opts.
func contains(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}

// Validate checks that each populated level of a classification is a legal
// child of the level above. A populated level requires the level above to be
// populated too. Parents missing from the vocabulary leave their children
// unchecked, so rule-authored sub-notes outside the seed vocabulary remain
// legal. H5 is never checked.
func Validate(c model.Classification) error {
	if c.H2 != "" && c.H1 == "" {
		return fmt.Errorf("H2 %q set without H1", c.H2)
	}
	if c.H3 != "" && c.H2 == "" {
		return fmt.Errorf("H3 %q set without H2", c.H3)
	}
	if c.H4 != "" && c.H3 == "" {
		return fmt.Errorf("H4 %q set without H3", c.H4)
	}

	if c.H1 != "" && !contains(H1Options, c.H1) {
		return fmt.Errorf("unknown H1 %q", c.H1)
	}
	if c.H2 != "" {
		opts, ok := H2Options[c.H1]
		if ok && !contains(opts, c.H2) {
			return fmt.Errorf("H2 %q is not a child of H1 %q", c.H2, c.H1)
		}
	}
	if c.H3 != "" {
		opts, ok := H3Options[c.H2]
		if ok && !contains(opts, c.H3) {
			return fmt.Errorf("H3 %q is not a child of H2 %q", c.H3, c.H2)
		}
	}
	if c.H4 != "" {
		opts, ok := H4Options[c.H3]
		if ok && !contains(opts, c.H4) {
			return fmt.Errorf("H4 %q is not a child of H3 %q", c.H4, c.H3)
		}
	}
	return nil
}
