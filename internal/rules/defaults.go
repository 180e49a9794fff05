package rules

import (
	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/taxonomy"
)

func class(h1, h2, h3, h4 string) model.Classification {
	return model.Classification{H1: h1, H2: h2, H3: h3, H4: h4}
}

func classp(h1, h2, h3, h4 string) *model.Classification {
	c := class(h1, h2, h3, h4)
	return &c
}

// scheduleIIIDefaults is the built-in group-to-statement seed derived from
// the Schedule III presentation format, keyed by the primary-group
// vocabulary of common accounting packages.
func scheduleIIIDefaults() []DefaultRule {
	bs := taxonomy.BalanceSheet
	pl := taxonomy.ProfitAndLoss

	return []DefaultRule{
		// Equity. Companies disclose share capital; partnerships and LLPs
		// carry partners' capital; everyone else an owners' capital account.
		{
			Group:       "Capital Account",
			Class:       class(bs, taxonomy.Equity, "Share Capital", "Equity Share Capital"),
			Partnership: classp(bs, taxonomy.Equity, "Partners' Capital Account", ""),
			Proprietor:  classp(bs, taxonomy.Equity, "Owners' Capital Account", ""),
		},
		{
			Group: "Reserves & Surplus",
			Class: class(bs, taxonomy.Equity, "Reserves and Surplus", "Surplus in Statement of Profit and Loss"),
		},
		{
			Group: "Retained Earnings",
			Class: class(bs, taxonomy.Equity, "Reserves and Surplus", "Surplus in Statement of Profit and Loss"),
		},

		// Liabilities.
		{
			Group: "Secured Loans",
			Class: class(bs, taxonomy.Liabilities, "Long-term Borrowings", "Term Loans from Banks"),
		},
		{
			Group: "Unsecured Loans",
			Class: class(bs, taxonomy.Liabilities, "Long-term Borrowings", "Term Loans from Others"),
		},
		{
			Group: "Loans (Liability)",
			Class: class(bs, taxonomy.Liabilities, "Long-term Borrowings", ""),
		},
		{
			Group: "Bank OD A/c",
			Class: class(bs, taxonomy.Liabilities, "Short-term Borrowings", "Cash Credit and Overdraft from Banks"),
		},
		{
			Group: "Bank OCC A/c",
			Class: class(bs, taxonomy.Liabilities, "Short-term Borrowings", "Cash Credit and Overdraft from Banks"),
		},
		{
			Group: "Sundry Creditors",
			Class: class(bs, taxonomy.Liabilities, "Trade Payables", "Dues to Others"),
		},
		{
			Group: "Duties & Taxes",
			Class: class(bs, taxonomy.Liabilities, "Other Current Liabilities", "Statutory Dues Payable"),
		},
		{
			Group: "Provisions",
			Class: class(bs, taxonomy.Liabilities, "Provisions", ""),
		},
		{
			Group: "Current Liabilities",
			Class: class(bs, taxonomy.Liabilities, "Other Current Liabilities", ""),
		},

		// Assets.
		{
			Group: "Fixed Assets",
			Class: class(bs, taxonomy.Assets, "Property, Plant and Equipment", ""),
		},
		{
			Group: "Investments",
			Class: class(bs, taxonomy.Assets, "Investments", ""),
		},
		{
			Group: "Current Assets",
			Class: class(bs, taxonomy.Assets, "Other Current Assets", ""),
		},
		{
			Group: "Sundry Debtors",
			Class: class(bs, taxonomy.Assets, "Trade Receivables", "Unsecured, Considered Good"),
		},
		{
			Group: "Trade Receivables",
			Class: class(bs, taxonomy.Assets, "Trade Receivables", "Unsecured, Considered Good"),
		},
		{
			Group: "Cash-in-Hand",
			Class: class(bs, taxonomy.Assets, "Cash and Bank Balances", "Cash on Hand"),
		},
		{
			// A bank account in credit is an overdraft, not an asset.
			Group:    "Bank Accounts",
			Class:    class(bs, taxonomy.Assets, "Cash and Bank Balances", "Balances with Banks in Current Accounts"),
			Negative: classp(bs, taxonomy.Liabilities, "Other Current Liabilities", "Bank Overdraft"),
		},
		{
			// Trading stock is disclosed as stock-in-trade; manufacturers
			// split inventories by stage downstream.
			Group:   "Stock-in-Hand",
			Class:   class(bs, taxonomy.Assets, "Inventories", ""),
			Trading: classp(bs, taxonomy.Assets, "Inventories", "Stock-in-Trade"),
		},
		{
			Group: "Deposits (Asset)",
			Class: class(bs, taxonomy.Assets, "Long-term Loans and Advances", ""),
		},
		{
			Group: "Loans & Advances (Asset)",
			Class: class(bs, taxonomy.Assets, "Short-term Loans and Advances", ""),
		},

		// Income.
		{
			Group: "Sales Accounts",
			Class: class(pl, taxonomy.Income, "Revenue from Operations", "Sale of Products"),
		},
		{
			Group: "Direct Incomes",
			Class: class(pl, taxonomy.Income, "Revenue from Operations", "Other Operating Revenue"),
		},
		{
			Group: "Indirect Incomes",
			Class: class(pl, taxonomy.Income, "Other Income", "Miscellaneous Income"),
		},

		// Expenses. Purchases map by business type: trading entities buy
		// stock-in-trade, manufacturers consume raw materials.
		{
			Group:         "Purchase Accounts",
			Class:         class(pl, taxonomy.Expenses, "Cost of Materials Consumed", "Purchases of Raw Materials"),
			Trading:       classp(pl, taxonomy.Expenses, "Purchases of Stock-in-Trade", ""),
			Manufacturing: classp(pl, taxonomy.Expenses, "Cost of Materials Consumed", "Purchases of Raw Materials"),
		},
		{
			Group: "Direct Expenses",
			Class: class(pl, taxonomy.Expenses, "Cost of Materials Consumed", "Direct Expenses"),
		},
		{
			Group: "Indirect Expenses",
			Class: class(pl, taxonomy.Expenses, "Other Expenses", "Miscellaneous Expenses"),
		},
	}
}

// seedKeywordRules is the built-in priority keyword seed for expense and
// statutory heads. Higher priority wins; excludes veto.
func seedKeywordRules() []KeywordRule {
	pl := taxonomy.ProfitAndLoss
	exp := taxonomy.Expenses

	return []KeywordRule{
		{
			ID: "KW-AUDIT", Pattern: "audit fee", Priority: 95,
			Class: class(pl, exp, "Other Expenses", "Audit Fee"),
		},
		{
			ID: "KW-BADDEBT", Pattern: "bad debt", Priority: 90,
			Exclude: []string{"provision"},
			Class:   class(pl, exp, "Other Expenses", "Bad Debts Written Off"),
		},
		{
			ID: "KW-DEPN", Pattern: "depreciation", Priority: 85,
			Class: class(pl, exp, "Depreciation and Amortisation Expense", "Depreciation on Tangible Assets"),
		},
		{
			ID: "KW-AMORT", Pattern: "amortisation", Priority: 85,
			Class: class(pl, exp, "Depreciation and Amortisation Expense", "Amortisation of Intangible Assets"),
		},
		{
			ID: "KW-POWER", Pattern: "electricity", Priority: 80,
			Class: class(pl, exp, "Other Expenses", "Power and Fuel"),
		},
		{
			ID: "KW-FUEL", Pattern: "diesel", Priority: 80,
			Class: class(pl, exp, "Other Expenses", "Power and Fuel"),
		},
		{
			ID: "KW-INTEREST", Pattern: "interest", Priority: 75,
			Class: class(pl, exp, "Finance Costs", "Interest Expense on Borrowings"),
		},
		{
			ID: "KW-LEGAL", Pattern: "professional fee", Priority: 70,
			Exclude: []string{"audit"},
			Class:   class(pl, exp, "Other Expenses", "Legal and Professional Fees"),
		},
		{
			ID: "KW-PF", Pattern: "provident fund", Priority: 70,
			Class: class(pl, exp, "Employee Benefits Expense", "Contribution to Provident Fund"),
		},
		{
			ID: "KW-SALARY", Pattern: "salary", Priority: 65,
			Class: class(pl, exp, "Employee Benefits Expense", "Salaries and Wages"),
		},
		{
			ID: "KW-WAGES", Pattern: "wages", Priority: 65,
			Class: class(pl, exp, "Employee Benefits Expense", "Salaries and Wages"),
		},
		{
			ID: "KW-BANKCHG", Pattern: "bank charges", Priority: 60,
			Class: class(pl, exp, "Finance Costs", "Bank Charges"),
		},
		{
			ID: "KW-RENT", Pattern: "rent", Priority: 55,
			Exclude: []string{"rent received", "rental income"},
			Class:   class(pl, exp, "Other Expenses", "Rent"),
		},
		{
			ID: "KW-INSURANCE", Pattern: "insurance", Priority: 55,
			Class: class(pl, exp, "Other Expenses", "Insurance"),
		},
		{
			ID: "KW-TRAVEL", Pattern: "travelling", Priority: 55,
			Class: class(pl, exp, "Other Expenses", "Travelling and Conveyance"),
		},
		{
			ID: "KW-PRINT", Pattern: "printing", Priority: 55,
			Class: class(pl, exp, "Other Expenses", "Printing and Stationery"),
		},
		{
			ID: "KW-OPENSTOCK", Pattern: "opening stock", Priority: 50,
			Class: class(pl, exp, "Changes in Inventories", "Opening Stock"),
		},
		{
			ID: "KW-CLOSESTOCK", Pattern: "closing stock", Priority: 50,
			Class: class(pl, exp, "Changes in Inventories", "Less: Closing Stock"),
		},
	}
}
