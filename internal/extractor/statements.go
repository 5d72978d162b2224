package extractor

import (
	"finsight/internal/domain"
	"finsight/internal/workbook"
)

// Candidate cells holding the statement period, in priority order.
var (
	balanceSheetPeriodCells    = []string{"B3", "B2", "B1", "C3"}
	incomeStatementPeriodCells = []string{"B1", "B2"}
)

// balanceSheet reads assets from column B and liabilities and equity from
// column D, rows 4-18.
func balanceSheet(wb workbook.Workbook, pr *periodReader) *domain.BalanceSheetRecord {
	rec := &domain.BalanceSheetRecord{Period: pr.sheet(wb, balanceSheetPeriodCells...)}
	readNumbers(wb, []numCell{
		{"B4", &rec.Cash},
		{"B5", &rec.TradingFinancialAssets},
		{"B6", &rec.AccountsReceivable},
		{"B7", &rec.NotesReceivable},
		{"B8", &rec.Prepayments},
		{"B9", &rec.OtherReceivables},
		{"B10", &rec.Inventory},
		{"B11", &rec.TotalCurrentAssets},
		{"B12", &rec.LongTermEquityInvestments},
		{"B13", &rec.FixedAssets},
		{"B14", &rec.ConstructionInProgress},
		{"B15", &rec.IntangibleAssets},
		{"B16", &rec.LongTermDeferredExpenses},
		{"B17", &rec.TotalNonCurrentAssets},
		{"B18", &rec.TotalAssets},

		{"D4", &rec.ShortTermLoans},
		{"D5", &rec.NotesPayable},
		{"D6", &rec.AccountsPayable},
		{"D7", &rec.AdvanceReceipts},
		{"D8", &rec.EmployeeBenefitsPayable},
		{"D9", &rec.TaxesPayable},
		{"D10", &rec.OtherPayables},
		{"D11", &rec.TotalCurrentLiabilities},
		{"D12", &rec.LongTermLoans},
		{"D13", &rec.TotalNonCurrentLiabilities},
		{"D14", &rec.TotalLiabilities},
		{"D15", &rec.PaidInCapital},
		{"D16", &rec.CapitalReserve},
		{"D17", &rec.UndistributedProfit},
		{"D18", &rec.TotalEquity},
	})
	return rec
}

func incomeStatement(wb workbook.Workbook, pr *periodReader) *domain.IncomeStatementRecord {
	rec := &domain.IncomeStatementRecord{Period: pr.sheet(wb, incomeStatementPeriodCells...)}
	readNumbers(wb, []numCell{
		{"B3", &rec.OperatingRevenue},
		{"B4", &rec.OperatingCost},
		{"B5", &rec.TaxesAndSurcharges},
		{"B6", &rec.SellingExpenses},
		{"B7", &rec.AdminExpenses},
		{"B8", &rec.RDExpenses},
		{"B9", &rec.FinancialExpenses},
		{"B10", &rec.InvestmentIncome},
		{"B11", &rec.OperatingProfit},
		{"B12", &rec.NonOperatingIncome},
		{"B13", &rec.NonOperatingExpenses},
		{"B14", &rec.TotalProfit},
		{"B15", &rec.IncomeTaxExpense},
		{"B16", &rec.NetProfit},
	})
	return rec
}

// companyInfo reads label/value pairs: labels in column A, values in B.
func companyInfo(wb workbook.Workbook) *domain.CompanyInfoRecord {
	return &domain.CompanyInfoRecord{
		Name:                TextOrDefault(wb.Cell("B1")),
		CreditCode:          TextOrDefault(wb.Cell("B2")),
		LegalRepresentative: TextOrDefault(wb.Cell("B3")),
		RegisteredCapital:   NumberOrDefault(wb.Cell("B4")),
		EstablishedDate:     DateText(wb.Cell("B5")),
		Industry:            TextOrDefault(wb.Cell("B6")),
		Address:             TextOrDefault(wb.Cell("B7")),
		TaxpayerType:        TextOrDefault(wb.Cell("B8")),
		BusinessScope:       TextOrDefault(wb.Cell("B9")),
	}
}
