package extractor

import (
	"finsight/internal/domain"
	"finsight/internal/workbook"
)

// Row-oriented templates: row 1 is the header, data starts on row 2 and
// ends at the first row whose key column (A) is empty.
const (
	dataStartRow = 2
	keyColumn    = "A"
)

// Header cells carrying the sheet-wide period of each row-oriented template.
const (
	taxReportHeaderPeriod      = "G1"
	invoiceHeaderPeriod        = "I1"
	hrSalaryHeaderPeriod       = "H1"
	accountBalanceHeaderPeriod = "G1"
)

// taxReports: A tax type, B period, C basis, D rate, E payable, F paid.
func taxReports(wb workbook.Workbook, pr *periodReader) []domain.TaxReportRecord {
	header, hasHeader := pr.match(wb, taxReportHeaderPeriod)

	var out []domain.TaxReportRecord
	scanRows(wb, dataStartRow, keyColumn, func(cell func(string) workbook.Value) {
		out = append(out, domain.TaxReportRecord{
			Period:     pr.row(cell("B"), header, hasHeader),
			TaxType:    TextOrDefault(cell("A")),
			TaxBasis:   NumberOrDefault(cell("C")),
			TaxRate:    NumberOrDefault(cell("D")),
			TaxPayable: NumberOrDefault(cell("E")),
			TaxPaid:    NumberOrDefault(cell("F")),
		})
	})
	return out
}

// invoices: A type, B code, C number, D date, E counterparty, F amount,
// G tax, H total. The invoice date doubles as the row period.
func invoices(wb workbook.Workbook, pr *periodReader) []domain.InvoiceRecord {
	header, hasHeader := pr.match(wb, invoiceHeaderPeriod)

	var out []domain.InvoiceRecord
	scanRows(wb, dataStartRow, keyColumn, func(cell func(string) workbook.Value) {
		date := cell("D")
		out = append(out, domain.InvoiceRecord{
			Period:        pr.row(date, header, hasHeader),
			InvoiceType:   TextOrDefault(cell("A")),
			InvoiceCode:   TextOrDefault(cell("B")),
			InvoiceNumber: TextOrDefault(cell("C")),
			InvoiceDate:   DateText(date),
			Counterparty:  TextOrDefault(cell("E")),
			Amount:        NumberOrDefault(cell("F")),
			TaxAmount:     NumberOrDefault(cell("G")),
			TotalAmount:   NumberOrDefault(cell("H")),
		})
	})
	return out
}

// hrSalaries: A department, B headcount, C total salary, D average salary,
// E social insurance, F housing fund, G period.
func hrSalaries(wb workbook.Workbook, pr *periodReader) []domain.HRSalaryRecord {
	header, hasHeader := pr.match(wb, hrSalaryHeaderPeriod)

	var out []domain.HRSalaryRecord
	scanRows(wb, dataStartRow, keyColumn, func(cell func(string) workbook.Value) {
		out = append(out, domain.HRSalaryRecord{
			Period:          pr.row(cell("G"), header, hasHeader),
			Department:      TextOrDefault(cell("A")),
			Headcount:       IntOrDefault(cell("B")),
			TotalSalary:     NumberOrDefault(cell("C")),
			AverageSalary:   NumberOrDefault(cell("D")),
			SocialInsurance: NumberOrDefault(cell("E")),
			HousingFund:     NumberOrDefault(cell("F")),
		})
	})
	return out
}

// accountBalances: A code, B name, C opening, D debit, E credit, F closing.
// Rows carry no period of their own; the G1 header period applies.
func accountBalances(wb workbook.Workbook, pr *periodReader) []domain.AccountBalanceRecord {
	header, hasHeader := pr.match(wb, accountBalanceHeaderPeriod)

	var out []domain.AccountBalanceRecord
	scanRows(wb, dataStartRow, keyColumn, func(cell func(string) workbook.Value) {
		out = append(out, domain.AccountBalanceRecord{
			Period:         pr.row(workbook.Value{}, header, hasHeader),
			AccountCode:    TextOrDefault(cell("A")),
			AccountName:    TextOrDefault(cell("B")),
			OpeningBalance: NumberOrDefault(cell("C")),
			DebitAmount:    NumberOrDefault(cell("D")),
			CreditAmount:   NumberOrDefault(cell("E")),
			ClosingBalance: NumberOrDefault(cell("F")),
		})
	})
	return out
}
