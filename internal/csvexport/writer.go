package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"finsight/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	companyInfoColumns = []string{
		"Name", "Credit Code", "Legal Representative", "Registered Capital",
		"Established Date", "Industry", "Address", "Taxpayer Type", "Business Scope",
	}
	balanceSheetColumns = []string{
		"Period",
		"Cash", "Trading Financial Assets", "Accounts Receivable", "Notes Receivable",
		"Prepayments", "Other Receivables", "Inventory", "Total Current Assets",
		"Long-term Equity Investments", "Fixed Assets", "Construction In Progress",
		"Intangible Assets", "Long-term Deferred Expenses", "Total Non-current Assets",
		"Total Assets",
		"Short-term Loans", "Notes Payable", "Accounts Payable", "Advance Receipts",
		"Employee Benefits Payable", "Taxes Payable", "Other Payables",
		"Total Current Liabilities", "Long-term Loans", "Total Non-current Liabilities",
		"Total Liabilities", "Paid-in Capital", "Capital Reserve",
		"Undistributed Profit", "Total Equity",
	}
	incomeStatementColumns = []string{
		"Period",
		"Operating Revenue", "Operating Cost", "Taxes And Surcharges", "Selling Expenses",
		"Admin Expenses", "R&D Expenses", "Financial Expenses", "Investment Income",
		"Operating Profit", "Non-operating Income", "Non-operating Expenses",
		"Total Profit", "Income Tax Expense", "Net Profit",
	}
	taxReportColumns = []string{
		"Period", "Tax Type", "Tax Basis", "Tax Rate", "Tax Payable", "Tax Paid",
	}
	invoiceColumns = []string{
		"Period", "Invoice Type", "Invoice Code", "Invoice Number", "Invoice Date",
		"Counterparty", "Amount", "Tax Amount", "Total Amount",
	}
	hrSalaryColumns = []string{
		"Period", "Department", "Headcount", "Total Salary", "Average Salary",
		"Social Insurance", "Housing Fund",
	}
	accountBalanceColumns = []string{
		"Period", "Account Code", "Account Name", "Opening Balance", "Debit Amount",
		"Credit Amount", "Closing Balance",
	}
)

// Writer wraps csv.Writer for exporting parsed records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteResult writes a header row followed by one row per record in res.
func (w *Writer) WriteResult(res *domain.ParseResult) error {
	header, rows, err := resultRows(res)
	if err != nil {
		return err
	}
	if err := w.csv.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func resultRows(res *domain.ParseResult) (header []string, rows [][]string, err error) {
	switch res.Type {
	case domain.DocumentTypeCompanyInfo:
		if ci := res.CompanyInfo; ci != nil {
			rows = append(rows, []string{
				ci.Name, ci.CreditCode, ci.LegalRepresentative, formatMoney(ci.RegisteredCapital),
				ci.EstablishedDate, ci.Industry, ci.Address, ci.TaxpayerType, ci.BusinessScope,
			})
		}
		return companyInfoColumns, rows, nil

	case domain.DocumentTypeBalanceSheet:
		if bs := res.BalanceSheet; bs != nil {
			rows = append(rows, periodRow(bs.Period,
				bs.Cash, bs.TradingFinancialAssets, bs.AccountsReceivable, bs.NotesReceivable,
				bs.Prepayments, bs.OtherReceivables, bs.Inventory, bs.TotalCurrentAssets,
				bs.LongTermEquityInvestments, bs.FixedAssets, bs.ConstructionInProgress,
				bs.IntangibleAssets, bs.LongTermDeferredExpenses, bs.TotalNonCurrentAssets,
				bs.TotalAssets,
				bs.ShortTermLoans, bs.NotesPayable, bs.AccountsPayable, bs.AdvanceReceipts,
				bs.EmployeeBenefitsPayable, bs.TaxesPayable, bs.OtherPayables,
				bs.TotalCurrentLiabilities, bs.LongTermLoans, bs.TotalNonCurrentLiabilities,
				bs.TotalLiabilities, bs.PaidInCapital, bs.CapitalReserve,
				bs.UndistributedProfit, bs.TotalEquity,
			))
		}
		return balanceSheetColumns, rows, nil

	case domain.DocumentTypeIncomeStatement:
		if is := res.IncomeStatement; is != nil {
			rows = append(rows, periodRow(is.Period,
				is.OperatingRevenue, is.OperatingCost, is.TaxesAndSurcharges, is.SellingExpenses,
				is.AdminExpenses, is.RDExpenses, is.FinancialExpenses, is.InvestmentIncome,
				is.OperatingProfit, is.NonOperatingIncome, is.NonOperatingExpenses,
				is.TotalProfit, is.IncomeTaxExpense, is.NetProfit,
			))
		}
		return incomeStatementColumns, rows, nil

	case domain.DocumentTypeTaxReport:
		for _, r := range res.TaxReports {
			rows = append(rows, []string{
				r.Period.String(), r.TaxType, formatMoney(r.TaxBasis), formatRate(r.TaxRate),
				formatMoney(r.TaxPayable), formatMoney(r.TaxPaid),
			})
		}
		return taxReportColumns, rows, nil

	case domain.DocumentTypeInvoiceData:
		for _, r := range res.Invoices {
			rows = append(rows, []string{
				r.Period.String(), r.InvoiceType, r.InvoiceCode, r.InvoiceNumber, r.InvoiceDate,
				r.Counterparty, formatMoney(r.Amount), formatMoney(r.TaxAmount), formatMoney(r.TotalAmount),
			})
		}
		return invoiceColumns, rows, nil

	case domain.DocumentTypeHRSalary:
		for _, r := range res.HRSalaries {
			rows = append(rows, []string{
				r.Period.String(), r.Department, strconv.Itoa(r.Headcount), formatMoney(r.TotalSalary),
				formatMoney(r.AverageSalary), formatMoney(r.SocialInsurance), formatMoney(r.HousingFund),
			})
		}
		return hrSalaryColumns, rows, nil

	case domain.DocumentTypeAccountBalance:
		for _, r := range res.AccountBalances {
			rows = append(rows, []string{
				r.Period.String(), r.AccountCode, r.AccountName, formatMoney(r.OpeningBalance),
				formatMoney(r.DebitAmount), formatMoney(r.CreditAmount), formatMoney(r.ClosingBalance),
			})
		}
		return accountBalanceColumns, rows, nil
	}
	return nil, nil, fmt.Errorf("csvexport %q: %w", res.Type, domain.ErrUnknownDocumentType)
}

func periodRow(p domain.Period, amounts ...float64) []string {
	row := make([]string, 0, len(amounts)+1)
	row = append(row, p.String())
	for _, a := range amounts {
		row = append(row, formatMoney(a))
	}
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatRate keeps rates such as 0.13 or 0.065 exact.
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// unsafeChars matches characters that are not letters, digits, hyphen, or underscore.
var unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a workbook name for use as an output file name.
// Replaces anything but letters, digits, - and _ with _, collapses
// consecutive underscores, and truncates to 100 runes.
func SanitizeFilename(name string) string {
	s := unsafeChars.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if r := []rune(s); len(r) > 100 {
		s = string(r[:100])
	}
	return s
}

// BuildFilename returns the export file name for a parsed workbook.
// Format: {sanitized_name}_{document_type}_{YYYY-MM-DD}.csv
func BuildFilename(name string, t domain.DocumentType) string {
	sanitized := SanitizeFilename(strings.TrimSuffix(name, extOf(name)))
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s_%s.csv", sanitized, t, date)
}

func extOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[i:]
	}
	return ""
}
