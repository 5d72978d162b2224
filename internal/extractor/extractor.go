// Package extractor reads the fixed cell layouts of the known templates into
// structured records. Extraction is positional: it trusts that the sheet
// follows the template its type names and never searches for labels.
package extractor

import (
	"fmt"
	"strconv"

	"finsight/internal/domain"
	"finsight/internal/period"
	"finsight/internal/workbook"
)

// maxScanRows bounds row-oriented scans on sheets whose last row is unknown.
const maxScanRows = 100000

// Extractor parses workbooks, resolving periods with its Resolver.
type Extractor struct {
	resolver *period.Resolver
}

// New returns an Extractor. A nil resolver uses the wall clock.
func New(resolver *period.Resolver) *Extractor {
	if resolver == nil {
		resolver = period.NewResolver(nil)
	}
	return &Extractor{resolver: resolver}
}

// Parse dispatches to the extractor for t.
func (e *Extractor) Parse(t domain.DocumentType, wb workbook.Workbook) (*domain.ParseResult, error) {
	pr := e.newPeriodReader()
	res := &domain.ParseResult{Type: t}

	switch t {
	case domain.DocumentTypeCompanyInfo:
		res.CompanyInfo = companyInfo(wb)
	case domain.DocumentTypeBalanceSheet:
		res.BalanceSheet = balanceSheet(wb, pr)
	case domain.DocumentTypeIncomeStatement:
		res.IncomeStatement = incomeStatement(wb, pr)
	case domain.DocumentTypeTaxReport:
		res.TaxReports = taxReports(wb, pr)
	case domain.DocumentTypeInvoiceData:
		res.Invoices = invoices(wb, pr)
	case domain.DocumentTypeHRSalary:
		res.HRSalaries = hrSalaries(wb, pr)
	case domain.DocumentTypeAccountBalance:
		res.AccountBalances = accountBalances(wb, pr)
	default:
		return nil, fmt.Errorf("extractor.Parse %q: %w", t, domain.ErrUnknownDocumentType)
	}

	res.FallbackPeriods = pr.fallbacks
	return res, nil
}

// ParseBytes opens data and parses it as type t.
func (e *Extractor) ParseBytes(t domain.DocumentType, data []byte) (*domain.ParseResult, error) {
	wb, err := workbook.Open(data)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()

	return e.Parse(t, wb)
}

var defaultExtractor = New(nil)

// Parse parses wb as type t with the wall-clock period fallback.
func Parse(t domain.DocumentType, wb workbook.Workbook) (*domain.ParseResult, error) {
	return defaultExtractor.Parse(t, wb)
}

// ParseCompanyInfo parses a company info workbook.
func ParseCompanyInfo(data []byte) (*domain.CompanyInfoRecord, error) {
	res, err := defaultExtractor.ParseBytes(domain.DocumentTypeCompanyInfo, data)
	if err != nil {
		return nil, err
	}
	return res.CompanyInfo, nil
}

// ParseBalanceSheet parses a balance sheet workbook.
func ParseBalanceSheet(data []byte) (*domain.BalanceSheetRecord, error) {
	res, err := defaultExtractor.ParseBytes(domain.DocumentTypeBalanceSheet, data)
	if err != nil {
		return nil, err
	}
	return res.BalanceSheet, nil
}

// ParseIncomeStatement parses an income statement workbook.
func ParseIncomeStatement(data []byte) (*domain.IncomeStatementRecord, error) {
	res, err := defaultExtractor.ParseBytes(domain.DocumentTypeIncomeStatement, data)
	if err != nil {
		return nil, err
	}
	return res.IncomeStatement, nil
}

// ParseTaxReport parses a tax filing workbook.
func ParseTaxReport(data []byte) ([]domain.TaxReportRecord, error) {
	res, err := defaultExtractor.ParseBytes(domain.DocumentTypeTaxReport, data)
	if err != nil {
		return nil, err
	}
	return res.TaxReports, nil
}

// ParseInvoiceData parses an invoice register workbook.
func ParseInvoiceData(data []byte) ([]domain.InvoiceRecord, error) {
	res, err := defaultExtractor.ParseBytes(domain.DocumentTypeInvoiceData, data)
	if err != nil {
		return nil, err
	}
	return res.Invoices, nil
}

// ParseHRSalary parses a payroll summary workbook.
func ParseHRSalary(data []byte) ([]domain.HRSalaryRecord, error) {
	res, err := defaultExtractor.ParseBytes(domain.DocumentTypeHRSalary, data)
	if err != nil {
		return nil, err
	}
	return res.HRSalaries, nil
}

// ParseAccountBalance parses a trial balance workbook.
func ParseAccountBalance(data []byte) ([]domain.AccountBalanceRecord, error) {
	res, err := defaultExtractor.ParseBytes(domain.DocumentTypeAccountBalance, data)
	if err != nil {
		return nil, err
	}
	return res.AccountBalances, nil
}

// periodReader resolves period cells for one parse call and counts how many
// periods had to fall back to the current date.
type periodReader struct {
	resolver  *period.Resolver
	fallbacks int
}

func (e *Extractor) newPeriodReader() *periodReader {
	return &periodReader{resolver: e.resolver}
}

// match returns the period of the first candidate cell that denotes one.
func (p *periodReader) match(wb workbook.Workbook, cells ...string) (domain.Period, bool) {
	for _, c := range cells {
		if got, ok := p.resolver.Match(wb.Cell(c)); ok {
			return got, true
		}
	}
	return domain.Period{}, false
}

// sheet resolves a sheet-level period from the candidate cells, falling back
// to the current period.
func (p *periodReader) sheet(wb workbook.Workbook, cells ...string) domain.Period {
	if got, ok := p.match(wb, cells...); ok {
		return got
	}
	p.fallbacks++
	return p.resolver.Current()
}

// row resolves a row's period: its own cell, then the sheet header period,
// then the current period.
func (p *periodReader) row(v workbook.Value, header domain.Period, hasHeader bool) domain.Period {
	if got, ok := p.resolver.Match(v); ok {
		return got
	}
	if hasHeader {
		return header
	}
	p.fallbacks++
	return p.resolver.Current()
}

type numCell struct {
	addr string
	dst  *float64
}

func readNumbers(wb workbook.Workbook, cells []numCell) {
	for _, c := range cells {
		*c.dst = NumberOrDefault(wb.Cell(c.addr))
	}
}

// scanRows calls fn for each row from start while the key column is
// non-empty.
func scanRows(wb workbook.Workbook, start int, keyCol string, fn func(cell func(col string) workbook.Value)) {
	last := wb.MaxRow()
	if last <= 0 || last > maxScanRows {
		last = maxScanRows
	}
	for row := start; row <= last; row++ {
		r := strconv.Itoa(row)
		if wb.Cell(keyCol + r).IsEmpty() {
			return
		}
		fn(func(col string) workbook.Value { return wb.Cell(col + r) })
	}
}
