package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Period is a normalized reporting period. Quarter is always derived from Month.
type Period struct {
	Year    int `db:"period_year" json:"period_year"`
	Month   int `db:"period_month" json:"period_month"`
	Quarter int `db:"period_quarter" json:"period_quarter"`
}

// NewPeriod builds a Period for the given year and month (1-12).
func NewPeriod(year, month int) Period {
	return Period{Year: year, Month: month, Quarter: (month + 2) / 3}
}

// QuarterPeriod builds the Period for the last month of quarter q (1-4).
func QuarterPeriod(year, q int) Period {
	return Period{Year: year, Month: q * 3, Quarter: q}
}

// PeriodOf returns the Period containing t.
func PeriodOf(t time.Time) Period {
	return NewPeriod(t.Year(), int(t.Month()))
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Company is a reporting entity whose uploads are stored per period.
type Company struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	CreditCode          string    `db:"credit_code" json:"credit_code"`
	LegalRepresentative string    `db:"legal_representative" json:"legal_representative"`
	RegisteredCapital   float64   `db:"registered_capital" json:"registered_capital"`
	EstablishedDate     string    `db:"established_date" json:"established_date"`
	Industry            string    `db:"industry" json:"industry"`
	Address             string    `db:"address" json:"address"`
	TaxpayerType        string    `db:"taxpayer_type" json:"taxpayer_type"`
	BusinessScope       string    `db:"business_scope" json:"business_scope"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// CompanyInfoRecord is the registration profile read from a company info sheet.
type CompanyInfoRecord struct {
	Name                string  `db:"name" json:"name"`
	CreditCode          string  `db:"credit_code" json:"credit_code"`
	LegalRepresentative string  `db:"legal_representative" json:"legal_representative"`
	RegisteredCapital   float64 `db:"registered_capital" json:"registered_capital"`
	EstablishedDate     string  `db:"established_date" json:"established_date"`
	Industry            string  `db:"industry" json:"industry"`
	Address             string  `db:"address" json:"address"`
	TaxpayerType        string  `db:"taxpayer_type" json:"taxpayer_type"`
	BusinessScope       string  `db:"business_scope" json:"business_scope"`
}

// BalanceSheetRecord holds the positional fields of a balance sheet template.
type BalanceSheetRecord struct {
	Period
	Cash                       float64 `db:"cash" json:"cash"`
	TradingFinancialAssets     float64 `db:"trading_financial_assets" json:"trading_financial_assets"`
	AccountsReceivable         float64 `db:"accounts_receivable" json:"accounts_receivable"`
	NotesReceivable            float64 `db:"notes_receivable" json:"notes_receivable"`
	Prepayments                float64 `db:"prepayments" json:"prepayments"`
	OtherReceivables           float64 `db:"other_receivables" json:"other_receivables"`
	Inventory                  float64 `db:"inventory" json:"inventory"`
	TotalCurrentAssets         float64 `db:"total_current_assets" json:"total_current_assets"`
	LongTermEquityInvestments  float64 `db:"long_term_equity_investments" json:"long_term_equity_investments"`
	FixedAssets                float64 `db:"fixed_assets" json:"fixed_assets"`
	ConstructionInProgress     float64 `db:"construction_in_progress" json:"construction_in_progress"`
	IntangibleAssets           float64 `db:"intangible_assets" json:"intangible_assets"`
	LongTermDeferredExpenses   float64 `db:"long_term_deferred_expenses" json:"long_term_deferred_expenses"`
	TotalNonCurrentAssets      float64 `db:"total_non_current_assets" json:"total_non_current_assets"`
	TotalAssets                float64 `db:"total_assets" json:"total_assets"`
	ShortTermLoans             float64 `db:"short_term_loans" json:"short_term_loans"`
	NotesPayable               float64 `db:"notes_payable" json:"notes_payable"`
	AccountsPayable            float64 `db:"accounts_payable" json:"accounts_payable"`
	AdvanceReceipts            float64 `db:"advance_receipts" json:"advance_receipts"`
	EmployeeBenefitsPayable    float64 `db:"employee_benefits_payable" json:"employee_benefits_payable"`
	TaxesPayable               float64 `db:"taxes_payable" json:"taxes_payable"`
	OtherPayables              float64 `db:"other_payables" json:"other_payables"`
	TotalCurrentLiabilities    float64 `db:"total_current_liabilities" json:"total_current_liabilities"`
	LongTermLoans              float64 `db:"long_term_loans" json:"long_term_loans"`
	TotalNonCurrentLiabilities float64 `db:"total_non_current_liabilities" json:"total_non_current_liabilities"`
	TotalLiabilities           float64 `db:"total_liabilities" json:"total_liabilities"`
	PaidInCapital              float64 `db:"paid_in_capital" json:"paid_in_capital"`
	CapitalReserve             float64 `db:"capital_reserve" json:"capital_reserve"`
	UndistributedProfit        float64 `db:"undistributed_profit" json:"undistributed_profit"`
	TotalEquity                float64 `db:"total_equity" json:"total_equity"`
}

// IncomeStatementRecord holds the positional fields of an income statement template.
type IncomeStatementRecord struct {
	Period
	OperatingRevenue     float64 `db:"operating_revenue" json:"operating_revenue"`
	OperatingCost        float64 `db:"operating_cost" json:"operating_cost"`
	TaxesAndSurcharges   float64 `db:"taxes_and_surcharges" json:"taxes_and_surcharges"`
	SellingExpenses      float64 `db:"selling_expenses" json:"selling_expenses"`
	AdminExpenses        float64 `db:"admin_expenses" json:"admin_expenses"`
	RDExpenses           float64 `db:"rd_expenses" json:"rd_expenses"`
	FinancialExpenses    float64 `db:"financial_expenses" json:"financial_expenses"`
	InvestmentIncome     float64 `db:"investment_income" json:"investment_income"`
	OperatingProfit      float64 `db:"operating_profit" json:"operating_profit"`
	NonOperatingIncome   float64 `db:"non_operating_income" json:"non_operating_income"`
	NonOperatingExpenses float64 `db:"non_operating_expenses" json:"non_operating_expenses"`
	TotalProfit          float64 `db:"total_profit" json:"total_profit"`
	IncomeTaxExpense     float64 `db:"income_tax_expense" json:"income_tax_expense"`
	NetProfit            float64 `db:"net_profit" json:"net_profit"`
}

// TaxReportRecord is one tax line of a tax filing sheet.
type TaxReportRecord struct {
	Period
	TaxType    string  `db:"tax_type" json:"tax_type"`
	TaxBasis   float64 `db:"tax_basis" json:"tax_basis"`
	TaxRate    float64 `db:"tax_rate" json:"tax_rate"`
	TaxPayable float64 `db:"tax_payable" json:"tax_payable"`
	TaxPaid    float64 `db:"tax_paid" json:"tax_paid"`
}

// InvoiceRecord is one invoice line of an invoice register.
type InvoiceRecord struct {
	Period
	InvoiceType   string  `db:"invoice_type" json:"invoice_type"`
	InvoiceCode   string  `db:"invoice_code" json:"invoice_code"`
	InvoiceNumber string  `db:"invoice_number" json:"invoice_number"`
	InvoiceDate   string  `db:"invoice_date" json:"invoice_date"`
	Counterparty  string  `db:"counterparty" json:"counterparty"`
	Amount        float64 `db:"amount" json:"amount"`
	TaxAmount     float64 `db:"tax_amount" json:"tax_amount"`
	TotalAmount   float64 `db:"total_amount" json:"total_amount"`
}

// HRSalaryRecord is one department line of a payroll summary.
type HRSalaryRecord struct {
	Period
	Department      string  `db:"department" json:"department"`
	Headcount       int     `db:"headcount" json:"headcount"`
	TotalSalary     float64 `db:"total_salary" json:"total_salary"`
	AverageSalary   float64 `db:"average_salary" json:"average_salary"`
	SocialInsurance float64 `db:"social_insurance" json:"social_insurance"`
	HousingFund     float64 `db:"housing_fund" json:"housing_fund"`
}

// AccountBalanceRecord is one ledger account line of a trial balance.
type AccountBalanceRecord struct {
	Period
	AccountCode    string  `db:"account_code" json:"account_code"`
	AccountName    string  `db:"account_name" json:"account_name"`
	OpeningBalance float64 `db:"opening_balance" json:"opening_balance"`
	DebitAmount    float64 `db:"debit_amount" json:"debit_amount"`
	CreditAmount   float64 `db:"credit_amount" json:"credit_amount"`
	ClosingBalance float64 `db:"closing_balance" json:"closing_balance"`
}

// ParseResult holds the output of one parse call. Exactly one payload field
// is populated, selected by Type.
type ParseResult struct {
	Type            DocumentType           `json:"document_type"`
	CompanyInfo     *CompanyInfoRecord     `json:"company_info,omitempty"`
	BalanceSheet    *BalanceSheetRecord    `json:"balance_sheet,omitempty"`
	IncomeStatement *IncomeStatementRecord `json:"income_statement,omitempty"`
	TaxReports      []TaxReportRecord      `json:"tax_reports,omitempty"`
	Invoices        []InvoiceRecord        `json:"invoices,omitempty"`
	HRSalaries      []HRSalaryRecord       `json:"hr_salaries,omitempty"`
	AccountBalances []AccountBalanceRecord `json:"account_balances,omitempty"`
	FallbackPeriods int                    `json:"fallback_periods"`
}

// RecordCount returns how many records the result carries.
func (r *ParseResult) RecordCount() int {
	switch r.Type {
	case DocumentTypeCompanyInfo:
		return boolCount(r.CompanyInfo != nil)
	case DocumentTypeBalanceSheet:
		return boolCount(r.BalanceSheet != nil)
	case DocumentTypeIncomeStatement:
		return boolCount(r.IncomeStatement != nil)
	case DocumentTypeTaxReport:
		return len(r.TaxReports)
	case DocumentTypeInvoiceData:
		return len(r.Invoices)
	case DocumentTypeHRSalary:
		return len(r.HRSalaries)
	case DocumentTypeAccountBalance:
		return len(r.AccountBalances)
	default:
		return 0
	}
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

// StoredBalanceSheet is a persisted balance sheet row.
type StoredBalanceSheet struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CompanyID uuid.UUID `db:"company_id" json:"company_id"`
	ImportID  uuid.UUID `db:"import_id" json:"import_id"`
	BalanceSheetRecord
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StoredIncomeStatement is a persisted income statement row.
type StoredIncomeStatement struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CompanyID uuid.UUID `db:"company_id" json:"company_id"`
	ImportID  uuid.UUID `db:"import_id" json:"import_id"`
	IncomeStatementRecord
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Import records one upload attempt against a company.
type Import struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	CompanyID    uuid.UUID    `db:"company_id" json:"company_id"`
	OriginalName string       `db:"original_name" json:"original_name"`
	FileSize     int64        `db:"file_size" json:"file_size"`
	DocumentType DocumentType `db:"document_type" json:"document_type"`
	RecordCount  int          `db:"record_count" json:"record_count"`
	Status       ImportStatus `db:"status" json:"status"`
	Message      string       `db:"message" json:"message"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

// ImportResult is returned to the uploader after a successful ingest.
type ImportResult struct {
	Import *Import      `json:"import"`
	Result *ParseResult `json:"result"`
}
