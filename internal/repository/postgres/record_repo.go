package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"finsight/internal/domain"
	"finsight/internal/port"
)

type recordRepo struct {
	db *sqlx.DB
}

// NewRecordRepo creates a new PostgreSQL-backed FinancialRecordRepository.
func NewRecordRepo(db *sqlx.DB) port.FinancialRecordRepository {
	return &recordRepo{db: db}
}

// rowKeys carries the columns every stored record shares.
type rowKeys struct {
	ID        uuid.UUID `db:"id"`
	CompanyID uuid.UUID `db:"company_id"`
	ImportID  uuid.UUID `db:"import_id"`
}

func newRowKeys(companyID, importID uuid.UUID) rowKeys {
	return rowKeys{ID: uuid.New(), CompanyID: companyID, ImportID: importID}
}

type balanceSheetRow struct {
	rowKeys
	domain.BalanceSheetRecord
}

type incomeStatementRow struct {
	rowKeys
	domain.IncomeStatementRecord
}

type taxReportRow struct {
	rowKeys
	domain.TaxReportRecord
}

type invoiceRow struct {
	rowKeys
	domain.InvoiceRecord
}

type hrSalaryRow struct {
	rowKeys
	domain.HRSalaryRecord
}

type accountBalanceRow struct {
	rowKeys
	domain.AccountBalanceRecord
}

const upsertBalanceSheetQuery = `
	INSERT INTO balance_sheets (
		id, company_id, import_id, period_year, period_month, period_quarter,
		cash, trading_financial_assets, accounts_receivable, notes_receivable,
		prepayments, other_receivables, inventory, total_current_assets,
		long_term_equity_investments, fixed_assets, construction_in_progress,
		intangible_assets, long_term_deferred_expenses, total_non_current_assets,
		total_assets,
		short_term_loans, notes_payable, accounts_payable, advance_receipts,
		employee_benefits_payable, taxes_payable, other_payables,
		total_current_liabilities, long_term_loans, total_non_current_liabilities,
		total_liabilities, paid_in_capital, capital_reserve, undistributed_profit,
		total_equity,
		created_at, updated_at
	) VALUES (
		:id, :company_id, :import_id, :period_year, :period_month, :period_quarter,
		:cash, :trading_financial_assets, :accounts_receivable, :notes_receivable,
		:prepayments, :other_receivables, :inventory, :total_current_assets,
		:long_term_equity_investments, :fixed_assets, :construction_in_progress,
		:intangible_assets, :long_term_deferred_expenses, :total_non_current_assets,
		:total_assets,
		:short_term_loans, :notes_payable, :accounts_payable, :advance_receipts,
		:employee_benefits_payable, :taxes_payable, :other_payables,
		:total_current_liabilities, :long_term_loans, :total_non_current_liabilities,
		:total_liabilities, :paid_in_capital, :capital_reserve, :undistributed_profit,
		:total_equity,
		NOW(), NOW()
	)
	ON CONFLICT (company_id, period_year, period_month) DO UPDATE SET
		import_id = EXCLUDED.import_id,
		period_quarter = EXCLUDED.period_quarter,
		cash = EXCLUDED.cash,
		trading_financial_assets = EXCLUDED.trading_financial_assets,
		accounts_receivable = EXCLUDED.accounts_receivable,
		notes_receivable = EXCLUDED.notes_receivable,
		prepayments = EXCLUDED.prepayments,
		other_receivables = EXCLUDED.other_receivables,
		inventory = EXCLUDED.inventory,
		total_current_assets = EXCLUDED.total_current_assets,
		long_term_equity_investments = EXCLUDED.long_term_equity_investments,
		fixed_assets = EXCLUDED.fixed_assets,
		construction_in_progress = EXCLUDED.construction_in_progress,
		intangible_assets = EXCLUDED.intangible_assets,
		long_term_deferred_expenses = EXCLUDED.long_term_deferred_expenses,
		total_non_current_assets = EXCLUDED.total_non_current_assets,
		total_assets = EXCLUDED.total_assets,
		short_term_loans = EXCLUDED.short_term_loans,
		notes_payable = EXCLUDED.notes_payable,
		accounts_payable = EXCLUDED.accounts_payable,
		advance_receipts = EXCLUDED.advance_receipts,
		employee_benefits_payable = EXCLUDED.employee_benefits_payable,
		taxes_payable = EXCLUDED.taxes_payable,
		other_payables = EXCLUDED.other_payables,
		total_current_liabilities = EXCLUDED.total_current_liabilities,
		long_term_loans = EXCLUDED.long_term_loans,
		total_non_current_liabilities = EXCLUDED.total_non_current_liabilities,
		total_liabilities = EXCLUDED.total_liabilities,
		paid_in_capital = EXCLUDED.paid_in_capital,
		capital_reserve = EXCLUDED.capital_reserve,
		undistributed_profit = EXCLUDED.undistributed_profit,
		total_equity = EXCLUDED.total_equity,
		updated_at = NOW()`

const upsertIncomeStatementQuery = `
	INSERT INTO income_statements (
		id, company_id, import_id, period_year, period_month, period_quarter,
		operating_revenue, operating_cost, taxes_and_surcharges, selling_expenses,
		admin_expenses, rd_expenses, financial_expenses, investment_income,
		operating_profit, non_operating_income, non_operating_expenses,
		total_profit, income_tax_expense, net_profit,
		created_at, updated_at
	) VALUES (
		:id, :company_id, :import_id, :period_year, :period_month, :period_quarter,
		:operating_revenue, :operating_cost, :taxes_and_surcharges, :selling_expenses,
		:admin_expenses, :rd_expenses, :financial_expenses, :investment_income,
		:operating_profit, :non_operating_income, :non_operating_expenses,
		:total_profit, :income_tax_expense, :net_profit,
		NOW(), NOW()
	)
	ON CONFLICT (company_id, period_year, period_month) DO UPDATE SET
		import_id = EXCLUDED.import_id,
		period_quarter = EXCLUDED.period_quarter,
		operating_revenue = EXCLUDED.operating_revenue,
		operating_cost = EXCLUDED.operating_cost,
		taxes_and_surcharges = EXCLUDED.taxes_and_surcharges,
		selling_expenses = EXCLUDED.selling_expenses,
		admin_expenses = EXCLUDED.admin_expenses,
		rd_expenses = EXCLUDED.rd_expenses,
		financial_expenses = EXCLUDED.financial_expenses,
		investment_income = EXCLUDED.investment_income,
		operating_profit = EXCLUDED.operating_profit,
		non_operating_income = EXCLUDED.non_operating_income,
		non_operating_expenses = EXCLUDED.non_operating_expenses,
		total_profit = EXCLUDED.total_profit,
		income_tax_expense = EXCLUDED.income_tax_expense,
		net_profit = EXCLUDED.net_profit,
		updated_at = NOW()`

const upsertTaxReportQuery = `
	INSERT INTO tax_reports (
		id, company_id, import_id, period_year, period_month, period_quarter,
		tax_type, tax_basis, tax_rate, tax_payable, tax_paid, created_at, updated_at
	) VALUES (
		:id, :company_id, :import_id, :period_year, :period_month, :period_quarter,
		:tax_type, :tax_basis, :tax_rate, :tax_payable, :tax_paid, NOW(), NOW()
	)
	ON CONFLICT (company_id, period_year, period_month, tax_type) DO UPDATE SET
		import_id = EXCLUDED.import_id,
		tax_basis = EXCLUDED.tax_basis,
		tax_rate = EXCLUDED.tax_rate,
		tax_payable = EXCLUDED.tax_payable,
		tax_paid = EXCLUDED.tax_paid,
		updated_at = NOW()`

const upsertInvoiceQuery = `
	INSERT INTO invoices (
		id, company_id, import_id, period_year, period_month, period_quarter,
		invoice_type, invoice_code, invoice_number, invoice_date, counterparty,
		amount, tax_amount, total_amount, created_at, updated_at
	) VALUES (
		:id, :company_id, :import_id, :period_year, :period_month, :period_quarter,
		:invoice_type, :invoice_code, :invoice_number, :invoice_date, :counterparty,
		:amount, :tax_amount, :total_amount, NOW(), NOW()
	)
	ON CONFLICT (company_id, invoice_code, invoice_number) DO UPDATE SET
		import_id = EXCLUDED.import_id,
		period_year = EXCLUDED.period_year,
		period_month = EXCLUDED.period_month,
		period_quarter = EXCLUDED.period_quarter,
		invoice_type = EXCLUDED.invoice_type,
		invoice_date = EXCLUDED.invoice_date,
		counterparty = EXCLUDED.counterparty,
		amount = EXCLUDED.amount,
		tax_amount = EXCLUDED.tax_amount,
		total_amount = EXCLUDED.total_amount,
		updated_at = NOW()`

const upsertHRSalaryQuery = `
	INSERT INTO hr_salaries (
		id, company_id, import_id, period_year, period_month, period_quarter,
		department, headcount, total_salary, average_salary, social_insurance,
		housing_fund, created_at, updated_at
	) VALUES (
		:id, :company_id, :import_id, :period_year, :period_month, :period_quarter,
		:department, :headcount, :total_salary, :average_salary, :social_insurance,
		:housing_fund, NOW(), NOW()
	)
	ON CONFLICT (company_id, period_year, period_month, department) DO UPDATE SET
		import_id = EXCLUDED.import_id,
		headcount = EXCLUDED.headcount,
		total_salary = EXCLUDED.total_salary,
		average_salary = EXCLUDED.average_salary,
		social_insurance = EXCLUDED.social_insurance,
		housing_fund = EXCLUDED.housing_fund,
		updated_at = NOW()`

const upsertAccountBalanceQuery = `
	INSERT INTO account_balances (
		id, company_id, import_id, period_year, period_month, period_quarter,
		account_code, account_name, opening_balance, debit_amount, credit_amount,
		closing_balance, created_at, updated_at
	) VALUES (
		:id, :company_id, :import_id, :period_year, :period_month, :period_quarter,
		:account_code, :account_name, :opening_balance, :debit_amount, :credit_amount,
		:closing_balance, NOW(), NOW()
	)
	ON CONFLICT (company_id, period_year, period_month, account_code) DO UPDATE SET
		import_id = EXCLUDED.import_id,
		account_name = EXCLUDED.account_name,
		opening_balance = EXCLUDED.opening_balance,
		debit_amount = EXCLUDED.debit_amount,
		credit_amount = EXCLUDED.credit_amount,
		closing_balance = EXCLUDED.closing_balance,
		updated_at = NOW()`

func (r *recordRepo) UpsertBalanceSheet(ctx context.Context, companyID, importID uuid.UUID, rec *domain.BalanceSheetRecord) error {
	row := balanceSheetRow{rowKeys: newRowKeys(companyID, importID), BalanceSheetRecord: *rec}
	if _, err := r.db.NamedExecContext(ctx, upsertBalanceSheetQuery, row); err != nil {
		return fmt.Errorf("recordRepo.UpsertBalanceSheet: %w", err)
	}
	return nil
}

func (r *recordRepo) UpsertIncomeStatement(ctx context.Context, companyID, importID uuid.UUID, rec *domain.IncomeStatementRecord) error {
	row := incomeStatementRow{rowKeys: newRowKeys(companyID, importID), IncomeStatementRecord: *rec}
	if _, err := r.db.NamedExecContext(ctx, upsertIncomeStatementQuery, row); err != nil {
		return fmt.Errorf("recordRepo.UpsertIncomeStatement: %w", err)
	}
	return nil
}

// Row-oriented uploads are all-or-nothing: one transaction per call.

func (r *recordRepo) UpsertTaxReports(ctx context.Context, companyID, importID uuid.UUID, recs []domain.TaxReportRecord) error {
	rows := make([]any, 0, len(recs))
	for i := range recs {
		rows = append(rows, taxReportRow{rowKeys: newRowKeys(companyID, importID), TaxReportRecord: recs[i]})
	}
	if err := r.upsertRows(ctx, upsertTaxReportQuery, rows); err != nil {
		return fmt.Errorf("recordRepo.UpsertTaxReports: %w", err)
	}
	return nil
}

func (r *recordRepo) UpsertInvoices(ctx context.Context, companyID, importID uuid.UUID, recs []domain.InvoiceRecord) error {
	rows := make([]any, 0, len(recs))
	for i := range recs {
		rows = append(rows, invoiceRow{rowKeys: newRowKeys(companyID, importID), InvoiceRecord: recs[i]})
	}
	if err := r.upsertRows(ctx, upsertInvoiceQuery, rows); err != nil {
		return fmt.Errorf("recordRepo.UpsertInvoices: %w", err)
	}
	return nil
}

func (r *recordRepo) UpsertHRSalaries(ctx context.Context, companyID, importID uuid.UUID, recs []domain.HRSalaryRecord) error {
	rows := make([]any, 0, len(recs))
	for i := range recs {
		rows = append(rows, hrSalaryRow{rowKeys: newRowKeys(companyID, importID), HRSalaryRecord: recs[i]})
	}
	if err := r.upsertRows(ctx, upsertHRSalaryQuery, rows); err != nil {
		return fmt.Errorf("recordRepo.UpsertHRSalaries: %w", err)
	}
	return nil
}

func (r *recordRepo) UpsertAccountBalances(ctx context.Context, companyID, importID uuid.UUID, recs []domain.AccountBalanceRecord) error {
	rows := make([]any, 0, len(recs))
	for i := range recs {
		rows = append(rows, accountBalanceRow{rowKeys: newRowKeys(companyID, importID), AccountBalanceRecord: recs[i]})
	}
	if err := r.upsertRows(ctx, upsertAccountBalanceQuery, rows); err != nil {
		return fmt.Errorf("recordRepo.UpsertAccountBalances: %w", err)
	}
	return nil
}

func (r *recordRepo) upsertRows(ctx context.Context, query string, rows []any) error {
	if len(rows) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, query)
		if err != nil {
			return fmt.Errorf("preparing upsert: %w", err)
		}
		defer stmt.Close()

		for i, row := range rows {
			if _, err := stmt.ExecContext(ctx, row); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		return nil
	})
}

func (r *recordRepo) ListBalanceSheets(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.StoredBalanceSheet, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM balance_sheets WHERE company_id = $1", companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("recordRepo.ListBalanceSheets count: %w", err)
	}

	var sheets []domain.StoredBalanceSheet
	err = r.db.SelectContext(ctx, &sheets,
		`SELECT * FROM balance_sheets WHERE company_id = $1
		 ORDER BY period_year DESC, period_month DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("recordRepo.ListBalanceSheets: %w", err)
	}
	return sheets, total, nil
}

func (r *recordRepo) ListIncomeStatements(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.StoredIncomeStatement, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM income_statements WHERE company_id = $1", companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("recordRepo.ListIncomeStatements count: %w", err)
	}

	var statements []domain.StoredIncomeStatement
	err = r.db.SelectContext(ctx, &statements,
		`SELECT * FROM income_statements WHERE company_id = $1
		 ORDER BY period_year DESC, period_month DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("recordRepo.ListIncomeStatements: %w", err)
	}
	return statements, total, nil
}
