package port

import (
	"context"

	"github.com/google/uuid"

	"finsight/internal/domain"
)

// CompanyRepository defines the contract for company persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context, offset, limit int) ([]domain.Company, int, error)
	// UpdateProfile overwrites the registration fields read from a company info sheet.
	UpdateProfile(ctx context.Context, id uuid.UUID, info *domain.CompanyInfoRecord) error
}

// FinancialRecordRepository stores extracted records. Every upsert is keyed
// by company and period (plus the row key for row-oriented types), so a
// re-upload of the same period replaces the earlier figures.
type FinancialRecordRepository interface {
	UpsertBalanceSheet(ctx context.Context, companyID, importID uuid.UUID, rec *domain.BalanceSheetRecord) error
	UpsertIncomeStatement(ctx context.Context, companyID, importID uuid.UUID, rec *domain.IncomeStatementRecord) error
	UpsertTaxReports(ctx context.Context, companyID, importID uuid.UUID, recs []domain.TaxReportRecord) error
	UpsertInvoices(ctx context.Context, companyID, importID uuid.UUID, recs []domain.InvoiceRecord) error
	UpsertHRSalaries(ctx context.Context, companyID, importID uuid.UUID, recs []domain.HRSalaryRecord) error
	UpsertAccountBalances(ctx context.Context, companyID, importID uuid.UUID, recs []domain.AccountBalanceRecord) error

	ListBalanceSheets(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.StoredBalanceSheet, int, error)
	ListIncomeStatements(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.StoredIncomeStatement, int, error)
}

// ImportRepository defines the contract for the upload log.
type ImportRepository interface {
	Create(ctx context.Context, imp *domain.Import) error
	ListByCompany(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.Import, int, error)
}
