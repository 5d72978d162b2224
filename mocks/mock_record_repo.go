package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"finsight/internal/domain"
)

// MockRecordRepo is a mock implementation of port.FinancialRecordRepository.
type MockRecordRepo struct {
	mock.Mock
}

func (m *MockRecordRepo) UpsertBalanceSheet(ctx context.Context, companyID, importID uuid.UUID, rec *domain.BalanceSheetRecord) error {
	args := m.Called(ctx, companyID, importID, rec)
	return args.Error(0)
}

func (m *MockRecordRepo) UpsertIncomeStatement(ctx context.Context, companyID, importID uuid.UUID, rec *domain.IncomeStatementRecord) error {
	args := m.Called(ctx, companyID, importID, rec)
	return args.Error(0)
}

func (m *MockRecordRepo) UpsertTaxReports(ctx context.Context, companyID, importID uuid.UUID, recs []domain.TaxReportRecord) error {
	args := m.Called(ctx, companyID, importID, recs)
	return args.Error(0)
}

func (m *MockRecordRepo) UpsertInvoices(ctx context.Context, companyID, importID uuid.UUID, recs []domain.InvoiceRecord) error {
	args := m.Called(ctx, companyID, importID, recs)
	return args.Error(0)
}

func (m *MockRecordRepo) UpsertHRSalaries(ctx context.Context, companyID, importID uuid.UUID, recs []domain.HRSalaryRecord) error {
	args := m.Called(ctx, companyID, importID, recs)
	return args.Error(0)
}

func (m *MockRecordRepo) UpsertAccountBalances(ctx context.Context, companyID, importID uuid.UUID, recs []domain.AccountBalanceRecord) error {
	args := m.Called(ctx, companyID, importID, recs)
	return args.Error(0)
}

func (m *MockRecordRepo) ListBalanceSheets(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.StoredBalanceSheet, int, error) {
	args := m.Called(ctx, companyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.StoredBalanceSheet), args.Int(1), args.Error(2)
}

func (m *MockRecordRepo) ListIncomeStatements(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.StoredIncomeStatement, int, error) {
	args := m.Called(ctx, companyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.StoredIncomeStatement), args.Int(1), args.Error(2)
}
