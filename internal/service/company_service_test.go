package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"finsight/internal/domain"
	"finsight/internal/service"
	"finsight/mocks"
)

func newCompanyService() (service.CompanyService, *mocks.MockCompanyRepo, *mocks.MockRecordRepo, *mocks.MockImportRepo) {
	companies := new(mocks.MockCompanyRepo)
	records := new(mocks.MockRecordRepo)
	imports := new(mocks.MockImportRepo)
	return service.NewCompanyService(companies, records, imports), companies, records, imports
}

func TestCompanyService_Create_Success(t *testing.T) {
	svc, companies, _, _ := newCompanyService()
	companies.On("Create", mock.Anything, mock.AnythingOfType("*domain.Company")).Return(nil)

	company, err := svc.Create(context.Background(), service.CreateCompanyInput{
		Name:       " 星辰科技有限公司 ",
		CreditCode: "91310000ma1fl0001x",
	})

	assert.NoError(t, err)
	assert.Equal(t, "星辰科技有限公司", company.Name)
	assert.Equal(t, "91310000MA1FL0001X", company.CreditCode)
	companies.AssertExpectations(t)
}

func TestCompanyService_Create_MissingFields(t *testing.T) {
	svc, companies, _, _ := newCompanyService()

	company, err := svc.Create(context.Background(), service.CreateCompanyInput{Name: "  "})

	assert.Nil(t, company)
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
	companies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCompanyService_Create_DuplicateCreditCode(t *testing.T) {
	svc, companies, _, _ := newCompanyService()
	companies.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateCreditCode)

	_, err := svc.Create(context.Background(), service.CreateCompanyInput{Name: "A", CreditCode: "X"})

	assert.ErrorIs(t, err, domain.ErrDuplicateCreditCode)
}

func TestCompanyService_ListBalanceSheets(t *testing.T) {
	svc, companies, records, _ := newCompanyService()
	companyID := uuid.New()
	sheets := []domain.StoredBalanceSheet{{ID: uuid.New(), CompanyID: companyID}}

	companies.On("GetByID", mock.Anything, companyID).Return(&domain.Company{ID: companyID}, nil)
	records.On("ListBalanceSheets", mock.Anything, companyID, 0, 20).Return(sheets, 1, nil)

	got, total, err := svc.ListBalanceSheets(context.Background(), companyID, 0, 20)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, sheets, got)
	records.AssertExpectations(t)
}

func TestCompanyService_ListIncomeStatements_CompanyNotFound(t *testing.T) {
	svc, companies, records, _ := newCompanyService()
	companyID := uuid.New()
	companies.On("GetByID", mock.Anything, companyID).Return(nil, domain.ErrCompanyNotFound)

	_, _, err := svc.ListIncomeStatements(context.Background(), companyID, 0, 20)

	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
	records.AssertNotCalled(t, "ListIncomeStatements", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompanyService_ListImports(t *testing.T) {
	svc, companies, _, imports := newCompanyService()
	companyID := uuid.New()
	rows := []domain.Import{{ID: uuid.New(), CompanyID: companyID, Status: domain.ImportStatusSucceeded}}

	companies.On("GetByID", mock.Anything, companyID).Return(&domain.Company{ID: companyID}, nil)
	imports.On("ListByCompany", mock.Anything, companyID, 20, 10).Return(rows, 21, nil)

	got, total, err := svc.ListImports(context.Background(), companyID, 20, 10)

	assert.NoError(t, err)
	assert.Equal(t, 21, total)
	assert.Len(t, got, 1)
}
