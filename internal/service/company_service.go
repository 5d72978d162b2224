package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"finsight/internal/domain"
	"finsight/internal/port"
)

// CreateCompanyInput is the DTO for registering a company.
type CreateCompanyInput struct {
	Name                string  `json:"name" binding:"required"`
	CreditCode          string  `json:"credit_code" binding:"required"`
	LegalRepresentative string  `json:"legal_representative"`
	RegisteredCapital   float64 `json:"registered_capital"`
	EstablishedDate     string  `json:"established_date"`
	Industry            string  `json:"industry"`
	Address             string  `json:"address"`
	TaxpayerType        string  `json:"taxpayer_type"`
	BusinessScope       string  `json:"business_scope"`
}

// CompanyService defines the company management contract.
type CompanyService interface {
	Create(ctx context.Context, input CreateCompanyInput) (*domain.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context, offset, limit int) ([]domain.Company, int, error)
	ListBalanceSheets(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.StoredBalanceSheet, int, error)
	ListIncomeStatements(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.StoredIncomeStatement, int, error)
	ListImports(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.Import, int, error)
}

type companyService struct {
	companyRepo port.CompanyRepository
	recordRepo  port.FinancialRecordRepository
	importRepo  port.ImportRepository
}

// NewCompanyService creates a new CompanyService implementation.
func NewCompanyService(
	companyRepo port.CompanyRepository,
	recordRepo port.FinancialRecordRepository,
	importRepo port.ImportRepository,
) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		recordRepo:  recordRepo,
		importRepo:  importRepo,
	}
}

func (s *companyService) Create(ctx context.Context, input CreateCompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		Name:                strings.TrimSpace(input.Name),
		CreditCode:          strings.ToUpper(strings.TrimSpace(input.CreditCode)),
		LegalRepresentative: strings.TrimSpace(input.LegalRepresentative),
		RegisteredCapital:   input.RegisteredCapital,
		EstablishedDate:     strings.TrimSpace(input.EstablishedDate),
		Industry:            strings.TrimSpace(input.Industry),
		Address:             strings.TrimSpace(input.Address),
		TaxpayerType:        strings.TrimSpace(input.TaxpayerType),
		BusinessScope:       strings.TrimSpace(input.BusinessScope),
	}
	if company.Name == "" || company.CreditCode == "" {
		return nil, domain.ErrInvalidCompany
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

func (s *companyService) List(ctx context.Context, offset, limit int) ([]domain.Company, int, error) {
	return s.companyRepo.List(ctx, offset, limit)
}

func (s *companyService) ListBalanceSheets(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.StoredBalanceSheet, int, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, 0, err
	}
	return s.recordRepo.ListBalanceSheets(ctx, companyID, offset, limit)
}

func (s *companyService) ListIncomeStatements(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.StoredIncomeStatement, int, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, 0, err
	}
	return s.recordRepo.ListIncomeStatements(ctx, companyID, offset, limit)
}

func (s *companyService) ListImports(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.Import, int, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, 0, err
	}
	return s.importRepo.ListByCompany(ctx, companyID, offset, limit)
}

func (s *companyService) ensureCompany(ctx context.Context, id uuid.UUID) error {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("looking up company %s: %w", id, err)
	}
	return nil
}
