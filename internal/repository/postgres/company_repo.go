package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"finsight/internal/domain"
	"finsight/internal/port"
)

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	company.ID = uuid.New()
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `INSERT INTO companies (
			id, name, credit_code, legal_representative, registered_capital,
			established_date, industry, address, taxpayer_type, business_scope,
			created_at, updated_at
		) VALUES (
			:id, :name, :credit_code, :legal_representative, :registered_capital,
			:established_date, :industry, :address, :taxpayer_type, :business_scope,
			:created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, company)
	if err != nil {
		if isDuplicateCreditCode(err) {
			return domain.ErrDuplicateCreditCode
		}
		return fmt.Errorf("companyRepo.Create: %w", err)
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.GetContext(ctx, &company, "SELECT * FROM companies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByID: %w", err)
	}
	return &company, nil
}

func (r *companyRepo) List(ctx context.Context, offset, limit int) ([]domain.Company, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM companies")
	if err != nil {
		return nil, 0, fmt.Errorf("companyRepo.List count: %w", err)
	}

	var companies []domain.Company
	err = r.db.SelectContext(ctx, &companies,
		"SELECT * FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("companyRepo.List: %w", err)
	}
	return companies, total, nil
}

func (r *companyRepo) UpdateProfile(ctx context.Context, id uuid.UUID, info *domain.CompanyInfoRecord) error {
	query := `UPDATE companies SET
			name = COALESCE(NULLIF($2, ''), name),
			credit_code = COALESCE(NULLIF($3, ''), credit_code),
			legal_representative = $4,
			registered_capital = $5,
			established_date = $6,
			industry = $7,
			address = $8,
			taxpayer_type = $9,
			business_scope = $10,
			updated_at = $11
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id,
		info.Name, info.CreditCode, info.LegalRepresentative, info.RegisteredCapital,
		info.EstablishedDate, info.Industry, info.Address, info.TaxpayerType,
		info.BusinessScope, time.Now().UTC())
	if err != nil {
		if isDuplicateCreditCode(err) {
			return domain.ErrDuplicateCreditCode
		}
		return fmt.Errorf("companyRepo.UpdateProfile: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func isDuplicateCreditCode(err error) bool {
	return strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "credit_code")
}
