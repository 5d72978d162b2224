package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"finsight/internal/domain"
	"finsight/internal/port"
)

type importRepo struct {
	db *sqlx.DB
}

// NewImportRepo creates a new PostgreSQL-backed ImportRepository.
func NewImportRepo(db *sqlx.DB) port.ImportRepository {
	return &importRepo{db: db}
}

func (r *importRepo) Create(ctx context.Context, imp *domain.Import) error {
	if imp.ID == uuid.Nil {
		imp.ID = uuid.New()
	}
	imp.CreatedAt = time.Now().UTC()

	query := `INSERT INTO imports (
			id, company_id, original_name, file_size, document_type,
			record_count, status, message, created_at
		) VALUES (
			:id, :company_id, :original_name, :file_size, :document_type,
			:record_count, :status, :message, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, imp); err != nil {
		return fmt.Errorf("importRepo.Create: %w", err)
	}
	return nil
}

func (r *importRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.Import, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM imports WHERE company_id = $1", companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("importRepo.ListByCompany count: %w", err)
	}

	var imports []domain.Import
	err = r.db.SelectContext(ctx, &imports,
		"SELECT * FROM imports WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("importRepo.ListByCompany: %w", err)
	}
	return imports, total, nil
}
