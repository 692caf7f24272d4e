package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"contaluz/internal/domain"
	"contaluz/internal/port"
)

type billDocumentRepo struct {
	db *sqlx.DB
}

// NewBillDocumentRepo creates a new PostgreSQL-backed BillDocumentRepository.
func NewBillDocumentRepo(db *sqlx.DB) port.BillDocumentRepository {
	return &billDocumentRepo{db: db}
}

func (r *billDocumentRepo) Create(ctx context.Context, doc *domain.BillDocument) error {
	doc.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bill_documents (id, user_id, storage_key, bucket, content_type, size_bytes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		doc.ID, doc.UserID, doc.StorageKey, doc.Bucket, doc.ContentType,
		doc.SizeBytes, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("billDocumentRepo.Create: %w", err)
	}
	return nil
}

func (r *billDocumentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BillDocument, error) {
	var docs []domain.BillDocument
	err := r.db.SelectContext(ctx, &docs,
		`SELECT * FROM bill_documents WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("billDocumentRepo.ListByUser: %w", err)
	}
	return docs, nil
}
