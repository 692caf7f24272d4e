package port

import (
	"context"

	"github.com/google/uuid"

	"contaluz/internal/domain"
)

// BillRepository defines the contract for bill persistence. Every query is
// scoped to the owning user; a mutating query that matches no row reports
// domain.ErrBillNotFound so that policy-level silent rejections are never
// mistaken for success.
type BillRepository interface {
	// Insert persists a new bill. A natural-key collision (owner,
	// installation, month) returns domain.ErrDuplicateBill.
	Insert(ctx context.Context, bill *domain.Bill) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bill, error)
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Bill, error)
	SetPaid(ctx context.Context, userID uuid.UUID, id int64, paid bool) error
	SetCompensationType(ctx context.Context, userID uuid.UUID, id int64, t domain.CompensationType) error
	SetDiscount(ctx context.Context, userID uuid.UUID, id int64, value float64) error
	// Delete removes a bill and returns the deleted row. Zero affected rows
	// is domain.ErrBillNotFound, never a silent success.
	Delete(ctx context.Context, userID uuid.UUID, id int64) (*domain.Bill, error)
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// BillDocumentRepository records archived bill documents.
type BillDocumentRepository interface {
	Create(ctx context.Context, doc *domain.BillDocument) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BillDocument, error)
}
