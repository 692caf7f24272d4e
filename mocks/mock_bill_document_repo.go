package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"contaluz/internal/domain"
)

// MockBillDocumentRepo is a mock implementation of port.BillDocumentRepository.
type MockBillDocumentRepo struct {
	mock.Mock
}

func (m *MockBillDocumentRepo) Create(ctx context.Context, doc *domain.BillDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockBillDocumentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BillDocument, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillDocument), args.Error(1)
}
