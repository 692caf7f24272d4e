package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"contaluz/internal/domain"
)

// MockBillRepo is a mock implementation of port.BillRepository.
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) Insert(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepo) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Bill, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepo) SetPaid(ctx context.Context, userID uuid.UUID, id int64, paid bool) error {
	args := m.Called(ctx, userID, id, paid)
	return args.Error(0)
}

func (m *MockBillRepo) SetCompensationType(ctx context.Context, userID uuid.UUID, id int64, t domain.CompensationType) error {
	args := m.Called(ctx, userID, id, t)
	return args.Error(0)
}

func (m *MockBillRepo) SetDiscount(ctx context.Context, userID uuid.UUID, id int64, value float64) error {
	args := m.Called(ctx, userID, id, value)
	return args.Error(0)
}

func (m *MockBillRepo) Delete(ctx context.Context, userID uuid.UUID, id int64) (*domain.Bill, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
