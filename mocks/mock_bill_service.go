package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"contaluz/internal/domain"
	"contaluz/internal/port"
)

// MockBillService is a mock implementation of service.BillService.
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) Process(ctx context.Context, ownerID uuid.UUID, docs []port.BillDocument) (*domain.BatchResult, error) {
	args := m.Called(ctx, ownerID, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

func (m *MockBillService) Ingest(ctx context.Context, candidates []domain.CandidateBill, ownerID uuid.UUID) (*domain.BatchResult, error) {
	args := m.Called(ctx, candidates, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

func (m *MockBillService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Bill, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillService) Summary(ctx context.Context, ownerID uuid.UUID) (*domain.Summary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockBillService) TogglePaid(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) ToggleCompensationType(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) SetDiscount(ctx context.Context, ownerID uuid.UUID, id int64, value float64) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, id, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillService) Delete(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Bill, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
