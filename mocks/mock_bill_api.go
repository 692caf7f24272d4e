package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"contaluz/internal/dashboard"
	"contaluz/internal/domain"
	"contaluz/internal/port"
)

// MockBillAPI is a mock implementation of dashboard.BillAPI.
type MockBillAPI struct {
	mock.Mock
}

func (m *MockBillAPI) Login(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *MockBillAPI) Process(ctx context.Context, docs []port.BillDocument) (string, error) {
	args := m.Called(ctx, docs)
	return args.String(0), args.Error(1)
}

func (m *MockBillAPI) List(ctx context.Context) ([]dashboard.BillRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dashboard.BillRow), args.Error(1)
}

func (m *MockBillAPI) Summary(ctx context.Context) (*domain.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockBillAPI) TogglePaid(ctx context.Context, id int64) (*dashboard.BillRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.BillRow), args.Error(1)
}

func (m *MockBillAPI) ToggleCompensationType(ctx context.Context, id int64) (*dashboard.BillRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.BillRow), args.Error(1)
}

func (m *MockBillAPI) SetDiscount(ctx context.Context, id int64, value float64) (*dashboard.BillRow, error) {
	args := m.Called(ctx, id, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.BillRow), args.Error(1)
}

func (m *MockBillAPI) Delete(ctx context.Context, id int64) (*dashboard.BillRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.BillRow), args.Error(1)
}
