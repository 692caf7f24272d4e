package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"contaluz/internal/domain"
	"contaluz/internal/port"
)

// MockBillExtractor is a mock implementation of port.BillExtractor.
type MockBillExtractor struct {
	mock.Mock
}

func (m *MockBillExtractor) Extract(ctx context.Context, docs []port.BillDocument) ([]domain.CandidateBill, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateBill), args.Error(1)
}
