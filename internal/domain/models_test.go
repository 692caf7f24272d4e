package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contaluz/internal/domain"
)

func TestBill_DerivedValues(t *testing.T) {
	discount := 15.0
	bill := domain.Bill{
		Consumption:        200,
		UnitPrice:          0.9,
		ContractedDiscount: &discount,
	}

	assert.InDelta(t, 180.0, bill.ConsumedEnergyValue(), 1e-9)
	assert.InDelta(t, 153.0, bill.DiscountedValue(), 1e-9)
}

func TestBill_DerivedValues_NoDiscount(t *testing.T) {
	bill := domain.Bill{Consumption: 100, UnitPrice: 1.2}

	assert.InDelta(t, 120.0, bill.ConsumedEnergyValue(), 1e-9)
	assert.InDelta(t, 120.0, bill.DiscountedValue(), 1e-9)
}

func TestCompensationType_Toggle(t *testing.T) {
	assert.Equal(t, domain.CompensationExternal, domain.CompensationInternal.Toggle())
	assert.Equal(t, domain.CompensationInternal, domain.CompensationExternal.Toggle())
}

func TestBatchResult_Message(t *testing.T) {
	cases := []struct {
		name   string
		result domain.BatchResult
		want   string
	}{
		{"empty", domain.BatchResult{}, "Nenhuma conta nova para adicionar."},
		{"added only", domain.BatchResult{Added: 3}, "3 conta(s) adicionada(s)."},
		{"duplicates only", domain.BatchResult{Duplicates: 2}, "2 conta(s) duplicada(s) ignorada(s)."},
		{"rejected only", domain.BatchResult{Rejected: 1}, "1 conta(s) ignorada(s) por falta de dados."},
		{
			"all three",
			domain.BatchResult{Added: 1, Duplicates: 2, Rejected: 3},
			"1 conta(s) adicionada(s).\n2 conta(s) duplicada(s) ignorada(s).\n3 conta(s) ignorada(s) por falta de dados.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.result.Message())
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := domain.Summarize([]domain.Bill{
		{Cost: 100, Consumption: 50, CompensatedEnergyKwh: 10, GenerationBalanceKwh: 2},
		{Cost: 50, Consumption: 25, CompensatedEnergyKwh: 5, GenerationBalanceKwh: 1},
	})

	assert.Equal(t, 2, summary.TotalBills)
	assert.InDelta(t, 150.0, summary.TotalCost, 1e-9)
	assert.InDelta(t, 75.0, summary.TotalConsumption, 1e-9)
	assert.InDelta(t, 15.0, summary.TotalCompensatedKwh, 1e-9)
	assert.InDelta(t, 3.0, summary.TotalGenerationKwh, 1e-9)
}
