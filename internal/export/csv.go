// Package export renders a user's bill set as downloadable CSV, XLSX and
// PDF documents. Derived monetary values are computed at render time from
// the stored fields, never read from storage.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"contaluz/internal/domain"
)

// BOM is the UTF-8 byte order mark, prepended for Excel compatibility on
// Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var columns = []string{
	"Mês de Referência",
	"Distribuidora",
	"Instalação",
	"Classe",
	"Vencimento",
	"Custo (R$)",
	"Consumo (kWh)",
	"Energia Compensada (kWh)",
	"Tipo de Compensação",
	"Tarifa Unitária (R$/kWh)",
	"Saldo de Geração (kWh)",
	"Desconto Contratado (%)",
	"Valor da Energia Consumida (R$)",
	"Valor com Desconto (R$)",
	"Paga",
}

// BuildCSV renders bills and their aggregate summary as a CSV document.
func BuildCSV(bills []domain.Bill, summary domain.Summary) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("export.BuildCSV: %w", err)
	}
	for i := range bills {
		if err := w.Write(billToRow(&bills[i])); err != nil {
			return nil, fmt.Errorf("export.BuildCSV: %w", err)
		}
	}

	// Trailing summary block, separated by a blank row.
	_ = w.Write([]string{})
	_ = w.Write([]string{"Total de Contas", strconv.Itoa(summary.TotalBills)})
	_ = w.Write([]string{"Consumo Total (kWh)", formatNumber(summary.TotalConsumption)})
	_ = w.Write([]string{"Energia Compensada Total (kWh)", formatNumber(summary.TotalCompensatedKwh)})
	_ = w.Write([]string{"Saldo de Geração Total (kWh)", formatNumber(summary.TotalGenerationKwh)})
	_ = w.Write([]string{"Custo Total (R$)", formatMoney(summary.TotalCost)})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export.BuildCSV: %w", err)
	}
	return buf.Bytes(), nil
}

func billToRow(b *domain.Bill) []string {
	row := make([]string, len(columns))
	row[0] = b.Date
	row[1] = b.Company
	row[2] = b.InstallationNumber
	row[3] = b.BillClass
	if b.DueDate != nil {
		row[4] = *b.DueDate
	}
	row[5] = formatMoney(b.Cost)
	row[6] = formatNumber(b.Consumption)
	row[7] = formatNumber(b.CompensatedEnergyKwh)
	row[8] = string(b.CompensatedEnergyType)
	row[9] = strconv.FormatFloat(b.UnitPrice, 'f', 4, 64)
	row[10] = formatNumber(b.GenerationBalanceKwh)
	if b.ContractedDiscount != nil {
		row[11] = formatNumber(*b.ContractedDiscount)
	}
	row[12] = formatMoney(b.ConsumedEnergyValue())
	row[13] = formatMoney(b.DiscountedValue())
	row[14] = formatBool(b.Paid)
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
