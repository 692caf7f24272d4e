package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"contaluz/internal/domain"
)

// BuildXLSX renders bills and their aggregate summary as an XLSX workbook
// with a bill sheet and a summary sheet.
func BuildXLSX(bills []domain.Bill, summary domain.Summary) ([]byte, error) {
	f := excelize.NewFile()
	billSheet := "contas"
	summarySheet := "resumo"
	f.SetSheetName("Sheet1", billSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("export.BuildXLSX: %w", err)
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export.BuildXLSX: %w", err)
		}
		_ = f.SetCellValue(billSheet, cell, name)
	}
	for i := range bills {
		for col, value := range billToRow(&bills[i]) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("export.BuildXLSX: %w", err)
			}
			_ = f.SetCellValue(billSheet, cell, value)
		}
	}

	_ = f.SetCellValue(summarySheet, "A1", "Resumo")
	_ = f.SetCellValue(summarySheet, "A3", "Total de Contas")
	_ = f.SetCellValue(summarySheet, "B3", summary.TotalBills)
	_ = f.SetCellValue(summarySheet, "A4", "Consumo Total (kWh)")
	_ = f.SetCellValue(summarySheet, "B4", summary.TotalConsumption)
	_ = f.SetCellValue(summarySheet, "A5", "Energia Compensada Total (kWh)")
	_ = f.SetCellValue(summarySheet, "B5", summary.TotalCompensatedKwh)
	_ = f.SetCellValue(summarySheet, "A6", "Saldo de Geração Total (kWh)")
	_ = f.SetCellValue(summarySheet, "B6", summary.TotalGenerationKwh)
	_ = f.SetCellValue(summarySheet, "A7", "Custo Total (R$)")
	_ = f.SetCellValue(summarySheet, "B7", summary.TotalCost)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export.BuildXLSX: %w", err)
	}
	return buf.Bytes(), nil
}
