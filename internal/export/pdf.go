package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"contaluz/internal/domain"
)

// BuildPDF renders a landscape bill report with a summary header and a row
// per bill. Core fonts are cp1252 so text goes through the translator.
func BuildPDF(bills []domain.Bill, summary domain.Summary) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, tr("Relatório de Contas de Luz"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Total de contas: %d", summary.TotalBills)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Consumo total: %s kWh", formatNumber(summary.TotalConsumption))))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Energia compensada total: %s kWh", formatNumber(summary.TotalCompensatedKwh))))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Saldo de geração total: %s kWh", formatNumber(summary.TotalGenerationKwh))))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Custo total: R$ %s", formatMoney(summary.TotalCost))))
	pdf.Ln(8)

	type column struct {
		title string
		width float64
	}
	cols := []column{
		{"Mês", 20},
		{"Distribuidora", 40},
		{"Instalação", 30},
		{"Venc.", 22},
		{"Custo (R$)", 24},
		{"Consumo", 22},
		{"Comp. (kWh)", 24},
		{"Tipo", 22},
		{"Desc. (%)", 20},
		{"C/ Desc. (R$)", 26},
		{"Paga", 14},
	}

	pdf.SetFont("Arial", "B", 9)
	for _, c := range cols {
		pdf.CellFormat(c.width, 6, tr(c.title), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i := range bills {
		b := &bills[i]
		dueDate := ""
		if b.DueDate != nil {
			dueDate = *b.DueDate
		}
		discount := ""
		if b.ContractedDiscount != nil {
			discount = formatNumber(*b.ContractedDiscount)
		}
		cells := []string{
			b.Date,
			b.Company,
			b.InstallationNumber,
			dueDate,
			formatMoney(b.Cost),
			formatNumber(b.Consumption),
			formatNumber(b.CompensatedEnergyKwh),
			string(b.CompensatedEnergyType),
			discount,
			formatMoney(b.DiscountedValue()),
			formatBool(b.Paid),
		}
		for j, c := range cols {
			align := "R"
			if j <= 3 || j == 7 {
				align = "L"
			}
			pdf.CellFormat(c.width, 6, tr(cells[j]), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export.BuildPDF: %w", err)
	}
	return buf.Bytes(), nil
}
