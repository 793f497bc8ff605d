package reports

import (
	"bytes"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/tamik3/oy-vey-pay/internal/record"
)

type statementData struct {
	From     time.Time
	To       time.Time
	Incomes  []record.Record
	Expenses []record.Record
}

func renderStatement(data statementData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 10, "Account Statement", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	rangeLine := data.From.Format("2006-01-02") + "  to  " + data.To.Format("2006-01-02")
	pdf.CellFormat(0, 6, rangeLine, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	totalIncome := renderSection(pdf, "Incomes", data.Incomes)
	pdf.Ln(6)
	totalExpense := renderSection(pdf, "Expenses", data.Expenses)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(60, 7, "Total income: "+totalIncome.StringFixed(2)+" "+record.BaseCurrency, "", 1, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Total expenses: "+totalExpense.StringFixed(2)+" "+record.BaseCurrency, "", 1, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Net: "+totalIncome.Sub(totalExpense).StringFixed(2)+" "+record.BaseCurrency, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderSection draws one table and returns the section total in base
// currency units (converted amount preferred over raw).
func renderSection(pdf *gofpdf.Fpdf, title string, records []record.Record) decimal.Decimal {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(60, 7, "Title", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Tag", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Currency", "1", 0, "C", true, 0, "")
	pdf.CellFormat(42, 7, "Date", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	total := decimal.Zero
	for i := range records {
		r := &records[i]
		pdf.CellFormat(60, 7, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, r.Tag, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, r.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, r.Currency, "1", 0, "C", false, 0, "")
		pdf.CellFormat(42, 7, r.CreatedAt.Format("2006-01-02"), "1", 1, "C", false, 0, "")
		total = total.Add(r.DisplayAmount())
	}
	if len(records) == 0 {
		pdf.CellFormat(182, 7, "No records in range", "1", 1, "C", false, 0, "")
	}
	return total
}
