package infra

// pdf.go — Receipt PDF generation using go-pdf/fpdf.
// Generates A7-size thermal receipt-style bills with:
//   - Outlet name and tagline header
//   - Bill number, date and customer line
//   - Item table (S.No, description, qty, rate, amount)
//   - Subtotal / tax / bold grand total
//   - Address and contact footer
//
// The output file is saved to StoragePath/bill_{billNo}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"sidrabill/internal/model"
)

// ReceiptPDFOptions carries the outlet identity printed on every bill.
type ReceiptPDFOptions struct {
	OutletName    string
	OutletTagline string
	OutletAddress string
	OutletPhone   string
	OutletEmail   string
	StoragePath   string
}

// GenerateReceiptPDF renders a finalized receipt. The totals are read from the
// frozen record — nothing is recomputed here.
// Returns the absolute path to the generated file.
func GenerateReceiptPDF(rec *model.SavedReceipt, opt ReceiptPDFOptions) (string, error) {
	if err := os.MkdirAll(opt.StoragePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("bill_%s.pdf", rec.BillNo)
	filePath := filepath.Join(opt.StoragePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 120},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, opt.OutletName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, opt.OutletTagline, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Bill info ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Bill No. %s", rec.BillNo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, rec.Date, "", 1, "L", false, 0, "")
	customer := rec.CustomerName
	if customer == "" {
		customer = "Cash Sale"
	}
	pdf.CellFormat(contentW, 4, "Customer: "+customer, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.44 // description
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.20 // rate
	col4 := contentW * 0.24 // amount

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Rate", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 5, "Amount", "B", 1, "R", false, 0, "")

	// ── Item rows ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, li := range rec.Items {
		desc := li.Description
		// Truncate long names
		if len(desc) > 20 {
			desc = desc[:19] + "…"
		}
		pdf.CellFormat(col1, 5, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", li.Qty), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, li.Rate.StringFixed(2), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 5, li.Amount().StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 5, "Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3+col4, 5, rec.SubTotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 5, fmt.Sprintf("Tax (%s%%):", rec.TaxRate.String()), "", 0, "L", false, 0, "")
	pdf.CellFormat(col3+col4, 5, rec.TaxAmount.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "GRAND TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3+col4, 6, rec.GrandTotal.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank You For Your Business!", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 6)
	pdf.MultiCell(contentW, 3, opt.OutletAddress, "", "C", false)
	pdf.CellFormat(contentW, 3, fmt.Sprintf("Contact: %s  Email: %s", opt.OutletPhone, opt.OutletEmail), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
