package service

import (
	"sidrabill/internal/dto"
	"sidrabill/internal/model"
)

// Outlet identifies the business on rendered receipts.
type Outlet struct {
	Name    string
	Tagline string
}

// FormatReceipt projects a draft into its render-ready view: placeholder rows
// dropped, 1-based row numbers, two-decimal currency strings. Pure — the input
// is never mutated, and the same projection backs live preview, print and PDF.
func FormatReceipt(outlet Outlet, d model.BillDraft) dto.ReceiptView {
	valid := d.ValidItems()
	totals := model.ComputeTotals(valid, d.TaxRate)

	rows := make([]dto.ReceiptRow, len(valid))
	for i, li := range valid {
		rows[i] = dto.ReceiptRow{
			SeqNo:       i + 1,
			Description: li.Description,
			Qty:         li.Qty,
			Rate:        li.Rate.StringFixed(2),
			Amount:      li.Amount().StringFixed(2),
		}
	}

	return dto.ReceiptView{
		OutletName:    outlet.Name,
		OutletTagline: outlet.Tagline,
		Date:          d.Date,
		BillNo:        d.BillNo,
		CustomerName:  d.CustomerName,
		Rows:          rows,
		TaxRate:       d.TaxRate.String(),
		SubTotal:      totals.SubTotal.StringFixed(2),
		TaxAmount:     totals.TaxAmount.StringFixed(2),
		GrandTotal:    totals.GrandTotal.StringFixed(2),
	}
}

// FormatSavedReceipt renders a history record through the same projection.
func FormatSavedReceipt(outlet Outlet, r model.SavedReceipt) dto.ReceiptView {
	return FormatReceipt(outlet, r.Draft())
}
