package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one row of a bill. Amount is always derived from Qty×Rate and
// never stored. A row with an empty description is a placeholder — it is shown
// in the editor but excluded from totals and from finalized records.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Qty         int             `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
}

// Amount returns Qty × Rate.
func (li LineItem) Amount() decimal.Decimal {
	return li.Rate.Mul(decimal.NewFromInt(int64(li.Qty)))
}

// IsPlaceholder reports whether the row has no description.
func (li LineItem) IsPlaceholder() bool {
	return strings.TrimSpace(li.Description) == ""
}

// BillDraft is the bill currently being composed. It always contains at least
// one line item; removing the last remaining row is a no-op.
type BillDraft struct {
	Date          string          `json:"date"` // ISO calendar date YYYY-MM-DD
	BillNo        string          `json:"bill_no"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Items         []LineItem      `json:"items"`
	TaxRate       decimal.Decimal `json:"tax_rate"` // percentage, e.g. 5 for 5%
}

// ValidItems returns the non-placeholder rows in order.
func (d BillDraft) ValidItems() []LineItem {
	out := make([]LineItem, 0, len(d.Items))
	for _, li := range d.Items {
		if !li.IsPlaceholder() {
			out = append(out, li)
		}
	}
	return out
}

// Totals is the derived money breakdown of a bill.
type Totals struct {
	SubTotal   decimal.Decimal `json:"sub_total"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ComputeTotals derives subtotal, tax and grand total over the non-placeholder
// rows. No rounding is applied here — only display formatting rounds, so the
// tax split stays exact for any non-negative rate.
func ComputeTotals(items []LineItem, taxRate decimal.Decimal) Totals {
	subTotal := decimal.Zero
	for _, li := range items {
		if li.IsPlaceholder() {
			continue
		}
		subTotal = subTotal.Add(li.Amount())
	}
	taxAmount := subTotal.Mul(taxRate).Div(decimal.NewFromInt(100))
	return Totals{
		SubTotal:   subTotal,
		TaxAmount:  taxAmount,
		GrandTotal: subTotal.Add(taxAmount),
	}
}

// SavedReceipt is a finalized bill: a frozen snapshot of a draft with its
// totals computed at finalization time. Items hold only non-placeholder rows.
// On edit-and-resubmit the record is replaced in place but Timestamp carries
// forward from the original finalization.
type SavedReceipt struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Date          string          `json:"date"`
	BillNo        string          `json:"bill_no"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Items         []LineItem      `json:"items"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Draft re-expands a saved receipt into an editable draft (edit-and-resubmit
// reuses the normal draft pathway).
func (r SavedReceipt) Draft() BillDraft {
	items := make([]LineItem, len(r.Items))
	copy(items, r.Items)
	return BillDraft{
		Date:          r.Date,
		BillNo:        r.BillNo,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Items:         items,
		TaxRate:       r.TaxRate,
	}
}
