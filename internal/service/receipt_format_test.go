package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidrabill/internal/model"
)

func TestFormatReceipt(t *testing.T) {
	outlet := Outlet{Name: "Sidra Fast Food", Tagline: "Fresh & Tasty"}
	draft := model.BillDraft{
		Date:         "2026-03-01",
		BillNo:       "1001",
		CustomerName: "Asif",
		Items: []model.LineItem{
			{ID: "l1", Description: "Chicken Burger", Qty: 2, Rate: decimal.NewFromInt(120)},
			{ID: "l2", Description: "Cold Drink", Qty: 1, Rate: decimal.NewFromInt(40)},
			{ID: "p", Qty: 1}, // trailing placeholder never prints
		},
		TaxRate: decimal.NewFromInt(5),
	}

	view := FormatReceipt(outlet, draft)

	assert.Equal(t, "Sidra Fast Food", view.OutletName)
	assert.Equal(t, "Fresh & Tasty", view.OutletTagline)
	require.Len(t, view.Rows, 2)

	assert.Equal(t, 1, view.Rows[0].SeqNo)
	assert.Equal(t, 2, view.Rows[1].SeqNo)
	assert.Equal(t, "120.00", view.Rows[0].Rate)
	assert.Equal(t, "240.00", view.Rows[0].Amount)

	assert.Equal(t, "280.00", view.SubTotal)
	assert.Equal(t, "14.00", view.TaxAmount)
	assert.Equal(t, "294.00", view.GrandTotal)
	assert.Equal(t, "5", view.TaxRate)
}

func TestFormatReceipt_DoesNotMutateDraft(t *testing.T) {
	draft := model.BillDraft{
		Items: []model.LineItem{
			{ID: "l1", Description: "Fries", Qty: 1, Rate: decimal.NewFromInt(60)},
			{ID: "p"},
		},
		TaxRate: decimal.NewFromInt(5),
	}
	_ = FormatReceipt(Outlet{}, draft)
	assert.Len(t, draft.Items, 2)
}

func TestFormatSavedReceipt(t *testing.T) {
	rec := model.SavedReceipt{
		Date:   "2026-03-01",
		BillNo: "1005",
		Items: []model.LineItem{
			{ID: "l1", Description: "French Fries", Qty: 3, Rate: decimal.NewFromInt(60)},
		},
		TaxRate: decimal.NewFromInt(5),
	}
	view := FormatSavedReceipt(Outlet{Name: "Sidra Fast Food"}, rec)
	assert.Equal(t, "1005", view.BillNo)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "180.00", view.Rows[0].Amount)
	assert.Equal(t, "189.00", view.GrandTotal)
}
