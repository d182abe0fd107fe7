package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidrabill/internal/model"
	"sidrabill/internal/repository"
)

// finalizeOne stores a minimal one-line bill and returns the saved record.
func finalizeOne(t *testing.T, history HistoryService, billNo string) *model.SavedReceipt {
	t.Helper()
	rec, err := history.Finalize(context.Background(), model.BillDraft{
		Date:   "2026-03-01",
		BillNo: billNo,
		Items: []model.LineItem{
			{ID: "l1", Description: "Chicken Burger", Qty: 1, Rate: decimal.NewFromInt(120)},
		},
		TaxRate: decimal.NewFromInt(5),
	}, "", nil)
	require.NoError(t, err)
	return rec
}

func TestFinalize_RejectsEmptyBill(t *testing.T) {
	repo := repository.NewMemoryHistoryRepository()
	history, err := NewHistoryService(context.Background(), repo, nil)
	require.NoError(t, err)

	_, err = history.Finalize(context.Background(), model.BillDraft{
		Items:   []model.LineItem{{ID: "p", Qty: 1}}, // placeholder only
		TaxRate: decimal.NewFromInt(5),
	}, "", nil)
	assert.ErrorIs(t, err, ErrNoValidItems)
	assert.Zero(t, repo.SaveCount)
}

func TestFinalize_FreezesTotalsAndPrepends(t *testing.T) {
	repo := repository.NewMemoryHistoryRepository()
	history, err := NewHistoryService(context.Background(), repo, nil)
	require.NoError(t, err)

	first := finalizeOne(t, history, "1001")
	assert.Equal(t, "120", first.SubTotal.String())
	assert.Equal(t, "6", first.TaxAmount.String())
	assert.Equal(t, "126", first.GrandTotal.String())
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Timestamp.IsZero())

	second := finalizeOne(t, history, "1002")
	records := history.List(context.Background())
	require.Len(t, records, 2)
	// Newest first.
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
	assert.Equal(t, 2, repo.SaveCount)
}

func TestFinalize_DropsPlaceholderRows(t *testing.T) {
	history, err := NewHistoryService(context.Background(), repository.NewMemoryHistoryRepository(), nil)
	require.NoError(t, err)

	rec, err := history.Finalize(context.Background(), model.BillDraft{
		Date:   "2026-03-01",
		BillNo: "1001",
		Items: []model.LineItem{
			{ID: "l1", Description: "Cold Drink", Qty: 2, Rate: decimal.NewFromInt(40)},
			{ID: "p", Qty: 1}, // trailing placeholder
		},
		TaxRate: decimal.NewFromInt(5),
	}, "", nil)
	require.NoError(t, err)
	assert.Len(t, rec.Items, 1)
}

func TestFinalize_EditReplacesInPlaceKeepingTimestamp(t *testing.T) {
	history, err := NewHistoryService(context.Background(), repository.NewMemoryHistoryRepository(), nil)
	require.NoError(t, err)

	// Pin the clock so the original timestamp is recognizable.
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history.(*historyService).now = func() time.Time { return t0 }

	orig := finalizeOne(t, history, "1001")
	history.(*historyService).now = func() time.Time { return t0.Add(time.Hour) }

	edited, err := history.Finalize(context.Background(), model.BillDraft{
		Date:   "2026-03-01",
		BillNo: "1001",
		Items: []model.LineItem{
			{ID: "l1", Description: "Chicken Burger", Qty: 3, Rate: decimal.NewFromInt(120)},
		},
		TaxRate: decimal.NewFromInt(5),
	}, orig.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, orig.ID, edited.ID)
	assert.Equal(t, t0, edited.Timestamp)
	assert.Equal(t, "360", edited.SubTotal.String())

	// Still a single record.
	assert.Len(t, history.List(context.Background()), 1)
}

func TestFinalize_EditOfDeletedRecordFails(t *testing.T) {
	history, err := NewHistoryService(context.Background(), repository.NewMemoryHistoryRepository(), nil)
	require.NoError(t, err)

	rec := finalizeOne(t, history, "1001")
	require.NoError(t, history.Remove(context.Background(), rec.ID))

	_, err = history.Finalize(context.Background(), model.BillDraft{
		Items: []model.LineItem{
			{ID: "l1", Description: "Cold Drink", Qty: 1, Rate: decimal.NewFromInt(40)},
		},
	}, rec.ID, nil)
	assert.Error(t, err)
}

func TestRemoveAndClear(t *testing.T) {
	repo := repository.NewMemoryHistoryRepository()
	history, err := NewHistoryService(context.Background(), repo, nil)
	require.NoError(t, err)

	rec := finalizeOne(t, history, "1001")
	finalizeOne(t, history, "1002")

	require.NoError(t, history.Remove(context.Background(), rec.ID))
	assert.ErrorIs(t, history.Remove(context.Background(), rec.ID), ErrReceiptNotFound)

	count, err := history.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, history.Clear(context.Background()))
	assert.Empty(t, history.List(context.Background()))
}

func TestHistory_LoadsExistingSnapshot(t *testing.T) {
	repo := repository.NewMemoryHistoryRepository()
	seed := []model.SavedReceipt{{ID: "r1", BillNo: "1001"}}
	require.NoError(t, repo.Save(context.Background(), seed))

	history, err := NewHistoryService(context.Background(), repo, nil)
	require.NoError(t, err)

	rec, err := history.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "1001", rec.BillNo)
}
